package icon

// Icon identifies a UI symbol.
type Icon int

const (
	Play Icon = iota + 1
	Pause
	Stop
	Finished
	Progress
	Fail
	Success
	Mark
	Question
	Snapshot
	Volume
	Mute
)

var icons = map[Icon]*iconDef{
	Play: {
		emoji:   "▶️",
		nerd:    "\uf04b",
		plain:   ">",
		kaomoji: "(▶ω▶)",
		squares: "▶",
	},
	Pause: {
		emoji:   "⏸️",
		nerd:    "\uf04c",
		plain:   "||",
		kaomoji: "(￣o￣) zzZ",
		squares: "⏸",
	},
	Stop: {
		emoji:   "⏹️",
		nerd:    "\uf04d",
		plain:   "[]",
		kaomoji: "(・_・)",
		squares: "■",
	},
	Finished: {
		emoji:   "🏁",
		nerd:    "\uf11e",
		plain:   "END",
		kaomoji: "(＾▽＾)",
		squares: "▣",
	},
	Progress: {
		emoji:   "⏳",
		nerd:    "\uf110",
		plain:   "...",
		kaomoji: "(￣ー￣)...",
		squares: "▦",
	},
	Fail: {
		emoji:   "💀",
		nerd:    "\uf00d",
		plain:   "X",
		kaomoji: "(×_×)",
		squares: "▨",
	},
	Success: {
		emoji:   "🎉",
		nerd:    "\uf00c",
		plain:   "OK",
		kaomoji: "(＾∀＾)",
		squares: "▩",
	},
	Mark: {
		emoji:   "✅",
		nerd:    "\uf14a",
		plain:   "*",
		kaomoji: "(✓)",
		squares: "▪",
	},
	Question: {
		emoji:   "❓",
		nerd:    "\uf128",
		plain:   "?",
		kaomoji: "(・・?)",
		squares: "▫",
	},
	Snapshot: {
		emoji:   "📸",
		nerd:    "\uf030",
		plain:   "[o]",
		kaomoji: "(◕‿◕)📷",
		squares: "▣",
	},
	Volume: {
		emoji:   "🔊",
		nerd:    "\uf028",
		plain:   "vol",
		kaomoji: "(♪)",
		squares: "▤",
	},
	Mute: {
		emoji:   "🔇",
		nerd:    "\uf026",
		plain:   "mute",
		kaomoji: "(´-ω-`)",
		squares: "▥",
	},
}
