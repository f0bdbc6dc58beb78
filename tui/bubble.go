package tui

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"
	"github.com/reelctl/reelctl/history"
	"github.com/reelctl/reelctl/key"
	"github.com/reelctl/reelctl/log"
	"github.com/reelctl/reelctl/player"
	"github.com/reelctl/reelctl/style"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/viper"

	tea "github.com/charmbracelet/bubbletea"
)

// ErrNothingToPlay is returned when no media was given and the history is empty.
var ErrNothingToPlay = errors.New("nothing to play: pass media or play something first")

// resumeLimit is the progress above which media restarts instead of resuming.
const resumeLimit = 0.95

// volumeStep is the change applied by the volume keys.
const volumeStep = 5

// statefulBubble encapsulates the interface state and the player it drives.
type statefulBubble struct {
	state     state
	keymap    *statefulKeymap
	lastError error

	spinnerC  spinner.Model
	progressC progress.Model
	historyC  list.Model
	helpC     help.Model
	notifier  *notifier

	player  *player.MediaPlayer
	current *history.Entry
	started bool

	paused   bool
	stopped  bool
	time     int64
	length   int64
	position float32
	volume   volumeMsg
	meta     mo.Option[player.VideoMetaData]

	width, height int
	startCmd      tea.Cmd
}

func newBubble(mp *player.MediaPlayer, options *Options) (*statefulBubble, error) {
	b := &statefulBubble{
		keymap:    newStatefulKeymap(),
		spinnerC:  spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(lipgloss.NewStyle().Foreground(style.AccentColor))),
		progressC: progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
		helpC:     help.New(),
		notifier:  &notifier{},
		player:    mp,
		length:    -1,
		volume:    volumeMsg{volume: -1},
	}

	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = lipgloss.NewStyle().
		Border(lipgloss.ThickBorder(), false, false, false, true).
		BorderForeground(style.AccentColor).
		Foreground(style.AccentColor).
		Padding(0, 0, 0, 1)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedTitle
	b.historyC = list.New(nil, delegate, 0, 0)
	b.historyC.Title = "History"
	b.historyC.Styles.Title = lipgloss.NewStyle().Background(style.AccentColor).Foreground(style.Base).Padding(0, 1)
	b.historyC.KeyMap = b.keymap.forList()
	b.historyC.AdditionalShortHelpKeys = b.keymap.ShortHelp

	switch {
	case options.MRL != "":
		b.startCmd = b.play(&history.Entry{MRL: options.MRL, Options: slices.Clone(options.MediaOptions)})
	case options.Continue:
		last, err := history.Last()
		if err != nil {
			return nil, err
		}
		entry, ok := last.Get()
		if !ok {
			return nil, ErrNothingToPlay
		}
		b.startCmd = b.play(entry)
	default:
		entries, err := history.Recent()
		if err != nil {
			return nil, err
		}
		if len(entries) == 0 {
			return nil, ErrNothingToPlay
		}
		b.historyC.SetItems(lo.Map(entries, func(e *history.Entry, _ int) list.Item {
			return &listItem{entry: e}
		}))
		b.setState(historyState)
	}

	return b, nil
}

func (b *statefulBubble) setState(s state) {
	b.state = s
	b.keymap.setState(s)
}

func (b *statefulBubble) raiseError(err error) {
	b.lastError = err
	b.setState(errorState)
}

// play opens entry, resuming from its saved position unless it was nearly finished.
func (b *statefulBubble) play(entry *history.Entry) tea.Cmd {
	b.current = entry
	b.started = false
	b.paused, b.stopped = false, false
	b.time, b.length, b.position = 0, entry.Length, 0
	b.meta = mo.None[player.VideoMetaData]()
	b.setState(loadingState)

	options := slices.Clone(entry.Options)
	if entry.Position > 0 && entry.Progress() < resumeLimit {
		options = append(options, fmt.Sprintf("start=%d", entry.Position/1000))
	}

	mp := b.player
	return func() tea.Msg {
		if err := mp.PlayMedia(entry.MRL, options...); err != nil {
			return errorMsg{err}
		}
		return nil
	}
}

// onStart applies the configured volume and flashes the title the first time the media
// reaches playing.
func (b *statefulBubble) onStart() tea.Cmd {
	if b.started {
		return nil
	}
	b.started = true

	mp := b.player
	title := b.current.Title()
	return func() tea.Msg {
		if v := viper.GetInt(key.PlayerVolume); v >= 0 {
			if err := mp.SetVolume(v); err != nil {
				log.Warnf("initial volume: %v", err)
			}
		}
		showTitle(mp, title)
		return volumeMsg{volume: mp.Volume(), muted: mp.IsMute()}
	}
}

// showTitle draws title in the top left corner of the video for three seconds.
func showTitle(mp *player.MediaPlayer, title string) {
	mp.ApplyMarquee(player.MarqueeConfig{
		Text:     mo.Some(title),
		Position: mo.Some(player.TopLeft),
		Size:     mo.Some(32),
		Timeout:  mo.Some(3000),
		Enable:   mo.Some(true),
	})
}

// do runs fn off the update loop and reports failures as a notification.
func (b *statefulBubble) do(label string, fn func(mp *player.MediaPlayer) error) tea.Cmd {
	mp := b.player
	return func() tea.Msg {
		if err := fn(mp); err != nil {
			return notification(label + ": " + err.Error())
		}
		return nil
	}
}

// changeVolume adjusts the volume by delta and reports the result.
func (b *statefulBubble) changeVolume(delta int) tea.Cmd {
	mp := b.player
	return func() tea.Msg {
		current := mp.Volume()
		if current < 0 {
			return notification("volume unavailable")
		}
		if err := mp.SetVolume(min(max(current+delta, 0), 100)); err != nil {
			return notification("volume: " + err.Error())
		}
		return volumeMsg{volume: mp.Volume(), muted: mp.IsMute()}
	}
}

// cycleSubtitles selects the next subtitle track, turning subtitles off after the last.
func (b *statefulBubble) cycleSubtitles() tea.Cmd {
	mp := b.player
	return func() tea.Msg {
		count := mp.SpuCount()
		if count <= 0 {
			return notification("no subtitles")
		}

		next := mp.Spu() + 1
		if next < 1 {
			next = 1
		}
		if next > count {
			next = -1
		}

		if err := mp.SetSpu(next); err != nil {
			return notification("subtitles: " + err.Error())
		}
		if next < 0 {
			return notification("subtitles off")
		}
		return notification(fmt.Sprintf("subtitles %d/%d", next, count))
	}
}

func (b *statefulBubble) takeSnapshot() tea.Cmd {
	mp := b.player
	return func() tea.Msg {
		path, err := mp.SaveSnapshot()
		if err != nil {
			return notification("snapshot: " + err.Error())
		}
		return notification("saved " + path)
	}
}

// saveHistory records how far the current media got.
func (b *statefulBubble) saveHistory() {
	if b.current == nil || !b.started {
		return
	}

	entry := *b.current
	entry.Position = b.time
	if b.length > 0 {
		entry.Length = b.length
	}
	entry.PlayedAt = time.Now()

	if err := history.Save(entry); err != nil {
		log.Warnf("saving history: %v", err)
	}
}

func (b *statefulBubble) resize(width, height int) {
	x, y := paddingStyle.GetFrameSize()
	xx, yy := listExtraPaddingStyle.GetFrameSize()

	b.width = width - x
	b.height = height - y

	b.historyC.SetSize(width-xx, height-yy)
	b.historyC.Help.Width = width - xx
	b.progressC.Width = b.width
	b.helpC.Width = b.width
}
