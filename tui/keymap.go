package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/reelctl/reelctl/color"
	"github.com/reelctl/reelctl/style"
)

// statefulKeymap defines the keyboard interactions available within each state.
type statefulKeymap struct {
	state state

	quit, forceQuit,
	playPause, stop,
	mute, volumeUp, volumeDown,
	nextChapter, prevChapter,
	subtitles, snapshot, title,
	confirm, remove, back,
	showHelp key.Binding
}

func (k *statefulKeymap) setState(newState state) {
	k.state = newState
}

func newStatefulKeymap() *statefulKeymap {
	return &statefulKeymap{
		quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		forceQuit: key.NewBinding(
			key.WithKeys("ctrl+c", "ctrl+d"),
			key.WithHelp("ctrl+c", "quit"),
		),
		playPause: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp(style.Fg(color.Orange)("space"), style.Fg(color.Orange)("play/pause")),
		),
		stop: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "stop"),
		),
		mute: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "mute"),
		),
		volumeUp: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "volume up"),
		),
		volumeDown: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "volume down"),
		),
		nextChapter: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "next chapter"),
		),
		prevChapter: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "previous chapter"),
		),
		subtitles: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "cycle subtitles"),
		),
		snapshot: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "snapshot"),
		),
		title: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "show title"),
		),
		confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp(style.Fg(color.Orange)("enter"), style.Fg(color.Orange)("play")),
		),
		remove: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "remove"),
		),
		back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		showHelp: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
	}
}

// forList adapts the list's own bindings so they do not shadow ours.
func (k *statefulKeymap) forList() list.KeyMap {
	keymap := list.DefaultKeyMap()
	keymap.Quit = k.quit
	keymap.ForceQuit = k.forceQuit
	keymap.ShowFullHelp = k.showHelp
	keymap.CloseFullHelp = k.showHelp
	return keymap
}

// ShortHelp implements help.KeyMap.
func (k *statefulKeymap) ShortHelp() []key.Binding {
	switch k.state {
	case playingState:
		return []key.Binding{k.playPause, k.mute, k.snapshot, k.showHelp, k.quit}
	case historyState:
		return []key.Binding{k.confirm, k.remove}
	case loadingState, errorState:
		return []key.Binding{k.forceQuit}
	}
	return nil
}

// FullHelp implements help.KeyMap.
func (k *statefulKeymap) FullHelp() [][]key.Binding {
	switch k.state {
	case playingState:
		return [][]key.Binding{
			{k.playPause, k.stop, k.quit},
			{k.mute, k.volumeUp, k.volumeDown},
			{k.nextChapter, k.prevChapter, k.subtitles},
			{k.snapshot, k.title, k.showHelp},
		}
	}
	return [][]key.Binding{k.ShortHelp()}
}
