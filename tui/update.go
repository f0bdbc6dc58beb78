package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/reelctl/reelctl/history"
	"github.com/reelctl/reelctl/player"
	"github.com/samber/mo"

	tea "github.com/charmbracelet/bubbletea"
)

func (b *statefulBubble) Init() tea.Cmd {
	return tea.Batch(b.spinnerC.Tick, b.startCmd)
}

func (b *statefulBubble) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		b.resize(msg.Width, msg.Height)
		return b, nil
	case tea.KeyMsg:
		if key.Matches(msg, b.keymap.forceQuit) {
			return b, tea.Quit
		}
		if key.Matches(msg, b.keymap.showHelp) && b.state != historyState {
			b.helpC.ShowAll = !b.helpC.ShowAll
			return b, nil
		}
	case spinner.TickMsg:
		var cmd tea.Cmd
		b.spinnerC, cmd = b.spinnerC.Update(msg)
		return b, cmd
	case progress.FrameMsg:
		model, cmd := b.progressC.Update(msg)
		b.progressC = model.(progress.Model)
		return b, cmd
	case notification, clearNotificationMsg:
		return b, b.notifier.Update(msg)
	case errorMsg:
		b.raiseError(msg.err)
		return b, nil
	}

	switch b.state {
	case loadingState, playingState:
		return b.updatePlaying(msg)
	case historyState:
		return b.updateHistory(msg)
	case errorState:
		return b.updateError(msg)
	}

	return b, nil
}

func (b *statefulBubble) updatePlaying(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case playingMsg:
		b.setState(playingState)
		b.paused, b.stopped = false, false
		return b, b.onStart()
	case pausedMsg:
		b.paused = true
	case stoppedMsg:
		b.stopped = true
	case finishedMsg:
		b.position = 1
		b.time = b.length
		return b, tea.Quit
	case timeMsg:
		b.time = int64(msg)
	case positionMsg:
		b.position = float32(msg)
	case lengthMsg:
		b.length = int64(msg)
	case metaMsg:
		b.meta = mo.Some(player.VideoMetaData(msg))
	case volumeMsg:
		b.volume = msg
	case tea.KeyMsg:
		return b, b.handlePlayingKey(msg)
	}

	return b, nil
}

func (b *statefulBubble) handlePlayingKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, b.keymap.quit):
		return tea.Quit
	case b.state != playingState:
		return nil
	case key.Matches(msg, b.keymap.playPause):
		if b.stopped {
			return b.do("play", (*player.MediaPlayer).Play)
		}
		return b.do("pause", (*player.MediaPlayer).Pause)
	case key.Matches(msg, b.keymap.stop):
		return b.do("stop", (*player.MediaPlayer).Stop)
	case key.Matches(msg, b.keymap.mute):
		mp := b.player
		return func() tea.Msg {
			if err := mp.ToggleMute(); err != nil {
				return notification("mute: " + err.Error())
			}
			return volumeMsg{volume: mp.Volume(), muted: mp.IsMute()}
		}
	case key.Matches(msg, b.keymap.volumeUp):
		return b.changeVolume(volumeStep)
	case key.Matches(msg, b.keymap.volumeDown):
		return b.changeVolume(-volumeStep)
	case key.Matches(msg, b.keymap.nextChapter):
		return b.do("next chapter", (*player.MediaPlayer).NextChapter)
	case key.Matches(msg, b.keymap.prevChapter):
		return b.do("previous chapter", (*player.MediaPlayer).PreviousChapter)
	case key.Matches(msg, b.keymap.subtitles):
		return b.cycleSubtitles()
	case key.Matches(msg, b.keymap.snapshot):
		return b.takeSnapshot()
	case key.Matches(msg, b.keymap.title):
		title := b.current.Title()
		return b.do("title", func(mp *player.MediaPlayer) error {
			showTitle(mp, title)
			return nil
		})
	}
	return nil
}

func (b *statefulBubble) updateHistory(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && b.historyC.FilterState() != list.Filtering {
		switch {
		case key.Matches(msg, b.keymap.confirm):
			if item, ok := b.historyC.SelectedItem().(*listItem); ok {
				return b, b.play(item.entry)
			}
		case key.Matches(msg, b.keymap.remove):
			if item, ok := b.historyC.SelectedItem().(*listItem); ok {
				b.historyC.RemoveItem(b.historyC.Index())
				mrl := item.entry.MRL
				return b, func() tea.Msg {
					if err := history.Remove(mrl); err != nil {
						return notification("remove: " + err.Error())
					}
					return nil
				}
			}
		}
	}

	var cmd tea.Cmd
	b.historyC, cmd = b.historyC.Update(msg)
	return b, cmd
}

func (b *statefulBubble) updateError(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && (key.Matches(msg, b.keymap.quit) || key.Matches(msg, b.keymap.back)) {
		return b, tea.Quit
	}
	return b, nil
}
