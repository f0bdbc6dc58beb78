package tui

import (
	"github.com/reelctl/reelctl/player"

	tea "github.com/charmbracelet/bubbletea"
)

type (
	playingMsg  struct{}
	pausedMsg   struct{}
	stoppedMsg  struct{}
	finishedMsg struct{}
	timeMsg     int64
	positionMsg float32
	lengthMsg   int64
	metaMsg     player.VideoMetaData
	volumeMsg   struct {
		volume int
		muted  bool
	}
	errorMsg struct{ err error }
)

// listener forwards player events to the program. It runs on the player's dispatch
// goroutine and never calls back into the player.
type listener struct {
	send func(tea.Msg)
}

func (l *listener) DurationChanged(_ *player.MediaPlayer, d int64) { l.send(lengthMsg(d)) }
func (l *listener) Playing(*player.MediaPlayer)                    { l.send(playingMsg{}) }
func (l *listener) Paused(*player.MediaPlayer)                     { l.send(pausedMsg{}) }
func (l *listener) Stopped(*player.MediaPlayer)                    { l.send(stoppedMsg{}) }
func (l *listener) Finished(*player.MediaPlayer)                   { l.send(finishedMsg{}) }
func (l *listener) TimeChanged(_ *player.MediaPlayer, t int64)     { l.send(timeMsg(t)) }
func (l *listener) PositionChanged(_ *player.MediaPlayer, p float32) {
	l.send(positionMsg(p))
}
func (l *listener) LengthChanged(_ *player.MediaPlayer, n int64) { l.send(lengthMsg(n)) }
func (l *listener) MetaDataAvailable(_ *player.MediaPlayer, m player.VideoMetaData) {
	l.send(metaMsg(m))
}
