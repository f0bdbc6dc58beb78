package mpvcore

import (
	"testing"

	"github.com/reelctl/reelctl/engine"
	. "github.com/smartystreets/goconvey/convey"
)

func types(events []engine.Event) []engine.EventType {
	out := make([]engine.EventType, len(events))
	for i, ev := range events {
		out[i] = ev.Type
	}
	return out
}

func TestTranslator(t *testing.T) {
	Convey("Given a translator", t, func() {
		var tr Translator

		Convey("When a file starts and loads", func() {
			started := tr.StartFile()
			loaded := tr.FileLoaded()

			Convey("Then media changed and opening precede playing", func() {
				So(types(started), ShouldResemble, []engine.EventType{engine.MediaPlayerMediaChanged, engine.MediaPlayerOpening})
				So(types(loaded), ShouldResemble, []engine.EventType{engine.MediaPlayerPlaying})
			})

			Convey("Then pause toggles between paused and playing", func() {
				So(types(tr.Property("pause", true)), ShouldResemble, []engine.EventType{engine.MediaPlayerPaused})
				So(types(tr.Property("pause", 0)), ShouldResemble, []engine.EventType{engine.MediaPlayerPlaying})
			})
		})

		Convey("When mpv is paused before the file loads", func() {
			So(tr.Property("pause", true), ShouldBeEmpty)
			tr.StartFile()

			Convey("Then loading the file does not report playing", func() {
				So(tr.FileLoaded(), ShouldBeEmpty)
			})
		})

		Convey("When time, position and duration change", func() {
			timeEvents := tr.Property("time-pos", 12.3456)
			posEvents := tr.Property("percent-pos", 50.0)
			durEvents := tr.Property("duration", 90.5)

			Convey("Then they are converted to milliseconds and fractions", func() {
				So(timeEvents, ShouldResemble, []engine.Event{{Type: engine.MediaPlayerTimeChanged, NewTime: 12346}})
				So(posEvents, ShouldResemble, []engine.Event{{Type: engine.MediaPlayerPositionChanged, NewPosition: 0.5}})
				So(durEvents, ShouldResemble, []engine.Event{
					{Type: engine.MediaPlayerLengthChanged, NewLength: 90500},
					{Type: engine.MediaDurationChanged, NewDuration: 90500},
				})
			})
		})

		Convey("When a property becomes unavailable", func() {
			Convey("Then nothing is reported", func() {
				So(tr.Property("time-pos", nil), ShouldBeEmpty)
				So(tr.Property("volume", 40.0), ShouldBeEmpty)
			})
		})

		Convey("When files end for different reasons", func() {
			Convey("Then each reason maps to its own event", func() {
				So(types(tr.EndFile(EndEOF)), ShouldResemble, []engine.EventType{engine.MediaPlayerEndReached})
				So(types(tr.EndFile(EndStop)), ShouldResemble, []engine.EventType{engine.MediaPlayerStopped})
				So(types(tr.EndFile(EndQuit)), ShouldResemble, []engine.EventType{engine.MediaPlayerStopped})
				So(types(tr.EndFile(EndError)), ShouldResemble, []engine.EventType{engine.MediaPlayerEncounteredError})
				So(tr.EndFile(EndRedirect), ShouldBeEmpty)
			})
		})
	})
}

type countingHandler struct {
	seen []engine.Event
}

func (c *countingHandler) HandleEvent(ev *engine.Event) {
	c.seen = append(c.seen, *ev)
}

func TestHandlers(t *testing.T) {
	Convey("Given a handler attached to playing events", t, func() {
		var h Handlers
		c := &countingHandler{}
		So(h.Attach(engine.MediaPlayerPlaying, c), ShouldEqual, 0)

		Convey("When events are emitted", func() {
			h.Emit(engine.Event{Type: engine.MediaPlayerPlaying}, engine.Event{Type: engine.MediaPlayerPaused})

			Convey("Then only attached types are delivered", func() {
				So(types(c.seen), ShouldResemble, []engine.EventType{engine.MediaPlayerPlaying})
			})
		})

		Convey("When the handler is detached", func() {
			h.Detach(engine.MediaPlayerPlaying, c)
			h.Emit(engine.Event{Type: engine.MediaPlayerPlaying})

			Convey("Then it receives nothing", func() {
				So(c.seen, ShouldBeEmpty)
			})
		})

		Convey("When attaching nil", func() {
			Convey("Then a failure code is returned", func() {
				So(h.Attach(engine.MediaPlayerPlaying, nil), ShouldNotEqual, 0)
			})
		})
	})
}
