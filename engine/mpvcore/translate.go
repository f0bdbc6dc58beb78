// Package mpvcore holds the parts of the mpv engine adapters that do not depend on how
// mpv is reached: signal translation, overlay rendering, load commands and handler
// bookkeeping.
package mpvcore

import (
	"math"
	"strconv"

	"github.com/reelctl/reelctl/engine"
)

// Observed lists the mpv properties whose changes Translator understands.
var Observed = []string{"pause", "time-pos", "percent-pos", "duration", "seekable"}

// End file reasons reported by mpv.
const (
	EndEOF      = "eof"
	EndStop     = "stop"
	EndQuit     = "quit"
	EndError    = "error"
	EndRedirect = "redirect"
)

// Translator turns mpv events and property changes into engine events. It tracks whether
// a file is loaded and paused, so it must see every signal in order. It is not safe for
// concurrent use.
type Translator struct {
	loaded bool
	paused bool
}

// StartFile handles mpv's start-file event.
func (t *Translator) StartFile() []engine.Event {
	t.loaded = false
	return []engine.Event{
		{Type: engine.MediaPlayerMediaChanged},
		{Type: engine.MediaPlayerOpening},
	}
}

// FileLoaded handles mpv's file-loaded event. Playback is reported only if mpv is not
// paused.
func (t *Translator) FileLoaded() []engine.Event {
	t.loaded = true
	if t.paused {
		return nil
	}
	return []engine.Event{{Type: engine.MediaPlayerPlaying}}
}

// EndFile handles mpv's end-file event.
func (t *Translator) EndFile(reason string) []engine.Event {
	t.loaded = false
	switch reason {
	case EndEOF:
		return []engine.Event{{Type: engine.MediaPlayerEndReached}}
	case EndError:
		return []engine.Event{{Type: engine.MediaPlayerEncounteredError}}
	case EndStop, EndQuit:
		return []engine.Event{{Type: engine.MediaPlayerStopped}}
	}
	return nil
}

// Property handles a property-change notification. data is nil when the property is
// unavailable, which produces no events.
func (t *Translator) Property(name string, data any) []engine.Event {
	if data == nil {
		return nil
	}

	switch name {
	case "pause":
		paused, ok := Flag(data)
		if !ok {
			return nil
		}
		t.paused = paused
		if !t.loaded {
			return nil
		}
		if paused {
			return []engine.Event{{Type: engine.MediaPlayerPaused}}
		}
		return []engine.Event{{Type: engine.MediaPlayerPlaying}}

	case "time-pos":
		if secs, ok := Number(data); ok {
			return []engine.Event{{Type: engine.MediaPlayerTimeChanged, NewTime: Millis(secs)}}
		}

	case "percent-pos":
		if pct, ok := Number(data); ok {
			return []engine.Event{{Type: engine.MediaPlayerPositionChanged, NewPosition: float32(pct / 100)}}
		}

	case "duration":
		if secs, ok := Number(data); ok {
			ms := Millis(secs)
			return []engine.Event{
				{Type: engine.MediaPlayerLengthChanged, NewLength: ms},
				{Type: engine.MediaDurationChanged, NewDuration: ms},
			}
		}

	case "seekable":
		if _, ok := Flag(data); ok {
			return []engine.Event{{Type: engine.MediaPlayerSeekableChanged}}
		}
	}

	return nil
}

// Millis converts mpv seconds to engine milliseconds.
func Millis(secs float64) int64 {
	return int64(math.Round(secs * 1000))
}

// Flag reads an mpv flag, which arrives as a bool over JSON and as an int through
// libmpv.
func Flag(data any) (bool, bool) {
	switch v := data.(type) {
	case bool:
		return v, true
	case int:
		return v != 0, true
	case int64:
		return v != 0, true
	case float64:
		return v != 0, true
	case string:
		switch v {
		case "yes":
			return true, true
		case "no":
			return false, true
		}
	}
	return false, false
}

// Number reads an mpv numeric property.
func Number(data any) (float64, bool) {
	switch v := data.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		f, err := strconv.ParseFloat(v, 64)
		return f, err == nil
	}
	return 0, false
}
