package engine

import "fmt"

// EventType is the discriminant of a native engine event.
//
// The values form one contiguous enumeration. Media events come first, then media player
// events, then media list and list player events. A controller attaches to the
// [FirstPlayerEvent, FirstListEvent) range only.
type EventType int

// Media events.
const (
	MediaMetaChanged EventType = iota
	MediaSubItemAdded
	MediaParsedChanged
	MediaFreed
	MediaStateChanged
)

// Media player events. MediaDurationChanged is raised by the media but delivered through
// the player's event manager, so it sits at the end of the player block.
const (
	MediaPlayerMediaChanged EventType = iota + MediaStateChanged + 1
	MediaPlayerNothingSpecial
	MediaPlayerOpening
	MediaPlayerBuffering
	MediaPlayerPlaying
	MediaPlayerPaused
	MediaPlayerStopped
	MediaPlayerForward
	MediaPlayerBackward
	MediaPlayerEndReached
	MediaPlayerEncounteredError
	MediaPlayerTimeChanged
	MediaPlayerPositionChanged
	MediaPlayerSeekableChanged
	MediaPlayerPausableChanged
	MediaPlayerTitleChanged
	MediaPlayerSnapshotTaken
	MediaPlayerLengthChanged
	MediaDurationChanged
)

// Media list and list player events.
const (
	MediaListItemAdded EventType = iota + MediaDurationChanged + 1
	MediaListWillAddItem
	MediaListItemDeleted
	MediaListWillDeleteItem
	MediaListPlayerPlayed
	MediaListPlayerNextItemSet
	MediaListPlayerStopped
)

// Bounds of the event range a media player controller subscribes to.
const (
	FirstPlayerEvent = MediaPlayerMediaChanged
	FirstListEvent   = MediaListItemAdded
)

var eventNames = map[EventType]string{
	MediaMetaChanged:            "MediaMetaChanged",
	MediaSubItemAdded:           "MediaSubItemAdded",
	MediaParsedChanged:          "MediaParsedChanged",
	MediaFreed:                  "MediaFreed",
	MediaStateChanged:           "MediaStateChanged",
	MediaPlayerMediaChanged:     "MediaPlayerMediaChanged",
	MediaPlayerNothingSpecial:   "MediaPlayerNothingSpecial",
	MediaPlayerOpening:          "MediaPlayerOpening",
	MediaPlayerBuffering:        "MediaPlayerBuffering",
	MediaPlayerPlaying:          "MediaPlayerPlaying",
	MediaPlayerPaused:           "MediaPlayerPaused",
	MediaPlayerStopped:          "MediaPlayerStopped",
	MediaPlayerForward:          "MediaPlayerForward",
	MediaPlayerBackward:         "MediaPlayerBackward",
	MediaPlayerEndReached:       "MediaPlayerEndReached",
	MediaPlayerEncounteredError: "MediaPlayerEncounteredError",
	MediaPlayerTimeChanged:      "MediaPlayerTimeChanged",
	MediaPlayerPositionChanged:  "MediaPlayerPositionChanged",
	MediaPlayerSeekableChanged:  "MediaPlayerSeekableChanged",
	MediaPlayerPausableChanged:  "MediaPlayerPausableChanged",
	MediaPlayerTitleChanged:     "MediaPlayerTitleChanged",
	MediaPlayerSnapshotTaken:    "MediaPlayerSnapshotTaken",
	MediaPlayerLengthChanged:    "MediaPlayerLengthChanged",
	MediaDurationChanged:        "MediaDurationChanged",
	MediaListItemAdded:          "MediaListItemAdded",
	MediaListWillAddItem:        "MediaListWillAddItem",
	MediaListItemDeleted:        "MediaListItemDeleted",
	MediaListWillDeleteItem:     "MediaListWillDeleteItem",
	MediaListPlayerPlayed:       "MediaListPlayerPlayed",
	MediaListPlayerNextItemSet:  "MediaListPlayerNextItemSet",
	MediaListPlayerStopped:      "MediaListPlayerStopped",
}

func (t EventType) String() string {
	if name, ok := eventNames[t]; ok {
		return name
	}
	return fmt.Sprintf("EventType(%d)", int(t))
}

// Event is the payload handed to a Handler.
//
// Only the field matching Type carries a value. Times and lengths are in milliseconds,
// positions are fractions in [0, 1].
type Event struct {
	Type        EventType
	NewDuration int64
	NewTime     int64
	NewPosition float32
	NewLength   int64
}

// Handler receives native events on an engine-owned goroutine or thread.
//
// The *Event is only valid until HandleEvent returns. Implementations must copy what they
// need and must not call back into the engine.
type Handler interface {
	HandleEvent(ev *Event)
}

// EventManager attaches handlers to individual event types.
// Attach returns 0 on success, like every other engine status code.
type EventManager interface {
	Attach(t EventType, h Handler) int
	Detach(t EventType, h Handler)
}
