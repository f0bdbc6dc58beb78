// Package engine declares the boundary between reelctl and a native media playback engine.
//
// Engines follow native conventions: commands return a status code where 0 means
// success, and getters return -1 when a value does not apply. Adapters live in
// subpackages (mpvipc, libmpv) and a recording fake lives in enginetest.
package engine

// Engine opens native engine instances.
type Engine interface {
	// Open creates a new engine instance with the given engine arguments.
	Open(args []string) (Instance, error)
}

// Instance is an open native engine.
type Instance interface {
	// NewPlayer creates a media player bound to this instance.
	NewPlayer() (Player, error)

	// Release frees the instance. It must be called after every player it created has
	// been released.
	Release()
}

// Status reports playback state.
type Status interface {
	WillPlay() bool
	IsPlaying() bool
	IsSeekable() bool
	CanPause() bool
	// Length and Time are in milliseconds, or -1 when no media is loaded.
	Length() int64
	Time() int64
	FPS() float32
	Rate() float32
}

// Transport issues playback commands.
type Transport interface {
	// SetMedia loads mrl with the given options as the next item. Options are applied in
	// order.
	SetMedia(mrl string, options []string) int
	Play() int
	// Pause toggles between paused and playing.
	Pause() int
	Stop() int
}

// Audio controls the audio output.
type Audio interface {
	ToggleMute() int
	SetMute(mute bool) int
	// Mute returns 1 when muted, 0 when not and -1 when there is no audio output.
	Mute() int
	Volume() int
	SetVolume(volume int) int
}

// Chapters navigates chapters of the current media.
type Chapters interface {
	ChapterCount() int
	Chapter() int
	SetChapter(chapter int) int
	NextChapter() int
	PreviousChapter() int
}

// Subtitles selects sub-picture units.
type Subtitles interface {
	SpuCount() int
	Spu() int
	SetSpu(spu int) int
}

// Video exposes video output state.
type Video interface {
	// HasVideoOutput reports whether a video output exists yet.
	HasVideoOutput() bool

	// VideoSize returns the raw dimension pair of video track num in the engine's own
	// order: first is the vertical extent, second the horizontal one. The status code is
	// non-zero when no size is known.
	VideoSize(num int) (first, second int, code int)

	// TakeSnapshot writes the current frame to path. Zero width and height keep the
	// source dimensions.
	TakeSnapshot(path string, width, height uint) int

	// SetWindow binds rendering to a platform window handle.
	SetWindow(id uintptr) int
}

// Overlay writes logo and marquee properties. Writes are fire and forget.
type Overlay interface {
	SetLogoInt(opt LogoOption, value int)
	SetLogoString(opt LogoOption, value string)
	SetMarqueeInt(opt MarqueeOption, value int)
	SetMarqueeString(opt MarqueeOption, value string)
}

// Player is a native media player.
type Player interface {
	Status
	Transport
	Audio
	Chapters
	Subtitles
	Video
	Overlay

	// EventManager returns the player's event manager, or nil if it has none.
	EventManager() EventManager

	// Release frees the player.
	Release()
}
