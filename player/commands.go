package player

import "github.com/reelctl/reelctl/engine"

// Status queries return -1, false or 0 once the player is released.

func (p *MediaPlayer) IsPlayable() bool {
	return query(p.handle, false, engine.Player.WillPlay)
}

func (p *MediaPlayer) IsPlaying() bool {
	return query(p.handle, false, engine.Player.IsPlaying)
}

func (p *MediaPlayer) IsSeekable() bool {
	return query(p.handle, false, engine.Player.IsSeekable)
}

func (p *MediaPlayer) CanPause() bool {
	return query(p.handle, false, engine.Player.CanPause)
}

// Length returns the media length in milliseconds, or -1.
func (p *MediaPlayer) Length() int64 {
	return query(p.handle, -1, engine.Player.Length)
}

// Time returns the playback time in milliseconds, or -1.
func (p *MediaPlayer) Time() int64 {
	return query(p.handle, -1, engine.Player.Time)
}

func (p *MediaPlayer) FPS() float32 {
	return query(p.handle, 0, engine.Player.FPS)
}

func (p *MediaPlayer) Rate() float32 {
	return query(p.handle, 0, engine.Player.Rate)
}

// PlayMedia binds the video surface, loads mrl with the standard options followed by
// options, and starts playback. It fails with ErrNoSurface before touching the engine if
// no surface has been set.
func (p *MediaPlayer) PlayMedia(mrl string, options ...string) error {
	if p.handle.released() {
		return ErrReleased
	}

	p.mu.Lock()
	surface := p.surface
	merged := p.mediaOptions(options)
	p.mu.Unlock()

	if surface == nil {
		return ErrNoSurface
	}

	return p.handle.with(func(ep engine.Player) error {
		if err := surface.BindSurface(ep); err != nil {
			return err
		}
		if code := ep.SetMedia(mrl, merged); code != 0 {
			return &CommandError{Op: "set-media", Code: code}
		}
		if code := ep.Play(); code != 0 {
			return &CommandError{Op: "play", Code: code}
		}
		return nil
	})
}

// Play starts or resumes playback of the current item.
func (p *MediaPlayer) Play() error {
	return p.handle.call("play", engine.Player.Play)
}

// Pause toggles pause.
func (p *MediaPlayer) Pause() error {
	return p.handle.call("pause", engine.Player.Pause)
}

// Stop stops playback; a later Play starts from the beginning.
func (p *MediaPlayer) Stop() error {
	return p.handle.call("stop", engine.Player.Stop)
}

func (p *MediaPlayer) ToggleMute() error {
	return p.handle.call("toggle-mute", engine.Player.ToggleMute)
}

func (p *MediaPlayer) SetMute(mute bool) error {
	return p.handle.call("set-mute", func(ep engine.Player) int { return ep.SetMute(mute) })
}

func (p *MediaPlayer) IsMute() bool {
	return query(p.handle, false, func(ep engine.Player) bool { return ep.Mute() > 0 })
}

// Volume returns the volume from 0 to 100, or -1.
func (p *MediaPlayer) Volume() int {
	return query(p.handle, -1, engine.Player.Volume)
}

func (p *MediaPlayer) SetVolume(volume int) error {
	return p.handle.call("set-volume", func(ep engine.Player) int { return ep.SetVolume(volume) })
}

// ChapterCount returns the number of chapters, or -1 if there are none.
func (p *MediaPlayer) ChapterCount() int {
	return query(p.handle, -1, engine.Player.ChapterCount)
}

// Chapter returns the zero-based current chapter, or -1.
func (p *MediaPlayer) Chapter() int {
	return query(p.handle, -1, engine.Player.Chapter)
}

func (p *MediaPlayer) SetChapter(chapter int) error {
	return p.handle.call("set-chapter", func(ep engine.Player) int { return ep.SetChapter(chapter) })
}

// NextChapter has no effect at the last chapter.
func (p *MediaPlayer) NextChapter() error {
	return p.handle.call("next-chapter", engine.Player.NextChapter)
}

// PreviousChapter has no effect at the first chapter.
func (p *MediaPlayer) PreviousChapter() error {
	return p.handle.call("previous-chapter", engine.Player.PreviousChapter)
}

// SpuCount returns the number of sub-picture units, or -1.
func (p *MediaPlayer) SpuCount() int {
	return query(p.handle, -1, engine.Player.SpuCount)
}

// Spu returns the current sub-picture unit, or -1.
func (p *MediaPlayer) Spu() int {
	return query(p.handle, -1, engine.Player.Spu)
}

func (p *MediaPlayer) SetSpu(spu int) error {
	return p.handle.call("set-spu", func(ep engine.Player) int { return ep.SetSpu(spu) })
}
