package mpvipc

import (
	"sync"

	"github.com/reelctl/reelctl/engine"
	"github.com/reelctl/reelctl/engine/mpvcore"
	"github.com/reelctl/reelctl/log"
	"github.com/samber/lo"
)

// Player implements engine.Player over mpv's IPC socket.
type Player struct {
	proc     *process
	cmd      *client
	events   *eventLoop
	handlers mpvcore.Handlers
	overlay  *mpvcore.Overlay

	loads mpvcore.LoadQueue

	releaseOnce sync.Once
}

func (p *Player) EventManager() engine.EventManager {
	return &p.handlers
}

// run issues a command and converts the outcome to a status code.
func (p *Player) run(args ...any) int {
	if _, err := p.cmd.command(args...); err != nil {
		log.Debugf("mpv %v: %v", args[0], err)
		return -1
	}
	return 0
}

func (p *Player) runStrings(args ...string) error {
	_, err := p.cmd.command(lo.ToAnySlice(args)...)
	return err
}

func (p *Player) set(name string, value any) int {
	return p.run("set_property", name, value)
}

func (p *Player) get(name string) (any, bool) {
	data, err := p.cmd.command("get_property", name)
	if err != nil {
		log.Tracef("mpv get %s: %v", name, err)
		return nil, false
	}
	return data, data != nil
}

func (p *Player) getFlag(name string) (bool, bool) {
	data, ok := p.get(name)
	if !ok {
		return false, false
	}
	return mpvcore.Flag(data)
}

func (p *Player) getNumber(name string) (float64, bool) {
	data, ok := p.get(name)
	if !ok {
		return 0, false
	}
	return mpvcore.Number(data)
}

func (p *Player) getInt(name string) int {
	if v, ok := p.getNumber(name); ok {
		return int(v)
	}
	return -1
}

func (p *Player) WillPlay() bool {
	_, ok := p.get("path")
	return ok
}

func (p *Player) IsPlaying() bool {
	idle, ok := p.getFlag("idle-active")
	if !ok || idle {
		return false
	}
	paused, ok := p.getFlag("pause")
	return ok && !paused
}

func (p *Player) IsSeekable() bool {
	seekable, _ := p.getFlag("seekable")
	return seekable
}

func (p *Player) CanPause() bool {
	idle, ok := p.getFlag("idle-active")
	return ok && !idle
}

func (p *Player) Length() int64 {
	if secs, ok := p.getNumber("duration"); ok {
		return mpvcore.Millis(secs)
	}
	return -1
}

func (p *Player) Time() int64 {
	if secs, ok := p.getNumber("time-pos"); ok {
		return mpvcore.Millis(secs)
	}
	return -1
}

func (p *Player) FPS() float32 {
	fps, _ := p.getNumber("container-fps")
	return float32(fps)
}

func (p *Player) Rate() float32 {
	speed, _ := p.getNumber("speed")
	return float32(speed)
}

// SetMedia validates mrl and keeps it until Play loads it.
func (p *Player) SetMedia(mrl string, options []string) int {
	target, err := mpvcore.SanitizeTarget(mrl)
	if err != nil {
		log.Warnf("rejecting media %q: %v", mrl, err)
		return -1
	}

	p.loads.Set(mpvcore.LoadCommand(target, options))
	return 0
}

// Play unpauses and loads the media when it is new or mpv has dropped it after a stop.
func (p *Player) Play() int {
	load := p.loads.Next(func() bool {
		idle, ok := p.getFlag("idle-active")
		return ok && idle
	})

	if code := p.set("pause", false); code != 0 {
		return code
	}
	if load != nil {
		return p.run(lo.ToAnySlice(load)...)
	}
	return 0
}

func (p *Player) Pause() int { return p.run("cycle", "pause") }
func (p *Player) Stop() int  { return p.run("stop") }

func (p *Player) ToggleMute() int       { return p.run("cycle", "mute") }
func (p *Player) SetMute(mute bool) int { return p.set("mute", mute) }

func (p *Player) Mute() int {
	muted, ok := p.getFlag("mute")
	if !ok {
		return -1
	}
	if muted {
		return 1
	}
	return 0
}

func (p *Player) Volume() int          { return p.getInt("volume") }
func (p *Player) SetVolume(v int) int  { return p.set("volume", v) }
func (p *Player) ChapterCount() int    { return p.getInt("chapters") }
func (p *Player) Chapter() int         { return p.getInt("chapter") }
func (p *Player) SetChapter(n int) int { return p.set("chapter", n) }
func (p *Player) NextChapter() int     { return p.run("add", "chapter", 1) }
func (p *Player) PreviousChapter() int { return p.run("add", "chapter", -1) }

// SpuCount counts subtitle tracks.
func (p *Player) SpuCount() int {
	data, ok := p.get("track-list")
	if !ok {
		return -1
	}

	tracks, ok := data.([]any)
	if !ok {
		return -1
	}

	return lo.CountBy(tracks, func(track any) bool {
		t, ok := track.(map[string]any)
		return ok && t["type"] == "sub"
	})
}

// Spu returns the selected subtitle track id, or -1 when subtitles are off.
func (p *Player) Spu() int {
	return p.getInt("sid")
}

func (p *Player) SetSpu(spu int) int {
	if spu < 0 {
		return p.set("sid", "no")
	}
	return p.set("sid", spu)
}

func (p *Player) HasVideoOutput() bool {
	configured, _ := p.getFlag("vo-configured")
	return configured
}

// VideoSize reports the display size of the current video as (height, width). mpv only
// exposes the selected track, so num is ignored.
func (p *Player) VideoSize(int) (int, int, int) {
	h, okH := p.getNumber("dheight")
	w, okW := p.getNumber("dwidth")
	if !okH || !okW {
		return 0, 0, -1
	}
	return int(h), int(w), 0
}

// TakeSnapshot saves the current video frame without subtitles or OSD. mpv cannot scale
// screenshots, so width and height are ignored.
func (p *Player) TakeSnapshot(path string, _, _ uint) int {
	return p.run("screenshot-to-file", path, "video")
}

// SetWindow embeds mpv into the window id. Zero leaves mpv in its own window. mpv applies
// a new id when the video output is next created.
func (p *Player) SetWindow(id uintptr) int {
	if id == 0 {
		return 0
	}
	return p.set("wid", int64(id))
}

func (p *Player) SetLogoInt(opt engine.LogoOption, value int) {
	p.overlay.SetLogoInt(opt, value)
}

func (p *Player) SetLogoString(opt engine.LogoOption, value string) {
	p.overlay.SetLogoString(opt, value)
}

func (p *Player) SetMarqueeInt(opt engine.MarqueeOption, value int) {
	p.overlay.SetMarqueeInt(opt, value)
}

func (p *Player) SetMarqueeString(opt engine.MarqueeOption, value string) {
	p.overlay.SetMarqueeString(opt, value)
}

// Release stops event delivery, quits mpv and closes the command connection.
func (p *Player) Release() {
	p.releaseOnce.Do(func() {
		p.overlay.Close()
		p.events.stop()
		if p.proc != nil {
			p.proc.stop(p.cmd)
		}
		p.cmd.close()
	})
}
