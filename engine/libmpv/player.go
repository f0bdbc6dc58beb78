//go:build libmpv

package libmpv

import (
	"strconv"
	"sync"

	"github.com/gen2brain/go-mpv"
	"github.com/reelctl/reelctl/engine"
	"github.com/reelctl/reelctl/engine/mpvcore"
	"github.com/reelctl/reelctl/log"
)

// waitTimeout bounds each WaitEvent call so the pump notices Release.
const waitTimeout = 0.25

// Player implements engine.Player on a libmpv handle.
type Player struct {
	m          *mpv.Mpv
	handlers   mpvcore.Handlers
	overlay    *mpvcore.Overlay
	translator mpvcore.Translator

	loads mpvcore.LoadQueue

	stop        chan struct{}
	done        chan struct{}
	releaseOnce sync.Once
}

func newPlayer(m *mpv.Mpv) *Player {
	p := &Player{
		m:    m,
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}
	p.overlay = mpvcore.NewOverlay(func(args ...string) error { return m.Command(args) })
	return p
}

// pump is the engine event thread: it waits for libmpv events and emits their
// translation until Release or shutdown.
func (p *Player) pump() {
	defer close(p.done)

	for {
		select {
		case <-p.stop:
			return
		default:
		}

		ev := p.m.WaitEvent(waitTimeout)
		if ev == nil {
			continue
		}

		switch ev.EventID {
		case mpv.EventStart:
			p.handlers.Emit(p.translator.StartFile()...)
		case mpv.EventFileLoaded:
			p.handlers.Emit(p.translator.FileLoaded()...)
		case mpv.EventEnd:
			p.handlers.Emit(p.translator.EndFile(endReason(ev.EndFile().Reason))...)
		case mpv.EventPropertyChange:
			prop := ev.Property()
			p.handlers.Emit(p.translator.Property(prop.Name, prop.Data)...)
		case mpv.EventShutdown:
			return
		}
	}
}

func endReason(reason mpv.EndFileReason) string {
	switch reason {
	case mpv.EndFileEOF:
		return mpvcore.EndEOF
	case mpv.EndFileStop:
		return mpvcore.EndStop
	case mpv.EndFileQuit:
		return mpvcore.EndQuit
	case mpv.EndFileError:
		return mpvcore.EndError
	case mpv.EndFileRedirect:
		return mpvcore.EndRedirect
	}
	return ""
}

func (p *Player) EventManager() engine.EventManager {
	return &p.handlers
}

func code(op string, err error) int {
	if err != nil {
		log.Debugf("libmpv %s: %v", op, err)
		return -1
	}
	return 0
}

func (p *Player) command(args ...string) int {
	return code(args[0], p.m.Command(args))
}

func (p *Player) flag(name string) (bool, bool) {
	v, err := p.m.GetProperty(name, mpv.FormatFlag)
	if err != nil || v == nil {
		return false, false
	}
	return mpvcore.Flag(v)
}

func (p *Player) number(name string) (float64, bool) {
	v, err := p.m.GetProperty(name, mpv.FormatDouble)
	if err != nil || v == nil {
		return 0, false
	}
	return mpvcore.Number(v)
}

func (p *Player) integer(name string) int {
	v, err := p.m.GetProperty(name, mpv.FormatInt64)
	if err != nil || v == nil {
		return -1
	}
	if n, ok := mpvcore.Number(v); ok {
		return int(n)
	}
	return -1
}

func (p *Player) WillPlay() bool {
	v, err := p.m.GetProperty("path", mpv.FormatString)
	return err == nil && v != nil
}

func (p *Player) IsPlaying() bool {
	idle, ok := p.flag("idle-active")
	if !ok || idle {
		return false
	}
	paused, ok := p.flag("pause")
	return ok && !paused
}

func (p *Player) IsSeekable() bool {
	v, _ := p.flag("seekable")
	return v
}

func (p *Player) CanPause() bool {
	idle, ok := p.flag("idle-active")
	return ok && !idle
}

func (p *Player) Length() int64 {
	if v, ok := p.number("duration"); ok {
		return mpvcore.Millis(v)
	}
	return -1
}

func (p *Player) Time() int64 {
	if v, ok := p.number("time-pos"); ok {
		return mpvcore.Millis(v)
	}
	return -1
}

func (p *Player) FPS() float32 {
	v, _ := p.number("container-fps")
	return float32(v)
}

func (p *Player) Rate() float32 {
	v, _ := p.number("speed")
	return float32(v)
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
		idle, ok := p.flag("idle-active")
		return ok && idle
	})

	if c := code("unpause", p.m.SetProperty("pause", mpv.FormatFlag, false)); c != 0 {
		return c
	}
	if load != nil {
		return p.command(load...)
	}
	return 0
}

func (p *Player) Pause() int { return p.command("cycle", "pause") }
func (p *Player) Stop() int  { return p.command("stop") }

func (p *Player) ToggleMute() int { return p.command("cycle", "mute") }

func (p *Player) SetMute(mute bool) int {
	return code("mute", p.m.SetProperty("mute", mpv.FormatFlag, mute))
}

func (p *Player) Mute() int {
	muted, ok := p.flag("mute")
	switch {
	case !ok:
		return -1
	case muted:
		return 1
	}
	return 0
}

func (p *Player) Volume() int {
	if v, ok := p.number("volume"); ok {
		return int(v)
	}
	return -1
}

func (p *Player) SetVolume(volume int) int {
	return code("volume", p.m.SetProperty("volume", mpv.FormatInt64, int64(volume)))
}

func (p *Player) ChapterCount() int { return p.integer("chapters") }
func (p *Player) Chapter() int      { return p.integer("chapter") }

func (p *Player) SetChapter(chapter int) int {
	return code("chapter", p.m.SetProperty("chapter", mpv.FormatInt64, int64(chapter)))
}

func (p *Player) NextChapter() int     { return p.command("add", "chapter", "1") }
func (p *Player) PreviousChapter() int { return p.command("add", "chapter", "-1") }

// SpuCount counts subtitle tracks.
func (p *Player) SpuCount() int {
	n := p.integer("track-list/count")
	if n < 0 {
		return -1
	}

	count := 0
	for i := 0; i < n; i++ {
		v, err := p.m.GetProperty("track-list/"+strconv.Itoa(i)+"/type", mpv.FormatString)
		if err == nil && v == "sub" {
			count++
		}
	}
	return count
}

func (p *Player) Spu() int { return p.integer("sid") }

func (p *Player) SetSpu(spu int) int {
	if spu < 0 {
		return code("sid", p.m.SetPropertyString("sid", "no"))
	}
	return code("sid", p.m.SetProperty("sid", mpv.FormatInt64, int64(spu)))
}

func (p *Player) HasVideoOutput() bool {
	v, _ := p.flag("vo-configured")
	return v
}

// VideoSize reports (height, width) of the current video. num is ignored.
func (p *Player) VideoSize(int) (int, int, int) {
	h := p.integer("dheight")
	w := p.integer("dwidth")
	if h < 0 || w < 0 {
		return 0, 0, -1
	}
	return h, w, 0
}

// TakeSnapshot ignores width and height; mpv always writes the source size.
func (p *Player) TakeSnapshot(path string, _, _ uint) int {
	return p.command("screenshot-to-file", path, "video")
}

// SetWindow embeds video into the native window id. Zero keeps mpv's own window.
func (p *Player) SetWindow(id uintptr) int {
	if id == 0 {
		return 0
	}
	return code("wid", p.m.SetOptionString("wid", strconv.FormatUint(uint64(id), 10)))
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

// Release stops the event pump and destroys the handle.
func (p *Player) Release() {
	p.releaseOnce.Do(func() {
		p.overlay.Close()
		close(p.stop)
		<-p.done
		p.m.TerminateDestroy()
	})
}
