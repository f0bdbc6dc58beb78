// Package enginetest provides an in-memory engine that records every native call.
package enginetest

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/reelctl/reelctl/engine"
)

// ErrOpen is returned by Open when Engine.FailOpen is set.
var ErrOpen = errors.New("enginetest: open failed")

// ErrNewPlayer is returned by NewPlayer when Engine.FailPlayer is set.
var ErrNewPlayer = errors.New("enginetest: player creation failed")

// Engine is a fake engine. The zero value opens successfully.
type Engine struct {
	FailOpen   bool
	FailPlayer bool

	mu       sync.Mutex
	args     []string
	instance *Instance
}

// Open implements engine.Engine.
func (e *Engine) Open(args []string) (engine.Instance, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.args = slices.Clone(args)
	if e.FailOpen {
		return nil, ErrOpen
	}

	e.instance = &Instance{engine: e}
	return e.instance, nil
}

// Args returns the arguments of the last Open call.
func (e *Engine) Args() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return slices.Clone(e.args)
}

// Instance returns the last opened instance.
func (e *Engine) Instance() *Instance {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.instance
}

// Instance is a fake engine instance.
type Instance struct {
	engine *Engine

	mu       sync.Mutex
	player   *Player
	releases int
}

// NewPlayer implements engine.Instance.
func (i *Instance) NewPlayer() (engine.Player, error) {
	if i.engine.FailPlayer {
		return nil, ErrNewPlayer
	}

	i.mu.Lock()
	defer i.mu.Unlock()
	i.player = NewPlayer()
	return i.player, nil
}

// Release implements engine.Instance.
func (i *Instance) Release() {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.releases++
}

// Releases counts Release calls.
func (i *Instance) Releases() int {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.releases
}

// Player returns the last created player.
func (i *Instance) Player() *Player {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.player
}

// Player is a fake media player. Calls are recorded in order as "Name(args)" strings.
type Player struct {
	mu       sync.Mutex
	calls    []string
	codes    map[string]int
	handlers map[engine.EventType][]engine.Handler
	released int

	hasVout  bool
	first    int
	second   int
	spuCount int
	media    string
	options  []string
}

// NewPlayer returns a fake player with no video output.
func NewPlayer() *Player {
	return &Player{
		codes:    make(map[string]int),
		handlers: make(map[engine.EventType][]engine.Handler),
		spuCount: -1,
	}
}

// SetCode makes every later call to the named method return code.
func (p *Player) SetCode(method string, code int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.codes[method] = code
}

// SetVideo configures the video output reported by HasVideoOutput, VideoSize and SpuCount.
// first and second are returned by VideoSize in that order.
func (p *Player) SetVideo(hasVout bool, first, second, spuCount int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.hasVout, p.first, p.second, p.spuCount = hasVout, first, second, spuCount
}

// Calls returns the recorded calls.
func (p *Player) Calls() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return slices.Clone(p.calls)
}

// Media returns the mrl and options of the last SetMedia call.
func (p *Player) Media() (string, []string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.media, slices.Clone(p.options)
}

// Releases counts Release calls.
func (p *Player) Releases() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.released
}

// Attached counts the handlers attached to t.
func (p *Player) Attached(t engine.EventType) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.handlers[t])
}

// Emit delivers ev to every handler attached to its type, on the calling goroutine, and
// then zeroes the event so handlers that kept the pointer observe garbage.
func (p *Player) Emit(ev engine.Event) {
	p.mu.Lock()
	handlers := slices.Clone(p.handlers[ev.Type])
	p.mu.Unlock()

	native := ev
	for _, h := range handlers {
		h.HandleEvent(&native)
	}
	native = engine.Event{Type: -1}
}

func (p *Player) record(method string, args ...any) int {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.released > 0 {
		panic(fmt.Sprintf("enginetest: %s called on a released player", method))
	}

	call := method + "("
	for i, a := range args {
		if i > 0 {
			call += ","
		}
		call += fmt.Sprint(a)
	}
	p.calls = append(p.calls, call+")")
	return p.codes[method]
}

func (p *Player) EventManager() engine.EventManager { return (*eventManager)(p) }

func (p *Player) WillPlay() bool   { return p.record("WillPlay") == 0 }
func (p *Player) IsPlaying() bool  { return p.record("IsPlaying") == 0 }
func (p *Player) IsSeekable() bool { return p.record("IsSeekable") == 0 }
func (p *Player) CanPause() bool   { return p.record("CanPause") == 0 }
func (p *Player) Length() int64    { return int64(p.record("Length")) }
func (p *Player) Time() int64      { return int64(p.record("Time")) }
func (p *Player) FPS() float32     { return float32(p.record("FPS")) }
func (p *Player) Rate() float32    { return float32(p.record("Rate")) }

func (p *Player) SetMedia(mrl string, options []string) int {
	code := p.record("SetMedia", mrl, options)
	p.mu.Lock()
	p.media, p.options = mrl, slices.Clone(options)
	p.mu.Unlock()
	return code
}

func (p *Player) Play() int  { return p.record("Play") }
func (p *Player) Pause() int { return p.record("Pause") }
func (p *Player) Stop() int  { return p.record("Stop") }

func (p *Player) ToggleMute() int        { return p.record("ToggleMute") }
func (p *Player) SetMute(mute bool) int  { return p.record("SetMute", mute) }
func (p *Player) Mute() int              { return p.record("Mute") }
func (p *Player) Volume() int            { return p.record("Volume") }
func (p *Player) SetVolume(vol int) int  { return p.record("SetVolume", vol) }
func (p *Player) ChapterCount() int      { return p.record("ChapterCount") }
func (p *Player) Chapter() int           { return p.record("Chapter") }
func (p *Player) SetChapter(n int) int   { return p.record("SetChapter", n) }
func (p *Player) NextChapter() int       { return p.record("NextChapter") }
func (p *Player) PreviousChapter() int   { return p.record("PreviousChapter") }
func (p *Player) Spu() int               { return p.record("Spu") }
func (p *Player) SetSpu(spu int) int     { return p.record("SetSpu", spu) }
func (p *Player) SetWindow(id uintptr) int { return p.record("SetWindow", id) }

func (p *Player) SpuCount() int {
	p.record("SpuCount")
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.spuCount
}

func (p *Player) HasVideoOutput() bool {
	p.record("HasVideoOutput")
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.hasVout
}

func (p *Player) VideoSize(num int) (int, int, int) {
	code := p.record("VideoSize", num)
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.first, p.second, code
}

func (p *Player) TakeSnapshot(path string, width, height uint) int {
	return p.record("TakeSnapshot", path, width, height)
}

func (p *Player) SetLogoInt(opt engine.LogoOption, value int) {
	p.record("SetLogoInt", opt, value)
}

func (p *Player) SetLogoString(opt engine.LogoOption, value string) {
	p.record("SetLogoString", opt, value)
}

func (p *Player) SetMarqueeInt(opt engine.MarqueeOption, value int) {
	p.record("SetMarqueeInt", opt, value)
}

func (p *Player) SetMarqueeString(opt engine.MarqueeOption, value string) {
	p.record("SetMarqueeString", opt, value)
}

// Release implements engine.Player. Any later call panics.
func (p *Player) Release() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.released++
}

type eventManager Player

func (m *eventManager) Attach(t engine.EventType, h engine.Handler) int {
	p := (*Player)(m)
	code := p.record("Attach", t)
	if code != 0 {
		return code
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.handlers[t] = append(p.handlers[t], h)
	return 0
}

func (m *eventManager) Detach(t engine.EventType, h engine.Handler) {
	p := (*Player)(m)
	p.record("Detach", t)

	p.mu.Lock()
	defer p.mu.Unlock()
	if i := slices.Index(p.handlers[t], h); i >= 0 {
		p.handlers[t] = slices.Delete(p.handlers[t], i, i+1)
	}
}
