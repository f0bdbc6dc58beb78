package mpvcore

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/reelctl/reelctl/constant"
	"github.com/reelctl/reelctl/engine"
	"github.com/reelctl/reelctl/log"
)

// MarqueeOverlayID is the osd-overlay slot used for the marquee.
const MarqueeOverlayID = 47

// LogoLabel names the video filter that draws the logo.
const LogoLabel = "@" + constant.App + "-logo"

// Runner executes one mpv command.
type Runner func(args ...string) error

// unset marks a position that has not been chosen, so x and y apply.
const unset = -1

type logoState struct {
	enabled  bool
	file     string
	x, y     int
	delay    int
	repeat   int
	opacity  int
	position int
}

type marqueeState struct {
	enabled  bool
	text     string
	color    int
	opacity  int
	position int
	refresh  int
	size     int
	timeout  int
	x, y     int
}

// Overlay keeps logo and marquee properties and redraws them through mpv whenever one
// changes while the overlay is enabled.
type Overlay struct {
	run Runner

	mu      sync.Mutex
	logo    logoState
	marquee marqueeState
	hide    *time.Timer
}

func NewOverlay(run Runner) *Overlay {
	return &Overlay{
		run:     run,
		logo:    logoState{opacity: 255, position: unset, repeat: -1},
		marquee: marqueeState{color: 0xffffff, opacity: 255, position: unset},
	}
}

func (o *Overlay) SetLogoInt(opt engine.LogoOption, value int) {
	o.mu.Lock()
	defer o.mu.Unlock()

	wasEnabled := o.logo.enabled
	switch opt {
	case engine.LogoEnable:
		o.logo.enabled = value != 0
	case engine.LogoX:
		o.logo.x, o.logo.position = value, unset
	case engine.LogoY:
		o.logo.y, o.logo.position = value, unset
	case engine.LogoDelay:
		o.logo.delay = value
	case engine.LogoRepeat:
		o.logo.repeat = value
	case engine.LogoOpacity:
		o.logo.opacity = clamp(value, 0, 255)
	case engine.LogoPosition:
		o.logo.position = value
	default:
		log.Debugf("logo option %s does not take an int", opt)
		return
	}
	o.drawLogo(wasEnabled)
}

func (o *Overlay) SetLogoString(opt engine.LogoOption, value string) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if opt != engine.LogoFile {
		log.Debugf("logo option %s does not take a string", opt)
		return
	}
	o.logo.file = value
	o.drawLogo(o.logo.enabled)
}

func (o *Overlay) SetMarqueeInt(opt engine.MarqueeOption, value int) {
	o.mu.Lock()
	defer o.mu.Unlock()

	wasEnabled := o.marquee.enabled
	switch opt {
	case engine.MarqueeEnable:
		o.marquee.enabled = value != 0
	case engine.MarqueeColor:
		o.marquee.color = value & 0xffffff
	case engine.MarqueeOpacity:
		o.marquee.opacity = clamp(value, 0, 255)
	case engine.MarqueePosition:
		o.marquee.position = value
	case engine.MarqueeRefresh:
		o.marquee.refresh = value
	case engine.MarqueeSize:
		o.marquee.size = value
	case engine.MarqueeTimeout:
		o.marquee.timeout = value
	case engine.MarqueeX:
		o.marquee.x, o.marquee.position = value, unset
	case engine.MarqueeY:
		o.marquee.y, o.marquee.position = value, unset
	default:
		log.Debugf("marquee option %s does not take an int", opt)
		return
	}
	o.drawMarquee(wasEnabled)
}

func (o *Overlay) SetMarqueeString(opt engine.MarqueeOption, value string) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if opt != engine.MarqueeText {
		log.Debugf("marquee option %s does not take a string", opt)
		return
	}
	o.marquee.text = value
	o.drawMarquee(o.marquee.enabled)
}

// Close stops a pending marquee timeout.
func (o *Overlay) Close() {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.hide != nil {
		o.hide.Stop()
		o.hide = nil
	}
}

func (o *Overlay) drawMarquee(wasEnabled bool) {
	if o.hide != nil {
		o.hide.Stop()
		o.hide = nil
	}

	if !o.marquee.enabled {
		if wasEnabled {
			o.exec("osd-overlay", strconv.Itoa(MarqueeOverlayID), "none", "")
		}
		return
	}

	o.exec("osd-overlay", strconv.Itoa(MarqueeOverlayID), "ass-events", MarqueeASS(o.marquee.text, o.marqueeStyle()))

	if o.marquee.timeout > 0 {
		var t *time.Timer
		t = time.AfterFunc(time.Duration(o.marquee.timeout)*time.Millisecond, func() {
			o.mu.Lock()
			defer o.mu.Unlock()

			// A redraw or Close replaced the timer after it fired.
			if o.hide != t {
				return
			}
			o.marquee.enabled = false
			o.hide = nil
			o.exec("osd-overlay", strconv.Itoa(MarqueeOverlayID), "none", "")
		})
		o.hide = t
	}
}

func (o *Overlay) marqueeStyle() MarqueeStyle {
	return MarqueeStyle{
		Color:    o.marquee.color,
		Opacity:  o.marquee.opacity,
		Position: o.marquee.position,
		Size:     o.marquee.size,
		X:        o.marquee.x,
		Y:        o.marquee.y,
	}
}

func (o *Overlay) drawLogo(wasEnabled bool) {
	if wasEnabled {
		o.exec("vf", "remove", LogoLabel)
	}

	if !o.logo.enabled || o.logo.file == "" {
		return
	}

	o.exec("vf", "add", LogoLabel+":lavfi=["+LogoGraph(o.logo.file, o.logo.opacity, o.logo.repeat, o.logo.position, o.logo.x, o.logo.y)+"]")
}

func (o *Overlay) exec(args ...string) {
	if err := o.run(args...); err != nil {
		log.Debugf("overlay %s: %v", args[0], err)
	}
}

// MarqueeStyle carries the marquee properties that affect its ASS rendering.
type MarqueeStyle struct {
	Color    int
	Opacity  int
	Position int
	Size     int
	X, Y     int
}

// alignments maps position flags to ASS numpad alignment.
var alignments = map[int]int{
	0:     5,
	1:     4,
	2:     6,
	4:     8,
	4 | 1: 7,
	4 | 2: 9,
	8:     2,
	8 | 1: 1,
	8 | 2: 3,
}

// MarqueeASS renders text as a single ASS event line.
func MarqueeASS(text string, style MarqueeStyle) string {
	var b strings.Builder

	b.WriteString("{")
	if an, ok := alignments[style.Position]; ok {
		fmt.Fprintf(&b, `\an%d`, an)
	} else {
		fmt.Fprintf(&b, `\an7\pos(%d,%d)`, style.X, style.Y)
	}
	if style.Size > 0 {
		fmt.Fprintf(&b, `\fs%d`, style.Size)
	}
	r, g, bl := (style.Color>>16)&0xff, (style.Color>>8)&0xff, style.Color&0xff
	fmt.Fprintf(&b, `\1c&H%02X%02X%02X&`, bl, g, r)
	fmt.Fprintf(&b, `\alpha&H%02X&`, 255-clamp(style.Opacity, 0, 255))
	b.WriteString("}")

	b.WriteString(assEscaper.Replace(text))
	return b.String()
}

var assEscaper = strings.NewReplacer(`\`, `\\`, "{", `\{`, "}", `\}`, "\n", `\N`)

// LogoGraph renders the lavfi graph that overlays file on the video.
func LogoGraph(file string, opacity, repeat, position, x, y int) string {
	source := "movie='" + lavfiEscaper.Replace(file) + "'"
	if repeat < 0 {
		source += ":loop=0"
	} else if repeat > 0 {
		source += ":loop=" + strconv.Itoa(repeat+1)
	}

	alpha := strconv.FormatFloat(float64(clamp(opacity, 0, 255))/255, 'f', 3, 64)
	px, py := strconv.Itoa(x), strconv.Itoa(y)
	if position != unset {
		px, py = logoAxis(position, 1, 2, "W", "w"), logoAxis(position, 4, 8, "H", "h")
	}

	return fmt.Sprintf("%s,format=rgba,colorchannelmixer=aa=%s[logo];[in][logo]overlay=%s:%s[out]", source, alpha, px, py)
}

func logoAxis(position, low, high int, outer, inner string) string {
	switch {
	case position&low != 0:
		return "10"
	case position&high != 0:
		return outer + "-" + inner + "-10"
	}
	return "(" + outer + "-" + inner + ")/2"
}

// lavfiEscaper escapes a quoted filter argument. Paths containing ']' cannot be expressed
// inside mpv's bracketed filter string.
var lavfiEscaper = strings.NewReplacer(`\`, `\\`, "'", `'\''`, ":", `\:`)

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}
