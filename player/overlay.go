package player

import (
	"image/color"

	"github.com/reelctl/reelctl/engine"
	"github.com/samber/mo"
)

// Position anchors an overlay on the video. Values combine like the engine's bit flags.
type Position int

const (
	Center      Position = 0
	Left        Position = 1
	Right       Position = 2
	Top         Position = 4
	TopLeft              = Top | Left
	TopRight             = Top | Right
	Bottom      Position = 8
	BottomLeft           = Bottom | Left
	BottomRight          = Bottom | Right
)

// overlay runs a fire-and-forget overlay write. Writes after Release are dropped.
func (p *MediaPlayer) overlay(fn func(ep engine.Player)) {
	_ = p.handle.with(func(ep engine.Player) error {
		fn(ep)
		return nil
	})
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func (p *MediaPlayer) EnableLogo(enable bool) {
	p.overlay(func(ep engine.Player) { ep.SetLogoInt(engine.LogoEnable, boolInt(enable)) })
}

// SetLogoOpacity sets opacity from 0 (transparent) to 255 (opaque).
func (p *MediaPlayer) SetLogoOpacity(opacity int) {
	p.overlay(func(ep engine.Player) { ep.SetLogoInt(engine.LogoOpacity, opacity) })
}

// SetLogoLocation places the logo at x, y pixels from the top left corner.
func (p *MediaPlayer) SetLogoLocation(x, y int) {
	p.overlay(func(ep engine.Player) {
		ep.SetLogoInt(engine.LogoX, x)
		ep.SetLogoInt(engine.LogoY, y)
	})
}

func (p *MediaPlayer) SetLogoPosition(pos Position) {
	p.overlay(func(ep engine.Player) { ep.SetLogoInt(engine.LogoPosition, int(pos)) })
}

// SetLogoFile sets the image shown as the logo.
func (p *MediaPlayer) SetLogoFile(path string) {
	p.overlay(func(ep engine.Player) { ep.SetLogoString(engine.LogoFile, path) })
}

func (p *MediaPlayer) EnableMarquee(enable bool) {
	p.overlay(func(ep engine.Player) { ep.SetMarqueeInt(engine.MarqueeEnable, boolInt(enable)) })
}

func (p *MediaPlayer) SetMarqueeText(text string) {
	p.overlay(func(ep engine.Player) { ep.SetMarqueeString(engine.MarqueeText, text) })
}

// SetMarqueeColour sets the text colour. Alpha is ignored; use SetMarqueeOpacity.
func (p *MediaPlayer) SetMarqueeColour(c color.Color) {
	p.SetMarqueeRGB(rgb(c))
}

// SetMarqueeRGB sets the text colour as 0xRRGGBB. Higher bits are discarded.
func (p *MediaPlayer) SetMarqueeRGB(value int) {
	p.overlay(func(ep engine.Player) { ep.SetMarqueeInt(engine.MarqueeColor, value&0xffffff) })
}

// SetMarqueeOpacity sets opacity from 0 (transparent) to 255 (opaque).
func (p *MediaPlayer) SetMarqueeOpacity(opacity int) {
	p.overlay(func(ep engine.Player) { ep.SetMarqueeInt(engine.MarqueeOpacity, opacity) })
}

// SetMarqueeSize sets the font size in pixels.
func (p *MediaPlayer) SetMarqueeSize(size int) {
	p.overlay(func(ep engine.Player) { ep.SetMarqueeInt(engine.MarqueeSize, size) })
}

// SetMarqueeTimeout hides the marquee after timeout milliseconds; 0 keeps it shown.
func (p *MediaPlayer) SetMarqueeTimeout(timeout int) {
	p.overlay(func(ep engine.Player) { ep.SetMarqueeInt(engine.MarqueeTimeout, timeout) })
}

func (p *MediaPlayer) SetMarqueeLocation(x, y int) {
	p.overlay(func(ep engine.Player) {
		ep.SetMarqueeInt(engine.MarqueeX, x)
		ep.SetMarqueeInt(engine.MarqueeY, y)
	})
}

func (p *MediaPlayer) SetMarqueePosition(pos Position) {
	p.overlay(func(ep engine.Player) { ep.SetMarqueeInt(engine.MarqueePosition, int(pos)) })
}

func positionOption(o mo.Option[Position]) mo.Option[int] {
	return mo.TupleToOption(int(o.OrEmpty()), o.IsPresent())
}

func rgb(c color.Color) int {
	r, g, b, _ := c.RGBA()
	return int(r>>8)<<16 | int(g>>8)<<8 | int(b>>8)
}

// LogoConfig groups logo settings. Absent fields are left untouched.
type LogoConfig struct {
	File     mo.Option[string]
	X        mo.Option[int]
	Y        mo.Option[int]
	Position mo.Option[Position]
	Opacity  mo.Option[int]
	Delay    mo.Option[int]
	Repeat   mo.Option[int]
	Enable   mo.Option[bool]
}

// ApplyLogo writes every present field of cfg as its own engine write, enable last.
func (p *MediaPlayer) ApplyLogo(cfg LogoConfig) {
	p.overlay(func(ep engine.Player) {
		if v, ok := cfg.File.Get(); ok {
			ep.SetLogoString(engine.LogoFile, v)
		}
		ints := []struct {
			opt engine.LogoOption
			val mo.Option[int]
		}{
			{engine.LogoX, cfg.X},
			{engine.LogoY, cfg.Y},
			{engine.LogoPosition, positionOption(cfg.Position)},
			{engine.LogoOpacity, cfg.Opacity},
			{engine.LogoDelay, cfg.Delay},
			{engine.LogoRepeat, cfg.Repeat},
		}
		for _, w := range ints {
			if v, ok := w.val.Get(); ok {
				ep.SetLogoInt(w.opt, v)
			}
		}
		if v, ok := cfg.Enable.Get(); ok {
			ep.SetLogoInt(engine.LogoEnable, boolInt(v))
		}
	})
}

// MarqueeConfig groups marquee settings. Absent fields are left untouched.
type MarqueeConfig struct {
	Text     mo.Option[string]
	Colour   mo.Option[color.Color]
	Opacity  mo.Option[int]
	Size     mo.Option[int]
	Timeout  mo.Option[int]
	Refresh  mo.Option[int]
	Position mo.Option[Position]
	X        mo.Option[int]
	Y        mo.Option[int]
	Enable   mo.Option[bool]
}

// ApplyMarquee writes every present field of cfg as its own engine write, enable last.
func (p *MediaPlayer) ApplyMarquee(cfg MarqueeConfig) {
	p.overlay(func(ep engine.Player) {
		if v, ok := cfg.Text.Get(); ok {
			ep.SetMarqueeString(engine.MarqueeText, v)
		}
		if v, ok := cfg.Colour.Get(); ok {
			ep.SetMarqueeInt(engine.MarqueeColor, rgb(v))
		}
		ints := []struct {
			opt engine.MarqueeOption
			val mo.Option[int]
		}{
			{engine.MarqueeOpacity, cfg.Opacity},
			{engine.MarqueeSize, cfg.Size},
			{engine.MarqueeTimeout, cfg.Timeout},
			{engine.MarqueeRefresh, cfg.Refresh},
			{engine.MarqueePosition, positionOption(cfg.Position)},
			{engine.MarqueeX, cfg.X},
			{engine.MarqueeY, cfg.Y},
		}
		for _, w := range ints {
			if v, ok := w.val.Get(); ok {
				ep.SetMarqueeInt(w.opt, v)
			}
		}
		if v, ok := cfg.Enable.Get(); ok {
			ep.SetMarqueeInt(engine.MarqueeEnable, boolInt(v))
		}
	})
}
