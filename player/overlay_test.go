package player

import (
	"image/color"
	"testing"

	"github.com/samber/mo"
	. "github.com/smartystreets/goconvey/convey"
)

func lastCalls(calls []string, n int) []string {
	if len(calls) < n {
		return calls
	}
	return calls[len(calls)-n:]
}

func TestOverlay(t *testing.T) {
	Convey("Given a player", t, func() {
		p, eng := newTestPlayer()
		defer p.Release()
		native := eng.Instance().Player()

		Convey("When setting marquee opacity and then enabling the marquee", func() {
			p.SetMarqueeOpacity(70)
			p.EnableMarquee(true)

			Convey("Then two writes reach the engine in that order", func() {
				So(lastCalls(native.Calls(), 2), ShouldResemble, []string{
					"SetMarqueeInt(opacity,70)",
					"SetMarqueeInt(enable,1)",
				})
			})
		})

		Convey("When setting the marquee colour", func() {
			p.SetMarqueeColour(color.RGBA{R: 0x12, G: 0x34, B: 0x56, A: 0xff})
			p.SetMarqueeRGB(0x7f654321)

			Convey("Then alpha is dropped", func() {
				So(lastCalls(native.Calls(), 2), ShouldResemble, []string{
					"SetMarqueeInt(color,1193046)",
					"SetMarqueeInt(color,6636321)",
				})
			})
		})

		Convey("When placing the logo", func() {
			p.SetLogoFile("/tmp/logo.png")
			p.SetLogoLocation(10, 20)
			p.SetLogoPosition(BottomRight)

			Convey("Then each property is its own write", func() {
				So(lastCalls(native.Calls(), 4), ShouldResemble, []string{
					"SetLogoString(file,/tmp/logo.png)",
					"SetLogoInt(x,10)",
					"SetLogoInt(y,20)",
					"SetLogoInt(position,10)",
				})
			})
		})

		Convey("When applying a partial marquee config", func() {
			p.ApplyMarquee(MarqueeConfig{
				Enable:  mo.Some(true),
				Opacity: mo.Some(70),
				Text:    mo.Some("now playing"),
			})

			Convey("Then only present fields are written, enable last", func() {
				So(lastCalls(native.Calls(), 3), ShouldResemble, []string{
					"SetMarqueeString(text,now playing)",
					"SetMarqueeInt(opacity,70)",
					"SetMarqueeInt(enable,1)",
				})
			})
		})

		Convey("When applying a logo config that disables the logo", func() {
			p.ApplyLogo(LogoConfig{
				Enable:   mo.Some(false),
				Opacity:  mo.Some(128),
				Position: mo.Some(TopLeft),
			})

			Convey("Then enable is written last", func() {
				So(lastCalls(native.Calls(), 3), ShouldResemble, []string{
					"SetLogoInt(position,5)",
					"SetLogoInt(opacity,128)",
					"SetLogoInt(enable,0)",
				})
			})
		})
	})
}
