package mpvcore

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/reelctl/reelctl/engine"
	. "github.com/smartystreets/goconvey/convey"
)

type commandLog struct {
	mu   sync.Mutex
	cmds []string
}

func (c *commandLog) run(args ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cmds = append(c.cmds, strings.Join(args, " "))
	return nil
}

func (c *commandLog) all() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.cmds...)
}

func TestOverlay(t *testing.T) {
	Convey("Given an overlay", t, func() {
		cmds := &commandLog{}
		o := NewOverlay(cmds.run)
		defer o.Close()

		Convey("When marquee properties change while it is disabled", func() {
			o.SetMarqueeInt(engine.MarqueeOpacity, 70)
			o.SetMarqueeString(engine.MarqueeText, "hello")

			Convey("Then nothing is drawn", func() {
				So(cmds.all(), ShouldBeEmpty)
			})

			Convey("Then enabling draws the marquee with the stored properties", func() {
				o.SetMarqueeInt(engine.MarqueeEnable, 1)
				So(cmds.all(), ShouldResemble, []string{
					`osd-overlay 47 ass-events {\an7\pos(0,0)\1c&HFFFFFF&\alpha&HB9&}hello`,
				})
			})
		})

		Convey("When an enabled marquee is disabled", func() {
			o.SetMarqueeInt(engine.MarqueeEnable, 1)
			o.SetMarqueeInt(engine.MarqueeEnable, 0)

			Convey("Then the overlay slot is cleared", func() {
				So(cmds.all()[1], ShouldEqual, "osd-overlay 47 none ")
			})
		})

		Convey("When the marquee has a timeout", func() {
			o.SetMarqueeInt(engine.MarqueeTimeout, 10)
			o.SetMarqueeInt(engine.MarqueeEnable, 1)

			Convey("Then it is hidden after the timeout", func() {
				deadline := time.Now().Add(2 * time.Second)
				for len(cmds.all()) < 2 && time.Now().Before(deadline) {
					time.Sleep(5 * time.Millisecond)
				}
				So(cmds.all(), ShouldHaveLength, 2)
				So(cmds.all()[1], ShouldEqual, "osd-overlay 47 none ")
			})
		})

		Convey("When the marquee is redrawn after its old timeout fired but before it ran", func() {
			o.SetMarqueeInt(engine.MarqueeTimeout, 20)
			o.SetMarqueeInt(engine.MarqueeEnable, 1)

			o.mu.Lock()
			time.Sleep(60 * time.Millisecond)
			o.marquee.text = "second"
			o.marquee.timeout = 60000
			o.drawMarquee(true)
			redrawn := o.hide
			o.mu.Unlock()
			time.Sleep(30 * time.Millisecond)

			Convey("Then the stale timeout leaves the new marquee and its timer alone", func() {
				o.mu.Lock()
				enabled, hide := o.marquee.enabled, o.hide
				o.mu.Unlock()

				So(enabled, ShouldBeTrue)
				So(hide, ShouldEqual, redrawn)
				all := cmds.all()
				So(all, ShouldHaveLength, 2)
				So(all[1], ShouldEndWith, "}second")
			})
		})

		Convey("When the logo is enabled with a file", func() {
			o.SetLogoString(engine.LogoFile, "/tmp/logo.png")
			o.SetLogoInt(engine.LogoPosition, 4|2)
			o.SetLogoInt(engine.LogoEnable, 1)

			Convey("Then a labelled filter is added", func() {
				So(cmds.all(), ShouldResemble, []string{
					"vf add @reelctl-logo:lavfi=[movie='/tmp/logo.png':loop=0,format=rgba,colorchannelmixer=aa=1.000[logo];[in][logo]overlay=W-w-10:10[out]]",
				})
			})

			Convey("Then changing a property replaces the filter", func() {
				o.SetLogoInt(engine.LogoOpacity, 0)
				all := cmds.all()
				So(all[1], ShouldEqual, "vf remove @reelctl-logo")
				So(all[2], ShouldContainSubstring, "aa=0.000")
			})
		})
	})
}

func TestMarqueeASS(t *testing.T) {
	Convey("Given marquee text with ASS control characters", t, func() {
		ass := MarqueeASS("a{b}\nc", MarqueeStyle{Color: 0x123456, Opacity: 255, Position: 8, Size: 24})

		Convey("Then the text is escaped and the style is rendered", func() {
			So(ass, ShouldEqual, `{\an2\fs24\1c&H563412&\alpha&H00&}a\{b\}\Nc`)
		})
	})
}
