package inline

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/reelctl/reelctl/engine"
	"github.com/reelctl/reelctl/engine/enginetest"
	"github.com/reelctl/reelctl/key"
	"github.com/reelctl/reelctl/player"
	"github.com/samber/lo"
	"github.com/samber/mo"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// afterPlay waits until the fake player has been told to play and then runs fn on it.
func afterPlay(eng *enginetest.Engine, fn func(p *enginetest.Player)) {
	go func() {
		deadline := time.Now().Add(2 * time.Second)
		for time.Now().Before(deadline) {
			if inst := eng.Instance(); inst != nil {
				if p := inst.Player(); p != nil && lo.Contains(p.Calls(), "Play()") {
					fn(p)
					return
				}
			}
			time.Sleep(5 * time.Millisecond)
		}
	}()
}

func playing(p *enginetest.Player) {
	p.SetVideo(true, 480, 640, 2)
	p.Emit(engine.Event{Type: engine.MediaPlayerPlaying})
}

func TestRun(t *testing.T) {
	Convey("Given a fake engine", t, func() {
		viper.Set(key.PlayerVoutWaitPeriod, 10)
		eng := &enginetest.Engine{}
		var out bytes.Buffer
		options := &Options{
			Out:     &out,
			MRL:     "/videos/film.mkv",
			Format:  FormatJSON,
			Timeout: 2 * time.Second,
			Player:  []player.Option{player.WithFs(afero.NewMemMapFs())},
		}

		Convey("When the media starts playing with video output", func() {
			afterPlay(eng, playing)
			err := Run(eng, options)

			Convey("Then its metadata is written as json", func() {
				So(err, ShouldBeNil)

				var result Output
				So(json.Unmarshal(out.Bytes(), &result), ShouldBeNil)
				So(result.MRL, ShouldEqual, "/videos/film.mkv")
				So(result.Video, ShouldResemble, player.VideoMetaData{Width: 640, Height: 480, SpuCount: 2})
				So(result.Snapshot, ShouldBeEmpty)
			})

			Convey("Then the player is released", func() {
				So(eng.Instance().Player().Releases(), ShouldEqual, 1)
			})
		})

		Convey("When a snapshot is requested", func() {
			options.Snapshot = mo.Some("/snaps/frame.png")
			afterPlay(eng, playing)
			err := Run(eng, options)

			Convey("Then the frame is saved before the result is written", func() {
				So(err, ShouldBeNil)
				So(eng.Instance().Player().Calls(), ShouldContain, "TakeSnapshot(/snaps/frame.png,0,0)")

				var result Output
				So(json.Unmarshal(out.Bytes(), &result), ShouldBeNil)
				So(result.Snapshot, ShouldEqual, "/snaps/frame.png")
			})
		})

		Convey("When playback ends before video output appears", func() {
			afterPlay(eng, func(p *enginetest.Player) {
				p.Emit(engine.Event{Type: engine.MediaPlayerEndReached})
			})

			Convey("Then Run fails", func() {
				So(Run(eng, options), ShouldEqual, ErrFinished)
			})
		})

		Convey("When nothing happens", func() {
			options.Timeout = 30 * time.Millisecond

			Convey("Then Run times out", func() {
				So(Run(eng, options), ShouldEqual, ErrTimeout)
			})
		})

		Convey("When the engine cannot be opened", func() {
			eng.FailOpen = true

			Convey("Then the init error is returned", func() {
				var initErr *player.InitError
				err := Run(eng, options)
				So(err, ShouldNotBeNil)
				So(errors.As(err, &initErr), ShouldBeTrue)
			})
		})
	})
}

func TestEncode(t *testing.T) {
	Convey("Given a probe result", t, func() {
		result := Output{
			MRL:    "/videos/film.mkv",
			Length: 90000,
			Video:  player.VideoMetaData{Width: 1920, Height: 1080, SpuCount: 1},
		}

		Convey("Then yaml round trips", func() {
			data, err := encode(result, FormatYAML)
			So(err, ShouldBeNil)

			var decoded Output
			So(yaml.Unmarshal(data, &decoded), ShouldBeNil)
			So(decoded, ShouldResemble, result)
		})

		Convey("Then toml round trips", func() {
			data, err := encode(result, FormatTOML)
			So(err, ShouldBeNil)

			var decoded Output
			So(toml.Unmarshal(data, &decoded), ShouldBeNil)
			So(decoded, ShouldResemble, result)
		})

		Convey("Then text is human readable", func() {
			data, err := encode(result, FormatText)
			So(err, ShouldBeNil)
			So(string(data), ShouldContainSubstring, "1920x1080")
			So(string(data), ShouldContainSubstring, "1m30s")
		})
	})
}

func TestParseFormat(t *testing.T) {
	Convey("Given format names", t, func() {
		Convey("Then known ones parse case-insensitively", func() {
			f, err := ParseFormat(" YAML ")
			So(err, ShouldBeNil)
			So(f, ShouldEqual, FormatYAML)
		})

		Convey("Then unknown ones are rejected", func() {
			_, err := ParseFormat("xml")
			So(err, ShouldNotBeNil)
		})
	})
}
