package player

import (
	"errors"
	"fmt"
	"runtime"
	"sync"
	"testing"
	"time"

	"github.com/reelctl/reelctl/engine"
	"github.com/reelctl/reelctl/engine/enginetest"
	"github.com/reelctl/reelctl/key"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
	. "github.com/smartystreets/goconvey/convey"
)

// journal collects listener callbacks from the dispatch goroutine.
type journal struct {
	mu      sync.Mutex
	entries []string
}

func (j *journal) add(format string, args ...any) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.entries = append(j.entries, fmt.Sprintf(format, args...))
}

func (j *journal) all() []string {
	j.mu.Lock()
	defer j.mu.Unlock()
	return append([]string(nil), j.entries...)
}

// wait returns the entries once there are at least n of them, or whatever arrived
// before the deadline.
func (j *journal) wait(n int) []string {
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if entries := j.all(); len(entries) >= n {
			return entries
		}
		time.Sleep(2 * time.Millisecond)
	}
	return j.all()
}

type recorder struct {
	name    string
	journal *journal
}

func (r *recorder) DurationChanged(_ *MediaPlayer, d int64) { r.journal.add("%s:duration %d", r.name, d) }
func (r *recorder) Playing(*MediaPlayer)                    { r.journal.add("%s:playing", r.name) }
func (r *recorder) Paused(*MediaPlayer)                     { r.journal.add("%s:paused", r.name) }
func (r *recorder) Stopped(*MediaPlayer)                    { r.journal.add("%s:stopped", r.name) }
func (r *recorder) Finished(*MediaPlayer)                   { r.journal.add("%s:finished", r.name) }
func (r *recorder) TimeChanged(_ *MediaPlayer, t int64)     { r.journal.add("%s:time %d", r.name, t) }
func (r *recorder) PositionChanged(_ *MediaPlayer, p float32) {
	r.journal.add("%s:position %.2f", r.name, p)
}
func (r *recorder) LengthChanged(_ *MediaPlayer, l int64) { r.journal.add("%s:length %d", r.name, l) }
func (r *recorder) MetaDataAvailable(_ *MediaPlayer, m VideoMetaData) {
	r.journal.add("%s:meta %s", r.name, m)
}

type panicker struct {
	EventAdapter
}

func (panicker) Stopped(*MediaPlayer) { panic("listener failure") }

func cyclesOf(m *metaPoller) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cycles
}

// waitForCycles returns once the poller has started n cycles or the deadline passes.
func waitForCycles(m *metaPoller, n int) {
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) && cyclesOf(m) < n {
		time.Sleep(2 * time.Millisecond)
	}
}

func newTestPlayer(opts ...Option) (*MediaPlayer, *enginetest.Engine) {
	eng := &enginetest.Engine{}
	opts = append([]Option{WithFs(afero.NewMemMapFs())}, opts...)
	p, err := New(eng, opts...)
	if err != nil {
		panic(err)
	}
	return p, eng
}

func TestNew(t *testing.T) {
	Convey("Given an engine that cannot be opened", t, func() {
		eng := &enginetest.Engine{FailOpen: true}

		Convey("When creating a media player", func() {
			p, err := New(eng, WithArgs("--quiet"))

			Convey("Then an initialisation error is returned and no player exists", func() {
				So(p, ShouldBeNil)
				So(errors.Is(err, ErrInit), ShouldBeTrue)
				So(errors.Is(err, enginetest.ErrOpen), ShouldBeTrue)
				So(eng.Args(), ShouldResemble, []string{"--quiet"})

				var initErr *InitError
				So(errors.As(err, &initErr), ShouldBeTrue)
				So(initErr.Stage, ShouldEqual, "open")
			})
		})
	})

	Convey("Given an engine whose player cannot be created", t, func() {
		eng := &enginetest.Engine{FailPlayer: true}
		before := runtime.NumGoroutine()

		Convey("When creating a media player", func() {
			p, err := New(eng)

			Convey("Then the instance is released and no goroutine is left behind", func() {
				So(p, ShouldBeNil)
				So(errors.Is(err, ErrInit), ShouldBeTrue)
				So(errors.Is(err, enginetest.ErrNewPlayer), ShouldBeTrue)
				So(eng.Instance().Releases(), ShouldEqual, 1)
				So(runtime.NumGoroutine(), ShouldBeLessThanOrEqualTo, before)
			})
		})
	})

	Convey("Given no engine", t, func() {
		_, err := New(nil)

		Convey("Then New fails with an initialisation error", func() {
			So(errors.Is(err, ErrInit), ShouldBeTrue)
		})
	})

	Convey("Given a working engine", t, func() {
		p, eng := newTestPlayer()
		defer p.Release()
		native := eng.Instance().Player()

		Convey("Then the bridge is attached to every player event and nothing else", func() {
			for ev := engine.FirstPlayerEvent; ev < engine.FirstListEvent; ev++ {
				So(native.Attached(ev), ShouldEqual, 1)
			}
			So(native.Attached(engine.MediaStateChanged), ShouldEqual, 0)
			So(native.Attached(engine.MediaListItemAdded), ShouldEqual, 0)
		})
	})
}

func TestOptionsFromConfig(t *testing.T) {
	Convey("Given engine arguments in the configuration", t, func() {
		viper.Set(key.EngineArgs, []string{"--no-video", "--mute=yes"})
		viper.Set(key.PlayerStandardOptions, []string{"sub-auto=fuzzy"})
		viper.Set(key.PlayerVoutWaitPeriod, 250)
		defer func() {
			viper.Set(key.EngineArgs, nil)
			viper.Set(key.PlayerStandardOptions, nil)
			viper.Set(key.PlayerVoutWaitPeriod, nil)
		}()

		Convey("When creating a player from the configuration", func() {
			eng := &enginetest.Engine{}
			p, err := New(eng, OptionsFromConfig()...)
			So(err, ShouldBeNil)
			defer p.Release()

			Convey("Then the engine is opened with them", func() {
				So(eng.Args(), ShouldResemble, []string{"--no-video", "--mute=yes"})
				So(p.StandardMediaOptions(), ShouldResemble, []string{"sub-auto=fuzzy"})
				So(p.poller.interval, ShouldEqual, 250*time.Millisecond)
			})
		})
	})
}

func TestDispatch(t *testing.T) {
	Convey("Given a player with two listeners", t, func() {
		p, eng := newTestPlayer()
		defer p.Release()
		native := eng.Instance().Player()

		j := &journal{}
		l1 := &recorder{name: "L1", journal: j}
		l2 := &recorder{name: "L2", journal: j}
		p.AddListener(l1)
		p.AddListener(l2)

		Convey("When the engine reports that playback stopped", func() {
			native.Emit(engine.Event{Type: engine.MediaPlayerStopped})

			Convey("Then the most recently added listener hears it first", func() {
				So(j.wait(2), ShouldResemble, []string{"L2:stopped", "L1:stopped"})
			})
		})

		Convey("When several events are emitted", func() {
			native.Emit(engine.Event{Type: engine.MediaPlayerTimeChanged, NewTime: 100})
			native.Emit(engine.Event{Type: engine.MediaPlayerOpening})
			native.Emit(engine.Event{Type: engine.MediaPlayerPositionChanged, NewPosition: 0.25})
			native.Emit(engine.Event{Type: engine.MediaDurationChanged, NewDuration: 90000})
			native.Emit(engine.Event{Type: engine.MediaPlayerEndReached})

			Convey("Then they are delivered in order with their payloads, skipping unmapped ones", func() {
				So(j.wait(8), ShouldResemble, []string{
					"L2:time 100", "L1:time 100",
					"L2:position 0.25", "L1:position 0.25",
					"L2:duration 90000", "L1:duration 90000",
					"L2:finished", "L1:finished",
				})
			})
		})

		Convey("When a listener is removed", func() {
			p.RemoveListener(l1)
			p.RemoveListener(&recorder{name: "unknown", journal: j})
			native.Emit(engine.Event{Type: engine.MediaPlayerPaused})

			Convey("Then only the remaining listener is notified", func() {
				time.Sleep(20 * time.Millisecond)
				So(j.wait(1), ShouldResemble, []string{"L2:paused"})
			})
		})

		Convey("When a listener panics", func() {
			p.AddListener(panicker{})
			native.Emit(engine.Event{Type: engine.MediaPlayerStopped})
			native.Emit(engine.Event{Type: engine.MediaPlayerLengthChanged, NewLength: 42})

			Convey("Then the other listeners and later events are still delivered", func() {
				So(j.wait(4), ShouldResemble, []string{
					"L2:stopped", "L1:stopped",
					"L2:length 42", "L1:length 42",
				})
			})
		})
	})

	Convey("Given a listener registered twice", t, func() {
		p, eng := newTestPlayer()
		defer p.Release()

		j := &journal{}
		l := &recorder{name: "L", journal: j}
		p.AddListener(l)
		p.AddListener(l)

		Convey("When it is removed once and an event arrives", func() {
			p.RemoveListener(l)
			eng.Instance().Player().Emit(engine.Event{Type: engine.MediaPlayerPlaying})

			Convey("Then it is notified once", func() {
				time.Sleep(20 * time.Millisecond)
				So(j.wait(1), ShouldResemble, []string{"L:playing"})
			})
		})
	})
}

func TestRegistry(t *testing.T) {
	Convey("Given a registry with one listener", t, func() {
		var r registry
		l1 := &recorder{name: "L1"}
		l2 := &recorder{name: "L2"}
		r.add(l1)

		Convey("When a snapshot is taken before the registry changes", func() {
			snap := r.snapshot()
			r.add(l2)
			removed := r.remove(l1)

			Convey("Then the snapshot is unaffected", func() {
				So(removed, ShouldBeTrue)
				So(snap, ShouldResemble, []EventListener{l1})
				So(r.snapshot(), ShouldResemble, []EventListener{l2})
			})
		})

		Convey("When removing a listener that was never added", func() {
			So(r.remove(l2), ShouldBeFalse)

			Convey("Then nothing changes", func() {
				So(r.len(), ShouldEqual, 1)
			})
		})
	})
}

func TestMetadata(t *testing.T) {
	Convey("Given a player whose engine has video output", t, func() {
		p, eng := newTestPlayer(WithVoutWaitPeriod(5 * time.Millisecond))
		defer p.Release()
		native := eng.Instance().Player()
		native.SetVideo(true, 480, 640, 2)

		j := &journal{}
		p.AddListener(&recorder{name: "L", journal: j})

		Convey("When playback starts", func() {
			native.Emit(engine.Event{Type: engine.MediaPlayerPlaying})

			Convey("Then playing is followed by metadata with width and height in order", func() {
				So(j.wait(2), ShouldResemble, []string{"L:playing", "L:meta 640x480, 2 spu"})
			})
		})
	})

	Convey("Given a player whose engine has no video output yet", t, func() {
		p, eng := newTestPlayer(WithVoutWaitPeriod(5 * time.Millisecond))
		defer p.Release()
		native := eng.Instance().Player()

		j := &journal{}
		p.AddListener(&recorder{name: "L", journal: j})

		Convey("When playing is reported twice before output appears", func() {
			native.Emit(engine.Event{Type: engine.MediaPlayerPlaying})
			native.Emit(engine.Event{Type: engine.MediaPlayerPlaying})
			j.wait(2)
			waitForCycles(p.poller, 2)
			time.Sleep(20 * time.Millisecond)

			native.SetVideo(true, 480, 640, 1)
			entries := j.wait(3)
			time.Sleep(30 * time.Millisecond)

			Convey("Then the second cycle replaces the first and metadata arrives once", func() {
				So(cyclesOf(p.poller), ShouldEqual, 2)
				So(entries, ShouldResemble, []string{"L:playing", "L:playing", "L:meta 640x480, 1 spu"})
				So(j.all(), ShouldHaveLength, 3)
			})
		})
	})

	Convey("Given a player toggled rapidly between playing and stopped", t, func() {
		p, eng := newTestPlayer(WithVoutWaitPeriod(time.Millisecond))
		native := eng.Instance().Player()

		j := &journal{}
		p.AddListener(&recorder{name: "L", journal: j})

		Convey("When the events race with video output and release", func() {
			for i := 0; i < 50; i++ {
				native.Emit(engine.Event{Type: engine.MediaPlayerPlaying})
				native.Emit(engine.Event{Type: engine.MediaPlayerStopped})
				native.Emit(engine.Event{Type: engine.MediaPlayerPlaying})
				if i == 25 {
					native.SetVideo(true, 480, 640, 0)
				}
			}

			So(func() { p.Release() }, ShouldNotPanic)
			So(func() { p.Release() }, ShouldNotPanic)

			Convey("Then the native player is released once and no event follows release", func() {
				So(native.Releases(), ShouldEqual, 1)
				after := len(j.all())
				time.Sleep(20 * time.Millisecond)
				So(j.all(), ShouldHaveLength, after)
			})
		})
	})

	Convey("Given a player whose engine never produces video output", t, func() {
		p, eng := newTestPlayer(WithVoutWaitPeriod(time.Hour))
		native := eng.Instance().Player()

		j := &journal{}
		p.AddListener(&recorder{name: "L", journal: j})

		Convey("When playback starts and the player is released while the poller sleeps", func() {
			native.Emit(engine.Event{Type: engine.MediaPlayerPlaying})
			j.wait(1)

			done := make(chan struct{})
			go func() {
				p.Release()
				close(done)
			}()

			Convey("Then release does not wait for the poll interval", func() {
				released := false
				select {
				case <-done:
					released = true
				case <-time.After(2 * time.Second):
				}
				So(released, ShouldBeTrue)
				So(j.all(), ShouldResemble, []string{"L:playing"})
			})
		})
	})
}

func TestRelease(t *testing.T) {
	Convey("Given a player", t, func() {
		p, eng := newTestPlayer()
		instance := eng.Instance()
		native := instance.Player()

		Convey("When it is released twice", func() {
			p.Release()
			So(p.Close(), ShouldBeNil)

			Convey("Then the native player and instance are released exactly once", func() {
				So(p.Released(), ShouldBeTrue)
				So(native.Releases(), ShouldEqual, 1)
				So(instance.Releases(), ShouldEqual, 1)
				So(native.Attached(engine.MediaPlayerPlaying), ShouldEqual, 0)
			})

			Convey("Then commands fail fast and queries return sentinels without reaching the engine", func() {
				calls := len(native.Calls())

				So(errors.Is(p.Play(), ErrReleased), ShouldBeTrue)
				So(errors.Is(p.PlayMedia("file.mkv"), ErrReleased), ShouldBeTrue)
				So(errors.Is(p.SaveSnapshotTo("/snaps/out.png"), ErrReleased), ShouldBeTrue)
				So(p.Volume(), ShouldEqual, -1)
				So(p.Length(), ShouldEqual, -1)
				So(p.IsPlaying(), ShouldBeFalse)
				So(p.Rate(), ShouldEqual, 0)
				p.EnableMarquee(true)

				So(len(native.Calls()), ShouldEqual, calls)
			})
		})

		Convey("When commands race with release", func() {
			var wg sync.WaitGroup
			for i := 0; i < 8; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					for n := 0; n < 200; n++ {
						_ = p.Play()
						_ = p.Volume()
						p.SetMarqueeText("racing")
					}
				}()
			}
			p.Release()
			wg.Wait()

			Convey("Then no call reaches the released engine player", func() {
				So(native.Releases(), ShouldEqual, 1)
			})
		})
	})
}

func TestCommands(t *testing.T) {
	Convey("Given a player", t, func() {
		p, eng := newTestPlayer()
		defer p.Release()
		native := eng.Instance().Player()

		Convey("When playing media without a surface", func() {
			err := p.PlayMedia("file.mkv")

			Convey("Then it fails before touching the engine", func() {
				So(err, ShouldEqual, ErrNoSurface)
				So(native.Calls(), ShouldNotContain, "Play()")
			})
		})

		Convey("When standard options are set and media is played", func() {
			p.SetSurface(WindowID(0x2a))
			p.SetStandardMediaOptions("a", "b")
			So(p.PlayMedia("file.mkv", "c"), ShouldBeNil)

			Convey("Then the surface is bound and standard options come first", func() {
				mrl, options := native.Media()
				So(mrl, ShouldEqual, "file.mkv")
				So(options, ShouldResemble, []string{"a", "b", "c"})

				calls := native.Calls()
				So(calls[len(calls)-3:], ShouldResemble, []string{
					"SetWindow(42)",
					"SetMedia(file.mkv,[a b c])",
					"Play()",
				})
			})

			Convey("Then changing them affects only the next item", func() {
				p.SetStandardMediaOptions("d")
				_, options := native.Media()
				So(options, ShouldResemble, []string{"a", "b", "c"})

				So(p.PlayMedia("next.mkv"), ShouldBeNil)
				_, options = native.Media()
				So(options, ShouldResemble, []string{"d"})
			})
		})

		Convey("When the engine rejects a command", func() {
			native.SetCode("Pause", -1)
			err := p.Pause()

			Convey("Then the status code is reported", func() {
				var cmdErr *CommandError
				So(errors.As(err, &cmdErr), ShouldBeTrue)
				So(cmdErr.Op, ShouldEqual, "pause")
				So(cmdErr.Code, ShouldEqual, -1)
				So(errors.Is(err, ErrCommandFailed), ShouldBeTrue)
			})
		})

		Convey("When querying the engine", func() {
			native.SetCode("Volume", 65)
			native.SetCode("Mute", 1)

			Convey("Then values pass through", func() {
				So(p.Volume(), ShouldEqual, 65)
				So(p.IsMute(), ShouldBeTrue)
				So(p.IsPlayable(), ShouldBeTrue)
			})
		})

		Convey("When issuing audio, chapter and subtitle commands", func() {
			So(p.SetVolume(30), ShouldBeNil)
			So(p.SetMute(true), ShouldBeNil)
			So(p.NextChapter(), ShouldBeNil)
			So(p.SetSpu(2), ShouldBeNil)

			Convey("Then each one is a single engine call", func() {
				calls := native.Calls()
				So(calls[len(calls)-4:], ShouldResemble, []string{
					"SetVolume(30)", "SetMute(true)", "NextChapter()", "SetSpu(2)",
				})
			})
		})
	})
}

type fullScreen struct{ on bool }

func (f *fullScreen) EnterFullScreenMode()   { f.on = true }
func (f *fullScreen) ExitFullScreenMode()    { f.on = false }
func (f *fullScreen) IsFullScreenMode() bool { return f.on }

func TestFullScreen(t *testing.T) {
	Convey("Given a player without a full-screen strategy", t, func() {
		p, _ := newTestPlayer()
		defer p.Release()

		Convey("Then full-screen calls do nothing", func() {
			p.ToggleFullScreen()
			p.SetFullScreen(true)
			So(p.IsFullScreen(), ShouldBeFalse)
		})
	})

	Convey("Given a player with a full-screen strategy", t, func() {
		strategy := &fullScreen{}
		p, _ := newTestPlayer(WithFullScreenStrategy(strategy))
		defer p.Release()

		Convey("When toggling twice", func() {
			p.ToggleFullScreen()
			on := p.IsFullScreen()
			p.ToggleFullScreen()

			Convey("Then the strategy enters and then leaves full-screen mode", func() {
				So(on, ShouldBeTrue)
				So(p.IsFullScreen(), ShouldBeFalse)
			})
		})
	})
}
