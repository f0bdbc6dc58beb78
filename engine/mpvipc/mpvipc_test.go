package mpvipc

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/reelctl/reelctl/engine"
	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
)

// fakeMPV answers IPC commands the way mpv does, prefixing every reply with an unrelated
// event line.
type fakeMPV struct {
	socket   string
	listener net.Listener

	mu       sync.Mutex
	props    map[string]any
	received [][]any
	conns    []net.Conn
}

func startFakeMPV(props map[string]any) *fakeMPV {
	dir, err := os.MkdirTemp("", "rc")
	if err != nil {
		panic(err)
	}

	socket := filepath.Join(dir, "mpv.sock")
	l, err := net.Listen("unix", socket)
	if err != nil {
		panic(err)
	}

	f := &fakeMPV{socket: socket, listener: l, props: props}
	go func() {
		for {
			conn, err := l.Accept()
			if err != nil {
				return
			}
			f.mu.Lock()
			f.conns = append(f.conns, conn)
			f.mu.Unlock()
			go f.serve(conn)
		}
	}()
	return f
}

func (f *fakeMPV) serve(conn net.Conn) {
	scanner := bufio.NewScanner(conn)
	for scanner.Scan() {
		var cmd ipcCommand
		if err := json.Unmarshal(scanner.Bytes(), &cmd); err != nil {
			continue
		}

		f.mu.Lock()
		f.received = append(f.received, cmd.Command)
		reply := map[string]any{"request_id": cmd.RequestID, "error": "success"}
		if len(cmd.Command) == 2 && cmd.Command[0] == "get_property" {
			if v, ok := f.props[fmt.Sprint(cmd.Command[1])]; ok {
				reply["data"] = v
			} else {
				reply["error"] = "property unavailable"
			}
		}
		f.mu.Unlock()

		_, _ = conn.Write([]byte(`{"event":"audio-reconfig"}` + "\n"))
		line, _ := json.Marshal(reply)
		_, _ = conn.Write(append(line, '\n'))
	}
}

// push writes a raw line to every connection.
func (f *fakeMPV) push(line string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.conns {
		_, _ = c.Write([]byte(line + "\n"))
	}
}

func (f *fakeMPV) commands() []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]string, len(f.received))
	for i, c := range f.received {
		out[i] = strings.TrimSuffix(fmt.Sprintln(c...), "\n")
	}
	return out
}

func (f *fakeMPV) waitFor(n int) []string {
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cmds := f.commands(); len(cmds) >= n {
			return cmds
		}
		time.Sleep(5 * time.Millisecond)
	}
	return f.commands()
}

func (f *fakeMPV) close() {
	_ = f.listener.Close()
	f.mu.Lock()
	for _, c := range f.conns {
		_ = c.Close()
	}
	f.mu.Unlock()
	_ = os.RemoveAll(filepath.Dir(f.socket))
}

type eventRecorder struct {
	mu     sync.Mutex
	events []engine.Event
}

func (r *eventRecorder) HandleEvent(ev *engine.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, *ev)
}

func (r *eventRecorder) wait(n int) []engine.Event {
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		r.mu.Lock()
		if len(r.events) >= n {
			out := append([]engine.Event(nil), r.events...)
			r.mu.Unlock()
			return out
		}
		r.mu.Unlock()
		time.Sleep(5 * time.Millisecond)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]engine.Event(nil), r.events...)
}

func TestClient(t *testing.T) {
	Convey("Given an mpv socket", t, func() {
		mpv := startFakeMPV(map[string]any{"volume": 55.0})
		defer mpv.close()
		c := newClient(mpv.socket)
		defer c.close()

		Convey("When reading a property", func() {
			data, err := c.command("get_property", "volume")

			Convey("Then the reply is matched past interleaved events", func() {
				So(err, ShouldBeNil)
				So(data, ShouldEqual, 55.0)
			})
		})

		Convey("When mpv reports an error", func() {
			_, err := c.command("get_property", "chapter")

			Convey("Then it is returned without retrying", func() {
				So(errors.Is(err, ErrProperty), ShouldBeTrue)
				So(mpv.commands(), ShouldHaveLength, 1)
			})
		})

		Convey("When the client is closed", func() {
			c.close()
			_, err := c.command("stop")

			Convey("Then commands fail", func() {
				So(errors.Is(err, net.ErrClosed), ShouldBeTrue)
			})
		})
	})

	Convey("Given no mpv listening", t, func() {
		c := newClient(filepath.Join(os.TempDir(), "reelctl-missing.sock"))

		Convey("When sending a command", func() {
			_, err := c.command("stop")

			Convey("Then it fails after the retries", func() {
				So(err, ShouldNotBeNil)
				So(err.Error(), ShouldContainSubstring, "after 3 attempts")
			})
		})
	})
}

func TestPlayer(t *testing.T) {
	Convey("Given a player connected to mpv", t, func() {
		mpv := startFakeMPV(map[string]any{
			"dwidth":        1920.0,
			"dheight":       1080.0,
			"vo-configured": true,
			"idle-active":   true,
			"duration":      12.5,
			"track-list": []any{
				map[string]any{"type": "video"},
				map[string]any{"type": "sub"},
				map[string]any{"type": "sub"},
			},
		})
		defer mpv.close()

		p, err := connect(mpv.socket, nil)
		So(err, ShouldBeNil)
		defer p.Release()

		Convey("Then every translated property is observed on the event connection", func() {
			cmds := mpv.waitFor(5)
			So(cmds[:5], ShouldResemble, []string{
				"observe_property 100 pause",
				"observe_property 101 time-pos",
				"observe_property 102 percent-pos",
				"observe_property 103 duration",
				"observe_property 104 seekable",
			})
		})

		Convey("When media is set and played", func() {
			mpv.waitFor(5)
			So(p.SetMedia("/videos/film.mkv", []string{"--start=10"}), ShouldEqual, 0)
			So(p.Play(), ShouldEqual, 0)

			Convey("Then mpv is unpaused and loads the file with its options", func() {
				cmds := mpv.commands()
				So(cmds[len(cmds)-2:], ShouldResemble, []string{
					"set_property pause false",
					"loadfile /videos/film.mkv replace -1 start=10",
				})
			})
		})

		Convey("When media is stopped and played again", func() {
			mpv.waitFor(5)
			So(p.SetMedia("/videos/film.mkv", nil), ShouldEqual, 0)
			So(p.Play(), ShouldEqual, 0)
			So(p.Stop(), ShouldEqual, 0)
			So(p.Play(), ShouldEqual, 0)

			Convey("Then the idle mpv loads the file a second time", func() {
				cmds := mpv.commands()
				loads := lo.Filter(cmds, func(c string, _ int) bool {
					return strings.HasPrefix(c, "loadfile ")
				})
				So(loads, ShouldResemble, []string{
					"loadfile /videos/film.mkv replace -1",
					"loadfile /videos/film.mkv replace -1",
				})
				So(cmds[len(cmds)-1], ShouldEqual, "loadfile /videos/film.mkv replace -1")
			})
		})

		Convey("When media is rejected", func() {
			Convey("Then SetMedia fails without contacting mpv", func() {
				So(p.SetMedia("--script=x.lua", nil), ShouldNotEqual, 0)
			})
		})

		Convey("When querying video and track state", func() {
			first, second, code := p.VideoSize(0)

			Convey("Then the size comes back as height then width", func() {
				So(code, ShouldEqual, 0)
				So(first, ShouldEqual, 1080)
				So(second, ShouldEqual, 1920)
				So(p.HasVideoOutput(), ShouldBeTrue)
				So(p.SpuCount(), ShouldEqual, 2)
				So(p.Length(), ShouldEqual, 12500)
			})

			Convey("Then unavailable properties return -1", func() {
				So(p.Time(), ShouldEqual, -1)
				So(p.Mute(), ShouldEqual, -1)
				So(p.Chapter(), ShouldEqual, -1)
			})
		})

		Convey("When mpv emits playback events", func() {
			rec := &eventRecorder{}
			for ev := engine.FirstPlayerEvent; ev < engine.FirstListEvent; ev++ {
				So(p.EventManager().Attach(ev, rec), ShouldEqual, 0)
			}
			mpv.waitFor(5)

			mpv.push(`{"event":"start-file","playlist_entry_id":1}`)
			mpv.push(`{"event":"file-loaded"}`)
			mpv.push(`{"event":"property-change","id":101,"name":"time-pos","data":1.5}`)
			mpv.push(`{"event":"end-file","reason":"eof"}`)

			Convey("Then they reach attached handlers in order", func() {
				events := rec.wait(5)
				So(events, ShouldResemble, []engine.Event{
					{Type: engine.MediaPlayerMediaChanged},
					{Type: engine.MediaPlayerOpening},
					{Type: engine.MediaPlayerPlaying},
					{Type: engine.MediaPlayerTimeChanged, NewTime: 1500},
					{Type: engine.MediaPlayerEndReached},
				})
			})
		})

		Convey("When the marquee is enabled", func() {
			mpv.waitFor(5)
			p.SetMarqueeString(engine.MarqueeText, "hi")
			p.SetMarqueeInt(engine.MarqueeEnable, 1)

			Convey("Then it is drawn as an osd overlay", func() {
				cmds := mpv.commands()
				So(cmds[len(cmds)-1], ShouldStartWith, "osd-overlay 47 ass-events")
			})
		})
	})
}
