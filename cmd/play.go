package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"time"

	"github.com/reelctl/reelctl/color"
	"github.com/reelctl/reelctl/engine"
	"github.com/reelctl/reelctl/engine/backend"
	"github.com/reelctl/reelctl/history"
	"github.com/reelctl/reelctl/icon"
	"github.com/reelctl/reelctl/key"
	"github.com/reelctl/reelctl/log"
	"github.com/reelctl/reelctl/player"
	"github.com/reelctl/reelctl/style"
	"github.com/reelctl/reelctl/tui"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
)

func init() {
	rootCmd.AddCommand(playCmd)
	addPlayFlags(playCmd)
}

func addPlayFlags(cmd *cobra.Command) {
	cmd.Flags().BoolP("continue", "c", false, "Resume the most recently played media")
	cmd.Flags().StringSliceP("option", "o", nil, "Media option for this item only, e.g. start=90 (may be repeated)")
	cmd.Flags().Bool("plain", false, "Print events as lines instead of the interactive view")
}

var playCmd = &cobra.Command{
	Use:   "play [media]",
	Short: "Play a file or URL",
	Long: `Play a local file or URL with the configured engine.
The interactive view is used when stdout is a terminal; otherwise every player event is printed as a line.`,
	Args:    cobra.MaximumNArgs(1),
	Example: "  reelctl play ~/Videos/film.mkv -o start=90\n  reelctl play --continue",
	Run:     runPlay,
}

func runPlay(cmd *cobra.Command, args []string) {
	CheckDependencies()

	eng, err := backend.Configured()
	handleErr(err)

	var mrl string
	if len(args) > 0 {
		mrl = args[0]
	}

	options := lo.Must(cmd.Flags().GetStringSlice("option"))
	cont := lo.Must(cmd.Flags().GetBool("continue"))

	if lo.Must(cmd.Flags().GetBool("plain")) || !term.IsTerminal(int(os.Stdout.Fd())) {
		handleErr(playPlain(eng, mrl, options, cont, cmd.OutOrStdout()))
		return
	}

	handleErr(tui.Run(eng, &tui.Options{
		MRL:          mrl,
		MediaOptions: options,
		Continue:     cont,
	}))
}

// eventPrinter writes one line per player event.
type eventPrinter struct {
	out  io.Writer
	mu   sync.Mutex
	done chan struct{}
	once sync.Once

	time, length int64
}

func (e *eventPrinter) line(ic icon.Icon, format string, args ...any) {
	e.mu.Lock()
	defer e.mu.Unlock()
	_, _ = fmt.Fprintf(e.out, "%s %s\n", icon.Get(ic), fmt.Sprintf(format, args...))
}

func (e *eventPrinter) finish() {
	e.once.Do(func() { close(e.done) })
}

func (e *eventPrinter) DurationChanged(_ *player.MediaPlayer, d int64) {
	e.line(icon.Progress, "duration %s", time.Duration(d)*time.Millisecond)
}

func (e *eventPrinter) Playing(*player.MediaPlayer) { e.line(icon.Play, "playing") }
func (e *eventPrinter) Paused(*player.MediaPlayer)  { e.line(icon.Pause, "paused") }

func (e *eventPrinter) Stopped(*player.MediaPlayer) {
	e.line(icon.Stop, "stopped")
	e.finish()
}

func (e *eventPrinter) Finished(*player.MediaPlayer) {
	e.line(icon.Finished, "finished")
	e.mu.Lock()
	e.time = e.length
	e.mu.Unlock()
	e.finish()
}

func (e *eventPrinter) TimeChanged(_ *player.MediaPlayer, t int64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.time = t
}

func (e *eventPrinter) PositionChanged(*player.MediaPlayer, float32) {}

func (e *eventPrinter) LengthChanged(_ *player.MediaPlayer, n int64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.length = n
}

func (e *eventPrinter) MetaDataAvailable(_ *player.MediaPlayer, meta player.VideoMetaData) {
	e.line(icon.Mark, "video %s", style.Fg(color.Purple)(meta.String()))
}

func (e *eventPrinter) progress() (int64, int64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.time, e.length
}

// playPlain plays without the interactive view until playback ends or the process is
// interrupted.
func playPlain(eng engine.Engine, mrl string, options []string, cont bool, out io.Writer) error {
	if mrl == "" {
		if !cont {
			return tui.ErrNothingToPlay
		}
		last, err := history.Last()
		if err != nil {
			return err
		}
		entry, ok := last.Get()
		if !ok {
			return tui.ErrNothingToPlay
		}
		mrl, options = entry.MRL, entry.Options
	}

	mp, err := player.New(eng, player.OptionsFromConfig()...)
	if err != nil {
		return err
	}
	defer mp.Release()

	printer := &eventPrinter{out: out, done: make(chan struct{}), length: -1}
	mp.AddListener(printer)
	mp.SetSurface(player.EngineWindow{})

	if err := mp.PlayMedia(mrl, options...); err != nil {
		return err
	}

	if v := viper.GetInt(key.PlayerVolume); v >= 0 {
		if err := mp.SetVolume(v); err != nil {
			log.Warnf("initial volume: %v", err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	select {
	case <-printer.done:
	case <-ctx.Done():
	}

	position, length := printer.progress()
	return history.Save(history.Entry{MRL: mrl, Options: options, Position: position, Length: length})
}
