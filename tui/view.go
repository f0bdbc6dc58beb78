package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wrap"
	"github.com/reelctl/reelctl/color"
	"github.com/reelctl/reelctl/icon"
	"github.com/reelctl/reelctl/style"
	"github.com/reelctl/reelctl/util"
)

var (
	listExtraPaddingStyle = lipgloss.NewStyle().Padding(1, 2, 1, 0)
	paddingStyle          = lipgloss.NewStyle().Padding(1, 2)
)

func (b *statefulBubble) View() string {
	var output string

	switch b.state {
	case loadingState:
		output = b.viewLoading()
	case playingState:
		output = b.viewPlaying()
	case historyState:
		output = listExtraPaddingStyle.Render(b.historyC.View())
	case errorState:
		output = b.viewError()
	default:
		output = "Unknown state"
	}

	return b.notifier.View(output)
}

func (b *statefulBubble) viewLoading() string {
	return b.renderLines(true, []string{
		style.Title("Opening"),
		"",
		b.truncate(b.spinnerC.View() + " " + b.current.Title()),
	})
}

func (b *statefulBubble) viewPlaying() string {
	status := icon.Get(icon.Play)
	switch {
	case b.stopped:
		status = icon.Get(icon.Stop)
	case b.paused:
		status = icon.Get(icon.Pause)
	}

	lines := []string{
		style.Title("Now Playing"),
		"",
		b.truncate(status + " " + style.Fg(color.Purple)(b.current.Title())),
		"",
		b.progressC.ViewAs(float64(b.position)),
		style.Faint(formatTime(b.time) + " / " + formatTime(b.length)),
		"",
	}

	if meta, ok := b.meta.Get(); ok {
		lines = append(lines, b.truncate(fmt.Sprintf("%dx%d · %s", meta.Width, meta.Height, util.Quantify(meta.SpuCount, "subtitle track", "subtitle tracks"))))
	} else {
		lines = append(lines, b.truncate(b.spinnerC.View()+" "+style.Faint("waiting for video output")))
	}

	lines = append(lines, b.viewVolume())
	return b.renderLines(true, lines)
}

func (b *statefulBubble) viewVolume() string {
	switch {
	case b.volume.muted:
		return icon.Get(icon.Mute) + " muted"
	case b.volume.volume >= 0:
		return fmt.Sprintf("%s %d%%", icon.Get(icon.Volume), b.volume.volume)
	}
	return ""
}

func (b *statefulBubble) viewError() string {
	errorStyle := lipgloss.NewStyle().Foreground(color.Red).Bold(true)
	body := wrap.String(errorStyle.Render(b.lastError.Error()), max(b.width, 20))
	return b.renderLines(true, []string{
		style.ErrorTitle("Error"),
		"",
		icon.Get(icon.Fail) + " Playback failed:",
		"",
		body,
	})
}

func (b *statefulBubble) truncate(s string) string {
	if b.width <= 0 {
		return s
	}
	return truncate.StringWithTail(s, uint(b.width), "…")
}

func (b *statefulBubble) renderLines(addHelp bool, lines []string) string {
	h := len(lines)
	l := strings.Join(lines, "\n")
	if addHelp {
		if b.height > h {
			l += strings.Repeat("\n", b.height-h)
		}
		l += b.helpC.View(b.keymap)
	}

	return paddingStyle.Render(l)
}

// formatTime renders milliseconds as h:mm:ss or m:ss, and unknown values as --:--.
func formatTime(ms int64) string {
	if ms < 0 {
		return "--:--"
	}

	d := time.Duration(ms) * time.Millisecond
	h, m, s := int(d.Hours()), int(d.Minutes())%60, int(d.Seconds())%60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}
