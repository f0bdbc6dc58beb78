package mpvcore

import (
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
	"sync"

	"github.com/samber/lo"
)

// Schemes accepted by SanitizeTarget. Anything without "://" is a local path.
var Schemes = []string{"http", "https", "file", "rtsp", "rtmp", "udp", "ftp", "dvd", "bd", "ytdl"}

var (
	ErrEmptyTarget  = errors.New("empty media target")
	ErrFlagTarget   = errors.New("media target must not start with '-'")
	ErrControlChars = errors.New("media target contains control characters")
)

// SanitizeTarget validates an mrl before it is handed to mpv.
func SanitizeTarget(mrl string) (string, error) {
	target := strings.TrimSpace(mrl)
	if target == "" {
		return "", ErrEmptyTarget
	}

	if strings.ContainsAny(target, "\x00\n\r") {
		return "", ErrControlChars
	}

	if strings.HasPrefix(target, "-") {
		return "", ErrFlagTarget
	}

	if !strings.Contains(target, "://") {
		return filepath.Clean(target), nil
	}

	u, err := url.Parse(target)
	if err != nil {
		return "", fmt.Errorf("invalid url: %w", err)
	}

	if !lo.Contains(Schemes, strings.ToLower(u.Scheme)) {
		return "", fmt.Errorf("unsupported url scheme: %s", u.Scheme)
	}
	return target, nil
}

// NormalizeOption turns "--opt=value", ":opt=value" and "opt=value" into "opt=value".
// A bare "--flag" becomes "flag=yes".
func NormalizeOption(option string) string {
	option = strings.TrimLeft(strings.TrimSpace(option), "-:")
	if option == "" {
		return ""
	}
	if !strings.Contains(option, "=") {
		return option + "=yes"
	}
	return option
}

// LoadCommand builds the loadfile command that replaces the current item with mrl and
// applies options to it. The index argument requires mpv 0.38 or later.
func LoadCommand(mrl string, options []string) []string {
	cmd := []string{"loadfile", mrl, "replace", "-1"}

	var opts []string
	for _, o := range options {
		if n := NormalizeOption(o); n != "" {
			opts = append(opts, n)
		}
	}
	if len(opts) > 0 {
		cmd = append(cmd, strings.Join(opts, ","))
	}

	return cmd
}

// LoadQueue holds the loadfile command of the current media. mpv forgets the file on stop
// and at its end, so Play loads it again whenever mpv has gone idle.
type LoadQueue struct {
	mu      sync.Mutex
	pending []string
	current []string
}

// Set queues cmd for the next Play.
func (q *LoadQueue) Set(cmd []string) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.pending = cmd
}

// Next returns the command Play has to run, or nil when unpausing is enough. idle is only
// consulted when no new media is queued.
func (q *LoadQueue) Next(idle func() bool) []string {
	q.mu.Lock()
	if q.pending != nil {
		cmd := q.pending
		q.current, q.pending = cmd, nil
		q.mu.Unlock()
		return cmd
	}
	current := q.current
	q.mu.Unlock()

	if current != nil && idle() {
		return current
	}
	return nil
}
