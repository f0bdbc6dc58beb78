package inline

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/reelctl/reelctl/player"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

// Format selects how the probe result is written.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// Formats lists every supported output format.
var Formats = []Format{FormatText, FormatJSON, FormatYAML, FormatTOML}

// ParseFormat parses a format name, case-insensitively.
func ParseFormat(name string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(name)))
	if !lo.Contains(Formats, f) {
		return "", fmt.Errorf("unknown format %q, available: %v", name, Formats)
	}
	return f, nil
}

type Options struct {
	Out io.Writer

	MRL          string
	MediaOptions []string
	Format       Format

	// Timeout bounds the wait for video metadata. Zero waits until playback ends.
	Timeout time.Duration

	// Snapshot, when present, saves a frame once metadata is known. An empty path uses
	// the default snapshot directory.
	Snapshot mo.Option[string]

	// OnSnapshot is called with the saved path. Its error is logged, not returned.
	OnSnapshot func(path string) error

	// Player options passed to player.New after the configured ones.
	Player []player.Option
}
