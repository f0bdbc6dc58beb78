package inline

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/reelctl/reelctl/player"
	"gopkg.in/yaml.v3"
)

// Output is the result of probing one media item.
type Output struct {
	MRL      string              `json:"mrl" yaml:"mrl" toml:"mrl"`
	Length   int64               `json:"length_ms" yaml:"length_ms" toml:"length_ms"`
	FPS      float32             `json:"fps" yaml:"fps" toml:"fps"`
	Seekable bool                `json:"seekable" yaml:"seekable" toml:"seekable"`
	Chapters int                 `json:"chapters" yaml:"chapters" toml:"chapters"`
	Video    player.VideoMetaData `json:"video" yaml:"video" toml:"video"`
	Snapshot string              `json:"snapshot,omitempty" yaml:"snapshot,omitempty" toml:"snapshot,omitempty"`
}

func encode(out Output, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	case FormatYAML:
		return yaml.Marshal(out)
	case FormatTOML:
		return toml.Marshal(out)
	case FormatText:
		return []byte(text(out)), nil
	}
	return nil, fmt.Errorf("unknown format %q", format)
}

func text(out Output) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s\n", out.MRL)
	if out.Length >= 0 {
		fmt.Fprintf(&b, "  length:   %s\n", time.Duration(out.Length)*time.Millisecond)
	}
	fmt.Fprintf(&b, "  video:    %dx%d\n", out.Video.Width, out.Video.Height)
	fmt.Fprintf(&b, "  spu:      %d\n", out.Video.SpuCount)
	if out.FPS > 0 {
		fmt.Fprintf(&b, "  fps:      %.3f\n", out.FPS)
	}
	if out.Chapters > 0 {
		fmt.Fprintf(&b, "  chapters: %d\n", out.Chapters)
	}
	if out.Snapshot != "" {
		fmt.Fprintf(&b, "  snapshot: %s\n", out.Snapshot)
	}
	return b.String()
}
