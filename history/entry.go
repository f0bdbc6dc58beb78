package history

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// Entry is one played media item preserved in the user's history.
type Entry struct {
	MRL      string    `json:"mrl"`
	Options  []string  `json:"options,omitempty"`
	Length   int64     `json:"length"`
	Position int64     `json:"position"`
	PlayedAt time.Time `json:"played_at"`
}

// Title returns a short human readable name for the media.
func (e *Entry) Title() string {
	if strings.Contains(e.MRL, "://") {
		return e.MRL
	}
	return filepath.Base(e.MRL)
}

// Progress returns the watched fraction between 0 and 1, or 0 when the length is unknown.
func (e *Entry) Progress() float64 {
	if e.Length <= 0 || e.Position <= 0 {
		return 0
	}
	return min(float64(e.Position)/float64(e.Length), 1)
}

func (e *Entry) String() string {
	return fmt.Sprintf("%s : %d%%", e.Title(), int(e.Progress()*100))
}
