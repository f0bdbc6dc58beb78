package tui

import (
	"fmt"
	"time"

	"github.com/reelctl/reelctl/history"
	"github.com/reelctl/reelctl/icon"
	"github.com/reelctl/reelctl/style"
)

// listItem wraps a history entry for the history list.
type listItem struct {
	entry *history.Entry
}

func (t *listItem) Title() string {
	return t.entry.Title()
}

func (t *listItem) Description() string {
	progress := fmt.Sprintf("%d%%", int(t.entry.Progress()*100))
	if t.entry.Progress() >= 1 {
		progress = icon.Get(icon.Finished)
	}
	return style.Faint(fmt.Sprintf("%s · %s", progress, t.entry.PlayedAt.Format(time.DateTime)))
}

func (t *listItem) FilterValue() string {
	return t.entry.MRL
}
