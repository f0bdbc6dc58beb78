package tui

import (
	"strings"
	"time"

	"github.com/reelctl/reelctl/style"

	tea "github.com/charmbracelet/bubbletea"
)

// notification is shown next to the last view line for a few seconds.
type notification string

type clearNotificationMsg struct{}

func notify(text string) tea.Cmd {
	return func() tea.Msg {
		return notification(text)
	}
}

// notifier displays non-blocking alerts.
type notifier struct {
	text string
}

func (n *notifier) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case notification:
		n.text = string(msg)
		return tea.Tick(3*time.Second, func(time.Time) tea.Msg {
			return clearNotificationMsg{}
		})
	case clearNotificationMsg:
		n.text = ""
	}
	return nil
}

func (n *notifier) View(content string) string {
	if n.text == "" {
		return content
	}

	lines := strings.Split(content, "\n")
	lines[len(lines)-1] += "  " + style.Faint(n.text)
	return strings.Join(lines, "\n")
}
