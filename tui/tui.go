// Package tui provides the interactive now-playing terminal interface.
package tui

import (
	"github.com/reelctl/reelctl/engine"
	"github.com/reelctl/reelctl/player"

	tea "github.com/charmbracelet/bubbletea"
)

// Options encapsulates the runtime configuration for the terminal user interface.
type Options struct {
	// MRL to play. When empty, Continue resumes the last played media and otherwise
	// the history is shown to pick from.
	MRL          string
	MediaOptions []string
	Continue     bool

	// Player options passed to player.New after the configured ones.
	Player []player.Option
}

// Run creates a media player on eng and drives it from the Bubble Tea program until the
// user quits or playback finishes.
func Run(eng engine.Engine, options *Options) error {
	mp, err := player.New(eng, append(player.OptionsFromConfig(), options.Player...)...)
	if err != nil {
		return err
	}
	// The program must have exited before Release, so the dispatch goroutine is never
	// blocked sending to it.
	defer mp.Release()

	mp.SetSurface(player.EngineWindow{})

	bubble, err := newBubble(mp, options)
	if err != nil {
		return err
	}

	program := tea.NewProgram(bubble, tea.WithAltScreen())
	mp.AddListener(&listener{send: program.Send})

	_, err = program.Run()
	bubble.saveHistory()
	return err
}
