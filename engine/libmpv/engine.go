//go:build libmpv

// Package libmpv implements engine.Engine on libmpv through cgo. Build with -tags libmpv.
package libmpv

import (
	"fmt"
	"slices"
	"strings"

	"github.com/gen2brain/go-mpv"
	"github.com/reelctl/reelctl/engine"
	"github.com/reelctl/reelctl/engine/mpvcore"
	"github.com/reelctl/reelctl/log"
)

// defaults are applied before engine arguments, which override them.
var defaults = [][2]string{
	{"idle", "yes"},
	{"force-window", "yes"},
	{"input-default-bindings", "yes"},
	{"input-vo-keyboard", "yes"},
	{"osc", "yes"},
	{"terminal", "no"},
}

// Engine creates one libmpv handle per player.
type Engine struct{}

func New() *Engine {
	return &Engine{}
}

// Open validates args, which are mpv command line options such as "--vo=gpu".
func (e *Engine) Open(args []string) (engine.Instance, error) {
	for _, arg := range args {
		if _, _, err := parseOption(arg); err != nil {
			return nil, err
		}
	}
	return &Instance{args: slices.Clone(args)}, nil
}

// parseOption splits "--name=value" into name and value. "--flag" sets the flag and
// "--no-flag" clears it.
func parseOption(arg string) (string, string, error) {
	opt := strings.TrimLeft(arg, "-")
	if opt == "" {
		return "", "", fmt.Errorf("invalid mpv option %q", arg)
	}

	if name, value, ok := strings.Cut(opt, "="); ok {
		return name, value, nil
	}
	if name, ok := strings.CutPrefix(opt, "no-"); ok {
		return name, "no", nil
	}
	return opt, "yes", nil
}

// Instance holds the options for the libmpv handles it creates.
type Instance struct {
	args []string
}

// NewPlayer creates and initialises a libmpv handle and starts its event pump.
func (i *Instance) NewPlayer() (engine.Player, error) {
	m := mpv.New()

	for _, kv := range defaults {
		if err := m.SetOptionString(kv[0], kv[1]); err != nil {
			log.Warnf("libmpv option %s=%s: %v", kv[0], kv[1], err)
		}
	}

	for _, arg := range i.args {
		name, value, _ := parseOption(arg)
		if err := m.SetOptionString(name, value); err != nil {
			m.TerminateDestroy()
			return nil, fmt.Errorf("libmpv option %s: %w", arg, err)
		}
	}

	if err := m.Initialize(); err != nil {
		m.TerminateDestroy()
		return nil, fmt.Errorf("libmpv init: %w", err)
	}

	for id, name := range mpvcore.Observed {
		if err := m.ObserveProperty(uint64(id+1), name, observeFormat(name)); err != nil {
			m.TerminateDestroy()
			return nil, fmt.Errorf("observe %s: %w", name, err)
		}
	}

	p := newPlayer(m)
	go p.pump()
	return p, nil
}

// Release implements engine.Instance. Each player owns its handle.
func (i *Instance) Release() {}

func observeFormat(name string) mpv.Format {
	switch name {
	case "pause", "seekable":
		return mpv.FormatFlag
	}
	return mpv.FormatDouble
}
