package player

import (
	"fmt"

	"github.com/reelctl/reelctl/engine"
)

// SurfaceBinder attaches the engine's video output to a rendering target. It is called
// before every PlayMedia.
type SurfaceBinder interface {
	BindSurface(p engine.Player) error
}

// WindowID binds video output to a native window handle (an X11 window id or a HWND).
type WindowID uintptr

func (id WindowID) BindSurface(p engine.Player) error {
	if code := p.SetWindow(uintptr(id)); code != 0 {
		return &CommandError{Op: fmt.Sprintf("set-window %#x", uintptr(id)), Code: code}
	}
	return nil
}

// EngineWindow lets the engine open and manage its own window.
type EngineWindow struct{}

func (EngineWindow) BindSurface(p engine.Player) error {
	if code := p.SetWindow(0); code != 0 {
		return &CommandError{Op: "set-window", Code: code}
	}
	return nil
}
