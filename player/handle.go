package player

import (
	"sync"

	"github.com/reelctl/reelctl/engine"
)

// handle owns the native instance and player. Commands hold the read lock for the
// duration of their engine call, so release waits for in-flight commands and nothing
// reaches the engine afterwards.
type handle struct {
	mu       sync.RWMutex
	instance engine.Instance
	player   engine.Player
}

// with runs fn against the live engine player, or returns ErrReleased.
func (h *handle) with(fn func(p engine.Player) error) error {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if h.player == nil {
		return ErrReleased
	}
	return fn(h.player)
}

// call runs a status-code command and converts a non-zero code into a CommandError.
func (h *handle) call(op string, fn func(p engine.Player) int) error {
	return h.with(func(p engine.Player) error {
		if code := fn(p); code != 0 {
			return &CommandError{Op: op, Code: code}
		}
		return nil
	})
}

// query runs a getter, returning sentinel once the handle is released.
func query[T any](h *handle, sentinel T, fn func(p engine.Player) T) T {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if h.player == nil {
		return sentinel
	}
	return fn(h.player)
}

func (h *handle) released() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.player == nil
}

// release frees the player and then the instance. Later calls do nothing.
func (h *handle) release() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.player != nil {
		h.player.Release()
		h.player = nil
	}

	if h.instance != nil {
		h.instance.Release()
		h.instance = nil
	}
}
