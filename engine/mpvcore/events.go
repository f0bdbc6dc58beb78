package mpvcore

import (
	"slices"
	"sync"

	"github.com/reelctl/reelctl/engine"
)

// Handlers implements engine.EventManager for adapters that deliver events from their
// own read loop.
type Handlers struct {
	mu       sync.Mutex
	handlers map[engine.EventType][]engine.Handler
}

func (h *Handlers) Attach(t engine.EventType, handler engine.Handler) int {
	if handler == nil {
		return -1
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.handlers == nil {
		h.handlers = make(map[engine.EventType][]engine.Handler)
	}
	h.handlers[t] = append(h.handlers[t], handler)
	return 0
}

func (h *Handlers) Detach(t engine.EventType, handler engine.Handler) {
	h.mu.Lock()
	defer h.mu.Unlock()

	list := h.handlers[t]
	if i := slices.Index(list, handler); i >= 0 {
		h.handlers[t] = slices.Delete(slices.Clone(list), i, i+1)
	}
}

// Emit calls every handler attached to each event's type on the calling goroutine.
func (h *Handlers) Emit(events ...engine.Event) {
	for _, ev := range events {
		h.mu.Lock()
		list := h.handlers[ev.Type]
		h.mu.Unlock()

		for _, handler := range list {
			native := ev
			handler.HandleEvent(&native)
		}
	}
}
