package player

import (
	"sync"

	"github.com/reelctl/reelctl/engine"
	"github.com/reelctl/reelctl/log"
)

// bridge is the single engine.Handler attached for the whole player event range. It runs
// on engine threads and only captures and enqueues.
type bridge struct {
	listeners *registry
	queue     *dispatcher

	mu       sync.Mutex
	events   engine.EventManager
	attached []engine.EventType
}

func newBridge(events engine.EventManager, listeners *registry, queue *dispatcher) *bridge {
	return &bridge{
		events:    events,
		listeners: listeners,
		queue:     queue,
	}
}

// HandleEvent implements engine.Handler.
func (b *bridge) HandleEvent(ev *engine.Event) {
	if b.listeners.len() == 0 {
		return
	}

	pending := capture(ev)
	if err := b.queue.submit(notification{event: pending}); err != nil {
		log.Debugf("dropping %s: %v", pending.kind, err)
	}
}

func (b *bridge) attach() {
	b.mu.Lock()
	defer b.mu.Unlock()

	for t := engine.FirstPlayerEvent; t < engine.FirstListEvent; t++ {
		if code := b.events.Attach(t, b); code != 0 {
			log.Warnf("attach %s returned %d", t, code)
			continue
		}
		b.attached = append(b.attached, t)
	}
}

// detach removes the handler from every event type it was attached to. It is safe to call
// more than once.
func (b *bridge) detach() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.events == nil {
		return
	}

	for _, t := range b.attached {
		b.events.Detach(t, b)
	}
	b.attached = nil
	b.events = nil
}
