package player

import (
	"fmt"
	"runtime/debug"
	"sync"

	"github.com/reelctl/reelctl/engine"
	"github.com/reelctl/reelctl/log"
)

// pendingEvent is a self-contained copy of a native event, taken before the engine's
// callback returns.
type pendingEvent struct {
	kind     engine.EventType
	duration int64
	time     int64
	position float32
	length   int64
}

func capture(ev *engine.Event) pendingEvent {
	return pendingEvent{
		kind:     ev.Type,
		duration: ev.NewDuration,
		time:     ev.NewTime,
		position: ev.NewPosition,
		length:   ev.NewLength,
	}
}

// notification is one unit of work for the dispatcher: either a captured native event or
// synthesized video metadata.
type notification struct {
	event pendingEvent
	meta  *VideoMetaData
}

func (n notification) String() string {
	if n.meta != nil {
		return "MetaDataAvailable"
	}
	return n.event.kind.String()
}

// dispatcher runs deliver for each submitted notification, one at a time, in submission
// order, on a single goroutine. The queue is unbounded so engine threads never block on it.
type dispatcher struct {
	deliver func(notification)

	mu     sync.Mutex
	queue  []notification
	closed bool

	wake chan struct{}
	done chan struct{}
}

func newDispatcher(deliver func(notification)) *dispatcher {
	d := &dispatcher{
		deliver: deliver,
		wake:    make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
	go d.run()
	return d
}

func (d *dispatcher) submit(n notification) error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return ErrDispatcherClosed
	}
	d.queue = append(d.queue, n)
	d.mu.Unlock()

	d.signal()
	return nil
}

func (d *dispatcher) signal() {
	select {
	case d.wake <- struct{}{}:
	default:
	}
}

func (d *dispatcher) run() {
	defer close(d.done)

	for {
		d.mu.Lock()
		if len(d.queue) == 0 {
			closed := d.closed
			d.mu.Unlock()
			if closed {
				return
			}
			<-d.wake
			continue
		}

		n := d.queue[0]
		d.queue[0] = notification{}
		d.queue = d.queue[1:]
		d.mu.Unlock()

		d.deliver(n)
	}
}

// shutdown stops accepting submissions, drains what is queued and waits for the
// dispatch goroutine to exit.
func (d *dispatcher) shutdown() {
	d.mu.Lock()
	d.closed = true
	d.mu.Unlock()

	d.signal()
	<-d.done
}

// notifyListeners delivers n to a snapshot of the registry, most recently added listener
// first. Unmapped event kinds are dropped before the snapshot is taken.
func (p *MediaPlayer) notifyListeners(n notification) {
	if n.meta == nil && !dispatchable(n.event.kind) {
		return
	}

	listeners := p.listeners.snapshot()
	for i := len(listeners) - 1; i >= 0; i-- {
		p.invoke(listeners[i], n)
	}
}

func dispatchable(kind engine.EventType) bool {
	switch kind {
	case engine.MediaDurationChanged,
		engine.MediaPlayerPlaying,
		engine.MediaPlayerPaused,
		engine.MediaPlayerStopped,
		engine.MediaPlayerEndReached,
		engine.MediaPlayerTimeChanged,
		engine.MediaPlayerPositionChanged,
		engine.MediaPlayerLengthChanged:
		return true
	}
	return false
}

// invoke calls the listener method for n. A panic is logged and swallowed so the next
// listener and the next event still get delivered.
func (p *MediaPlayer) invoke(l EventListener, n notification) {
	defer func() {
		if r := recover(); r != nil {
			entry := log.WithFields(log.Fields{
				"event":    n.String(),
				"listener": fmt.Sprintf("%T", l),
			})
			entry.Errorf("listener panicked: %v", r)
			entry.Debugf("%s", debug.Stack())
		}
	}()

	if n.meta != nil {
		l.MetaDataAvailable(p, *n.meta)
		return
	}

	ev := n.event
	switch ev.kind {
	case engine.MediaDurationChanged:
		l.DurationChanged(p, ev.duration)
	case engine.MediaPlayerPlaying:
		l.Playing(p)
	case engine.MediaPlayerPaused:
		l.Paused(p)
	case engine.MediaPlayerStopped:
		l.Stopped(p)
	case engine.MediaPlayerEndReached:
		l.Finished(p)
	case engine.MediaPlayerTimeChanged:
		l.TimeChanged(p, ev.time)
	case engine.MediaPlayerPositionChanged:
		l.PositionChanged(p, ev.position)
	case engine.MediaPlayerLengthChanged:
		l.LengthChanged(p, ev.length)
	}
}
