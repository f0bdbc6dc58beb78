package player

import (
	"slices"
	"sync"

	"github.com/samber/lo"
)

// EventListener is notified of media player events on the dispatch goroutine.
//
// Listeners must be comparable (pointers work) so they can be removed again. They must not
// block for long, re-enter the engine synchronously or call Release; hand such work to
// another goroutine.
type EventListener interface {
	DurationChanged(p *MediaPlayer, newDuration int64)
	Playing(p *MediaPlayer)
	Paused(p *MediaPlayer)
	Stopped(p *MediaPlayer)
	Finished(p *MediaPlayer)
	TimeChanged(p *MediaPlayer, newTime int64)
	PositionChanged(p *MediaPlayer, newPosition float32)
	LengthChanged(p *MediaPlayer, newLength int64)
	MetaDataAvailable(p *MediaPlayer, meta VideoMetaData)
}

// EventAdapter implements EventListener with no-ops. Embed it and override what you need.
type EventAdapter struct{}

func (EventAdapter) DurationChanged(*MediaPlayer, int64)           {}
func (EventAdapter) Playing(*MediaPlayer)                          {}
func (EventAdapter) Paused(*MediaPlayer)                           {}
func (EventAdapter) Stopped(*MediaPlayer)                          {}
func (EventAdapter) Finished(*MediaPlayer)                         {}
func (EventAdapter) TimeChanged(*MediaPlayer, int64)               {}
func (EventAdapter) PositionChanged(*MediaPlayer, float32)         {}
func (EventAdapter) LengthChanged(*MediaPlayer, int64)             {}
func (EventAdapter) MetaDataAvailable(*MediaPlayer, VideoMetaData) {}

// registry is a copy-on-write listener list. The slice held in listeners is never
// modified after it is published, so a snapshot stays stable while mutations continue.
type registry struct {
	mu        sync.Mutex
	listeners []EventListener
}

func (r *registry) add(l EventListener) {
	r.mu.Lock()
	defer r.mu.Unlock()

	next := make([]EventListener, len(r.listeners), len(r.listeners)+1)
	copy(next, r.listeners)
	r.listeners = append(next, l)
}

// remove drops the first registration of l and reports whether there was one.
func (r *registry) remove(l EventListener) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := lo.IndexOf(r.listeners, l)
	if i < 0 {
		return false
	}

	r.listeners = slices.Delete(slices.Clone(r.listeners), i, i+1)
	return true
}

func (r *registry) snapshot() []EventListener {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.listeners
}

func (r *registry) len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.listeners)
}

func (r *registry) clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listeners = nil
}
