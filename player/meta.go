package player

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/reelctl/reelctl/engine"
	"github.com/reelctl/reelctl/log"
	"golang.org/x/sync/errgroup"
)

// DefaultVoutWaitPeriod is the pause between video output checks.
const DefaultVoutWaitPeriod = time.Second

// VideoMetaData describes the video output once it exists.
type VideoMetaData struct {
	Width    int `json:"width" yaml:"width" toml:"width"`
	Height   int `json:"height" yaml:"height" toml:"height"`
	SpuCount int `json:"spu_count" yaml:"spu_count" toml:"spu_count"`
}

func (m VideoMetaData) String() string {
	return fmt.Sprintf("%dx%d, %d spu", m.Width, m.Height, m.SpuCount)
}

// metaPoller waits for video output after each transition to playing and then reports
// metadata once. Delivery is best effort: the engine does not always report output for
// every transition, and a cycle runs until it sees output or is cancelled.
type metaPoller struct {
	interval time.Duration
	probe    func() (VideoMetaData, bool)
	deliver  func(VideoMetaData) error

	ctx    context.Context
	cancel context.CancelFunc
	group  errgroup.Group

	mu     sync.Mutex
	closed bool
	cycle  context.CancelFunc
	cycles int
}

func newMetaPoller(interval time.Duration, probe func() (VideoMetaData, bool), deliver func(VideoMetaData) error) *metaPoller {
	ctx, cancel := context.WithCancel(context.Background())
	return &metaPoller{
		interval: interval,
		probe:    probe,
		deliver:  deliver,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// trigger starts a fresh polling cycle, cancelling the previous one if it is still
// waiting.
func (m *metaPoller) trigger() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return
	}

	if m.cycle != nil {
		m.cycle()
	}

	ctx, cancel := context.WithCancel(m.ctx)
	m.cycle = cancel
	m.cycles++
	id := m.cycles

	m.group.Go(func() error {
		defer cancel()
		m.poll(ctx, id)
		return nil
	})
}

func (m *metaPoller) poll(ctx context.Context, id int) {
	log.Tracef("metadata cycle %d started", id)

	timer := time.NewTimer(m.interval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Tracef("metadata cycle %d cancelled", id)
			return
		case <-timer.C:
		}

		if meta, ok := m.probe(); ok {
			if err := m.deliver(meta); err != nil {
				log.Debugf("metadata cycle %d: %v", id, err)
			}
			return
		}

		timer.Reset(m.interval)
	}
}

// shutdown cancels every cycle, including one that is sleeping, and waits for them.
func (m *metaPoller) shutdown() {
	m.mu.Lock()
	m.closed = true
	m.mu.Unlock()

	m.cancel()
	_ = m.group.Wait()
}

// metaTrigger is the internal listener that starts a polling cycle on every playing event.
type metaTrigger struct {
	EventAdapter
	poller *metaPoller
}

func (t *metaTrigger) Playing(*MediaPlayer) {
	t.poller.trigger()
}

// probeVideo reads metadata if the engine has video output. The engine reports the two
// dimensions in the opposite order to width, height, so they are swapped here.
func (p *MediaPlayer) probeVideo() (VideoMetaData, bool) {
	var (
		meta VideoMetaData
		ok   bool
	)

	_ = p.handle.with(func(ep engine.Player) error {
		if !ep.HasVideoOutput() {
			return nil
		}

		first, second, code := ep.VideoSize(0)
		if code != 0 {
			return nil
		}

		meta = VideoMetaData{Width: second, Height: first, SpuCount: ep.SpuCount()}
		ok = true
		return nil
	})

	return meta, ok
}

func (p *MediaPlayer) submitMeta(meta VideoMetaData) error {
	return p.dispatcher.submit(notification{meta: &meta})
}
