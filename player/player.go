// Package player wraps a native engine in a goroutine-safe media player controller.
//
// Engine callbacks are captured on the engine's own threads and handed to a single
// dispatch goroutine, which notifies listeners in reverse registration order. After every
// transition to playing, a background poller waits for video output and reports
// VideoMetaData through the same dispatch path.
//
// A MediaPlayer must be released exactly once its owner is done with it; Release is
// idempotent and Close is provided for defer-style cleanup.
package player

import (
	"errors"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/reelctl/reelctl/engine"
	"github.com/reelctl/reelctl/filesystem"
	"github.com/reelctl/reelctl/log"
	"github.com/spf13/afero"
)

// settings collects construction parameters.
type settings struct {
	args            []string
	voutWaitPeriod  time.Duration
	fullScreen      FullScreenStrategy
	fs              afero.Fs
	snapshotDir     string
	standardOptions []string
}

// Option configures New.
type Option func(*settings)

// WithArgs sets the arguments used to open the engine instance.
func WithArgs(args ...string) Option {
	return func(s *settings) { s.args = slices.Clone(args) }
}

// WithVoutWaitPeriod sets the interval between video output checks. Non-positive values
// keep the default.
func WithVoutWaitPeriod(d time.Duration) Option {
	return func(s *settings) {
		if d > 0 {
			s.voutWaitPeriod = d
		}
	}
}

// WithFullScreenStrategy sets the collaborator that full-screen calls delegate to.
func WithFullScreenStrategy(strategy FullScreenStrategy) Option {
	return func(s *settings) { s.fullScreen = strategy }
}

// WithFs sets the filesystem used to create snapshot directories.
func WithFs(fs afero.Fs) Option {
	return func(s *settings) { s.fs = fs }
}

// WithSnapshotDir sets the directory SaveSnapshot writes to.
func WithSnapshotDir(dir string) Option {
	return func(s *settings) { s.snapshotDir = dir }
}

// WithStandardMediaOptions presets the standard media options.
func WithStandardMediaOptions(options ...string) Option {
	return func(s *settings) { s.standardOptions = slices.Clone(options) }
}

// MediaPlayer is a goroutine-safe controller for one native engine player.
type MediaPlayer struct {
	handle     *handle
	listeners  registry
	dispatcher *dispatcher
	poller     *metaPoller
	bridge     *bridge

	fs          afero.Fs
	fullScreen  FullScreenStrategy
	snapshotDir string

	mu              sync.Mutex
	surface         SurfaceBinder
	standardOptions []string

	released atomic.Bool
}

// New opens an engine instance, creates its player and starts the dispatch machinery.
// On failure everything created so far is released and an *InitError is returned; no
// goroutines are left running.
func New(eng engine.Engine, opts ...Option) (*MediaPlayer, error) {
	if eng == nil {
		return nil, &InitError{Stage: "open", Err: errors.New("nil engine")}
	}

	cfg := settings{voutWaitPeriod: DefaultVoutWaitPeriod}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.fs == nil {
		cfg.fs = filesystem.API()
	}

	instance, err := eng.Open(cfg.args)
	if err != nil {
		return nil, &InitError{Stage: "open", Err: err}
	}
	if instance == nil {
		return nil, &InitError{Stage: "open", Err: errors.New("engine returned no instance")}
	}

	native, err := instance.NewPlayer()
	if err == nil && native == nil {
		err = errors.New("engine returned no player")
	}
	if err != nil {
		instance.Release()
		return nil, &InitError{Stage: "new player", Err: err}
	}

	events := native.EventManager()
	if events == nil {
		native.Release()
		instance.Release()
		return nil, &InitError{Stage: "event manager", Err: errors.New("player has no event manager")}
	}

	p := &MediaPlayer{
		handle:          &handle{instance: instance, player: native},
		fs:              cfg.fs,
		fullScreen:      cfg.fullScreen,
		snapshotDir:     cfg.snapshotDir,
		standardOptions: cfg.standardOptions,
	}
	p.dispatcher = newDispatcher(p.notifyListeners)
	p.poller = newMetaPoller(cfg.voutWaitPeriod, p.probeVideo, p.submitMeta)
	p.bridge = newBridge(events, &p.listeners, p.dispatcher)
	p.bridge.attach()
	p.listeners.add(&metaTrigger{poller: p.poller})

	log.Debugf("media player created (args=%v, vout wait=%s)", cfg.args, cfg.voutWaitPeriod)
	return p, nil
}

// AddListener registers l. The same listener may be added more than once.
func (p *MediaPlayer) AddListener(l EventListener) {
	p.listeners.add(l)
}

// RemoveListener unregisters the earliest registration of l. Unknown listeners are ignored.
func (p *MediaPlayer) RemoveListener(l EventListener) {
	p.listeners.remove(l)
}

// SetSurface sets the binder used to attach video output before each PlayMedia.
func (p *MediaPlayer) SetSurface(s SurfaceBinder) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.surface = s
}

// Release tears everything down in order: the engine callback is detached, the dispatch
// queue is closed and drained, polling stops, then the native player and instance are
// released. Only the first call does anything.
//
// Release must not be called from a listener.
func (p *MediaPlayer) Release() {
	if !p.released.CompareAndSwap(false, true) {
		return
	}

	log.Debug("releasing media player")
	p.bridge.detach()
	p.dispatcher.shutdown()
	p.poller.shutdown()
	p.listeners.clear()
	p.handle.release()
	log.Debug("media player released")
}

// Close releases the player. It always returns nil and exists so a MediaPlayer is an
// io.Closer.
func (p *MediaPlayer) Close() error {
	p.Release()
	return nil
}

// Released reports whether Release has been called.
func (p *MediaPlayer) Released() bool {
	return p.released.Load()
}
