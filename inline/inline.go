// Package inline provides the application's non-interactive playback modes: probing media
// for video metadata and saving a snapshot of it.
package inline

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/reelctl/reelctl/engine"
	"github.com/reelctl/reelctl/log"
	"github.com/reelctl/reelctl/player"
)

var (
	ErrTimeout  = errors.New("timed out waiting for video metadata")
	ErrFinished = errors.New("playback ended before video output appeared")
)

// probe collects what a non-interactive run needs from the player's events.
type probe struct {
	player.EventAdapter

	meta chan player.VideoMetaData
	done chan error
}

func newProbe() *probe {
	return &probe{
		meta: make(chan player.VideoMetaData, 1),
		done: make(chan error, 1),
	}
}

func (p *probe) MetaDataAvailable(_ *player.MediaPlayer, meta player.VideoMetaData) {
	select {
	case p.meta <- meta:
	default:
	}
}

func (p *probe) Finished(*player.MediaPlayer) { p.end() }
func (p *probe) Stopped(*player.MediaPlayer)  { p.end() }

func (p *probe) end() {
	select {
	case p.done <- ErrFinished:
	default:
	}
}

// Run plays options.MRL with no user interaction, waits for its video metadata, optionally
// saves a snapshot and writes the result to options.Out.
func Run(eng engine.Engine, options *Options) error {
	if options.Out == nil {
		options.Out = os.Stdout
	}
	if options.Format == "" {
		options.Format = FormatText
	}

	mp, err := player.New(eng, append(player.OptionsFromConfig(), options.Player...)...)
	if err != nil {
		return err
	}
	defer mp.Release()

	events := newProbe()
	mp.AddListener(events)
	mp.SetSurface(player.EngineWindow{})

	if err := mp.PlayMedia(options.MRL, options.MediaOptions...); err != nil {
		return err
	}

	var timeout <-chan time.Time
	if options.Timeout > 0 {
		timer := time.NewTimer(options.Timeout)
		defer timer.Stop()
		timeout = timer.C
	}

	var meta player.VideoMetaData
	select {
	case meta = <-events.meta:
	case err := <-events.done:
		return err
	case <-timeout:
		return ErrTimeout
	}

	result := Output{
		MRL:      options.MRL,
		Length:   mp.Length(),
		FPS:      mp.FPS(),
		Seekable: mp.IsSeekable(),
		Chapters: mp.ChapterCount(),
		Video:    meta,
	}

	if options.Snapshot.IsPresent() {
		path, err := snapshot(mp, options.Snapshot.OrEmpty())
		if err != nil {
			return err
		}
		result.Snapshot = path

		if options.OnSnapshot != nil {
			if err := options.OnSnapshot(path); err != nil {
				log.Warnf("after snapshot %s: %v", path, err)
			}
		}
	}

	log.Debugf("probed %s: %s", options.MRL, meta)
	if err := mp.Stop(); err != nil {
		log.Debugf("stop after probe: %v", err)
	}

	data, err := encode(result, options.Format)
	if err != nil {
		return err
	}
	_, err = options.Out.Write(data)
	return err
}

func snapshot(mp *player.MediaPlayer, path string) (string, error) {
	if path == "" {
		return mp.SaveSnapshot()
	}
	if err := mp.SaveSnapshotTo(path); err != nil {
		return "", fmt.Errorf("snapshot %s: %w", path, err)
	}
	return path, nil
}
