package player

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/reelctl/reelctl/constant"
	"github.com/reelctl/reelctl/engine"
	"github.com/reelctl/reelctl/log"
	"github.com/reelctl/reelctl/where"
)

// SaveSnapshot writes the current frame to a timestamped png in the snapshot directory
// and returns its path.
func (p *MediaPlayer) SaveSnapshot() (string, error) {
	dir := p.snapshotDir
	if dir == "" {
		dir = where.Snapshots()
	}

	name := constant.SnapshotPrefix + strconv.FormatInt(time.Now().UnixMilli(), 10) + ".png"
	path := filepath.Join(dir, name)
	if err := p.SaveSnapshotTo(path); err != nil {
		return "", err
	}
	return path, nil
}

// SaveSnapshotTo writes the current frame to path, creating its parent directory first.
func (p *MediaPlayer) SaveSnapshotTo(path string) error {
	return p.SaveSnapshotSized(path, 0, 0)
}

// SaveSnapshotSized is SaveSnapshotTo with explicit dimensions; zero keeps the source size.
func (p *MediaPlayer) SaveSnapshotSized(path string, width, height uint) error {
	if p.handle.released() {
		return ErrReleased
	}

	dir := filepath.Dir(path)
	if err := p.fs.MkdirAll(dir, os.ModePerm); err != nil {
		return &SnapshotDirError{Dir: dir, Err: err}
	}

	err := p.handle.call("take-snapshot", func(ep engine.Player) int {
		return ep.TakeSnapshot(path, width, height)
	})
	if err != nil {
		return err
	}

	log.Debugf("snapshot saved to %s", path)
	return nil
}
