// Package cache prunes files the application leaves behind: old log files and abandoned temp files.
package cache

import (
	"os"
	"time"

	"github.com/reelctl/reelctl/filesystem"
	"github.com/reelctl/reelctl/log"
	"github.com/reelctl/reelctl/where"
	"github.com/spf13/afero"
)

const (
	// TTL applies to log files.
	TTL = 7 * 24 * time.Hour

	// TempTTL applies to temp files, mostly sockets left behind by crashed engine processes.
	// Live sockets are younger than this.
	TempTTL = 24 * time.Hour
)

// Prune removes regular files under dir last modified more than ttl ago and returns how
// many were removed. Missing directories are not an error.
func Prune(dir string, ttl time.Duration) (int, error) {
	fs := filesystem.API()
	if exists, err := fs.DirExists(dir); err != nil || !exists {
		return 0, err
	}

	var removed int
	err := afero.Walk(fs, dir, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return nil
		}
		if time.Since(info.ModTime()) > ttl {
			if err := fs.Remove(path); err != nil {
				log.Warnf("prune %s: %v", path, err)
				return nil
			}
			removed++
		}
		return nil
	})
	return removed, err
}

// CollectGarbage prunes expired logs and temp files in the background.
func CollectGarbage() {
	go func() {
		for dir, ttl := range map[string]time.Duration{where.Logs(): TTL, where.Temp(): TempTTL} {
			n, err := Prune(dir, ttl)
			if err != nil {
				log.Warnf("prune %s: %v", dir, err)
				continue
			}
			if n > 0 {
				log.Debugf("pruned %d files from %s", n, dir)
			}
		}
	}()
}
