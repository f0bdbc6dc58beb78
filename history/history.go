// Package history persists recently played media so playback can be resumed.
package history

import (
	"slices"
	"time"

	"github.com/metafates/gache"
	"github.com/reelctl/reelctl/filesystem"
	"github.com/reelctl/reelctl/key"
	"github.com/reelctl/reelctl/where"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/viper"
)

// cacher provides an abstracted, disk-backed registry for played media keyed by MRL.
var cacher = gache.New[map[string]*Entry](
	&gache.Options{
		Path:       where.History(),
		FileSystem: &filesystem.GacheFs{},
	},
)

// Get returns every stored entry keyed by MRL.
func Get() (map[string]*Entry, error) {
	cached, expired, err := cacher.Get()
	if err != nil {
		return nil, err
	}
	if expired || cached == nil {
		return make(map[string]*Entry), nil
	}
	return cached, nil
}

// Recent returns the stored entries, most recently played first.
func Recent() ([]*Entry, error) {
	saved, err := Get()
	if err != nil {
		return nil, err
	}

	entries := lo.Values(saved)
	slices.SortFunc(entries, func(a, b *Entry) int {
		return b.PlayedAt.Compare(a.PlayedAt)
	})
	return entries, nil
}

// Last returns the most recently played entry, if any.
func Last() (mo.Option[*Entry], error) {
	entries, err := Recent()
	if err != nil {
		return mo.None[*Entry](), err
	}
	if len(entries) == 0 {
		return mo.None[*Entry](), nil
	}
	return mo.Some(entries[0]), nil
}

// Save records entry, keeping the furthest known position for the same MRL, and trims the
// history to the configured limit.
func Save(entry Entry) error {
	if !viper.GetBool(key.HistorySave) {
		return nil
	}

	saved, err := Get()
	if err != nil {
		return err
	}

	if entry.PlayedAt.IsZero() {
		entry.PlayedAt = time.Now()
	}

	if existing, ok := saved[entry.MRL]; ok {
		entry.Position = max(entry.Position, existing.Position)
		if entry.Length <= 0 {
			entry.Length = existing.Length
		}
	}
	saved[entry.MRL] = &entry

	if limit := viper.GetInt(key.HistoryLimit); limit > 0 && len(saved) > limit {
		entries := lo.Values(saved)
		slices.SortFunc(entries, func(a, b *Entry) int {
			return b.PlayedAt.Compare(a.PlayedAt)
		})
		for _, old := range entries[limit:] {
			delete(saved, old.MRL)
		}
	}

	return cacher.Set(saved)
}

// Remove deletes the entry for mrl.
func Remove(mrl string) error {
	saved, err := Get()
	if err != nil {
		return err
	}

	delete(saved, mrl)
	return cacher.Set(saved)
}

// Clear deletes every entry.
func Clear() error {
	return cacher.Set(make(map[string]*Entry))
}
