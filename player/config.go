package player

import (
	"time"

	"github.com/reelctl/reelctl/key"
	"github.com/spf13/viper"
)

// OptionsFromConfig builds the options configured under the engine, player and snapshot
// keys. Later options passed to New override them.
func OptionsFromConfig() []Option {
	opts := []Option{
		WithArgs(viper.GetStringSlice(key.EngineArgs)...),
		WithVoutWaitPeriod(time.Duration(viper.GetInt(key.PlayerVoutWaitPeriod)) * time.Millisecond),
		WithStandardMediaOptions(viper.GetStringSlice(key.PlayerStandardOptions)...),
	}

	if dir := viper.GetString(key.SnapshotDir); dir != "" {
		opts = append(opts, WithSnapshotDir(dir))
	}

	return opts
}
