package config

import (
	"testing"

	"github.com/reelctl/reelctl/filesystem"
	"github.com/reelctl/reelctl/key"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestSetup(t *testing.T) {
	Convey("Config Setup", t, func() {
		Convey("Should initialize without error", func() {
			err := Setup()
			So(err, ShouldBeNil)
		})

		Convey("Should have default values populated", func() {
			_ = Setup()
			for name := range Default {
				So(viper.Get(name), ShouldNotBeNil)
			}
			So(viper.GetInt(key.PlayerVoutWaitPeriod), ShouldEqual, 1000)
			So(viper.GetString(key.EngineBackend), ShouldEqual, "mpv-ipc")
		})

		Convey("EnvKeyReplacer should convert dots to underscores", func() {
			result := EnvKeyReplacer.Replace("player.vout_wait_period")
			So(result, ShouldEqual, "player_vout_wait_period")
		})

		Convey("Field.Env should prefix the application name", func() {
			field := Default[key.SnapshotDir]
			So(field.Env(), ShouldEqual, "REELCTL_SNAPSHOT_DIR")
		})
	})
}
