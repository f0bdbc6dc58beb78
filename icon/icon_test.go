package icon

import (
	"testing"

	"github.com/reelctl/reelctl/key"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func TestGet(t *testing.T) {
	Convey("Given a registered icon", t, func() {
		target := Play

		Convey("It renders correctly for each variant", func() {
			for _, variant := range AvailableVariants() {
				Convey("variant="+variant, func() {
					viper.Set(key.IconsVariant, variant)
					result := Get(target)
					So(result, ShouldNotBeEmpty)
				})
			}
		})

		Convey("It returns empty for an unknown variant", func() {
			viper.Set(key.IconsVariant, "")
			result := Get(target)
			So(result, ShouldBeEmpty)
		})
	})
}

func TestRegistry(t *testing.T) {
	Convey("Given every icon", t, func() {
		viper.Set(key.IconsVariant, "plain")

		Convey("Then each has a plain rendering", func() {
			for i := Play; i <= Mute; i++ {
				So(Get(i), ShouldNotBeEmpty)
			}
		})
	})
}
