package open

import (
	"testing"

	"github.com/reelctl/reelctl/constant"
	. "github.com/smartystreets/goconvey/convey"
)

func TestCommand(t *testing.T) {
	Convey("Given a snapshot path", t, func() {
		path := "/snaps/frame.png"

		Convey("Then each platform uses its own opener", func() {
			cmd, err := Command(constant.Linux, path)
			So(err, ShouldBeNil)
			So(cmd.Args, ShouldResemble, []string{"xdg-open", path})

			cmd, err = Command(constant.Darwin, path)
			So(err, ShouldBeNil)
			So(cmd.Args, ShouldResemble, []string{"open", path})

			cmd, err = Command(constant.Android, path)
			So(err, ShouldBeNil)
			So(cmd.Args, ShouldResemble, []string{"termux-open", path})
		})

		Convey("Then unknown platforms are rejected", func() {
			_, err := Command("plan9", path)
			So(err, ShouldNotBeNil)
		})
	})
}
