package util

import (
	"testing"

	"github.com/reelctl/reelctl/filesystem"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestQuantify(t *testing.T) {
	Convey("Quantify", t, func() {
		So(Quantify(1, "subtitle track", "subtitle tracks"), ShouldEqual, "1 subtitle track")
		So(Quantify(0, "subtitle track", "subtitle tracks"), ShouldEqual, "0 subtitle tracks")
	})
}

func TestCapitalize(t *testing.T) {
	Convey("Capitalize", t, func() {
		So(Capitalize("history file"), ShouldEqual, "History file")
		So(Capitalize(""), ShouldEqual, "")
	})
}

func TestDelete(t *testing.T) {
	Convey("Given a file and a directory", t, func() {
		fs := filesystem.API()
		So(fs.WriteFile("/data/history.json", []byte("{}"), 0644), ShouldBeNil)
		So(fs.WriteFile("/data/logs/today.log", []byte("x"), 0644), ShouldBeNil)

		Convey("Then both can be deleted", func() {
			So(Delete("/data/history.json"), ShouldBeNil)
			So(Delete("/data/logs"), ShouldBeNil)

			exists, _ := fs.Exists("/data/logs/today.log")
			So(exists, ShouldBeFalse)
		})

		Convey("Then deleting a missing path fails", func() {
			So(Delete("/data/missing"), ShouldNotBeNil)
		})
	})
}
