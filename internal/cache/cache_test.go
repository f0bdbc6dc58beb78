package cache

import (
	"testing"
	"time"

	"github.com/reelctl/reelctl/filesystem"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestPrune(t *testing.T) {
	Convey("Given a directory with old and fresh files", t, func() {
		fs := filesystem.API()
		So(fs.WriteFile("/logs/old.log", []byte("old"), 0644), ShouldBeNil)
		So(fs.WriteFile("/logs/nested/old.log", []byte("old"), 0644), ShouldBeNil)
		So(fs.WriteFile("/logs/new.log", []byte("new"), 0644), ShouldBeNil)

		stale := time.Now().Add(-2 * TTL)
		So(fs.Chtimes("/logs/old.log", stale, stale), ShouldBeNil)
		So(fs.Chtimes("/logs/nested/old.log", stale, stale), ShouldBeNil)

		Convey("When pruning", func() {
			n, err := Prune("/logs", TTL)

			Convey("Then only expired files are removed", func() {
				So(err, ShouldBeNil)
				So(n, ShouldEqual, 2)

				exists, _ := fs.Exists("/logs/old.log")
				So(exists, ShouldBeFalse)
				exists, _ = fs.Exists("/logs/new.log")
				So(exists, ShouldBeTrue)
			})
		})

		Convey("When the directory is missing", func() {
			n, err := Prune("/nowhere", TTL)

			Convey("Then nothing happens", func() {
				So(err, ShouldBeNil)
				So(n, ShouldEqual, 0)
			})
		})
	})
}
