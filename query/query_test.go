package query

import (
	"testing"

	"github.com/anilens-cli/anilens/filesystem"
	"github.com/anilens-cli/anilens/key"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
	viper.Set(key.SearchShowQuerySuggestions, true)
}

func TestQuery(t *testing.T) {
	Convey("Given query history", t, func() {
		Convey("When remembering queries", func() {
			So(Remember("frieren", 1), ShouldBeNil)
			So(Remember("fullmetal alchemist", 10), ShouldBeNil)

			Convey("Then suggestions are sorted by rank", func() {
				// Drop the memo so the ranked file copy is re-read.
				suggestionCache = make(map[string][]*queryRecord)

				s := SuggestMany("f")
				So(len(s), ShouldBeGreaterThanOrEqualTo, 2)
				So(s[0], ShouldEqual, "fullmetal alchemist")
			})

			Convey("Suggest returns the single best match", func() {
				suggestionCache = make(map[string][]*queryRecord)

				best := Suggest("frie")
				So(best.IsPresent(), ShouldBeTrue)
				So(best.MustGet(), ShouldEqual, "frieren")
			})

			Convey("It sanitizes input", func() {
				So(sanitize("  FRIEREN  "), ShouldEqual, "frieren")
			})
		})

		Convey("When suggestions are disabled", func() {
			viper.Set(key.SearchShowQuerySuggestions, false)
			defer viper.Set(key.SearchShowQuerySuggestions, true)

			So(SuggestMany("f"), ShouldBeEmpty)
		})
	})
}
