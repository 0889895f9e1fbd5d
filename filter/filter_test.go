package filter

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestState(t *testing.T) {
	Convey("State", t, func() {
		Convey("NewState selects every sentinel", func() {
			s := NewState()
			So(s.Genre, ShouldEqual, All)
			So(s.Type, ShouldEqual, All)
			So(s.Status, ShouldEqual, All)
			So(s.Order, ShouldEqual, DefaultOrder)
			So(s.IsDefault(), ShouldBeTrue)
		})

		Convey("Any selection leaves the default state", func() {
			s := NewState()
			s.Genre = "shounen"
			So(s.IsDefault(), ShouldBeFalse)
		})
	})
}

func TestStatusCode(t *testing.T) {
	Convey("StatusCode", t, func() {
		Convey("Translates the three known statuses", func() {
			for slug, want := range map[string]int{
				"emision":      1,
				"finalizado":   2,
				"proximamente": 3,
			} {
				code, ok := StatusCode(slug)
				So(ok, ShouldBeTrue)
				So(code, ShouldEqual, want)
			}
		})

		Convey("Rejects the sentinel and unknown slugs", func() {
			for _, slug := range []string{All, "", "airing", "finished"} {
				_, ok := StatusCode(slug)
				So(ok, ShouldBeFalse)
			}
		})
	})
}

func TestOptions(t *testing.T) {
	Convey("Option tables", t, func() {
		Convey("Every facet leads with its sentinel", func() {
			So(Genres()[0].Key, ShouldEqual, All)
			So(Types()[0].Key, ShouldEqual, All)
			So(Statuses()[0].Key, ShouldEqual, All)
			So(Orders()[0].Key, ShouldEqual, DefaultOrder)
		})

		Convey("Validity checks enumerate table membership", func() {
			So(IsGenre("shounen"), ShouldBeTrue)
			So(IsGenre("isekai"), ShouldBeFalse)
			So(IsType("ova"), ShouldBeTrue)
			So(IsStatus("emision"), ShouldBeTrue)
			So(IsOrder("rating"), ShouldBeTrue)
			So(IsOrder("random"), ShouldBeFalse)
		})

		Convey("Every status with a numeric code is enumerated", func() {
			for slug := range statusCodes {
				So(IsStatus(slug), ShouldBeTrue)
			}
		})

		Convey("Accessors return copies", func() {
			g := Genres()
			g[0].Key = "mutated"
			So(Genres()[0].Key, ShouldEqual, All)
		})

		Convey("Label resolves display names", func() {
			So(Label(Types(), "movie"), ShouldEqual, "Película")
			So(Label(Types(), "unknown"), ShouldEqual, "unknown")
		})
	})
}
