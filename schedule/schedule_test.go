package schedule

import (
	"errors"
	"testing"

	"github.com/anilens-cli/anilens/animeflv"
	"github.com/samber/mo"
	. "github.com/smartystreets/goconvey/convey"
)

// feedEntry builds a latest-episodes entry for the given parent slug.
func feedEntry(parent string, number int) animeflv.LatestEpisode {
	return animeflv.LatestEpisode{
		ParentSlug: parent,
		Title:      parent,
		Slug:       parent + "-1",
		Number:     number,
	}
}

// detailWith builds a series detail with an optional airing date.
func detailWith(slug, airDate string) *animeflv.SeriesDetail {
	detail := &animeflv.SeriesDetail{
		SeriesSummary:  animeflv.SeriesSummary{Slug: slug, Title: slug, Poster: "p/" + slug},
		NextAiringDate: mo.None[string](),
	}
	if airDate != "" {
		detail.NextAiringDate = mo.Some(airDate)
	}
	return detail
}

func TestBuildWeekly(t *testing.T) {
	Convey("BuildWeekly", t, func() {
		Convey("Buckets series by the weekday of their airing date", func() {
			// 2026-09-04 is a Friday, 2026-09-06 a Sunday.
			details := map[string]*animeflv.SeriesDetail{
				"frieren":   detailWith("frieren", "2026-09-04"),
				"one-piece": detailWith("one-piece", "2026-09-06"),
			}
			weekly, err := BuildWeekly(
				[]animeflv.LatestEpisode{feedEntry("frieren", 12), feedEntry("one-piece", 1094)},
				func(slug string) (*animeflv.SeriesDetail, error) { return details[slug], nil },
			)

			So(err, ShouldBeNil)
			So(weekly.Total(), ShouldEqual, 2)
			So(weekly.On("viernes"), ShouldHaveLength, 1)
			So(weekly.On("viernes")[0].Slug, ShouldEqual, "frieren")
			So(weekly.On("domingo")[0].Slug, ShouldEqual, "one-piece")
			So(weekly.On("lunes"), ShouldBeEmpty)
		})

		Convey("Deduplicates the feed by parent slug, first occurrence wins", func() {
			fetched := 0
			weekly, err := BuildWeekly(
				[]animeflv.LatestEpisode{feedEntry("frieren", 12), feedEntry("frieren", 11)},
				func(slug string) (*animeflv.SeriesDetail, error) {
					fetched++
					return detailWith(slug, "2026-09-04"), nil
				},
			)

			So(err, ShouldBeNil)
			So(fetched, ShouldEqual, 1)
			So(weekly.On("viernes"), ShouldHaveLength, 1)
		})

		Convey("One failing fetch does not hide the others", func() {
			weekly, err := BuildWeekly(
				[]animeflv.LatestEpisode{feedEntry("broken", 1), feedEntry("frieren", 12)},
				func(slug string) (*animeflv.SeriesDetail, error) {
					if slug == "broken" {
						return nil, &animeflv.TransportError{Status: 502}
					}
					return detailWith(slug, "2026-09-04"), nil
				},
			)

			So(err, ShouldBeNil)
			So(weekly.Total(), ShouldEqual, 1)
			So(weekly.On("viernes")[0].Slug, ShouldEqual, "frieren")
		})

		Convey("Every fetch failing is the only whole-operation failure", func() {
			weekly, err := BuildWeekly(
				[]animeflv.LatestEpisode{feedEntry("a", 1), feedEntry("b", 2)},
				func(slug string) (*animeflv.SeriesDetail, error) {
					return nil, &animeflv.TransportError{Status: 502}
				},
			)

			So(errors.Is(err, ErrAllUnavailable), ShouldBeTrue)
			So(weekly.IsEmpty(), ShouldBeTrue)
		})

		Convey("Series without an airing date are skipped, not fatal", func() {
			weekly, err := BuildWeekly(
				[]animeflv.LatestEpisode{feedEntry("finished", 24), feedEntry("frieren", 12)},
				func(slug string) (*animeflv.SeriesDetail, error) {
					if slug == "finished" {
						return detailWith(slug, ""), nil
					}
					return detailWith(slug, "2026-09-04"), nil
				},
			)

			So(err, ShouldBeNil)
			So(weekly.Total(), ShouldEqual, 1)
		})

		Convey("Unparseable airing dates are skipped and logged", func() {
			weekly, err := BuildWeekly(
				[]animeflv.LatestEpisode{feedEntry("odd", 1)},
				func(slug string) (*animeflv.SeriesDetail, error) {
					return detailWith(slug, "soon™"), nil
				},
			)

			So(err, ShouldBeNil)
			So(weekly.IsEmpty(), ShouldBeTrue)
		})

		Convey("An empty feed builds an empty calendar without error", func() {
			weekly, err := BuildWeekly(nil, func(slug string) (*animeflv.SeriesDetail, error) {
				panic("must not fetch")
			})

			So(err, ShouldBeNil)
			So(weekly.IsEmpty(), ShouldBeTrue)
		})

		Convey("Days returns the canonical Sunday-first order", func() {
			So(Days()[0], ShouldEqual, "domingo")
			So(Days()[6], ShouldEqual, "sábado")
			So(Days(), ShouldHaveLength, 7)
		})
	})
}
