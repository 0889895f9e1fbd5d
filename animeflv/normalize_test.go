package animeflv

import (
	"encoding/json"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestNormalizeSearch(t *testing.T) {
	Convey("normalizeSearch", t, func() {
		Convey("Maps media items onto summaries", func() {
			data := json.RawMessage(`{
				"media": [
					{"slug": "one-piece-tv", "title": "One Piece", "cover": "https://img/op.jpg",
					 "synopsis": "Pirates.", "type": "TV", "url": "https://flv/one-piece-tv", "rating": "4.6"}
				],
				"currentPage": 2, "hasNextPage": true, "foundPages": 9
			}`)

			page, err := normalizeSearch(data)
			So(err, ShouldBeNil)
			So(page.Items, ShouldHaveLength, 1)

			item := page.Items[0]
			So(item.Slug, ShouldEqual, "one-piece-tv")
			So(item.Poster, ShouldEqual, "https://img/op.jpg")
			So(item.Synopsis, ShouldEqual, "Pirates.")
			So(item.Rating.MustGet(), ShouldEqual, "4.6")
			So(page.CurrentPage, ShouldEqual, 2)
			So(page.TotalPages, ShouldEqual, 9)
			So(page.HasNextPage, ShouldBeTrue)
		})

		Convey("Missing synopsis falls back to the placeholder", func() {
			data := json.RawMessage(`{"media": [{"slug": "x", "title": "X"}]}`)

			page, err := normalizeSearch(data)
			So(err, ShouldBeNil)
			So(page.Items[0].Synopsis, ShouldEqual, synopsisFallback)
			So(page.Items[0].Rating.IsAbsent(), ShouldBeTrue)
		})

		Convey("Absent pagination fields default to a single page", func() {
			data := json.RawMessage(`{"media": []}`)

			page, err := normalizeSearch(data)
			So(err, ShouldBeNil)
			So(page.CurrentPage, ShouldEqual, 1)
			So(page.TotalPages, ShouldEqual, 1)
			So(page.HasNextPage, ShouldBeFalse)
		})

		Convey("Missing media field yields an empty page, not an error", func() {
			page, err := normalizeSearch(json.RawMessage(`{"currentPage": 1}`))
			So(err, ShouldBeNil)
			So(page.Items, ShouldBeEmpty)
		})

		Convey("Non-object payload is malformed", func() {
			_, err := normalizeSearch(json.RawMessage(`"nope"`))
			So(err, ShouldNotBeNil)
			So(IsMalformed(err), ShouldBeTrue)
		})
	})
}

func TestNormalizeDetail(t *testing.T) {
	Convey("normalizeDetail", t, func() {
		data := json.RawMessage(`{
			"title": "Shaman King Flowers",
			"cover": "https://img/skf.jpg",
			"synopsis": "Hana.",
			"type": "TV",
			"status": "En emisión",
			"alternative_titles": ["SKF"],
			"genres": ["shounen", "sobrenatural"],
			"episodes": [
				{"number": 2, "slug": "shaman-king-flowers-2", "url": "https://flv/ver/shaman-king-flowers-2"},
				{"number": 1, "slug": "shaman-king-flowers-1", "url": "https://flv/ver/shaman-king-flowers-1"}
			],
			"next_airing_episode": "2026-09-04"
		}`)

		Convey("Injects the requested slug as identity", func() {
			detail, err := normalizeDetail(data, "shaman-king-flowers")
			So(err, ShouldBeNil)
			So(detail.Slug, ShouldEqual, "shaman-king-flowers")
			So(detail.Poster, ShouldEqual, "https://img/skf.jpg")
			So(detail.Genres, ShouldResemble, []string{"shounen", "sobrenatural"})
			So(detail.Episodes, ShouldHaveLength, 2)
			So(detail.NextAiringDate.MustGet(), ShouldEqual, "2026-09-04")
		})

		Convey("Absent airing date maps to None", func() {
			detail, err := normalizeDetail(json.RawMessage(`{"title": "Done"}`), "done")
			So(err, ShouldBeNil)
			So(detail.NextAiringDate.IsAbsent(), ShouldBeTrue)
		})

		Convey("Non-object payload is malformed", func() {
			_, err := normalizeDetail(json.RawMessage(`[1]`), "x")
			So(IsMalformed(err), ShouldBeTrue)
		})
	})
}

func TestNormalizeServers(t *testing.T) {
	Convey("normalizeServers", t, func() {
		Convey("Preserves feed order, embed becomes EmbedURL", func() {
			data := json.RawMessage(`{"servers": [
				{"name": "SW", "embed": "https://sw/e/1"},
				{"name": "YourUpload", "embed": "https://yu/e/1"}
			]}`)

			servers, err := normalizeServers(data)
			So(err, ShouldBeNil)
			So(servers, ShouldHaveLength, 2)
			So(servers[0].Name, ShouldEqual, "SW")
			So(servers[0].EmbedURL, ShouldEqual, "https://sw/e/1")
			So(servers[1].Name, ShouldEqual, "YourUpload")
		})

		Convey("Missing servers field is malformed", func() {
			_, err := normalizeServers(json.RawMessage(`{"title": "ep"}`))
			So(IsMalformed(err), ShouldBeTrue)
		})
	})
}

func TestNormalizeLatest(t *testing.T) {
	Convey("normalizeLatest", t, func() {
		Convey("Derives the parent slug from the episode slug", func() {
			data := json.RawMessage(`[
				{"title": "Shaman King Flowers", "number": 10, "cover": "https://img/skf.jpg",
				 "slug": "shaman-king-flowers-10", "url": "https://flv/ver/shaman-king-flowers-10"}
			]`)

			latest, err := normalizeLatest(data)
			So(err, ShouldBeNil)
			So(latest, ShouldHaveLength, 1)
			So(latest[0].ParentSlug, ShouldEqual, "shaman-king-flowers")
			So(latest[0].Number, ShouldEqual, 10)
			So(latest[0].Slug, ShouldEqual, "shaman-king-flowers-10")
		})

		Convey("Non-array payload is malformed", func() {
			_, err := normalizeLatest(json.RawMessage(`{"media": []}`))
			So(IsMalformed(err), ShouldBeTrue)
		})
	})
}

func TestParentSlug(t *testing.T) {
	Convey("ParentSlug", t, func() {
		Convey("Strips a trailing episode number", func() {
			So(ParentSlug("shaman-king-flowers-10"), ShouldEqual, "shaman-king-flowers")
			So(ParentSlug("one-piece-1094"), ShouldEqual, "one-piece")
		})

		Convey("Falls back to the substring before the last hyphen", func() {
			So(ParentSlug("some-special-ova"), ShouldEqual, "some-special")
		})

		Convey("Keeps a separator-free slug unchanged", func() {
			So(ParentSlug("oneshot"), ShouldEqual, "oneshot")
		})

		Convey("A series slug ending in a numeral is indistinguishable from its suffix", func() {
			// Known heuristic limit: "attack-titan-2" episode 5 has slug
			// "attack-titan-2-5" and resolves correctly, but episode slugs of
			// the bare form "attack-titan-2" lose the trailing segment.
			So(ParentSlug("attack-titan-2-5"), ShouldEqual, "attack-titan-2")
			So(ParentSlug("attack-titan-2"), ShouldEqual, "attack-titan")
		})
	})
}
