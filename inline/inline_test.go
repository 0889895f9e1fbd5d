package inline

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/anilens-cli/anilens/animeflv"
	"github.com/anilens-cli/anilens/key"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func serve(handler http.HandlerFunc) *httptest.Server {
	server := httptest.NewServer(handler)
	viper.Set(key.APIBaseURL, server.URL)
	viper.Set(key.APIProxyEnabled, false)
	return server
}

func TestAsJson(t *testing.T) {
	Convey("asJson", t, func() {
		Convey("Produces valid JSON for an empty result page", func() {
			opts := &Options{Query: "test"}
			data, err := asJson(nil, animeflv.EmptyPage(), opts)
			So(err, ShouldBeNil)

			var output Output
			So(json.Unmarshal(data, &output), ShouldBeNil)
			So(output.Query, ShouldEqual, "test")
			So(output.Result, ShouldHaveLength, 0)
			So(output.CurrentPage, ShouldEqual, 1)
			So(output.Filters, ShouldBeNil)
		})
	})
}

func TestParseSeriesPicker(t *testing.T) {
	series := []animeflv.SeriesSummary{
		{Slug: "one-piece", Title: "One Piece"},
		{Slug: "bleach", Title: "Bleach"},
	}

	Convey("ParseSeriesPicker", t, func() {
		Convey("first", func() {
			picker, err := ParseSeriesPicker("first", "")
			So(err, ShouldBeNil)
			So(picker(series).Slug, ShouldEqual, "one-piece")
		})

		Convey("last", func() {
			picker, err := ParseSeriesPicker("last", "")
			So(err, ShouldBeNil)
			So(picker(series).Slug, ShouldEqual, "bleach")
		})

		Convey("exact matches titles and slugs", func() {
			picker, err := ParseSeriesPicker("exact", "bleach")
			So(err, ShouldBeNil)
			So(picker(series).Title, ShouldEqual, "Bleach")
			So(picker([]animeflv.SeriesSummary{}), ShouldBeNil)
		})

		Convey("index clamps to the last element", func() {
			picker, err := ParseSeriesPicker("index", "99")
			So(err, ShouldBeNil)
			So(picker(series).Slug, ShouldEqual, "bleach")
		})

		Convey("unknown kinds are rejected", func() {
			_, err := ParseSeriesPicker("median", "")
			So(err, ShouldNotBeNil)
		})
	})
}

func TestParseEpisodesFilter(t *testing.T) {
	episodes := []animeflv.Episode{
		{Number: 1, Slug: "naruto-1"},
		{Number: 2, Slug: "naruto-2"},
		{Number: 3, Slug: "naruto-3"},
	}

	Convey("ParseEpisodesFilter", t, func() {
		Convey("first and last", func() {
			first, err := ParseEpisodesFilter("first")
			So(err, ShouldBeNil)
			got, _ := first(episodes)
			So(got, ShouldHaveLength, 1)
			So(got[0].Number, ShouldEqual, 1)

			last, err := ParseEpisodesFilter("last")
			So(err, ShouldBeNil)
			got, _ = last(episodes)
			So(got[0].Number, ShouldEqual, 3)
		})

		Convey("Range selects by episode number", func() {
			f, err := ParseEpisodesFilter("2-3")
			So(err, ShouldBeNil)
			got, _ := f(episodes)
			So(got, ShouldHaveLength, 2)
			So(got[0].Number, ShouldEqual, 2)
		})

		Convey("Substring matches against the slug", func() {
			f, err := ParseEpisodesFilter("@naruto-2@")
			So(err, ShouldBeNil)
			got, _ := f(episodes)
			So(got, ShouldHaveLength, 1)
		})

		Convey("Single number selects one episode", func() {
			f, err := ParseEpisodesFilter("3")
			So(err, ShouldBeNil)
			got, _ := f(episodes)
			So(got, ShouldHaveLength, 1)
			So(got[0].Slug, ShouldEqual, "naruto-3")
		})

		Convey("Garbage is rejected", func() {
			_, err := ParseEpisodesFilter("every other one")
			So(err, ShouldNotBeNil)
		})
	})
}

func TestRun(t *testing.T) {
	Convey("Run", t, func() {
		Convey("Search mode emits the result page as JSON", func() {
			server := serve(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"success": true, "data": {
					"media": [{"slug": "frieren", "title": "Frieren"}],
					"currentPage": 1, "hasNextPage": false, "foundPages": 1
				}}`))
			})
			defer server.Close()

			var buf bytes.Buffer
			err := Run(&Options{Out: &buf, Json: true, Query: "frieren"})
			So(err, ShouldBeNil)

			var output Output
			So(json.Unmarshal(buf.Bytes(), &output), ShouldBeNil)
			So(output.Result, ShouldHaveLength, 1)
			So(output.Result[0].Series.Title, ShouldEqual, "Frieren")
		})

		Convey("Plain text mode prints series URLs", func() {
			server := serve(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"success": true, "data": {
					"media": [{"slug": "frieren", "title": "Frieren", "url": "https://example.org/anime/frieren"}],
					"currentPage": 1, "hasNextPage": false, "foundPages": 1
				}}`))
			})
			defer server.Close()

			var buf bytes.Buffer
			err := Run(&Options{Out: &buf, Query: "frieren"})
			So(err, ShouldBeNil)
			So(buf.String(), ShouldEqual, "https://example.org/anime/frieren\n")
		})
	})
}
