package animeflv

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/anilens-cli/anilens/filter"
	"github.com/anilens-cli/anilens/key"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

// serve points the client at a throwaway upstream with the relay disabled.
func serve(handler http.HandlerFunc) *httptest.Server {
	server := httptest.NewServer(handler)
	viper.Set(key.APIBaseURL, server.URL)
	viper.Set(key.APIProxyEnabled, false)
	return server
}

func TestSearch(t *testing.T) {
	Convey("Search", t, func() {
		Convey("Normalizes a successful result page", func() {
			server := serve(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"success": true, "data": {
					"media": [{"slug": "frieren", "title": "Frieren"}],
					"currentPage": 1, "hasNextPage": true, "foundPages": 3
				}}`))
			})
			defer server.Close()

			page, err := Search("frieren", filter.NewState(), 1)
			So(err, ShouldBeNil)
			So(page.Items, ShouldHaveLength, 1)
			So(page.Items[0].Slug, ShouldEqual, "frieren")
			So(page.HasNextPage, ShouldBeTrue)
		})

		Convey("A 404 is a legitimate empty result", func() {
			server := serve(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNotFound)
			})
			defer server.Close()

			page, err := Search("nothing", filter.NewState(), 1)
			So(err, ShouldBeNil)
			So(page.Items, ShouldBeEmpty)
			So(page.CurrentPage, ShouldEqual, 1)
			So(page.TotalPages, ShouldEqual, 1)
		})

		Convey("success:false is a legitimate empty result", func() {
			server := serve(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"success": false}`))
			})
			defer server.Close()

			page, err := Search("x", filter.NewState(), 1)
			So(err, ShouldBeNil)
			So(page.Items, ShouldBeEmpty)
		})

		Convey("Any other status is a transport failure", func() {
			server := serve(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadGateway)
			})
			defer server.Close()

			_, err := Search("x", filter.NewState(), 1)
			So(err, ShouldNotBeNil)
			So(IsTransport(err), ShouldBeTrue)
			So(IsMalformed(err), ShouldBeFalse)
		})

		Convey("A missing envelope is a payload failure", func() {
			server := serve(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"data": {}}`))
			})
			defer server.Close()

			_, err := Search("x", filter.NewState(), 1)
			So(err, ShouldNotBeNil)
			So(IsMalformed(err), ShouldBeTrue)
			So(IsTransport(err), ShouldBeFalse)
		})
	})
}

func TestDetails(t *testing.T) {
	Convey("Details", t, func() {
		Convey("Injects the requested slug", func(c C) {
			server := serve(func(w http.ResponseWriter, r *http.Request) {
				c.So(r.URL.Path, ShouldEqual, "/anime/frieren")
				_, _ = w.Write([]byte(`{"success": true, "data": {
					"title": "Frieren", "cover": "https://img/f.jpg",
					"episodes": [{"number": 1, "slug": "frieren-1", "url": "u"}]
				}}`))
			})
			defer server.Close()

			detail, err := Details("frieren")
			So(err, ShouldBeNil)
			So(detail.Slug, ShouldEqual, "frieren")
			So(detail.Poster, ShouldEqual, "https://img/f.jpg")
		})

		Convey("Unlike search, a 404 here is a hard error", func() {
			server := serve(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNotFound)
			})
			defer server.Close()

			_, err := Details("missing")
			So(err, ShouldNotBeNil)
			So(IsTransport(err), ShouldBeTrue)
		})

		Convey("success:false here is a payload failure", func() {
			server := serve(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"success": false}`))
			})
			defer server.Close()

			_, err := Details("x")
			So(IsMalformed(err), ShouldBeTrue)
		})
	})
}

func TestEpisodeServers(t *testing.T) {
	Convey("EpisodeServers", t, func(c C) {
		server := serve(func(w http.ResponseWriter, r *http.Request) {
			c.So(r.URL.Path, ShouldEqual, "/anime/episode/frieren-1")
			_, _ = w.Write([]byte(`{"success": true, "data": {"servers": [
				{"name": "SW", "embed": "https://sw/e/1"},
				{"name": "Okru", "embed": "https://ok/e/1"}
			]}}`))
		})
		defer server.Close()

		Convey("Returns servers in feed order", func() {
			servers, err := EpisodeServers("frieren-1")
			So(err, ShouldBeNil)
			So(servers, ShouldHaveLength, 2)
			So(servers[0].Name, ShouldEqual, "SW")
		})
	})
}

func TestLatestEpisodes(t *testing.T) {
	Convey("LatestEpisodes", t, func(c C) {
		server := serve(func(w http.ResponseWriter, r *http.Request) {
			c.So(r.URL.Path, ShouldEqual, "/list/latest-episodes")
			_, _ = w.Write([]byte(`{"success": true, "data": [
				{"title": "Frieren", "number": 12, "slug": "frieren-12", "cover": "c", "url": "u"}
			]}`))
		})
		defer server.Close()

		Convey("Returns normalized feed entries", func() {
			latest, err := LatestEpisodes()
			So(err, ShouldBeNil)
			So(latest, ShouldHaveLength, 1)
			So(latest[0].ParentSlug, ShouldEqual, "frieren")
		})
	})
}

func TestProxied(t *testing.T) {
	Convey("proxied", t, func() {
		Convey("Prefixes the relay when enabled", func() {
			viper.Set(key.APIProxyEnabled, true)
			viper.Set(key.APIProxy, "https://relay.test/")
			So(proxied("https://api.test/x"), ShouldEqual, "https://relay.test/https://api.test/x")
		})

		Convey("Passes through when disabled", func() {
			viper.Set(key.APIProxyEnabled, false)
			So(proxied("https://api.test/x"), ShouldEqual, "https://api.test/x")
		})
	})
}
