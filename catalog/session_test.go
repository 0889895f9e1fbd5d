package catalog

import (
	"sync"
	"testing"

	"github.com/anilens-cli/anilens/animeflv"
	"github.com/anilens-cli/anilens/filter"
	. "github.com/smartystreets/goconvey/convey"
)

// fixedPage builds a one-item result page with the given pagination bounds.
func fixedPage(slug string, current, total int, hasNext bool) animeflv.PagedSummaries {
	return animeflv.PagedSummaries{
		Items:       []animeflv.SeriesSummary{{Slug: slug, Title: slug}},
		CurrentPage: current,
		TotalPages:  total,
		HasNextPage: hasNext,
	}
}

func TestSessionState(t *testing.T) {
	Convey("Session state transitions", t, func() {
		s := NewSession(func(text string, f filter.State, page int) (animeflv.PagedSummaries, error) {
			return fixedPage("hit", page, 5, page < 5), nil
		})

		Convey("Starts in browse mode on page one", func() {
			So(s.Query(), ShouldBeEmpty)
			So(s.Filters().IsDefault(), ShouldBeTrue)
			So(s.Page(), ShouldEqual, 1)
			_, ok := s.Last()
			So(ok, ShouldBeFalse)
		})

		Convey("SetQuery rewinds to page one", func() {
			_, _ = s.Refresh()
			So(s.NextPage(), ShouldBeTrue)
			s.SetQuery("naruto")
			So(s.Page(), ShouldEqual, 1)
			So(s.Query(), ShouldEqual, "naruto")
		})

		Convey("SetFilter clears the query and rewinds the page", func() {
			s.SetQuery("naruto")
			So(s.SetFilter("genre", "shounen"), ShouldBeNil)
			So(s.Query(), ShouldBeEmpty)
			So(s.Page(), ShouldEqual, 1)
			So(s.Filters().Genre, ShouldEqual, "shounen")
		})

		Convey("SetFilter rejects unknown facets and selections", func() {
			err := s.SetFilter("studio", "bones")
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "studio")

			err = s.SetFilter("genre", "isekai")
			So(err, ShouldNotBeNil)
			So(s.Filters().Genre, ShouldEqual, filter.All)
		})
	})
}

func TestSessionPagination(t *testing.T) {
	Convey("Session pagination", t, func() {
		Convey("NextPage is a no-op without a next page", func() {
			s := NewSession(func(text string, f filter.State, page int) (animeflv.PagedSummaries, error) {
				return fixedPage("only", 1, 1, false), nil
			})

			So(s.NextPage(), ShouldBeFalse) // no result committed yet

			_, err := s.Refresh()
			So(err, ShouldBeNil)
			So(s.NextPage(), ShouldBeFalse)
			So(s.Page(), ShouldEqual, 1)
		})

		Convey("PreviousPage is bounded at page one", func() {
			s := NewSession(func(text string, f filter.State, page int) (animeflv.PagedSummaries, error) {
				return fixedPage("x", page, 5, true), nil
			})

			So(s.PreviousPage(), ShouldBeFalse)

			_, _ = s.Refresh()
			So(s.NextPage(), ShouldBeTrue)
			So(s.Page(), ShouldEqual, 2)
			So(s.PreviousPage(), ShouldBeTrue)
			So(s.Page(), ShouldEqual, 1)
		})

		Convey("Refresh adopts the page the upstream served", func() {
			s := NewSession(func(text string, f filter.State, page int) (animeflv.PagedSummaries, error) {
				// Upstream clamps any request back to its last page.
				return fixedPage("x", 3, 3, false), nil
			})

			_, _ = s.Refresh()
			So(s.Page(), ShouldEqual, 3)
		})
	})
}

func TestSessionEmptyClassification(t *testing.T) {
	Convey("Empty result classification", t, func() {
		s := NewSession(func(text string, f filter.State, page int) (animeflv.PagedSummaries, error) {
			return animeflv.EmptyPage(), nil
		})

		Convey("Empty with a query reports EmptyForQuery", func() {
			s.SetQuery("zzzz")
			outcome, err := s.Refresh()
			So(err, ShouldBeNil)
			So(outcome.Empty, ShouldEqual, EmptyForQuery)
		})

		Convey("Empty without a query reports EmptyForFilters", func() {
			outcome, err := s.Refresh()
			So(err, ShouldBeNil)
			So(outcome.Empty, ShouldEqual, EmptyForFilters)
		})
	})
}

func TestSessionLastRequestWins(t *testing.T) {
	Convey("Overlapping refreshes", t, func() {
		block := make(chan struct{})
		started := make(chan struct{})
		s := NewSession(func(text string, f filter.State, page int) (animeflv.PagedSummaries, error) {
			if text == "slow" {
				close(started)
				<-block
			}
			return fixedPage(text, 1, 1, false), nil
		})

		Convey("A slower, older refresh is discarded", func() {
			s.SetQuery("slow")

			var slowOutcome Outcome
			var slowErr error
			var wg sync.WaitGroup
			wg.Add(1)
			go func() {
				defer wg.Done()
				slowOutcome, slowErr = s.Refresh()
			}()

			// A newer mutation and refresh complete while the first request
			// is still in flight.
			<-started
			s.SetQuery("fast")
			fastOutcome, err := s.Refresh()
			So(err, ShouldBeNil)
			So(fastOutcome.Stale, ShouldBeFalse)
			So(fastOutcome.Page.Items[0].Slug, ShouldEqual, "fast")

			close(block)
			wg.Wait()

			So(slowErr, ShouldBeNil)
			So(slowOutcome.Stale, ShouldBeTrue)

			last, ok := s.Last()
			So(ok, ShouldBeTrue)
			So(last.Items[0].Slug, ShouldEqual, "fast")
		})
	})

	Convey("Overlapping refreshes with no mutation in between", t, func() {
		block := make(chan struct{})
		started := make(chan struct{})
		calls := 0
		var mu sync.Mutex
		s := NewSession(func(text string, f filter.State, page int) (animeflv.PagedSummaries, error) {
			mu.Lock()
			calls++
			n := calls
			mu.Unlock()
			if n == 1 {
				close(started)
				<-block
				return fixedPage("first-initiated", 1, 1, false), nil
			}
			return fixedPage("second-initiated", 1, 1, false), nil
		})

		Convey("The earlier-initiated refresh is discarded even without a mutation", func() {
			var firstOutcome Outcome
			var firstErr error
			var wg sync.WaitGroup
			wg.Add(1)
			go func() {
				defer wg.Done()
				firstOutcome, firstErr = s.Refresh()
			}()

			<-started
			secondOutcome, err := s.Refresh()
			So(err, ShouldBeNil)
			So(secondOutcome.Stale, ShouldBeFalse)

			close(block)
			wg.Wait()

			So(firstErr, ShouldBeNil)
			So(firstOutcome.Stale, ShouldBeTrue)

			last, ok := s.Last()
			So(ok, ShouldBeTrue)
			So(last.Items[0].Slug, ShouldEqual, "second-initiated")
		})
	})
}

func TestSessionRefreshError(t *testing.T) {
	Convey("Refresh error keeps the previous result", t, func() {
		calls := 0
		s := NewSession(func(text string, f filter.State, page int) (animeflv.PagedSummaries, error) {
			calls++
			if calls > 1 {
				return animeflv.EmptyPage(), &animeflv.TransportError{Status: 502}
			}
			return fixedPage("kept", 1, 1, false), nil
		})

		_, err := s.Refresh()
		So(err, ShouldBeNil)

		_, err = s.Refresh()
		So(err, ShouldNotBeNil)
		So(animeflv.IsTransport(err), ShouldBeTrue)

		last, ok := s.Last()
		So(ok, ShouldBeTrue)
		So(last.Items[0].Slug, ShouldEqual, "kept")
	})
}
