// Package catalog holds the browsing session: the active query or filter
// state, the current page and the last fetched result set.
//
// The session is the referee between rapid user-driven state changes and
// their asynchronous results. Every mutation bumps a generation counter and
// every refresh carries the generation it was started under; a refresh that
// finishes after a newer one started is discarded instead of committed.
package catalog

import (
	"sync"

	"github.com/anilens-cli/anilens/animeflv"
	"github.com/anilens-cli/anilens/filter"
	"github.com/anilens-cli/anilens/log"
)

// EmptyKind classifies a zero-item result for user-facing messaging.
// An empty page is a reported condition, never an error.
type EmptyKind int

const (
	NotEmpty EmptyKind = iota
	// EmptyForQuery: the free-text query matched nothing.
	EmptyForQuery
	// EmptyForFilters: the facet combination matched nothing.
	EmptyForFilters
)

// SearchFunc issues one catalog query. It exists so tests and alternative
// shells can substitute the network client.
type SearchFunc func(text string, f filter.State, page int) (animeflv.PagedSummaries, error)

// Outcome is the commit result of one refresh.
type Outcome struct {
	Page  animeflv.PagedSummaries
	Empty EmptyKind
	// Stale marks a refresh that lost the race against a newer one. Its page
	// was dropped, not applied.
	Stale bool
}

// Session owns the catalog view state. All methods are safe for concurrent
// use; only Refresh blocks.
type Session struct {
	mu      sync.Mutex
	search  SearchFunc
	query   string
	filters filter.State
	page    int

	generation uint64
	last       animeflv.PagedSummaries
	hasResult  bool
}

// NewSession returns a session in browse mode on page one. A nil search
// function defaults to the live catalog client.
func NewSession(search SearchFunc) *Session {
	if search == nil {
		search = animeflv.Search
	}
	return &Session{
		search:  search,
		filters: filter.NewState(),
		page:    1,
	}
}

// SetQuery switches the session to free-text mode and rewinds to page one.
// An empty text returns the session to browse mode.
func (s *Session) SetQuery(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.query = text
	s.page = 1
	s.generation++
}

// SetFilter updates one facet, clears any free-text query and rewinds to
// page one. Selections outside the enumerated option tables are rejected.
func (s *Session) SetFilter(facet, value string) error {
	valid := map[string]func(string) bool{
		"genre":  filter.IsGenre,
		"type":   filter.IsType,
		"status": filter.IsStatus,
		"order":  filter.IsOrder,
	}

	check, ok := valid[facet]
	if !ok {
		return &UnknownFacetError{Facet: facet}
	}
	if !check(value) {
		return &InvalidSelectionError{Facet: facet, Value: value}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	switch facet {
	case "genre":
		s.filters.Genre = value
	case "type":
		s.filters.Type = value
	case "status":
		s.filters.Status = value
	case "order":
		s.filters.Order = value
	}
	s.query = ""
	s.page = 1
	s.generation++
	return nil
}

// NextPage advances one page when the last result reports one; otherwise it
// is a no-op, not an error.
func (s *Session) NextPage() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.hasResult || !s.last.HasNextPage {
		return false
	}
	s.page++
	s.generation++
	return true
}

// PreviousPage rewinds one page, bounded at page one.
func (s *Session) PreviousPage() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.page <= 1 {
		return false
	}
	s.page--
	s.generation++
	return true
}

// Refresh issues the query for the current state and commits the result,
// unless a newer mutation or refresh started in the meantime: then the
// fetched page is discarded and the outcome marked stale (last-request-wins).
func (s *Session) Refresh() (Outcome, error) {
	s.mu.Lock()
	// Claiming a fresh generation here makes an overlapping earlier refresh
	// stale even when no mutation happened between the two.
	s.generation++
	token := s.generation
	text, filters, page := s.query, s.filters, s.page
	s.mu.Unlock()

	result, err := s.search(text, filters, page)

	s.mu.Lock()
	defer s.mu.Unlock()

	if token != s.generation {
		log.Debugf("discarding stale catalog result for page %d", page)
		return Outcome{Stale: true}, nil
	}
	if err != nil {
		return Outcome{}, err
	}

	s.last = result
	s.hasResult = true
	// Adopt the page the upstream actually served; it clamps out-of-range
	// requests back into bounds.
	s.page = result.CurrentPage

	return Outcome{Page: result, Empty: s.classify(result)}, nil
}

// classify distinguishes "nothing for this query" from "nothing for these
// filters". Callers hold s.mu.
func (s *Session) classify(result animeflv.PagedSummaries) EmptyKind {
	if len(result.Items) > 0 {
		return NotEmpty
	}
	if s.query != "" {
		return EmptyForQuery
	}
	return EmptyForFilters
}

// Accessors snapshot the current state.

func (s *Session) Query() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.query
}

func (s *Session) Filters() filter.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filters
}

func (s *Session) Page() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.page
}

// Last returns the most recently committed result page, false when no
// refresh has committed yet.
func (s *Session) Last() (animeflv.PagedSummaries, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last, s.hasResult
}
