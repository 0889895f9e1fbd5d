// Package animeflv provides a typed client for the unofficial AnimeFLV catalog API.
//
// The remote payloads are loosely shaped; this package is the only place that
// touches them. Everything it returns is a stable view model consumed by the
// catalog session, the schedule builder and the TUI.
package animeflv

import "github.com/samber/mo"

// SeriesSummary is one entry of a search or browse result page.
// Slug is the upstream primary key and is always non-empty.
type SeriesSummary struct {
	Slug     string            `json:"slug"`
	Title    string            `json:"title"`
	Poster   string            `json:"poster"`
	Synopsis string            `json:"synopsis"`
	Type     string            `json:"type"`
	URL      string            `json:"url"`
	Rating   mo.Option[string] `json:"rating"`
}

// Episode is a single watchable entry of a series, ascending release order.
type Episode struct {
	Number int    `json:"number"`
	Slug   string `json:"slug"`
	URL    string `json:"url"`
}

// SeriesDetail extends a summary with the fields only the detail endpoint carries.
// The upstream payload never echoes the requesting slug; the client injects it.
type SeriesDetail struct {
	SeriesSummary

	AlternativeTitles []string          `json:"alternative_titles"`
	Genres            []string          `json:"genres"`
	Status            string            `json:"status"`
	Episodes          []Episode         `json:"episodes"`
	NextAiringDate    mo.Option[string] `json:"next_airing_date"`
}

// LatestEpisode is one entry of the latest-episodes feed.
// ParentSlug is derived from the episode slug, not read from the payload; it
// is best-effort, not an authoritative foreign key.
type LatestEpisode struct {
	ParentSlug string `json:"parent_slug"`
	Title      string `json:"title"`
	Poster     string `json:"poster"`
	Slug       string `json:"slug"`
	Number     int    `json:"number"`
	URL        string `json:"url"`
}

// Server is a third-party video host embedding one episode.
// The feed order is meaningful: the first server is the default selection.
type Server struct {
	Name     string `json:"name"`
	EmbedURL string `json:"embed_url"`
}

// PagedSummaries is one page of search or browse results.
// Items is empty whenever the requested page lies beyond the last one or the
// upstream reported the query as unsuccessful.
type PagedSummaries struct {
	Items       []SeriesSummary `json:"items"`
	CurrentPage int             `json:"current_page"`
	TotalPages  int             `json:"total_pages"`
	HasNextPage bool            `json:"has_next_page"`
}

// EmptyPage is the canonical zero-result page, mirroring what the upstream
// omits under edge conditions: page 1 of 1, nothing further.
func EmptyPage() PagedSummaries {
	return PagedSummaries{Items: []SeriesSummary{}, CurrentPage: 1, TotalPages: 1, HasNextPage: false}
}
