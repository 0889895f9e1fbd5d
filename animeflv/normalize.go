// Package animeflv provides a typed client for the unofficial AnimeFLV catalog API.
package animeflv

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/anilens-cli/anilens/log"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

// synopsisFallback replaces an absent or blank synopsis field.
const synopsisFallback = "No synopsis available."

// Raw payload shapes, decoded from the envelope's data field. Field presence
// is inconsistent upstream, so everything optional stays a plain string and
// gets resolved during normalization.

type rawMedia struct {
	Slug     string `json:"slug"`
	Title    string `json:"title"`
	Cover    string `json:"cover"`
	Synopsis string `json:"synopsis"`
	Type     string `json:"type"`
	URL      string `json:"url"`
	Rating   string `json:"rating"`
}

type rawSearch struct {
	Media       []rawMedia `json:"media"`
	CurrentPage int        `json:"currentPage"`
	HasNextPage bool       `json:"hasNextPage"`
	FoundPages  int        `json:"foundPages"`
}

type rawEpisode struct {
	Number int    `json:"number"`
	Slug   string `json:"slug"`
	URL    string `json:"url"`
}

type rawDetail struct {
	rawMedia

	AlternativeTitles []string     `json:"alternative_titles"`
	Genres            []string     `json:"genres"`
	Status            string       `json:"status"`
	Episodes          []rawEpisode `json:"episodes"`
	NextAiringEpisode string       `json:"next_airing_episode"`
}

type rawServers struct {
	Servers []struct {
		Name  string `json:"name"`
		Embed string `json:"embed"`
	} `json:"servers"`
}

type rawLatest struct {
	Title  string `json:"title"`
	Number int    `json:"number"`
	Cover  string `json:"cover"`
	Slug   string `json:"slug"`
	URL    string `json:"url"`
}

// summaryOf maps one raw media item onto its view model.
func summaryOf(item rawMedia) SeriesSummary {
	synopsis := item.Synopsis
	if synopsis == "" {
		synopsis = synopsisFallback
	}

	rating := mo.None[string]()
	if item.Rating != "" {
		rating = mo.Some(item.Rating)
	}

	return SeriesSummary{
		Slug:     item.Slug,
		Title:    item.Title,
		Poster:   item.Cover,
		Synopsis: synopsis,
		Type:     item.Type,
		URL:      item.URL,
		Rating:   rating,
	}
}

// normalizeSearch converts a search/browse data payload into a result page.
// The upstream omits the pagination trio under edge conditions; absent values
// default to a single page rather than failing.
func normalizeSearch(data json.RawMessage) (PagedSummaries, error) {
	var raw rawSearch
	if err := json.Unmarshal(data, &raw); err != nil {
		return EmptyPage(), &MalformedError{Reason: "search payload", Err: err}
	}

	page := PagedSummaries{
		Items:       lo.Map(raw.Media, func(item rawMedia, _ int) SeriesSummary { return summaryOf(item) }),
		CurrentPage: raw.CurrentPage,
		TotalPages:  raw.FoundPages,
		HasNextPage: raw.HasNextPage,
	}
	if page.CurrentPage == 0 {
		page.CurrentPage = 1
	}
	if page.TotalPages == 0 {
		page.TotalPages = 1
	}
	return page, nil
}

// normalizeDetail converts a detail data payload. The payload never carries
// the slug it was requested with, so the caller's slug becomes the identity.
func normalizeDetail(data json.RawMessage, requestedSlug string) (*SeriesDetail, error) {
	var raw rawDetail
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &MalformedError{Reason: "detail payload", Err: err}
	}

	raw.Slug = requestedSlug
	detail := &SeriesDetail{
		SeriesSummary:     summaryOf(raw.rawMedia),
		AlternativeTitles: raw.AlternativeTitles,
		Genres:            raw.Genres,
		Status:            raw.Status,
		Episodes: lo.Map(raw.Episodes, func(ep rawEpisode, _ int) Episode {
			return Episode{Number: ep.Number, Slug: ep.Slug, URL: ep.URL}
		}),
		NextAiringDate: mo.None[string](),
	}
	if raw.NextAiringEpisode != "" {
		detail.NextAiringDate = mo.Some(raw.NextAiringEpisode)
	}
	return detail, nil
}

// normalizeServers converts an episode data payload into the ordered server
// list. Order is preserved: the first server is the default selection.
func normalizeServers(data json.RawMessage) ([]Server, error) {
	var raw rawServers
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &MalformedError{Reason: "servers payload", Err: err}
	}
	if raw.Servers == nil {
		return nil, &MalformedError{Reason: "servers field missing"}
	}

	servers := make([]Server, len(raw.Servers))
	for i, s := range raw.Servers {
		servers[i] = Server{Name: s.Name, EmbedURL: s.Embed}
	}
	return servers, nil
}

// normalizeLatest converts the latest-episodes feed, deriving each entry's
// parent series slug from its episode slug.
func normalizeLatest(data json.RawMessage) ([]LatestEpisode, error) {
	var raw []rawLatest
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &MalformedError{Reason: "latest episodes payload", Err: err}
	}

	return lo.Map(raw, func(item rawLatest, _ int) LatestEpisode {
		return LatestEpisode{
			ParentSlug: ParentSlug(item.Slug),
			Title:      item.Title,
			Poster:     item.Cover,
			Slug:       item.Slug,
			Number:     item.Number,
			URL:        item.URL,
		}
	}), nil
}

// episodeSuffix matches an episode slug's trailing episode number,
// e.g. "shaman-king-flowers-10".
var episodeSuffix = regexp.MustCompile(`^(.*)-\d+$`)

// ParentSlug derives the parent series slug from an episode slug by stripping
// the trailing episode number. The feed carries no explicit foreign key, so
// the result is best-effort: a series whose own slug ends in a numeral
// segment cannot be told apart from its episode suffix.
//
// Slugs that do not match the pattern fall back to the substring before the
// last hyphen; a slug with no hyphen at all is returned unchanged. Both
// fallback paths are logged since they can silently mis-associate.
func ParentSlug(episodeSlug string) string {
	if m := episodeSuffix.FindStringSubmatch(episodeSlug); m != nil {
		return m[1]
	}

	if i := strings.LastIndex(episodeSlug, "-"); i > 0 {
		log.Warnf("episode slug %q has no numeric suffix, using substring fallback", episodeSlug)
		return episodeSlug[:i]
	}

	log.Warnf("episode slug %q has no separator, keeping it as parent slug", episodeSlug)
	return episodeSlug
}
