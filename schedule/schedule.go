// Package schedule derives the weekly airing calendar from the deduplicated
// set of currently-airing series.
//
// Every series detail is fetched concurrently and independently; the batch is
// settled in full before any result is folded, so one failing series never
// hides the others.
package schedule

import (
	"errors"
	"sync"
	"time"

	"github.com/anilens-cli/anilens/animeflv"
	"github.com/anilens-cli/anilens/log"
	"github.com/samber/lo"
)

// days holds the Spanish weekday names, indexed by time.Weekday.
var days = [7]string{"domingo", "lunes", "martes", "miércoles", "jueves", "viernes", "sábado"}

// airDateLayout is the calendar-date format the detail endpoint emits.
// No time of day: the date is treated as a local calendar date.
const airDateLayout = "2006-01-02"

// ErrAllUnavailable reports that every single detail fetch of the fan-out
// failed. Partial failures are tolerated and never surface here.
var ErrAllUnavailable = errors.New("no series details could be fetched")

// Entry is one series slot in the calendar.
type Entry struct {
	Slug           string `json:"slug"`
	Title          string `json:"title"`
	Poster         string `json:"poster"`
	NextAiringDate string `json:"next_airing_date"`
}

// Weekly maps weekday names onto their airing series. Bucket order follows
// the processing order of the underlying latest-episodes list, not air time.
type Weekly struct {
	buckets map[string][]Entry
}

// Days returns the canonical weekday order, Sunday first.
func Days() []string {
	return append([]string(nil), days[:]...)
}

// On returns the entries airing on the named weekday.
func (w Weekly) On(day string) []Entry {
	return w.buckets[day]
}

// Total counts the scheduled series across all weekdays.
func (w Weekly) Total() int {
	total := 0
	for _, entries := range w.buckets {
		total += len(entries)
	}
	return total
}

// IsEmpty reports whether no series could be scheduled.
func (w Weekly) IsEmpty() bool {
	return w.Total() == 0
}

// DetailFunc fetches one series detail. It exists so tests can substitute
// the network client.
type DetailFunc func(slug string) (*animeflv.SeriesDetail, error)

// outcome tags one settled fetch of the fan-out.
type outcome struct {
	detail *animeflv.SeriesDetail
	err    error
}

// BuildWeekly builds the calendar for the given latest-episodes feed.
//
// The feed is deduplicated by parent slug, first occurrence winning (the feed
// is most-recent-first). Details are fetched concurrently; results are folded
// in feed order once every fetch has settled. A series with an absent or
// unparseable airing date is skipped and logged. The only whole-operation
// failure is every fetch failing at once.
func BuildWeekly(latest []animeflv.LatestEpisode, fetchDetail DetailFunc) (Weekly, error) {
	if fetchDetail == nil {
		fetchDetail = animeflv.Details
	}

	weekly := Weekly{buckets: make(map[string][]Entry)}

	unique := lo.UniqBy(latest, func(e animeflv.LatestEpisode) string { return e.ParentSlug })
	if len(unique) == 0 {
		return weekly, nil
	}

	// Settle-all fan-out: each goroutine writes only its own slot, the fold
	// below runs strictly after every fetch finished.
	outcomes := make([]outcome, len(unique))
	var wg sync.WaitGroup
	for i, episode := range unique {
		wg.Add(1)
		go func(i int, slug string) {
			defer wg.Done()
			detail, err := fetchDetail(slug)
			outcomes[i] = outcome{detail: detail, err: err}
		}(i, episode.ParentSlug)
	}
	wg.Wait()

	failed := 0
	for i, settled := range outcomes {
		if settled.err != nil {
			failed++
			log.Warnf("skipping %s in schedule: %v", unique[i].ParentSlug, settled.err)
			continue
		}

		detail := settled.detail
		airDate, present := detail.NextAiringDate.Get()
		if !present {
			log.Debugf("%s has no upcoming airing date", detail.Slug)
			continue
		}

		date, err := time.ParseInLocation(airDateLayout, airDate, time.Local)
		if err != nil {
			log.Warnf("unparseable airing date %q for %s", airDate, detail.Slug)
			continue
		}

		day := days[date.Weekday()]
		weekly.buckets[day] = append(weekly.buckets[day], Entry{
			Slug:           detail.Slug,
			Title:          detail.Title,
			Poster:         detail.Poster,
			NextAiringDate: airDate,
		})
	}

	if failed == len(unique) {
		return weekly, ErrAllUnavailable
	}
	return weekly, nil
}
