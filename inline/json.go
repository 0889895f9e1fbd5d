package inline

import (
	"encoding/json"

	"github.com/anilens-cli/anilens/animeflv"
	"github.com/anilens-cli/anilens/filter"
	"github.com/anilens-cli/anilens/schedule"
)

type Entry struct {
	// Series is the catalog summary of the matched series.
	Series animeflv.SeriesSummary `json:"series"`
	// Episodes holds the (optionally filtered) episode list, when requested.
	Episodes []animeflv.Episode `json:"episodes,omitempty"`
	// Servers maps episode slugs to their streaming servers, when requested.
	Servers map[string][]animeflv.Server `json:"servers,omitempty"`
}

type Output struct {
	Query       string        `json:"query,omitempty"`
	Filters     *filter.State `json:"filters,omitempty"`
	CurrentPage int           `json:"current_page"`
	TotalPages  int           `json:"total_pages"`
	HasNextPage bool          `json:"has_next_page"`
	Result      []*Entry      `json:"result"`
}

type LatestOutput struct {
	Result []animeflv.LatestEpisode `json:"result"`
}

type ScheduleDay struct {
	Day     string           `json:"day"`
	Entries []schedule.Entry `json:"entries"`
}

type ScheduleOutput struct {
	Result []ScheduleDay `json:"result"`
}

func asJson(entries []*Entry, page animeflv.PagedSummaries, options *Options) ([]byte, error) {
	output := &Output{
		Query:       options.Query,
		CurrentPage: page.CurrentPage,
		TotalPages:  page.TotalPages,
		HasNextPage: page.HasNextPage,
		Result:      entries,
	}

	if !options.Filters.IsDefault() {
		filters := options.Filters
		output.Filters = &filters
	}

	return json.Marshal(output)
}

func scheduleAsJson(weekly schedule.Weekly) ([]byte, error) {
	// Buckets are emitted in canonical weekday order, not map order.
	days := make([]ScheduleDay, 0, len(schedule.Days()))
	for _, day := range schedule.Days() {
		days = append(days, ScheduleDay{Day: day, Entries: weekly.On(day)})
	}

	return json.Marshal(&ScheduleOutput{Result: days})
}
