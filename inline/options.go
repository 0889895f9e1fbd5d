// Package inline implements the application's non-interactive, programmable execution mode.
package inline

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/anilens-cli/anilens/animeflv"
	"github.com/anilens-cli/anilens/filter"
	"github.com/anilens-cli/anilens/util"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

type (
	SeriesPicker   func([]animeflv.SeriesSummary) *animeflv.SeriesSummary
	EpisodesFilter func([]animeflv.Episode) ([]animeflv.Episode, error)
)

type Options struct {
	Out             io.Writer
	Json            bool
	Query           string
	Filters         filter.State
	Page            int
	Latest          bool
	Schedule        bool
	IncludeEpisodes bool
	Servers         bool
	SeriesPicker    mo.Option[SeriesPicker]
	EpisodesFilter  mo.Option[EpisodesFilter]
}

func ParseSeriesPicker(kind, value string) (SeriesPicker, error) {
	switch kind {
	case "first":
		return func(series []animeflv.SeriesSummary) *animeflv.SeriesSummary {
			if len(series) == 0 {
				return nil
			}
			return &series[0]
		}, nil
	case "last":
		return func(series []animeflv.SeriesSummary) *animeflv.SeriesSummary {
			if len(series) == 0 {
				return nil
			}
			return &series[len(series)-1]
		}, nil
	case "exact":
		return func(series []animeflv.SeriesSummary) *animeflv.SeriesSummary {
			for i, s := range series {
				if s.Title == value || s.Slug == value {
					return &series[i]
				}
			}
			return nil
		}, nil
	case "index":
		idx, err := strconv.ParseUint(value, 10, 16)
		if err != nil {
			return nil, fmt.Errorf("invalid index: %s", value)
		}
		return func(series []animeflv.SeriesSummary) *animeflv.SeriesSummary {
			if len(series) == 0 {
				return nil
			}
			i := util.Min(idx, uint64(len(series)-1))
			return &series[i]
		}, nil
	default:
		return nil, fmt.Errorf("unknown picker type: %s", kind)
	}
}

// ParseEpisodesFilter parses a string description of an episode filter.
// Format: "first", "last", "all", "1-5", "@text@", "5"
func ParseEpisodesFilter(description string) (EpisodesFilter, error) {
	if description == "first" {
		return func(episodes []animeflv.Episode) ([]animeflv.Episode, error) {
			if len(episodes) == 0 {
				return episodes, nil
			}
			return episodes[:1], nil
		}, nil
	}
	if description == "last" {
		return func(episodes []animeflv.Episode) ([]animeflv.Episode, error) {
			if len(episodes) == 0 {
				return episodes, nil
			}
			return episodes[len(episodes)-1:], nil
		}, nil
	}
	if description == "all" {
		return func(episodes []animeflv.Episode) ([]animeflv.Episode, error) {
			return episodes, nil
		}, nil
	}

	// Range: "1-5", by episode number.
	if strings.Contains(description, "-") {
		parts := strings.Split(description, "-")
		if len(parts) == 2 {
			from, err1 := strconv.Atoi(parts[0])
			to, err2 := strconv.Atoi(parts[1])
			if err1 == nil && err2 == nil {
				return func(episodes []animeflv.Episode) ([]animeflv.Episode, error) {
					return lo.Filter(episodes, func(e animeflv.Episode, _ int) bool {
						return e.Number >= from && e.Number <= to
					}), nil
				}, nil
			}
		}
	}

	// Substring: "@text@", matched against the episode slug.
	if strings.HasPrefix(description, "@") && strings.HasSuffix(description, "@") {
		sub := description[1 : len(description)-1]
		return func(episodes []animeflv.Episode) ([]animeflv.Episode, error) {
			return lo.Filter(episodes, func(e animeflv.Episode, _ int) bool {
				return strings.Contains(strings.ToLower(e.Slug), strings.ToLower(sub))
			}), nil
		}, nil
	}

	// Single episode number: "5"
	if number, err := strconv.Atoi(description); err == nil {
		return func(episodes []animeflv.Episode) ([]animeflv.Episode, error) {
			return lo.Filter(episodes, func(e animeflv.Episode, _ int) bool {
				return e.Number == number
			}), nil
		}, nil
	}

	return nil, fmt.Errorf("invalid episode filter: %s", description)
}
