package inline

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/anilens-cli/anilens/animeflv"
	"github.com/anilens-cli/anilens/log"
	"github.com/anilens-cli/anilens/schedule"
)

func Run(options *Options) error {
	if options.Out == nil {
		options.Out = os.Stdout
	}

	if options.Page == 0 {
		options.Page = 1
	}

	switch {
	case options.Latest:
		return runLatest(options)
	case options.Schedule:
		return runSchedule(options)
	default:
		return runSearch(options)
	}
}

func runSearch(options *Options) error {
	page, err := animeflv.Search(options.Query, options.Filters, options.Page)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	selected := page.Items
	if options.SeriesPicker.IsPresent() {
		picker := options.SeriesPicker.MustGet()
		if choice := picker(page.Items); choice != nil {
			selected = []animeflv.SeriesSummary{*choice}
		} else {
			selected = nil
		}
	}

	entries := make([]*Entry, 0, len(selected))
	for _, series := range selected {
		entry, err := prepareEntry(series, options)
		if err != nil {
			return err
		}
		entries = append(entries, entry)
	}

	if options.Json {
		data, err := asJson(entries, page, options)
		if err != nil {
			return err
		}
		_, err = options.Out.Write(data)
		return err
	}

	for _, entry := range entries {
		if len(entry.Episodes) == 0 {
			fmt.Fprintln(options.Out, entry.Series.URL)
			continue
		}
		for _, ep := range entry.Episodes {
			if servers, ok := entry.Servers[ep.Slug]; ok {
				for _, server := range servers {
					fmt.Fprintln(options.Out, server.EmbedURL)
				}
				continue
			}
			fmt.Fprintln(options.Out, ep.URL)
		}
	}

	return nil
}

func prepareEntry(series animeflv.SeriesSummary, options *Options) (*Entry, error) {
	entry := &Entry{Series: series}

	if !options.IncludeEpisodes && !options.Servers {
		return entry, nil
	}

	detail, err := animeflv.Details(series.Slug)
	if err != nil {
		return nil, err
	}

	episodes := detail.Episodes
	if options.EpisodesFilter.IsPresent() {
		filtered, err := options.EpisodesFilter.MustGet()(episodes)
		if err != nil {
			return nil, err
		}
		episodes = filtered
	}
	entry.Episodes = episodes

	if options.Servers {
		entry.Servers = make(map[string][]animeflv.Server, len(episodes))
		for _, ep := range episodes {
			servers, err := animeflv.EpisodeServers(ep.Slug)
			if err != nil {
				log.Warnf("failed to fetch servers for %s: %v", ep.Slug, err)
				continue
			}
			entry.Servers[ep.Slug] = servers
		}
	}

	return entry, nil
}

func runLatest(options *Options) error {
	latest, err := animeflv.LatestEpisodes()
	if err != nil {
		return fmt.Errorf("latest episodes failed: %w", err)
	}

	if options.Json {
		data, err := json.Marshal(&LatestOutput{Result: latest})
		if err != nil {
			return err
		}
		_, err = options.Out.Write(data)
		return err
	}

	for _, ep := range latest {
		fmt.Fprintln(options.Out, ep.URL)
	}

	return nil
}

func runSchedule(options *Options) error {
	latest, err := animeflv.LatestEpisodes()
	if err != nil {
		return fmt.Errorf("latest episodes failed: %w", err)
	}

	weekly, err := schedule.BuildWeekly(latest, nil)
	if err != nil {
		return fmt.Errorf("schedule failed: %w", err)
	}

	if options.Json {
		data, err := scheduleAsJson(weekly)
		if err != nil {
			return err
		}
		_, err = options.Out.Write(data)
		return err
	}

	for _, day := range schedule.Days() {
		entries := weekly.On(day)
		if len(entries) == 0 {
			continue
		}
		fmt.Fprintln(options.Out, day)
		for _, entry := range entries {
			fmt.Fprintf(options.Out, "  %s (%s)\n", entry.Title, entry.NextAiringDate)
		}
	}

	return nil
}
