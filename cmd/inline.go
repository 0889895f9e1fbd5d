// Package cmd implements the command-line interface for anilens.
package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/anilens-cli/anilens/filesystem"
	"github.com/anilens-cli/anilens/filter"
	"github.com/anilens-cli/anilens/inline"
	"github.com/anilens-cli/anilens/query"
	"github.com/invopop/jsonschema"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(inlineCmd)

	inlineCmd.Flags().StringP("query", "q", "", "The free-text search query to execute")
	inlineCmd.Flags().StringP("genre", "g", filter.All, "Constrain browsing to a genre")
	inlineCmd.Flags().StringP("type", "t", filter.All, "Constrain browsing to a media type")
	inlineCmd.Flags().String("status", filter.All, "Constrain browsing to an airing status")
	inlineCmd.Flags().String("order", filter.DefaultOrder, "Result ordering")
	inlineCmd.Flags().IntP("page", "p", 1, "Result page to fetch")
	inlineCmd.Flags().BoolP("latest", "l", false, "Emit the latest episodes feed instead of searching")
	inlineCmd.Flags().BoolP("schedule", "w", false, "Emit the weekly airing schedule instead of searching")
	inlineCmd.Flags().StringP("series", "a", "", "Criteria for selecting one series from the results (first, last, exact, index)")
	inlineCmd.Flags().String("series-value", "", "Value for the exact and index series selectors")
	inlineCmd.Flags().StringP("episodes", "e", "", "Criteria for selecting episodes of the chosen series")
	inlineCmd.Flags().BoolP("include-servers", "S", false, "Include streaming servers for the selected episodes")
	inlineCmd.Flags().BoolP("json", "j", false, "Format the command output as a JSON object")
	inlineCmd.Flags().StringP("output", "o", "", "Specify a file path to write the command output")

	inlineCmd.MarkFlagsMutuallyExclusive("latest", "schedule")

	_ = inlineCmd.RegisterFlagCompletionFunc("query", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return query.SuggestMany(toComplete), cobra.ShellCompDirectiveNoFileComp
	})
	_ = inlineCmd.RegisterFlagCompletionFunc("genre", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return lo.Map(filter.Genres(), func(o filter.Option, _ int) string { return o.Key }), cobra.ShellCompDirectiveNoFileComp
	})
}

// inlineCmd executes the application in non-interactive, scriptable inline mode.
var inlineCmd = &cobra.Command{
	Use:   "inline",
	Short: "Execute the application in non-interactive, scriptable inline mode",
	Long: `Initialize the application for automated execution and data extraction using inline mode.

Series selectors:
  first - first series in the result page
  last - last series in the result page
  exact - series whose title or slug equals --series-value
  index - series at --series-value (starting from 0, clamped)

Episode selectors:
  first - first episode of the series
  last - last episode of the series
  all - all episodes
  [number] - select one episode by its number
  [from]-[to] - select episodes by number range
  @[substring]@ - select episodes by slug substring

Without a series selector all series of the page are emitted.`,
	Run: func(cmd *cobra.Command, args []string) {
		filters := filter.State{
			Genre:  lo.Must(cmd.Flags().GetString("genre")),
			Type:   lo.Must(cmd.Flags().GetString("type")),
			Status: lo.Must(cmd.Flags().GetString("status")),
			Order:  lo.Must(cmd.Flags().GetString("order")),
		}

		for facet, ok := range map[string]bool{
			"genre":  filter.IsGenre(filters.Genre),
			"type":   filter.IsType(filters.Type),
			"status": filter.IsStatus(filters.Status),
			"order":  filter.IsOrder(filters.Order),
		} {
			if !ok {
				handleErr(fmt.Errorf("invalid %s selection", facet))
			}
		}

		output := lo.Must(cmd.Flags().GetString("output"))
		var (
			writer io.Writer
			err    error
		)
		if output != "" {
			writer, err = filesystem.API().Create(output)
			handleErr(err)
		} else {
			writer = os.Stdout
		}

		seriesFlag := lo.Must(cmd.Flags().GetString("series"))
		seriesPicker := mo.None[inline.SeriesPicker]()
		if seriesFlag != "" {
			fn, err := inline.ParseSeriesPicker(seriesFlag, lo.Must(cmd.Flags().GetString("series-value")))
			handleErr(err)
			seriesPicker = mo.Some(fn)
		}

		episodeFlag := lo.Must(cmd.Flags().GetString("episodes"))
		episodesFilter := mo.None[inline.EpisodesFilter]()
		if episodeFlag != "" {
			fn, err := inline.ParseEpisodesFilter(episodeFlag)
			handleErr(err)
			episodesFilter = mo.Some(fn)
		}

		options := &inline.Options{
			Out:             writer,
			Json:            lo.Must(cmd.Flags().GetBool("json")),
			Query:           lo.Must(cmd.Flags().GetString("query")),
			Filters:         filters,
			Page:            lo.Must(cmd.Flags().GetInt("page")),
			Latest:          lo.Must(cmd.Flags().GetBool("latest")),
			Schedule:        lo.Must(cmd.Flags().GetBool("schedule")),
			IncludeEpisodes: episodeFlag != "",
			Servers:         lo.Must(cmd.Flags().GetBool("include-servers")),
			SeriesPicker:    seriesPicker,
			EpisodesFilter:  episodesFilter,
		}

		handleErr(inline.Run(options))
	},
}

func init() {
	inlineCmd.AddCommand(inlineSchemaCmd)

	inlineSchemaCmd.Flags().BoolP("latest", "l", false, "Generate the JSON Schema for the latest episodes output")
	inlineSchemaCmd.Flags().BoolP("schedule", "w", false, "Generate the JSON Schema for the weekly schedule output")
	inlineSchemaCmd.MarkFlagsMutuallyExclusive("latest", "schedule")
}

// inlineSchemaCmd generates JSON schemas for structured inline mode outputs.
var inlineSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Generate JSON schemas for structured inline mode outputs",
	Run: func(cmd *cobra.Command, args []string) {
		reflector := new(jsonschema.Reflector)
		reflector.Anonymous = true
		reflector.Namer = func(t reflect.Type) string {
			name := t.Name()
			switch strings.ToLower(name) {
			case "entry", "output", "seriessummary", "episode", "server":
				return filepath.Base(t.PkgPath()) + "." + name
			}

			return name
		}

		var schema *jsonschema.Schema

		switch {
		case lo.Must(cmd.Flags().GetBool("latest")):
			schema = reflector.Reflect(&inline.LatestOutput{})
		case lo.Must(cmd.Flags().GetBool("schedule")):
			schema = reflector.Reflect(&inline.ScheduleOutput{})
		default:
			schema = reflector.Reflect(&inline.Output{})
		}

		handleErr(json.NewEncoder(os.Stdout).Encode(schema))
	},
}
