package tui

import (
	"fmt"
	"strings"

	"github.com/anilens-cli/anilens/animeflv"
	"github.com/anilens-cli/anilens/filter"
	"github.com/anilens-cli/anilens/icon"
	"github.com/anilens-cli/anilens/key"
	"github.com/anilens-cli/anilens/schedule"
	"github.com/anilens-cli/anilens/style"
	"github.com/anilens-cli/anilens/util"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/viper"
)

// facetChoice is one row in the filter bar: a facet and its current selection.
type facetChoice struct {
	facet string
	label string
}

// optionChoice is one selectable value for a facet.
type optionChoice struct {
	facet  string
	option filter.Option
}

// scheduleRow is one series in the weekly schedule, tagged with its weekday.
type scheduleRow struct {
	day   string
	entry schedule.Entry
}

// listItem implements the list.Item interface, wrapping various domain models for terminal display.
type listItem struct {
	internal interface{}
	marked   bool
}

func (t *listItem) toggleMark() {
	t.marked = !t.marked
}

func (t *listItem) getMark() string {
	switch t.internal.(type) {
	case optionChoice:
		return lipgloss.NewStyle().Bold(true).Foreground(style.AccentColor).Render(icon.Get(icon.Success))
	default:
		return ""
	}
}

// Title retrieves the primary display text for the list item.
func (t *listItem) Title() (title string) {
	switch e := t.internal.(type) {
	case animeflv.SeriesSummary:
		title = e.Title
	case animeflv.LatestEpisode:
		title = fmt.Sprintf("%s %s", e.Title, style.Faint(fmt.Sprintf("Episode %d", e.Number)))
	case animeflv.Episode:
		title = fmt.Sprintf("Episode %d", e.Number)
	case animeflv.Server:
		title = fmt.Sprintf("%s %s", icon.Get(icon.Play), e.Name)
	case scheduleRow:
		title = e.entry.Title
	case facetChoice:
		title = fmt.Sprintf("%s: %s", util.Capitalize(e.facet), style.Fg(style.AccentColor)(e.label))
	case optionChoice:
		title = e.option.Label
	case string:
		title = e
	default:
		title = t.FilterValue()
	}

	if title != "" && t.marked {
		title = fmt.Sprintf("%s %s", title, t.getMark())
	}

	return
}

// Description retrieves the secondary metadata line for the list item.
func (t *listItem) Description() (description string) {
	switch e := t.internal.(type) {
	case animeflv.SeriesSummary:
		var parts []string

		if e.Type != "" {
			parts = append(parts, lipgloss.NewStyle().Foreground(style.Subtext).Render(e.Type))
		}

		if rating, ok := e.Rating.Get(); ok {
			parts = append(parts, lipgloss.NewStyle().Foreground(style.AccentColor).Render("★ "+rating))
		}

		if viper.GetBool(key.TUIShowURLs) && e.URL != "" {
			parts = append(parts, style.Faint(e.URL))
		}

		if len(parts) == 0 {
			description = firstLine(e.Synopsis)
		} else {
			description = strings.Join(parts, " • ")
		}
	case animeflv.LatestEpisode:
		if viper.GetBool(key.TUIShowURLs) && e.URL != "" {
			description = style.Faint(e.URL)
		} else {
			description = style.Faint(e.ParentSlug)
		}
	case animeflv.Episode:
		if viper.GetBool(key.TUIShowURLs) {
			description = style.Faint(e.URL)
		} else {
			description = style.Faint(e.Slug)
		}
	case animeflv.Server:
		description = style.Faint(e.EmbedURL)
	case scheduleRow:
		description = fmt.Sprintf("%s %s %s", icon.Get(icon.Calendar), e.day, style.Faint(e.entry.NextAiringDate))
	case optionChoice:
		description = style.Faint(e.option.Key)
	}

	return
}

// FilterValue returns the string used for real-time list filtering and searching.
func (t *listItem) FilterValue() string {
	switch e := t.internal.(type) {
	case animeflv.SeriesSummary:
		return e.Title
	case animeflv.LatestEpisode:
		return e.Title
	case animeflv.Episode:
		return e.Slug
	case animeflv.Server:
		return e.Name
	case scheduleRow:
		return e.entry.Title
	case facetChoice:
		return e.facet
	case optionChoice:
		return e.option.Label
	case string:
		return e
	default:
		return ""
	}
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i != -1 {
		return s[:i]
	}
	return s
}
