package tui

import (
	"fmt"
	"strings"

	"github.com/anilens-cli/anilens/icon"
	"github.com/anilens-cli/anilens/style"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wrap"
)

var (
	listExtraPaddingStyle = lipgloss.NewStyle().Padding(1, 2, 1, 0)
	paddingStyle          = lipgloss.NewStyle().Padding(1, 2)
)

func (b *statefulBubble) View() string {
	switch b.state {
	case loadingState:
		return b.viewLoading()
	case homeState:
		return b.viewHome()
	case searchState:
		return b.viewSearch()
	case resultsState:
		return b.viewResults()
	case filtersState:
		return listExtraPaddingStyle.Render(b.filtersC.View())
	case filterOptionsState:
		return listExtraPaddingStyle.Render(b.filterOptionsC.View())
	case detailState:
		return b.viewDetail()
	case serversState:
		return listExtraPaddingStyle.Render(b.serversC.View())
	case scheduleState:
		return listExtraPaddingStyle.Render(b.scheduleC.View())
	case errorState:
		return b.viewError()
	default:
		return "Unknown state"
	}
}

func (b *statefulBubble) viewLoading() string {
	return b.renderLines(
		true,
		[]string{
			style.Title("Loading"),
			"",
			b.spinnerC.View() + " " + b.progressStatus,
		},
	)
}

func (b *statefulBubble) viewHome() string {
	return listExtraPaddingStyle.Render(b.homeC.View())
}

func (b *statefulBubble) viewSearch() string {
	lines := []string{
		style.Title("Search Anime"),
		"",
		b.inputC.View(),
	}

	if suggestion, ok := b.searchSuggestion.Get(); ok {
		lines = append(lines, "", style.Faint(fmt.Sprintf("tab %s %s", icon.Get(icon.Search), suggestion)))
	}

	return b.renderLines(true, lines)
}

func (b *statefulBubble) viewResults() string {
	return listExtraPaddingStyle.Render(b.resultsC.View())
}

// viewDetail renders the series header above its episode list.
func (b *statefulBubble) viewDetail() string {
	detail := b.selectedDetail
	if detail == nil {
		return listExtraPaddingStyle.Render(b.episodesC.View())
	}

	var header []string

	title := style.Title(detail.Title)
	if detail.Status != "" {
		title += " " + style.Tag(style.Base, statusColor(detail.Status))(detail.Status)
	}
	header = append(header, title)

	if len(detail.Genres) > 0 {
		header = append(header, style.Faint(strings.Join(detail.Genres, " • ")))
	}

	if airing, ok := detail.NextAiringDate.Get(); ok {
		header = append(header, fmt.Sprintf("%s Next episode %s", icon.Get(icon.Calendar), style.Bold(airing)))
	}

	header = append(header, "", wrap.String(detail.Synopsis, b.width))

	return paddingStyle.Render(strings.Join(header, "\n")) + "\n" + listExtraPaddingStyle.Render(b.episodesC.View())
}

func (b *statefulBubble) viewError() string {
	errorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	errorBody := errorStyle.Render(fmt.Sprintf("%v", b.lastError))
	errorMsg := wrap.String(errorBody, b.width)
	return b.renderLines(
		true,
		append([]string{
			style.ErrorTitle("Error"),
			"",
			icon.Get(icon.Fail) + " An error occurred:",
			"",
		},
			errorMsg,
		),
	)
}

func (b *statefulBubble) renderLines(addHelp bool, lines []string) string {
	h := len(lines)
	l := strings.Join(lines, "\n")
	if addHelp {
		if b.height > h {
			l += strings.Repeat("\n", b.height-h)
		}
		l += b.helpC.View(b.keymap)
	}

	return paddingStyle.Render(l)
}

func statusColor(status string) lipgloss.Color {
	switch {
	case strings.Contains(strings.ToLower(status), "emisi"):
		return style.Green
	case strings.Contains(strings.ToLower(status), "finalizado"):
		return style.Subtext
	default:
		return style.Yellow
	}
}
