package tui

import (
	"fmt"

	"github.com/anilens-cli/anilens/animeflv"
	"github.com/anilens-cli/anilens/catalog"
	"github.com/anilens-cli/anilens/filter"
	"github.com/anilens-cli/anilens/key"
	"github.com/anilens-cli/anilens/open"
	"github.com/anilens-cli/anilens/query"
	"github.com/anilens-cli/anilens/schedule"
	"github.com/anilens-cli/anilens/style"
	"github.com/anilens-cli/anilens/util"
	bubblesKey "github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/viper"
)

func (b *statefulBubble) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case error:
		b.stopLoading()
		b.raiseError(msg)
	case heroMsg:
		if msg != nil {
			b.heroDetail = (*animeflv.SeriesDetail)(msg)
			if airing, ok := b.heroDetail.NextAiringDate.Get(); ok {
				return b, b.homeC.NewStatusMessage(fmt.Sprintf(
					"%s next on %s",
					style.Fg(style.AccentColor)(b.heroDetail.Title),
					style.Bold(airing),
				))
			}
			return b, b.homeC.NewStatusMessage(firstLine(b.heroDetail.Synopsis))
		}
		return b, nil
	case tea.WindowSizeMsg:
		b.resize(msg.Width, msg.Height)
	case tea.KeyMsg:
		switch {
		case bubblesKey.Matches(msg, b.keymap.forceQuit):
			return b, tea.Quit
		}

		// Input Guard: ignore non-priority keys during asynchronous operations.
		// The loading view stays responsive so a hung fetch can be escaped.
		if b.busy && b.state != loadingState && b.state != errorState {
			return b, nil
		}

		switch {
		case bubblesKey.Matches(msg, b.keymap.back):
			onListBack := func(l *list.Model) tea.Cmd {
				l.ResetSelected()
				l.ResetFilter()
				return tea.Batch(cmd, l.NewStatusMessage(""))
			}

			switch b.state {
			case loadingState:
				if b.statesHistory.Len() == 0 {
					return b, tea.Quit
				}
			case searchState:
				b.inputC.SetValue("")
			case resultsState:
				if b.resultsC.FilterState() != list.Unfiltered {
					b.resultsC, cmd = b.resultsC.Update(msg)
					return b, cmd
				}
				cmd = onListBack(&b.resultsC)
			case detailState:
				if b.episodesC.FilterState() != list.Unfiltered {
					b.episodesC, cmd = b.episodesC.Update(msg)
					return b, cmd
				}
				cmd = onListBack(&b.episodesC)
			case serversState:
				cmd = onListBack(&b.serversC)
			case filterOptionsState:
				cmd = onListBack(&b.filterOptionsC)
			case scheduleState:
				if b.scheduleC.FilterState() != list.Unfiltered {
					b.scheduleC, cmd = b.scheduleC.Update(msg)
					return b, cmd
				}
				cmd = onListBack(&b.scheduleC)
			}

			b.previousState()
			b.stopLoading()
			return b, cmd
		}
	}

	switch b.state {
	case loadingState:
		return b.updateLoading(msg)
	case homeState:
		return b.updateHome(msg)
	case searchState:
		return b.updateSearch(msg)
	case resultsState:
		return b.updateResults(msg)
	case filtersState:
		return b.updateFilters(msg)
	case filterOptionsState:
		return b.updateFilterOptions(msg)
	case detailState:
		return b.updateDetail(msg)
	case serversState:
		return b.updateServers(msg)
	case scheduleState:
		return b.updateSchedule(msg)
	case errorState:
		return b.updateError(msg)
	}

	return b, nil
}

func (b *statefulBubble) updateLoading(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		cmd  tea.Cmd
		cmds = make([]tea.Cmd, 0)
	)

	switch msg := msg.(type) {
	case []animeflv.LatestEpisode:
		items := make([]list.Item, len(msg))
		for i, e := range msg {
			items[i] = &listItem{internal: e}
		}

		cmds = append(cmds, b.homeC.SetItems(items))
		b.newState(homeState)
		b.stopLoading()

		// The first feed entry doubles as the hero; its detail trickles in.
		if len(msg) > 0 {
			cmds = append(cmds, b.fetchHero(msg[0].ParentSlug))
		}
	case catalog.Outcome:
		if msg.Stale {
			// A newer refresh is in flight and owns the next commit.
			break
		}

		items := make([]list.Item, len(msg.Page.Items))
		for i, s := range msg.Page.Items {
			items[i] = &listItem{internal: s}
		}

		cmds = append(cmds, b.resultsC.SetItems(items))
		b.resultsC.Title = b.resultsTitle(msg.Page)

		switch msg.Empty {
		case catalog.EmptyForQuery:
			cmds = append(cmds, b.resultsC.NewStatusMessage(
				fmt.Sprintf("Nothing matched %s", style.Bold(b.session.Query())),
			))
		case catalog.EmptyForFilters:
			cmds = append(cmds, b.resultsC.NewStatusMessage("No series match the selected filters"))
		default:
			cmds = append(cmds, b.resultsC.NewStatusMessage(""))
		}

		b.newState(resultsState)
		b.stopLoading()
	case *animeflv.SeriesDetail:
		b.selectedDetail = msg

		episodes := append([]animeflv.Episode(nil), msg.Episodes...)
		if viper.GetBool(key.TUIReverseEpisodes) {
			lo.Reverse(episodes)
		}

		items := make([]list.Item, len(episodes))
		for i, e := range episodes {
			items[i] = &listItem{internal: e}
		}

		cmds = append(cmds, b.episodesC.SetItems(items))
		b.episodesC.Title = msg.Title
		b.newState(detailState)
		b.stopLoading()
	case []animeflv.Server:
		items := make([]list.Item, len(msg))
		for i, s := range msg {
			items[i] = &listItem{internal: s}
		}

		cmds = append(cmds, b.serversC.SetItems(items))
		if b.selectedEpisode != nil {
			b.serversC.Title = fmt.Sprintf("Servers - %s", b.selectedEpisode.Slug)
		}
		b.newState(serversState)
		b.stopLoading()
	case schedule.Weekly:
		var items []list.Item
		for _, day := range schedule.Days() {
			for _, entry := range msg.On(day) {
				items = append(items, &listItem{internal: scheduleRow{day: day, entry: entry}})
			}
		}

		cmds = append(cmds, b.scheduleC.SetItems(items))
		b.newState(scheduleState)
		b.stopLoading()
	}

	b.spinnerC, cmd = b.spinnerC.Update(msg)
	return b, tea.Batch(append(cmds, cmd)...)
}

func (b *statefulBubble) updateHome(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case bubblesKey.Matches(msg, b.keymap.up):
			if n := len(b.homeC.Items()); n > 0 && b.homeC.Index() == 0 {
				b.homeC.Select(n - 1)
				return b, nil
			}
		case bubblesKey.Matches(msg, b.keymap.down):
			if n := len(b.homeC.Items()); n > 0 && b.homeC.Index() == n-1 {
				b.homeC.Select(0)
				return b, nil
			}
		case bubblesKey.Matches(msg, b.keymap.search):
			b.newState(searchState)
			b.inputC.Focus()
			return b, textinput.Blink
		case bubblesKey.Matches(msg, b.keymap.filters):
			b.newState(filtersState)
			return b, b.loadFilters()
		case bubblesKey.Matches(msg, b.keymap.weekly):
			b.newState(loadingState)
			return b, tea.Batch(b.startLoading(), b.buildSchedule(), b.waitForWeekly())
		case bubblesKey.Matches(msg, b.keymap.openURL):
			if b.homeC.SelectedItem() == nil {
				break
			}
			episode := b.homeC.SelectedItem().(*listItem).internal.(animeflv.LatestEpisode)
			if err := open.Start(episode.URL); err != nil {
				b.raiseError(err)
			}
		case bubblesKey.Matches(msg, b.keymap.seriesDetail):
			if b.homeC.SelectedItem() == nil {
				break
			}
			episode := b.homeC.SelectedItem().(*listItem).internal.(animeflv.LatestEpisode)
			b.newState(loadingState)
			return b, tea.Batch(b.startLoading(), b.fetchDetail(episode.ParentSlug), b.waitForDetail())
		case bubblesKey.Matches(msg, b.keymap.confirm):
			if b.homeC.SelectedItem() == nil {
				break
			}
			episode := b.homeC.SelectedItem().(*listItem).internal.(animeflv.LatestEpisode)
			b.selectedEpisode = &animeflv.Episode{
				Number: episode.Number,
				Slug:   episode.Slug,
				URL:    episode.URL,
			}
			go func() { _ = query.Remember(episode.Title, 1) }()
			b.newState(loadingState)
			return b, tea.Batch(b.startLoading(), b.fetchServers(episode.Slug), b.waitForServers())
		}
	}

	b.homeC, cmd = b.homeC.Update(msg)
	return b, cmd
}

func (b *statefulBubble) updateSearch(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case bubblesKey.Matches(msg, b.keymap.confirm) && b.inputC.Value() != "":
			text := b.inputC.Value()
			b.session.SetQuery(text)
			b.progressStatus = fmt.Sprintf("Searching for %s...", text)
			go func() { _ = query.Remember(text, 1) }()
			b.newState(loadingState)
			return b, tea.Batch(b.startLoading(), b.refreshResults(), b.waitForOutcome())
		case bubblesKey.Matches(msg, b.keymap.acceptSearchSuggestion) && b.searchSuggestion.IsPresent():
			b.inputC.SetValue(b.searchSuggestion.MustGet())
			b.searchSuggestion = mo.None[string]()
			b.inputC.SetCursor(len(b.inputC.Value()))
			return b, nil
		}
	}

	b.inputC, cmd = b.inputC.Update(msg)

	if b.inputC.Value() != "" {
		if suggestion, ok := query.Suggest(b.inputC.Value()).Get(); ok && suggestion != b.inputC.Value() {
			b.searchSuggestion = mo.Some(suggestion)
		} else {
			b.searchSuggestion = mo.None[string]()
		}
	} else if b.searchSuggestion.IsPresent() {
		b.searchSuggestion = mo.None[string]()
	}

	return b, cmd
}

func (b *statefulBubble) updateResults(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case bubblesKey.Matches(msg, b.keymap.up):
			if n := len(b.resultsC.Items()); n > 0 && b.resultsC.Index() == 0 {
				b.resultsC.Select(n - 1)
				return b, nil
			}
		case bubblesKey.Matches(msg, b.keymap.down):
			if n := len(b.resultsC.Items()); n > 0 && b.resultsC.Index() == n-1 {
				b.resultsC.Select(0)
				return b, nil
			}
		case bubblesKey.Matches(msg, b.keymap.search):
			b.newState(searchState)
			b.inputC.Focus()
			return b, textinput.Blink
		case bubblesKey.Matches(msg, b.keymap.filters):
			b.newState(filtersState)
			return b, b.loadFilters()
		case bubblesKey.Matches(msg, b.keymap.nextPage):
			if b.session.NextPage() {
				b.progressStatus = fmt.Sprintf("Loading page %d...", b.session.Page())
				b.newState(loadingState)
				return b, tea.Batch(b.startLoading(), b.refreshResults(), b.waitForOutcome())
			}
		case bubblesKey.Matches(msg, b.keymap.prevPage):
			if b.session.PreviousPage() {
				b.progressStatus = fmt.Sprintf("Loading page %d...", b.session.Page())
				b.newState(loadingState)
				return b, tea.Batch(b.startLoading(), b.refreshResults(), b.waitForOutcome())
			}
		case bubblesKey.Matches(msg, b.keymap.openURL):
			if b.resultsC.SelectedItem() == nil {
				break
			}
			series := b.resultsC.SelectedItem().(*listItem).internal.(animeflv.SeriesSummary)
			if err := open.Start(series.URL); err != nil {
				b.raiseError(err)
			}
		case bubblesKey.Matches(msg, b.keymap.confirm):
			if b.resultsC.SelectedItem() == nil {
				break
			}
			series := b.resultsC.SelectedItem().(*listItem).internal.(animeflv.SeriesSummary)
			b.selectedSeries = &series
			b.progressStatus = fmt.Sprintf("Loading %s...", series.Title)
			go func() { _ = query.Remember(series.Title, 2) }()
			b.newState(loadingState)
			return b, tea.Batch(b.startLoading(), b.fetchDetail(series.Slug), b.waitForDetail())
		}
	}

	b.resultsC, cmd = b.resultsC.Update(msg)
	return b, cmd
}

func (b *statefulBubble) updateFilters(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case bubblesKey.Matches(msg, b.keymap.up):
			if n := len(b.filtersC.Items()); n > 0 && b.filtersC.Index() == 0 {
				b.filtersC.Select(n - 1)
				return b, nil
			}
		case bubblesKey.Matches(msg, b.keymap.down):
			if n := len(b.filtersC.Items()); n > 0 && b.filtersC.Index() == n-1 {
				b.filtersC.Select(0)
				return b, nil
			}
		case bubblesKey.Matches(msg, b.keymap.confirm):
			if b.filtersC.SelectedItem() == nil {
				break
			}

			switch choice := b.filtersC.SelectedItem().(*listItem).internal.(type) {
			case facetChoice:
				b.activeFacet = choice.facet
				b.newState(filterOptionsState)
				return b, b.loadFilterOptions(choice.facet)
			case string:
				switch choice {
				case applyFiltersChoice:
					b.progressStatus = "Browsing catalog..."
					b.newState(loadingState)
					return b, tea.Batch(b.startLoading(), b.refreshResults(), b.waitForOutcome())
				case resetFiltersChoice:
					for facet, value := range map[string]string{
						"genre":  filter.All,
						"type":   filter.All,
						"status": filter.All,
						"order":  filter.DefaultOrder,
					} {
						if err := b.session.SetFilter(facet, value); err != nil {
							b.raiseError(err)
							return b, nil
						}
					}
					return b, b.loadFilters()
				}
			}
		}
	}

	b.filtersC, cmd = b.filtersC.Update(msg)
	return b, cmd
}

func (b *statefulBubble) updateFilterOptions(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case bubblesKey.Matches(msg, b.keymap.up):
			if n := len(b.filterOptionsC.Items()); n > 0 && b.filterOptionsC.Index() == 0 {
				b.filterOptionsC.Select(n - 1)
				return b, nil
			}
		case bubblesKey.Matches(msg, b.keymap.down):
			if n := len(b.filterOptionsC.Items()); n > 0 && b.filterOptionsC.Index() == n-1 {
				b.filterOptionsC.Select(0)
				return b, nil
			}
		case bubblesKey.Matches(msg, b.keymap.confirm):
			if b.filterOptionsC.SelectedItem() == nil {
				break
			}
			choice := b.filterOptionsC.SelectedItem().(*listItem).internal.(optionChoice)
			if err := b.session.SetFilter(choice.facet, choice.option.Key); err != nil {
				b.raiseError(err)
				return b, nil
			}
			b.previousState()
			return b, b.loadFilters()
		}
	}

	b.filterOptionsC, cmd = b.filterOptionsC.Update(msg)
	return b, cmd
}

func (b *statefulBubble) updateDetail(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case bubblesKey.Matches(msg, b.keymap.up):
			if n := len(b.episodesC.Items()); n > 0 && b.episodesC.Index() == 0 {
				b.episodesC.Select(n - 1)
				return b, nil
			}
		case bubblesKey.Matches(msg, b.keymap.down):
			if n := len(b.episodesC.Items()); n > 0 && b.episodesC.Index() == n-1 {
				b.episodesC.Select(0)
				return b, nil
			}
		case bubblesKey.Matches(msg, b.keymap.openURL):
			if b.episodesC.SelectedItem() == nil {
				break
			}
			episode := b.episodesC.SelectedItem().(*listItem).internal.(animeflv.Episode)
			if err := open.Start(episode.URL); err != nil {
				b.raiseError(err)
			}
		case bubblesKey.Matches(msg, b.keymap.confirm):
			if b.episodesC.SelectedItem() == nil {
				break
			}
			episode := b.episodesC.SelectedItem().(*listItem).internal.(animeflv.Episode)
			b.selectedEpisode = &episode
			b.newState(loadingState)
			return b, tea.Batch(b.startLoading(), b.fetchServers(episode.Slug), b.waitForServers())
		}
	}

	b.episodesC, cmd = b.episodesC.Update(msg)
	return b, cmd
}

func (b *statefulBubble) updateServers(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case bubblesKey.Matches(msg, b.keymap.up):
			if n := len(b.serversC.Items()); n > 0 && b.serversC.Index() == 0 {
				b.serversC.Select(n - 1)
				return b, nil
			}
		case bubblesKey.Matches(msg, b.keymap.down):
			if n := len(b.serversC.Items()); n > 0 && b.serversC.Index() == n-1 {
				b.serversC.Select(0)
				return b, nil
			}
		case bubblesKey.Matches(msg, b.keymap.confirm, b.keymap.openURL):
			if b.serversC.SelectedItem() == nil {
				break
			}
			server := b.serversC.SelectedItem().(*listItem).internal.(animeflv.Server)
			if err := open.Start(server.EmbedURL); err != nil {
				b.raiseError(err)
				return b, nil
			}
			return b, b.serversC.NewStatusMessage(fmt.Sprintf("Opened %s in the browser", style.Bold(server.Name)))
		}
	}

	b.serversC, cmd = b.serversC.Update(msg)
	return b, cmd
}

func (b *statefulBubble) updateSchedule(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case bubblesKey.Matches(msg, b.keymap.up):
			if n := len(b.scheduleC.Items()); n > 0 && b.scheduleC.Index() == 0 {
				b.scheduleC.Select(n - 1)
				return b, nil
			}
		case bubblesKey.Matches(msg, b.keymap.down):
			if n := len(b.scheduleC.Items()); n > 0 && b.scheduleC.Index() == n-1 {
				b.scheduleC.Select(0)
				return b, nil
			}
		case bubblesKey.Matches(msg, b.keymap.confirm, b.keymap.seriesDetail):
			if b.scheduleC.SelectedItem() == nil {
				break
			}
			row := b.scheduleC.SelectedItem().(*listItem).internal.(scheduleRow)
			b.progressStatus = fmt.Sprintf("Loading %s...", row.entry.Title)
			b.newState(loadingState)
			return b, tea.Batch(b.startLoading(), b.fetchDetail(row.entry.Slug), b.waitForDetail())
		}
	}

	b.scheduleC, cmd = b.scheduleC.Update(msg)
	return b, cmd
}

func (b *statefulBubble) updateError(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case bubblesKey.Matches(msg, b.keymap.quit):
			return b, tea.Quit
		case bubblesKey.Matches(msg, b.keymap.back):
			b.previousState()
			return b, nil
		}
	}
	return b, nil
}

const (
	applyFiltersChoice = "Apply filters"
	resetFiltersChoice = "Reset filters"
)

// loadFilters rebuilds the filter bar from the session's current facet state.
func (b *statefulBubble) loadFilters() tea.Cmd {
	f := b.session.Filters()

	items := []list.Item{
		&listItem{internal: facetChoice{facet: "genre", label: filter.Label(filter.Genres(), f.Genre)}},
		&listItem{internal: facetChoice{facet: "type", label: filter.Label(filter.Types(), f.Type)}},
		&listItem{internal: facetChoice{facet: "status", label: filter.Label(filter.Statuses(), f.Status)}},
		&listItem{internal: facetChoice{facet: "order", label: filter.Label(filter.Orders(), f.Order)}},
		&listItem{internal: applyFiltersChoice},
		&listItem{internal: resetFiltersChoice},
	}

	return b.filtersC.SetItems(items)
}

func (b *statefulBubble) loadFilterOptions(facet string) tea.Cmd {
	var options []filter.Option
	current := b.session.Filters()
	var selected string

	switch facet {
	case "genre":
		options, selected = filter.Genres(), current.Genre
	case "type":
		options, selected = filter.Types(), current.Type
	case "status":
		options, selected = filter.Statuses(), current.Status
	case "order":
		options, selected = filter.Orders(), current.Order
	}

	b.filterOptionsC.Title = fmt.Sprintf("Options - %s", util.Capitalize(facet))

	items := make([]list.Item, len(options))
	marked := 0
	for i, option := range options {
		items[i] = &listItem{
			internal: optionChoice{facet: facet, option: option},
			marked:   option.Key == selected,
		}
		if option.Key == selected {
			marked = i
		}
	}

	cmd := b.filterOptionsC.SetItems(items)
	b.filterOptionsC.Select(marked)
	return cmd
}

func (b *statefulBubble) resultsTitle(page animeflv.PagedSummaries) string {
	var scope string
	if text := b.session.Query(); text != "" {
		scope = fmt.Sprintf("Results - %s", text)
	} else if b.session.Filters().IsDefault() {
		scope = "Browse"
	} else {
		scope = "Browse - filtered"
	}

	if page.TotalPages > 1 {
		return fmt.Sprintf("%s (page %d/%d)", scope, page.CurrentPage, page.TotalPages)
	}

	return scope
}
