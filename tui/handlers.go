package tui

import (
	"fmt"

	"github.com/anilens-cli/anilens/animeflv"
	"github.com/anilens-cli/anilens/log"
	"github.com/anilens-cli/anilens/schedule"
	"github.com/anilens-cli/anilens/style"
	"github.com/anilens-cli/anilens/util"
	tea "github.com/charmbracelet/bubbletea"
)

// heroMsg carries the detail of the most recent latest-episode series. It is
// decorative and its absence never fails the home view.
type heroMsg *animeflv.SeriesDetail

func (b *statefulBubble) loadLatest() tea.Cmd {
	return func() tea.Msg {
		log.Info("loading latest episodes")
		latest, err := animeflv.LatestEpisodes()
		if err != nil {
			log.Error(err)
			b.errorChannel <- err
			return nil
		}

		log.Infof("found %s", util.Quantify(len(latest), "latest episode", "latest episodes"))
		b.latestChannel <- latest
		return nil
	}
}

func (b *statefulBubble) waitForLatest() tea.Cmd {
	return func() tea.Msg {
		select {
		case latest := <-b.latestChannel:
			return latest
		case err := <-b.errorChannel:
			b.lastError = err
			return err
		}
	}
}

func (b *statefulBubble) fetchHero(slug string) tea.Cmd {
	return func() tea.Msg {
		detail, err := animeflv.Details(slug)
		if err != nil {
			log.Warnf("hero detail for %s unavailable: %v", slug, err)
			return nil
		}
		return heroMsg(detail)
	}
}

func (b *statefulBubble) refreshResults() tea.Cmd {
	return func() tea.Msg {
		outcome, err := b.session.Refresh()
		if err != nil {
			log.Error(err)
			b.errorChannel <- err
			return nil
		}

		b.outcomeChannel <- outcome
		return nil
	}
}

func (b *statefulBubble) waitForOutcome() tea.Cmd {
	return func() tea.Msg {
		select {
		case outcome := <-b.outcomeChannel:
			return outcome
		case err := <-b.errorChannel:
			b.lastError = err
			return err
		}
	}
}

func (b *statefulBubble) fetchDetail(slug string) tea.Cmd {
	return func() tea.Msg {
		log.Info("fetching detail of " + slug)
		b.progressStatus = fmt.Sprintf("Loading %s", style.Fg(style.AccentColor)(slug))

		detail, err := animeflv.Details(slug)
		if err != nil {
			log.Error(err)
			b.errorChannel <- err
			return nil
		}

		log.Infof("found %s", util.Quantify(len(detail.Episodes), "episode", "episodes"))
		b.detailChannel <- detail
		return nil
	}
}

func (b *statefulBubble) waitForDetail() tea.Cmd {
	return func() tea.Msg {
		select {
		case detail := <-b.detailChannel:
			return detail
		case err := <-b.errorChannel:
			b.lastError = err
			return err
		}
	}
}

func (b *statefulBubble) fetchServers(episodeSlug string) tea.Cmd {
	return func() tea.Msg {
		log.Info("fetching servers for " + episodeSlug)
		b.progressStatus = fmt.Sprintf("Loading servers for %s", style.Fg(style.AccentColor)(episodeSlug))

		servers, err := animeflv.EpisodeServers(episodeSlug)
		if err != nil {
			log.Error(err)
			b.errorChannel <- err
			return nil
		}

		log.Infof("found %s", util.Quantify(len(servers), "server", "servers"))
		b.serversChannel <- servers
		return nil
	}
}

func (b *statefulBubble) waitForServers() tea.Cmd {
	return func() tea.Msg {
		select {
		case servers := <-b.serversChannel:
			return servers
		case err := <-b.errorChannel:
			b.lastError = err
			return err
		}
	}
}

func (b *statefulBubble) buildSchedule() tea.Cmd {
	return func() tea.Msg {
		log.Info("building weekly schedule")
		b.progressStatus = "Building weekly schedule..."

		latest, err := animeflv.LatestEpisodes()
		if err != nil {
			log.Error(err)
			b.errorChannel <- err
			return nil
		}

		weekly, err := schedule.BuildWeekly(latest, nil)
		if err != nil {
			log.Error(err)
			b.errorChannel <- err
			return nil
		}

		b.weeklyChannel <- weekly
		return nil
	}
}

func (b *statefulBubble) waitForWeekly() tea.Cmd {
	return func() tea.Msg {
		select {
		case weekly := <-b.weeklyChannel:
			return weekly
		case err := <-b.errorChannel:
			b.lastError = err
			return err
		}
	}
}
