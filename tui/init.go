package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Init starts the terminal user interface, triggering the initial data load.
func (b *statefulBubble) Init() tea.Cmd {
	if b.options != nil && b.options.Query != "" {
		b.session.SetQuery(b.options.Query)
		b.progressStatus = fmt.Sprintf("Searching for %s...", b.options.Query)
		b.setState(loadingState)
		return tea.Batch(textinput.Blink, b.startLoading(), b.refreshResults(), b.waitForOutcome())
	}

	b.progressStatus = "Loading latest episodes..."
	b.setState(loadingState)
	return tea.Batch(textinput.Blink, b.startLoading(), b.loadLatest(), b.waitForLatest())
}
