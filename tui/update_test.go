package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	. "github.com/smartystreets/goconvey/convey"
)

func TestLoadingEscape(t *testing.T) {
	Convey("Back key while a fetch is in flight", t, func() {
		esc := tea.KeyMsg(tea.Key{Type: tea.KeyEsc})

		Convey("Quits when there is no view to return to", func() {
			b := newBubble(&Options{})
			b.setState(loadingState)
			_ = b.startLoading()

			_, cmd := b.Update(esc)
			So(cmd, ShouldNotBeNil)
			So(cmd(), ShouldHaveSameTypeAs, tea.Quit())
		})

		Convey("Returns to the previous view otherwise", func() {
			b := newBubble(&Options{})
			b.setState(homeState)
			b.newState(loadingState)
			_ = b.startLoading()

			_, _ = b.Update(esc)
			So(b.state, ShouldEqual, homeState)
			So(b.busy, ShouldBeFalse)
		})
	})
}
