package main

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"portfolio/internal/pointer"
)

func (m *model) handleNavigation(msg tea.KeyMsg) {
	_, rows := m.page.Size()
	page := max(rows-1, 1)
	switch {
	case key.Matches(msg, m.keys.Up):
		m.scroll(-1)
	case key.Matches(msg, m.keys.Down):
		m.scroll(1)
	case key.Matches(msg, m.keys.PageUp):
		m.scroll(-page)
	case key.Matches(msg, m.keys.PageDown):
		m.scroll(page)
	case key.Matches(msg, m.keys.Top):
		m.scrollTo(heroSection)
	case key.Matches(msg, m.keys.Bottom):
		m.scroll(int(m.page.MaxScroll()/m.page.Cells().Height) + 1)
	case key.Matches(msg, m.keys.Work):
		m.scrollTo(projectsSection)
	}
}

// scroll moves the page by rows cells and tells listeners the page moved.
func (m *model) scroll(rows int) {
	m.page.ScrollBy(rows)
	m.bus.Dispatch(pointer.Event{Kind: pointer.Scroll})
}

func (m *model) scrollTo(id string) {
	m.page.ScrollTo(id)
	m.bus.Dispatch(pointer.Event{Kind: pointer.Scroll})
}

// cycleFocus moves keyboard focus across the floating cards, wrapping at
// either end.
func (m *model) cycleFocus(dir int) {
	n := len(m.layout.Cards())
	if n == 0 {
		m.focus = -1
		return
	}
	switch {
	case m.focus < 0 && dir > 0:
		m.focus = 0
	case m.focus < 0:
		m.focus = n - 1
	default:
		m.focus = ((m.focus+dir)%n + n) % n
	}
}
