package main

import "github.com/charmbracelet/bubbles/key"

type Mode int

const (
	ModeBrowse Mode = iota
	ModeDetail
	ModeHelp
)

type ActionType int

const (
	ActionMoveCard ActionType = iota
)

const (
	heroSection     = "hero"
	projectsSection = "projects"
	contactSection  = "contact"
	footerSection   = "footer"

	// minPanelWidth is the narrowest the detail panel gets, in cells.
	minPanelWidth = 36
	wheelRows     = 3
)

// glyphRamp maps trail coverage to a cell glyph, faintest first.
var glyphRamp = []rune{' ', '·', '░', '▒', '▓', '█'}

type keyMap struct {
	Quit     key.Binding
	Help     key.Binding
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Top      key.Binding
	Bottom   key.Binding
	Work     key.Binding
	Next     key.Binding
	Prev     key.Binding
	Activate key.Binding
	Close    key.Binding
	Copy     key.Binding
	Undo     key.Binding
	Redo     key.Binding
	PNG      key.Binding
	Text     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q/ctrl+c", "quit")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "toggle help")),
		Up:       key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "scroll up")),
		Down:     key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "scroll down")),
		PageUp:   key.NewBinding(key.WithKeys("pgup", "b"), key.WithHelp("pgup/b", "page up")),
		PageDown: key.NewBinding(key.WithKeys("pgdown", "f", " "), key.WithHelp("pgdn/f", "page down")),
		Top:      key.NewBinding(key.WithKeys("g", "home"), key.WithHelp("g/home", "jump to top")),
		Bottom:   key.NewBinding(key.WithKeys("G", "end"), key.WithHelp("G/end", "jump to bottom")),
		Work:     key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "view my work")),
		Next:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "focus next card")),
		Prev:     key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "focus previous card")),
		Activate: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open focused card")),
		Close:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close panel")),
		Copy:     key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy project link")),
		Undo:     key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "undo card move")),
		Redo:     key.NewBinding(key.WithKeys("U", "ctrl+r"), key.WithHelp("U", "redo card move")),
		PNG:      key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "save PNG snapshot")),
		Text:     key.NewBinding(key.WithKeys("S"), key.WithHelp("S", "save text snapshot")),
	}
}
