package main

import (
	"fmt"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"portfolio/internal/projects"
)

// detailPanel is the project sidebar: the record's markdown page rendered by
// glamour inside a scrollable viewport.
type detailPanel struct {
	viewport      viewport.Model
	theme         string
	width, height int
	project       projects.Project
	open          bool
	palette       palette
}

func newDetailPanel(theme string) *detailPanel {
	return &detailPanel{
		viewport: viewport.New(0, 0),
		theme:    theme,
		palette:  paletteFor(theme),
	}
}

// Resize fits the panel into width x height cells and re-wraps its content.
func (d *detailPanel) Resize(width, height int) error {
	d.width, d.height = width, height
	d.viewport.Width = max(width-2, 1)
	d.viewport.Height = max(height-2, 1)
	if d.open {
		return d.render()
	}
	return nil
}

func (d *detailPanel) Open(p projects.Project) error {
	d.project = p
	d.open = true
	if err := d.render(); err != nil {
		return err
	}
	d.viewport.GotoTop()
	return nil
}

func (d *detailPanel) Close() {
	d.open = false
	d.project = projects.Project{}
	d.viewport.SetContent("")
}

func (d *detailPanel) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	d.viewport, cmd = d.viewport.Update(msg)
	return cmd
}

func (d *detailPanel) render() error {
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(d.theme),
		glamour.WithWordWrap(max(d.viewport.Width-2, 20)),
	)
	if err != nil {
		return fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	out, err := r.Render(projects.Markdown(d.project))
	if err != nil {
		return fmt.Errorf("failed to render %s: %w", d.project.Slug, err)
	}
	d.viewport.SetContent(out)
	return nil
}

func (d *detailPanel) View() string {
	header := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(d.palette.accent)).
		Render(d.project.Title)
	hint := lipgloss.NewStyle().Foreground(lipgloss.Color(d.palette.muted)).
		Render(fmt.Sprintf("%3.f%% | y copy link | esc close", d.viewport.ScrollPercent()*100))
	return lipgloss.NewStyle().
		Width(max(d.width-1, 1)).
		Height(max(d.height, 1)).
		MaxHeight(max(d.height, 1)).
		PaddingLeft(1).
		BorderStyle(lipgloss.NormalBorder()).
		BorderLeft(true).
		BorderForeground(lipgloss.Color(d.palette.muted)).
		Render(lipgloss.JoinVertical(lipgloss.Left, header, d.viewport.View(), hint))
}
