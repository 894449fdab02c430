package main

import (
	"fmt"
	"math"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"portfolio/internal/config"
	"portfolio/internal/effect"
	"portfolio/internal/export"
	"portfolio/internal/geom"
	"portfolio/internal/projects"
	"portfolio/internal/schedule"
)

// scene captures the live trails and cards for a PNG snapshot.
func (m *model) scene() export.Scene {
	w, h := m.page.Viewport()
	s := export.Scene{
		Width:     int(math.Ceil(w)),
		Height:    int(math.Ceil(h)),
		Stroke:    m.trails.Stroke(),
		LineWidth: m.cfg.Trail.LineWidth,
	}
	if m.trails.State() == effect.Active && m.trails.Field() != nil {
		for _, t := range m.trails.Field().Trails() {
			s.Paths = append(s.Paths, t.Path())
		}
	}
	if m.layout.Visible() {
		for _, i := range m.layout.Stack() {
			card, _ := m.layout.Card(i)
			r, ok := m.layout.Bounds(i)
			if !ok {
				continue
			}
			tags, more := card.Project.Tags(m.cfg.Cards.TagLimit)
			s.Cards = append(s.Cards, export.Card{
				Bounds: r,
				Title:  card.Project.Title,
				Tags:   tags,
				More:   more,
				Active: card.Active(),
			})
		}
	}
	return s
}

func (m *model) exportPNG(filename string) error {
	return export.SavePNG(filename, m.scene())
}

// exportVisualTXT writes the page exactly as drawn, without colour.
func (m *model) exportVisualTXT(filename string) error {
	return export.SaveText(filename, m.render().PlainLines())
}

func (m *model) saveSnapshot(format string) {
	filename := m.cfg.SnapshotPath(fmt.Sprintf("portfolio-%s.%s", m.clock.Now().Format("20060102-150405"), format))
	var err error
	if format == "png" {
		err = m.exportPNG(filename)
	} else {
		err = m.exportVisualTXT(filename)
	}
	if err != nil {
		m.errorMessage = fmt.Sprintf("Failed to export: %v", err)
		m.log.Warn("snapshot failed", zap.String("file", filename), zap.Error(err))
		return
	}
	m.successMessage = "Saved " + filename
	m.log.Info("snapshot saved", zap.String("file", filename))
}

// pointerPath is a Lissajous figure over a w x h viewport, sampled at frame
// of frames.
func pointerPath(frame, frames int, w, h float64) geom.Point {
	t := float64(frame) / float64(max(frames, 1))
	return geom.Point{
		X: w/2 + w*0.35*math.Sin(2*math.Pi*2*t),
		Y: h/2 + h*0.3*math.Sin(2*math.Pi*3*t+math.Pi/4),
	}
}

// runSnapshot drives the page headlessly for frames frames with the pointer
// tracing pointerPath, then writes a snapshot in format (png or txt).
func runSnapshot(cfg *config.Config, catalog *projects.Catalog, log *zap.Logger, filename, format string, frames int) error {
	switch format {
	case "png", "txt":
	default:
		return fmt.Errorf("unknown snapshot format %q", format)
	}
	clock := schedule.NewManualClock(time.Now())
	m := newModel(cfg, catalog, clock, log, nil)
	defer m.shutdown()

	cols := int(float64(cfg.Export.Width) / cfg.Render.CellWidth)
	rows := int(float64(cfg.Export.Height) / cfg.Render.CellHeight)
	m.Update(tea.WindowSizeMsg{Width: cols, Height: rows + 1})

	w, h := m.page.Viewport()
	cells := m.page.Cells()
	interval := cfg.FrameInterval()
	for f := 0; f < frames; f++ {
		p := pointerPath(f, frames, w, h)
		col, row := cells.Cell(p)
		m.Update(tea.MouseMsg{X: col, Y: row, Action: tea.MouseActionMotion, Button: tea.MouseButtonNone})
		m.loop.Advance(clock.Advance(interval))
	}
	log.Debug("snapshot simulated",
		zap.Int("frames", frames),
		zap.Uint64("trail_frames", m.trails.Frames()),
		zap.Stringer("state", m.trails.State()))

	if format == "png" {
		return m.exportPNG(filename)
	}
	return m.exportVisualTXT(filename)
}
