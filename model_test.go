package main

import (
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"portfolio/internal/config"
	"portfolio/internal/effect"
	"portfolio/internal/geom"
	"portfolio/internal/projects"
	"portfolio/internal/schedule"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type pageHarness struct {
	m     *model
	clock *schedule.ManualClock
	logs  *observer.ObservedLogs
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Logging.File = ""
	cfg.Render.Theme = "notty"
	cfg.Render.Seed = 7
	cfg.Export.Directory = t.TempDir()
	return cfg
}

// newPageHarness opens a 160x51 terminal: a 1280x800 viewport above the
// status line, so the hero center is (640, 400).
func newPageHarness(t *testing.T) *pageHarness {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	clock := schedule.NewManualClock(time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC))
	m := newModel(testConfig(t), projects.Default(), clock, zap.New(core), nil)
	m.Update(tea.WindowSizeMsg{Width: 160, Height: 51})
	t.Cleanup(m.shutdown)
	return &pageHarness{m: m, clock: clock, logs: logs}
}

func (h *pageHarness) advance(d time.Duration) {
	h.m.loop.Advance(h.clock.Advance(d))
}

// cellAt is the terminal cell containing viewport point p.
func (h *pageHarness) cellAt(p geom.Point) (int, int) {
	return h.m.page.Cells().Cell(p)
}

func (h *pageHarness) mouse(x, y int, action tea.MouseAction, button tea.MouseButton) {
	h.m.Update(tea.MouseMsg{X: x, Y: y, Action: action, Button: button})
}

func (h *pageHarness) key(msg tea.KeyMsg) {
	h.m.Update(msg)
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func (h *pageHarness) cardCell(t *testing.T, i int) (int, int) {
	t.Helper()
	r, ok := h.m.layout.Bounds(i)
	require.True(t, ok)
	return h.cellAt(r.Center())
}

func TestModel_TrailsWaitForThePointer(t *testing.T) {
	h := newPageHarness(t)
	h.m.Update(tea.FocusMsg{})
	h.advance(time.Second)
	assert.Equal(t, effect.Inactive, h.m.trails.State())
	assert.Zero(t, h.m.trails.Frames())
}

func TestModel_MotionInHeroDrawsTrails(t *testing.T) {
	h := newPageHarness(t)
	h.mouse(80, 25, tea.MouseActionMotion, tea.MouseButtonNone)

	assert.Equal(t, effect.Active, h.m.trails.State())
	assert.Equal(t, geom.Point{X: 644, Y: 408}, h.m.trails.Anchor())
	assert.True(t, h.m.inHero)

	h.advance(16 * time.Millisecond)
	assert.Equal(t, uint64(1), h.m.trails.Frames())
	_, coverage := h.m.surface.At(80, 25)
	assert.Greater(t, coverage, 0.0)

	lines := h.m.render().PlainLines()
	assert.Contains(t, []rune(lines[25]), glyphRamp[len(glyphRamp)-1],
		"every trail passes through the anchor cell")
}

func TestModel_ScrollingHeroAwayStopsTrails(t *testing.T) {
	h := newPageHarness(t)
	h.mouse(80, 45, tea.MouseActionMotion, tea.MouseButtonNone)
	require.Equal(t, effect.Active, h.m.trails.State())

	h.key(runes("G"))
	assert.Greater(t, h.m.page.ScrollRow(), 5)
	assert.Equal(t, effect.Inactive, h.m.trails.State())
	assert.False(t, h.m.trails.Running())

	h.key(runes("g"))
	h.mouse(80, 45, tea.MouseActionMotion, tea.MouseButtonNone)
	assert.Equal(t, effect.Active, h.m.trails.State())
	assert.Equal(t, 2, h.m.trails.Resets())
}

func TestModel_WheelScrolls(t *testing.T) {
	h := newPageHarness(t)
	h.mouse(10, 10, tea.MouseActionPress, tea.MouseButtonWheelDown)
	assert.Equal(t, wheelRows, h.m.page.ScrollRow())
	h.mouse(10, 10, tea.MouseActionPress, tea.MouseButtonWheelUp)
	assert.Zero(t, h.m.page.ScrollRow())
}

func TestModel_CardClickOpensDetail(t *testing.T) {
	h := newPageHarness(t)
	h.advance(500 * time.Millisecond)
	require.True(t, h.m.layout.Visible())

	x, y := h.cardCell(t, 0)
	h.mouse(x, y, tea.MouseActionPress, tea.MouseButtonLeft)
	h.mouse(x, y, tea.MouseActionRelease, tea.MouseButtonLeft)

	assert.Equal(t, ModeDetail, h.m.mode)
	assert.True(t, h.m.detail.open)
	assert.Equal(t, "hit-ps", h.m.detail.project.Slug)
	card, _ := h.m.layout.Card(0)
	assert.True(t, card.Active())
	assert.Equal(t, 0, h.m.active)

	view := ansi.Strip(h.m.View())
	assert.Contains(t, view, "Mode: DETAIL")
	assert.Contains(t, view, "esc close")

	h.key(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, ModeBrowse, h.m.mode)
	assert.False(t, h.m.detail.open)
	assert.False(t, card.Active())
	assert.Equal(t, -1, h.m.active)
}

func TestModel_OnlyOneCardIsActive(t *testing.T) {
	h := newPageHarness(t)
	h.m.openProject(h.m.layout.Cards()[1].Project)
	h.m.openProject(h.m.layout.Cards()[2].Project)

	var active []int
	for i, c := range h.m.layout.Cards() {
		if c.Active() {
			active = append(active, i)
		}
	}
	assert.Equal(t, []int{2}, active)

	// A project without a floating card opens with no card active.
	p, err := h.m.catalog.BySlug("chatty")
	require.NoError(t, err)
	h.m.openProject(p)
	assert.Equal(t, -1, h.m.active)
	assert.Equal(t, ModeDetail, h.m.mode)
}

func TestModel_DragMovesCardAndCanBeUndone(t *testing.T) {
	h := newPageHarness(t)
	from := h.m.layout.Cards()[0].Position()

	x, y := h.cardCell(t, 0)
	h.mouse(x, y, tea.MouseActionPress, tea.MouseButtonLeft)
	h.mouse(x+10, y, tea.MouseActionMotion, tea.MouseButtonLeft)
	idx, dragging := h.m.layout.Dragging()
	assert.True(t, dragging)
	assert.Zero(t, idx)
	h.mouse(x+10, y, tea.MouseActionRelease, tea.MouseButtonLeft)

	card := h.m.layout.Cards()[0]
	moved := card.Position()
	assert.InDelta(t, from.X+80, moved.X, 1e-9)
	assert.InDelta(t, from.Y, moved.Y, 1e-9)
	assert.Equal(t, ModeBrowse, h.m.mode, "a drag is not a click")
	require.Len(t, h.m.undoStack, 1)

	h.key(runes("u"))
	assert.Equal(t, from, card.Position())
	assert.Empty(t, h.m.undoStack)

	h.key(runes("U"))
	assert.Equal(t, moved, card.Position())
	assert.Len(t, h.m.undoStack, 1)
}

func TestModel_KeyboardFocusAndActivate(t *testing.T) {
	h := newPageHarness(t)
	n := len(h.m.layout.Cards())
	require.Equal(t, 4, n)

	h.key(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, 0, h.m.focus)
	h.key(tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, n-1, h.m.focus)
	h.key(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, 0, h.m.focus)

	h.key(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, ModeDetail, h.m.mode)
	assert.Equal(t, h.m.layout.Cards()[0].Project.Slug, h.m.detail.project.Slug)
	assert.Contains(t, ansi.Strip(h.m.statusLine()), "Focus: ")
}

func TestModel_GridClickOpensProject(t *testing.T) {
	h := newPageHarness(t)
	h.key(runes("w"))
	top, _, ok := h.m.page.SectionRows(projectsSection)
	require.True(t, ok)

	x, y, _, _ := h.m.gridCell(5)
	h.mouse(x+2, top+y+2, tea.MouseActionPress, tea.MouseButtonLeft)
	assert.Equal(t, ModeDetail, h.m.mode)
	assert.Equal(t, h.m.catalog.All()[5].Slug, h.m.detail.project.Slug)
}

func TestModel_ViewShowsThePage(t *testing.T) {
	h := newPageHarness(t)
	view := ansi.Strip(h.m.View())
	lines := strings.Split(view, "\n")
	assert.Len(t, lines, 51)
	assert.Contains(t, view, "George Ishaq")
	assert.Contains(t, view, "View my work")
	assert.True(t, strings.HasPrefix(lines[50], "Mode: BROWSE | hero | Trails: inactive | Cards: 4"))

	h.key(runes("w"))
	view = ansi.Strip(h.m.View())
	assert.Contains(t, view, "Projects")
	assert.Contains(t, view, h.m.catalog.All()[0].Title)
	assert.Contains(t, view, "Get in touch")
	assert.Contains(t, view, "© 2024 George Ishaq")
}

func TestModel_HelpView(t *testing.T) {
	h := newPageHarness(t)
	h.key(runes("?"))
	assert.Equal(t, ModeHelp, h.m.mode)
	view := h.m.View()
	assert.Contains(t, view, "Help (1-")
	assert.Contains(t, view, "undo card move")

	h.key(runes("x"))
	assert.Equal(t, ModeBrowse, h.m.mode)
}

func TestModel_CopyLink(t *testing.T) {
	h := newPageHarness(t)
	orig := writeClipboard
	t.Cleanup(func() { writeClipboard = orig })
	var copied string
	writeClipboard = func(s string) error { copied = s; return nil }

	p, err := h.m.catalog.BySlug("medibot")
	require.NoError(t, err)
	h.m.openProject(p)
	h.key(runes("y"))
	assert.Equal(t, p.PrimaryLink(), copied)
	assert.Equal(t, "Copied "+copied, h.m.successMessage)

	writeClipboard = func(string) error { return errors.New("no clipboard") }
	h.key(runes("y"))
	assert.Contains(t, h.m.errorMessage, "no clipboard")
}

func TestModel_CatalogReload(t *testing.T) {
	h := newPageHarness(t)
	h.m.undoStack = append(h.m.undoStack, Action{Type: ActionMoveCard})

	all := projects.Default().All()
	for i := range all {
		all[i].Featured = i < 2
	}
	next, err := projects.New(all)
	require.NoError(t, err)

	h.m.Update(catalogMsg{catalog: next})
	assert.Len(t, h.m.layout.Cards(), 2)
	assert.Empty(t, h.m.undoStack)
	assert.Equal(t, "Reloaded 6 projects", h.m.successMessage)
	assert.Equal(t, 1, h.logs.FilterMessage("catalog swapped").Len())
}

func TestModel_ShutdownReleasesEverything(t *testing.T) {
	h := newPageHarness(t)
	h.mouse(80, 25, tea.MouseActionMotion, tea.MouseButtonNone)
	x, y := h.cardCell(t, 1)
	h.mouse(x, y, tea.MouseActionPress, tea.MouseButtonLeft)

	h.m.shutdown()
	assert.Zero(t, h.m.loop.Pending())
	assert.Zero(t, h.m.bus.Listeners())
	assert.False(t, h.m.layout.Mounted())
	assert.False(t, h.m.trails.Mounted())
}

func TestModel_SaveSnapshots(t *testing.T) {
	h := newPageHarness(t)
	h.mouse(80, 25, tea.MouseActionMotion, tea.MouseButtonNone)
	h.advance(16 * time.Millisecond)

	h.key(runes("s"))
	require.Empty(t, h.m.errorMessage)
	h.key(runes("S"))
	require.Empty(t, h.m.errorMessage)

	entries, err := os.ReadDir(h.m.cfg.Export.Directory)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.ElementsMatch(t, []string{"portfolio-20240501-120000.png", "portfolio-20240501-120000.txt"}, names)
}

func TestRunSnapshot(t *testing.T) {
	cfg := testConfig(t)
	cfg.Export.Width, cfg.Export.Height = 320, 160
	dir := t.TempDir()

	pngPath := filepath.Join(dir, "snap.png")
	require.NoError(t, runSnapshot(cfg, projects.Default(), zap.NewNop(), pngPath, "png", 30))
	f, err := os.Open(pngPath)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 320, img.Bounds().Dx())
	assert.Equal(t, 160, img.Bounds().Dy())

	txtPath := filepath.Join(dir, "snap.txt")
	require.NoError(t, runSnapshot(cfg, projects.Default(), zap.NewNop(), txtPath, "txt", 30))
	data, err := os.ReadFile(txtPath)
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSuffix(string(data), "\n"), "\n"), 10)

	assert.Error(t, runSnapshot(cfg, projects.Default(), zap.NewNop(), txtPath, "gif", 1))
}

func TestPointerPathStaysInViewport(t *testing.T) {
	for f := 0; f < 100; f++ {
		p := pointerPath(f, 100, 1280, 800)
		assert.True(t, geom.Rect{Right: 1280, Bottom: 800}.Contains(p), "frame %d: %v", f, p)
	}
}
