package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"go.uber.org/zap"

	"portfolio/internal/cards"
	"portfolio/internal/config"
	"portfolio/internal/effect"
	"portfolio/internal/geom"
	"portfolio/internal/pointer"
	"portfolio/internal/projects"
	"portfolio/internal/schedule"
	"portfolio/internal/trail"
)

type tickMsg time.Time

type catalogMsg struct {
	catalog *projects.Catalog
}

// model is the page. It owns the scheduler and the input bus and turns
// terminal messages into pointer events for the trail renderer and the
// floating card layout.
type model struct {
	cfg     *config.Config
	log     *zap.Logger
	clock   schedule.Clock
	loop    *schedule.Loop
	bus     *pointer.Bus
	anchor  *pointer.Anchor
	tracker *pointer.Tracker
	page    *Page
	surface *effect.CellSurface
	trails  *effect.Renderer
	layout  *cards.Layout
	catalog *projects.Catalog
	updates <-chan *projects.Catalog
	detail  *detailPanel
	keys    keyMap
	palette palette

	mode          Mode
	prevMode      Mode
	width, height int
	focus         int
	active        int
	inHero        bool
	hover         string
	undoStack     []Action
	redoStack     []Action
	helpScroll    int

	errorMessage   string
	successMessage string
}

// newModel builds and mounts the page. updates, when non-nil, delivers
// reloaded catalogs.
func newModel(cfg *config.Config, catalog *projects.Catalog, clock schedule.Clock, log *zap.Logger, updates <-chan *projects.Catalog) *model {
	if log == nil {
		log = zap.NewNop()
	}
	cells := geom.Cells{Width: cfg.Render.CellWidth, Height: cfg.Render.CellHeight}
	m := &model{
		cfg:     cfg,
		log:     log,
		clock:   clock,
		loop:    schedule.NewLoop(clock),
		bus:     pointer.NewBus(),
		anchor:  &pointer.Anchor{},
		page:    NewPage(cells),
		surface: effect.NewCellSurface(cells),
		catalog: catalog,
		updates: updates,
		detail:  newDetailPanel(cfg.Render.Theme),
		keys:    defaultKeyMap(),
		palette: paletteFor(cfg.Render.Theme),
		focus:   -1,
		active:  -1,
	}
	m.tracker = pointer.Track(m.bus, m.anchor)
	m.trails = effect.New(effect.Options{
		Section:   heroSection,
		Config:    cfg.Trail,
		Scheduler: m.loop,
		Bus:       m.bus,
		Anchor:    m.anchor,
		Locator:   m.page,
		Rand:      trail.NewRand(cfg.Render.Seed),
		Logger:    log,
	})
	m.layout = cards.New(cards.Options{
		Section:   heroSection,
		Config:    cfg.Cards,
		Scheduler: m.loop,
		Bus:       m.bus,
		Locator:   m.page,
		OnClick:   m.openProject,
		OnDragEnd: m.cardMoved,
		Logger:    log,
	})
	m.trails.Mount(m.surface)
	m.layout.Mount(catalog.Featured())
	return m
}

// shutdown unmounts both components and detaches the anchor tracker.
func (m *model) shutdown() {
	m.layout.Unmount()
	m.trails.Unmount()
	m.tracker.Stop()
	m.log.Debug("page closed", zap.Int("pending", m.loop.Pending()), zap.Int("listeners", m.bus.Listeners()))
}

func (m *model) Init() tea.Cmd {
	return tea.Batch(m.tick(), m.waitForCatalog(), tea.SetWindowTitle(m.cfg.Profile.Name))
}

func (m *model) tick() tea.Cmd {
	return tea.Tick(m.cfg.FrameInterval(), func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *model) waitForCatalog() tea.Cmd {
	if m.updates == nil {
		return nil
	}
	updates := m.updates
	return func() tea.Msg {
		c, ok := <-updates
		if !ok {
			return nil
		}
		return catalogMsg{catalog: c}
	}
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tickMsg:
		m.loop.Advance(m.clock.Now())
		return m, m.tick()

	case catalogMsg:
		m.setCatalog(msg.catalog)
		return m, m.waitForCatalog()

	case tea.FocusMsg:
		m.bus.Dispatch(pointer.Event{Kind: pointer.Focus})
		return m, nil

	case tea.MouseMsg:
		return m, m.handleMouse(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *model) resize(width, height int) {
	m.width, m.height = width, height
	rows := max(height-1, 1)
	m.page.Resize(width, rows, m.catalog.Len())
	if err := m.detail.Resize(m.panelWidth(), rows); err != nil {
		m.errorMessage = err.Error()
	}
	m.bus.Dispatch(pointer.Event{Kind: pointer.Resize})
}

func (m *model) panelWidth() int {
	return min(max(minPanelWidth, m.width*2/5), m.width)
}

// setCatalog swaps in a reloaded catalog. Card moves recorded against the
// old records no longer apply.
func (m *model) setCatalog(c *projects.Catalog) {
	if c == nil {
		return
	}
	m.catalog = c
	m.layout.SetProjects(c.Featured())
	m.page.Resize(m.width, max(m.height-1, 1), c.Len())
	m.undoStack, m.redoStack = nil, nil
	if m.focus >= len(m.layout.Cards()) {
		m.focus = -1
	}
	if m.detail.open {
		if p, err := c.BySlug(m.detail.project.Slug); err == nil {
			m.openProject(p)
		} else {
			m.closeDetail()
		}
	}
	m.successMessage = fmt.Sprintf("Reloaded %d projects", c.Len())
	m.log.Info("catalog swapped", zap.Int("projects", c.Len()))
}

// openProject shows the detail panel for p and makes its card, if it has
// one, the only active card.
func (m *model) openProject(p projects.Project) {
	index := -1
	for i, c := range m.layout.Cards() {
		if c.Project.Slug == p.Slug {
			index = i
			break
		}
	}
	m.setActive(index)
	if err := m.detail.Open(p); err != nil {
		m.errorMessage = err.Error()
		return
	}
	if m.mode != ModeHelp {
		m.mode = ModeDetail
	}
}

func (m *model) closeDetail() {
	m.detail.Close()
	m.setActive(-1)
	m.mode = ModeBrowse
}

func (m *model) setActive(i int) {
	if i == m.active {
		return
	}
	if m.active >= 0 {
		m.layout.SetActive(m.active, false)
	}
	m.active = i
	if i >= 0 {
		m.layout.SetActive(i, true)
	}
}

// handleMouse translates one terminal mouse message into bus events.
func (m *model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if m.mode == ModeHelp {
		return nil
	}
	_, dragging := m.layout.Dragging()
	if m.detail.open && !dragging && msg.Action != tea.MouseActionRelease && msg.X >= m.width-m.detail.width {
		return m.detail.Update(msg)
	}
	pt := m.page.Cells().Center(msg.X, msg.Y)

	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		m.scroll(-wheelRows)
	case msg.Button == tea.MouseButtonWheelDown:
		m.scroll(wheelRows)
	case msg.Action == tea.MouseActionMotion:
		m.bus.Dispatch(pointer.Event{Kind: pointer.Move, Point: pt})
		m.trackHover(pt)
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		m.bus.Dispatch(pointer.Event{Kind: pointer.Down, Point: pt})
		switch m.page.SectionAt(pt) {
		case heroSection:
			m.bus.Dispatch(pointer.Event{Kind: pointer.SectionClick, Point: pt, Section: heroSection})
		case projectsSection:
			m.clickGrid(pt)
		}
	case msg.Action == tea.MouseActionRelease:
		m.bus.Dispatch(pointer.Event{Kind: pointer.Up, Point: pt})
	}
	return nil
}

// trackHover emits SectionEnter when the pointer crosses into the hero and
// SectionOver whenever the element under it changes there.
func (m *model) trackHover(pt geom.Point) {
	inHero := m.page.SectionAt(pt) == heroSection
	if !inHero {
		m.inHero, m.hover = false, ""
		return
	}
	if !m.inHero {
		m.bus.Dispatch(pointer.Event{Kind: pointer.SectionEnter, Point: pt, Section: heroSection})
	}
	element := heroSection
	if i, ok := m.layout.HitTest(pt); ok {
		element = fmt.Sprintf("card-%d", i)
	}
	if element != m.hover || !m.inHero {
		m.bus.Dispatch(pointer.Event{Kind: pointer.SectionOver, Point: pt, Section: heroSection})
	}
	m.inHero, m.hover = true, element
}

func (m *model) clickGrid(pt geom.Point) {
	top, _, ok := m.page.SectionRows(projectsSection)
	if !ok {
		return
	}
	col, row := m.page.Cells().Cell(pt)
	for i, p := range m.catalog.All() {
		x, y, w, h := m.gridCell(i)
		if col >= x && col < x+w && row >= top+y && row < top+y+h {
			m.openProject(p)
			return
		}
	}
}

func (m *model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.errorMessage = ""
	m.successMessage = ""

	if m.mode == ModeHelp {
		switch msg.String() {
		case "j", "down":
			if m.helpScroll < m.maxHelpScroll() {
				m.helpScroll++
			}
		case "k", "up":
			if m.helpScroll > 0 {
				m.helpScroll--
			}
		default:
			m.mode = m.prevMode
			m.helpScroll = 0
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.prevMode, m.mode = m.mode, ModeHelp
		return m, nil
	case key.Matches(msg, m.keys.PNG):
		m.saveSnapshot("png")
		return m, nil
	case key.Matches(msg, m.keys.Text):
		m.saveSnapshot("txt")
		return m, nil
	}

	if m.mode == ModeDetail {
		switch {
		case key.Matches(msg, m.keys.Close):
			m.closeDetail()
			return m, nil
		case key.Matches(msg, m.keys.Copy):
			m.copyProjectLink()
			return m, nil
		}
		return m, m.detail.Update(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Next):
		m.cycleFocus(1)
	case key.Matches(msg, m.keys.Prev):
		m.cycleFocus(-1)
	case key.Matches(msg, m.keys.Activate):
		if m.focus >= 0 {
			m.layout.Click(m.focus)
		}
	case key.Matches(msg, m.keys.Close):
		m.focus = -1
	case key.Matches(msg, m.keys.Undo):
		m.undo()
	case key.Matches(msg, m.keys.Redo):
		m.redo()
	default:
		m.handleNavigation(msg)
	}
	return m, nil
}

func (m *model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}
	if m.mode == ModeHelp {
		return m.helpView()
	}
	lines := m.render().Lines()
	if m.detail.open {
		lines = m.overlayPanel(lines)
	}
	return strings.Join(lines, "\n") + "\n" + ansi.Truncate(m.statusLine(), m.width, "…")
}

func (m *model) modeString() string {
	switch m.mode {
	case ModeBrowse:
		return "BROWSE"
	case ModeDetail:
		return "DETAIL"
	case ModeHelp:
		return "HELP"
	default:
		return "UNKNOWN"
	}
}

func (m *model) statusLine() string {
	section := m.page.SectionAt(geom.Point{})
	status := fmt.Sprintf("Mode: %s | %s | Trails: %s | Cards: %d",
		m.modeString(), section, m.trails.State(), len(m.layout.Cards()))
	if m.focus >= 0 {
		if c, ok := m.layout.Card(m.focus); ok {
			status += fmt.Sprintf(" | Focus: %s", c.Project.Title)
		}
	}
	if m.successMessage != "" {
		status += fmt.Sprintf(" | %s", m.successMessage)
	}
	if m.errorMessage != "" {
		status += fmt.Sprintf(" | ERROR: %s", m.errorMessage)
	} else if m.successMessage == "" {
		status += " | ? for help | q to quit"
	}
	return status
}

func (m *model) helpLines() []string {
	lines := []string{
		m.cfg.Profile.Name + " | Portfolio Help",
		"================================",
		"",
		"Mouse:",
		"------",
		"  Move over the top section to draw trails",
		"  Drag a floating card to move it, click it to open its details",
		"  Click a project in the grid to open its details",
		"  Wheel scrolls the page or the details panel",
		"",
		"Keys:",
		"-----",
	}
	bindings := []key.Binding{
		m.keys.Up, m.keys.Down, m.keys.PageUp, m.keys.PageDown, m.keys.Top, m.keys.Bottom,
		m.keys.Work, m.keys.Next, m.keys.Prev, m.keys.Activate, m.keys.Close, m.keys.Copy,
		m.keys.Undo, m.keys.Redo, m.keys.PNG, m.keys.Text, m.keys.Help, m.keys.Quit,
	}
	for _, b := range bindings {
		h := b.Help()
		lines = append(lines, fmt.Sprintf("  %-16s %s", h.Key, h.Desc))
	}
	dir := m.cfg.Export.Directory
	if dir == "" {
		dir = "the working directory"
	}
	return append(lines, "", "Snapshots are written to "+dir)
}

func (m *model) maxHelpScroll() int {
	return max(len(m.helpLines())-max(m.height-1, 1), 0)
}

func (m *model) helpView() string {
	helpLines := m.helpLines()
	visibleHeight := max(m.height-1, 1)

	startLine := min(m.helpScroll, m.maxHelpScroll())
	endLine := min(startLine+visibleHeight, len(helpLines))

	result := strings.Join(helpLines[startLine:endLine], "\n")
	statusLine := fmt.Sprintf("Help (%d-%d of %d lines) | j/k to scroll, Esc to close",
		startLine+1, endLine, len(helpLines))
	return result + "\n" + statusLine
}
