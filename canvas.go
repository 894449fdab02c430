package main

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"portfolio/internal/geom"
	"portfolio/internal/projects"
)

type cellStyle struct {
	fg, bg      string
	bold, faint bool
}

type cell struct {
	ch    rune
	style cellStyle
}

// Canvas is one terminal frame. Sections, trails and cards are painted into
// it back to front and it is flattened into styled lines at the end.
type Canvas struct {
	width, height int
	cells         [][]cell
}

func NewCanvas(width, height int) *Canvas {
	c := &Canvas{width: max(width, 0), height: max(height, 0)}
	c.cells = make([][]cell, c.height)
	for y := range c.cells {
		c.cells[y] = make([]cell, c.width)
		for x := range c.cells[y] {
			c.cells[y][x].ch = ' '
		}
	}
	return c
}

func (c *Canvas) set(x, y int, ch rune, st cellStyle) {
	if y < 0 || y >= c.height || x < 0 || x >= c.width {
		return
	}
	c.cells[y][x] = cell{ch: ch, style: st}
}

// drawText writes s from (x, y) and returns the column after the last rune.
func (c *Canvas) drawText(x, y int, s string, st cellStyle) int {
	for _, r := range s {
		c.set(x, y, r, st)
		x++
	}
	return x
}

func (c *Canvas) drawCentered(y int, s string, st cellStyle) {
	c.drawText((c.width-ansi.StringWidth(s))/2, y, s, st)
}

// drawWrapped word-wraps s to width columns and returns the row after it.
func (c *Canvas) drawWrapped(x, y, width int, s string, st cellStyle) int {
	if width < 1 {
		return y
	}
	for _, line := range strings.Split(ansi.Wordwrap(s, width, ""), "\n") {
		c.drawText(x, y, ansi.Truncate(line, width, ""), st)
		y++
	}
	return y
}

func (c *Canvas) fill(x, y, w, h int, st cellStyle) {
	for row := y; row < y+h; row++ {
		for col := x; col < x+w; col++ {
			c.set(col, row, ' ', st)
		}
	}
}

type boxBorder struct {
	tl, tr, bl, br, h, v rune
}

var (
	roundBorder  = boxBorder{'╭', '╮', '╰', '╯', '─', '│'}
	heavyBorder  = boxBorder{'┏', '┓', '┗', '┛', '━', '┃'}
	doubleBorder = boxBorder{'╔', '╗', '╚', '╝', '═', '║'}
)

func (c *Canvas) drawBoxAt(x, y, w, h int, b boxBorder, st cellStyle) {
	if w < 2 || h < 2 {
		return
	}
	for col := x + 1; col < x+w-1; col++ {
		c.set(col, y, b.h, st)
		c.set(col, y+h-1, b.h, st)
	}
	for row := y + 1; row < y+h-1; row++ {
		c.set(x, row, b.v, st)
		c.set(x+w-1, row, b.v, st)
	}
	c.set(x, y, b.tl, st)
	c.set(x+w-1, y, b.tr, st)
	c.set(x, y+h-1, b.bl, st)
	c.set(x+w-1, y+h-1, b.br, st)
}

// Lines flattens the canvas, merging runs of equally styled cells into one
// lipgloss render each.
func (c *Canvas) Lines() []string {
	lines := make([]string, c.height)
	for y, row := range c.cells {
		var b strings.Builder
		start := 0
		for x := 1; x <= len(row); x++ {
			if x < len(row) && row[x].style == row[start].style {
				continue
			}
			run := make([]rune, 0, x-start)
			for _, cl := range row[start:x] {
				run = append(run, cl.ch)
			}
			b.WriteString(renderRun(string(run), row[start].style))
			start = x
		}
		lines[y] = b.String()
	}
	return lines
}

// PlainLines is the frame without styling, trailing spaces trimmed.
func (c *Canvas) PlainLines() []string {
	lines := make([]string, c.height)
	for y, row := range c.cells {
		runes := make([]rune, len(row))
		for x, cl := range row {
			runes[x] = cl.ch
		}
		lines[y] = strings.TrimRight(string(runes), " ")
	}
	return lines
}

func renderRun(s string, st cellStyle) string {
	if st == (cellStyle{}) {
		return s
	}
	style := lipgloss.NewStyle().Bold(st.bold).Faint(st.faint)
	if st.fg != "" {
		style = style.Foreground(lipgloss.Color(st.fg))
	}
	if st.bg != "" {
		style = style.Background(lipgloss.Color(st.bg))
	}
	return style.Render(s)
}

// palette holds the colours of one theme; notty leaves everything empty.
type palette struct {
	text, muted, accent, card, badge string
}

func paletteFor(theme string) palette {
	switch theme {
	case "light":
		return palette{text: "#111827", muted: "#6B7280", accent: "#2563EB", card: "#F3F4F6", badge: "#E5E7EB"}
	case "notty":
		return palette{}
	default:
		return palette{text: "#E5E7EB", muted: "#9CA3AF", accent: "#60A5FA", card: "#111827", badge: "#1F2937"}
	}
}

// render paints the whole viewport for the current scroll position.
func (m *model) render() *Canvas {
	cols, rows := m.page.Size()
	c := NewCanvas(cols, rows)
	m.drawTrails(c)
	if top, n, ok := m.page.SectionRows(heroSection); ok {
		m.drawHero(c, top, n)
	}
	if top, _, ok := m.page.SectionRows(projectsSection); ok {
		m.drawProjects(c, top)
	}
	if top, _, ok := m.page.SectionRows(contactSection); ok {
		m.drawContact(c, top)
	}
	if top, _, ok := m.page.SectionRows(footerSection); ok {
		m.drawFooter(c, top)
	}
	m.drawFloatingCards(c)
	return c
}

func (m *model) drawTrails(c *Canvas) {
	if !m.surface.Visible() {
		return
	}
	cols, rows := m.surface.Size()
	last := len(glyphRamp) - 1
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			color, coverage := m.surface.At(col, row)
			if coverage <= 0 {
				continue
			}
			level := min(int(math.Ceil(coverage*float64(last))), last)
			st := cellStyle{}
			if m.palette.text != "" {
				st.fg = color.Hex()
			}
			c.set(col, row, glyphRamp[level], st)
		}
	}
}

func (m *model) drawHero(c *Canvas, top, rows int) {
	p := m.cfg.Profile
	pal := m.palette

	c.drawBoxAt(2, top+1, 6, 3, roundBorder, cellStyle{fg: pal.accent})
	c.drawText(4, top+2, ansi.Truncate(p.Initials, 2, ""), cellStyle{fg: pal.accent, bold: true})
	c.drawText(10, top+1, p.Name, cellStyle{fg: pal.text, bold: true})
	c.drawText(10, top+2, p.Tagline, cellStyle{fg: pal.muted})

	width := min(c.width/3, 60)
	y := c.drawWrapped(2, top+5, width, p.About, cellStyle{fg: pal.text})

	x := 2
	for _, tech := range p.Tech {
		label := " " + tech + " "
		if x+len(label) > 2+width {
			y++
			x = 2
		}
		x = c.drawText(x, y+1, label, cellStyle{fg: pal.text, bg: pal.badge}) + 1
	}

	x = 2
	for _, link := range p.Links {
		x = c.drawText(x, y+3, link.Label, cellStyle{fg: pal.accent}) + 3
	}

	c.drawCentered(top+rows-2, "View my work ↓  (w)", cellStyle{fg: pal.accent, bold: true})
}

// gridCell is the cell rectangle of grid card i relative to the projects
// section's first row.
func (m *model) gridCell(i int) (x, y, w, h int) {
	perRow := m.page.GridColumns()
	col, row := i%perRow, i/perRow
	x = gridGap + col*(gridCardWidth+gridGap)
	y = gridHeaderRows + row*(gridCardHeight+1)
	return x, y, gridCardWidth, gridCardHeight
}

func (m *model) drawProjects(c *Canvas, top int) {
	pal := m.palette
	c.drawText(2, top+1, "Projects", cellStyle{fg: pal.text, bold: true})
	c.drawText(2, top+2, "Things I've built recently", cellStyle{fg: pal.muted})

	for i, p := range m.catalog.All() {
		x, y, w, h := m.gridCell(i)
		m.drawProjectBox(c, p, x, top+y, w, h, roundBorder, cellStyle{fg: pal.muted}, false)
	}
}

// drawProjectBox draws a project card: title and year, a wrapped summary,
// its tags and, when active, the detail hint.
func (m *model) drawProjectBox(c *Canvas, p projects.Project, x, y, w, h int, border boxBorder, st cellStyle, active bool) {
	pal := m.palette
	c.fill(x, y, w, h, cellStyle{bg: pal.card})
	c.drawBoxAt(x, y, w, h, border, cellStyle{fg: st.fg, bg: pal.card, faint: st.faint})

	inner := w - 4
	if inner < 1 || h < 3 {
		return
	}
	text := cellStyle{fg: pal.text, bg: pal.card, faint: st.faint}
	muted := cellStyle{fg: pal.muted, bg: pal.card, faint: st.faint}

	title := ansi.Truncate(p.Title, inner, "…")
	c.drawText(x+2, y+1, title, cellStyle{fg: pal.text, bg: pal.card, bold: true, faint: st.faint})
	if p.Year > 0 {
		year := fmt.Sprint(p.Year)
		if ansi.StringWidth(title)+len(year)+1 <= inner {
			c.drawText(x+w-2-len(year), y+1, year, muted)
		}
	}

	tagRow := y + h - 2
	if active && h >= 5 {
		tagRow = y + h - 3
		c.drawText(x+2, y+h-2, "View details →", cellStyle{fg: pal.accent, bg: pal.card, bold: true})
	}
	summary := p.ShortDescription
	if summary == "" {
		summary = p.Description
	}
	lines := strings.Split(ansi.Wordwrap(summary, inner, ""), "\n")
	for i, line := range lines {
		row := y + 2 + i
		if row >= tagRow {
			break
		}
		c.drawText(x+2, row, ansi.Truncate(line, inner, "…"), muted)
	}

	if tagRow <= y+1 {
		return
	}
	tags, more := p.Tags(m.cfg.Cards.TagLimit)
	tx := x + 2
	for _, tag := range tags {
		label := ansi.Truncate(tag, max(inner-(tx-x-2), 0), "…")
		if label == "" {
			break
		}
		tx = c.drawText(tx, tagRow, label, cellStyle{fg: pal.text, bg: pal.badge, faint: st.faint}) + 1
	}
	if more > 0 && tx+3 <= x+w-2 {
		c.drawText(tx, tagRow, fmt.Sprintf("+%d", more), text)
	}
}

func (m *model) drawContact(c *Canvas, top int) {
	pal := m.palette
	c.drawCentered(top+1, "Get in touch", cellStyle{fg: pal.text, bold: true})
	c.drawCentered(top+3, "Have a project in mind or just want to say hello?", cellStyle{fg: pal.muted})
	if m.cfg.Profile.Email != "" {
		c.drawCentered(top+5, m.cfg.Profile.Email, cellStyle{fg: pal.accent, bold: true})
	}
	labels := make([]string, 0, len(m.cfg.Profile.Links))
	for _, link := range m.cfg.Profile.Links {
		labels = append(labels, link.Label)
	}
	c.drawCentered(top+7, strings.Join(labels, "  ·  "), cellStyle{fg: pal.accent})
}

func (m *model) drawFooter(c *Canvas, top int) {
	line := fmt.Sprintf("© %d %s. All rights reserved.", m.clock.Now().Year(), m.cfg.Profile.Name)
	c.drawCentered(top+1, line, cellStyle{fg: m.palette.muted})
}

// cardCells converts card bounds in viewport units to a cell rectangle.
func (m *model) cardCells(r geom.Rect) (x, y, w, h int) {
	cells := m.page.Cells()
	x = int(math.Round(r.Left / cells.Width))
	y = int(math.Round(r.Top / cells.Height))
	w = max(int(math.Round(r.Width()/cells.Width)), 4)
	h = max(int(math.Round(r.Height()/cells.Height)), 3)
	return x, y, w, h
}

func (m *model) drawFloatingCards(c *Canvas) {
	opacity := m.layout.Opacity()
	if !m.layout.Mounted() || opacity < 0.05 {
		return
	}
	pal := m.palette
	for _, i := range m.layout.Stack() {
		card, _ := m.layout.Card(i)
		r, ok := m.layout.Bounds(i)
		if !ok {
			continue
		}
		x, y, w, h := m.cardCells(r)

		border := roundBorder
		st := cellStyle{fg: pal.muted, faint: opacity < 0.6}
		switch {
		case card.Active():
			border, st.fg = doubleBorder, pal.accent
		case card.Dragging() || i == m.focus:
			border, st.fg = heavyBorder, pal.accent
		}
		m.drawProjectBox(c, card.Project, x, y, w, h, border, st, card.Active())
	}
}

// overlayPanel draws the detail panel over the right edge of lines.
func (m *model) overlayPanel(lines []string) []string {
	panel := strings.Split(m.detail.View(), "\n")
	pw := m.detail.width
	left := max(m.width-pw, 0)
	for i := range lines {
		bg := ansi.Truncate(lines[i], left, "")
		if n := ansi.StringWidth(bg); n < left {
			bg += strings.Repeat(" ", left-n)
		}
		fg := ""
		if i < len(panel) {
			fg = panel[i]
		}
		lines[i] = bg + fg
	}
	return lines
}
