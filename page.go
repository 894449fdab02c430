package main

import (
	"math"

	"portfolio/internal/geom"
)

const (
	gridCardWidth  = 34
	gridCardHeight = 7
	gridGap        = 2
	gridHeaderRows = 4
	contactRows    = 9
	footerRows     = 3
)

type section struct {
	id     string
	top    float64
	height float64
}

// Page lays the document sections out in viewport units and tracks the
// scroll offset. The hero is always exactly one viewport tall.
type Page struct {
	cells      geom.Cells
	cols, rows int
	scroll     float64
	sections   []section
}

func NewPage(cells geom.Cells) *Page {
	return &Page{cells: cells}
}

// Resize recomputes every section for a viewport of cols x rows cells
// showing projectCount grid cards, and keeps the scroll offset in range.
func (p *Page) Resize(cols, rows, projectCount int) {
	p.cols, p.rows = max(cols, 0), max(rows, 0)
	ch := p.cells.Height

	perRow := p.GridColumns()
	gridRows := (projectCount + perRow - 1) / perRow
	projectsRows := gridHeaderRows + gridRows*(gridCardHeight+1) + 1

	heights := []struct {
		id   string
		rows int
	}{
		{heroSection, max(p.rows, 1)},
		{projectsSection, projectsRows},
		{contactSection, contactRows},
		{footerSection, footerRows},
	}
	p.sections = p.sections[:0]
	top := 0.0
	for _, h := range heights {
		height := float64(h.rows) * ch
		p.sections = append(p.sections, section{id: h.id, top: top, height: height})
		top += height
	}
	p.clampScroll()
}

// GridColumns is how many project cards fit side by side.
func (p *Page) GridColumns() int {
	return max(1, (p.cols-gridGap)/(gridCardWidth+gridGap))
}

func (p *Page) Cells() geom.Cells { return p.cells }

// Size is the viewport in cells.
func (p *Page) Size() (cols, rows int) { return p.cols, p.rows }

func (p *Page) Viewport() (float64, float64) {
	return float64(p.cols) * p.cells.Width, float64(p.rows) * p.cells.Height
}

// Height is the document height in units.
func (p *Page) Height() float64 {
	if len(p.sections) == 0 {
		return 0
	}
	last := p.sections[len(p.sections)-1]
	return last.top + last.height
}

func (p *Page) MaxScroll() float64 {
	_, vh := p.Viewport()
	return math.Max(0, p.Height()-vh)
}

func (p *Page) Scroll() float64 { return p.scroll }

// ScrollRow is the first document row on screen.
func (p *Page) ScrollRow() int {
	return int(p.scroll / p.cells.Height)
}

// ScrollBy moves the viewport by rows cells and reports whether it moved.
func (p *Page) ScrollBy(rows int) bool {
	before := p.scroll
	p.scroll += float64(rows) * p.cells.Height
	p.clampScroll()
	return p.scroll != before
}

// ScrollTo brings the top of section id to the top of the viewport.
func (p *Page) ScrollTo(id string) bool {
	for _, s := range p.sections {
		if s.id == id {
			before := p.scroll
			p.scroll = s.top
			p.clampScroll()
			return p.scroll != before
		}
	}
	return false
}

func (p *Page) clampScroll() {
	p.scroll = math.Min(math.Max(p.scroll, 0), p.MaxScroll())
	p.scroll = math.Floor(p.scroll/p.cells.Height) * p.cells.Height
}

// SectionRect is the section's rectangle relative to the viewport.
func (p *Page) SectionRect(id string) (geom.Rect, bool) {
	w, _ := p.Viewport()
	for _, s := range p.sections {
		if s.id == id {
			top := s.top - p.scroll
			return geom.Rect{Left: 0, Top: top, Right: w, Bottom: top + s.height}, true
		}
	}
	return geom.Rect{}, false
}

// SectionAt names the section under viewport point pt, or "".
func (p *Page) SectionAt(pt geom.Point) string {
	for _, s := range p.sections {
		if r, _ := p.SectionRect(s.id); r.Contains(pt) {
			return s.id
		}
	}
	return ""
}

// SectionRows is a section's first row relative to the viewport and its
// height in rows.
func (p *Page) SectionRows(id string) (top, rows int, ok bool) {
	r, ok := p.SectionRect(id)
	if !ok {
		return 0, 0, false
	}
	return int(math.Floor(r.Top / p.cells.Height)), int(math.Round(r.Height() / p.cells.Height)), true
}
