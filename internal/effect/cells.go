package effect

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"

	"portfolio/internal/geom"
	"portfolio/internal/trail"
)

type texel struct {
	r, g, b, a float64
	stamp      uint32
}

// CellSurface rasterises strokes onto a terminal cell grid. Each cell keeps a
// premultiplied colour; one stroke touches a cell at most once, so only
// overlapping strokes accumulate.
type CellSurface struct {
	cells      geom.Cells
	cols, rows int
	texels     []texel
	stamp      uint32

	composite Composite
	color     colorful.Color
	alpha     float64
	lineWidth float64
	visible   bool
}

func NewCellSurface(cells geom.Cells) *CellSurface {
	return &CellSurface{cells: cells, lineWidth: 1}
}

func (s *CellSurface) Resize(width, height int) {
	cols := int(math.Ceil(float64(width) / s.cells.Width))
	rows := int(math.Ceil(float64(height) / s.cells.Height))
	if cols < 0 {
		cols = 0
	}
	if rows < 0 {
		rows = 0
	}
	s.cols, s.rows = cols, rows
	s.texels = make([]texel, cols*rows)
}

// Size is the grid size in cells.
func (s *CellSurface) Size() (cols, rows int) {
	return s.cols, s.rows
}

func (s *CellSurface) Clear() {
	for i := range s.texels {
		s.texels[i] = texel{stamp: s.texels[i].stamp}
	}
}

func (s *CellSurface) SetComposite(c Composite) {
	s.composite = c
}

func (s *CellSurface) SetStroke(st trail.Stroke, lineWidth float64) {
	s.color = st.RGB()
	s.alpha = st.Alpha
	s.lineWidth = lineWidth
}

func (s *CellSurface) SetVisible(v bool) {
	s.visible = v
}

func (s *CellSurface) Visible() bool {
	return s.visible
}

func (s *CellSurface) StrokePath(p trail.Path) {
	if len(s.texels) == 0 {
		return
	}
	s.stamp++
	half := s.lineWidth / 2
	for _, pt := range p.Flatten(s.cells.Width / 2) {
		c0, r0 := s.cells.Cell(geom.Point{X: pt.X - half, Y: pt.Y - half})
		c1, r1 := s.cells.Cell(geom.Point{X: pt.X + half, Y: pt.Y + half})
		for row := max(r0, 0); row <= min(r1, s.rows-1); row++ {
			for col := max(c0, 0); col <= min(c1, s.cols-1); col++ {
				s.deposit(&s.texels[row*s.cols+col])
			}
		}
	}
}

func (s *CellSurface) deposit(t *texel) {
	if t.stamp == s.stamp {
		return
	}
	t.stamp = s.stamp
	a := s.alpha
	switch s.composite {
	case Lighter:
		t.r += s.color.R * a
		t.g += s.color.G * a
		t.b += s.color.B * a
		t.a += a
	default:
		t.r = t.r*(1-a) + s.color.R*a
		t.g = t.g*(1-a) + s.color.G*a
		t.b = t.b*(1-a) + s.color.B*a
		t.a = t.a*(1-a) + a
	}
}

// At returns the cell's colour with premultiplication removed, and its
// coverage clamped to [0, 1].
func (s *CellSurface) At(col, row int) (colorful.Color, float64) {
	if col < 0 || row < 0 || col >= s.cols || row >= s.rows {
		return colorful.Color{}, 0
	}
	t := s.texels[row*s.cols+col]
	if t.a <= 0 {
		return colorful.Color{}, 0
	}
	c := colorful.Color{R: t.r / t.a, G: t.g / t.a, B: t.b / t.a}.Clamped()
	return c, math.Min(t.a, 1)
}
