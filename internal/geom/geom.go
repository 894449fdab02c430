// Package geom holds the viewport-space primitives shared by the trail
// renderer, the card layout and the host page.
package geom

import "math"

type Point struct {
	X, Y float64
}

func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

func (p Point) Dist(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// Rect is an axis-aligned rectangle; Right and Bottom are exclusive for
// hit testing but inclusive for the pointer bounds check the renderer uses.
type Rect struct {
	Left, Top, Right, Bottom float64
}

func RectAt(center Point, width, height float64) Rect {
	return Rect{
		Left:   center.X - width/2,
		Top:    center.Y - height/2,
		Right:  center.X + width/2,
		Bottom: center.Y + height/2,
	}
}

func (r Rect) Width() float64  { return r.Right - r.Left }
func (r Rect) Height() float64 { return r.Bottom - r.Top }

func (r Rect) Center() Point {
	return Point{X: r.Left + r.Width()/2, Y: r.Top + r.Height()/2}
}

func (r Rect) Contains(p Point) bool {
	return p.X >= r.Left && p.X < r.Right && p.Y >= r.Top && p.Y < r.Bottom
}

// Offset moves the rectangle by d.
func (r Rect) Offset(d Point) Rect {
	return Rect{Left: r.Left + d.X, Top: r.Top + d.Y, Right: r.Right + d.X, Bottom: r.Bottom + d.Y}
}

// Cells converts between viewport units and terminal cells.
type Cells struct {
	Width, Height float64
}

// Center returns the viewport point at the middle of cell (col, row).
func (c Cells) Center(col, row int) Point {
	return Point{
		X: (float64(col) + 0.5) * c.Width,
		Y: (float64(row) + 0.5) * c.Height,
	}
}

// Cell returns the cell containing p.
func (c Cells) Cell(p Point) (col, row int) {
	return int(math.Floor(p.X / c.Width)), int(math.Floor(p.Y / c.Height))
}
