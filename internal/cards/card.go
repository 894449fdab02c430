package cards

import (
	"math"

	"portfolio/internal/geom"
	"portfolio/internal/projects"
	"portfolio/internal/schedule"
)

// CirclePosition places card index of total evenly on a circle around the
// section center.
func CirclePosition(index, total int, radius float64) geom.Point {
	if total < 1 {
		return geom.Point{}
	}
	angle := 2 * math.Pi * float64(index) / float64(total)
	return geom.Point{X: radius * math.Cos(angle), Y: radius * math.Sin(angle)}
}

// Card is one floating project card. Its position is relative to the center
// of the hosting section and only the layout's handlers for this card write it.
type Card struct {
	Project projects.Project

	index, total int
	pos          geom.Point
	rotation     float64

	dragging bool
	dragged  bool
	active   bool
	offset   geom.Point
	from     geom.Point

	drift      schedule.Handle
	unsuppress schedule.Handle

	scale, scaleVel float64
}

func (c *Card) Index() int           { return c.index }
func (c *Card) Position() geom.Point { return c.pos }

// Rotation is always zero; kept so renderers have a single transform source.
func (c *Card) Rotation() float64 { return c.rotation }

func (c *Card) Dragging() bool { return c.dragging }

// Dragged reports a drag that moved the card; a click is ignored while set.
func (c *Card) Dragged() bool { return c.dragged }
func (c *Card) Active() bool  { return c.active }

// Scale is the animated on-screen scale.
func (c *Card) Scale() float64 { return c.scale }

func (c *Card) targetScale(cfg Config) float64 {
	switch {
	case c.active:
		return cfg.ActiveScale
	case c.dragging:
		return cfg.DragScale
	}
	return 1
}

// z orders cards for hit testing and drawing.
func (c *Card) z() int {
	switch {
	case c.dragging:
		return 40
	case c.active:
		return 30
	}
	return 10
}
