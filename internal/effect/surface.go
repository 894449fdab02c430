// Package effect is the trail renderer: it owns the drawing surface of the
// background effect, gates it on a page section and runs the frame loop.
package effect

import (
	"portfolio/internal/geom"
	"portfolio/internal/trail"
)

// Composite selects how strokes combine with what is already drawn.
type Composite int

const (
	SourceOver Composite = iota
	// Lighter adds overlapping strokes so dense regions brighten.
	Lighter
)

// Surface is a drawing target sized in viewport units.
type Surface interface {
	Resize(width, height int)
	Clear()
	SetComposite(Composite)
	SetStroke(s trail.Stroke, lineWidth float64)
	StrokePath(p trail.Path)
	SetVisible(bool)
	Visible() bool
}

// SectionLocator reports where a page section currently sits on screen.
type SectionLocator interface {
	// SectionRect is the section's bounding rectangle in viewport
	// coordinates; ok is false when no such section exists.
	SectionRect(id string) (r geom.Rect, ok bool)
	Viewport() (width, height float64)
}
