// Package pointer turns host input into a small subscription bus and owns the
// single anchor cell that trail heads chase.
package pointer

import (
	"portfolio/internal/geom"
)

// Kind enumerates the input signals components can subscribe to.
type Kind int

const (
	Move Kind = iota
	Down
	Up
	TouchStart
	TouchMove
	TouchEnd
	Scroll
	Resize
	Focus
	SectionEnter
	SectionOver
	SectionClick
	numKinds
)

var kindNames = [...]string{
	Move:         "move",
	Down:         "down",
	Up:           "up",
	TouchStart:   "touchstart",
	TouchMove:    "touchmove",
	TouchEnd:     "touchend",
	Scroll:       "scroll",
	Resize:       "resize",
	Focus:        "focus",
	SectionEnter: "sectionenter",
	SectionOver:  "sectionover",
	SectionClick: "sectionclick",
}

func (k Kind) String() string {
	if k < 0 || k >= numKinds {
		return "unknown"
	}
	return kindNames[k]
}

// Event is one input sample in viewport coordinates. Touch events carry
// their touch list, which may be empty; Section* events carry the section id.
type Event struct {
	Kind    Kind
	Point   geom.Point
	Touches []geom.Point
	Section string
}

// Position returns the sample location and whether the event has one.
// Touch events use the first touch point.
func (e Event) Position() (geom.Point, bool) {
	switch e.Kind {
	case TouchStart, TouchMove, TouchEnd:
		if len(e.Touches) == 0 {
			return geom.Point{}, false
		}
		return e.Touches[0], true
	case Move, Down, Up, SectionEnter, SectionOver, SectionClick:
		return e.Point, true
	}
	return geom.Point{}, false
}
