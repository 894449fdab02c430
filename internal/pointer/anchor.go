package pointer

import "portfolio/internal/geom"

// Reader is the read-only view of the anchor handed to the physics layer.
type Reader interface {
	Point() geom.Point
	Known() bool
}

// Anchor is the one shared pointer cell. Only a Tracker writes it.
type Anchor struct {
	p     geom.Point
	known bool
}

// Point is the last sample, or the origin before any input.
func (a *Anchor) Point() geom.Point {
	return a.p
}

// Known reports whether any pointer sample has been recorded.
func (a *Anchor) Known() bool {
	return a.known
}

// Tracker subscribes to pointer and touch input and keeps the anchor current.
// It is subscribed before any consumer so the anchor always reflects the
// sample being dispatched when later handlers run.
type Tracker struct {
	anchor *Anchor
	subs   []Subscription
}

// Track installs a tracker on bus writing into anchor.
func Track(bus *Bus, anchor *Anchor) *Tracker {
	t := &Tracker{anchor: anchor}
	for _, kind := range []Kind{Move, Down, TouchStart, TouchMove, SectionEnter, SectionOver} {
		t.subs = append(t.subs, bus.Subscribe(kind, t.record))
	}
	return t
}

func (t *Tracker) record(ev Event) {
	p, ok := ev.Position()
	if !ok {
		return
	}
	t.anchor.p = p
	t.anchor.known = true
}

// Stop removes every subscription the tracker holds.
func (t *Tracker) Stop() {
	for _, s := range t.subs {
		s.Unsubscribe()
	}
	t.subs = nil
}
