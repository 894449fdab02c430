package trail

import "portfolio/internal/geom"

// Quad is one quadratic Bézier segment from the previous end point.
type Quad struct {
	Ctrl, To geom.Point
}

// Path is a smoothed polyline: a start point and a run of quadratic segments.
type Path struct {
	Start geom.Point
	Quads []Quad
}

// Path smooths the chain through the midpoints of successive nodes, using
// each interior node as the control point. The last two nodes close the
// curve so it ends exactly on the tail.
func (t Trail) Path() Path {
	n := len(t.Nodes)
	if n == 0 {
		return Path{}
	}
	p := Path{Start: t.Nodes[0].Pos()}
	if n < 2 {
		return p
	}
	p.Quads = make([]Quad, 0, n-2)
	for i := 1; i < n-2; i++ {
		a, b := t.Nodes[i], t.Nodes[i+1]
		p.Quads = append(p.Quads, Quad{
			Ctrl: a.Pos(),
			To:   geom.Point{X: 0.5 * (a.X + b.X), Y: 0.5 * (a.Y + b.Y)},
		})
	}
	p.Quads = append(p.Quads, Quad{Ctrl: t.Nodes[n-2].Pos(), To: t.Nodes[n-1].Pos()})
	return p
}

// Flatten samples the path into a polyline with roughly step units between
// points.
func (p Path) Flatten(step float64) []geom.Point {
	if step <= 0 {
		step = 1
	}
	pts := []geom.Point{p.Start}
	from := p.Start
	for _, q := range p.Quads {
		length := from.Dist(q.Ctrl) + q.Ctrl.Dist(q.To)
		segs := int(length/step) + 1
		for s := 1; s <= segs; s++ {
			t := float64(s) / float64(segs)
			mt := 1 - t
			pts = append(pts, geom.Point{
				X: mt*mt*from.X + 2*mt*t*q.Ctrl.X + t*t*q.To.X,
				Y: mt*mt*from.Y + 2*mt*t*q.Ctrl.Y + t*t*q.To.Y,
			})
		}
		from = q.To
	}
	return pts
}
