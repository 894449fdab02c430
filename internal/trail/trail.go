// Package trail simulates the spring-chain polylines of the background effect.
package trail

import "portfolio/internal/geom"

// Node is one point of a chain.
type Node struct {
	X, Y   float64
	VX, VY float64
}

func (n Node) Pos() geom.Point {
	return geom.Point{X: n.X, Y: n.Y}
}

// Trail is one chain with its own jittered constants.
type Trail struct {
	Spring   float64
	Friction float64
	Nodes    []Node
}

// New builds a trail of size nodes resting at p.
func New(spring, friction float64, size int, p geom.Point) Trail {
	t := Trail{
		Spring:   spring,
		Friction: friction,
		Nodes:    make([]Node, size),
	}
	t.Reset(p)
	return t
}

// Reset puts every node at p with zero velocity.
func (t *Trail) Reset(p geom.Point) {
	for i := range t.Nodes {
		t.Nodes[i] = Node{X: p.X, Y: p.Y}
	}
}

// Update advances the chain one frame. The head is pulled toward anchor, each
// later node toward its predecessor (already moved this frame) plus a share of
// the predecessor's velocity. The spring constant decays by tension per node.
func (t *Trail) Update(anchor geom.Point, dampening, tension float64) {
	k := t.Spring
	for i := range t.Nodes {
		n := &t.Nodes[i]
		if i == 0 {
			n.VX += (anchor.X - n.X) * k
			n.VY += (anchor.Y - n.Y) * k
		} else {
			prev := t.Nodes[i-1]
			n.VX += (prev.X - n.X) * k
			n.VY += (prev.Y - n.Y) * k
			n.VX += prev.VX * dampening
			n.VY += prev.VY * dampening
		}
		n.VX *= t.Friction
		n.VY *= t.Friction
		n.X += n.VX
		n.Y += n.VY
		k *= tension
	}
}
