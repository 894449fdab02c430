package trail

import (
	"math/rand/v2"

	"portfolio/internal/geom"
)

// Rand is the jitter source.
type Rand interface {
	Float64() float64
}

// NewRand returns a deterministic source for seed, or a randomly seeded one
// when seed is zero.
func NewRand(seed uint64) Rand {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Field is the fixed set of trails. Reset replaces every trail wholesale.
type Field struct {
	cfg    Config
	rng    Rand
	trails []Trail
}

func NewField(cfg Config, rng Rand) *Field {
	if rng == nil {
		rng = NewRand(0)
	}
	f := &Field{cfg: cfg, rng: rng}
	f.Reset(geom.Point{})
	return f
}

func (f *Field) Config() Config {
	return f.cfg
}

// Reset discards all node state and rebuilds cfg.Trails trails resting at p,
// drawing fresh jitter for each.
func (f *Field) Reset(p geom.Point) {
	trails := make([]Trail, f.cfg.Trails)
	for i := range trails {
		spring := f.cfg.Spring(i) + jitter(f.rng, f.cfg.SpringJitter)
		friction := f.cfg.Friction + jitter(f.rng, f.cfg.FrictionJitter)
		trails[i] = New(spring, friction, f.cfg.Size, p)
	}
	f.trails = trails
}

func jitter(rng Rand, width float64) float64 {
	return width*rng.Float64() - width/2
}

// Step advances every trail one frame toward anchor, in index order.
func (f *Field) Step(anchor geom.Point) {
	for i := range f.trails {
		f.trails[i].Update(anchor, f.cfg.Dampening, f.cfg.Tension)
	}
}

// Trails exposes the trails in their stable draw order.
func (f *Field) Trails() []Trail {
	return f.trails
}
