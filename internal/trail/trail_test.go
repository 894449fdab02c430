package trail

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio/internal/geom"
)

// fixedRand returns the same value forever.
type fixedRand float64

func (r fixedRand) Float64() float64 { return float64(r) }

func maxDist(f *Field, p geom.Point) float64 {
	d := 0.0
	for _, tr := range f.Trails() {
		for _, n := range tr.Nodes {
			d = math.Max(d, n.Pos().Dist(p))
		}
	}
	return d
}

func TestField_ConvergesOnStationaryAnchor(t *testing.T) {
	for _, seed := range []uint64{1, 7, 42} {
		f := NewField(DefaultConfig(), NewRand(seed))
		anchor := geom.Point{X: 300, Y: 400}

		prev := maxDist(f, anchor)
		for checkpoint := 0; checkpoint < 6; checkpoint++ {
			for i := 0; i < 500; i++ {
				f.Step(anchor)
			}
			d := maxDist(f, anchor)
			assert.LessOrEqual(t, d, prev, "seed %d checkpoint %d", seed, checkpoint)
			prev = d
		}
		assert.Less(t, prev, 1e-6, "seed %d", seed)
	}
}

func TestField_ConvergesAcrossStableParameterRange(t *testing.T) {
	for _, friction := range []float64{0.4, 0.5, 0.6} {
		for _, tension := range []float64{0.98, 0.99} {
			cfg := DefaultConfig()
			cfg.Trails = 4
			cfg.Friction = friction
			cfg.Tension = tension
			f := NewField(cfg, fixedRand(0.5))
			anchor := geom.Point{X: -50, Y: 120}
			for i := 0; i < 4000; i++ {
				f.Step(anchor)
			}
			assert.Less(t, maxDist(f, anchor), 1e-6, "friction %g tension %g", friction, tension)
		}
	}
}

func TestField_ResetRebuildsEveryNodeAtAnchor(t *testing.T) {
	f := NewField(DefaultConfig(), NewRand(3))
	for i := 0; i < 30; i++ {
		f.Step(geom.Point{X: float64(i * 20), Y: float64(i * 7)})
	}

	anchor := geom.Point{X: 640, Y: 12}
	f.Reset(anchor)

	require.Len(t, f.Trails(), 80)
	for _, tr := range f.Trails() {
		require.Len(t, tr.Nodes, 50)
		for _, n := range tr.Nodes {
			assert.Equal(t, Node{X: anchor.X, Y: anchor.Y}, n)
		}
	}
}

func TestField_JitterStaysWithinBounds(t *testing.T) {
	cfg := DefaultConfig()
	f := NewField(cfg, NewRand(11))
	for i, tr := range f.Trails() {
		base := cfg.Spring(i)
		assert.InDelta(t, base, tr.Spring, cfg.SpringJitter/2+1e-12)
		assert.InDelta(t, cfg.Friction, tr.Friction, cfg.FrictionJitter/2+1e-12)
	}
	assert.InDelta(t, 0.45, cfg.Spring(0), 1e-12)
	assert.InDelta(t, 0.45+79.0/80*0.025, cfg.Spring(79), 1e-12)
}

func TestTrail_UpdateSingleFrame(t *testing.T) {
	tr := New(0.5, 0.5, 3, geom.Point{})
	tr.Update(geom.Point{X: 10, Y: -4}, 0.1, 0.5)

	// head: v = (10*0.5)*0.5 = 2.5
	// node1: k=0.25, v = ((2.5-0)*0.25 + 2.5*0.1)*0.5 = 0.4375
	// node2: k=0.125, v = ((0.4375)*0.125 + 0.4375*0.1)*0.5
	want := []Node{
		{X: 2.5, Y: -1, VX: 2.5, VY: -1},
		{X: 0.4375, Y: -0.175, VX: 0.4375, VY: -0.175},
		{X: 0.04921875, Y: -0.0196875, VX: 0.04921875, VY: -0.0196875},
	}
	if diff := cmp.Diff(want, tr.Nodes, cmp.Comparer(func(a, b float64) bool {
		return math.Abs(a-b) < 1e-12
	})); diff != "" {
		t.Errorf("nodes mismatch (-want +got):\n%s", diff)
	}
}

func TestTrail_PathShape(t *testing.T) {
	tr := Trail{Nodes: []Node{{X: 0}, {X: 10}, {X: 20}, {X: 30}, {X: 40}}}
	p := tr.Path()

	assert.Equal(t, geom.Point{X: 0}, p.Start)
	want := []Quad{
		{Ctrl: geom.Point{X: 10}, To: geom.Point{X: 15}},
		{Ctrl: geom.Point{X: 20}, To: geom.Point{X: 25}},
		{Ctrl: geom.Point{X: 30}, To: geom.Point{X: 40}},
	}
	assert.Equal(t, want, p.Quads)

	pts := p.Flatten(2)
	assert.Equal(t, geom.Point{}, pts[0])
	assert.Equal(t, geom.Point{X: 40}, pts[len(pts)-1])
	for i := 1; i < len(pts); i++ {
		assert.GreaterOrEqual(t, pts[i].X, pts[i-1].X)
	}
}

func TestTrail_PathDegenerate(t *testing.T) {
	assert.Empty(t, Trail{}.Path().Quads)
	one := Trail{Nodes: []Node{{X: 3, Y: 4}}}
	assert.Equal(t, Path{Start: geom.Point{X: 3, Y: 4}}, one.Path())
	two := Trail{Nodes: []Node{{X: 0}, {X: 8}}}
	assert.Equal(t, []Quad{{Ctrl: geom.Point{}, To: geom.Point{X: 8}}}, two.Path().Quads)
}

func TestOscillator_BoundedAndPeriodic(t *testing.T) {
	cfg := DefaultConfig().Hue
	cfg.RandomPhase = false
	cfg.Phase = 0.3
	o := NewOscillator(cfg, nil)

	lo, hi := cfg.Offset-cfg.Amplitude, cfg.Offset+cfg.Amplitude
	period := o.Period()
	require.InDelta(t, 2*math.Pi/0.0015, period, 1e-9)

	first := o.Value()
	frames := int(math.Round(period))
	for i := 0; i < frames; i++ {
		v := o.Update()
		assert.GreaterOrEqual(t, v, lo)
		assert.LessOrEqual(t, v, hi)
	}
	// one full cycle later the value repeats, up to the rounding of period
	assert.InDelta(t, first, o.Value(), cfg.Amplitude*cfg.Frequency)
}

func TestOscillator_RandomPhase(t *testing.T) {
	o := NewOscillator(DefaultConfig().Hue, fixedRand(0.25))
	assert.InDelta(t, math.Pi/2, o.Phase, 1e-12)
	assert.InDelta(t, 285+85, o.Value(), 1e-9)
}

func TestStroke(t *testing.T) {
	s := StrokeFor(369.6, 0.025)
	assert.Equal(t, 370.0, s.Hue)
	assert.Equal(t, 10.0, s.NormalizedHue())
	assert.Equal(t, "hsla(370,100%,50%,0.025)", s.CSS())

	red := StrokeFor(360, 1).RGB()
	assert.InDelta(t, 1, red.R, 1e-9)
	assert.InDelta(t, 0, red.G, 1e-9)
	assert.InDelta(t, 0, red.B, 1e-9)
}

func TestConfig_Validate(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())

	cases := map[string]func(*Config){
		"trails":    func(c *Config) { c.Trails = 0 },
		"size":      func(c *Config) { c.Size = 1 },
		"friction":  func(c *Config) { c.Friction = 1 },
		"tension":   func(c *Config) { c.Tension = 0 },
		"dampening": func(c *Config) { c.Dampening = -1 },
		"frequency": func(c *Config) { c.Hue.Frequency = 0 },
	}
	for name, mutate := range cases {
		cfg := DefaultConfig()
		mutate(&cfg)
		assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig, name)
	}
}
