package effect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio/internal/geom"
	"portfolio/internal/trail"
)

func horizontalPath() trail.Path {
	return trail.Path{
		Start: geom.Point{X: 4, Y: 8},
		Quads: []trail.Quad{{Ctrl: geom.Point{X: 40, Y: 8}, To: geom.Point{X: 76, Y: 8}}},
	}
}

func TestCellSurface_StrokeCoversRowOncePerStroke(t *testing.T) {
	s := NewCellSurface(geom.Cells{Width: 8, Height: 16})
	s.Resize(80, 32)
	cols, rows := s.Size()
	require.Equal(t, 10, cols)
	require.Equal(t, 2, rows)

	s.SetComposite(Lighter)
	s.SetStroke(trail.StrokeFor(0, 0.25), 10)
	s.StrokePath(horizontalPath())

	for col := 0; col < cols; col++ {
		c, cov := s.At(col, 0)
		assert.InDelta(t, 0.25, cov, 1e-9, "col %d", col)
		assert.InDelta(t, 1, c.R, 1e-9)
		_, cov = s.At(col, 1)
		assert.Zero(t, cov)
	}
}

func TestCellSurface_LighterAccumulates(t *testing.T) {
	s := NewCellSurface(geom.Cells{Width: 8, Height: 16})
	s.Resize(80, 32)
	s.SetComposite(Lighter)
	s.SetStroke(trail.StrokeFor(0, 0.25), 10)
	s.StrokePath(horizontalPath())
	s.StrokePath(horizontalPath())

	_, cov := s.At(3, 0)
	assert.InDelta(t, 0.5, cov, 1e-9)

	s.SetComposite(SourceOver)
	s.SetStroke(trail.StrokeFor(120, 0.5), 10)
	s.StrokePath(horizontalPath())
	c, cov := s.At(3, 0)
	assert.InDelta(t, 0.75, cov, 1e-9)
	assert.InDelta(t, 1.0/3, c.R, 1e-9)
	assert.InDelta(t, 2.0/3, c.G, 1e-9)

	for i := 0; i < 10; i++ {
		s.SetComposite(Lighter)
		s.StrokePath(horizontalPath())
	}
	_, cov = s.At(3, 0)
	assert.Equal(t, 1.0, cov)

	s.Clear()
	_, cov = s.At(3, 0)
	assert.Zero(t, cov)
}

func TestCellSurface_Bounds(t *testing.T) {
	s := NewCellSurface(geom.Cells{Width: 8, Height: 16})
	assert.NotPanics(t, func() { s.StrokePath(horizontalPath()) })

	s.Resize(16, 16)
	s.SetStroke(trail.StrokeFor(200, 1), 10)
	assert.NotPanics(t, func() { s.StrokePath(horizontalPath()) })

	_, cov := s.At(-1, 0)
	assert.Zero(t, cov)
	_, cov = s.At(2, 0)
	assert.Zero(t, cov)
	_, cov = s.At(1, 0)
	assert.Equal(t, 1.0, cov)
}
