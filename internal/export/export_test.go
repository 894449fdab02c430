package export

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio/internal/geom"
	"portfolio/internal/trail"
)

func line(y float64) trail.Path {
	return trail.Path{
		Start: geom.Point{X: 10, Y: y},
		Quads: []trail.Quad{{Ctrl: geom.Point{X: 50, Y: y}, To: geom.Point{X: 90, Y: y}}},
	}
}

func TestRender_NothingToExport(t *testing.T) {
	_, err := Render(Scene{Width: 100, Height: 100})
	assert.ErrorIs(t, err, ErrNothingToExport)

	_, err = Render(Scene{Paths: []trail.Path{line(10)}})
	assert.ErrorIs(t, err, ErrNothingToExport)
}

func TestRender_StrokesAddUp(t *testing.T) {
	one, err := Render(Scene{
		Width: 100, Height: 60,
		Paths:     []trail.Path{line(30)},
		Stroke:    trail.StrokeFor(0, 0.3),
		LineWidth: 10,
	})
	require.NoError(t, err)
	three, err := Render(Scene{
		Width: 100, Height: 60,
		Paths:     []trail.Path{line(30), line(30), line(30)},
		Stroke:    trail.StrokeFor(0, 0.3),
		LineWidth: 10,
	})
	require.NoError(t, err)

	r1 := one.RGBAAt(50, 30)
	r3 := three.RGBAAt(50, 30)
	assert.InDelta(t, 77, int(r1.R), 2)
	assert.InDelta(t, 230, int(r3.R), 4)
	assert.Zero(t, r3.G)
	assert.Zero(t, r3.B)

	assert.Zero(t, three.RGBAAt(50, 5).R, "far from the stroke stays background")
}

func TestRender_OffscreenPathIsSkipped(t *testing.T) {
	img, err := Render(Scene{
		Width: 40, Height: 40,
		Paths:     []trail.Path{{Start: geom.Point{X: -500, Y: -500}}},
		Stroke:    trail.StrokeFor(120, 1),
		LineWidth: 10,
	})
	require.NoError(t, err)
	assert.Zero(t, img.RGBAAt(20, 20).G)
}

func TestRender_Cards(t *testing.T) {
	img, err := Render(Scene{
		Width: 400, Height: 300,
		Cards: []Card{{
			Bounds: geom.RectAt(geom.Point{X: 200, Y: 150}, 240, 120),
			Title:  "Medibot",
			Tags:   []string{"Python", "TensorFlow", "React"},
			More:   1,
			Active: true,
		}},
	})
	require.NoError(t, err)
	inside := img.RGBAAt(300, 200)
	assert.Greater(t, int(inside.R), 200)
	assert.Zero(t, img.RGBAAt(5, 5).R)
}

func TestSavePNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snap.png")
	require.NoError(t, SavePNG(path, Scene{
		Width: 64, Height: 32,
		Paths:     []trail.Path{line(16)},
		Stroke:    trail.StrokeFor(285, 0.025),
		LineWidth: 10,
	}))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 64, img.Bounds().Dx())
	assert.Equal(t, 32, img.Bounds().Dy())

	assert.ErrorIs(t, SavePNG(path, Scene{}), ErrNothingToExport)
}

func TestText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, []string{"a", " b"}))
	assert.Equal(t, "a\n b\n", buf.String())
	assert.ErrorIs(t, WriteText(&buf, nil), ErrNothingToExport)

	path := filepath.Join(t.TempDir(), "frame.txt")
	require.NoError(t, SaveText(path, []string{"x"}))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "x\n", string(data))

	assert.Error(t, SaveText(filepath.Join(t.TempDir(), "missing", "f.txt"), []string{"x"}))
}
