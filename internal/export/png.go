// Package export writes snapshots of the page: a PNG of the trail field and
// cards drawn with gg, or the rendered terminal frame as plain text.
package export

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"

	"portfolio/internal/geom"
	"portfolio/internal/trail"
)

var ErrNothingToExport = errors.New("nothing to export")

// Card is a card as it appears in a snapshot, in viewport units.
type Card struct {
	Bounds geom.Rect
	Title  string
	Tags   []string
	More   int
	Active bool
}

// Scene is everything a PNG snapshot draws.
type Scene struct {
	Width, Height int
	Paths         []trail.Path
	Stroke        trail.Stroke
	LineWidth     float64
	Cards         []Card
	Background    color.Color
}

// Render rasterises the scene. Trails are stroked one at a time and summed,
// so overlaps brighten the way the live effect does.
func Render(s Scene) (*image.RGBA, error) {
	if s.Width <= 0 || s.Height <= 0 || (len(s.Paths) == 0 && len(s.Cards) == 0) {
		return nil, ErrNothingToExport
	}

	dc := gg.NewContext(s.Width, s.Height)
	bg := s.Background
	if bg == nil {
		bg = color.Black
	}
	dc.SetColor(bg)
	dc.Clear()

	if len(s.Paths) > 0 {
		acc := accumulate(s)
		out := dc.Image().(*image.RGBA)
		for i := 0; i < len(acc); i += 3 {
			px := i / 3 * 4
			for ch := 0; ch < 3; ch++ {
				v := float64(out.Pix[px+ch])/255 + acc[i+ch]
				out.Pix[px+ch] = uint8(math.Round(math.Min(v, 1) * 255))
			}
		}
	}

	if len(s.Cards) > 0 {
		face, err := labelFace(12)
		if err != nil {
			return nil, err
		}
		dc.SetFontFace(face)
		for _, c := range s.Cards {
			drawCard(dc, c)
		}
	}
	return dc.Image().(*image.RGBA), nil
}

// SavePNG renders the scene into filename.
func SavePNG(filename string, s Scene) error {
	img, err := Render(s)
	if err != nil {
		return err
	}
	if err := gg.SavePNG(filename, img); err != nil {
		return fmt.Errorf("write %s: %w", filename, err)
	}
	return nil
}

// accumulate returns the additive sum of every stroked path as linear RGB
// floats, three per pixel.
func accumulate(s Scene) []float64 {
	acc := make([]float64, s.Width*s.Height*3)
	layer := gg.NewContext(s.Width, s.Height)
	rgb := s.Stroke.RGB()
	pix := layer.Image().(*image.RGBA)
	half := math.Ceil(s.LineWidth/2) + 1

	for _, p := range s.Paths {
		x0, y0, x1, y1, ok := pathBounds(p, half, s.Width, s.Height)
		if !ok {
			continue
		}
		layer.SetRGBA(0, 0, 0, 0)
		layer.Clear()
		layer.SetRGBA(rgb.R, rgb.G, rgb.B, s.Stroke.Alpha)
		layer.SetLineWidth(s.LineWidth)
		layer.SetLineCapRound()
		layer.SetLineJoinRound()
		layer.MoveTo(p.Start.X, p.Start.Y)
		for _, q := range p.Quads {
			layer.QuadraticTo(q.Ctrl.X, q.Ctrl.Y, q.To.X, q.To.Y)
		}
		layer.Stroke()

		for y := y0; y < y1; y++ {
			for x := x0; x < x1; x++ {
				o := pix.PixOffset(x, y)
				if pix.Pix[o+3] == 0 {
					continue
				}
				a := (y*s.Width + x) * 3
				acc[a] += float64(pix.Pix[o]) / 255
				acc[a+1] += float64(pix.Pix[o+1]) / 255
				acc[a+2] += float64(pix.Pix[o+2]) / 255
			}
		}
	}
	return acc
}

func pathBounds(p trail.Path, pad float64, w, h int) (x0, y0, x1, y1 int, ok bool) {
	minX, minY := p.Start.X, p.Start.Y
	maxX, maxY := minX, minY
	for _, q := range p.Quads {
		for _, pt := range []geom.Point{q.Ctrl, q.To} {
			minX, maxX = math.Min(minX, pt.X), math.Max(maxX, pt.X)
			minY, maxY = math.Min(minY, pt.Y), math.Max(maxY, pt.Y)
		}
	}
	x0 = max(int(math.Floor(minX-pad)), 0)
	y0 = max(int(math.Floor(minY-pad)), 0)
	x1 = min(int(math.Ceil(maxX+pad)), w)
	y1 = min(int(math.Ceil(maxY+pad)), h)
	return x0, y0, x1, y1, x0 < x1 && y0 < y1
}

func labelFace(size float64) (font.Face, error) {
	ttfFont, err := truetype.Parse(gomono.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}
	return truetype.NewFace(ttfFont, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	}), nil
}

func drawCard(dc *gg.Context, c Card) {
	r := c.Bounds
	dc.SetRGBA(1, 1, 1, 0.9)
	dc.DrawRoundedRectangle(r.Left, r.Top, r.Width(), r.Height(), 12)
	dc.Fill()
	if c.Active {
		dc.SetRGB(0.15, 0.39, 0.92)
		dc.SetLineWidth(2)
	} else {
		dc.SetRGBA(0, 0, 0, 0.15)
		dc.SetLineWidth(1)
	}
	dc.DrawRoundedRectangle(r.Left, r.Top, r.Width(), r.Height(), 12)
	dc.Stroke()

	pad := 12.0
	dc.SetColor(color.Black)
	dc.DrawStringAnchored(c.Title, r.Left+pad, r.Top+pad, 0, 1)

	x := r.Left + pad
	y := r.Top + r.Height()/2
	tags := append([]string(nil), c.Tags...)
	if c.More > 0 {
		tags = append(tags, fmt.Sprintf("+%d", c.More))
	}
	for _, tag := range tags {
		w, _ := dc.MeasureString(tag)
		dc.SetRGB(0.95, 0.95, 0.95)
		dc.DrawRoundedRectangle(x, y-2, w+12, 18, 9)
		dc.Fill()
		dc.SetRGB(0.2, 0.2, 0.2)
		dc.DrawStringAnchored(tag, x+6, y+7, 0, 0.5)
		x += w + 18
	}
	if c.Active {
		dc.SetRGB(0.15, 0.39, 0.92)
		dc.DrawStringAnchored("View Details →", r.Left+pad, r.Bottom-pad, 0, 0)
	}
}
