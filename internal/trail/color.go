package trail

import (
	"fmt"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Stroke is the per-frame stroke colour: full saturation, half lightness.
type Stroke struct {
	Hue   float64
	Alpha float64
}

// StrokeFor rounds the oscillator value the way the frame loop does.
func StrokeFor(hue, alpha float64) Stroke {
	return Stroke{Hue: math.Round(hue), Alpha: alpha}
}

// NormalizedHue is the hue folded into [0, 360).
func (s Stroke) NormalizedHue() float64 {
	h := math.Mod(s.Hue, 360)
	if h < 0 {
		h += 360
	}
	return h
}

// CSS renders the colour in hsla() notation.
func (s Stroke) CSS() string {
	return fmt.Sprintf("hsla(%g,100%%,50%%,%g)", s.Hue, s.Alpha)
}

// RGB is the opaque colour for the hue.
func (s Stroke) RGB() colorful.Color {
	return colorful.Hsl(s.NormalizedHue(), 1, 0.5)
}
