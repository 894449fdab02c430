package trail

import "math"

// Oscillator is a phase accumulator: value = offset + amplitude*sin(phase).
type Oscillator struct {
	Phase     float64
	Offset    float64
	Amplitude float64
	Frequency float64
}

func NewOscillator(cfg OscillatorConfig, rng Rand) Oscillator {
	phase := cfg.Phase
	if cfg.RandomPhase && rng != nil {
		phase = rng.Float64() * 2 * math.Pi
	}
	return Oscillator{
		Phase:     phase,
		Offset:    cfg.Offset,
		Amplitude: cfg.Amplitude,
		Frequency: cfg.Frequency,
	}
}

// Update advances the phase by one frame and returns the new value.
func (o *Oscillator) Update() float64 {
	o.Phase += o.Frequency
	return o.Value()
}

func (o *Oscillator) Value() float64 {
	return o.Offset + math.Sin(o.Phase)*o.Amplitude
}

// Period is the number of frames in one full cycle.
func (o *Oscillator) Period() float64 {
	return 2 * math.Pi / o.Frequency
}
