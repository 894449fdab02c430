package trail

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is wrapped by Validate failures.
var ErrInvalidConfig = errors.New("invalid trail config")

// Config tunes the trail field. Per-trail spring and friction are drawn as
// base + jitter*rand - jitter/2 when a trail is created.
type Config struct {
	Trails         int     `yaml:"trails"`
	Size           int     `yaml:"size"`
	Friction       float64 `yaml:"friction"`
	FrictionJitter float64 `yaml:"friction_jitter"`
	Dampening      float64 `yaml:"dampening"`
	Tension        float64 `yaml:"tension"`
	SpringBase     float64 `yaml:"spring_base"`
	SpringStep     float64 `yaml:"spring_step"`
	SpringJitter   float64 `yaml:"spring_jitter"`
	LineWidth      float64 `yaml:"line_width"`
	Alpha          float64 `yaml:"alpha"`

	Hue OscillatorConfig `yaml:"hue"`
}

// OscillatorConfig seeds the hue oscillator. When RandomPhase is set the
// starting phase is drawn uniformly from [0, 2π) at mount.
type OscillatorConfig struct {
	Phase       float64 `yaml:"phase"`
	RandomPhase bool    `yaml:"random_phase"`
	Offset      float64 `yaml:"offset"`
	Amplitude   float64 `yaml:"amplitude"`
	Frequency   float64 `yaml:"frequency"`
}

func DefaultConfig() Config {
	return Config{
		Trails:         80,
		Size:           50,
		Friction:       0.5,
		FrictionJitter: 0.01,
		Dampening:      0.025,
		Tension:        0.99,
		SpringBase:     0.45,
		SpringStep:     0.025,
		SpringJitter:   0.1,
		LineWidth:      10,
		Alpha:          0.025,
		Hue: OscillatorConfig{
			RandomPhase: true,
			Offset:      285,
			Amplitude:   85,
			Frequency:   0.0015,
		},
	}
}

func (c Config) Validate() error {
	switch {
	case c.Trails < 1:
		return fmt.Errorf("%w: trails must be positive, got %d", ErrInvalidConfig, c.Trails)
	case c.Size < 2:
		return fmt.Errorf("%w: size must be at least 2, got %d", ErrInvalidConfig, c.Size)
	case c.Friction <= 0 || c.Friction >= 1:
		return fmt.Errorf("%w: friction must be in (0,1), got %g", ErrInvalidConfig, c.Friction)
	case c.Tension <= 0 || c.Tension >= 1:
		return fmt.Errorf("%w: tension must be in (0,1), got %g", ErrInvalidConfig, c.Tension)
	case c.Dampening < 0:
		return fmt.Errorf("%w: dampening must not be negative, got %g", ErrInvalidConfig, c.Dampening)
	case c.Hue.Frequency <= 0:
		return fmt.Errorf("%w: hue frequency must be positive, got %g", ErrInvalidConfig, c.Hue.Frequency)
	}
	return nil
}

// Spring is the base spring constant of trail i before jitter.
func (c Config) Spring(i int) float64 {
	return c.SpringBase + float64(i)/float64(c.Trails)*c.SpringStep
}
