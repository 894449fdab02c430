package cards

import (
	"errors"
	"fmt"
	"time"
)

var ErrInvalidConfig = errors.New("invalid card layout config")

// Config tunes the floating card layout. Distances are viewport units.
type Config struct {
	Radius float64 `yaml:"radius"`

	DriftInterval time.Duration `yaml:"drift_interval"`
	DriftStep     float64       `yaml:"drift_step"`
	// Wall-clock milliseconds per radian of the horizontal and vertical wobble.
	DriftPeriodX float64 `yaml:"drift_period_x"`
	DriftPeriodY float64 `yaml:"drift_period_y"`

	ClickSuppression time.Duration `yaml:"click_suppression"`
	EntranceDelay    time.Duration `yaml:"entrance_delay"`
	// A press becomes a drag once the pointer has moved this far from where
	// it went down; anything shorter is a click.
	DragThreshold float64 `yaml:"drag_threshold"`

	Width       float64 `yaml:"width"`
	Height      float64 `yaml:"height"`
	TagLimit    int     `yaml:"tag_limit"`
	DragScale   float64 `yaml:"drag_scale"`
	ActiveScale float64 `yaml:"active_scale"`

	FPS             int     `yaml:"fps"`
	SpringFrequency float64 `yaml:"spring_frequency"`
	SpringDamping   float64 `yaml:"spring_damping"`
}

func DefaultConfig() Config {
	return Config{
		Radius:           220,
		DriftInterval:    200 * time.Millisecond,
		DriftStep:        0.05,
		DriftPeriodX:     4000,
		DriftPeriodY:     3000,
		ClickSuppression: 100 * time.Millisecond,
		EntranceDelay:    500 * time.Millisecond,
		DragThreshold:    10,
		Width:            240,
		Height:           120,
		TagLimit:         3,
		DragScale:        1.05,
		ActiveScale:      1.5,
		FPS:              60,
		SpringFrequency:  6,
		SpringDamping:    0.5,
	}
}

func (c Config) Validate() error {
	switch {
	case c.Radius < 0:
		return fmt.Errorf("%w: radius %g", ErrInvalidConfig, c.Radius)
	case c.DriftInterval <= 0:
		return fmt.Errorf("%w: drift interval %s", ErrInvalidConfig, c.DriftInterval)
	case c.DriftPeriodX == 0 || c.DriftPeriodY == 0:
		return fmt.Errorf("%w: drift period must be non-zero", ErrInvalidConfig)
	case c.ClickSuppression < 0 || c.EntranceDelay < 0:
		return fmt.Errorf("%w: negative delay", ErrInvalidConfig)
	case c.DragThreshold < 0:
		return fmt.Errorf("%w: drag threshold %g", ErrInvalidConfig, c.DragThreshold)
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("%w: card size %gx%g", ErrInvalidConfig, c.Width, c.Height)
	case c.DragScale <= 0 || c.ActiveScale <= 0:
		return fmt.Errorf("%w: scale must be positive", ErrInvalidConfig)
	case c.FPS <= 0:
		return fmt.Errorf("%w: fps %d", ErrInvalidConfig, c.FPS)
	}
	return nil
}
