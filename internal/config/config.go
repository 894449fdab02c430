// Package config loads the portfolio settings file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"portfolio/internal/cards"
	"portfolio/internal/trail"
)

var ErrInvalid = errors.New("invalid configuration")

// Config holds every tunable of the page.
type Config struct {
	Trail   trail.Config  `yaml:"trail"`
	Cards   cards.Config  `yaml:"cards"`
	Render  RenderConfig  `yaml:"render"`
	Data    DataConfig    `yaml:"data"`
	Logging LoggingConfig `yaml:"logging"`
	Profile Profile       `yaml:"profile"`
	Export  ExportConfig  `yaml:"export"`
}

// RenderConfig maps the terminal onto viewport units.
type RenderConfig struct {
	FPS        int     `yaml:"fps"`
	CellWidth  float64 `yaml:"cell_width"`
	CellHeight float64 `yaml:"cell_height"`
	Theme      string  `yaml:"theme"` // dark, light, notty
	// Seed fixes the trail jitter; zero picks a random one.
	Seed uint64 `yaml:"seed"`
}

type DataConfig struct {
	// Projects is a YAML project file; empty uses the built-in records.
	Projects string        `yaml:"projects"`
	Watch    bool          `yaml:"watch"`
	Debounce time.Duration `yaml:"debounce"`
}

type LoggingConfig struct {
	File  string `yaml:"file"` // empty disables logging
	Level string `yaml:"level"`
}

type Link struct {
	Label string `yaml:"label"`
	URL   string `yaml:"url"`
}

// Profile is the text of the hero and contact sections.
type Profile struct {
	Name     string   `yaml:"name"`
	Initials string   `yaml:"initials"`
	Tagline  string   `yaml:"tagline"`
	About    string   `yaml:"about"`
	Tech     []string `yaml:"tech"`
	Links    []Link   `yaml:"links"`
	Email    string   `yaml:"email"`
}

type ExportConfig struct {
	Directory string `yaml:"directory"`
	// Frames is how many frames a headless snapshot simulates.
	Frames int `yaml:"frames"`
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

func DefaultConfig() *Config {
	logFile := ""
	if dir, err := os.UserCacheDir(); err == nil {
		logFile = filepath.Join(dir, "portfolio", "portfolio.log")
	}
	return &Config{
		Trail: trail.DefaultConfig(),
		Cards: cards.DefaultConfig(),
		Render: RenderConfig{
			FPS:        60,
			CellWidth:  8,
			CellHeight: 16,
			Theme:      "dark",
		},
		Data: DataConfig{
			Debounce: 250 * time.Millisecond,
		},
		Logging: LoggingConfig{
			File:  logFile,
			Level: "info",
		},
		Profile: Profile{
			Name:     "George Ishaq",
			Initials: "GI",
			Tagline:  "Building delightful web experiences",
			About: "I'm a full-stack engineer specializing in interactive web apps, creative coding, " +
				"and AI tools. I love building delightful, performant user experiences and tackling " +
				"challenging problems.",
			Tech: []string{"React", "Node.js", "TypeScript", "Python", "MongoDB", "TensorFlow"},
			Links: []Link{
				{Label: "GitHub", URL: "https://github.com/yourusername"},
				{Label: "LinkedIn", URL: "https://linkedin.com/in/yourusername"},
				{Label: "Email", URL: "mailto:your-email@example.com"},
			},
			Email: "your-email@example.com",
		},
		Export: ExportConfig{
			Frames: 240,
			Width:  1280,
			Height: 800,
		},
	}
}

// DefaultPath is $XDG_CONFIG_HOME/portfolio/config.yaml or its platform
// equivalent.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "portfolio.yaml"
	}
	return filepath.Join(dir, "portfolio", "config.yaml")
}

// Load reads path over the defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(expandHome(path))
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return nil, fmt.Errorf("failed to read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	cfg.Data.Projects = expandHome(cfg.Data.Projects)
	cfg.Logging.File = expandHome(cfg.Logging.File)
	cfg.Export.Directory = expandHome(cfg.Export.Directory)
	return cfg, nil
}

func (c *Config) Save(path string) error {
	path = expandHome(path)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() error {
	if path := os.Getenv("PORTFOLIO_DATA"); path != "" {
		c.Data.Projects = path
	}
	if path, ok := os.LookupEnv("PORTFOLIO_LOG_FILE"); ok {
		c.Logging.File = path
	}
	if theme := os.Getenv("PORTFOLIO_THEME"); theme != "" {
		c.Render.Theme = theme
	}
	if seed := os.Getenv("PORTFOLIO_SEED"); seed != "" {
		n, err := strconv.ParseUint(seed, 10, 64)
		if err != nil {
			return fmt.Errorf("%w: PORTFOLIO_SEED: %v", ErrInvalid, err)
		}
		c.Render.Seed = n
	}
	return nil
}

func (c *Config) Validate() error {
	if err := c.Trail.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if err := c.Cards.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	switch {
	case c.Render.FPS <= 0:
		return fmt.Errorf("%w: render.fps %d", ErrInvalid, c.Render.FPS)
	case c.Render.CellWidth <= 0 || c.Render.CellHeight <= 0:
		return fmt.Errorf("%w: cell size %gx%g", ErrInvalid, c.Render.CellWidth, c.Render.CellHeight)
	case c.Export.Frames < 0:
		return fmt.Errorf("%w: export.frames %d", ErrInvalid, c.Export.Frames)
	case c.Export.Width <= 0 || c.Export.Height <= 0:
		return fmt.Errorf("%w: export size %dx%d", ErrInvalid, c.Export.Width, c.Export.Height)
	}
	switch c.Render.Theme {
	case "dark", "light", "notty":
	default:
		return fmt.Errorf("%w: render.theme %q", ErrInvalid, c.Render.Theme)
	}
	return nil
}

// FrameInterval is the time between animation frames.
func (c *Config) FrameInterval() time.Duration {
	return time.Second / time.Duration(max(c.Render.FPS, 1))
}

// SnapshotPath places filename in the export directory, creating it.
func (c *Config) SnapshotPath(filename string) string {
	if c.Export.Directory == "" {
		return filename
	}
	_ = os.MkdirAll(c.Export.Directory, 0755)
	return filepath.Join(c.Export.Directory, filename)
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
