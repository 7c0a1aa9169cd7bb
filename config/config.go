// Package config loads the monitor's settings from YAML, layered over
// embedded defaults.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all monitor configuration.
type Config struct {
	Screen   ScreenConfig   `yaml:"screen"`
	Field    FieldConfig    `yaml:"field"`
	Colors   ColorsConfig   `yaml:"colors"`
	Backdrop BackdropConfig `yaml:"backdrop"`
	Predict  PredictConfig  `yaml:"predict"`
	Headless HeadlessConfig `yaml:"headless"`
}

// ScreenConfig holds window settings.
type ScreenConfig struct {
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	Title     string `yaml:"title"`
	TPS       int    `yaml:"tps"`
	Resizable bool   `yaml:"resizable"`
}

// FieldConfig holds particle field parameters.
type FieldConfig struct {
	Count        int     `yaml:"count"`
	LinkDistance float64 `yaml:"link_distance"` // Pixels; pairs closer than this are linked
	LinkWidth    float64 `yaml:"link_width"`
	MaxSpeed     float64 `yaml:"max_speed"` // Pixels per tick on each axis
	MinRadius    float64 `yaml:"min_radius"`
	MaxRadius    float64 `yaml:"max_radius"`
}

// ColorsConfig holds the backdrop palette.
type ColorsConfig struct {
	Background Color `yaml:"background"`
	Particle   Color `yaml:"particle"`
	Link       Color `yaml:"link"` // Alpha is ignored; edges fade by distance
}

// BackdropConfig holds the noise haze painted under the particles.
type BackdropConfig struct {
	Enabled bool    `yaml:"enabled"`
	Cell    int     `yaml:"cell"`  // Haze cell size in pixels
	Scale   float64 `yaml:"scale"` // Noise frequency per pixel
	Speed   float64 `yaml:"speed"` // Noise drift per frame
	Alpha   float64 `yaml:"alpha"` // Peak haze opacity
	Color   Color   `yaml:"color"`
}

// PredictConfig holds the scoring endpoint and result reveal timing.
type PredictConfig struct {
	Endpoint       string        `yaml:"endpoint"`
	Timeout        time.Duration `yaml:"timeout"`
	RevealDelay    time.Duration `yaml:"reveal_delay"`
	RevealDuration time.Duration `yaml:"reveal_duration"`
}

// HeadlessConfig holds settings for runs without a window.
type HeadlessConfig struct {
	LogEvery int `yaml:"log_every"` // Frames between summary log lines
}

// Load reads configuration from a YAML file, merged over the embedded
// defaults. An empty path yields the defaults alone.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Fields missing from the file keep their default values
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that every value is usable.
func (c *Config) Validate() error {
	var errs []error
	if c.Screen.Width <= 0 || c.Screen.Height <= 0 {
		errs = append(errs, fmt.Errorf("screen: size %dx%d must be positive", c.Screen.Width, c.Screen.Height))
	}
	if c.Screen.TPS <= 0 {
		errs = append(errs, fmt.Errorf("screen: tps %d must be positive", c.Screen.TPS))
	}
	if c.Field.Count <= 0 {
		errs = append(errs, fmt.Errorf("field: count %d must be positive", c.Field.Count))
	}
	if c.Field.LinkDistance <= 0 {
		errs = append(errs, fmt.Errorf("field: link_distance %g must be positive", c.Field.LinkDistance))
	}
	if c.Field.MaxSpeed < 0 {
		errs = append(errs, fmt.Errorf("field: max_speed %g must not be negative", c.Field.MaxSpeed))
	}
	if c.Field.MinRadius <= 0 || c.Field.MaxRadius < c.Field.MinRadius {
		errs = append(errs, fmt.Errorf("field: radius range [%g, %g) is invalid", c.Field.MinRadius, c.Field.MaxRadius))
	}
	if c.Backdrop.Enabled && c.Backdrop.Cell <= 0 {
		errs = append(errs, fmt.Errorf("backdrop: cell %d must be positive", c.Backdrop.Cell))
	}
	if c.Predict.Timeout < 0 || c.Predict.RevealDelay < 0 || c.Predict.RevealDuration < 0 {
		errs = append(errs, errors.New("predict: durations must not be negative"))
	}
	if c.Headless.LogEvery < 0 {
		errs = append(errs, fmt.Errorf("headless: log_every %d must not be negative", c.Headless.LogEvery))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// WriteYAML saves the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}
