// Package config loads the showcase configuration from YAML with NOVA_* environment overrides.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/Carmen-Shannon/nova-showcase/internal/pose"
	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// ErrNoConfig is returned by Load when the configuration file does not exist.
var ErrNoConfig = errors.New("config: file not found")

// EnvPrefix prefixes every environment override.
const EnvPrefix = "NOVA_"

// Config is the full application configuration.
type Config struct {
	Window WindowConfig `yaml:"window" envPrefix:"WINDOW_"`
	Render RenderConfig `yaml:"render" envPrefix:"RENDER_"`
	Log    LogConfig    `yaml:"log" envPrefix:"LOG_"`
	Locale LocaleConfig `yaml:"locale" envPrefix:"LOCALE_"`
	Reveal RevealConfig `yaml:"reveal" envPrefix:"REVEAL_"`
	Pose   pose.Params  `yaml:"pose" envPrefix:"POSE_"`
}

// WindowConfig sizes the showcase window.
type WindowConfig struct {
	Title  string `yaml:"title" env:"TITLE"`
	Width  int    `yaml:"width" env:"WIDTH"`
	Height int    `yaml:"height" env:"HEIGHT"`
}

// RenderConfig controls presentation and frame pacing.
type RenderConfig struct {
	VSync      bool    `yaml:"vsync" env:"VSYNC"`
	MSAA       int     `yaml:"msaa" env:"MSAA"`
	FrameLimit float64 `yaml:"frame_limit" env:"FRAME_LIMIT"`
	Profiling  bool    `yaml:"profiling" env:"PROFILING"`
	ScreenSize int     `yaml:"screen_texture_size" env:"SCREEN_TEXTURE_SIZE"`
}

// LogConfig configures the zap logger.
type LogConfig struct {
	Level string `yaml:"level" env:"LEVEL"`
	JSON  bool   `yaml:"json" env:"JSON"`
}

// LocaleConfig selects the starting language. An empty Default negotiates from $LANG.
type LocaleConfig struct {
	Default string `yaml:"default" env:"DEFAULT"`
}

// RevealConfig tunes the reveal-on-scroll observers.
type RevealConfig struct {
	Threshold    float64       `yaml:"threshold" env:"THRESHOLD"`
	BottomMargin float64       `yaml:"bottom_margin" env:"BOTTOM_MARGIN"`
	Duration     time.Duration `yaml:"duration" env:"DURATION"`
}

// Default returns the built-in configuration.
//
// Returns:
//   - Config: the defaults
func Default() Config {
	return Config{
		Window: WindowConfig{
			Title:  "NovaOS",
			Width:  1280,
			Height: 800,
		},
		Render: RenderConfig{
			VSync:      true,
			MSAA:       4,
			ScreenSize: 512,
		},
		Log: LogConfig{
			Level: "info",
		},
		Reveal: RevealConfig{
			Threshold:    0.1,
			BottomMargin: 50,
			Duration:     time.Second,
		},
		Pose: pose.DefaultParams(),
	}
}

// Load reads the YAML file at path over the defaults, then applies environment overrides.
// An empty path skips the file. A missing file yields the defaults with overrides and an error wrapping ErrNoConfig.
//
// Parameters:
//   - path: the configuration file path, or ""
//
// Returns:
//   - Config: the resolved configuration
//   - error: error if the file cannot be read or parsed, or the result is invalid
func Load(path string) (Config, error) {
	cfg := Default()

	var missing error
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			missing = fmt.Errorf("%w: %s", ErrNoConfig, path)
		case err != nil:
			return cfg, fmt.Errorf("read config %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	if err := ParseEnv(&cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, missing
}

// ParseEnv applies NOVA_* environment overrides onto target. Unset variables leave fields untouched.
//
// Parameters:
//   - target: pointer to the struct to populate
//
// Returns:
//   - error: error if a variable fails to parse
func ParseEnv(target any) error {
	if err := env.ParseWithOptions(target, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Validate checks value ranges.
//
// Returns:
//   - error: a description of the first invalid field, or nil
func (c Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("config: window size %dx%d must be positive", c.Window.Width, c.Window.Height)
	}
	if c.Render.MSAA != 1 && c.Render.MSAA != 4 {
		return fmt.Errorf("config: msaa must be 1 or 4, got %d", c.Render.MSAA)
	}
	if c.Render.ScreenSize < 64 || c.Render.ScreenSize > 4096 {
		return fmt.Errorf("config: screen_texture_size %d out of range [64, 4096]", c.Render.ScreenSize)
	}
	if c.Reveal.Threshold <= 0 || c.Reveal.Threshold > 1 {
		return fmt.Errorf("config: reveal threshold %g out of range (0, 1]", c.Reveal.Threshold)
	}
	if c.Reveal.BottomMargin < 0 {
		return fmt.Errorf("config: reveal bottom_margin %g must not be negative", c.Reveal.BottomMargin)
	}
	if err := c.Pose.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// Save writes the configuration as YAML.
//
// Parameters:
//   - path: the destination file
//
// Returns:
//   - error: error if encoding or writing fails
func (c Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config %s: %w", path, err)
	}
	return nil
}
