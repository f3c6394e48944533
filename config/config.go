// Package config loads runtime settings from GRAPHVIEW_* environment variables.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is the process configuration; cobra flags override parsed values
type Config struct {
	LogLevel  string `env:"GRAPHVIEW_LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"GRAPHVIEW_LOG_FORMAT" envDefault:"text"`
	LogDir    string `env:"GRAPHVIEW_LOG_DIR" envDefault:"logs"`

	TickInterval time.Duration `env:"GRAPHVIEW_TICK_INTERVAL" envDefault:"16ms"`

	JournalPath string `env:"GRAPHVIEW_JOURNAL"`
	ScenePath   string `env:"GRAPHVIEW_SCENE"`

	AudioEnabled bool    `env:"GRAPHVIEW_AUDIO" envDefault:"true"`
	ColorMode    string  `env:"GRAPHVIEW_COLOR_MODE" envDefault:"auto"`
	ViewScale    float64 `env:"GRAPHVIEW_VIEW_SCALE" envDefault:"1"`

	OTelEndpoint string `env:"GRAPHVIEW_OTEL_ENDPOINT"`
}

// Load parses the environment into a Config and validates it
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks value ranges that env tags cannot express
func (c Config) Validate() error {
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("log format must be text or json, got %q", c.LogFormat)
	}
	switch strings.ToLower(c.ColorMode) {
	case "auto", "truecolor", "true", "24bit", "256":
	default:
		return fmt.Errorf("color mode must be auto, truecolor or 256, got %q", c.ColorMode)
	}
	if c.TickInterval <= 0 {
		return fmt.Errorf("tick interval must be positive, got %s", c.TickInterval)
	}
	if c.ViewScale <= 0 {
		return fmt.Errorf("view scale must be positive, got %v", c.ViewScale)
	}
	return nil
}
