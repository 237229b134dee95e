package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"gitlab.com/tozd/go/errors"

	"github.com/dshills/quickdoc/internal/hover"
	"github.com/dshills/quickdoc/internal/renderer/highlight"
)

// EnvDelay overrides the hover delay in milliseconds.
const EnvDelay = "KEYSTORM_QUICKDOC_DELAY_MS"

// Config holds every quickdoc setting.
type Config struct {
	Hover HoverConfig `toml:"hover"`
	Log   LogConfig   `toml:"log"`
	UI    UIConfig    `toml:"ui"`
}

// HoverConfig controls automatic documentation.
type HoverConfig struct {
	Enabled bool `toml:"enabled"`
	// DelayMS is the rest time in milliseconds; zero means the default.
	DelayMS int `toml:"delay_ms"`
}

// LogConfig controls the log file.
type LogConfig struct {
	Level string `toml:"level"`
	// File is where logs go; empty disables logging.
	File string `toml:"file"`
}

// UIConfig controls the screen layout.
type UIConfig struct {
	Gutter bool   `toml:"gutter"`
	Theme  string `toml:"theme"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Hover: HoverConfig{Enabled: true},
		Log:   LogConfig{Level: "info"},
		UI:    UIConfig{Gutter: true, Theme: "default"},
	}
}

// Validate reports settings outside their domain.
func (c Config) Validate() error {
	if c.Hover.DelayMS < 0 {
		return errors.WithDetails(ErrInvalidValue, "setting", "hover.delay_ms", "value", c.Hover.DelayMS)
	}
	switch strings.ToLower(c.Log.Level) {
	case "", "debug", "info", "warn", "error":
	default:
		return errors.WithDetails(ErrInvalidValue, "setting", "log.level", "value", c.Log.Level)
	}
	if _, ok := highlight.ByName(c.UI.Theme); c.UI.Theme != "" && !ok {
		return errors.WithDetails(ErrInvalidValue, "setting", "ui.theme", "value", c.UI.Theme)
	}
	return nil
}

// LookupFunc reads an environment variable.
type LookupFunc func(key string) (string, bool)

// HoverDelay resolves the debounce delay. A valid environment override
// wins, then a positive delay_ms, then hover.DefaultDelay.
func (c Config) HoverDelay(lookup LookupFunc) time.Duration {
	if lookup != nil {
		if raw, ok := lookup(EnvDelay); ok {
			if d, ok := hover.ParseDelay(raw); ok {
				return d
			}
		}
	}
	if c.Hover.DelayMS > 0 {
		return time.Duration(c.Hover.DelayMS) * time.Millisecond
	}
	return hover.DefaultDelay
}

// DefaultPath returns the per-user config file location.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "quickdoc", "config.toml")
}
