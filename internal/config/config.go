// Package config loads viewer and command line settings.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. POINTLAYER_LOGLEVEL or
// POINTLAYER_VIEW_WIDTH.
const EnvPrefix = "POINTLAYER"

// ViewConfig sizes the map view.
type ViewConfig struct {
	Width      int     `json:"width" mapstructure:"width"`
	Height     int     `json:"height" mapstructure:"height"`
	PixelRatio float64 `json:"pixelRatio" mapstructure:"pixelRatio"`
	Ratio      float64 `json:"ratio" mapstructure:"ratio"`
}

// HighlightConfig controls selection on tap.
type HighlightConfig struct {
	Enabled bool `json:"enabled" mapstructure:"enabled"`
}

// WatchConfig controls project file polling.
type WatchConfig struct {
	Interval time.Duration `json:"interval" mapstructure:"interval"`
}

// Config is the full settings tree.
type Config struct {
	LogLevel  string          `json:"logLevel" mapstructure:"logLevel"`
	Console   bool            `json:"console" mapstructure:"console"`
	Project   string          `json:"project" mapstructure:"project"`
	View      ViewConfig      `json:"view" mapstructure:"view"`
	Highlight HighlightConfig `json:"highlight" mapstructure:"highlight"`
	Watch     WatchConfig     `json:"watch" mapstructure:"watch"`
}

// ErrInvalid is wrapped by Validate failures.
var ErrInvalid = errors.New("invalid config")

func setDefaults(v *viper.Viper) {
	v.SetDefault("logLevel", "info")
	v.SetDefault("console", true)
	v.SetDefault("project", "")

	v.SetDefault("view.width", 800)
	v.SetDefault("view.height", 600)
	v.SetDefault("view.pixelRatio", 1.0)
	v.SetDefault("view.ratio", 1.5)

	v.SetDefault("highlight.enabled", true)

	v.SetDefault("watch.interval", 2*time.Second)
}

// Load reads path (JSON or YAML, by extension) over the defaults. An empty
// path loads defaults and environment overrides only.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects sizes and intervals the viewer cannot use.
func (c *Config) Validate() error {
	switch {
	case c.View.Width <= 0 || c.View.Height <= 0:
		return fmt.Errorf("%w: view size %dx%d", ErrInvalid, c.View.Width, c.View.Height)
	case c.View.PixelRatio <= 0:
		return fmt.Errorf("%w: pixel ratio %g", ErrInvalid, c.View.PixelRatio)
	case c.View.Ratio < 1:
		return fmt.Errorf("%w: ratio %g below 1", ErrInvalid, c.View.Ratio)
	case c.Watch.Interval < 0:
		return fmt.Errorf("%w: watch interval %s", ErrInvalid, c.Watch.Interval)
	}
	return nil
}
