// Package config loads gainfx settings from a config file, GAINFX_*
// environment variables and command-line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config represents the gainfx configuration
type Config struct {
	Render  RenderConfig  `mapstructure:"render"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// RenderConfig holds the effect parameters and the host setup for one render.
type RenderConfig struct {
	Scale           float64 `mapstructure:"scale"`
	ComponentScales bool    `mapstructure:"component_scales"`
	ScaleR          float64 `mapstructure:"scale_r"`
	ScaleG          float64 `mapstructure:"scale_g"`
	ScaleB          float64 `mapstructure:"scale_b"`
	ScaleA          float64 `mapstructure:"scale_a"`

	Depth      int     `mapstructure:"depth"`
	Workers    int     `mapstructure:"workers"`
	Time       float64 `mapstructure:"time"`
	TimeOffset float64 `mapstructure:"time_offset"`
	Outside    string  `mapstructure:"outside"`
	Window     string  `mapstructure:"window"`
}

type LoggingConfig struct {
	Level string `mapstructure:"level"`
}

// DefaultConfig returns configuration with default values
func DefaultConfig() *Config {
	return &Config{
		Render: RenderConfig{
			Scale:   1,
			ScaleR:  1,
			ScaleG:  1,
			ScaleB:  1,
			ScaleA:  1,
			Depth:   8,
			Outside: "preserve",
		},
		Logging: LoggingConfig{
			Level: "warn",
		},
	}
}

// flagKeys maps command-line flag names to config keys.
var flagKeys = map[string]string{
	"scale":            "render.scale",
	"component-scales": "render.component_scales",
	"scale-r":          "render.scale_r",
	"scale-g":          "render.scale_g",
	"scale-b":          "render.scale_b",
	"scale-a":          "render.scale_a",
	"depth":            "render.depth",
	"workers":          "render.workers",
	"time":             "render.time",
	"time-offset":      "render.time_offset",
	"outside":          "render.outside",
	"window":           "render.window",
	"log-level":        "logging.level",
}

// Load loads configuration from file, environment, and defaults. Flags in
// fs that the user set override everything else; fs may be nil.
func Load(cfgFile string, fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	cfg := DefaultConfig()
	setDefaults(v, cfg)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".gainfx"))
		}
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName("gainfx")
	}

	v.SetEnvPrefix("GAINFX")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if fs != nil {
		for name, key := range flagKeys {
			if f := fs.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("binding flag %q: %w", name, err)
				}
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if !slices.Contains([]int{8, 16, 32}, c.Render.Depth) {
		return fmt.Errorf("render.depth must be 8, 16 or 32, got %d", c.Render.Depth)
	}
	if c.Render.Workers < 0 {
		return errors.New("render.workers must not be negative")
	}

	validOutside := []string{"preserve", "clear"}
	if !slices.Contains(validOutside, c.Render.Outside) {
		return fmt.Errorf("render.outside must be one of: %v", validOutside)
	}

	validLevels := []string{"debug", "info", "warn", "error"}
	if !slices.Contains(validLevels, c.Logging.Level) {
		return fmt.Errorf("logging.level must be one of: %v", validLevels)
	}

	return nil
}

func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("render.scale", cfg.Render.Scale)
	v.SetDefault("render.component_scales", cfg.Render.ComponentScales)
	v.SetDefault("render.scale_r", cfg.Render.ScaleR)
	v.SetDefault("render.scale_g", cfg.Render.ScaleG)
	v.SetDefault("render.scale_b", cfg.Render.ScaleB)
	v.SetDefault("render.scale_a", cfg.Render.ScaleA)
	v.SetDefault("render.depth", cfg.Render.Depth)
	v.SetDefault("render.workers", cfg.Render.Workers)
	v.SetDefault("render.time", cfg.Render.Time)
	v.SetDefault("render.time_offset", cfg.Render.TimeOffset)
	v.SetDefault("render.outside", cfg.Render.Outside)
	v.SetDefault("render.window", cfg.Render.Window)

	v.SetDefault("logging.level", cfg.Logging.Level)
}
