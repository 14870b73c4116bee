// Package config provides configuration types and helpers for logmine.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/viper"
)

// Default values for the mining settings.
const (
	DefaultCutoff     = 3
	DefaultNumThreads = 8
)

// ErrInvalidConfig is returned when a setting is out of range.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds the application-wide configuration.
type Config struct {
	Format   string `mapstructure:"format"`
	Verbose  bool   `mapstructure:"verbose"`
	LogLevel string `mapstructure:"log_level"` // overrides verbose when set
	Color    string `mapstructure:"color"`     // auto, always or never

	// Cutoff is the count below which an n-gram is rare.
	Cutoff int `mapstructure:"cutoff"`
	// NumThreads is the number of dictionary builder workers.
	NumThreads int `mapstructure:"num_threads"`
	// SingleMap selects per-worker maps merged at the end instead of one
	// shared concurrent map.
	SingleMap bool `mapstructure:"single_map"`
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		Format:     "text",
		Color:      "auto",
		Cutoff:     DefaultCutoff,
		NumThreads: DefaultNumThreads,
	}
}

// SetDefaults registers the defaults of every key on v.
func SetDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("format", d.Format)
	v.SetDefault("verbose", d.Verbose)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("color", d.Color)
	v.SetDefault("cutoff", d.Cutoff)
	v.SetDefault("num_threads", d.NumThreads)
	v.SetDefault("single_map", d.SingleMap)
}

// Load reads the configuration from v and validates it.
func Load(v *viper.Viper) (Config, error) {
	cfg := Default()
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that every setting is usable.
func (c Config) Validate() error {
	if c.Cutoff < 1 {
		return fmt.Errorf("%w: cutoff must be at least 1, got %d", ErrInvalidConfig, c.Cutoff)
	}
	if c.NumThreads < 1 {
		return fmt.Errorf("%w: num_threads must be at least 1, got %d", ErrInvalidConfig, c.NumThreads)
	}
	switch strings.ToLower(c.Color) {
	case "", "auto", "always", "never":
	default:
		return fmt.Errorf("%w: color must be auto, always, or never, got %q", ErrInvalidConfig, c.Color)
	}
	if c.LogLevel != "" && hclog.LevelFromString(c.LogLevel) == hclog.NoLevel {
		return fmt.Errorf("%w: unknown log_level %q", ErrInvalidConfig, c.LogLevel)
	}
	return nil
}

// Level returns the log level: log_level when set, Debug when verbose,
// Warn otherwise.
func (c Config) Level() hclog.Level {
	if c.LogLevel != "" {
		if l := hclog.LevelFromString(c.LogLevel); l != hclog.NoLevel {
			return l
		}
	}
	if c.Verbose {
		return hclog.Debug
	}
	return hclog.Warn
}
