package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/papapumpkin/parallax/internal/engine"
	"github.com/papapumpkin/parallax/internal/theme"
)

// ErrInvalidConfig is wrapped by every validation failure from Load.
var ErrInvalidConfig = errors.New("invalid configuration")

// IntersectionConfig holds the section-visibility sampling settings.
type IntersectionConfig struct {
	RootMargin string    `mapstructure:"root_margin"`
	Thresholds []float64 `mapstructure:"thresholds"`
}

// Config holds all runtime configuration for a parallax session.
// Values are populated from .parallax.yaml, PARALLAX_* env vars, and CLI flags.
type Config struct {
	Manifest         string             `mapstructure:"manifest"`
	Mode             string             `mapstructure:"mode"`
	TransitionMs     int                `mapstructure:"transition_ms"`
	HysteresisBuffer float64            `mapstructure:"hysteresis_buffer"`
	CooldownMs       int                `mapstructure:"cooldown_ms"`
	ThrottleMs       int                `mapstructure:"throttle_ms"`
	QuietMs          int                `mapstructure:"quiet_ms"`
	Intersection     IntersectionConfig `mapstructure:"intersection"`
	TelemetryPath    string             `mapstructure:"telemetry_path"`
	JournalPath      string             `mapstructure:"journal_path"`
	ReduceMotion     bool               `mapstructure:"reduce_motion"`
	Verbose          bool               `mapstructure:"verbose"`
}

// Load reads configuration from viper, applying built-in defaults for any
// values not set by config file, environment, or flags.
func Load() (Config, error) {
	viper.SetDefault("manifest", "parallax.toml")
	viper.SetDefault("mode", "scroll")
	viper.SetDefault("transition_ms", 600)
	viper.SetDefault("hysteresis_buffer", 0.02)
	viper.SetDefault("cooldown_ms", 100)
	viper.SetDefault("throttle_ms", 16)
	viper.SetDefault("quiet_ms", 150)
	viper.SetDefault("intersection.root_margin", "-20% 0px -20% 0px")
	viper.SetDefault("intersection.thresholds", []float64{0, 0.25, 0.5, 0.75, 1})
	viper.SetDefault("telemetry_path", "")
	viper.SetDefault("journal_path", "")
	viper.SetDefault("reduce_motion", false)
	viper.SetDefault("verbose", false)

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects values the engine cannot run with.
func (c Config) Validate() error {
	if _, err := engine.ParseMode(c.Mode); err != nil {
		return fmt.Errorf("config: %w: %v", ErrInvalidConfig, err)
	}
	for key, ms := range map[string]int{
		"transition_ms": c.TransitionMs,
		"cooldown_ms":   c.CooldownMs,
		"throttle_ms":   c.ThrottleMs,
		"quiet_ms":      c.QuietMs,
	} {
		if ms < 0 {
			return fmt.Errorf("config: %w: %s must not be negative (got %d)", ErrInvalidConfig, key, ms)
		}
	}
	if c.HysteresisBuffer < 0 || c.HysteresisBuffer >= 0.5 {
		return fmt.Errorf("config: %w: hysteresis_buffer must be within [0, 0.5) (got %v)", ErrInvalidConfig, c.HysteresisBuffer)
	}
	for _, th := range c.Intersection.Thresholds {
		if th < 0 || th > 1 {
			return fmt.Errorf("config: %w: intersection threshold %v outside [0,1]", ErrInvalidConfig, th)
		}
	}
	return nil
}

// EngineConfig combines the runtime settings with the site's thresholds and
// sections into an engine configuration.
func (c Config) EngineConfig(thresholds []theme.Threshold, sections []theme.Section) engine.Config {
	mode, _ := engine.ParseMode(c.Mode)
	return engine.Config{
		Thresholds:             thresholds,
		Sections:               sections,
		Mode:                   mode,
		TransitionDuration:     ms(c.TransitionMs),
		HysteresisBuffer:       c.HysteresisBuffer,
		Cooldown:               ms(c.CooldownMs),
		Throttle:               ms(c.ThrottleMs),
		QuietPeriod:            ms(c.QuietMs),
		IntersectionRootMargin: c.Intersection.RootMargin,
		IntersectionThresholds: c.Intersection.Thresholds,
	}
}

// FrameInterval is the animation-frame period consumers tick the engine at.
func (c Config) FrameInterval() time.Duration {
	if c.ThrottleMs <= 0 {
		return 16 * time.Millisecond
	}
	return ms(c.ThrottleMs)
}

func ms(n int) time.Duration { return time.Duration(n) * time.Millisecond }
