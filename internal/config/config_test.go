package config

import (
	"errors"
	"os"
	"testing"
	"time"

	"github.com/spf13/viper"

	"github.com/papapumpkin/parallax/internal/engine"
	"github.com/papapumpkin/parallax/internal/theme"
)

// resetViper clears all viper state between tests to avoid cross-contamination.
func resetViper() {
	viper.Reset()
}

func TestLoad_Defaults(t *testing.T) {
	resetViper()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"Manifest", cfg.Manifest, "parallax.toml"},
		{"Mode", cfg.Mode, "scroll"},
		{"TransitionMs", cfg.TransitionMs, 600},
		{"HysteresisBuffer", cfg.HysteresisBuffer, 0.02},
		{"CooldownMs", cfg.CooldownMs, 100},
		{"ThrottleMs", cfg.ThrottleMs, 16},
		{"QuietMs", cfg.QuietMs, 150},
		{"RootMargin", cfg.Intersection.RootMargin, "-20% 0px -20% 0px"},
		{"ThresholdCount", len(cfg.Intersection.Thresholds), 5},
		{"TelemetryPath", cfg.TelemetryPath, ""},
		{"JournalPath", cfg.JournalPath, ""},
		{"ReduceMotion", cfg.ReduceMotion, false},
		{"Verbose", cfg.Verbose, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
			}
		})
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	tests := []struct {
		name   string
		envKey string
		envVal string
		field  func(Config) any
		want   any
	}{
		{
			name:   "manifest",
			envKey: "PARALLAX_MANIFEST",
			envVal: "/srv/site/parallax.toml",
			field:  func(c Config) any { return c.Manifest },
			want:   "/srv/site/parallax.toml",
		},
		{
			name:   "mode",
			envKey: "PARALLAX_MODE",
			envVal: "section",
			field:  func(c Config) any { return c.Mode },
			want:   "section",
		},
		{
			name:   "transition_ms",
			envKey: "PARALLAX_TRANSITION_MS",
			envVal: "250",
			field:  func(c Config) any { return c.TransitionMs },
			want:   250,
		},
		{
			name:   "hysteresis_buffer",
			envKey: "PARALLAX_HYSTERESIS_BUFFER",
			envVal: "0.05",
			field:  func(c Config) any { return c.HysteresisBuffer },
			want:   0.05,
		},
		{
			name:   "reduce_motion",
			envKey: "PARALLAX_REDUCE_MOTION",
			envVal: "true",
			field:  func(c Config) any { return c.ReduceMotion },
			want:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetViper()
			// Set env prefix so PARALLAX_* env vars map to config keys.
			viper.SetEnvPrefix("PARALLAX")
			viper.AutomaticEnv()

			t.Setenv(tt.envKey, tt.envVal)

			cfg, err := Load()
			if err != nil {
				t.Fatalf("Load() returned unexpected error: %v", err)
			}
			got := tt.field(cfg)
			if got != tt.want {
				t.Errorf("%s: got %v (%T), want %v (%T)", tt.name, got, got, tt.want, tt.want)
			}
		})
	}
}

func TestLoad_RejectsInvalid(t *testing.T) {
	tests := []struct {
		key string
		val any
	}{
		{"mode", "blend"},
		{"transition_ms", -1},
		{"hysteresis_buffer", 0.7},
		{"intersection.thresholds", []float64{0, 2}},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			resetViper()
			viper.Set(tt.key, tt.val)
			if _, err := Load(); !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("Load() error = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestEngineConfig(t *testing.T) {
	resetViper()
	viper.Set("mode", "section")
	viper.Set("cooldown_ms", 250)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	thresholds := []theme.Threshold{{Progress: 0, Theme: "a"}}
	ec := cfg.EngineConfig(thresholds, nil)
	if ec.Mode != engine.ModeSection {
		t.Errorf("Mode = %v, want section", ec.Mode)
	}
	if ec.Cooldown != 250*time.Millisecond || ec.TransitionDuration != 600*time.Millisecond {
		t.Errorf("durations = %v / %v", ec.Cooldown, ec.TransitionDuration)
	}
	if _, err := engine.New(ec); err != nil {
		t.Fatalf("engine.New(EngineConfig) = %v", err)
	}
	if cfg.FrameInterval() != 16*time.Millisecond {
		t.Errorf("FrameInterval() = %v", cfg.FrameInterval())
	}
}

func TestMain(m *testing.M) {
	code := m.Run()
	viper.Reset()
	os.Exit(code)
}
