package engine

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/papapumpkin/parallax/internal/hysteresis"
	"github.com/papapumpkin/parallax/internal/scroll"
	"github.com/papapumpkin/parallax/internal/theme"
	"github.com/papapumpkin/parallax/internal/transition"
	"github.com/papapumpkin/parallax/internal/visibility"
)

// Mode selects which input drives the target theme.
type Mode int

const (
	// ModeScroll resolves the target from scroll progress and the threshold map.
	ModeScroll Mode = iota
	// ModeSection resolves the target from the dominant visible section.
	ModeSection
)

func (m Mode) String() string {
	switch m {
	case ModeScroll:
		return "scroll"
	case ModeSection:
		return "section"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// ParseMode accepts "scroll" or "section" (case-insensitive).
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "scroll":
		return ModeScroll, nil
	case "section":
		return ModeSection, nil
	default:
		return ModeScroll, fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
}

// Config is the construction-time configuration. Zero TransitionDuration,
// Throttle and QuietPeriod select their defaults, as do an empty root margin
// and threshold list. Zero Cooldown or HysteresisBuffer disables that guard.
type Config struct {
	Thresholds []theme.Threshold
	Sections   []theme.Section
	Mode       Mode

	TransitionDuration time.Duration
	HysteresisBuffer   float64
	Cooldown           time.Duration
	Throttle           time.Duration
	QuietPeriod        time.Duration

	IntersectionRootMargin string
	IntersectionThresholds []float64
	// EagerCleanup drops sections from the visibility map once they stop intersecting.
	EagerCleanup bool

	Easing transition.Easing
	Logger *log.Logger
}

// DefaultConfig returns a Config with every default filled in.
func DefaultConfig(thresholds []theme.Threshold) Config {
	return Config{
		Thresholds:             thresholds,
		Mode:                   ModeScroll,
		TransitionDuration:     transition.DefaultDuration,
		HysteresisBuffer:       hysteresis.DefaultBuffer,
		Cooldown:               hysteresis.DefaultCooldown,
		Throttle:               scroll.DefaultThrottle,
		QuietPeriod:            scroll.DefaultQuietPeriod,
		IntersectionRootMargin: visibility.DefaultRootMargin,
		IntersectionThresholds: append([]float64(nil), visibility.DefaultThresholds...),
	}
}

// validateDurations rejects negative timings; zero means "use the default".
func (c Config) validateDurations() error {
	durations := []struct {
		field string
		d     time.Duration
	}{
		{"transition_ms", c.TransitionDuration},
		{"cooldown_ms", c.Cooldown},
		{"throttle_ms", c.Throttle},
		{"quiet_ms", c.QuietPeriod},
	}
	for _, d := range durations {
		if d.d < 0 {
			return &theme.ConfigurationError{Field: d.field, Err: fmt.Errorf("%w: %v", ErrNegativeDuration, d.d)}
		}
	}
	if c.Mode != ModeScroll && c.Mode != ModeSection {
		return &theme.ConfigurationError{Field: "mode", Err: fmt.Errorf("%w: %d", ErrUnknownMode, int(c.Mode))}
	}
	return nil
}
