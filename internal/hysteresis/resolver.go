// Package hysteresis resolves a scroll-progress value to a target theme while
// suppressing oscillation around threshold boundaries.
//
// Two guards apply together. A buffer band around the two boundaries of the
// last resolved zone makes it sticky: leaving it requires overshooting either
// boundary by the buffer. Other boundaries are taken as configured. A cooldown window after every flip pins
// the result to the new theme regardless of progress, which covers abrupt
// jumps that land just past the buffered line.
package hysteresis

import (
	"fmt"
	"math"
	"time"

	"github.com/papapumpkin/parallax/internal/theme"
)

const (
	// DefaultBuffer is the overshoot required to leave the active theme.
	DefaultBuffer = 0.02
	// DefaultCooldown is how long a flip pins the resolved theme.
	DefaultCooldown = 100 * time.Millisecond
	// MaxBuffer keeps the band narrower than half the progress range.
	MaxBuffer = 0.5
)

// tolerance absorbs float error in progress±buffer so boundaries stay inclusive.
const tolerance = 1e-9

// History is the resolver's memory between calls. The zero value means no
// theme has been resolved yet and no hysteresis applies.
type History struct {
	LastTheme theme.Theme
	// Zone is the index of the threshold entry last resolved. When it does
	// not name an entry holding LastTheme, the lowest such entry is used.
	Zone          int
	CooldownUntil time.Time
}

// Primed reports whether a theme has been resolved before.
func (h History) Primed() bool { return h.LastTheme != "" }

// CoolingDown reports whether now falls inside the post-flip cooldown.
func (h History) CoolingDown(now time.Time) bool {
	return h.Primed() && now.Before(h.CooldownUntil)
}

// Resolver maps progress to a theme using a fixed ThresholdMap.
type Resolver struct {
	thresholds theme.ThresholdMap
	buffer     float64
	cooldown   time.Duration
}

// NewResolver validates its inputs. An empty ThresholdMap is a configuration
// error; a negative cooldown is treated as zero.
func NewResolver(thresholds theme.ThresholdMap, buffer float64, cooldown time.Duration) (*Resolver, error) {
	if thresholds.Len() == 0 {
		return nil, &theme.ConfigurationError{Field: "thresholds", Err: theme.ErrNoThresholds}
	}
	if math.IsNaN(buffer) || buffer < 0 || buffer >= MaxBuffer {
		return nil, &theme.ConfigurationError{Field: "hysteresis_buffer", Err: fmt.Errorf("%w: %v", ErrBufferRange, buffer)}
	}
	if cooldown < 0 {
		cooldown = 0
	}
	return &Resolver{thresholds: thresholds, buffer: buffer, cooldown: cooldown}, nil
}

// Buffer returns the configured hysteresis buffer.
func (r *Resolver) Buffer() float64 { return r.buffer }

// Cooldown returns the configured cooldown window.
func (r *Resolver) Cooldown() time.Duration { return r.cooldown }

// Resolve returns the target theme for progress given history h. It does not
// modify h. Boundaries are inclusive: progress exactly on an effective
// threshold resolves to that threshold's theme.
func (r *Resolver) Resolve(progress float64, h History, now time.Time) theme.Theme {
	return r.resolve(progress, h, now).Theme
}

// resolution is a resolved theme and the entry it came from.
type resolution struct {
	Theme theme.Theme
	Zone  int
}

func (r *Resolver) resolve(progress float64, h History, now time.Time) resolution {
	progress = clampProgress(progress)
	if h.CoolingDown(now) {
		return resolution{Theme: h.LastTheme, Zone: r.zoneOf(h)}
	}
	lo, hi, slack := -1, -1, 0.0
	if h.Primed() {
		lo, hi = r.run(r.zoneOf(h))
		slack = tolerance
	}

	for i := r.thresholds.Len() - 1; i > 0; i-- {
		if r.effective(i, lo, hi) <= progress+slack {
			return resolution{Theme: r.thresholds.At(i).Theme, Zone: i}
		}
	}
	return resolution{Theme: r.thresholds.Default(), Zone: 0}
}

// zoneOf returns the entry index h was resolved from, or -1 when LastTheme is
// not in the map.
func (r *Resolver) zoneOf(h History) int {
	if h.Zone >= 0 && h.Zone < r.thresholds.Len() && r.thresholds.At(h.Zone).Theme == h.LastTheme {
		return h.Zone
	}
	for i := 0; i < r.thresholds.Len(); i++ {
		if r.thresholds.At(i).Theme == h.LastTheme {
			return i
		}
	}
	return -1
}

// Advance resolves progress and returns the updated history. A flip away
// from h.LastTheme opens a new cooldown window starting at now; the first
// resolution only seeds the history.
func (r *Resolver) Advance(progress float64, h History, now time.Time) (theme.Theme, History) {
	res := r.resolve(progress, h, now)
	switch {
	case !h.Primed():
		return res.Theme, History{LastTheme: res.Theme, Zone: res.Zone}
	case res.Theme != h.LastTheme:
		return res.Theme, History{LastTheme: res.Theme, Zone: res.Zone, CooldownUntil: now.Add(r.cooldown)}
	default:
		h.Zone = res.Zone
		return res.Theme, h
	}
}

// run widens zone to the adjacent entries sharing its theme and returns the
// first and last index of that run. A negative zone yields (-1, -1).
func (r *Resolver) run(zone int) (lo, hi int) {
	if zone < 0 {
		return -1, -1
	}
	t := r.thresholds.At(zone).Theme
	lo, hi = zone, zone
	for lo > 0 && r.thresholds.At(lo-1).Theme == t {
		lo--
	}
	for hi+1 < r.thresholds.Len() && r.thresholds.At(hi+1).Theme == t {
		hi++
	}
	return lo, hi
}

// effective returns the buffered threshold for entry i, the boundary between
// entries i-1 and i. Only the two outer boundaries of the last run [lo, hi]
// move, each away from the run. Every other boundary is taken as configured.
func (r *Resolver) effective(i, lo, hi int) float64 {
	p := r.thresholds.At(i).Progress
	switch {
	case lo < 0:
		return p
	case i == hi+1:
		return p + r.buffer
	case i == lo:
		return p - r.buffer
	default:
		return p
	}
}

func clampProgress(p float64) float64 {
	if math.IsNaN(p) {
		return 0
	}
	return math.Min(math.Max(p, 0), 1)
}
