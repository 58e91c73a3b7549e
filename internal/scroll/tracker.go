// Package scroll turns raw scroll and resize samples into a normalized
// scroll-progress value and a debounced "is scrolling" flag.
//
// The tracker keeps two independent deadlines: a throttle window that limits
// how often samples are applied, and a quiet-period deadline that clears
// IsScrolling once samples stop arriving. Both are driven by caller-supplied
// timestamps so the tracker can be tested without real timers.
package scroll

import (
	"math"
	"time"
)

const (
	// DefaultThrottle is one animation frame at 60Hz.
	DefaultThrottle = 16 * time.Millisecond
	// DefaultQuietPeriod is how long without samples before IsScrolling clears.
	DefaultQuietPeriod = 150 * time.Millisecond
)

// epsilon guards the progress division for documents that are barely scrollable.
const epsilon = 1e-9

// Metrics is one raw sample from the scroll source.
type Metrics struct {
	ScrollY        float64
	DocumentHeight float64
	WindowHeight   float64
}

// Available reports whether the sample came from a usable scroll source.
// Zero or non-finite heights mean there is nothing to track.
func (m Metrics) Available() bool {
	for _, v := range []float64{m.ScrollY, m.DocumentHeight, m.WindowHeight} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return m.DocumentHeight > 0 && m.WindowHeight > 0
}

// State is the tracker's published view of the scroll source.
type State struct {
	ScrollY        float64
	ScrollProgress float64
	DocumentHeight float64
	WindowHeight   float64
	IsScrolling    bool
}

// Progress normalizes m into [0,1]. Documents that do not scroll report 0.
func Progress(m Metrics) float64 {
	if !m.Available() {
		return 0
	}
	scrollable := m.DocumentHeight - m.WindowHeight
	if scrollable <= 0 {
		return 0
	}
	p := m.ScrollY / math.Max(scrollable, epsilon)
	return math.Min(math.Max(p, 0), 1)
}

// Tracker samples scroll metrics at most once per throttle interval.
// It is not safe for concurrent use; the owning engine serializes access.
type Tracker struct {
	throttle time.Duration
	quiet    time.Duration

	state State

	lastApplied time.Time // start of the current throttle window
	pending     *Metrics  // trailing sample held back by the throttle
	quietUntil  time.Time // IsScrolling deadline, independent of the throttle
	closed      bool
}

// NewTracker creates a tracker. Non-positive durations select the defaults.
func NewTracker(throttle, quiet time.Duration) *Tracker {
	if throttle <= 0 {
		throttle = DefaultThrottle
	}
	if quiet <= 0 {
		quiet = DefaultQuietPeriod
	}
	return &Tracker{throttle: throttle, quiet: quiet}
}

// State returns the last published state.
func (t *Tracker) State() State { return t.state }

// Observe offers a new sample at time now. It returns true when the sample
// was applied; samples inside the throttle window are held and applied by a
// later Tick.
func (t *Tracker) Observe(m Metrics, now time.Time) bool {
	if t.closed {
		return false
	}
	if !t.lastApplied.IsZero() && now.Sub(t.lastApplied) < t.throttle {
		held := m
		t.pending = &held
		return false
	}
	t.apply(m, now)
	return true
}

// Tick advances the tracker's timers to now. It flushes a held sample whose
// throttle window has elapsed and clears IsScrolling after the quiet period.
// It returns true when the published state changed.
func (t *Tracker) Tick(now time.Time) bool {
	if t.closed {
		return false
	}
	changed := false
	if t.pending != nil && now.Sub(t.lastApplied) >= t.throttle {
		m := *t.pending
		t.apply(m, now)
		changed = true
	}
	if t.state.IsScrolling && !now.Before(t.quietUntil) {
		t.state.IsScrolling = false
		changed = true
	}
	return changed
}

// Close discards any held sample and stops the tracker from applying new ones.
func (t *Tracker) Close() {
	t.closed = true
	t.pending = nil
}

func (t *Tracker) apply(m Metrics, now time.Time) {
	t.pending = nil
	t.lastApplied = now
	if !m.Available() {
		t.state = State{}
		return
	}
	t.state = State{
		ScrollY:        math.Max(m.ScrollY, 0),
		ScrollProgress: Progress(m),
		DocumentHeight: m.DocumentHeight,
		WindowHeight:   m.WindowHeight,
		IsScrolling:    true,
	}
	t.quietUntil = now.Add(t.quiet)
}
