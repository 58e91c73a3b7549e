// Package transition animates the change from one committed theme to the next
// over a fixed duration and exposes eased progress as a pure function of time.
//
// The animator never abandons an in-flight animation. A new target requested
// while animating is queued; when the current animation completes its
// endpoint is committed and, if the queued target differs, the next animation
// starts at the completion instant. Under continuous re-targeting every
// animation therefore still finishes within one duration.
package transition

import (
	"time"

	"github.com/papapumpkin/parallax/internal/theme"
)

// DefaultDuration is the length of one theme transition.
const DefaultDuration = 600 * time.Millisecond

// State is a read-only view of the animator.
type State struct {
	// Current is the committed theme; it changes only when an animation completes.
	Current theme.Theme
	// Target is the most recently requested theme.
	Target theme.Theme
	// From and To are the endpoints of the in-flight animation. Both equal
	// Current while idle.
	From theme.Theme
	To   theme.Theme

	Animating bool
	// Commits counts the animations committed since the animator was created.
	Commits uint64
	// Progress is the eased progress of the in-flight animation. While idle it
	// is 0 before the first transition and 1 after any completed one.
	Progress float64
	Started  time.Time
}

// Commit is one completed animation.
type Commit struct {
	From, To theme.Theme
	At       time.Time
}

// Animator is a two-state machine: Idle(current) and Animating(from, to, start).
// It is not safe for concurrent use; the owning engine serializes access.
type Animator struct {
	duration time.Duration
	ease     Easing

	current   theme.Theme
	target    theme.Theme
	animating bool
	from, to  theme.Theme
	start     time.Time
	settled   float64
	commits   uint64
	closed    bool
}

// NewAnimator creates an idle animator showing initial. A non-positive
// duration selects DefaultDuration; a nil easing selects EaseInOutQuad.
func NewAnimator(initial theme.Theme, duration time.Duration, ease Easing) *Animator {
	if duration <= 0 {
		duration = DefaultDuration
	}
	if ease == nil {
		ease = EaseInOutQuad
	}
	return &Animator{
		duration: duration,
		ease:     ease,
		current:  initial,
		target:   initial,
	}
}

// Duration returns the configured animation length.
func (a *Animator) Duration() time.Duration { return a.duration }

// Retarget requests a transition toward t. From Idle it starts an animation
// at now and returns true. While animating it only records t as the next
// target.
func (a *Animator) Retarget(t theme.Theme, now time.Time) bool {
	if a.closed {
		return false
	}
	a.target = t
	if a.animating || t == a.current {
		return false
	}
	a.begin(t, now)
	return true
}

// Progress returns the eased progress at now without changing state.
func (a *Animator) Progress(now time.Time) float64 {
	if !a.animating {
		return a.settled
	}
	return a.ease(a.linear(now))
}

// Step advances the animator to now, committing every animation whose
// duration has elapsed, and returns the resulting state with the commits made
// in order. A long gap between calls may commit several animations at once.
func (a *Animator) Step(now time.Time) (State, []Commit) {
	if a.closed {
		return a.State(now), nil
	}
	var commits []Commit
	for a.animating {
		end := a.start.Add(a.duration)
		if now.Before(end) {
			break
		}
		commits = append(commits, Commit{From: a.from, To: a.to, At: end})
		a.current = a.to
		a.animating = false
		a.settled = 1
		a.commits++
		if a.target != a.current {
			a.begin(a.target, end)
		}
	}
	return a.State(now), commits
}

// State returns the animator's state as observed at now.
func (a *Animator) State(now time.Time) State {
	s := State{
		Current:   a.current,
		Target:    a.target,
		From:      a.current,
		To:        a.current,
		Animating: a.animating,
		Commits:   a.commits,
		Progress:  a.Progress(now),
	}
	if a.animating {
		s.From, s.To, s.Started = a.from, a.to, a.start
	}
	return s
}

// Close freezes the animator. Later calls to Retarget and Step have no effect.
func (a *Animator) Close() { a.closed = true }

func (a *Animator) begin(t theme.Theme, at time.Time) {
	a.from, a.to = a.current, t
	a.start = at
	a.animating = true
}

func (a *Animator) linear(now time.Time) float64 {
	if a.duration <= 0 {
		return 1
	}
	return clamp01(float64(now.Sub(a.start)) / float64(a.duration))
}
