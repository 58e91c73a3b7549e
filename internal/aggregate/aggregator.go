// Package aggregate folds per-section visibility ratios into the single
// theme requested by the dominant section.
package aggregate

import "github.com/papapumpkin/parallax/internal/theme"

// Source exposes the dominant section and the theme each section wants.
// *visibility.Detector satisfies it.
type Source interface {
	MostVisible() (string, bool)
	Theme(id string) (theme.Theme, bool)
}

// Decision is the aggregator's output for one sample.
type Decision struct {
	Section string
	Theme   theme.Theme
	// Held is true when no section is visible and the previous decision was kept.
	Held bool
}

// Aggregator remembers the last dominant section so gaps between sections
// (nothing intersecting the observed band) do not snap back to the fallback.
type Aggregator struct {
	fallback theme.Theme
	last     Decision
	primed   bool
}

// New returns an aggregator that reports fallback until a section dominates.
func New(fallback theme.Theme) *Aggregator {
	if fallback == "" {
		fallback = theme.Fallback
	}
	return &Aggregator{fallback: fallback}
}

// Resolve returns the theme wanted by the dominant section in src.
func (a *Aggregator) Resolve(src Source) Decision {
	id, ok := src.MostVisible()
	if ok {
		if t, known := src.Theme(id); known {
			a.last = Decision{Section: id, Theme: t}
			a.primed = true
			return a.last
		}
	}
	if a.primed {
		held := a.last
		held.Held = true
		return held
	}
	return Decision{Theme: a.fallback}
}

// Reset forgets the held decision, e.g. after the section set changes.
func (a *Aggregator) Reset() {
	a.last = Decision{}
	a.primed = false
}
