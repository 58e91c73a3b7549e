// Package theme defines the visual-mode identifiers selected by the engine and
// the caller-supplied threshold and section configuration that maps onto them.
//
// A ThresholdMap is validated once at construction and never mutated
// afterwards; every accessor returns copies so consumers cannot alter the
// engine's view of it.
package theme

import (
	"fmt"
	"math"
)

// Theme is an opaque visual-mode identifier.
type Theme string

// Fallback is used when no configured theme is available at all.
const Fallback Theme = "default"

func (t Theme) String() string { return string(t) }

// Threshold maps a scroll-progress value to the theme that becomes eligible
// once progress reaches it.
type Threshold struct {
	Progress float64 `toml:"progress" json:"progress"`
	Theme    Theme   `toml:"theme" json:"theme"`
}

// ThresholdMap is an ascending, duplicate-free sequence of thresholds whose
// first entry sits at progress 0.
type ThresholdMap struct {
	entries []Threshold
}

// NewThresholdMap validates entries and returns an immutable ThresholdMap.
// Entries must already be sorted ascending by progress.
func NewThresholdMap(entries []Threshold) (ThresholdMap, error) {
	if len(entries) == 0 {
		return ThresholdMap{}, &ConfigurationError{Field: "thresholds", Err: ErrNoThresholds}
	}
	for i, e := range entries {
		field := fmt.Sprintf("thresholds[%d]", i)
		if math.IsNaN(e.Progress) || e.Progress < 0 || e.Progress > 1 {
			return ThresholdMap{}, &ConfigurationError{Field: field, Err: fmt.Errorf("%w: %v", ErrProgressRange, e.Progress)}
		}
		if e.Theme == "" {
			return ThresholdMap{}, &ConfigurationError{Field: field, Err: ErrEmptyTheme}
		}
		if i > 0 && e.Progress <= entries[i-1].Progress {
			return ThresholdMap{}, &ConfigurationError{Field: field, Err: ErrUnsortedThresholds}
		}
	}
	if entries[0].Progress != 0 {
		return ThresholdMap{}, &ConfigurationError{Field: "thresholds[0]", Err: ErrMissingOrigin}
	}

	out := make([]Threshold, len(entries))
	copy(out, entries)
	return ThresholdMap{entries: out}, nil
}

// Len returns the number of thresholds.
func (m ThresholdMap) Len() int { return len(m.entries) }

// At returns the i-th threshold in ascending order.
func (m ThresholdMap) At(i int) Threshold { return m.entries[i] }

// Entries returns a copy of the thresholds in ascending order.
func (m ThresholdMap) Entries() []Threshold {
	out := make([]Threshold, len(m.entries))
	copy(out, m.entries)
	return out
}

// Default returns the theme of the progress-0 entry, or Fallback for a zero
// ThresholdMap.
func (m ThresholdMap) Default() Theme {
	if len(m.entries) == 0 {
		return Fallback
	}
	return m.entries[0].Theme
}

// Lookup returns the theme of the greatest threshold <= progress, ignoring
// any hysteresis. Non-finite or negative progress resolves to Default.
func (m ThresholdMap) Lookup(progress float64) Theme {
	if math.IsNaN(progress) {
		return m.Default()
	}
	for i := len(m.entries) - 1; i >= 0; i-- {
		if m.entries[i].Progress <= progress {
			return m.entries[i].Theme
		}
	}
	return m.Default()
}

// Themes returns the distinct themes referenced by the map, in first-seen order.
func (m ThresholdMap) Themes() []Theme {
	seen := make(map[Theme]bool, len(m.entries))
	var out []Theme
	for _, e := range m.entries {
		if !seen[e.Theme] {
			seen[e.Theme] = true
			out = append(out, e.Theme)
		}
	}
	return out
}

// Section ties a page region to the theme it wants while dominant.
type Section struct {
	ID    string `toml:"id" json:"id"`
	Theme Theme  `toml:"theme" json:"theme"`
}

// ValidateSections checks that every section has an ID and a theme and that
// IDs are unique.
func ValidateSections(sections []Section) error {
	seen := make(map[string]bool, len(sections))
	for i, s := range sections {
		field := fmt.Sprintf("sections[%d]", i)
		if s.ID == "" {
			return &ConfigurationError{Field: field, Err: ErrEmptySectionID}
		}
		if s.Theme == "" {
			return &ConfigurationError{Field: field, Err: ErrEmptyTheme}
		}
		if seen[s.ID] {
			return &ConfigurationError{Field: field, Err: fmt.Errorf("%w: %q", ErrDuplicateSection, s.ID)}
		}
		seen[s.ID] = true
	}
	return nil
}
