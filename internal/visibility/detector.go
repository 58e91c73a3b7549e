// Package visibility reports how much of each registered page section sits
// inside the observed viewport band, and which section currently dominates.
//
// Ratios are reported the way a viewport-intersection observer reports them:
// an entry is emitted only when a section crosses one of the sampling
// thresholds, so the recorded ratio changes at a fixed granularity.
package visibility

import (
	"fmt"
	"math"
	"sort"

	"github.com/papapumpkin/parallax/internal/theme"
)

// DefaultThresholds are the sampling points at which ratio changes are reported.
var DefaultThresholds = []float64{0, 0.25, 0.5, 0.75, 1}

// Bounds is a section's vertical extent in document coordinates.
type Bounds struct {
	Top    float64
	Height float64
}

// Viewport is the visible window in document coordinates.
type Viewport struct {
	ScrollY float64
	Height  float64
	Width   float64
}

// Entry is a single change notification for one section.
type Entry struct {
	ID             string
	Ratio          float64
	IsIntersecting bool
}

// Options configures a Detector.
type Options struct {
	RootMargin string
	Thresholds []float64
	// EagerCleanup removes a section from the ratio map when it stops
	// intersecting instead of retaining it at 0.
	EagerCleanup bool
}

// Detector tracks per-section visibility ratios. It is not safe for
// concurrent use; the owning engine serializes access.
type Detector struct {
	margin     RootMargin
	thresholds []float64
	eager      bool

	order   []string
	themes  map[string]theme.Theme
	bounds  map[string]Bounds
	ratios  map[string]float64
	buckets map[string]int
	closed  bool
}

// NewDetector validates opts and returns a detector with no registered sections.
func NewDetector(opts Options) (*Detector, error) {
	raw := opts.RootMargin
	if raw == "" {
		raw = DefaultRootMargin
	}
	margin, err := ParseRootMargin(raw)
	if err != nil {
		return nil, fmt.Errorf("visibility: %w", err)
	}

	ths := opts.Thresholds
	if len(ths) == 0 {
		ths = DefaultThresholds
	}
	sorted := make([]float64, 0, len(ths))
	seen := make(map[float64]bool, len(ths))
	for _, v := range ths {
		if math.IsNaN(v) || v < 0 || v > 1 {
			return nil, fmt.Errorf("visibility: %w: %v", ErrInvalidThreshold, v)
		}
		if !seen[v] {
			seen[v] = true
			sorted = append(sorted, v)
		}
	}
	sort.Float64s(sorted)

	return &Detector{
		margin:     margin,
		thresholds: sorted,
		eager:      opts.EagerCleanup,
		themes:     make(map[string]theme.Theme),
		bounds:     make(map[string]Bounds),
		ratios:     make(map[string]float64),
		buckets:    make(map[string]int),
	}, nil
}

// Register replaces the observed section set. State for sections that remain
// registered is kept; removed sections are forgotten; new sections report on
// the next Observe.
func (d *Detector) Register(sections []theme.Section) error {
	if err := theme.ValidateSections(sections); err != nil {
		return err
	}

	keep := make(map[string]bool, len(sections))
	order := make([]string, 0, len(sections))
	themes := make(map[string]theme.Theme, len(sections))
	for _, s := range sections {
		keep[s.ID] = true
		order = append(order, s.ID)
		themes[s.ID] = s.Theme
	}
	for id := range d.themes {
		if !keep[id] {
			delete(d.bounds, id)
			delete(d.ratios, id)
			delete(d.buckets, id)
		}
	}
	d.order = order
	d.themes = themes
	return nil
}

// Sections returns the registered sections in registration order.
func (d *Detector) Sections() []theme.Section {
	out := make([]theme.Section, len(d.order))
	for i, id := range d.order {
		out[i] = theme.Section{ID: id, Theme: d.themes[id]}
	}
	return out
}

// SetBounds records the layout of a registered section.
func (d *Detector) SetBounds(id string, b Bounds) error {
	if _, ok := d.themes[id]; !ok {
		return fmt.Errorf("visibility: %w: %q", ErrUnknownSection, id)
	}
	d.bounds[id] = b
	return nil
}

// Observe samples every laid-out section against v and returns the entries
// whose threshold bucket changed since the previous sample, in registration
// order.
func (d *Detector) Observe(v Viewport) []Entry {
	if d.closed {
		return nil
	}
	top := v.ScrollY - d.margin.Top.Resolve(v.Height)
	bottom := v.ScrollY + v.Height + d.margin.Bottom.Resolve(v.Height)

	var changed []Entry
	for _, id := range d.order {
		b, ok := d.bounds[id]
		if !ok {
			continue
		}
		ratio := intersectionRatio(b, top, bottom)
		bucket := d.bucket(ratio)
		prev, seen := d.buckets[id]
		if seen && prev == bucket {
			continue
		}
		d.buckets[id] = bucket
		if ratio == 0 && d.eager {
			delete(d.ratios, id)
		} else {
			d.ratios[id] = ratio
		}
		changed = append(changed, Entry{ID: id, Ratio: ratio, IsIntersecting: ratio > 0})
	}
	return changed
}

// Ratios returns a copy of the current visibility map.
func (d *Detector) Ratios() map[string]float64 {
	out := make(map[string]float64, len(d.ratios))
	for id, r := range d.ratios {
		out[id] = r
	}
	return out
}

// Ratio returns the recorded ratio for id.
func (d *Detector) Ratio(id string) (float64, bool) {
	r, ok := d.ratios[id]
	return r, ok
}

// Ranked returns the intersecting sections sorted by ratio descending. Ties
// keep registration order.
func (d *Detector) Ranked() []Entry {
	var out []Entry
	for _, id := range d.order {
		if r := d.ratios[id]; r > 0 {
			out = append(out, Entry{ID: id, Ratio: r, IsIntersecting: true})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Ratio > out[j].Ratio })
	return out
}

// MostVisible returns the dominant section: the first entry of Ranked.
func (d *Detector) MostVisible() (string, bool) {
	ranked := d.Ranked()
	if len(ranked) == 0 {
		return "", false
	}
	return ranked[0].ID, true
}

// Theme returns the theme registered for a section.
func (d *Detector) Theme(id string) (theme.Theme, bool) {
	t, ok := d.themes[id]
	return t, ok
}

// Close releases all observation state. Observe returns nil afterwards.
func (d *Detector) Close() {
	d.closed = true
	d.bounds = make(map[string]Bounds)
	d.buckets = make(map[string]int)
}

// bucket returns -1 for a non-intersecting section, otherwise the number of
// thresholds at or below ratio.
func (d *Detector) bucket(ratio float64) int {
	if ratio <= 0 {
		return -1
	}
	n := 0
	for _, th := range d.thresholds {
		if th <= ratio {
			n++
		}
	}
	return n
}

func intersectionRatio(b Bounds, top, bottom float64) float64 {
	if b.Height <= 0 || bottom <= top {
		return 0
	}
	overlap := math.Min(b.Top+b.Height, bottom) - math.Max(b.Top, top)
	if overlap <= 0 {
		return 0
	}
	return math.Min(overlap/b.Height, 1)
}
