// Package engine composes scroll tracking, section visibility, hysteresis
// resolution and transition animation into one stream of immutable snapshots.
//
// Every update runs the same ordered pipeline: scroll sampling, then target
// resolution, then animation. Resolution therefore never sees a progress
// value older than the one sampled in the same call.
package engine

import (
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/papapumpkin/parallax/internal/aggregate"
	"github.com/papapumpkin/parallax/internal/hysteresis"
	"github.com/papapumpkin/parallax/internal/logging"
	"github.com/papapumpkin/parallax/internal/scroll"
	"github.com/papapumpkin/parallax/internal/theme"
	"github.com/papapumpkin/parallax/internal/transition"
	"github.com/papapumpkin/parallax/internal/visibility"
)

// Snapshot is one published engine state. It is a value; consumers may keep
// it without affecting the engine.
type Snapshot struct {
	CurrentTheme       theme.Theme
	TargetTheme        theme.Theme
	IsTransitioning    bool
	TransitionProgress float64
	ScrollProgress     float64

	// From and To are the endpoints consumers blend between.
	From theme.Theme
	To   theme.Theme

	IsScrolling     bool
	DominantSection string
	Mode            Mode
	// Commits counts the transitions committed so far.
	Commits uint64
}

// Engine owns the hysteresis and transition state for one consumer. Methods
// are safe for concurrent use, but snapshots are only delivered in order when
// a single goroutine drives Update and Frame. Subscribers are called outside
// the lock and may call back into the engine.
type Engine struct {
	mu sync.Mutex

	mode       Mode
	thresholds theme.ThresholdMap
	tracker    *scroll.Tracker
	detector   *visibility.Detector
	resolver   *hysteresis.Resolver
	aggregator *aggregate.Aggregator
	animator   *transition.Animator
	logger     *log.Logger

	history hysteresis.History
	last    Snapshot

	subs        []subscriber
	nextSub     int
	layoutDirty bool
	disposed    bool
}

type subscriber struct {
	id int
	fn func(Snapshot)
}

// New validates cfg and builds an engine showing the progress-0 theme.
// Invalid configuration returns a *theme.ConfigurationError.
func New(cfg Config) (*Engine, error) {
	if err := cfg.validateDurations(); err != nil {
		return nil, err
	}
	thresholds, err := theme.NewThresholdMap(cfg.Thresholds)
	if err != nil {
		return nil, err
	}
	resolver, err := hysteresis.NewResolver(thresholds, cfg.HysteresisBuffer, cfg.Cooldown)
	if err != nil {
		return nil, err
	}
	detector, err := visibility.NewDetector(visibility.Options{
		RootMargin:   cfg.IntersectionRootMargin,
		Thresholds:   cfg.IntersectionThresholds,
		EagerCleanup: cfg.EagerCleanup,
	})
	if err != nil {
		return nil, &theme.ConfigurationError{Field: "intersection", Err: err}
	}
	if err := detector.Register(cfg.Sections); err != nil {
		return nil, err
	}

	logger := cfg.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	initial := thresholds.Default()
	e := &Engine{
		mode:       cfg.Mode,
		thresholds: thresholds,
		tracker:    scroll.NewTracker(cfg.Throttle, cfg.QuietPeriod),
		detector:   detector,
		resolver:   resolver,
		aggregator: aggregate.New(initial),
		animator:   transition.NewAnimator(initial, cfg.TransitionDuration, cfg.Easing),
		logger:     logger,
	}
	e.last = Snapshot{
		CurrentTheme: initial,
		TargetTheme:  initial,
		From:         initial,
		To:           initial,
		Mode:         cfg.Mode,
	}
	logger.Debug("engine created", "mode", cfg.Mode, "thresholds", thresholds.Len(), "sections", len(cfg.Sections))
	return e, nil
}

// NewOrFallback builds an engine from cfg. When cfg is invalid it logs the
// diagnostic and returns a static engine pinned to the first configured
// theme, so a consumer is never left without a theme.
func NewOrFallback(cfg Config) *Engine {
	e, err := New(cfg)
	if err == nil {
		return e
	}
	fb := fallbackTheme(cfg)
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	logger.Error("invalid engine configuration, using static theme", "err", err, "theme", fb)

	static := DefaultConfig([]theme.Threshold{{Progress: 0, Theme: fb}})
	static.Logger = logger
	e, err = New(static)
	if err != nil {
		// Unreachable: the static configuration is built from defaults.
		panic(fmt.Sprintf("engine: fallback configuration rejected: %v", err))
	}
	return e
}

func fallbackTheme(cfg Config) theme.Theme {
	for _, t := range cfg.Thresholds {
		if t.Theme != "" {
			return t.Theme
		}
	}
	for _, s := range cfg.Sections {
		if s.Theme != "" {
			return s.Theme
		}
	}
	return theme.Fallback
}

// Thresholds returns the engine's immutable threshold map.
func (e *Engine) Thresholds() theme.ThresholdMap { return e.thresholds }

// Snapshot returns the most recently published state.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.last
}

// Update feeds a scroll or resize sample taken at now through the pipeline.
func (e *Engine) Update(m scroll.Metrics, now time.Time) Snapshot {
	e.mu.Lock()
	if e.disposed {
		defer e.mu.Unlock()
		return e.last
	}
	applied := e.tracker.Observe(m, now)
	return e.advance(applied, now)
}

// Frame advances timers and the in-flight animation to now. Callers invoke
// it once per animation frame.
func (e *Engine) Frame(now time.Time) Snapshot {
	e.mu.Lock()
	if e.disposed {
		defer e.mu.Unlock()
		return e.last
	}
	applied := e.tracker.Tick(now)
	return e.advance(applied, now)
}

// SetLayout records section geometry in document coordinates. Sections not
// registered with the engine are rejected.
func (e *Engine) SetLayout(bounds map[string]visibility.Bounds) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.disposed {
		return nil
	}
	for id, b := range bounds {
		if err := e.detector.SetBounds(id, b); err != nil {
			return fmt.Errorf("engine: %w", err)
		}
	}
	e.layoutDirty = true
	return nil
}

// SetSections replaces the registered section set. The new set is observed
// on the next Update or Frame.
func (e *Engine) SetSections(sections []theme.Section) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.disposed {
		return nil
	}
	if err := e.detector.Register(sections); err != nil {
		return err
	}
	e.aggregator.Reset()
	e.layoutDirty = true
	e.logger.Debug("sections registered", "count", len(sections))
	return nil
}

// Sections returns the registered sections in registration order.
func (e *Engine) Sections() []theme.Section {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.detector.Sections()
}

// Visibility returns the last observed section ratios, most visible first.
func (e *Engine) Visibility() []visibility.Entry {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.detector.Ranked()
}

// Subscribe registers fn to receive every snapshot that differs from the
// previous one. The returned function unsubscribes.
func (e *Engine) Subscribe(fn func(Snapshot)) func() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.disposed {
		return func() {}
	}
	id := e.nextSub
	e.nextSub++
	e.subs = append(e.subs, subscriber{id: id, fn: fn})
	return func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		for i, s := range e.subs {
			if s.id == id {
				e.subs = append(e.subs[:i:i], e.subs[i+1:]...)
				return
			}
		}
	}
}

// Dispose releases the engine. Subscribers are dropped and later calls
// return the final snapshot without side effects. Dispose is idempotent.
func (e *Engine) Dispose() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.disposed {
		return
	}
	e.disposed = true
	e.tracker.Close()
	e.detector.Close()
	e.animator.Close()
	e.subs = nil
	e.logger.Debug("engine disposed", "theme", e.last.CurrentTheme)
}

// advance runs resolution and animation for one tick and publishes the
// result. It is entered with e.mu held and releases it.
func (e *Engine) advance(scrolled bool, now time.Time) Snapshot {
	st := e.tracker.State()
	if scrolled || e.layoutDirty {
		e.layoutDirty = false
		e.detector.Observe(visibility.Viewport{ScrollY: st.ScrollY, Height: st.WindowHeight})
	}
	dominant, _ := e.detector.MostVisible()

	var target theme.Theme
	switch e.mode {
	case ModeSection:
		target = e.aggregator.Resolve(e.detector).Theme
	default:
		target, e.history = e.resolver.Advance(st.ScrollProgress, e.history, now)
	}
	if e.animator.Retarget(target, now) {
		e.logger.Debug("transition started", "from", e.last.CurrentTheme, "to", target, "progress", st.ScrollProgress)
	}
	as, commits := e.animator.Step(now)

	snap := Snapshot{
		CurrentTheme:       as.Current,
		TargetTheme:        as.Target,
		IsTransitioning:    as.Animating,
		TransitionProgress: as.Progress,
		ScrollProgress:     st.ScrollProgress,
		From:               as.From,
		To:                 as.To,
		IsScrolling:        st.IsScrolling,
		DominantSection:    dominant,
		Mode:               e.mode,
		Commits:            as.Commits,
	}

	// Every commit but the last is published as the snapshot at its commit
	// instant, so subscribers see each committed theme in order.
	var publish []Snapshot
	for k := 0; k+1 < len(commits); k++ {
		mid := snap
		mid.CurrentTheme = commits[k].To
		mid.From, mid.To = commits[k].To, commits[k+1].To
		mid.IsTransitioning = true
		mid.TransitionProgress = 0
		mid.Commits = as.Commits - uint64(len(commits)-1-k)
		publish = append(publish, mid)
	}
	if snap != e.last {
		publish = append(publish, snap)
	}
	e.last = snap
	var subs []func(Snapshot)
	if len(publish) > 0 {
		subs = make([]func(Snapshot), 0, len(e.subs))
		for _, s := range e.subs {
			subs = append(subs, s.fn)
		}
	}
	e.mu.Unlock()

	for _, p := range publish {
		for _, fn := range subs {
			fn(p)
		}
	}
	return snap
}
