package telemetry

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/papapumpkin/parallax/internal/engine"
)

// Recorder turns the engine's snapshot stream into telemetry events.
// Attach it with engine.Subscribe(rec.Observe).
type Recorder struct {
	emitter *Emitter
	logger  *log.Logger
	now     func() time.Time

	mu      sync.Mutex
	prev    engine.Snapshot
	started bool
}

// NewRecorder returns a Recorder writing to em. A nil emitter records nothing.
// Emit failures are logged and otherwise ignored.
func NewRecorder(em *Emitter, logger *log.Logger) *Recorder {
	return &Recorder{emitter: em, logger: logger, now: time.Now}
}

// Start records engine_start for the engine's initial snapshot.
func (r *Recorder) Start(snap engine.Snapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.prev = snap
	r.started = true
	r.emit(StartEvent(snap.CurrentTheme, snap.Mode.String()))
}

// Observe diffs snap against the previous snapshot and emits one event per
// observed change. An animation that ends, whether the engine went idle or
// chained straight into the next animation, gets its transition_done before
// the next transition_start.
func (r *Recorder) Observe(snap engine.Snapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.started {
		r.prev = snap
		r.started = true
		return
	}
	prev := r.prev
	r.prev = snap

	if snap.TargetTheme != prev.TargetTheme {
		r.emit(TargetEvent(prev.TargetTheme, snap.TargetTheme, snap.ScrollProgress, snap.DominantSection))
	}
	moved := snap.From != prev.From || snap.To != prev.To
	if prev.IsTransitioning && (!snap.IsTransitioning || moved) {
		r.emit(TransitionEvent(KindTransitionDone, prev.From, prev.To))
	}
	if snap.IsTransitioning && (!prev.IsTransitioning || moved) {
		r.emit(TransitionEvent(KindTransitionStart, snap.From, snap.To))
	}
}

// Dispose records engine_dispose with the last theme observed.
func (r *Recorder) Dispose() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.emit(DisposeEvent(r.prev.CurrentTheme))
}

// emit is called with r.mu held.
func (r *Recorder) emit(evt Event) {
	evt.Timestamp = r.now()
	if err := r.emitter.Emit(evt); err != nil && r.logger != nil {
		r.logger.Warn("telemetry write failed", "kind", evt.Kind, "err", err)
	}
}
