package telemetry

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/papapumpkin/parallax/internal/engine"
	"github.com/papapumpkin/parallax/internal/logging"
	"github.com/papapumpkin/parallax/internal/scroll"
	"github.com/papapumpkin/parallax/internal/theme"
)

func readKinds(t *testing.T, path string) []Event {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	var out []Event
	for _, line := range strings.Split(strings.TrimSpace(string(data)), "\n") {
		if line == "" {
			continue
		}
		var evt Event
		if err := json.Unmarshal([]byte(line), &evt); err != nil {
			t.Fatalf("invalid JSON line %q: %v", line, err)
		}
		out = append(out, evt)
	}
	return out
}

func TestRecorder_Observe(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "events.jsonl")
	em, err := NewEmitter(path)
	if err != nil {
		t.Fatalf("NewEmitter: %v", err)
	}
	rec := NewRecorder(em, logging.Discard())
	rec.now = func() time.Time { return time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC) }

	idle := engine.Snapshot{CurrentTheme: "a", TargetTheme: "a", From: "a", To: "a"}
	rec.Start(idle)
	rec.Observe(engine.Snapshot{CurrentTheme: "a", TargetTheme: "b", From: "a", To: "b", IsTransitioning: true, TransitionProgress: 0.1})
	rec.Observe(engine.Snapshot{CurrentTheme: "a", TargetTheme: "b", From: "a", To: "b", IsTransitioning: true, TransitionProgress: 0.6})
	rec.Observe(engine.Snapshot{CurrentTheme: "b", TargetTheme: "b", From: "b", To: "b"})
	rec.Dispose()
	if err := em.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	got := readKinds(t, path)
	want := []struct {
		kind     Kind
		from, to string
	}{
		{KindEngineStart, "", "a"},
		{KindTargetChanged, "a", "b"},
		{KindTransitionStart, "a", "b"},
		{KindTransitionDone, "a", "b"},
		{KindEngineDispose, "b", ""},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d events, want %d: %+v", len(got), len(want), got)
	}
	for i, w := range want {
		if got[i].Kind != w.kind || got[i].From != w.from || got[i].To != w.to {
			t.Errorf("event %d = %s %q->%q, want %s %q->%q", i, got[i].Kind, got[i].From, got[i].To, w.kind, w.from, w.to)
		}
	}
}

func TestRecorder_NilEmitter(t *testing.T) {
	t.Parallel()
	rec := NewRecorder(nil, nil)
	rec.Start(engine.Snapshot{CurrentTheme: "a"})
	rec.Observe(engine.Snapshot{CurrentTheme: "a", TargetTheme: "b", IsTransitioning: true})
	rec.Dispose()
}

func TestRecorder_SubscribedToEngine(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "events.jsonl")
	em, err := NewEmitter(path)
	if err != nil {
		t.Fatalf("NewEmitter: %v", err)
	}

	cfg := engine.DefaultConfig([]theme.Threshold{{Progress: 0, Theme: "extreme"}, {Progress: 0.4, Theme: "refined"}})
	cfg.Logger = logging.Discard()
	eng, err := engine.New(cfg)
	if err != nil {
		t.Fatalf("engine.New: %v", err)
	}
	rec := NewRecorder(em, logging.Discard())
	rec.Start(eng.Snapshot())
	eng.Subscribe(rec.Observe)

	t0 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	eng.Update(scroll.Metrics{ScrollY: 800, DocumentHeight: 2000, WindowHeight: 1000}, t0)
	eng.Frame(t0.Add(time.Second))
	rec.Dispose()
	eng.Dispose()
	if err := em.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	kinds := make(map[Kind]int)
	for _, evt := range readKinds(t, path) {
		kinds[evt.Kind]++
	}
	for _, k := range []Kind{KindEngineStart, KindTargetChanged, KindTransitionStart, KindTransitionDone, KindEngineDispose} {
		if kinds[k] != 1 {
			t.Errorf("kind %s recorded %d times, want 1", k, kinds[k])
		}
	}
}

func TestRecorder_ChainedTransitionsArePaired(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "events.jsonl")
	em, err := NewEmitter(path)
	if err != nil {
		t.Fatalf("NewEmitter: %v", err)
	}

	cfg := engine.DefaultConfig([]theme.Threshold{{Progress: 0, Theme: "extreme"}, {Progress: 0.4, Theme: "refined"}})
	cfg.Logger = logging.Discard()
	eng, err := engine.New(cfg)
	if err != nil {
		t.Fatalf("engine.New: %v", err)
	}
	rec := NewRecorder(em, logging.Discard())
	rec.Start(eng.Snapshot())
	eng.Subscribe(rec.Observe)

	metrics := func(p float64) scroll.Metrics {
		return scroll.Metrics{ScrollY: p * 1000, DocumentHeight: 2000, WindowHeight: 1000}
	}
	t0 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	eng.Update(metrics(0), t0)
	eng.Update(metrics(0.5), t0.Add(50*time.Millisecond))
	// Scroll back before the first animation ends; the second queues behind it.
	eng.Update(metrics(0.1), t0.Add(200*time.Millisecond))
	for ms := 216; ms <= 1500; ms += 16 {
		eng.Frame(t0.Add(time.Duration(ms) * time.Millisecond))
	}
	eng.Dispose()
	if err := em.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	var got []Event
	for _, evt := range readKinds(t, path) {
		if _, _, ok := evt.Transition(); ok {
			got = append(got, evt)
		}
	}
	want := []struct {
		kind     Kind
		from, to string
	}{
		{KindTransitionStart, "extreme", "refined"},
		{KindTransitionDone, "extreme", "refined"},
		{KindTransitionStart, "refined", "extreme"},
		{KindTransitionDone, "refined", "extreme"},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d transition events, want %d: %+v", len(got), len(want), got)
	}
	for i, w := range want {
		if got[i].Kind != w.kind || got[i].From != w.from || got[i].To != w.to {
			t.Errorf("event %d = %s %q->%q, want %s %q->%q", i, got[i].Kind, got[i].From, got[i].To, w.kind, w.from, w.to)
		}
	}
}

func TestRecorder_FrameGapStillPairs(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "events.jsonl")
	em, err := NewEmitter(path)
	if err != nil {
		t.Fatalf("NewEmitter: %v", err)
	}
	rec := NewRecorder(em, nil)

	rec.Start(engine.Snapshot{CurrentTheme: "a", TargetTheme: "a", From: "a", To: "a"})
	rec.Observe(engine.Snapshot{CurrentTheme: "a", TargetTheme: "b", From: "a", To: "b", IsTransitioning: true})
	rec.Observe(engine.Snapshot{CurrentTheme: "a", TargetTheme: "a", From: "a", To: "b", IsTransitioning: true})
	// Commit of a->b published at its instant, chained into b->a.
	rec.Observe(engine.Snapshot{CurrentTheme: "b", TargetTheme: "a", From: "b", To: "a", IsTransitioning: true, Commits: 1})
	rec.Observe(engine.Snapshot{CurrentTheme: "a", TargetTheme: "a", From: "a", To: "a", Commits: 2})
	em.Close()

	starts, dones := 0, 0
	for _, evt := range readKinds(t, path) {
		switch evt.Kind {
		case KindTransitionStart:
			starts++
		case KindTransitionDone:
			dones++
		}
	}
	if starts != 2 || dones != 2 {
		t.Errorf("transition_start=%d transition_done=%d, want 2 each", starts, dones)
	}
}
