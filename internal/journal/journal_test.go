package journal

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/papapumpkin/parallax/internal/engine"
	"github.com/papapumpkin/parallax/internal/logging"
	"github.com/papapumpkin/parallax/internal/scroll"
	"github.com/papapumpkin/parallax/internal/theme"
)

// testJournal creates a temporary journal and registers cleanup.
func testJournal(t *testing.T) *Journal {
	t.Helper()
	path := filepath.Join(t.TempDir(), "history.db")
	j, err := Open(context.Background(), path, logging.Discard())
	if err != nil {
		t.Fatalf("Open(%q): %v", path, err)
	}
	t.Cleanup(func() { j.Close() })
	return j
}

func TestOpen(t *testing.T) {
	t.Parallel()

	t.Run("enables WAL", func(t *testing.T) {
		t.Parallel()
		j := testJournal(t)
		var mode string
		if err := j.db.QueryRow("PRAGMA journal_mode").Scan(&mode); err != nil {
			t.Fatalf("query journal_mode: %v", err)
		}
		if mode != "wal" {
			t.Errorf("journal_mode = %q, want %q", mode, "wal")
		}
	})

	t.Run("reopen keeps entries", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "history.db")
		ctx := context.Background()
		j, err := Open(ctx, path, nil)
		if err != nil {
			t.Fatalf("Open: %v", err)
		}
		if _, err := j.Record(ctx, Entry{From: "a", To: "b", Mode: "scroll"}); err != nil {
			t.Fatalf("Record: %v", err)
		}
		j.Close()

		j2, err := Open(ctx, path, nil)
		if err != nil {
			t.Fatalf("reopen: %v", err)
		}
		defer j2.Close()
		got, err := j2.Recent(ctx, 0)
		if err != nil {
			t.Fatalf("Recent: %v", err)
		}
		if len(got) != 1 {
			t.Fatalf("len(Recent) = %d, want 1", len(got))
		}
	})
}

func TestRecent_NewestFirst(t *testing.T) {
	t.Parallel()
	j := testJournal(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	for i, to := range []theme.Theme{"refined", "extreme", "refined"} {
		e := Entry{From: "x", To: to, Mode: "scroll", ScrollProgress: float64(i) / 10, CommittedAt: base.Add(time.Duration(i) * time.Second)}
		if _, err := j.Record(ctx, e); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}

	got, err := j.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if !got[0].CommittedAt.Equal(base.Add(2*time.Second)) || got[0].To != "refined" {
		t.Errorf("first = %+v, want newest refined entry", got[0])
	}

	counts, err := j.Count(ctx)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if counts["refined"] != 2 || counts["extreme"] != 1 {
		t.Errorf("Count() = %v", counts)
	}
}

func TestObserve_RecordsCommittedTransitions(t *testing.T) {
	t.Parallel()
	j := testJournal(t)

	cfg := engine.DefaultConfig([]theme.Threshold{{Progress: 0, Theme: "extreme"}, {Progress: 0.4, Theme: "refined"}})
	cfg.Logger = logging.Discard()
	eng, err := engine.New(cfg)
	if err != nil {
		t.Fatalf("engine.New: %v", err)
	}
	j.Seed(eng.Snapshot().CurrentTheme)
	eng.Subscribe(j.Observe)

	t0 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	eng.Update(scroll.Metrics{ScrollY: 800, DocumentHeight: 2000, WindowHeight: 1000}, t0)
	eng.Frame(t0.Add(300 * time.Millisecond))
	eng.Frame(t0.Add(time.Second))

	got, err := j.Recent(context.Background(), 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("recorded %d transitions, want 1: %+v", len(got), got)
	}
	if got[0].From != "extreme" || got[0].To != "refined" || got[0].Mode != "scroll" {
		t.Errorf("entry = %+v", got[0])
	}
}

func TestObserve_RecordsEveryCommitAfterFrameGap(t *testing.T) {
	t.Parallel()
	j := testJournal(t)

	cfg := engine.DefaultConfig([]theme.Threshold{{Progress: 0, Theme: "extreme"}, {Progress: 0.4, Theme: "refined"}})
	cfg.Logger = logging.Discard()
	eng, err := engine.New(cfg)
	if err != nil {
		t.Fatalf("engine.New: %v", err)
	}
	t.Cleanup(eng.Dispose)
	j.Seed(eng.Snapshot().CurrentTheme)
	eng.Subscribe(j.Observe)

	metrics := func(p float64) scroll.Metrics {
		return scroll.Metrics{ScrollY: p * 1000, DocumentHeight: 2000, WindowHeight: 1000}
	}
	t0 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	eng.Update(metrics(0), t0)
	eng.Update(metrics(0.5), t0.Add(50*time.Millisecond))
	eng.Update(metrics(0.1), t0.Add(200*time.Millisecond))
	// No frames until long after both animations should have finished.
	final := eng.Frame(t0.Add(2 * time.Second))
	if final.CurrentTheme != "extreme" || final.IsTransitioning || final.Commits != 2 {
		t.Fatalf("final snapshot = %+v, want idle extreme after 2 commits", final)
	}

	got, err := j.Recent(context.Background(), 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("recorded %d transitions, want 2: %+v", len(got), got)
	}
	if got[1].From != "extreme" || got[1].To != "refined" {
		t.Errorf("first commit = %s->%s, want extreme->refined", got[1].From, got[1].To)
	}
	if got[0].From != "refined" || got[0].To != "extreme" {
		t.Errorf("second commit = %s->%s, want refined->extreme", got[0].From, got[0].To)
	}
}
