// Package journal persists committed theme transitions to a local SQLite
// database so a session's history can be inspected after the fact.
package journal

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	_ "modernc.org/sqlite" // Pure-Go SQLite driver.

	"github.com/papapumpkin/parallax/internal/engine"
	"github.com/papapumpkin/parallax/internal/theme"
)

// DefaultLimit bounds Recent when the caller passes a non-positive limit.
const DefaultLimit = 50

const schema = `
CREATE TABLE IF NOT EXISTS transitions (
    id              INTEGER PRIMARY KEY AUTOINCREMENT,
    from_theme      TEXT NOT NULL,
    to_theme        TEXT NOT NULL,
    mode            TEXT NOT NULL,
    scroll_progress REAL NOT NULL,
    section         TEXT NOT NULL DEFAULT '',
    committed_at    TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_transitions_committed ON transitions(committed_at);
`

// timeLayout has a fixed width so committed_at sorts lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Entry is one committed transition.
type Entry struct {
	ID             int64
	From           theme.Theme
	To             theme.Theme
	Mode           string
	ScrollProgress float64
	Section        string
	CommittedAt    time.Time
}

// Journal is a SQLite-backed transition log.
type Journal struct {
	db     *sql.DB
	logger *log.Logger
	now    func() time.Time

	mu   sync.Mutex
	last theme.Theme
}

// Open opens (or creates) the journal database at path in WAL mode.
func Open(ctx context.Context, path string, logger *log.Logger) (*Journal, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("journal: open database: %w", err)
	}
	// SQLite supports a single writer; one connection keeps PRAGMA state consistent.
	db.SetMaxOpenConns(1)

	for _, pragma := range []string{"PRAGMA journal_mode=WAL", "PRAGMA busy_timeout=5000"} {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("journal: %s: %w", pragma, err)
		}
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("journal: create schema: %w", err)
	}
	return &Journal{db: db, logger: logger, now: time.Now}, nil
}

// Record inserts e. A zero CommittedAt is replaced with the current time.
func (j *Journal) Record(ctx context.Context, e Entry) (int64, error) {
	if e.CommittedAt.IsZero() {
		e.CommittedAt = j.now()
	}
	const q = `
		INSERT INTO transitions (from_theme, to_theme, mode, scroll_progress, section, committed_at)
		VALUES (?, ?, ?, ?, ?, ?)`
	res, err := j.db.ExecContext(ctx, q, string(e.From), string(e.To), e.Mode, e.ScrollProgress, e.Section, e.CommittedAt.UTC().Format(timeLayout))
	if err != nil {
		return 0, fmt.Errorf("journal: record %s->%s: %w", e.From, e.To, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("journal: last insert id: %w", err)
	}
	return id, nil
}

// Recent returns up to limit entries, newest first.
func (j *Journal) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	const q = `
		SELECT id, from_theme, to_theme, mode, scroll_progress, section, committed_at
		FROM transitions ORDER BY committed_at DESC, id DESC LIMIT ?`
	rows, err := j.db.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, fmt.Errorf("journal: recent: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var from, to, ts string
		if err := rows.Scan(&e.ID, &from, &to, &e.Mode, &e.ScrollProgress, &e.Section, &ts); err != nil {
			return nil, fmt.Errorf("journal: scan transition: %w", err)
		}
		at, err := parseTimestamp(ts)
		if err != nil {
			return nil, fmt.Errorf("journal: parse transition timestamp: %w", err)
		}
		e.CommittedAt = at
		e.From, e.To = theme.Theme(from), theme.Theme(to)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("journal: iterate transitions: %w", err)
	}
	return entries, nil
}

// Count returns how many transitions were committed to each theme.
func (j *Journal) Count(ctx context.Context) (map[theme.Theme]int, error) {
	rows, err := j.db.QueryContext(ctx, "SELECT to_theme, COUNT(*) FROM transitions GROUP BY to_theme")
	if err != nil {
		return nil, fmt.Errorf("journal: count: %w", err)
	}
	defer rows.Close()

	counts := make(map[theme.Theme]int)
	for rows.Next() {
		var to string
		var n int
		if err := rows.Scan(&to, &n); err != nil {
			return nil, fmt.Errorf("journal: scan count: %w", err)
		}
		counts[theme.Theme(to)] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("journal: iterate counts: %w", err)
	}
	return counts, nil
}

// Seed sets the theme Observe compares against, normally the engine's
// initial CurrentTheme.
func (j *Journal) Seed(t theme.Theme) {
	j.mu.Lock()
	j.last = t
	j.mu.Unlock()
}

// Observe records a transition whenever snap.CurrentTheme differs from the
// previously committed theme. The engine publishes a snapshot for every
// commit, including several committed in one frame, so none are skipped.
// Attach it with engine.Subscribe(j.Observe).
func (j *Journal) Observe(snap engine.Snapshot) {
	j.mu.Lock()
	prev := j.last
	if snap.CurrentTheme == prev {
		j.mu.Unlock()
		return
	}
	j.last = snap.CurrentTheme
	j.mu.Unlock()
	if prev == "" {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_, err := j.Record(ctx, Entry{
		From:           prev,
		To:             snap.CurrentTheme,
		Mode:           snap.Mode.String(),
		ScrollProgress: snap.ScrollProgress,
		Section:        snap.DominantSection,
	})
	if err != nil && j.logger != nil {
		j.logger.Warn("journal write failed", "err", err)
	}
}

// timestampFormats lists the layouts accepted when reading committed_at.
var timestampFormats = []string{
	timeLayout,
	time.RFC3339Nano,
	time.DateTime,
}

func parseTimestamp(s string) (time.Time, error) {
	for _, layout := range timestampFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp format: %q", s)
}

// Close closes the database.
func (j *Journal) Close() error {
	if err := j.db.Close(); err != nil {
		return fmt.Errorf("journal: close: %w", err)
	}
	return nil
}
