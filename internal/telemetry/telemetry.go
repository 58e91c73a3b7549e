// Package telemetry writes the engine's theme decisions as JSON Lines. Each
// line is one Event: the engine starting or being disposed, a target change,
// or one end of an animated transition. Every transition_start is followed
// by exactly one transition_done with the same endpoints.
package telemetry

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/papapumpkin/parallax/internal/theme"
)

// Kind tags an Event.
type Kind string

const (
	KindEngineStart     Kind = "engine_start"
	KindTargetChanged   Kind = "target_changed"
	KindTransitionStart Kind = "transition_start"
	KindTransitionDone  Kind = "transition_done"
	KindEngineDispose   Kind = "engine_dispose"
)

// Event is one telemetry line. From and To name themes; which ones depends on
// Kind.
type Event struct {
	Timestamp time.Time      `json:"ts"`
	Kind      Kind           `json:"kind"`
	From      string         `json:"from,omitempty"`
	To        string         `json:"to,omitempty"`
	Data      map[string]any `json:"data,omitempty"`
}

// StartEvent records the theme an engine starts on.
func StartEvent(initial theme.Theme, mode string) Event {
	return Event{Kind: KindEngineStart, To: string(initial), Data: map[string]any{"mode": mode}}
}

// TargetEvent records a change of target theme and the input that caused it.
func TargetEvent(from, to theme.Theme, progress float64, section string) Event {
	data := map[string]any{"scroll_progress": progress}
	if section != "" {
		data["section"] = section
	}
	return Event{Kind: KindTargetChanged, From: string(from), To: string(to), Data: data}
}

// TransitionEvent records either end of an animation from one theme to another.
func TransitionEvent(kind Kind, from, to theme.Theme) Event {
	return Event{Kind: kind, From: string(from), To: string(to)}
}

// DisposeEvent records the theme an engine was showing when disposed.
func DisposeEvent(last theme.Theme) Event {
	return Event{Kind: KindEngineDispose, From: string(last)}
}

// Transition reports the endpoints of a transition event.
func (e Event) Transition() (from, to theme.Theme, ok bool) {
	if e.Kind != KindTransitionStart && e.Kind != KindTransitionDone {
		return "", "", false
	}
	return theme.Theme(e.From), theme.Theme(e.To), true
}

// Emitter appends events to a JSONL file. It is safe for concurrent use. A
// nil *Emitter discards everything.
type Emitter struct {
	file *os.File
	enc  *json.Encoder
	mu   sync.Mutex
}

// NewEmitter opens path for appending, creating it if needed.
func NewEmitter(path string) (*Emitter, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("telemetry: open %s: %w", path, err)
	}
	return &Emitter{
		file: f,
		enc:  json.NewEncoder(f),
	}, nil
}

// Emit writes evt as one line. A zero Timestamp is stamped with the current
// time.
func (e *Emitter) Emit(evt Event) error {
	if e == nil {
		return nil
	}
	if evt.Timestamp.IsZero() {
		evt.Timestamp = time.Now()
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.enc.Encode(evt); err != nil {
		return fmt.Errorf("telemetry: encode %s: %w", evt.Kind, err)
	}
	return nil
}

// Close closes the file.
func (e *Emitter) Close() error {
	if e == nil {
		return nil
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.file.Close(); err != nil {
		return fmt.Errorf("telemetry: close: %w", err)
	}
	return nil
}
