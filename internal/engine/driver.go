package engine

import (
	"context"
	"time"

	"github.com/papapumpkin/parallax/internal/scroll"
)

// Driver runs an engine in real time on a single goroutine: scroll samples
// arrive on a channel and a ticker stands in for the animation-frame clock.
type Driver struct {
	engine *Engine
	frame  time.Duration
	now    func() time.Time
}

// NewDriver creates a driver ticking every frame. A non-positive frame uses
// the scroll throttle default (one 60Hz frame).
func NewDriver(e *Engine, frame time.Duration) *Driver {
	if frame <= 0 {
		frame = scroll.DefaultThrottle
	}
	return &Driver{engine: e, frame: frame, now: time.Now}
}

// Run processes samples and frames until ctx is cancelled or samples is
// closed. The ticker is stopped before Run returns, so no frame fires after
// it. Run does not dispose the engine.
func (d *Driver) Run(ctx context.Context, samples <-chan scroll.Metrics) error {
	ticker := time.NewTicker(d.frame)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case m, ok := <-samples:
			if !ok {
				return nil
			}
			d.engine.Update(m, d.now())
		case <-ticker.C:
			d.engine.Frame(d.now())
		}
	}
}
