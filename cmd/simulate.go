package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/parallax/internal/engine"
	"github.com/papapumpkin/parallax/internal/render"
	"github.com/papapumpkin/parallax/internal/scroll"
	"github.com/papapumpkin/parallax/internal/theme"
)

// Synthetic page used to turn progress samples into scroll metrics.
const (
	simDocumentHeight = 2000.0
	simWindowHeight   = 1000.0
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Replay a scroll-progress sequence headlessly",
	Long: `Feeds a sequence of scroll-progress samples to the engine on a synthetic clock
and prints one snapshot per sample. No terminal is required.

Example:
  parallax simulate --progress 0,0.39,0.41,0.43,0.39,0.30 --interval 50ms`,
	Args: cobra.NoArgs,
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().Float64Slice("progress", []float64{0, 0.39, 0.41, 0.43, 0.39, 0.30}, "scroll-progress samples in [0,1]")
	simulateCmd.Flags().Duration("interval", 50*time.Millisecond, "synthetic time between samples")
	simulateCmd.Flags().Bool("css", false, "print the CSS variable block for each sample")
	simulateCmd.Flags().Bool("settle", true, "advance frames after the last sample until the transition finishes")
	simulateCmd.Flags().Bool("realtime", false, "drive the engine on the wall clock instead of a synthetic one")
	rootCmd.AddCommand(simulateCmd)
}

func runSimulate(cmd *cobra.Command, _ []string) error {
	samples, _ := cmd.Flags().GetFloat64Slice("progress")
	interval, _ := cmd.Flags().GetDuration("interval")
	css, _ := cmd.Flags().GetBool("css")
	settle, _ := cmd.Flags().GetBool("settle")
	realtime, _ := cmd.Flags().GetBool("realtime")
	if interval <= 0 {
		return fmt.Errorf("--interval must be positive (got %v)", interval)
	}

	s, err := loadSession(os.Stderr)
	if err != nil {
		return err
	}
	eng := s.newEngine()
	closeSinks, err := s.attach(cmd.Context(), eng)
	if err != nil {
		eng.Dispose()
		return err
	}
	defer func() {
		eng.Dispose()
		closeSinks()
	}()

	sim := simulation{
		out:      cmd.OutOrStdout(),
		palettes: s.site.Palettes(),
		css:      css,
		interval: interval,
		frame:    s.cfg.FrameInterval(),
		settle:   settle,
	}
	if realtime {
		return sim.runRealtime(cmd.Context(), eng, samples)
	}
	return sim.run(eng, samples, time.Now())
}

// simulation replays samples against an engine on a synthetic clock.
type simulation struct {
	out      io.Writer
	palettes theme.Palettes
	css      bool
	interval time.Duration
	frame    time.Duration
	settle   bool
}

// maxSettleFrames bounds the settle loop.
const maxSettleFrames = 10000

func (sim simulation) run(eng *engine.Engine, samples []float64, start time.Time) error {
	now := start
	for i, p := range samples {
		if p < 0 || p > 1 {
			return fmt.Errorf("progress sample %d out of range [0,1]: %v", i, p)
		}
		if i > 0 {
			now = now.Add(sim.interval)
		}
		snap := eng.Update(metricsAt(p), now)
		sim.print(now.Sub(start), snap)
	}
	if !sim.settle {
		return nil
	}

	for n := 0; n < maxSettleFrames; n++ {
		snap := eng.Snapshot()
		if !snap.IsTransitioning && snap.CurrentTheme == snap.TargetTheme && !snap.IsScrolling {
			break
		}
		now = now.Add(sim.frame)
		next := eng.Frame(now)
		if next != snap {
			sim.print(now.Sub(start), next)
		}
	}
	return nil
}

// runRealtime feeds samples to an engine.Driver at the configured interval
// and prints every published snapshot. With settle set it keeps the driver
// ticking until the engine is idle.
func (sim simulation) runRealtime(ctx context.Context, eng *engine.Engine, samples []float64) error {
	for i, p := range samples {
		if p < 0 || p > 1 {
			return fmt.Errorf("progress sample %d out of range [0,1]: %v", i, p)
		}
	}
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	start := time.Now()
	unsubscribe := eng.Subscribe(func(snap engine.Snapshot) {
		sim.print(time.Since(start).Round(time.Millisecond), snap)
	})
	defer unsubscribe()

	in := make(chan scroll.Metrics)
	go func() {
		defer close(in)
		for i, p := range samples {
			if i > 0 && !sleepCtx(ctx, sim.interval) {
				return
			}
			select {
			case in <- metricsAt(p):
			case <-ctx.Done():
				return
			}
		}
		if !sim.settle {
			return
		}
		for n := 0; n < maxSettleFrames; n++ {
			snap := eng.Snapshot()
			if !snap.IsTransitioning && snap.CurrentTheme == snap.TargetTheme && !snap.IsScrolling {
				return
			}
			if !sleepCtx(ctx, sim.frame) {
				return
			}
		}
	}()

	return engine.NewDriver(eng, sim.frame).Run(ctx, in)
}

// sleepCtx waits for d and reports false if ctx ended first.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return true
	case <-ctx.Done():
		return false
	}
}

func (sim simulation) print(elapsed time.Duration, snap engine.Snapshot) {
	if sim.css {
		fmt.Fprintf(sim.out, "/* +%v */\n%s", elapsed, render.CSSVariables(snap, sim.palettes))
		return
	}
	fmt.Fprintln(sim.out, formatSnapshot(elapsed, snap))
}

// metricsAt converts progress into metrics for the synthetic page.
func metricsAt(p float64) scroll.Metrics {
	return scroll.Metrics{
		ScrollY:        p * (simDocumentHeight - simWindowHeight),
		DocumentHeight: simDocumentHeight,
		WindowHeight:   simWindowHeight,
	}
}

// formatSnapshot renders one snapshot as a single line of key=value pairs.
func formatSnapshot(elapsed time.Duration, snap engine.Snapshot) string {
	return fmt.Sprintf("+%-7v progress=%.3f target=%s current=%s transitioning=%t blend=%.3f scrolling=%t",
		elapsed, snap.ScrollProgress, snap.TargetTheme, snap.CurrentTheme,
		snap.IsTransitioning, snap.TransitionProgress, snap.IsScrolling)
}
