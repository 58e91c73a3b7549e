package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"

	"github.com/papapumpkin/parallax/internal/config"
	"github.com/papapumpkin/parallax/internal/engine"
	"github.com/papapumpkin/parallax/internal/journal"
	"github.com/papapumpkin/parallax/internal/logging"
	"github.com/papapumpkin/parallax/internal/manifest"
	"github.com/papapumpkin/parallax/internal/telemetry"
)

// session bundles what every engine-driving command needs.
type session struct {
	cfg    config.Config
	site   *manifest.Manifest
	logger *log.Logger
}

// loadSession reads the runtime configuration and the site manifest.
// Diagnostics go to logW.
func loadSession(logW io.Writer) (session, error) {
	cfg, err := config.Load()
	if err != nil {
		return session{}, fmt.Errorf("failed to load config: %w", err)
	}
	site, err := manifest.Load(cfg.Manifest)
	if err != nil {
		return session{}, fmt.Errorf("failed to load manifest: %w", err)
	}
	return session{cfg: cfg, site: site, logger: logging.New(logW, cfg.Verbose)}, nil
}

// newEngine builds the engine for the session. Invalid engine settings fall
// back to a static theme instead of failing.
func (s session) newEngine() *engine.Engine {
	ec := s.cfg.EngineConfig(s.site.Thresholds, s.site.ThemeSections())
	ec.Logger = s.logger
	eng := engine.NewOrFallback(ec)
	bounds, _ := s.site.Layout()
	if err := eng.SetLayout(bounds); err != nil {
		s.logger.Warn("section layout rejected", "err", err)
	}
	return eng
}

// attach subscribes the configured telemetry and journal sinks to eng. The
// returned function flushes and closes them; call it after eng.Dispose.
func (s session) attach(ctx context.Context, eng *engine.Engine) (func(), error) {
	var closers []func()
	closeAll := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	if s.cfg.TelemetryPath != "" {
		em, err := telemetry.NewEmitter(s.cfg.TelemetryPath)
		if err != nil {
			return closeAll, err
		}
		rec := telemetry.NewRecorder(em, s.logger)
		rec.Start(eng.Snapshot())
		eng.Subscribe(rec.Observe)
		closers = append(closers, func() {
			rec.Dispose()
			if err := em.Close(); err != nil {
				s.logger.Warn("closing telemetry", "err", err)
			}
		})
	}

	if s.cfg.JournalPath != "" {
		j, err := journal.Open(ctx, s.cfg.JournalPath, s.logger)
		if err != nil {
			closeAll()
			return func() {}, err
		}
		j.Seed(eng.Snapshot().CurrentTheme)
		eng.Subscribe(j.Observe)
		closers = append(closers, func() {
			if err := j.Close(); err != nil {
				s.logger.Warn("closing journal", "err", err)
			}
		})
	}
	return closeAll, nil
}

// isTerminal reports whether stdout is attached to a terminal.
func isTerminal() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
