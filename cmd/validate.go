package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/parallax/internal/config"
	"github.com/papapumpkin/parallax/internal/engine"
	"github.com/papapumpkin/parallax/internal/logging"
	"github.com/papapumpkin/parallax/internal/manifest"
)

// errValidationFailed is returned when any check fails; the details are
// already printed.
var errValidationFailed = errors.New("validation failed")

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the configuration and site manifest",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runValidate(cmd.ErrOrStderr())
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(w io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(w, "✗ config: %v\n", err)
		return errValidationFailed
	}
	fmt.Fprintf(w, "✓ config (mode %s, transition %dms, buffer %.3f)\n", cfg.Mode, cfg.TransitionMs, cfg.HysteresisBuffer)

	site, err := manifest.Load(cfg.Manifest)
	if err != nil {
		fmt.Fprintf(w, "✗ manifest: %v\n", err)
		return errValidationFailed
	}
	fmt.Fprintf(w, "✓ manifest %s: %d themes, %d thresholds, %d sections\n",
		site.Path, len(site.Themes), len(site.Thresholds), len(site.Sections))

	ec := cfg.EngineConfig(site.Thresholds, site.ThemeSections())
	ec.Logger = logging.Discard()
	eng, err := engine.New(ec)
	if err != nil {
		fmt.Fprintf(w, "✗ engine: %v\n", err)
		return errValidationFailed
	}
	defer eng.Dispose()
	fmt.Fprintf(w, "✓ engine starts on theme %q\n", eng.Snapshot().CurrentTheme)
	return nil
}
