package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/papapumpkin/parallax/internal/manifest"
	"github.com/papapumpkin/parallax/internal/tui"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Open the site in the terminal viewer",
	Long: `Renders the manifest's sections as a scrollable page. Scrolling drives the theme
engine and the page palette follows its snapshots. The manifest is watched and
section or palette edits are applied live.`,
	Args: cobra.NoArgs,
	RunE: runView,
}

func init() {
	runCmd.Flags().Bool("no-watch", false, "do not reload the manifest on change")
	runCmd.Flags().String("log-file", "", "write diagnostics to this file while the viewer is open")
	runCmd.Flags().Bool("reduce-motion", false, "paint the committed theme without blending")
	_ = viper.BindPFlag("reduce_motion", runCmd.Flags().Lookup("reduce-motion"))
	rootCmd.AddCommand(runCmd)
}

func runView(cmd *cobra.Command, _ []string) error {
	if !isTerminal() {
		return fmt.Errorf("parallax run requires a TTY (terminal); use parallax simulate for headless output")
	}

	// The viewer owns the terminal, so diagnostics only go to a file.
	var logW io.Writer = io.Discard
	if path, _ := cmd.Flags().GetString("log-file"); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		logW = f
	}

	s, err := loadSession(logW)
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

	var changes <-chan manifest.Change
	if noWatch, _ := cmd.Flags().GetBool("no-watch"); !noWatch {
		w, err := manifest.NewWatcher(s.site.Path)
		if err == nil {
			err = w.Start()
		}
		if err != nil {
			s.logger.Warn("manifest hot reload disabled", "err", err)
		} else {
			defer w.Stop()
			changes = w.Changes
		}
	}

	return tui.Run(tui.Options{
		Manifest:      s.site,
		Engine:        eng,
		FrameInterval: s.cfg.FrameInterval(),
		ReduceMotion:  s.cfg.ReduceMotion,
		Changes:       changes,
		Logger:        s.logger,
	})
}
