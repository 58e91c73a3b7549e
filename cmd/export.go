package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/parallax/internal/render"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the site as a static HTML page",
	Long: `Renders every section of the manifest to HTML. Section bodies are Markdown;
each section carries its data-theme attribute and every theme's palette is
emitted as CSS custom properties.`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringP("out", "o", "", "output file (default stdout)")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, _ []string) error {
	s, err := loadSession(cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	var w io.Writer = cmd.OutOrStdout()
	if out, _ := cmd.Flags().GetString("out"); out != "" {
		f, err := os.Create(out)
		if err != nil {
			return fmt.Errorf("export: create %s: %w", out, err)
		}
		defer f.Close()
		w = f
	}
	if err := render.Export(w, s.site); err != nil {
		return err
	}
	s.logger.Debug("export written", "sections", len(s.site.Sections))
	return nil
}
