package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/papapumpkin/parallax/internal/config"
	"github.com/papapumpkin/parallax/internal/journal"
	"github.com/papapumpkin/parallax/internal/logging"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List committed theme transitions from the journal",
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().String("journal", "", "journal database (default: journal_path from config)")
	historyCmd.Flags().IntP("limit", "n", journal.DefaultLimit, "number of transitions to show")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, _ []string) error {
	path, _ := cmd.Flags().GetString("journal")
	if path == "" {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		path = cfg.JournalPath
	}
	if path == "" {
		return errors.New("no journal configured: set journal_path or pass --journal")
	}
	limit, _ := cmd.Flags().GetInt("limit")

	j, err := journal.Open(cmd.Context(), path, logging.Discard())
	if err != nil {
		return err
	}
	defer j.Close()

	entries, err := j.Recent(cmd.Context(), limit)
	if err != nil {
		return err
	}
	printHistory(cmd.OutOrStdout(), entries)
	return nil
}

var styleHistoryHeader = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var styleHistoryCell = lipgloss.NewStyle().Padding(0, 1)

func printHistory(w io.Writer, entries []journal.Entry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "no transitions recorded")
		return
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("COMMITTED", "FROM", "TO", "MODE", "PROGRESS", "SECTION").
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return styleHistoryHeader
			}
			return styleHistoryCell
		})
	for _, e := range entries {
		t.Row(
			e.CommittedAt.Local().Format("2006-01-02 15:04:05.000"),
			string(e.From),
			string(e.To),
			e.Mode,
			fmt.Sprintf("%.3f", e.ScrollProgress),
			e.Section,
		)
	}
	fmt.Fprintln(w, t.Render())
}
