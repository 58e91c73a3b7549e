// Package tui is the terminal viewer: a scrollable page whose palette
// follows the theme transition engine frame by frame.
package tui

import (
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
)

// Program is an alias for tea.Program, exposed so callers don't need
// to import bubbletea directly.
type Program = tea.Program

// NewProgram creates a BubbleTea program for the viewer. The program uses
// the alternate screen buffer and mouse wheel events.
func NewProgram(opts Options, progOpts ...tea.ProgramOption) *Program {
	allOpts := []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	}
	allOpts = append(allOpts, progOpts...)
	return tea.NewProgram(NewModel(opts), allOpts...)
}

// Run creates and runs the viewer, blocking until it exits.
func Run(opts Options, progOpts ...tea.ProgramOption) error {
	if _, err := NewProgram(opts, progOpts...).Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}

// WithOutput returns a program option that directs TUI output to the given writer.
func WithOutput(w io.Writer) tea.ProgramOption {
	return tea.WithOutput(w)
}

// WithInput returns a program option that reads TUI input from r.
func WithInput(r io.Reader) tea.ProgramOption {
	return tea.WithInput(r)
}
