// Package logging builds the diagnostic logger shared by the engine and the
// command-line front end.
package logging

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// Prefix tags every diagnostic line.
const Prefix = "parallax"

// New returns a logger writing to w. Verbose enables debug output.
func New(w io.Writer, verbose bool) *log.Logger {
	l := log.NewWithOptions(w, log.Options{
		Prefix:          Prefix,
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
	})
	if verbose {
		l.SetLevel(log.DebugLevel)
	}
	return l
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel})
}
