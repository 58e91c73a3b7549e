package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/papapumpkin/parallax/internal/engine"
)

// progressBarWidth is the width of the scroll progress gauge.
const progressBarWidth = 12

// StatusBar renders the top bar: site title, theme state and scroll progress.
type StatusBar struct {
	Title    string
	Snapshot engine.Snapshot
	Width    int
	Styles   Styles
}

// View renders the status bar as a single line. Narrow terminals drop the
// gauge and the mode label.
func (s StatusBar) View() string {
	compact := s.Width < CompactWidth
	st := s.Styles

	const barPadding = 2
	innerWidth := s.Width - barPadding
	if innerWidth < 0 {
		innerWidth = 0
	}

	right := s.renderRight(compact)
	available := innerWidth - lipgloss.Width(right) - 1
	title := TruncateWithEllipsis(s.Title, available)
	left := st.StatusValue.Render(title)

	gap := innerWidth - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}
	fill := lipgloss.NewStyle().Background(colorSurface).Render(strings.Repeat(" ", gap))
	return st.StatusBar.Width(s.Width).Render(left + fill + right)
}

func (s StatusBar) renderRight(compact bool) string {
	st := s.Styles
	snap := s.Snapshot
	sep := st.StatusValue.Render("  ")

	themeLabel := string(snap.CurrentTheme)
	if snap.IsTransitioning {
		themeLabel = fmt.Sprintf("%s→%s %3.0f%%", snap.From, snap.To, snap.TransitionProgress*100)
	}
	segments := []string{st.StatusLabel.Render("theme ") + st.StatusValue.Render(themeLabel)}
	if !compact {
		segments = append(segments, st.StatusLabel.Render(snap.Mode.String()))
		segments = append(segments, st.StatusValue.Render(progressBar(snap.ScrollProgress, progressBarWidth)))
	}
	segments = append(segments, st.StatusValue.Render(fmt.Sprintf("%3.0f%%", snap.ScrollProgress*100)))
	return strings.Join(segments, sep)
}

// progressBar renders p in [0,1] as a fixed-width gauge.
func progressBar(p float64, width int) string {
	if width <= 0 {
		return ""
	}
	filled := int(p*float64(width) + 0.5)
	if filled < 0 {
		filled = 0
	}
	if filled > width {
		filled = width
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}
