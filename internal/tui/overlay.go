package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/papapumpkin/parallax/internal/engine"
	"github.com/papapumpkin/parallax/internal/visibility"
)

// maxOverlayRatios caps the visibility rows shown in the debug overlay.
const maxOverlayRatios = 3

// debugOverlay renders the snapshot fields and section ratios in a box.
func debugOverlay(snap engine.Snapshot, ranked []visibility.Entry, st Styles) string {
	row := func(k, v string) string {
		return st.OverlayKey.Render(fmt.Sprintf("%-10s", k)) + " " + v
	}
	rows := []string{
		row("current", string(snap.CurrentTheme)),
		row("target", string(snap.TargetTheme)),
		row("blend", fmt.Sprintf("%s→%s %.3f", snap.From, snap.To, snap.TransitionProgress)),
		row("scroll", fmt.Sprintf("%.3f", snap.ScrollProgress)),
		row("scrolling", fmt.Sprintf("%t", snap.IsScrolling)),
		row("mode", snap.Mode.String()),
		row("dominant", snap.DominantSection),
	}
	for i, e := range ranked {
		if i == maxOverlayRatios {
			break
		}
		rows = append(rows, row("  "+e.ID, fmt.Sprintf("%.2f", e.Ratio)))
	}
	return st.Overlay.Render(strings.Join(rows, "\n"))
}

// placeBottomRight draws box over the bottom-right corner of base, which
// must be width columns wide.
func placeBottomRight(base, box string, width int) string {
	baseLines := strings.Split(base, "\n")
	boxLines := strings.Split(box, "\n")
	boxWidth := lipgloss.Width(box)
	if boxWidth >= width || len(boxLines) > len(baseLines) {
		return base
	}
	offset := len(baseLines) - len(boxLines)
	for i, bl := range boxLines {
		left := truncateVisible(baseLines[offset+i], width-boxWidth)
		baseLines[offset+i] = left + bl
	}
	return strings.Join(baseLines, "\n")
}

// truncateVisible keeps the first n visible columns of a styled line.
func truncateVisible(s string, n int) string {
	return lipgloss.NewStyle().MaxWidth(n).Inline(true).Render(s) + strings.Repeat(" ", max(0, n-lipgloss.Width(s)))
}
