package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/papapumpkin/parallax/internal/manifest"
	"github.com/papapumpkin/parallax/internal/theme"
	"github.com/papapumpkin/parallax/internal/visibility"
)

// renderPage lays the manifest sections out top to bottom at width and
// returns the page content with each section's row bounds. A section is at
// least its declared height tall and grows to fit its wrapped body.
func renderPage(m *manifest.Manifest, palettes theme.Palettes, st Styles, width int) (string, map[string]visibility.Bounds) {
	bounds := make(map[string]visibility.Bounds, len(m.Sections))
	var lines []string
	for _, s := range m.Sections {
		block := renderSection(s, palettes.For(s.Theme), st, width)
		bounds[s.ID] = visibility.Bounds{Top: float64(len(lines)), Height: float64(len(block))}
		lines = append(lines, block...)
	}
	return strings.Join(lines, "\n"), bounds
}

func renderSection(s manifest.SectionSpec, own theme.Palette, st Styles, width int) []string {
	bg := theme.Color(st.Palette.Background)
	inner := width - 2*sectionPadX
	if inner < 1 {
		inner = 1
	}
	indent := st.Page.Render(strings.Repeat(" ", sectionPadX))

	raw := []string{""}
	if s.Title != "" {
		raw = append(raw, markerStyle(bg, own).Render(sectionMarker)+st.SectionTitle.Render(" "+s.Title), "")
	}
	if body := strings.TrimSpace(s.Body); body != "" {
		wrapped := lipgloss.NewStyle().Width(inner).Render(body)
		for _, line := range strings.Split(wrapped, "\n") {
			raw = append(raw, st.Body.Render(line))
		}
	}
	raw = append(raw, "")
	for len(raw) < s.Height {
		raw = append(raw, "")
	}

	out := make([]string, len(raw))
	for i, line := range raw {
		out[i] = padToWidth(indent+line, width, bg)
	}
	return out
}
