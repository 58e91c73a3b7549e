package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/papapumpkin/parallax/internal/theme"
)

func TestChromeColorsDefined(t *testing.T) {
	t.Parallel()
	colors := map[string]lipgloss.Color{
		"colorSurface":    colorSurface,
		"colorSurfaceDim": colorSurfaceDim,
		"colorMuted":      colorMuted,
		"colorMutedLight": colorMutedLight,
		"colorWhite":      colorWhite,
	}
	for name, c := range colors {
		if string(c) == "" {
			t.Errorf("%s is empty", name)
		}
	}
}

func TestNewStyles_UsesPalette(t *testing.T) {
	t.Parallel()
	p := theme.Palette{Background: "#000000", Foreground: "#ffffff", Accent: "#ff0000", Muted: "#333333", Border: "#111111"}
	st := NewStyles(p)

	tests := []struct {
		name string
		got  any
		want lipgloss.Color
	}{
		{"page background", st.Page.GetBackground(), "#000000"},
		{"page foreground", st.Page.GetForeground(), "#ffffff"},
		{"title accent", st.SectionTitle.GetForeground(), "#ff0000"},
		{"muted", st.Muted.GetForeground(), "#333333"},
		{"footer border", st.Footer.GetBorderTopForeground(), "#111111"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if tt.got != tt.want {
				t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
			}
		})
	}
}

func TestStatusBarStyleProperties(t *testing.T) {
	t.Parallel()
	st := NewStyles(theme.DefaultPalette)
	if _, noColor := st.StatusBar.GetBackground().(lipgloss.NoColor); noColor {
		t.Error("status bar should have a background color set")
	}
	if !st.StatusBar.GetBold() {
		t.Error("status bar should be bold")
	}
}

func TestFooterStyleHasTopBorder(t *testing.T) {
	t.Parallel()
	st := NewStyles(theme.DefaultPalette)
	if !st.Footer.GetBorderTop() {
		t.Error("footer should have a top border")
	}
	if st.Footer.GetBorderBottom() || st.Footer.GetBorderLeft() || st.Footer.GetBorderRight() {
		t.Error("footer should have only a top border")
	}
}

func TestOverlayBorderIsRounded(t *testing.T) {
	t.Parallel()
	st := NewStyles(theme.DefaultPalette)
	border := st.Overlay.GetBorderStyle()
	rounded := lipgloss.RoundedBorder()
	if border.TopLeft != rounded.TopLeft || border.TopRight != rounded.TopRight {
		t.Error("debug overlay should use rounded border")
	}
}

func TestFooterRendersKeyDescParts(t *testing.T) {
	t.Parallel()
	km := DefaultKeyMap()
	f := Footer{Width: 120, Bindings: FooterBindings(km), Styles: NewStyles(theme.DefaultPalette)}
	view := f.View()
	for _, want := range []string{"q", "quit", "d", "debug"} {
		if !strings.Contains(view, want) {
			t.Errorf("footer missing %q: %q", want, view)
		}
	}
}

func TestFooterCompactDropsDescriptions(t *testing.T) {
	t.Parallel()
	km := DefaultKeyMap()
	f := Footer{Width: CompactWidth - 1, Bindings: FooterBindings(km), Styles: NewStyles(theme.DefaultPalette)}
	if view := f.View(); strings.Contains(view, "quit") {
		t.Errorf("compact footer should omit descriptions: %q", view)
	}
}
