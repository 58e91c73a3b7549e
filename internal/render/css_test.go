package render

import (
	"strings"
	"testing"

	"github.com/papapumpkin/parallax/internal/engine"
	"github.com/papapumpkin/parallax/internal/theme"
)

var testPalettes = theme.Palettes{
	"dark":  {Background: "#000000", Foreground: "#ffffff", Accent: "#ff0000", Muted: "#333333", Border: "#111111"},
	"light": {Background: "#ffffff", Foreground: "#000000", Accent: "#0000ff", Muted: "#cccccc", Border: "#eeeeee"},
}

func TestCurrent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		snap   engine.Snapshot
		wantBG string
	}{
		{"idle uses committed theme", engine.Snapshot{CurrentTheme: "light", From: "light", To: "light"}, "#ffffff"},
		{"transition start is the from palette", engine.Snapshot{CurrentTheme: "dark", IsTransitioning: true, From: "dark", To: "light"}, "#000000"},
		{"transition end is the to palette", engine.Snapshot{CurrentTheme: "dark", IsTransitioning: true, TransitionProgress: 1, From: "dark", To: "light"}, "#ffffff"},
		{"unknown theme uses default", engine.Snapshot{CurrentTheme: "missing"}, theme.DefaultPalette.Background},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Current(tt.snap, testPalettes).Background; got != tt.wantBG {
				t.Errorf("Background = %q, want %q", got, tt.wantBG)
			}
		})
	}
}

func TestCurrent_MidTransitionIsBetween(t *testing.T) {
	t.Parallel()
	snap := engine.Snapshot{CurrentTheme: "dark", IsTransitioning: true, TransitionProgress: 0.5, From: "dark", To: "light"}
	bg := Current(snap, testPalettes).Background
	if bg == "#000000" || bg == "#ffffff" {
		t.Errorf("Background at 0.5 = %q, want an intermediate color", bg)
	}
}

func TestCSSVariables(t *testing.T) {
	t.Parallel()
	snap := engine.Snapshot{CurrentTheme: "dark", TargetTheme: "light", IsTransitioning: true, TransitionProgress: 0.25, ScrollProgress: 0.42, From: "dark", To: "light"}
	css := CSSVariables(snap, testPalettes)

	for _, want := range []string{
		":root {\n",
		"  --theme-current: dark;\n",
		"  --theme-target: light;\n",
		"  --theme-transition-progress: 0.250;\n",
		"  --scroll-progress: 0.420;\n",
		"  --theme-background: #",
	} {
		if !strings.Contains(css, want) {
			t.Errorf("CSSVariables() missing %q:\n%s", want, css)
		}
	}
	if !strings.HasSuffix(css, "}\n") {
		t.Errorf("CSSVariables() not closed:\n%s", css)
	}
}

func TestThemeRules_SortedByName(t *testing.T) {
	t.Parallel()
	css := ThemeRules(testPalettes)
	dark := strings.Index(css, `[data-theme="dark"]`)
	light := strings.Index(css, `[data-theme="light"]`)
	if dark < 0 || light < 0 || dark > light {
		t.Errorf("ThemeRules() order wrong:\n%s", css)
	}
}

func TestThemeClasses(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		snap engine.Snapshot
		want []string
	}{
		{"idle", engine.Snapshot{CurrentTheme: "Dark"}, []string{"theme-dark"}},
		{"transitioning", engine.Snapshot{CurrentTheme: "dark", IsTransitioning: true, To: "light"}, []string{"theme-dark", "is-transitioning", "theme-to-light"}},
		{"scrolling", engine.Snapshot{CurrentTheme: "dark", IsScrolling: true}, []string{"theme-dark", "is-scrolling"}},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := ThemeClasses(tt.snap)
			if strings.Join(got, " ") != strings.Join(tt.want, " ") {
				t.Errorf("ThemeClasses() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestClassName(t *testing.T) {
	t.Parallel()
	if got := ClassName("Night Mode!"); got != "night-mode-" {
		t.Errorf("ClassName() = %q", got)
	}
}
