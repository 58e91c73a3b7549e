// Package render turns engine snapshots into style output: CSS custom
// properties, theme class toggles, and a static HTML export of the site.
package render

import (
	"fmt"
	"sort"
	"strings"

	"github.com/papapumpkin/parallax/internal/engine"
	"github.com/papapumpkin/parallax/internal/theme"
)

// VarPrefix prefixes every palette custom property.
const VarPrefix = "--theme-"

// Current returns the palette a consumer should paint for snap: the
// transition's endpoints blended by TransitionProgress, or the committed
// theme's palette when idle.
func Current(snap engine.Snapshot, palettes theme.Palettes) theme.Palette {
	if !snap.IsTransitioning {
		return palettes.For(snap.CurrentTheme)
	}
	return theme.Blend(palettes.For(snap.From), palettes.For(snap.To), snap.TransitionProgress)
}

// Variables returns the custom properties for snap in declaration order.
func Variables(snap engine.Snapshot, palettes theme.Palettes) [][2]string {
	p := Current(snap, palettes)
	return [][2]string{
		{VarPrefix + "background", p.Background},
		{VarPrefix + "foreground", p.Foreground},
		{VarPrefix + "accent", p.Accent},
		{VarPrefix + "muted", p.Muted},
		{VarPrefix + "border", p.Border},
		{VarPrefix + "current", string(snap.CurrentTheme)},
		{VarPrefix + "target", string(snap.TargetTheme)},
		{VarPrefix + "transition-progress", fmt.Sprintf("%.3f", snap.TransitionProgress)},
		{"--scroll-progress", fmt.Sprintf("%.3f", snap.ScrollProgress)},
	}
}

// CSSVariables renders snap as a ":root" rule.
func CSSVariables(snap engine.Snapshot, palettes theme.Palettes) string {
	return Rule(":root", Variables(snap, palettes))
}

// Rule renders one CSS rule from ordered property pairs.
func Rule(selector string, props [][2]string) string {
	var b strings.Builder
	b.WriteString(selector)
	b.WriteString(" {\n")
	for _, kv := range props {
		fmt.Fprintf(&b, "  %s: %s;\n", kv[0], kv[1])
	}
	b.WriteString("}\n")
	return b.String()
}

// ThemeRules renders one rule per palette, scoped by data-theme, sorted by
// theme name.
func ThemeRules(palettes theme.Palettes) string {
	names := make([]string, 0, len(palettes))
	for t := range palettes {
		names = append(names, string(t))
	}
	sort.Strings(names)

	var b strings.Builder
	for _, name := range names {
		p := palettes[theme.Theme(name)]
		b.WriteString(Rule(fmt.Sprintf("[data-theme=%q]", name), [][2]string{
			{VarPrefix + "background", p.Background},
			{VarPrefix + "foreground", p.Foreground},
			{VarPrefix + "accent", p.Accent},
			{VarPrefix + "muted", p.Muted},
			{VarPrefix + "border", p.Border},
		}))
	}
	return b.String()
}

// ThemeClasses returns the class toggles for the document root: the
// committed theme, and while animating the transition marker and its target.
func ThemeClasses(snap engine.Snapshot) []string {
	classes := []string{"theme-" + ClassName(snap.CurrentTheme)}
	if snap.IsTransitioning {
		classes = append(classes, "is-transitioning", "theme-to-"+ClassName(snap.To))
	}
	if snap.IsScrolling {
		classes = append(classes, "is-scrolling")
	}
	return classes
}

// ClassName lowercases t and replaces characters that are not valid in a
// CSS class name with '-'.
func ClassName(t theme.Theme) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		default:
			return '-'
		}
	}, string(t))
}
