package theme

import (
	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Palette holds the hex colors a consumer blends between while a transition
// is in flight.
type Palette struct {
	Background string `toml:"background" json:"background"`
	Foreground string `toml:"foreground" json:"foreground"`
	Accent     string `toml:"accent" json:"accent"`
	Muted      string `toml:"muted" json:"muted"`
	Border     string `toml:"border" json:"border"`
}

// DefaultPalette is used for themes that have no palette configured.
var DefaultPalette = Palette{
	Background: "#1E1E2E",
	Foreground: "#EEEEEE",
	Accent:     "#00BFFF",
	Muted:      "#636363",
	Border:     "#8C8C8C",
}

// Palettes maps each theme to its palette.
type Palettes map[Theme]Palette

// For returns the palette for t, or DefaultPalette.
func (p Palettes) For(t Theme) Palette {
	if pal, ok := p[t]; ok {
		return pal
	}
	return DefaultPalette
}

// Blend interpolates every color of from toward to in CIE-L*a*b* space.
// progress is clamped to [0,1].
func Blend(from, to Palette, progress float64) Palette {
	return Palette{
		Background: blendHex(from.Background, to.Background, progress),
		Foreground: blendHex(from.Foreground, to.Foreground, progress),
		Accent:     blendHex(from.Accent, to.Accent, progress),
		Muted:      blendHex(from.Muted, to.Muted, progress),
		Border:     blendHex(from.Border, to.Border, progress),
	}
}

func blendHex(a, b string, t float64) string {
	switch {
	case t <= 0:
		return a
	case t >= 1:
		return b
	}
	ca, errA := colorful.Hex(a)
	cb, errB := colorful.Hex(b)
	if errA != nil || errB != nil {
		// Unparseable colors snap at the midpoint.
		if t < 0.5 {
			return a
		}
		return b
	}
	return ca.BlendLab(cb, t).Clamped().Hex()
}

// Color converts a palette hex string into a lipgloss color.
func Color(hex string) lipgloss.Color {
	return lipgloss.Color(hex)
}
