package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/papapumpkin/parallax/internal/theme"
)

// Fixed chrome colors. Page colors come from the blended theme palette.
var (
	colorSurface    = lipgloss.Color("#1E1E2E") // Dark surface: status bar bg
	colorSurfaceDim = lipgloss.Color("#181825") // Darkest surface: footer bg
	colorMuted      = lipgloss.Color("#636363") // Gray: de-emphasized
	colorMutedLight = lipgloss.Color("#8C8C8C") // Lighter gray: hint text
	colorWhite      = lipgloss.Color("#EEEEEE") // Off-white: status text
)

// Section marker drawn in the section's own theme accent.
const sectionMarker = "▎"

// Styles is the full style set for one rendered frame.
type Styles struct {
	Palette theme.Palette

	Page         lipgloss.Style
	SectionTitle lipgloss.Style
	Body         lipgloss.Style
	Muted        lipgloss.Style

	StatusBar   lipgloss.Style
	StatusLabel lipgloss.Style
	StatusValue lipgloss.Style

	Footer     lipgloss.Style
	FooterKey  lipgloss.Style
	FooterSep  lipgloss.Style
	FooterDesc lipgloss.Style

	Overlay    lipgloss.Style
	OverlayKey lipgloss.Style
}

// NewStyles derives a style set from p.
func NewStyles(p theme.Palette) Styles {
	bg := theme.Color(p.Background)
	fg := theme.Color(p.Foreground)
	accent := theme.Color(p.Accent)
	muted := theme.Color(p.Muted)
	border := theme.Color(p.Border)

	return Styles{
		Palette: p,

		Page: lipgloss.NewStyle().
			Background(bg).
			Foreground(fg),
		SectionTitle: lipgloss.NewStyle().
			Background(bg).
			Foreground(accent).
			Bold(true),
		Body: lipgloss.NewStyle().
			Background(bg).
			Foreground(fg),
		Muted: lipgloss.NewStyle().
			Background(bg).
			Foreground(muted),

		StatusBar: lipgloss.NewStyle().
			Background(colorSurface).
			Foreground(colorWhite).
			Bold(true).
			Padding(0, 1),
		StatusLabel: lipgloss.NewStyle().
			Background(colorSurface).
			Foreground(accent).
			Bold(true),
		StatusValue: lipgloss.NewStyle().
			Background(colorSurface).
			Foreground(colorWhite),

		Footer: lipgloss.NewStyle().
			Foreground(colorMuted).
			Background(colorSurfaceDim).
			Border(lipgloss.NormalBorder(), true, false, false, false).
			BorderForeground(border),
		FooterKey: lipgloss.NewStyle().
			Foreground(accent).
			Bold(true),
		FooterSep: lipgloss.NewStyle().
			Foreground(colorMuted),
		FooterDesc: lipgloss.NewStyle().
			Foreground(colorMutedLight),

		Overlay: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Background(colorSurface).
			Foreground(colorWhite).
			Padding(0, 1),
		OverlayKey: lipgloss.NewStyle().
			Background(colorSurface).
			Foreground(colorMutedLight),
	}
}

// markerStyle colors a section marker with the accent of the section's theme.
func markerStyle(bg lipgloss.Color, p theme.Palette) lipgloss.Style {
	return lipgloss.NewStyle().Background(bg).Foreground(theme.Color(p.Accent)).Bold(true)
}
