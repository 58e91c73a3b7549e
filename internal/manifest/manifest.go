// Package manifest loads the site description: the themes and their
// palettes, the scroll thresholds, and the ordered page sections.
package manifest

import (
	"fmt"
	"os"

	colorful "github.com/lucasb-eyer/go-colorful"
	toml "github.com/pelletier/go-toml/v2"

	"github.com/papapumpkin/parallax/internal/theme"
	"github.com/papapumpkin/parallax/internal/visibility"
)

// DefaultFile is the manifest looked up when no path is configured.
const DefaultFile = "parallax.toml"

// DefaultSectionHeight is used for sections that do not declare a height.
const DefaultSectionHeight = 12

// Manifest is the parsed parallax.toml.
type Manifest struct {
	Title      string            `toml:"title"`
	Themes     []ThemeSpec       `toml:"themes"`
	Thresholds []theme.Threshold `toml:"thresholds"`
	Sections   []SectionSpec     `toml:"sections"`

	// Path is the file the manifest was loaded from, if any.
	Path string `toml:"-"`
}

// ThemeSpec declares a theme and its palette.
type ThemeSpec struct {
	Name    theme.Theme   `toml:"name"`
	Palette theme.Palette `toml:"palette"`
}

// SectionSpec is one page section.
type SectionSpec struct {
	ID     string      `toml:"id"`
	Theme  theme.Theme `toml:"theme"`
	Title  string      `toml:"title"`
	Body   string      `toml:"body"`
	Height int         `toml:"height"`
}

// Load reads and validates the manifest at path.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNoManifest, path)
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	m.Path = path
	return m, nil
}

// Parse decodes and validates manifest TOML.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest: %w", err)
	}
	for i := range m.Sections {
		if m.Sections[i].Height == 0 {
			m.Sections[i].Height = DefaultSectionHeight
		}
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Validate checks thresholds, sections and palettes.
func (m *Manifest) Validate() error {
	if _, err := theme.NewThresholdMap(m.Thresholds); err != nil {
		return err
	}
	if err := theme.ValidateSections(m.ThemeSections()); err != nil {
		return err
	}
	for i, s := range m.Sections {
		if s.Height < 0 {
			return fmt.Errorf("sections[%d]: %w", i, ErrNegativeHeight)
		}
	}

	declared := make(map[theme.Theme]bool, len(m.Themes))
	for i, ts := range m.Themes {
		if ts.Name == "" {
			return fmt.Errorf("themes[%d]: %w", i, theme.ErrEmptyTheme)
		}
		if declared[ts.Name] {
			return fmt.Errorf("themes[%d]: %w: %q", i, ErrDuplicateTheme, ts.Name)
		}
		declared[ts.Name] = true
		if err := validatePalette(ts.Palette); err != nil {
			return fmt.Errorf("themes[%d] %q: %w", i, ts.Name, err)
		}
	}
	if len(m.Themes) == 0 {
		return nil
	}

	for i, t := range m.Thresholds {
		if !declared[t.Theme] {
			return fmt.Errorf("thresholds[%d]: %w: %q", i, ErrUndeclaredTheme, t.Theme)
		}
	}
	for i, s := range m.Sections {
		if !declared[s.Theme] {
			return fmt.Errorf("sections[%d]: %w: %q", i, ErrUndeclaredTheme, s.Theme)
		}
	}
	return nil
}

func validatePalette(p theme.Palette) error {
	for _, c := range []string{p.Background, p.Foreground, p.Accent, p.Muted, p.Border} {
		if c == "" {
			continue
		}
		if _, err := colorful.Hex(c); err != nil {
			return fmt.Errorf("%w: %q", ErrInvalidColor, c)
		}
	}
	return nil
}

// ThresholdMap builds the validated threshold map.
func (m *Manifest) ThresholdMap() (theme.ThresholdMap, error) {
	return theme.NewThresholdMap(m.Thresholds)
}

// ThemeSections returns the engine-facing section descriptors in page order.
func (m *Manifest) ThemeSections() []theme.Section {
	out := make([]theme.Section, len(m.Sections))
	for i, s := range m.Sections {
		out[i] = theme.Section{ID: s.ID, Theme: s.Theme}
	}
	return out
}

// Palettes returns the palette of every declared theme. Empty palette fields
// are filled from theme.DefaultPalette.
func (m *Manifest) Palettes() theme.Palettes {
	out := make(theme.Palettes, len(m.Themes))
	for _, ts := range m.Themes {
		out[ts.Name] = withDefaults(ts.Palette)
	}
	return out
}

// Layout stacks sections top to bottom using their declared heights and
// returns their bounds along with the total document height.
func (m *Manifest) Layout() (map[string]visibility.Bounds, float64) {
	bounds := make(map[string]visibility.Bounds, len(m.Sections))
	top := 0.0
	for _, s := range m.Sections {
		h := float64(s.Height)
		bounds[s.ID] = visibility.Bounds{Top: top, Height: h}
		top += h
	}
	return bounds, top
}

func withDefaults(p theme.Palette) theme.Palette {
	d := theme.DefaultPalette
	if p.Background == "" {
		p.Background = d.Background
	}
	if p.Foreground == "" {
		p.Foreground = d.Foreground
	}
	if p.Accent == "" {
		p.Accent = d.Accent
	}
	if p.Muted == "" {
		p.Muted = d.Muted
	}
	if p.Border == "" {
		p.Border = d.Border
	}
	return p
}
