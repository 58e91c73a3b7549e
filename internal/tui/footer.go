package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

// Footer renders keybinding hints.
type Footer struct {
	Width    int
	Bindings []key.Binding
	Styles   Styles
}

// View renders the footer as a single line of keybinding hints.
// In compact mode (narrow terminals), shows only key hints without descriptions.
func (f Footer) View() string {
	compact := f.Width < CompactWidth
	st := f.Styles

	var parts []string
	for _, b := range f.Bindings {
		if !b.Enabled() {
			continue
		}
		help := b.Help()
		if compact {
			parts = append(parts, st.FooterKey.Render(help.Key))
			continue
		}
		parts = append(parts, st.FooterKey.Render(help.Key)+st.FooterSep.Render(":")+st.FooterDesc.Render(help.Desc))
	}
	sep := st.FooterSep.Render("  ")
	if compact {
		sep = st.FooterSep.Render(" ")
	}
	return st.Footer.Width(f.Width).Render(strings.Join(parts, sep))
}
