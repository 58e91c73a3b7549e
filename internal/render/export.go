package render

import (
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/russross/blackfriday/v2"

	"github.com/papapumpkin/parallax/internal/engine"
	"github.com/papapumpkin/parallax/internal/manifest"
	"github.com/papapumpkin/parallax/internal/theme"
)

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
{{.RootCSS}}
{{.ThemeCSS}}
body { margin: 0; background: var(--theme-background); color: var(--theme-foreground); }
section { padding: 2rem; background: var(--theme-background); color: var(--theme-foreground); border-bottom: 1px solid var(--theme-border); }
section h2 { color: var(--theme-accent); }
</style>
</head>
<body class="{{.Classes}}" data-theme="{{.Initial}}">
{{- range .Sections}}
<section id="{{.ID}}" data-theme="{{.Theme}}" style="min-height: calc({{.Height}} * 1.5rem)">
{{- if .Title}}
<h2>{{.Title}}</h2>
{{- end}}
{{.Body}}
</section>
{{- end}}
</body>
</html>
`))

type exportSection struct {
	ID     string
	Theme  string
	Title  string
	Body   template.HTML
	Height int
}

type exportPage struct {
	Title     string
	RootCSS   template.CSS
	ThemeCSS  template.CSS
	Classes   string
	Initial   string
	Sections  []exportSection
}

// Markdown renders a section body to HTML.
func Markdown(body string) template.HTML {
	return template.HTML(blackfriday.Run([]byte(body))) //nolint:gosec // manifest bodies are author-controlled
}

// Export writes a standalone HTML page for m. Each section carries its
// data-theme attribute and the root starts in the progress-0 theme.
func Export(w io.Writer, m *manifest.Manifest) error {
	thresholds, err := m.ThresholdMap()
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	initial := thresholds.Default()
	palettes := m.Palettes()
	snap := initialSnapshot(initial)

	page := exportPage{
		Title:     m.Title,
		RootCSS:   template.CSS(CSSVariables(snap, palettes)),
		ThemeCSS:  template.CSS(ThemeRules(palettes)),
		Classes:   joinClasses(ThemeClasses(snap)),
		Initial:   string(initial),
	}
	for _, s := range m.Sections {
		page.Sections = append(page.Sections, exportSection{
			ID:     s.ID,
			Theme:  string(s.Theme),
			Title:  s.Title,
			Body:   Markdown(s.Body),
			Height: s.Height,
		})
	}
	if err := pageTemplate.Execute(w, page); err != nil {
		return fmt.Errorf("render: export page: %w", err)
	}
	return nil
}

func initialSnapshot(t theme.Theme) engine.Snapshot {
	return engine.Snapshot{CurrentTheme: t, TargetTheme: t, From: t, To: t}
}

func joinClasses(classes []string) string { return strings.Join(classes, " ") }
