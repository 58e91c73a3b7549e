package tui

import (
	"fmt"
	"slices"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/papapumpkin/parallax/internal/engine"
	"github.com/papapumpkin/parallax/internal/logging"
	"github.com/papapumpkin/parallax/internal/manifest"
	"github.com/papapumpkin/parallax/internal/render"
	"github.com/papapumpkin/parallax/internal/scroll"
	"github.com/papapumpkin/parallax/internal/theme"
	"github.com/papapumpkin/parallax/internal/visibility"
)

// DefaultFrameInterval is used when Options.FrameInterval is zero.
const DefaultFrameInterval = 16 * time.Millisecond

// Options configures the viewer.
type Options struct {
	Manifest      *manifest.Manifest
	Engine        *engine.Engine
	FrameInterval time.Duration
	// ReduceMotion paints the committed theme instead of blending.
	ReduceMotion bool
	// Changes delivers manifest reloads; nil disables hot reload.
	Changes <-chan manifest.Change
	Logger  *log.Logger
}

// Model is the root BubbleTea model: a scrollable page whose colors follow
// the engine's snapshots.
type Model struct {
	Engine   *engine.Engine
	Manifest *manifest.Manifest
	Palettes theme.Palettes
	Snapshot engine.Snapshot
	Keys     KeyMap
	Width    int
	Height   int
	Debug    bool

	reduceMotion bool
	frame        time.Duration
	changes      <-chan manifest.Change
	logger       *log.Logger
	now          func() time.Time

	viewport viewport.Model
	styles   Styles
	painted  theme.Palette
}

// NewModel creates the viewer model.
func NewModel(opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	frame := opts.FrameInterval
	if frame <= 0 {
		frame = DefaultFrameInterval
	}
	m := Model{
		Engine:       opts.Engine,
		Manifest:     opts.Manifest,
		Palettes:     opts.Manifest.Palettes(),
		Snapshot:     opts.Engine.Snapshot(),
		Keys:         DefaultKeyMap(),
		reduceMotion: opts.ReduceMotion,
		frame:        frame,
		changes:      opts.Changes,
		logger:       logger,
		now:          time.Now,
		viewport:     viewport.New(0, 0),
	}
	m.styles = NewStyles(m.palette())
	m.painted = m.styles.Palette
	return m
}

// Init starts the frame loop and, when enabled, the manifest listener.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{frameCmd(m.frame)}
	if m.changes != nil {
		cmds = append(cmds, waitForChange(m.changes))
	}
	return tea.Batch(cmds...)
}

// frameCmd schedules the next animation frame.
func frameCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return MsgFrame{Time: t}
	})
}

// waitForChange blocks on the next manifest reload.
func waitForChange(ch <-chan manifest.Change) tea.Cmd {
	return func() tea.Msg {
		c, ok := <-ch
		if !ok {
			return nil
		}
		return MsgManifestChanged{Manifest: c.Manifest, Err: c.Err}
	}
}

// Update handles all messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.viewport.Width = msg.Width
		m.viewport.Height = pageHeight(msg.Height)
		m.relayout()
		m.sample()

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		before := m.viewport.YOffset
		m.viewport, _ = m.viewport.Update(msg)
		if m.viewport.YOffset != before {
			m.sample()
		}

	case MsgFrame:
		m.apply(m.Engine.Frame(msg.Time))
		return m, frameCmd(m.frame)

	case MsgManifestChanged:
		m.handleManifest(msg)
		if m.changes != nil {
			return m, waitForChange(m.changes)
		}
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	before := m.viewport.YOffset
	switch {
	case key.Matches(msg, m.Keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.Keys.Debug):
		m.Debug = !m.Debug
		return m, nil
	case key.Matches(msg, m.Keys.Up):
		m.viewport.LineUp(1)
	case key.Matches(msg, m.Keys.Down):
		m.viewport.LineDown(1)
	case key.Matches(msg, m.Keys.PageUp):
		m.viewport.SetYOffset(m.viewport.YOffset - m.viewport.Height)
	case key.Matches(msg, m.Keys.PageDown):
		m.viewport.SetYOffset(m.viewport.YOffset + m.viewport.Height)
	case key.Matches(msg, m.Keys.Top):
		m.viewport.GotoTop()
	case key.Matches(msg, m.Keys.Bottom):
		m.viewport.GotoBottom()
	}
	if m.viewport.YOffset != before {
		m.sample()
	}
	return m, nil
}

// handleManifest swaps in a reloaded manifest. Sections and palettes are
// replaced; the engine keeps the thresholds it was built with.
func (m *Model) handleManifest(msg MsgManifestChanged) {
	if msg.Err != nil {
		m.logger.Warn("manifest reload failed, keeping previous", "err", msg.Err)
		return
	}
	next := msg.Manifest
	if !slices.Equal(next.Thresholds, m.Manifest.Thresholds) {
		m.logger.Warn("threshold changes take effect on restart")
	}
	if err := m.Engine.SetSections(next.ThemeSections()); err != nil {
		m.logger.Warn("manifest sections rejected", "err", err)
		return
	}
	m.Manifest = next
	m.Palettes = next.Palettes()
	m.logger.Info("manifest reloaded", "sections", len(next.Sections))
	m.painted = theme.Palette{}
	m.relayout()
	m.sample()
}

// sample feeds the current viewport position to the engine.
func (m *Model) sample() {
	m.apply(m.Engine.Update(m.Metrics(), m.now()))
}

// Metrics reports the viewport as scroll metrics, one unit per row.
func (m Model) Metrics() scroll.Metrics {
	return scroll.Metrics{
		ScrollY:        float64(m.viewport.YOffset),
		DocumentHeight: float64(m.viewport.TotalLineCount()),
		WindowHeight:   float64(m.viewport.Height),
	}
}

// apply stores snap and repaints the page when the visible palette changed.
func (m *Model) apply(snap engine.Snapshot) {
	m.Snapshot = snap
	if p := m.palette(); p != m.painted {
		m.styles = NewStyles(p)
		m.painted = p
		m.repaint()
	}
}

// palette is the palette to paint for the current snapshot.
func (m Model) palette() theme.Palette {
	if m.reduceMotion {
		return m.Palettes.For(m.Snapshot.CurrentTheme)
	}
	return render.Current(m.Snapshot, m.Palettes)
}

// relayout re-renders the page and pushes the new section bounds.
func (m *Model) relayout() {
	m.styles = NewStyles(m.palette())
	m.painted = m.styles.Palette
	bounds := m.repaint()
	if err := m.Engine.SetLayout(bounds); err != nil {
		m.logger.Warn("section layout rejected", "err", err)
	}
}

func (m *Model) repaint() map[string]visibility.Bounds {
	if m.Width == 0 {
		return nil
	}
	content, bounds := renderPage(m.Manifest, m.Palettes, m.styles, m.Width)
	m.viewport.SetContent(content)
	return bounds
}

// View renders the status bar, the page, and the footer.
func (m Model) View() string {
	if m.Width == 0 {
		return "initializing..."
	}
	if m.Width < MinWidth || m.Height < MinHeight {
		return fmt.Sprintf("Terminal too small (%dx%d). Minimum: %dx%d", m.Width, m.Height, MinWidth, MinHeight)
	}

	status := StatusBar{Title: m.Manifest.Title, Snapshot: m.Snapshot, Width: m.Width, Styles: m.styles}
	page := m.viewport.View()
	if m.Debug {
		page = placeBottomRight(page, debugOverlay(m.Snapshot, m.Engine.Visibility(), m.styles), m.Width)
	}
	footer := Footer{Width: m.Width, Bindings: FooterBindings(m.Keys), Styles: m.styles}
	return lipgloss.JoinVertical(lipgloss.Left, status.View(), page, footer.View())
}
