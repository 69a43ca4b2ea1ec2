package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/theakshaypant/doven/internal/core"
	"github.com/theakshaypant/doven/internal/digest"
)

// KeyMap defines the keybindings for the TUI
type KeyMap struct {
	Up         key.Binding
	Down       key.Binding
	ScrollUp   key.Binding
	ScrollDown key.Binding
	Top        key.Binding
	Bottom     key.Binding
	Refresh    key.Binding
	Quit       key.Binding
	Help       key.Binding
}

var DefaultKeyMap = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	ScrollUp: key.NewBinding(
		key.WithKeys("ctrl+u", "pgup"),
		key.WithHelp("ctrl+u", "page up"),
	),
	ScrollDown: key.NewBinding(
		key.WithKeys("ctrl+d", "pgdown", " "),
		key.WithHelp("ctrl+d", "page down"),
	),
	Top: key.NewBinding(
		key.WithKeys("g", "home"),
		key.WithHelp("g", "top"),
	),
	Bottom: key.NewBinding(
		key.WithKeys("G", "end"),
		key.WithHelp("G", "bottom"),
	),
	Refresh: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "refresh"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
}

// QueryFunc builds the query for one load. It is called on every refresh
// so the window moves with the clock.
type QueryFunc func() (core.Query, error)

// Model is the Bubble Tea model for the digest viewer
type Model struct {
	provider  core.Provider
	query     QueryFunc
	timeout   time.Duration
	describer digest.Describer
	keys      KeyMap

	window  core.Window
	events  []core.Event
	fetched time.Time
	loading bool
	err     error

	width         int
	height        int
	view          viewport.Model
	viewportReady bool
	showHelp      bool
}

// NewModel creates a new TUI model. A zero timeout means no deadline.
func NewModel(provider core.Provider, query QueryFunc, timeout time.Duration, describer digest.Describer) Model {
	return Model{
		provider:  provider,
		query:     query,
		timeout:   timeout,
		describer: describer,
		keys:      DefaultKeyMap,
		loading:   true,
	}
}

// Messages
type eventsLoadedMsg struct {
	window core.Window
	events []core.Event
	err    error
	at     time.Time
}

// Commands
func (m Model) loadEvents() tea.Cmd {
	return func() tea.Msg {
		q, err := m.query()
		if err != nil {
			return eventsLoadedMsg{err: err, at: time.Now()}
		}

		ctx := context.Background()
		if m.timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, m.timeout)
			defer cancel()
		}

		events, err := m.provider.FetchEvents(ctx, q)
		return eventsLoadedMsg{window: q.Window, events: events, err: err, at: time.Now()}
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return m.loadEvents()
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		// Header 2 lines, help bar 2 lines, app padding 2 lines
		vpHeight := m.height - 6
		if vpHeight < 3 {
			vpHeight = 3
		}
		vpWidth := m.width - 4
		if vpWidth < 20 {
			vpWidth = 20
		}

		if !m.viewportReady {
			m.view = viewport.New(vpWidth, vpHeight)
			m.view.Style = lipgloss.NewStyle()
			m.viewportReady = true
		} else {
			m.view.Width = vpWidth
			m.view.Height = vpHeight
		}
		m.updateContent()
		return m, nil

	case eventsLoadedMsg:
		m.loading = false
		m.fetched = msg.at
		if msg.err != nil {
			// Keep the last good digest on screen; the header shows the error
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.window = msg.window
		m.events = msg.events
		m.updateContent()
		if m.viewportReady {
			m.view.GotoTop()
		}
		return m, nil

	case tea.KeyMsg:
		if m.showHelp {
			m.showHelp = false
			if key.Matches(msg, m.keys.Quit) {
				return m, tea.Quit
			}
			return m, nil
		}

		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.showHelp = true
			return m, nil
		case key.Matches(msg, m.keys.Refresh):
			if m.loading {
				return m, nil
			}
			m.loading = true
			return m, m.loadEvents()
		}

		if !m.viewportReady {
			return m, nil
		}
		switch {
		case key.Matches(msg, m.keys.Up):
			m.view.SetYOffset(m.view.YOffset - 1)
		case key.Matches(msg, m.keys.Down):
			m.view.SetYOffset(m.view.YOffset + 1)
		case key.Matches(msg, m.keys.ScrollUp):
			m.view.ViewUp()
		case key.Matches(msg, m.keys.ScrollDown):
			m.view.ViewDown()
		case key.Matches(msg, m.keys.Top):
			m.view.GotoTop()
		case key.Matches(msg, m.keys.Bottom):
			m.view.GotoBottom()
		}
		return m, nil
	}

	return m, nil
}

// updateContent re-renders the digest into the viewport
func (m *Model) updateContent() {
	if !m.viewportReady || m.window.Start.IsZero() {
		return
	}
	body := digest.RenderString(m.window, m.events, digest.Options{
		// Descriptions are indented six cells
		Width:     m.view.Width - 6,
		Describer: m.describer,
		Renderer:  lipgloss.DefaultRenderer(),
	})
	m.view.SetContent(strings.TrimRight(body, "\n"))
}

func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	header := m.renderHeader()

	var content string
	switch {
	case m.showHelp:
		content = m.renderHelpPanel()
	case m.window.Start.IsZero() && m.loading:
		content = lipgloss.NewStyle().
			Width(m.width-4).
			Height(m.view.Height).
			Align(lipgloss.Center, lipgloss.Center).
			Render("Loading events...")
	case m.window.Start.IsZero() && m.err != nil:
		content = ErrorStyle.Width(m.width - 4).Render(errorText(m.err))
	default:
		content = m.view.View()
	}

	return AppStyle.Render(
		lipgloss.JoinVertical(lipgloss.Left, header, content, m.renderHelp()),
	)
}

func (m Model) renderHeader() string {
	title := HeaderStyle.Render(digest.Title)

	var status string
	switch {
	case m.loading:
		status = MutedStyle.Render("refreshing...")
	case m.err != nil && !m.window.Start.IsZero():
		status = ErrorStyle.Render(errorText(m.err))
	case !m.fetched.IsZero():
		status = MutedStyle.Render(fmt.Sprintf("%d events • fetched %s", len(m.events), m.fetched.Format("15:04")))
	}

	return lipgloss.JoinHorizontal(lipgloss.Center, title, "  ", status)
}

func (m Model) renderHelp() string {
	keys := []string{
		HelpKeyStyle.Render("↑/↓") + " scroll",
		HelpKeyStyle.Render("ctrl+u/d") + " page",
		HelpKeyStyle.Render("r") + " refresh",
		HelpKeyStyle.Render("q") + " quit",
	}

	fullLine := strings.Join(keys, "  •  ")
	if lipgloss.Width(fullLine) > m.width-4 {
		return HelpStyle.Render(HelpKeyStyle.Render("?") + " help")
	}
	return HelpStyle.Render(fullLine)
}

func (m Model) renderHelpPanel() string {
	header := HeaderStyle.Render("Keyboard Shortcuts")

	bindings := []key.Binding{
		m.keys.Up, m.keys.Down, m.keys.ScrollUp, m.keys.ScrollDown,
		m.keys.Top, m.keys.Bottom, m.keys.Refresh, m.keys.Quit,
	}
	lines := []string{""}
	for _, b := range bindings {
		h := b.Help()
		lines = append(lines, HelpKeyStyle.Render(fmt.Sprintf("  %-10s", h.Key))+" "+h.Desc)
	}
	lines = append(lines, "", MutedStyle.Italic(true).Render("  Press any key to close"))

	return PanelStyle.Width(m.width - 6).Render(
		lipgloss.JoinVertical(lipgloss.Left, header, strings.Join(lines, "\n")),
	)
}

// errorText prefixes the message with the error kind when there is one.
func errorText(err error) string {
	if kind := core.KindOf(err); kind != 0 {
		return fmt.Sprintf("Error (%s): %v", kind, err)
	}
	return fmt.Sprintf("Error: %v", err)
}
