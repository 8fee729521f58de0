// Package app holds the root Bubble Tea model: the screen router, the
// shared frame (header and footer), and global key handling.
package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/pal/internal/router"
	"github.com/abhisek/pal/internal/screen"
	"github.com/abhisek/pal/internal/screens/home"
	"github.com/abhisek/pal/internal/screens/learn"
	"github.com/abhisek/pal/internal/session"
	"github.com/abhisek/pal/internal/ui/layout"
)

// Options carries the wired dependencies into the TUI.
type Options struct {
	// Factory builds learning and practice sessions.
	Factory session.Factory

	// ProviderName labels the active LLM provider in the header.
	ProviderName string

	// DefaultTopic pre-fills the topic prompt.
	DefaultTopic string

	// InitialSession, when set, skips the topic flow and starts learning
	// immediately (used by `pal learn --graph`).
	InitialSession *session.Service
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router   *router.Router
	provider string
	initCmd  tea.Cmd
	width    int
	height   int
}

func newAppModel(opts Options) AppModel {
	homeScreen := home.New(opts.Factory, opts.DefaultTopic)
	m := AppModel{
		router:   router.New(homeScreen),
		provider: opts.ProviderName,
	}
	if opts.InitialSession != nil {
		m.initCmd = m.router.Push(learn.New(opts.InitialSession))
	}
	return m
}

func (m AppModel) Init() tea.Cmd {
	return m.initCmd
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.provider, m.width)
	footer := layout.RenderFooter(m.keyHints(active), m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	v.SetContent(layout.RenderFrame(header, content, footer, m.width, m.height))
	return v
}

// keyHints asks the active screen for its footer hints, falling back to
// stack-position defaults.
func (m AppModel) keyHints(active screen.Screen) []layout.KeyHint {
	if p, ok := active.(screen.KeyHintProvider); ok {
		if hints := p.KeyHints(); hints != nil {
			return hints
		}
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
