// Package home implements the landing screen: the main menu plus a
// one-line summary of past study activity.
package home

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/pal/internal/router"
	"github.com/abhisek/pal/internal/screen"
	"github.com/abhisek/pal/internal/screens/practice"
	"github.com/abhisek/pal/internal/screens/stats"
	"github.com/abhisek/pal/internal/screens/topic"
	"github.com/abhisek/pal/internal/session"
	"github.com/abhisek/pal/internal/ui/components"
	"github.com/abhisek/pal/internal/ui/theme"
)

// HomeScreen is the main menu.
type HomeScreen struct {
	menu         components.Menu
	totalAnswers int
	totalCorrect int
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates the home screen. factory carries everything the learning
// flows need; defaultTopic pre-fills the topic prompt.
func New(factory session.Factory, defaultTopic string) *HomeScreen {
	h := &HomeScreen{}

	if factory.Events != nil {
		if allStats, err := factory.Events.AllSkillStats(context.Background()); err == nil {
			for _, s := range allStats {
				h.totalAnswers += s.Attempts
				h.totalCorrect += s.Correct
			}
		}
	}

	h.menu = components.NewMenu([]components.MenuItem{
		{
			Label: "Start learning",
			Action: func() tea.Cmd {
				return push(topic.New(factory, defaultTopic))
			},
		},
		{
			Label: "Practice a skill",
			Action: func() tea.Cmd {
				return push(practice.New(factory))
			},
		},
		{
			Label: "Progress & stats",
			Action: func() tea.Cmd {
				return push(stats.New(factory.Events))
			},
		},
		{
			Label: "Quit",
			Action: func() tea.Cmd {
				return tea.Quit
			},
		},
	})

	return h
}

func push(s screen.Screen) tea.Cmd {
	return func() tea.Msg {
		return router.PushScreenMsg{Screen: s}
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(theme.Title.Width(width).Render("pal"))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Width(width).Render("your personal adaptive learner"))
	b.WriteString("\n\n")

	menu := h.menu.View()
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Render(menu))

	if h.totalAnswers > 0 {
		b.WriteString("\n")
		summary := fmt.Sprintf("%d answers so far, %d correct", h.totalAnswers, h.totalCorrect)
		b.WriteString(theme.Subtitle.Width(width).Render(summary))
	}

	return b.String()
}
