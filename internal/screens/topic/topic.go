// Package topic implements the curriculum entry screen: the learner
// names a topic, the content provider designs a curriculum for it, and
// the flow hands off to the learn screen.
package topic

import (
	"context"
	"fmt"
	"strings"
	"time"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/pal/internal/knowledge"
	"github.com/abhisek/pal/internal/router"
	"github.com/abhisek/pal/internal/screen"
	"github.com/abhisek/pal/internal/screens/learn"
	"github.com/abhisek/pal/internal/session"
	"github.com/abhisek/pal/internal/ui/components"
	"github.com/abhisek/pal/internal/ui/layout"
	"github.com/abhisek/pal/internal/ui/theme"
)

// curriculumReadyMsg is sent when curriculum generation finishes.
type curriculumReadyMsg struct {
	Graph *knowledge.Graph
	Err   error
}

// TopicScreen asks for a topic and generates its curriculum.
type TopicScreen struct {
	factory session.Factory
	input   components.TextInput
	spin    spinner.Model
	loading bool
	topic   string
	errMsg  string
}

var _ screen.Screen = (*TopicScreen)(nil)
var _ screen.KeyHintProvider = (*TopicScreen)(nil)

// New creates the topic screen. defaultTopic pre-fills the input.
func New(factory session.Factory, defaultTopic string) *TopicScreen {
	input := components.NewTextInput("What do you want to learn?", 120)
	if defaultTopic != "" {
		input.Model.SetValue(defaultTopic)
	}

	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = lipgloss.NewStyle().Foreground(theme.Primary)

	return &TopicScreen{
		factory: factory,
		input:   input,
		spin:    spin,
	}
}

func (t *TopicScreen) Init() tea.Cmd {
	return t.input.Init()
}

func (t *TopicScreen) Title() string {
	return "New Curriculum"
}

func (t *TopicScreen) KeyHints() []layout.KeyHint {
	if t.loading {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Build curriculum"},
		{Key: "Esc", Description: "Back"},
	}
}

func (t *TopicScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case curriculumReadyMsg:
		t.loading = false
		if msg.Err != nil {
			t.errMsg = fmt.Sprintf("Could not build a curriculum: %v", msg.Err)
			return t, nil
		}
		svc, err := t.factory.NewSession(msg.Graph)
		if err != nil {
			t.errMsg = fmt.Sprintf("Could not start the session: %v", err)
			return t, nil
		}
		next := learn.New(svc)
		return t, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }

	case spinner.TickMsg:
		if !t.loading {
			return t, nil
		}
		var cmd tea.Cmd
		t.spin, cmd = t.spin.Update(msg)
		return t, cmd

	case tea.KeyMsg:
		if t.loading {
			return t, nil
		}
		if msg.String() == "enter" {
			topic := strings.TrimSpace(t.input.Value())
			if topic == "" {
				t.errMsg = "Name a topic first."
				return t, nil
			}
			t.topic = topic
			t.loading = true
			t.errMsg = ""
			return t, tea.Batch(t.spin.Tick, t.generateCurriculum(topic))
		}
	}

	if !t.loading {
		var cmd tea.Cmd
		t.input, cmd = t.input.Update(msg)
		return t, cmd
	}
	return t, nil
}

func (t *TopicScreen) generateCurriculum(topic string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()

		graph, err := t.factory.Content.GenerateCurriculum(ctx, topic)
		return curriculumReadyMsg{Graph: graph, Err: err}
	}
}

func (t *TopicScreen) View(width, height int) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(theme.Title.Width(width).Render("What shall we learn?"))
	b.WriteString("\n\n")

	if t.loading {
		line := fmt.Sprintf("%s Designing a curriculum for %q...", t.spin.View(), t.topic)
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Text).
			Render(line))
		return b.String()
	}

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Render(t.input.View()))

	if t.errMsg != "" {
		b.WriteString("\n\n")
		b.WriteString(theme.Incorrect.Width(width).Align(lipgloss.Center).Render(t.errMsg))
	}

	return b.String()
}
