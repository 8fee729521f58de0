// Package practice implements the standalone practice entry screen: the
// learner names a skill, optionally a narrower focus and a sample
// question to imitate, and the flow hands off to the learn screen in
// practice mode.
package practice

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/pal/internal/router"
	"github.com/abhisek/pal/internal/screen"
	"github.com/abhisek/pal/internal/screens/learn"
	"github.com/abhisek/pal/internal/session"
	"github.com/abhisek/pal/internal/ui/components"
	"github.com/abhisek/pal/internal/ui/layout"
	"github.com/abhisek/pal/internal/ui/theme"
)

// field indices into the input slice.
const (
	fieldSkill = iota
	fieldSubTopic
	fieldSample
	fieldCount
)

var fieldLabels = [fieldCount]string{
	"Skill to practice (required)",
	"Specific focus (optional)",
	"Sample question to imitate (optional)",
}

// PracticeScreen collects the practice parameters.
type PracticeScreen struct {
	factory session.Factory
	inputs  [fieldCount]components.TextInput
	focused int
	errMsg  string
}

var _ screen.Screen = (*PracticeScreen)(nil)
var _ screen.KeyHintProvider = (*PracticeScreen)(nil)

// New creates the practice entry screen.
func New(factory session.Factory) *PracticeScreen {
	p := &PracticeScreen{factory: factory}
	p.inputs[fieldSkill] = components.NewTextInput("e.g. Python list comprehensions", 120)
	p.inputs[fieldSubTopic] = components.NewTextInput("e.g. nested comprehensions", 120)
	p.inputs[fieldSample] = components.NewTextInput("paste an example question", 500)
	p.inputs[fieldSubTopic].Model.Blur()
	p.inputs[fieldSample].Model.Blur()
	return p
}

func (p *PracticeScreen) Init() tea.Cmd {
	return p.inputs[fieldSkill].Init()
}

func (p *PracticeScreen) Title() string {
	return "Practice"
}

func (p *PracticeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Next field"},
		{Key: "Enter", Description: "Start"},
		{Key: "Esc", Description: "Back"},
	}
}

func (p *PracticeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "tab", "shift+tab":
			p.inputs[p.focused].Model.Blur()
			if kmsg.String() == "tab" {
				p.focused = (p.focused + 1) % fieldCount
			} else {
				p.focused = (p.focused + fieldCount - 1) % fieldCount
			}
			return p, p.inputs[p.focused].Model.Focus()

		case "enter":
			skill := strings.TrimSpace(p.inputs[fieldSkill].Value())
			if skill == "" {
				p.errMsg = "Name a skill first."
				return p, nil
			}
			svc := p.factory.NewPracticeSession()
			next := learn.NewPractice(svc, skill,
				strings.TrimSpace(p.inputs[fieldSubTopic].Value()),
				strings.TrimSpace(p.inputs[fieldSample].Value()))
			return p, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
		}
	}

	var cmd tea.Cmd
	p.inputs[p.focused], cmd = p.inputs[p.focused].Update(msg)
	return p, cmd
}

func (p *PracticeScreen) View(width, height int) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(theme.Title.Width(width).Render("Practice a skill"))
	b.WriteString("\n\n")

	for i := range p.inputs {
		label := theme.Body.Render(fieldLabels[i])
		if i == p.focused {
			label = theme.Selected.Render(fieldLabels[i])
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, label))
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, p.inputs[i].View()))
		b.WriteString("\n\n")
	}

	if p.errMsg != "" {
		b.WriteString(theme.Incorrect.Width(width).Align(lipgloss.Center).Render(p.errMsg))
	}

	return b.String()
}
