// Package stats shows historical answer accuracy per skill and LLM
// usage totals from the event store.
package stats

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/pal/internal/screen"
	"github.com/abhisek/pal/internal/store"
	"github.com/abhisek/pal/internal/ui/layout"
	"github.com/abhisek/pal/internal/ui/theme"
)

type statsLoadedMsg struct {
	Skills []store.SkillStats
	LLM    store.LLMStats
	Err    error
}

// StatsScreen displays aggregates from the event store.
type StatsScreen struct {
	events store.EventRepo
	loaded bool
	skills []store.SkillStats
	llm    store.LLMStats
	errMsg string
}

var _ screen.Screen = (*StatsScreen)(nil)
var _ screen.KeyHintProvider = (*StatsScreen)(nil)

// New creates the stats screen.
func New(events store.EventRepo) *StatsScreen {
	return &StatsScreen{events: events}
}

func (s *StatsScreen) Init() tea.Cmd {
	return s.load()
}

func (s *StatsScreen) Title() string {
	return "Progress & Stats"
}

func (s *StatsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Esc", Description: "Back"},
	}
}

func (s *StatsScreen) load() tea.Cmd {
	return func() tea.Msg {
		if s.events == nil {
			return statsLoadedMsg{Err: fmt.Errorf("event store is not available")}
		}
		ctx := context.Background()
		skills, err := s.events.AllSkillStats(ctx)
		if err != nil {
			return statsLoadedMsg{Err: err}
		}
		llm, err := s.events.TotalLLMStats(ctx)
		if err != nil {
			return statsLoadedMsg{Err: err}
		}
		return statsLoadedMsg{Skills: skills, LLM: llm}
	}
}

func (s *StatsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if m, ok := msg.(statsLoadedMsg); ok {
		s.loaded = true
		if m.Err != nil {
			s.errMsg = m.Err.Error()
			return s, nil
		}
		s.skills = m.Skills
		s.llm = m.LLM
	}
	return s, nil
}

func (s *StatsScreen) View(width, height int) string {
	if s.errMsg != "" {
		return theme.Incorrect.Width(width).Align(lipgloss.Center).
			Render("\n\n\nCould not load stats: " + s.errMsg)
	}
	if !s.loaded {
		return theme.Subtitle.Width(width).Render("\n\n\nLoading...")
	}
	if len(s.skills) == 0 {
		return theme.Subtitle.Width(width).Render("\n\n\nNo answers recorded yet. Start a session first!")
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(theme.Title.Width(width).Render("Answer history"))
	b.WriteString("\n\n")

	nameWidth := 0
	for _, sk := range s.skills {
		if len(sk.SkillName) > nameWidth {
			nameWidth = len(sk.SkillName)
		}
	}
	if nameWidth > 32 {
		nameWidth = 32
	}

	for _, sk := range s.skills {
		name := sk.SkillName
		if len(name) > nameWidth {
			name = name[:nameWidth]
		}
		line := fmt.Sprintf("%-*s  %3d attempts  %5.1f%% correct",
			nameWidth, name, sk.Attempts, sk.Accuracy()*100)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			theme.Body.Render(line)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	llmLine := fmt.Sprintf("LLM: %d requests (%d failed), %d in / %d out tokens",
		s.llm.Requests, s.llm.Failures, s.llm.InputTokens, s.llm.OutputTokens)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		theme.Subtitle.Render(llmLine)))

	return b.String()
}
