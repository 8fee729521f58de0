// Package skillmap renders the curriculum's mastery estimates as a bar
// chart, in curriculum order.
package skillmap

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/pal/internal/screen"
	"github.com/abhisek/pal/internal/session"
	"github.com/abhisek/pal/internal/ui/components"
	"github.com/abhisek/pal/internal/ui/layout"
	"github.com/abhisek/pal/internal/ui/theme"
)

// SkillMapScreen shows a snapshot of per-skill mastery.
type SkillMapScreen struct {
	snapshot  []session.SkillMastery
	threshold float64
}

var _ screen.Screen = (*SkillMapScreen)(nil)
var _ screen.KeyHintProvider = (*SkillMapScreen)(nil)

// New creates a skill map over a mastery snapshot.
func New(snapshot []session.SkillMastery, threshold float64) *SkillMapScreen {
	return &SkillMapScreen{snapshot: snapshot, threshold: threshold}
}

func (s *SkillMapScreen) Init() tea.Cmd {
	return nil
}

func (s *SkillMapScreen) Title() string {
	return "Skill Map"
}

func (s *SkillMapScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Esc", Description: "Back"},
	}
}

func (s *SkillMapScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) {
	return s, nil
}

func (s *SkillMapScreen) View(width, height int) string {
	if len(s.snapshot) == 0 {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("\n\n\nNo curriculum loaded.")
	}

	labelWidth := 0
	for _, row := range s.snapshot {
		if len(row.Name) > labelWidth {
			labelWidth = len(row.Name)
		}
	}
	if labelWidth > 28 {
		labelWidth = 28
	}

	barWidth := min(width-8, 72)

	var b strings.Builder
	b.WriteString("\n")
	mastered := 0
	for _, row := range s.snapshot {
		if row.Mastery >= s.threshold {
			mastered++
		}
		bar := components.MasteryBar{
			Label:     row.Name,
			Mastery:   row.Mastery,
			Threshold: s.threshold,
			Width:     barWidth,
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar.View(labelWidth)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	summary := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(progressLine(mastered, len(s.snapshot)))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, summary))

	return b.String()
}

func progressLine(mastered, total int) string {
	if mastered == total {
		return "All skills mastered!"
	}
	return fmt.Sprintf("%d of %d skills mastered", mastered, total)
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
