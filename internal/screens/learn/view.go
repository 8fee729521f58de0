package learn

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/pal/internal/content"
	"github.com/abhisek/pal/internal/ui/theme"
)

func (l *LearnScreen) View(width, height int) string {
	switch l.phase {
	case phaseLoading:
		return l.renderWaiting(width, "Preparing your next problem...")
	case phaseGrading:
		return l.renderWaiting(width, "Checking your answer...")
	case phaseAnswer:
		return l.renderProblem(width)
	case phaseFeedback:
		return l.renderFeedback(width)
	case phaseDone:
		return l.renderDone(width)
	case phaseBlocked:
		return l.renderBlocked(width)
	default:
		return renderError(width, l.errMsg)
	}
}

func (l *LearnScreen) renderWaiting(width int, text string) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("\n\n\n%s %s", l.spin.View(), text))
}

func (l *LearnScreen) renderProblem(width int) string {
	var b strings.Builder
	b.WriteString("\n")

	// Skill header line with running score.
	info := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true).
		Render(fmt.Sprintf("  Skill: %s", l.problem.SkillName))
	score := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("%d/%d correct", l.correct, l.answered))
	pad := width - lipgloss.Width(info) - lipgloss.Width(score) - 4
	if pad > 0 {
		info += strings.Repeat(" ", pad) + score
	}
	b.WriteString(info)
	b.WriteString("\n\n")

	// The problem itself.
	card := theme.Card.Width(min(width-8, 76)).Render(l.problem.Text)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, card))
	b.WriteString("\n\n")

	// Revealed hints.
	for i, hint := range l.hints {
		line := theme.Hint.Render(fmt.Sprintf("Hint %d/%d: %s", i+1, content.HintCount, hint))
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, line))
		b.WriteString("\n")
	}
	if l.hintErr != "" {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			theme.Incorrect.Render("Hints unavailable: "+l.hintErr)))
		b.WriteString("\n")
	}
	if len(l.hints) > 0 || l.hintErr != "" {
		b.WriteString("\n")
	}

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, l.input.View()))
	return b.String()
}

func (l *LearnScreen) renderFeedback(width int) string {
	res := l.lastResult

	var b strings.Builder
	b.WriteString("\n\n")

	if res.Correct {
		b.WriteString(theme.Correct.Width(width).Align(lipgloss.Center).Render("Correct!"))
	} else {
		b.WriteString(theme.Incorrect.Width(width).Align(lipgloss.Center).Render("Not quite"))
	}
	b.WriteString("\n\n")

	// Mastery progress for curriculum problems.
	if l.problem != nil && l.problem.SkillID != "" {
		if res.SkillMastered {
			b.WriteString(lipgloss.NewStyle().
				Width(width).
				Align(lipgloss.Center).
				Foreground(theme.Accent).
				Bold(true).
				Render("Skill mastered!"))
			b.WriteString("\n")
			b.WriteString(lipgloss.NewStyle().
				Width(width).
				Align(lipgloss.Center).
				Foreground(theme.Text).
				Render(fmt.Sprintf("%q is done. On to the next one.", l.problem.SkillName)))
		} else {
			b.WriteString(lipgloss.NewStyle().
				Width(width).
				Align(lipgloss.Center).
				Foreground(theme.TextDim).
				Render(fmt.Sprintf("Mastery of %q: %.1f%%", l.problem.SkillName, res.Mastery*100)))
		}
		b.WriteString("\n\n")
	}

	// Worked solution after a wrong answer.
	if res.Solution != "" {
		solStyle := lipgloss.NewStyle().
			Width(min(width-8, 76)).
			Foreground(theme.Text)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, solStyle.Render(res.Solution)))
		b.WriteString("\n\n")
	}

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("Press Enter for the next problem..."))

	return b.String()
}

func (l *LearnScreen) renderDone(width int) string {
	var b strings.Builder
	b.WriteString("\n\n\n")
	b.WriteString(theme.Correct.Width(width).Align(lipgloss.Center).Render("Curriculum complete!"))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Render("Every skill is mastered. Well done."))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("Answered %d problems, %d correct.", l.answered, l.correct)))
	return b.String()
}

func (l *LearnScreen) renderBlocked(width int) string {
	var b strings.Builder
	b.WriteString("\n\n\n")
	b.WriteString(theme.Incorrect.Width(width).Align(lipgloss.Center).Render("No skill can be selected"))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Render("The remaining skills depend on each other in a loop,\nso none of them can be unlocked."))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("Try generating a fresh curriculum for this topic."))
	return b.String()
}

// renderError renders an error message.
func renderError(width int, errMsg string) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Error).
		Render(fmt.Sprintf("\n\n\n  Error: %s\n\n  Press Esc to go back.", errMsg))
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
