package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/pal/internal/ui/theme"
)

// MasteryBar displays one skill's mastery estimate as a horizontal bar.
// The bar turns green once the estimate reaches the mastery threshold.
type MasteryBar struct {
	Label     string
	Mastery   float64
	Threshold float64
	Width     int
}

// View renders the bar with the label left-padded to labelWidth so
// stacked bars align.
func (b MasteryBar) View(labelWidth int) string {
	label := b.Label
	if len(label) > labelWidth {
		label = label[:labelWidth]
	}
	labelStr := lipgloss.NewStyle().
		Foreground(theme.Text).
		Render(fmt.Sprintf("%-*s", labelWidth, label))

	barWidth := b.Width - labelWidth - 10 // room for "  100.0%"
	if barWidth < 4 {
		barWidth = 4
	}

	filled := int(float64(barWidth) * b.Mastery)
	if filled > barWidth {
		filled = barWidth
	}
	if filled < 0 {
		filled = 0
	}

	fillColor := theme.Primary
	if b.Threshold > 0 && b.Mastery >= b.Threshold {
		fillColor = theme.Success
	}

	filledStr := lipgloss.NewStyle().
		Background(fillColor).
		Render(strings.Repeat(" ", filled))
	emptyStr := lipgloss.NewStyle().
		Background(theme.Border).
		Render(strings.Repeat(" ", barWidth-filled))

	percent := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("  %5.1f%%", b.Mastery*100))

	return labelStr + "  " + filledStr + emptyStr + percent
}
