package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizdeck/internal/ui/theme"
)

// ProgressBar shows how many of Total items are Done.
type ProgressBar struct {
	Label string
	Done  int
	Total int
	Width int
}

// NewProgressBar creates a new progress bar.
func NewProgressBar(label string, done, total, width int) ProgressBar {
	return ProgressBar{
		Label: label,
		Done:  done,
		Total: total,
		Width: width,
	}
}

// Fraction returns Done/Total clamped to [0, 1].
func (p ProgressBar) Fraction() float64 {
	if p.Total <= 0 {
		return 0
	}
	return min(max(float64(p.Done)/float64(p.Total), 0), 1)
}

// View renders "<label> x/y" followed by the bar.
func (p ProgressBar) View() string {
	text := fmt.Sprintf("%d/%d", p.Done, p.Total)
	if p.Label != "" {
		text = p.Label + " " + text
	}
	head := lipgloss.NewStyle().Foreground(theme.Text).Render(text) + "  "

	barWidth := max(p.Width-lipgloss.Width(head), 4)
	filled := int(float64(barWidth) * p.Fraction())

	return head +
		theme.ProgressFilled.Render(strings.Repeat(" ", filled)) +
		theme.ProgressEmpty.Render(strings.Repeat(" ", barWidth-filled))
}
