package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizdeck/internal/ui/theme"
)

// ContentWidth returns the width used for centred panels inside a frame.
func ContentWidth(frameWidth int) int {
	return min(max(frameWidth-6, 20), 72)
}

// Panel wraps content in a rounded-border box cw columns wide.
func Panel(content string, cw int) string {
	return theme.Card.
		Width(cw).
		Render(content)
}

// Button renders a single button label.
func Button(label string, selected bool) string {
	if selected {
		return theme.ButtonActive.Render("▸ " + label)
	}
	return theme.ButtonInactive.Render(label)
}

// ButtonRow renders labels side by side with the selected one highlighted.
func ButtonRow(labels []string, selected int) string {
	parts := make([]string, 0, 2*len(labels))
	for i, l := range labels {
		if i > 0 {
			parts = append(parts, "  ")
		}
		parts = append(parts, Button(l, i == selected))
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, parts...)
}
