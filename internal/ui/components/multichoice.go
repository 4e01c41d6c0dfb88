package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizdeck/internal/ui/theme"
)

// MultiChoice renders a question's options. Before an answer is chosen
// the cursor row is highlighted; afterwards the chosen option is coloured
// by correctness and, on a wrong choice, the correct option is shown too.
type MultiChoice struct {
	Options      []string
	CorrectIndex int
	Cursor       int
	Chosen       int // -1 until answered
}

// NewMultiChoice creates an unanswered selector.
func NewMultiChoice(options []string, correctIndex int) MultiChoice {
	return MultiChoice{
		Options:      options,
		CorrectIndex: correctIndex,
		Chosen:       -1,
	}
}

// Answered reports whether an option has been chosen.
func (m MultiChoice) Answered() bool {
	return m.Chosen >= 0
}

// MoveUp moves the cursor up one option.
func (m MultiChoice) MoveUp() MultiChoice {
	if !m.Answered() && m.Cursor > 0 {
		m.Cursor--
	}
	return m
}

// MoveDown moves the cursor down one option.
func (m MultiChoice) MoveDown() MultiChoice {
	if !m.Answered() && m.Cursor < len(m.Options)-1 {
		m.Cursor++
	}
	return m
}

// View renders the options soft-wrapped to width.
func (m MultiChoice) View(width int) string {
	var b strings.Builder
	textWidth := max(width-8, 10)

	for i, opt := range m.Options {
		prefix := "  "
		if !m.Answered() && i == m.Cursor {
			prefix = "▸ "
		}
		mark := " "
		style := lipgloss.NewStyle().Foreground(theme.Text)

		switch {
		case m.Answered() && i == m.Chosen && i == m.CorrectIndex:
			style, mark = theme.Correct, "✓"
		case m.Answered() && i == m.Chosen:
			style, mark = theme.Incorrect, "✗"
		case m.Answered() && i == m.CorrectIndex:
			style, mark = theme.Correct, "→"
		case m.Answered():
			style = theme.Dimmed
		case i == m.Cursor:
			style = theme.Selected
		}

		head := fmt.Sprintf("%s%s %s) ", prefix, mark, OptionLabel(i))
		body := lipgloss.NewStyle().Width(textWidth).Render(opt)
		indent := strings.Repeat(" ", lipgloss.Width(head))
		body = strings.ReplaceAll(body, "\n", "\n"+indent)

		b.WriteString(style.Render(head + body))
		b.WriteString("\n")
	}

	return b.String()
}
