package quiz

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	sess "github.com/abhisek/quizdeck/internal/session"
	"github.com/abhisek/quizdeck/internal/ui/components"
	"github.com/abhisek/quizdeck/internal/ui/layout"
	"github.com/abhisek/quizdeck/internal/ui/theme"
)

// maxMissedShown caps the missed-question list in the results panel.
const maxMissedShown = 5

func answeredLabel(answered, total int) string {
	return fmt.Sprintf("Answered: %d/%d", answered, total)
}

func (q *QuizScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	switch q.Phase() {
	case sess.PhaseLoading:
		return layout.Centered(q.spinner.View()+" "+theme.Hint.Render("Loading questions..."), width, height)
	case sess.PhaseNotFound:
		return renderMessage("Subject not found",
			fmt.Sprintf("There is no subject called %q.", q.subjectID), cw, width, height)
	case sess.PhaseEmpty:
		return renderMessage("No questions",
			fmt.Sprintf("Group %d of %s has no questions.", q.groupID, q.name), cw, width, height)
	}

	if q.showResults {
		return layout.Centered(q.renderResults(cw), width, height)
	}
	return layout.Centered(q.renderQuestion(cw), width, height)
}

func renderMessage(title, body string, cw, width, height int) string {
	content := theme.Title.Render(title) + "\n\n" +
		theme.Body.Width(cw-6).Render(body) + "\n\n" +
		theme.Hint.Render("Press Esc to go back.")
	return layout.Centered(components.Panel(content, cw), width, height)
}

func (q *QuizScreen) renderQuestion(cw int) string {
	current := q.currentQuestion()
	inner := cw - 6

	var b strings.Builder

	counter := theme.Subtitle.Render(fmt.Sprintf("Question %d of %d", q.current+1, q.session.Len()))
	var badge string
	switch q.session.Outcome(current.ID) {
	case sess.Correct:
		badge = theme.Correct.Render("✓ Correct")
	case sess.Wrong:
		badge = theme.Incorrect.Render("✗ Wrong")
	}
	if badge != "" {
		gap := max(inner-lipgloss.Width(counter)-lipgloss.Width(badge), 1)
		counter += strings.Repeat(" ", gap) + badge
	}
	b.WriteString(counter)
	b.WriteString("\n\n")

	b.WriteString(theme.Title.Width(inner).Render(current.Text))
	b.WriteString("\n\n")

	mc := components.NewMultiChoice(current.Options, current.CorrectIndex)
	mc.Cursor = q.cursor
	if idx, ok := q.session.Answer(current.ID); ok {
		mc.Chosen = idx
	}
	b.WriteString(strings.TrimRight(mc.View(inner), "\n"))

	if n := q.notes[current.ID]; n != nil {
		b.WriteString("\n\n")
		switch {
		case n.pending:
			b.WriteString(theme.Hint.Render("Asking for an explanation..."))
		case n.err != "":
			b.WriteString(theme.Incorrect.Render(n.err))
		default:
			b.WriteString(lipgloss.NewStyle().
				Width(inner).
				Foreground(theme.Text).
				Border(lipgloss.NormalBorder(), false, false, false, true).
				BorderForeground(theme.Secondary).
				PaddingLeft(1).
				Render(n.text))
		}
	}

	totals := q.session.Totals()
	bar := components.NewProgressBar("Answered", q.session.Answered(), q.session.Len(), inner).View()
	score := theme.Hint.Render(fmt.Sprintf("%s %d  %s %d",
		theme.Correct.Render("✓"), totals.Correct,
		theme.Incorrect.Render("✗"), totals.Wrong))

	return components.Panel(b.String(), cw) + "\n" +
		lipgloss.NewStyle().PaddingLeft(2).Render(bar) + "\n" +
		lipgloss.NewStyle().PaddingLeft(2).Render(score)
}

func (q *QuizScreen) renderResults(cw int) string {
	sum := q.session.Summary()
	inner := cw - 6

	var b strings.Builder

	title := "Results"
	if q.session.IsComplete() {
		title = "Group complete!"
	}
	b.WriteString(theme.Title.Render(title))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Render(fmt.Sprintf("%s · Group %d (%s)", q.name, sum.Group.ID, sum.Group.Label)))
	b.WriteString("\n\n")

	unanswered := sum.Totals.Total - sum.Answered
	b.WriteString(fmt.Sprintf("%s   %s   %s\n",
		theme.Correct.Render(fmt.Sprintf("Correct: %d", sum.Totals.Correct)),
		theme.Incorrect.Render(fmt.Sprintf("Wrong: %d", sum.Totals.Wrong)),
		theme.Dimmed.Render(fmt.Sprintf("Unanswered: %d", unanswered))))
	b.WriteString(theme.Body.Render(fmt.Sprintf("Score: %d/%d · Accuracy: %.0f%% · Time: %s",
		sum.Totals.Correct, sum.Totals.Total, sum.Accuracy*100, formatDuration(sum))))

	if missed := sum.Missed(); len(missed) > 0 {
		b.WriteString("\n\n")
		b.WriteString(theme.Subtitle.Render("Missed"))
		for i, r := range missed {
			if i == maxMissedShown {
				b.WriteString("\n" + theme.Dimmed.Render(fmt.Sprintf("…and %d more", len(missed)-maxMissedShown)))
				break
			}
			b.WriteString("\n")
			b.WriteString(theme.Body.Width(inner).Render(fmt.Sprintf("%d. %s", r.ID, r.Text)))
			b.WriteString("\n")
			b.WriteString(theme.Incorrect.Render("   ✗ " + r.Chosen))
			b.WriteString("\n")
			b.WriteString(theme.Correct.Render("   ✓ " + r.Correct))
		}
	}

	b.WriteString("\n\n")
	b.WriteString(components.ButtonRow(q.actions, q.action))

	return components.Panel(b.String(), cw)
}

func formatDuration(sum *sess.Summary) string {
	secs := int(sum.Duration.Seconds())
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}
