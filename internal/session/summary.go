package session

import (
	"time"

	"github.com/abhisek/quizdeck/internal/group"
)

// Review is one question's line in the results view.
type Review struct {
	ID      int
	Text    string
	Chosen  string // empty when unanswered
	Correct string
	Outcome Outcome
}

// Summary holds the data displayed on the results screen.
type Summary struct {
	SubjectID string
	Group     group.Group
	Totals    Totals
	Answered  int
	Accuracy  float64 // correct / answered
	Duration  time.Duration
	Reviews   []Review
}

// Summary builds the results for the current attempt. Reviews follow
// presentation order.
func (s *Session) Summary() *Summary {
	totals := s.Totals()

	var accuracy float64
	if answered := totals.Correct + totals.Wrong; answered > 0 {
		accuracy = float64(totals.Correct) / float64(answered)
	}

	reviews := make([]Review, 0, len(s.questions))
	for _, q := range s.questions {
		r := Review{
			ID:      q.ID,
			Text:    q.Text,
			Correct: q.CorrectText(),
			Outcome: s.Outcome(q.ID),
		}
		if idx, ok := s.answers[q.ID]; ok {
			r.Chosen = q.OptionText(idx)
		}
		reviews = append(reviews, r)
	}

	return &Summary{
		SubjectID: s.SubjectID,
		Group:     s.Group,
		Totals:    totals,
		Answered:  s.Answered(),
		Accuracy:  accuracy,
		Duration:  time.Since(s.StartTime),
		Reviews:   reviews,
	}
}

// Missed returns the reviews answered wrongly.
func (sum *Summary) Missed() []Review {
	var out []Review
	for _, r := range sum.Reviews {
		if r.Outcome == Wrong {
			out = append(out, r)
		}
	}
	return out
}
