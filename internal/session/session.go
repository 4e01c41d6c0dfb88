package session

import (
	"slices"
	"time"

	"github.com/abhisek/quizdeck/internal/quiz"
)

// Select records optionIndex as the answer to questionID. It returns
// false, leaving the session unchanged, when the question was already
// answered, is not part of the session, or the index is out of range.
func (s *Session) Select(questionID, optionIndex int) bool {
	pos, ok := s.index[questionID]
	if !ok {
		return false
	}
	if _, answered := s.answers[questionID]; answered {
		return false
	}
	if optionIndex < 0 || optionIndex >= len(s.questions[pos].Options) {
		return false
	}
	s.answers[questionID] = optionIndex
	return true
}

// Answer returns the chosen option for questionID.
func (s *Session) Answer(questionID int) (int, bool) {
	idx, ok := s.answers[questionID]
	return idx, ok
}

// Outcome reports whether questionID is unanswered, right or wrong.
func (s *Session) Outcome(questionID int) Outcome {
	idx, ok := s.answers[questionID]
	if !ok {
		return Unanswered
	}
	q, _ := s.Question(questionID)
	if q.IsCorrect(idx) {
		return Correct
	}
	return Wrong
}

// Answered returns the number of answered questions.
func (s *Session) Answered() int {
	return len(s.answers)
}

// Totals scores every answered question against its correct index.
func (s *Session) Totals() Totals {
	t := Totals{Total: len(s.questions)}
	for _, q := range s.questions {
		idx, ok := s.answers[q.ID]
		if !ok {
			continue
		}
		if q.IsCorrect(idx) {
			t.Correct++
		} else {
			t.Wrong++
		}
	}
	return t
}

// IsComplete reports whether every question has an answer. An empty
// session is never complete.
func (s *Session) IsComplete() bool {
	if len(s.questions) == 0 {
		return false
	}
	for _, q := range s.questions {
		if _, ok := s.answers[q.ID]; !ok {
			return false
		}
	}
	return true
}

// Phase derives the session's phase from its questions and answers.
func (s *Session) Phase() Phase {
	switch {
	case len(s.questions) == 0:
		return PhaseEmpty
	case s.IsComplete():
		return PhaseComplete
	default:
		return PhaseActive
	}
}

// Reset clears all answers and draws a new order under a fresh key.
func (s *Session) Reset() {
	s.key = quiz.NewKey()
	s.answers = make(map[int]int)
	s.StartTime = time.Now()

	if s.deck == nil {
		s.questions = nil
	} else {
		s.questions = s.deck.Questions(s.key)
	}

	s.index = make(map[int]int, len(s.questions))
	for i, q := range s.questions {
		s.index[q.ID] = i
	}
}

// Questions returns the questions in presentation order.
func (s *Session) Questions() []quiz.PreparedQuestion {
	return slices.Clone(s.questions)
}

// Question looks up a question by id.
func (s *Session) Question(questionID int) (quiz.PreparedQuestion, bool) {
	pos, ok := s.index[questionID]
	if !ok {
		return quiz.PreparedQuestion{}, false
	}
	return s.questions[pos], true
}

// Len returns the number of questions in the session.
func (s *Session) Len() int {
	return len(s.questions)
}

// Key returns the current shuffle key.
func (s *Session) Key() string {
	return s.key
}
