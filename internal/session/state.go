package session

import (
	"time"

	"github.com/abhisek/quizdeck/internal/group"
	"github.com/abhisek/quizdeck/internal/quiz"
)

// Phase represents the current phase of a quiz view.
type Phase int

const (
	PhaseLoading  Phase = iota // Resolving the subject's bank
	PhaseNotFound              // Unknown subject
	PhaseEmpty                 // Group has no questions
	PhaseActive                // Answering
	PhaseComplete              // Every question answered
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseNotFound:
		return "not-found"
	case PhaseEmpty:
		return "empty"
	case PhaseActive:
		return "active"
	case PhaseComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// Outcome is the scoring state of one question.
type Outcome int

const (
	Unanswered Outcome = iota
	Correct
	Wrong
)

// Totals is the score of a session. Unanswered questions count toward
// neither Correct nor Wrong.
type Totals struct {
	Correct int
	Wrong   int
	Total   int
}

// Session holds the answers for one group of one subject.
type Session struct {
	// SubjectID identifies the subject being practiced.
	SubjectID string

	// Group is the bank range the questions came from.
	Group group.Group

	// StartTime is when the current attempt began (reset restarts it).
	StartTime time.Time

	deck      *quiz.Deck
	key       string
	questions []quiz.PreparedQuestion
	index     map[int]int // question id -> position in questions
	answers   map[int]int // question id -> chosen option
}

// New starts a session over the deck's questions with an empty answer
// map and a fresh shuffle key.
func New(subjectID string, g group.Group, deck *quiz.Deck) *Session {
	s := &Session{
		SubjectID: subjectID,
		Group:     g,
		deck:      deck,
	}
	s.Reset()
	return s
}
