package session

import (
	"fmt"
	"testing"

	"github.com/abhisek/quizdeck/internal/bank"
	"github.com/abhisek/quizdeck/internal/group"
	"github.com/abhisek/quizdeck/internal/quiz"
)

func testBank(n int) []bank.Question {
	qs := make([]bank.Question, n)
	for i := range qs {
		qs[i] = bank.Question{
			Text:         fmt.Sprintf("Question %d", i+1),
			CorrectIndex: i % 3,
			Position:     i,
		}
		for j := range 3 {
			qs[i].Options = append(qs[i].Options, bank.Option{
				Text:      fmt.Sprintf("q%d-opt%d", i+1, j),
				IsCorrect: j == i%3,
			})
		}
	}
	return qs
}

func testSession(t *testing.T, n int, seed uint64) *Session {
	t.Helper()
	raw := testBank(n)
	g := group.Group{ID: 1, Label: fmt.Sprintf("1-%d", n), Start: 0, End: n}
	return New("programming", g, quiz.NewDeck(quiz.NewSeededRand(seed), raw, 0))
}

// wrongIndex returns an option index that is not correct for q.
func wrongIndex(q quiz.PreparedQuestion) int {
	return (q.CorrectIndex + 1) % len(q.Options)
}

func TestTotals_ScoringExample(t *testing.T) {
	s := testSession(t, 3, 1)

	q1, _ := s.Question(1)
	q2, _ := s.Question(2)

	if !s.Select(1, q1.CorrectIndex) {
		t.Fatal("expected Q1 selection to be recorded")
	}
	if !s.Select(2, wrongIndex(q2)) {
		t.Fatal("expected Q2 selection to be recorded")
	}

	got := s.Totals()
	want := Totals{Correct: 1, Wrong: 1, Total: 3}
	if got != want {
		t.Errorf("Totals() = %+v, want %+v", got, want)
	}
	if s.IsComplete() {
		t.Error("expected incomplete with Q3 unanswered")
	}
	if s.Answered() != 2 {
		t.Errorf("Answered() = %d, want 2", s.Answered())
	}
}

func TestSelect_NoOverwrite(t *testing.T) {
	s := testSession(t, 3, 2)
	q, _ := s.Question(2)

	if !s.Select(2, wrongIndex(q)) {
		t.Fatal("first select should record")
	}
	if s.Select(2, q.CorrectIndex) {
		t.Error("second select should be rejected")
	}

	idx, ok := s.Answer(2)
	if !ok || idx != wrongIndex(q) {
		t.Errorf("Answer(2) = %d, %v; want %d, true", idx, ok, wrongIndex(q))
	}
	if s.Outcome(2) != Wrong {
		t.Errorf("Outcome(2) = %v, want Wrong", s.Outcome(2))
	}
}

func TestSelect_RejectsUnknownAndOutOfRange(t *testing.T) {
	s := testSession(t, 3, 3)

	tests := []struct {
		name   string
		id     int
		option int
	}{
		{"unknown id", 42, 0},
		{"zero id", 0, 0},
		{"negative option", 1, -1},
		{"option past end", 1, 3},
	}
	for _, tt := range tests {
		if s.Select(tt.id, tt.option) {
			t.Errorf("%s: Select(%d, %d) recorded", tt.name, tt.id, tt.option)
		}
	}
	if s.Answered() != 0 {
		t.Errorf("Answered() = %d, want 0", s.Answered())
	}
}

func TestIsComplete_Monotonic(t *testing.T) {
	s := testSession(t, 4, 4)
	qs := s.Questions()

	for i, q := range qs {
		if s.IsComplete() {
			t.Fatalf("complete after %d of %d answers", i, len(qs))
		}
		s.Select(q.ID, 0)
	}
	if !s.IsComplete() {
		t.Fatal("expected complete after all answers")
	}
	if s.Phase() != PhaseComplete {
		t.Errorf("Phase() = %v, want complete", s.Phase())
	}

	// A rejected extra select keeps it complete.
	s.Select(qs[0].ID, 1)
	if !s.IsComplete() {
		t.Error("completion must be monotonic")
	}
}

func TestEmptySession(t *testing.T) {
	s := New("programming", group.Group{ID: 9}, quiz.NewDeck(quiz.NewSeededRand(1), nil, 200))

	if s.IsComplete() {
		t.Error("empty session must not be complete")
	}
	if s.Phase() != PhaseEmpty {
		t.Errorf("Phase() = %v, want empty", s.Phase())
	}
	if got := s.Totals(); got != (Totals{}) {
		t.Errorf("Totals() = %+v, want zero", got)
	}

	nilDeck := New("programming", group.Group{}, nil)
	if nilDeck.Len() != 0 || nilDeck.Phase() != PhaseEmpty {
		t.Error("nil deck should behave as empty")
	}
}

func TestReset(t *testing.T) {
	s := testSession(t, 25, 5)
	before := s.Questions()
	oldKey := s.Key()

	for _, q := range before {
		s.Select(q.ID, q.CorrectIndex)
	}

	s.Reset()

	if s.Answered() != 0 {
		t.Errorf("Answered() after reset = %d, want 0", s.Answered())
	}
	if s.Key() == oldKey {
		t.Error("reset must issue a new shuffle key")
	}
	if s.Phase() != PhaseActive {
		t.Errorf("Phase() = %v, want active", s.Phase())
	}

	after := s.Questions()
	sameOrder := true
	for i := range after {
		if after[i].ID != before[i].ID {
			sameOrder = false
			break
		}
	}
	if sameOrder {
		t.Error("expected a different question order after reset")
	}

	raw := testBank(25)
	for _, q := range after {
		if q.CorrectText() != raw[q.ID-1].CorrectText() {
			t.Errorf("question %d: correct %q, want %q", q.ID, q.CorrectText(), raw[q.ID-1].CorrectText())
		}
	}
}

func TestQuestionsStableWithoutReset(t *testing.T) {
	s := testSession(t, 10, 6)
	first := s.Questions()
	s.Select(first[0].ID, 0)
	second := s.Questions()

	for i := range first {
		if first[i].ID != second[i].ID || first[i].CorrectIndex != second[i].CorrectIndex {
			t.Fatalf("order changed at %d without reset", i)
		}
	}
}

func TestSummary(t *testing.T) {
	s := testSession(t, 3, 7)
	q1, _ := s.Question(1)
	q3, _ := s.Question(3)
	s.Select(1, q1.CorrectIndex)
	s.Select(3, wrongIndex(q3))

	sum := s.Summary()
	if sum.Totals != (Totals{Correct: 1, Wrong: 1, Total: 3}) {
		t.Errorf("Totals = %+v", sum.Totals)
	}
	if sum.Answered != 2 {
		t.Errorf("Answered = %d, want 2", sum.Answered)
	}
	if sum.Accuracy != 0.5 {
		t.Errorf("Accuracy = %v, want 0.5", sum.Accuracy)
	}
	if len(sum.Reviews) != 3 {
		t.Fatalf("len(Reviews) = %d, want 3", len(sum.Reviews))
	}

	missed := sum.Missed()
	if len(missed) != 1 || missed[0].ID != 3 {
		t.Fatalf("Missed() = %+v, want question 3", missed)
	}
	if missed[0].Chosen != q3.Options[wrongIndex(q3)] || missed[0].Correct != q3.CorrectText() {
		t.Errorf("review = %+v", missed[0])
	}

	for _, r := range sum.Reviews {
		if r.ID == 2 && (r.Outcome != Unanswered || r.Chosen != "") {
			t.Errorf("question 2 should be unanswered, got %+v", r)
		}
	}
}

func TestPhaseString(t *testing.T) {
	if PhaseNotFound.String() != "not-found" {
		t.Errorf("PhaseNotFound.String() = %q", PhaseNotFound.String())
	}
	if Phase(99).String() != "unknown" {
		t.Error("unexpected label for unknown phase")
	}
}
