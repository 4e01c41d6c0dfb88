package quiz

import (
	"math/rand/v2"

	"github.com/abhisek/quizdeck/internal/bank"
)

// PreparedQuestion is a question ready for presentation: options are in
// shuffled order and CorrectIndex points at the shuffled position of the
// originally correct option.
type PreparedQuestion struct {
	ID           int // 1-based absolute bank position
	Text         string
	Options      []string
	CorrectIndex int
}

// IsCorrect reports whether choosing option index answers q correctly.
func (q PreparedQuestion) IsCorrect(index int) bool {
	return index >= 0 && index < len(q.Options) && index == q.CorrectIndex
}

// CorrectText returns the text of the correct option, or "".
func (q PreparedQuestion) CorrectText() string {
	if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
		return ""
	}
	return q.Options[q.CorrectIndex]
}

// OptionText returns the text of option index, or "".
func (q PreparedQuestion) OptionText(index int) string {
	if index < 0 || index >= len(q.Options) {
		return ""
	}
	return q.Options[index]
}

type indexedOption struct {
	text string
	orig int
}

// Prepare shuffles each question's options, assigns ids from the raw
// position (groupStart+i+1), then shuffles the question order. Ids and
// per-question option order are unaffected by the second shuffle.
func Prepare(rng *rand.Rand, questions []bank.Question, groupStart int) []PreparedQuestion {
	if len(questions) == 0 {
		return nil
	}

	prepared := make([]PreparedQuestion, len(questions))
	for i, q := range questions {
		prepared[i] = prepareOne(rng, q, groupStart+i+1)
	}
	return Shuffle(rng, prepared)
}

func prepareOne(rng *rand.Rand, q bank.Question, id int) PreparedQuestion {
	pq := PreparedQuestion{ID: id, Text: q.Text}

	if len(q.Options) <= 1 {
		pq.Options = q.OptionTexts()
		if q.CorrectIndex < len(pq.Options) {
			pq.CorrectIndex = q.CorrectIndex
		}
		return pq
	}

	pairs := make([]indexedOption, len(q.Options))
	for i, o := range q.Options {
		pairs[i] = indexedOption{text: o.Text, orig: i}
	}
	pairs = Shuffle(rng, pairs)

	pq.Options = make([]string, len(pairs))
	for i, p := range pairs {
		pq.Options[i] = p.text
		if p.orig == q.CorrectIndex {
			pq.CorrectIndex = i
		}
	}
	return pq
}
