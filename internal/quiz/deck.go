package quiz

import (
	"math/rand/v2"
	"slices"

	"github.com/google/uuid"

	"github.com/abhisek/quizdeck/internal/bank"
)

// NewKey returns a fresh shuffle key.
func NewKey() string {
	return uuid.NewString()
}

// Deck memoizes Prepare output for one raw slice. A new random draw
// happens only when the shuffle key changes; another group gets its own
// Deck.
type Deck struct {
	rng        *rand.Rand
	raw        []bank.Question
	groupStart int

	key      string
	drawn    bool
	prepared []PreparedQuestion
	draws    int
}

// NewDeck creates a deck over raw, whose first element sits at absolute
// bank position groupStart. A nil rng gets a fresh NewRand.
func NewDeck(rng *rand.Rand, raw []bank.Question, groupStart int) *Deck {
	if rng == nil {
		rng = NewRand()
	}
	return &Deck{rng: rng, raw: raw, groupStart: groupStart}
}

// Questions returns the prepared questions for key, drawing a new
// permutation only if key differs from the previous call. The result is
// a deep copy; changing it never alters the frozen draw.
func (d *Deck) Questions(key string) []PreparedQuestion {
	if !d.drawn || key != d.key {
		d.prepared = Prepare(d.rng, d.raw, d.groupStart)
		d.key = key
		d.drawn = true
		d.draws++
	}
	out := make([]PreparedQuestion, len(d.prepared))
	for i, pq := range d.prepared {
		pq.Options = slices.Clone(pq.Options)
		out[i] = pq
	}
	return out
}
