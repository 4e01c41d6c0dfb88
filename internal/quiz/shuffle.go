// Package quiz turns a group of bank questions into a randomized
// presentation and scores answers against it.
package quiz

import (
	"math/rand/v2"
	"slices"
)

// NewRand returns a PCG-backed generator seeded from the runtime's
// cryptographically random source.
func NewRand() *rand.Rand {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// NewSeededRand returns a deterministic generator for tests and replays.
func NewSeededRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Shuffle returns a uniformly permuted copy of items (Fisher-Yates).
// items itself is left untouched.
func Shuffle[T any](rng *rand.Rand, items []T) []T {
	out := slices.Clone(items)
	for i := len(out) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}
