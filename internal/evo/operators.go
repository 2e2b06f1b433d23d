package evo

import (
	"math/rand"

	"harmonia/internal/model"
)

// RandomSequence draws length chords independently and uniformly from the
// book. Draws index the book's sorted name list, so a fixed seed yields the
// same sequence regardless of map iteration order.
func RandomSequence(rng *rand.Rand, book model.ChordBook, length int) []string {
	seq := make([]string, length)
	for i := range seq {
		seq[i] = book.Name(rng.Intn(book.Size()))
	}
	return seq
}

// Crossover produces a child from a one-point cut: a[:cut] + b[cut:], with
// the cut drawn from [1, len-1]. The child is a fresh slice; neither parent
// is touched.
func Crossover(rng *rand.Rand, a, b []string) []string {
	cut := 1 + rng.Intn(len(a)-1)
	child := make([]string, len(a))
	copy(child, a[:cut])
	copy(child[cut:], b[cut:])
	return child
}

// Mutate replaces one uniformly-random position with a uniformly-random
// book chord, with probability rate. The sequence is modified in place;
// callers pass freshly-copied children only.
func Mutate(rng *rand.Rand, seq []string, book model.ChordBook, rate float64) {
	if rng.Float64() >= rate {
		return
	}
	seq[rng.Intn(len(seq))] = book.Name(rng.Intn(book.Size()))
}
