package model

import "fmt"

// ChordPair is an unordered pair of chord names.
type ChordPair [2]string

// Matches reports whether the pair equals (a, b) in either order.
func (p ChordPair) Matches(a, b string) bool {
	return (p[0] == a && p[1] == b) || (p[0] == b && p[1] == a)
}

// Theory carries the harmonic context the fitness metrics score against:
// preferred chord transitions, known parallel-fifth pairs, idiomatic 3-chord
// progressions, and the functional-harmony role assignments. It is immutable
// for the duration of a run.
type Theory struct {
	Transitions    map[string][]string
	ParallelFifths []ChordPair
	Progressions   [][]string
	TonicOpenings  []string
	FinalTonic     string
	Subdominant    string
	Dominant       string
	NonDiatonic    []string
}

// Validate checks every chord name the theory references against the book.
// A miss is a configuration error; the run must not start.
func (t Theory) Validate(book ChordBook) error {
	for from, successors := range t.Transitions {
		if !book.Contains(from) {
			return fmt.Errorf("transition source not in book: %s", from)
		}
		for _, to := range successors {
			if !book.Contains(to) {
				return fmt.Errorf("transition %s -> %s: successor not in book", from, to)
			}
		}
	}
	for i, pair := range t.ParallelFifths {
		for _, name := range pair {
			if !book.Contains(name) {
				return fmt.Errorf("parallel-fifth pair %d references unknown chord: %s", i, name)
			}
		}
	}
	for i, prog := range t.Progressions {
		if len(prog) != 3 {
			return fmt.Errorf("progression %d must have exactly 3 chords, got %d", i, len(prog))
		}
		for _, name := range prog {
			if !book.Contains(name) {
				return fmt.Errorf("progression %d references unknown chord: %s", i, name)
			}
		}
	}
	for _, name := range t.TonicOpenings {
		if !book.Contains(name) {
			return fmt.Errorf("tonic opening not in book: %s", name)
		}
	}
	if t.FinalTonic != "" && !book.Contains(t.FinalTonic) {
		return fmt.Errorf("final tonic not in book: %s", t.FinalTonic)
	}
	if t.Subdominant != "" && !book.Contains(t.Subdominant) {
		return fmt.Errorf("subdominant not in book: %s", t.Subdominant)
	}
	if t.Dominant != "" && !book.Contains(t.Dominant) {
		return fmt.Errorf("dominant not in book: %s", t.Dominant)
	}
	for _, name := range t.NonDiatonic {
		if !book.Contains(name) {
			return fmt.Errorf("non-diatonic chord not in book: %s", name)
		}
	}
	return nil
}
