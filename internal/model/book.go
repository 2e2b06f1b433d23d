package model

import (
	"fmt"
	"sort"
)

// ChordBook is the chord vocabulary: each chord name maps to the ordered
// pitch-class letters it is voiced with. The name list is kept sorted so
// that index-based random draws are reproducible across runs.
type ChordBook struct {
	names []string
	notes map[string][]string
}

func NewChordBook(mapping map[string][]string) (ChordBook, error) {
	if len(mapping) == 0 {
		return ChordBook{}, fmt.Errorf("chord book requires at least one chord")
	}

	names := make([]string, 0, len(mapping))
	notes := make(map[string][]string, len(mapping))
	for name, chordNotes := range mapping {
		if name == "" {
			return ChordBook{}, fmt.Errorf("chord book contains an empty chord name")
		}
		if len(chordNotes) == 0 {
			return ChordBook{}, fmt.Errorf("chord %s has no notes", name)
		}
		names = append(names, name)
		notes[name] = append([]string(nil), chordNotes...)
	}
	sort.Strings(names)

	return ChordBook{names: names, notes: notes}, nil
}

// Names returns the chord names in sorted order.
func (b ChordBook) Names() []string {
	return append([]string(nil), b.names...)
}

// Name returns the i-th chord name in sorted order.
func (b ChordBook) Name(i int) string {
	return b.names[i]
}

// Notes returns the pitch-class letters of a chord.
func (b ChordBook) Notes(name string) ([]string, bool) {
	chordNotes, ok := b.notes[name]
	if !ok {
		return nil, false
	}
	return append([]string(nil), chordNotes...), true
}

func (b ChordBook) Contains(name string) bool {
	_, ok := b.notes[name]
	return ok
}

func (b ChordBook) Size() int {
	return len(b.names)
}

// ValidateSequence checks that every chord of a sequence is in the book.
func (b ChordBook) ValidateSequence(seq []string) error {
	for i, name := range seq {
		if !b.Contains(name) {
			return fmt.Errorf("sequence chord %d not in book: %s", i, name)
		}
	}
	return nil
}
