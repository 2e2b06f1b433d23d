package metric

import "harmonia/internal/model"

// VoiceLeading rewards shared pitch classes between adjacent chords. Each
// shared note contributes 1/(4*(len-1)), normalizing by the maximum possible
// overlap with four-note voicings.
type VoiceLeading struct {
	notes map[string][]string
}

func NewVoiceLeading(book model.ChordBook) *VoiceLeading {
	notes := make(map[string][]string, book.Size())
	for _, name := range book.Names() {
		chordNotes, _ := book.Notes(name)
		notes[name] = chordNotes
	}
	return &VoiceLeading{notes: notes}
}

func (*VoiceLeading) Name() string {
	return VoiceLeadingName
}

func (m *VoiceLeading) Calculate(seq []string) float64 {
	transitions := len(seq) - 1
	share := 1.0 / float64(4*transitions)
	score := 0.0
	for i := 0; i < transitions; i++ {
		next := m.notes[seq[i+1]]
		for _, note := range m.notes[seq[i]] {
			if containsNote(next, note) {
				score += share
			}
		}
	}
	return score
}

// ParallelFifths starts at 1 and subtracts 1/(len-1) for every adjacent pair
// known to produce parallel fifths, in either order. Heavily offending
// sequences can score below zero; that is intentional.
type ParallelFifths struct {
	pairs []model.ChordPair
}

func NewParallelFifths(pairs []model.ChordPair) *ParallelFifths {
	return &ParallelFifths{pairs: pairs}
}

func (*ParallelFifths) Name() string {
	return ParallelFifthsName
}

func (m *ParallelFifths) Calculate(seq []string) float64 {
	transitions := len(seq) - 1
	penalty := 1.0 / float64(transitions)
	score := 1.0
	for i := 0; i < transitions; i++ {
		if m.flagged(seq[i], seq[i+1]) {
			score -= penalty
		}
	}
	return score
}

func (m *ParallelFifths) flagged(a, b string) bool {
	for _, pair := range m.pairs {
		if pair.Matches(a, b) {
			return true
		}
	}
	return false
}
