package metric

import "harmonia/internal/model"

// ChordVariety scores the unique chord count against the vocabulary size,
// rewarding sequences that use more of the available palette.
type ChordVariety struct {
	vocabularySize int
}

func NewChordVariety(book model.ChordBook) *ChordVariety {
	return &ChordVariety{vocabularySize: book.Size()}
}

func (*ChordVariety) Name() string {
	return ChordVarietyName
}

func (m *ChordVariety) Calculate(seq []string) float64 {
	unique := make(map[string]struct{}, len(seq))
	for _, chord := range seq {
		unique[chord] = struct{}{}
	}
	return float64(len(unique)) / float64(m.vocabularySize)
}

// ChordRepetitions starts at 1 and subtracts 1/(len-2) for each immediate
// repeat (i == i+1) and separately for each one-apart repeat (i == i+2).
// The score is not clamped and goes negative for very repetitive sequences.
type ChordRepetitions struct{}

func NewChordRepetitions() *ChordRepetitions {
	return &ChordRepetitions{}
}

func (*ChordRepetitions) Name() string {
	return ChordRepetitionsName
}

func (*ChordRepetitions) Calculate(seq []string) float64 {
	windows := len(seq) - 2
	penalty := 1.0 / float64(windows)
	score := 1.0
	for i := 0; i < windows; i++ {
		if seq[i] == seq[i+1] {
			score -= penalty
		}
		if seq[i] == seq[i+2] {
			score -= penalty
		}
	}
	return score
}

// NonDiatonicChords rewards borrowed color: each chord belonging to the
// non-diatonic set contributes 1/len.
type NonDiatonicChords struct {
	set map[string]struct{}
}

func NewNonDiatonicChords(names []string) *NonDiatonicChords {
	set := make(map[string]struct{}, len(names))
	for _, name := range names {
		set[name] = struct{}{}
	}
	return &NonDiatonicChords{set: set}
}

func (*NonDiatonicChords) Name() string {
	return NonDiatonicChordsName
}

func (m *NonDiatonicChords) Calculate(seq []string) float64 {
	share := 1.0 / float64(len(seq))
	score := 0.0
	for _, chord := range seq {
		if _, ok := m.set[chord]; ok {
			score += share
		}
	}
	return score
}
