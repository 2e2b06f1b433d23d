package metric

import "harmonia/internal/model"

// HarmonicFlow scores the fraction of adjacent chord pairs whose successor
// is among the first chord's preferred transitions.
type HarmonicFlow struct {
	transitions map[string][]string
}

func NewHarmonicFlow(transitions map[string][]string) *HarmonicFlow {
	return &HarmonicFlow{transitions: transitions}
}

func (*HarmonicFlow) Name() string {
	return HarmonicFlowName
}

func (m *HarmonicFlow) Calculate(seq []string) float64 {
	transitions := len(seq) - 1
	share := 1.0 / float64(transitions)
	score := 0.0
	for i := 0; i < transitions; i++ {
		if containsNote(m.transitions[seq[i]], seq[i+1]) {
			score += share
		}
	}
	return score
}

// FunctionalHarmony checks three independent conventions, each worth 1/3:
// the sequence opens on a tonic-family chord, closes on the final tonic,
// and touches both the subdominant and the dominant somewhere.
type FunctionalHarmony struct {
	tonicOpenings []string
	finalTonic    string
	subdominant   string
	dominant      string
}

func NewFunctionalHarmony(theory model.Theory) *FunctionalHarmony {
	return &FunctionalHarmony{
		tonicOpenings: theory.TonicOpenings,
		finalTonic:    theory.FinalTonic,
		subdominant:   theory.Subdominant,
		dominant:      theory.Dominant,
	}
}

func (*FunctionalHarmony) Name() string {
	return FunctionalHarmonyName
}

func (m *FunctionalHarmony) Calculate(seq []string) float64 {
	const share = 1.0 / 3
	score := 0.0
	if containsNote(m.tonicOpenings, seq[0]) {
		score += share
	}
	if seq[len(seq)-1] == m.finalTonic {
		score += share
	}
	if containsNote(seq, m.subdominant) && containsNote(seq, m.dominant) {
		score += share
	}
	return score
}

// FunctionalProgressions rewards every 3-chord window that exactly matches
// one of the idiomatic progressions, 3/(len-2) per hit.
type FunctionalProgressions struct {
	progressions [][]string
}

func NewFunctionalProgressions(progressions [][]string) *FunctionalProgressions {
	return &FunctionalProgressions{progressions: progressions}
}

func (*FunctionalProgressions) Name() string {
	return FunctionalProgressionsName
}

func (m *FunctionalProgressions) Calculate(seq []string) float64 {
	windows := len(seq) - 2
	share := 3.0 / float64(windows)
	score := 0.0
	for i := 0; i < windows; i++ {
		if m.matches(seq[i], seq[i+1], seq[i+2]) {
			score += share
		}
	}
	return score
}

func (m *FunctionalProgressions) matches(a, b, c string) bool {
	for _, prog := range m.progressions {
		if len(prog) == 3 && prog[0] == a && prog[1] == b && prog[2] == c {
			return true
		}
	}
	return false
}
