package evo

import (
	"fmt"
	"math/rand"
)

// ScoredSequence pairs a chord sequence with its evaluated fitness.
type ScoredSequence struct {
	Chords  []string
	Fitness float64
}

// Selector picks one parent index from a scored population.
type Selector interface {
	Name() string
	PickParent(rng *rand.Rand, scored []ScoredSequence) (int, error)
}

// RouletteSelector samples fitness-proportionately with replacement.
// Negative fitness values are clamped to zero for weighting purposes only;
// if every weight is zero the draw falls back to uniform. Raw fitness is
// never altered.
type RouletteSelector struct{}

func (RouletteSelector) Name() string {
	return "roulette"
}

func (RouletteSelector) PickParent(rng *rand.Rand, scored []ScoredSequence) (int, error) {
	if rng == nil {
		return 0, fmt.Errorf("random source is required")
	}
	if len(scored) == 0 {
		return 0, fmt.Errorf("population is empty")
	}

	total := 0.0
	for _, item := range scored {
		if item.Fitness > 0 {
			total += item.Fitness
		}
	}
	if total <= 0 {
		return rng.Intn(len(scored)), nil
	}

	pick := rng.Float64() * total
	acc := 0.0
	for i, item := range scored {
		if item.Fitness <= 0 {
			continue
		}
		acc += item.Fitness
		if pick <= acc {
			return i, nil
		}
	}
	// Float accumulation can land a hair past the last positive weight.
	for i := len(scored) - 1; i >= 0; i-- {
		if scored[i].Fitness > 0 {
			return i, nil
		}
	}
	return len(scored) - 1, nil
}

// TournamentSelector samples Size candidates uniformly and keeps the best
// raw fitness among them.
type TournamentSelector struct {
	Size int
}

func (TournamentSelector) Name() string {
	return "tournament"
}

func (s TournamentSelector) PickParent(rng *rand.Rand, scored []ScoredSequence) (int, error) {
	if rng == nil {
		return 0, fmt.Errorf("random source is required")
	}
	if len(scored) == 0 {
		return 0, fmt.Errorf("population is empty")
	}

	size := s.Size
	if size <= 0 {
		size = 3
	}
	if size > len(scored) {
		size = len(scored)
	}

	best := rng.Intn(len(scored))
	for i := 1; i < size; i++ {
		candidate := rng.Intn(len(scored))
		if scored[candidate].Fitness > scored[best].Fitness {
			best = candidate
		}
	}
	return best, nil
}

// NewSelector resolves a selector by name; the empty name means roulette.
func NewSelector(name string) (Selector, error) {
	switch name {
	case "", "roulette":
		return RouletteSelector{}, nil
	case "tournament":
		return TournamentSelector{}, nil
	default:
		return nil, fmt.Errorf("unsupported selector: %s", name)
	}
}
