package evo

import (
	"math/rand"
	"testing"
)

func scoredFixture(fitness ...float64) []ScoredSequence {
	out := make([]ScoredSequence, len(fitness))
	for i, f := range fitness {
		out[i] = ScoredSequence{Chords: []string{"Cmaj7", "G7", "Dm7", "Am7"}, Fitness: f}
	}
	return out
}

func TestRouletteFavorsHigherFitness(t *testing.T) {
	scored := scoredFixture(0.1, 0.9)
	rng := rand.New(rand.NewSource(7))
	selector := RouletteSelector{}

	counts := [2]int{}
	for i := 0; i < 2000; i++ {
		idx, err := selector.PickParent(rng, scored)
		if err != nil {
			t.Fatalf("pick parent: %v", err)
		}
		counts[idx]++
	}
	if counts[1] <= counts[0] {
		t.Fatalf("expected high-fitness individual picked more often: %v", counts)
	}
	// 90/10 split should not look anywhere near uniform.
	if counts[1] < 1500 {
		t.Fatalf("selection pressure too weak: %v", counts)
	}
}

func TestRouletteUniformFallbackOnZeroWeights(t *testing.T) {
	scored := scoredFixture(0, 0, 0, 0)
	rng := rand.New(rand.NewSource(3))
	selector := RouletteSelector{}

	counts := make([]int, len(scored))
	for i := 0; i < 4000; i++ {
		idx, err := selector.PickParent(rng, scored)
		if err != nil {
			t.Fatalf("pick parent: %v", err)
		}
		counts[idx]++
	}
	for i, c := range counts {
		if c < 800 || c > 1200 {
			t.Fatalf("index %d picked %d times, expected roughly uniform: %v", i, c, counts)
		}
	}
}

func TestRouletteClampsNegativeFitness(t *testing.T) {
	scored := scoredFixture(-5, 1)
	rng := rand.New(rand.NewSource(5))
	selector := RouletteSelector{}

	for i := 0; i < 500; i++ {
		idx, err := selector.PickParent(rng, scored)
		if err != nil {
			t.Fatalf("pick parent: %v", err)
		}
		if idx == 0 {
			t.Fatal("negative-fitness individual selected while a positive one exists")
		}
	}
}

func TestRouletteDeterministicUnderFixedSeed(t *testing.T) {
	scored := scoredFixture(0.3, 0.2, 0.5)
	selector := RouletteSelector{}

	var first, second []int
	for run := 0; run < 2; run++ {
		rng := rand.New(rand.NewSource(99))
		picks := make([]int, 0, 50)
		for i := 0; i < 50; i++ {
			idx, err := selector.PickParent(rng, scored)
			if err != nil {
				t.Fatalf("pick parent: %v", err)
			}
			picks = append(picks, idx)
		}
		if run == 0 {
			first = picks
		} else {
			second = picks
		}
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("pick %d differs across identically-seeded runs: %d vs %d", i, first[i], second[i])
		}
	}
}

func TestTournamentPrefersBestOfSample(t *testing.T) {
	scored := scoredFixture(0.1, 0.2, 0.9)
	rng := rand.New(rand.NewSource(11))
	selector := TournamentSelector{Size: 3}

	wins := 0
	const trials = 1000
	for i := 0; i < trials; i++ {
		idx, err := selector.PickParent(rng, scored)
		if err != nil {
			t.Fatalf("pick parent: %v", err)
		}
		if idx == 2 {
			wins++
		}
	}
	if wins < trials/2 {
		t.Fatalf("expected best individual to dominate tournaments, won %d/%d", wins, trials)
	}
}

func TestSelectorErrors(t *testing.T) {
	if _, err := (RouletteSelector{}).PickParent(nil, scoredFixture(1)); err == nil {
		t.Fatal("expected error for nil rng")
	}
	rng := rand.New(rand.NewSource(1))
	if _, err := (RouletteSelector{}).PickParent(rng, nil); err == nil {
		t.Fatal("expected error for empty population")
	}
	if _, err := (TournamentSelector{}).PickParent(rng, nil); err == nil {
		t.Fatal("expected error for empty population")
	}
}

func TestNewSelector(t *testing.T) {
	for _, name := range []string{"", "roulette", "tournament"} {
		if _, err := NewSelector(name); err != nil {
			t.Fatalf("new selector %q: %v", name, err)
		}
	}
	if _, err := NewSelector("rank"); err == nil {
		t.Fatal("expected error for unsupported selector")
	}
}
