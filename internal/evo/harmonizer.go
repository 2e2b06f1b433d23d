package evo

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"sync"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/stat"

	"harmonia/internal/model"
)

// Config drives one harmonization run. PopulationSize must be even and at
// least 2 because parents are consumed two at a time; the chord sequence
// length (two chords per melody bar) must be at least 3 so every metric has
// its minimum window.
type Config struct {
	Melody         model.Melody
	Book           model.ChordBook
	Evaluator      *FitnessEvaluator
	PopulationSize int
	MutationRate   float64
	Generations    int
	Seed           int64
	Workers        int
	Selector       Selector
	Logger         *zap.Logger
}

// RunResult carries the winning sequence and per-generation history.
type RunResult struct {
	Best             []string
	BestFitness      float64
	BestByGeneration []float64
	Diagnostics      []model.GenerationDiagnostics
	FinalPopulation  []ScoredSequence
}

// Harmonizer evolves a population of chord sequences against the evaluator.
// All randomness flows through one seeded source, so a fixed seed and fixed
// inputs reproduce the result bit for bit.
type Harmonizer struct {
	cfg    Config
	rng    *rand.Rand
	length int
}

func NewHarmonizer(cfg Config) (*Harmonizer, error) {
	if cfg.Book.Size() == 0 {
		return nil, fmt.Errorf("chord book is required")
	}
	if cfg.Evaluator == nil {
		return nil, fmt.Errorf("fitness evaluator is required")
	}
	if cfg.PopulationSize < 2 {
		return nil, fmt.Errorf("population size must be >= 2, got %d", cfg.PopulationSize)
	}
	if cfg.PopulationSize%2 != 0 {
		return nil, fmt.Errorf("population size must be even, got %d", cfg.PopulationSize)
	}
	if cfg.MutationRate < 0 || cfg.MutationRate > 1 {
		return nil, fmt.Errorf("mutation rate must be in [0, 1], got %v", cfg.MutationRate)
	}
	if cfg.Generations <= 0 {
		return nil, fmt.Errorf("generations must be > 0, got %d", cfg.Generations)
	}

	length := 2 * cfg.Melody.Bars()
	if length < 3 {
		return nil, fmt.Errorf("melody too short: sequence length %d, need at least 3 (2 bars)", length)
	}

	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.Selector == nil {
		cfg.Selector = RouletteSelector{}
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	return &Harmonizer{
		cfg:    cfg,
		rng:    rand.New(rand.NewSource(cfg.Seed)),
		length: length,
	}, nil
}

// SequenceLength is the chord count of every individual: two per bar.
func (h *Harmonizer) SequenceLength() int {
	return h.length
}

func (h *Harmonizer) Run(ctx context.Context) (RunResult, error) {
	population := make([][]string, h.cfg.PopulationSize)
	for i := range population {
		population[i] = RandomSequence(h.rng, h.cfg.Book, h.length)
	}

	bestHistory := make([]float64, 0, h.cfg.Generations)
	diagnostics := make([]model.GenerationDiagnostics, 0, h.cfg.Generations)

	var scored []ScoredSequence
	for gen := 0; gen < h.cfg.Generations; gen++ {
		if err := ctx.Err(); err != nil {
			return RunResult{}, err
		}

		scored = h.evaluatePopulation(population)
		diag := summarizeGeneration(scored, gen+1)
		bestHistory = append(bestHistory, diag.BestFitness)
		diagnostics = append(diagnostics, diag)
		h.cfg.Logger.Debug("generation evaluated",
			zap.Int("generation", gen+1),
			zap.Float64("best_fitness", diag.BestFitness),
			zap.Float64("mean_fitness", diag.MeanFitness),
			zap.Int("unique_sequences", diag.UniqueSequences),
		)

		parents, err := h.selectParents(scored)
		if err != nil {
			return RunResult{}, err
		}
		population = h.breed(parents)
	}

	final := h.evaluatePopulation(population)
	bestIndex := 0
	for i, item := range final {
		if item.Fitness > final[bestIndex].Fitness {
			bestIndex = i
		}
	}
	best := append([]string(nil), final[bestIndex].Chords...)

	h.cfg.Logger.Info("harmonization complete",
		zap.Int("generations", h.cfg.Generations),
		zap.Float64("best_fitness", final[bestIndex].Fitness),
	)

	return RunResult{
		Best:             best,
		BestFitness:      final[bestIndex].Fitness,
		BestByGeneration: bestHistory,
		Diagnostics:      diagnostics,
		FinalPopulation:  final,
	}, nil
}

// evaluatePopulation scores every individual. Workers split the slice by
// index; no randomness is consumed, so the worker count never changes the
// result.
func (h *Harmonizer) evaluatePopulation(population [][]string) []ScoredSequence {
	scored := make([]ScoredSequence, len(population))

	workers := h.cfg.Workers
	if workers > len(population) {
		workers = len(population)
	}
	if workers <= 1 {
		for i, seq := range population {
			scored[i] = ScoredSequence{Chords: seq, Fitness: h.cfg.Evaluator.Evaluate(seq)}
		}
		return scored
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := range jobs {
				scored[i] = ScoredSequence{Chords: population[i], Fitness: h.cfg.Evaluator.Evaluate(population[i])}
			}
		}()
	}
	for i := range population {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return scored
}

func (h *Harmonizer) selectParents(scored []ScoredSequence) ([][]string, error) {
	parents := make([][]string, h.cfg.PopulationSize)
	for i := range parents {
		idx, err := h.cfg.Selector.PickParent(h.rng, scored)
		if err != nil {
			return nil, fmt.Errorf("select parent %d: %w", i, err)
		}
		parents[i] = scored[idx].Chords
	}
	return parents, nil
}

// breed pairs parents consecutively and produces two crossover children per
// pair, mutating each child independently. Population size is preserved
// exactly.
func (h *Harmonizer) breed(parents [][]string) [][]string {
	next := make([][]string, 0, h.cfg.PopulationSize)
	for i := 0; i < h.cfg.PopulationSize; i += 2 {
		first := Crossover(h.rng, parents[i], parents[i+1])
		second := Crossover(h.rng, parents[i+1], parents[i])
		Mutate(h.rng, first, h.cfg.Book, h.cfg.MutationRate)
		Mutate(h.rng, second, h.cfg.Book, h.cfg.MutationRate)
		next = append(next, first, second)
	}
	return next
}

func summarizeGeneration(scored []ScoredSequence, generation int) model.GenerationDiagnostics {
	fitness := make([]float64, len(scored))
	unique := make(map[string]struct{}, len(scored))
	best := scored[0].Fitness
	min := scored[0].Fitness
	for i, item := range scored {
		fitness[i] = item.Fitness
		if item.Fitness > best {
			best = item.Fitness
		}
		if item.Fitness < min {
			min = item.Fitness
		}
		unique[strings.Join(item.Chords, " ")] = struct{}{}
	}

	return model.GenerationDiagnostics{
		Generation:      generation,
		BestFitness:     best,
		MeanFitness:     stat.Mean(fitness, nil),
		MinFitness:      min,
		FitnessStdDev:   stat.StdDev(fitness, nil),
		UniqueSequences: len(unique),
	}
}
