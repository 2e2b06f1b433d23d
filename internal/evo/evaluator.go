package evo

import (
	"fmt"

	"harmonia/internal/metric"
)

// FitnessEvaluator combines every registered metric into one scalar score
// per chord sequence. Metrics missing from the weight mapping weigh zero;
// that is the documented default, not an error. Every call recomputes all
// metrics from scratch, so evaluation is idempotent and side-effect-free.
type FitnessEvaluator struct {
	metrics []metric.Metric
	weights map[string]float64
}

func NewFitnessEvaluator(ctx metric.Context, weights map[string]float64) (*FitnessEvaluator, error) {
	for name, weight := range weights {
		if !metric.Registered(name) {
			return nil, fmt.Errorf("weight references unknown metric: %s", name)
		}
		if weight < 0 {
			return nil, fmt.Errorf("weight for %s must be >= 0, got %v", name, weight)
		}
	}

	names := metric.List()
	metrics := make([]metric.Metric, 0, len(names))
	for _, name := range names {
		m, err := metric.Resolve(name, ctx)
		if err != nil {
			return nil, err
		}
		metrics = append(metrics, m)
	}

	owned := make(map[string]float64, len(weights))
	for name, weight := range weights {
		owned[name] = weight
	}
	return &FitnessEvaluator{metrics: metrics, weights: owned}, nil
}

// Evaluate returns the weighted sum of all metric scores for the sequence.
func (e *FitnessEvaluator) Evaluate(seq []string) float64 {
	total := 0.0
	for _, m := range e.metrics {
		weight := e.weights[m.Name()]
		if weight == 0 {
			continue
		}
		total += weight * m.Calculate(seq)
	}
	return total
}

// Breakdown returns the unweighted score of each metric, keyed by name.
func (e *FitnessEvaluator) Breakdown(seq []string) map[string]float64 {
	out := make(map[string]float64, len(e.metrics))
	for _, m := range e.metrics {
		out[m.Name()] = m.Calculate(seq)
	}
	return out
}

// BestOf returns the highest-fitness sequence; ties keep the earliest.
func (e *FitnessEvaluator) BestOf(seqs [][]string) ([]string, float64, error) {
	if len(seqs) == 0 {
		return nil, 0, fmt.Errorf("best-of requires at least one sequence")
	}
	best := seqs[0]
	bestFitness := e.Evaluate(seqs[0])
	for _, seq := range seqs[1:] {
		if fitness := e.Evaluate(seq); fitness > bestFitness {
			best = seq
			bestFitness = fitness
		}
	}
	return best, bestFitness, nil
}
