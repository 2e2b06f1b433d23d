package stats

import (
	"fmt"

	"gonum.org/v1/gonum/stat"
)

// RunSummary condenses a best-by-generation series into the numbers a
// reader wants first: how the run started, where it ended, and how much
// ground it covered.
type RunSummary struct {
	RunID       string  `json:"run_id"`
	Generations int     `json:"generations"`
	InitialBest float64 `json:"initial_best"`
	FinalBest   float64 `json:"final_best"`
	BestMean    float64 `json:"best_mean"`
	BestStdDev  float64 `json:"best_std_dev"`
	BestMax     float64 `json:"best_max"`
	BestMin     float64 `json:"best_min"`
	Improvement float64 `json:"improvement"`
}

func BuildRunSummary(runID string, bestByGeneration []float64) (RunSummary, error) {
	if len(bestByGeneration) == 0 {
		return RunSummary{}, fmt.Errorf("best-by-generation series is empty")
	}

	summary := RunSummary{
		RunID:       runID,
		Generations: len(bestByGeneration),
		InitialBest: bestByGeneration[0],
		FinalBest:   bestByGeneration[len(bestByGeneration)-1],
		BestMean:    stat.Mean(bestByGeneration, nil),
		BestMax:     bestByGeneration[0],
		BestMin:     bestByGeneration[0],
	}
	if len(bestByGeneration) > 1 {
		summary.BestStdDev = stat.StdDev(bestByGeneration, nil)
	}
	for _, best := range bestByGeneration[1:] {
		if best > summary.BestMax {
			summary.BestMax = best
		}
		if best < summary.BestMin {
			summary.BestMin = best
		}
	}
	summary.Improvement = summary.FinalBest - summary.InitialBest
	return summary, nil
}
