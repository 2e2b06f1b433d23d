package stats

import (
	"math"
	"testing"
)

func TestBuildRunSummary(t *testing.T) {
	series := []float64{0.2, 0.5, 0.4, 0.8}
	summary, err := BuildRunSummary("run-1", series)
	if err != nil {
		t.Fatalf("build summary: %v", err)
	}

	if summary.RunID != "run-1" || summary.Generations != 4 {
		t.Fatalf("summary identity mismatch: %+v", summary)
	}
	if summary.InitialBest != 0.2 || summary.FinalBest != 0.8 {
		t.Fatalf("endpoint mismatch: %+v", summary)
	}
	if summary.BestMax != 0.8 || summary.BestMin != 0.2 {
		t.Fatalf("extrema mismatch: %+v", summary)
	}
	if math.Abs(summary.BestMean-0.475) > 1e-12 {
		t.Fatalf("mean mismatch: %v", summary.BestMean)
	}
	if math.Abs(summary.Improvement-0.6) > 1e-12 {
		t.Fatalf("improvement mismatch: %v", summary.Improvement)
	}
	if summary.BestStdDev <= 0 {
		t.Fatalf("expected positive std dev, got %v", summary.BestStdDev)
	}
}

func TestBuildRunSummarySingleGeneration(t *testing.T) {
	summary, err := BuildRunSummary("run-1", []float64{0.3})
	if err != nil {
		t.Fatalf("build summary: %v", err)
	}
	if summary.BestStdDev != 0 {
		t.Fatalf("expected zero std dev for one sample, got %v", summary.BestStdDev)
	}
	if summary.Improvement != 0 {
		t.Fatalf("expected zero improvement, got %v", summary.Improvement)
	}
}

func TestBuildRunSummaryEmptySeries(t *testing.T) {
	if _, err := BuildRunSummary("run-1", nil); err == nil {
		t.Fatal("expected error for empty series")
	}
}
