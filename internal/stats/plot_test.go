package stats

import (
	"os"
	"path/filepath"
	"testing"

	"harmonia/internal/model"
)

func TestWriteFitnessPlot(t *testing.T) {
	runDir := t.TempDir()
	series := []float64{0.1, 0.3, 0.5}
	diagnostics := []model.GenerationDiagnostics{
		{Generation: 1, MeanFitness: 0.05},
		{Generation: 2, MeanFitness: 0.15},
		{Generation: 3, MeanFitness: 0.25},
	}

	outPath, err := WriteFitnessPlot(runDir, series, diagnostics)
	if err != nil {
		t.Fatalf("write plot: %v", err)
	}
	if outPath != filepath.Join(runDir, "fitness_curve.png") {
		t.Fatalf("unexpected plot path: %s", outPath)
	}
	info, err := os.Stat(outPath)
	if err != nil {
		t.Fatalf("stat plot: %v", err)
	}
	if info.Size() == 0 {
		t.Fatal("plot file is empty")
	}
}

func TestWriteFitnessPlotEmptySeries(t *testing.T) {
	if _, err := WriteFitnessPlot(t.TempDir(), nil, nil); err == nil {
		t.Fatal("expected error for empty series")
	}
}
