package stats

import (
	"fmt"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"harmonia/internal/model"
)

// WriteFitnessPlot renders the best and mean fitness curves of a run to
// fitness_curve.png inside runDir and returns the rendered path.
func WriteFitnessPlot(runDir string, bestByGeneration []float64, diagnostics []model.GenerationDiagnostics) (string, error) {
	if len(bestByGeneration) == 0 {
		return "", fmt.Errorf("best-by-generation series is empty")
	}

	p := plot.New()
	p.Title.Text = "Fitness over generations"
	p.X.Label.Text = "generation"
	p.Y.Label.Text = "fitness"

	bestPts := make(plotter.XYs, len(bestByGeneration))
	for i, best := range bestByGeneration {
		bestPts[i].X = float64(i + 1)
		bestPts[i].Y = best
	}
	bestLine, err := plotter.NewLine(bestPts)
	if err != nil {
		return "", err
	}
	p.Add(bestLine)
	p.Legend.Add("best", bestLine)

	if len(diagnostics) > 0 {
		meanPts := make(plotter.XYs, len(diagnostics))
		for i, diag := range diagnostics {
			meanPts[i].X = float64(diag.Generation)
			meanPts[i].Y = diag.MeanFitness
		}
		meanLine, err := plotter.NewLine(meanPts)
		if err != nil {
			return "", err
		}
		meanLine.LineStyle.Dashes = []vg.Length{vg.Points(3), vg.Points(3)}
		p.Add(meanLine)
		p.Legend.Add("mean", meanLine)
	}

	outPath := filepath.Join(runDir, "fitness_curve.png")
	if err := p.Save(6*vg.Inch, 4*vg.Inch, outPath); err != nil {
		return "", err
	}
	return outPath, nil
}
