package evo

import (
	"testing"

	"harmonia/internal/metric"
	"harmonia/internal/model"
	"harmonia/internal/theory"
)

func testContext(t *testing.T) (metric.Context, model.ChordBook) {
	t.Helper()

	cfg := theory.Default()
	book, err := cfg.Validate()
	if err != nil {
		t.Fatalf("validate default theory: %v", err)
	}
	melody, err := model.NewMelody(theory.DemoMelody())
	if err != nil {
		t.Fatalf("new melody: %v", err)
	}
	return metric.Context{Melody: melody, Book: book, Theory: cfg.Theory}, book
}

func TestEvaluateEmptyWeightsIsZero(t *testing.T) {
	ctx, _ := testContext(t)
	evaluator, err := NewFitnessEvaluator(ctx, nil)
	if err != nil {
		t.Fatalf("new evaluator: %v", err)
	}

	seq := []string{"Cmaj7", "G7", "Dm7", "Am7"}
	if got := evaluator.Evaluate(seq); got != 0.0 {
		t.Fatalf("expected 0.0 with empty weights, got %v", got)
	}
}

func TestEvaluateIsIdempotent(t *testing.T) {
	ctx, _ := testContext(t)
	evaluator, err := NewFitnessEvaluator(ctx, theory.Default().Weights)
	if err != nil {
		t.Fatalf("new evaluator: %v", err)
	}

	seq := []string{"Cmaj7", "Dm7", "G7", "Cmaj7", "Fmaj7", "G7"}
	first := evaluator.Evaluate(seq)
	second := evaluator.Evaluate(seq)
	if first != second {
		t.Fatalf("evaluation not idempotent: %v vs %v", first, second)
	}
}

func TestEvaluateSingleWeightMatchesMetric(t *testing.T) {
	ctx, book := testContext(t)
	evaluator, err := NewFitnessEvaluator(ctx, map[string]float64{
		metric.ChordVarietyName: 2.0,
	})
	if err != nil {
		t.Fatalf("new evaluator: %v", err)
	}

	seq := []string{"Cmaj7", "G7", "Cmaj7", "G7"}
	want := 2.0 * (2.0 / float64(book.Size()))
	if got := evaluator.Evaluate(seq); got != want {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestNewFitnessEvaluatorRejectsBadWeights(t *testing.T) {
	ctx, _ := testContext(t)

	if _, err := NewFitnessEvaluator(ctx, map[string]float64{"no_such_metric": 1}); err == nil {
		t.Fatal("expected error for unknown metric name")
	}
	if _, err := NewFitnessEvaluator(ctx, map[string]float64{metric.HarmonicFlowName: -0.5}); err == nil {
		t.Fatal("expected error for negative weight")
	}
}

func TestBestOfStableTieBreak(t *testing.T) {
	ctx, _ := testContext(t)
	evaluator, err := NewFitnessEvaluator(ctx, nil)
	if err != nil {
		t.Fatalf("new evaluator: %v", err)
	}

	// All sequences evaluate to 0 under empty weights; the first must win.
	seqs := [][]string{
		{"G7", "G7", "G7", "G7"},
		{"Cmaj7", "Dm7", "G7", "Cmaj7"},
	}
	best, fitness, err := evaluator.BestOf(seqs)
	if err != nil {
		t.Fatalf("best of: %v", err)
	}
	if fitness != 0 {
		t.Fatalf("expected fitness 0, got %v", fitness)
	}
	if best[0] != "G7" {
		t.Fatalf("tie not broken by first-encountered order: %v", best)
	}

	if _, _, err := evaluator.BestOf(nil); err == nil {
		t.Fatal("expected error for empty input")
	}
}

func TestBreakdownCoversAllMetrics(t *testing.T) {
	ctx, _ := testContext(t)
	evaluator, err := NewFitnessEvaluator(ctx, nil)
	if err != nil {
		t.Fatalf("new evaluator: %v", err)
	}

	scores := evaluator.Breakdown([]string{"Cmaj7", "Dm7", "G7", "Cmaj7"})
	for _, name := range metric.List() {
		if _, ok := scores[name]; !ok {
			t.Fatalf("breakdown missing metric %s", name)
		}
	}
}
