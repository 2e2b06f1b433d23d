package storage

import (
	"context"

	"harmonia/internal/model"
)

// Store defines persistence operations for harmonization runs.
type Store interface {
	Init(ctx context.Context) error
	SaveHarmonization(ctx context.Context, h model.Harmonization) error
	GetHarmonization(ctx context.Context, runID string) (model.Harmonization, bool, error)
	ListHarmonizations(ctx context.Context) ([]model.Harmonization, error)
	SaveFitnessHistory(ctx context.Context, runID string, history []float64) error
	GetFitnessHistory(ctx context.Context, runID string) ([]float64, bool, error)
	SaveDiagnostics(ctx context.Context, runID string, diagnostics []model.GenerationDiagnostics) error
	GetDiagnostics(ctx context.Context, runID string) ([]model.GenerationDiagnostics, bool, error)
}
