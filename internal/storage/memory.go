package storage

import (
	"context"
	"sort"
	"sync"

	"harmonia/internal/model"
)

type MemoryStore struct {
	mu             sync.RWMutex
	initialized    bool
	harmonizations map[string]model.Harmonization
	history        map[string][]float64
	diagnostics    map[string][]model.GenerationDiagnostics
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Init is idempotent: a second call keeps the stored records.
func (s *MemoryStore) Init(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized {
		return nil
	}
	s.initialized = true
	s.harmonizations = make(map[string]model.Harmonization)
	s.history = make(map[string][]float64)
	s.diagnostics = make(map[string][]model.GenerationDiagnostics)
	return nil
}

func (s *MemoryStore) SaveHarmonization(_ context.Context, h model.Harmonization) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.harmonizations[h.RunID] = h
	return nil
}

func (s *MemoryStore) GetHarmonization(_ context.Context, runID string) (model.Harmonization, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	h, ok := s.harmonizations[runID]
	return h, ok, nil
}

func (s *MemoryStore) ListHarmonizations(_ context.Context) ([]model.Harmonization, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Harmonization, 0, len(s.harmonizations))
	for _, h := range s.harmonizations {
		out = append(out, h)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RunID < out[j].RunID })
	return out, nil
}

func (s *MemoryStore) SaveFitnessHistory(_ context.Context, runID string, history []float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.history[runID] = append([]float64(nil), history...)
	return nil
}

func (s *MemoryStore) GetFitnessHistory(_ context.Context, runID string) ([]float64, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	history, ok := s.history[runID]
	if !ok {
		return nil, false, nil
	}
	return append([]float64(nil), history...), true, nil
}

func (s *MemoryStore) SaveDiagnostics(_ context.Context, runID string, diagnostics []model.GenerationDiagnostics) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.diagnostics[runID] = append([]model.GenerationDiagnostics(nil), diagnostics...)
	return nil
}

func (s *MemoryStore) GetDiagnostics(_ context.Context, runID string) ([]model.GenerationDiagnostics, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	diagnostics, ok := s.diagnostics[runID]
	if !ok {
		return nil, false, nil
	}
	return append([]model.GenerationDiagnostics(nil), diagnostics...), true, nil
}
