// Package metric implements the scoring heuristics that drive the genetic
// harmonizer. Each metric is a pure function of a chord sequence and context
// fixed at construction; the evaluator combines them with configured weights.
package metric

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"harmonia/internal/model"
)

const (
	ChordMelodyCongruenceName  = "chord_melody_congruence"
	ChordVarietyName           = "chord_variety"
	HarmonicFlowName           = "harmonic_flow"
	FunctionalHarmonyName      = "functional_harmony"
	VoiceLeadingName           = "voice_leading"
	ChordRepetitionsName       = "chord_repetitions"
	FunctionalProgressionsName = "functional_progressions"
	NonDiatonicChordsName      = "non_diatonic_chords"
	ParallelFifthsName         = "parallel_fifths"
)

var (
	ErrMetricExists   = errors.New("metric already registered")
	ErrMetricNotFound = errors.New("metric not found")
)

// Metric scores one chord sequence against context fixed at construction.
// All metrics assume the sequence has at least 2 chords (the window-based
// ones at least 3); the engine enforces that before any metric runs.
type Metric interface {
	Name() string
	Calculate(seq []string) float64
}

// Context is the fixed data metrics are built from.
type Context struct {
	Melody model.Melody
	Book   model.ChordBook
	Theory model.Theory
}

// Builder constructs a metric from run context.
type Builder func(ctx Context) Metric

var metricRegistry = struct {
	mu sync.RWMutex
	m  map[string]Builder
}{
	m: make(map[string]Builder),
}

func Register(name string, builder Builder) error {
	if name == "" {
		return errors.New("metric name is required")
	}
	if builder == nil {
		return errors.New("metric builder is required")
	}

	metricRegistry.mu.Lock()
	defer metricRegistry.mu.Unlock()

	if _, exists := metricRegistry.m[name]; exists {
		return fmt.Errorf("%w: %s", ErrMetricExists, name)
	}
	metricRegistry.m[name] = builder
	return nil
}

func Resolve(name string, ctx Context) (Metric, error) {
	metricRegistry.mu.RLock()
	builder, ok := metricRegistry.m[name]
	metricRegistry.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMetricNotFound, name)
	}
	return builder(ctx), nil
}

func Registered(name string) bool {
	metricRegistry.mu.RLock()
	defer metricRegistry.mu.RUnlock()

	_, ok := metricRegistry.m[name]
	return ok
}

func List() []string {
	metricRegistry.mu.RLock()
	defer metricRegistry.mu.RUnlock()

	names := make([]string, 0, len(metricRegistry.m))
	for name := range metricRegistry.m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func init() {
	builders := map[string]Builder{
		ChordMelodyCongruenceName: func(ctx Context) Metric {
			return NewChordMelodyCongruence(ctx.Melody, ctx.Book)
		},
		ChordVarietyName: func(ctx Context) Metric {
			return NewChordVariety(ctx.Book)
		},
		HarmonicFlowName: func(ctx Context) Metric {
			return NewHarmonicFlow(ctx.Theory.Transitions)
		},
		FunctionalHarmonyName: func(ctx Context) Metric {
			return NewFunctionalHarmony(ctx.Theory)
		},
		VoiceLeadingName: func(ctx Context) Metric {
			return NewVoiceLeading(ctx.Book)
		},
		ChordRepetitionsName: func(ctx Context) Metric {
			return NewChordRepetitions()
		},
		FunctionalProgressionsName: func(ctx Context) Metric {
			return NewFunctionalProgressions(ctx.Theory.Progressions)
		},
		NonDiatonicChordsName: func(ctx Context) Metric {
			return NewNonDiatonicChords(ctx.Theory.NonDiatonic)
		},
		ParallelFifthsName: func(ctx Context) Metric {
			return NewParallelFifths(ctx.Theory.ParallelFifths)
		},
	}
	for name, builder := range builders {
		if err := Register(name, builder); err != nil {
			panic(err)
		}
	}
}
