// Package theory supplies the harmonic configuration a run scores against:
// the chord vocabulary, preferred transitions, flagged parallel fifths,
// idiomatic progressions, and metric weights. The built-in defaults describe
// jazz harmony in C major; user YAML files can replace any part of them.
package theory

import (
	"harmonia/internal/metric"
	"harmonia/internal/model"
)

// Config bundles everything the evaluator and engine need besides the
// melody and the GA hyperparameters.
type Config struct {
	Chords  map[string][]string
	Theory  model.Theory
	Weights map[string]float64
}

// Default returns the built-in C-major jazz configuration.
func Default() Config {
	return Config{
		Chords: map[string][]string{
			"Cmaj7": {"C", "E", "G", "B"},
			"Dm7":   {"D", "F", "A", "C"},
			"Em7":   {"E", "G", "B", "D"},
			"Fmaj7": {"F", "A", "C", "E"},
			"G7":    {"G", "B", "D", "F"},
			"Am7":   {"A", "C", "E", "G"},
			"Bm7b5": {"B", "D", "F", "A"},
			"C7":    {"C", "E", "G", "Bb"},
			"D7":    {"D", "F#", "A", "C"},
			"E7":    {"E", "G#", "B", "D"},
			"A7":    {"A", "C#", "E", "G"},
			"Dm7b5": {"D", "F", "Ab", "C"},
			"Eº7":   {"E", "G", "Bb", "Db"},
			"Gmin7": {"G", "Bb", "D", "F"},
		},
		Theory: model.Theory{
			Transitions: map[string][]string{
				"Cmaj7": {"Em7", "Fmaj7", "Am7", "C7", "E7", "A7", "Eº7"},
				"Dm7":   {"G7", "Am7", "Bm7b5", "D7"},
				"Em7":   {"Am7", "A7", "Eº7", "Gmin7"},
				"Fmaj7": {"Cmaj7", "Em7", "G7", "Bm7b5", "D7", "E7", "Dm7b5"},
				"G7":    {"Cmaj7", "Am7", "Em7"},
				"Am7":   {"Dm7", "Fmaj7", "Gmin7", "Dm7b5"},
				"Bm7b5": {"Em7", "E7"},
				"C7":    {"Fmaj7"},
				"D7":    {"G7"},
				"E7":    {"Am7"},
				"A7":    {"Dm7"},
				"Dm7b5": {"Cmaj7", "Em7"},
				"Eº7":   {"Dm7", "Fmaj7"},
				"Gmin7": {"C7", "Eº7"},
			},
			ParallelFifths: []model.ChordPair{
				{"Cmaj7", "Dm7"},
				{"Cmaj7", "D7"},
				{"Dm7", "Em7"},
				{"Dm7", "E7"},
				{"Em7", "D7"},
				{"Am7", "Bm7b5"},
				{"Bm7b5", "Cmaj7"},
				{"Bm7b5", "C7"},
				{"D7", "E7"},
			},
			Progressions: [][]string{
				{"Dm7", "G7", "Cmaj7"},
				{"Fmaj7", "Dm7b5", "Cmaj7"},
				{"Em7", "A7", "Dm7"},
				{"Cmaj7", "Eº7", "Dm7"},
				{"Fmaj7", "Bm7b5", "Em7"},
				{"Fmaj7", "Bm7b5", "E7"},
				{"Gmin7", "C7", "Fmaj7"},
				{"Am7", "D7", "G7"},
				{"Am7", "Dm7", "G7"},
				{"Bm7b5", "E7", "Am7"},
				{"Bm7b5", "Em7", "Am7"},
			},
			TonicOpenings: []string{"Cmaj7", "Fmaj7"},
			FinalTonic:    "Cmaj7",
			Subdominant:   "Fmaj7",
			Dominant:      "G7",
			NonDiatonic:   []string{"C7", "D7", "E7", "A7", "Dm7b5", "Eº7", "Gmin7"},
		},
		Weights: map[string]float64{
			metric.ChordMelodyCongruenceName:  0.24,
			metric.ChordVarietyName:           0.08,
			metric.HarmonicFlowName:           0.18,
			metric.FunctionalHarmonyName:      0.10,
			metric.VoiceLeadingName:           0.02,
			metric.ChordRepetitionsName:       0.06,
			metric.NonDiatonicChordsName:      0.06,
			metric.FunctionalProgressionsName: 0.25,
			metric.ParallelFifthsName:         0.01,
		},
	}
}

// DemoMelody is the bundled "Twinkle, Twinkle, Little Star" melody used by
// the CLI when no melody file is given.
func DemoMelody() []model.Note {
	return []model.Note{
		{Pitch: "C5", Duration: 1},
		{Pitch: "C5", Duration: 1},
		{Pitch: "G5", Duration: 1},
		{Pitch: "G5", Duration: 1},
		{Pitch: "A5", Duration: 1},
		{Pitch: "A5", Duration: 1},
		{Pitch: "G5", Duration: 2},
		{Pitch: "F5", Duration: 1},
		{Pitch: "F5", Duration: 1},
		{Pitch: "E5", Duration: 1},
		{Pitch: "E5", Duration: 1},
		{Pitch: "D5", Duration: 1},
		{Pitch: "D5", Duration: 1},
		{Pitch: "C5", Duration: 2},
		{Pitch: "G5", Duration: 1},
		{Pitch: "G5", Duration: 1},
		{Pitch: "F5", Duration: 1},
		{Pitch: "F5", Duration: 1},
		{Pitch: "E5", Duration: 1},
		{Pitch: "E5", Duration: 1},
		{Pitch: "D5", Duration: 2},
		{Pitch: "G5", Duration: 1},
		{Pitch: "G5", Duration: 1},
		{Pitch: "F5", Duration: 1},
		{Pitch: "F5", Duration: 1},
		{Pitch: "E5", Duration: 1},
		{Pitch: "E5", Duration: 1},
		{Pitch: "D5", Duration: 2},
		{Pitch: "C5", Duration: 1},
		{Pitch: "C5", Duration: 1},
		{Pitch: "G5", Duration: 1},
		{Pitch: "G5", Duration: 1},
		{Pitch: "A5", Duration: 1},
		{Pitch: "A5", Duration: 1},
		{Pitch: "G5", Duration: 2},
		{Pitch: "F5", Duration: 1},
		{Pitch: "F5", Duration: 1},
		{Pitch: "E5", Duration: 1},
		{Pitch: "E5", Duration: 1},
		{Pitch: "D5", Duration: 1},
		{Pitch: "D5", Duration: 1},
		{Pitch: "C5", Duration: 2},
	}
}
