package model

import "fmt"

// BeatsPerBar is fixed: all melodies are interpreted in 4/4 time.
const BeatsPerBar = 4

// Note is one melody event: a pitch name with octave (e.g. "C5") and a
// duration in quarter-note beats.
type Note struct {
	Pitch    string  `json:"pitch" yaml:"pitch"`
	Duration float64 `json:"duration" yaml:"duration"`
}

// Melody is an immutable sequence of notes. Total duration and bar count are
// derived from the notes at construction and never change afterwards.
type Melody struct {
	notes    []Note
	duration float64
	bars     int
}

func NewMelody(notes []Note) (Melody, error) {
	if len(notes) == 0 {
		return Melody{}, fmt.Errorf("melody requires at least one note")
	}
	duration := 0.0
	for i, note := range notes {
		if note.Pitch == "" {
			return Melody{}, fmt.Errorf("melody note %d has empty pitch", i)
		}
		if note.Duration <= 0 {
			return Melody{}, fmt.Errorf("melody note %d has non-positive duration: %v", i, note.Duration)
		}
		duration += note.Duration
	}

	owned := make([]Note, len(notes))
	copy(owned, notes)
	return Melody{
		notes:    owned,
		duration: duration,
		bars:     int(duration) / BeatsPerBar,
	}, nil
}

// Notes returns a copy of the note sequence.
func (m Melody) Notes() []Note {
	out := make([]Note, len(m.notes))
	copy(out, m.notes)
	return out
}

// At returns the note at index i without copying the whole sequence.
func (m Melody) At(i int) Note {
	return m.notes[i]
}

func (m Melody) Len() int {
	return len(m.notes)
}

// Duration is the total melody duration in beats.
func (m Melody) Duration() float64 {
	return m.duration
}

// Bars is the whole-bar count of the melody under 4/4 time.
func (m Melody) Bars() int {
	return m.bars
}
