package metric

import "harmonia/internal/model"

// ChordMelodyCongruence rewards chords that contain the melody notes
// sounding against them. The walk hands each chord a 4-beat window of
// melody: note durations accumulate until 4 beats are consumed, then the
// next chord takes over. A note whose pitch letter is among the chord's
// pitch classes contributes its duration to the score, which is finally
// normalized by the total melody duration.
//
// The 4-beat window is deliberate even though chords land every 2 beats in
// the rendered score; changing it would change which notes each chord is
// credited for.
type ChordMelodyCongruence struct {
	melody model.Melody
	notes  map[string][]string
}

func NewChordMelodyCongruence(melody model.Melody, book model.ChordBook) *ChordMelodyCongruence {
	notes := make(map[string][]string, book.Size())
	for _, name := range book.Names() {
		chordNotes, _ := book.Notes(name)
		notes[name] = chordNotes
	}
	return &ChordMelodyCongruence{melody: melody, notes: notes}
}

func (*ChordMelodyCongruence) Name() string {
	return ChordMelodyCongruenceName
}

func (m *ChordMelodyCongruence) Calculate(seq []string) float64 {
	score := 0.0
	melodyIndex := 0
	for _, chord := range seq {
		window := 0.0
		for window < model.BeatsPerBar && melodyIndex < m.melody.Len() {
			note := m.melody.At(melodyIndex)
			if containsNote(m.notes[chord], pitchLetter(note.Pitch)) {
				score += note.Duration
			}
			window += note.Duration
			melodyIndex++
		}
	}
	return score / m.melody.Duration()
}

// pitchLetter strips octave and accidental: "F#5" scores as "F".
func pitchLetter(pitch string) string {
	return pitch[:1]
}

func containsNote(notes []string, note string) bool {
	for _, n := range notes {
		if n == note {
			return true
		}
	}
	return false
}
