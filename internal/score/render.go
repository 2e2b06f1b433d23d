// Package score renders a harmonized melody as a plain-text lead sheet.
// Each bar carries two chords of two beats each, shown against the
// melody notes that sound in that bar.
package score

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"harmonia/internal/model"
)

const chordsPerBar = 2

// Render lays out the chord sequence against the melody bar by bar.
// The sequence must hold exactly two chords per melody bar and every
// chord must come from the book.
func Render(melody model.Melody, book model.ChordBook, chords []string) (string, error) {
	bars := melody.Bars()
	if bars == 0 {
		return "", fmt.Errorf("melody is shorter than one bar")
	}
	if len(chords) != bars*chordsPerBar {
		return "", fmt.Errorf("chord count mismatch: got=%d want=%d", len(chords), bars*chordsPerBar)
	}
	if err := book.ValidateSequence(chords); err != nil {
		return "", err
	}

	melodyByBar := splitMelodyByBar(melody, bars)

	var sheet strings.Builder
	fmt.Fprintf(&sheet, "bars: %d  beats: %g  chords: %d\n", bars, melody.Duration(), len(chords))
	sheet.WriteString(strings.Repeat("-", 64) + "\n")
	for bar := 0; bar < bars; bar++ {
		first := chords[bar*chordsPerBar]
		second := chords[bar*chordsPerBar+1]
		fmt.Fprintf(&sheet, "bar %2d | %-8s %-8s | %s\n", bar+1, first, second, formatNotes(melodyByBar[bar]))
	}
	sheet.WriteString(strings.Repeat("-", 64) + "\n")
	for _, name := range usedChords(chords) {
		notes, _ := book.Notes(name)
		fmt.Fprintf(&sheet, "%-8s %s\n", name, strings.Join(notes, " "))
	}
	return sheet.String(), nil
}

// WriteLeadSheet renders the sheet and writes it to lead_sheet.txt in
// runDir, returning the written path.
func WriteLeadSheet(runDir string, melody model.Melody, book model.ChordBook, chords []string) (string, error) {
	sheet, err := Render(melody, book, chords)
	if err != nil {
		return "", err
	}
	path := filepath.Join(runDir, "lead_sheet.txt")
	if err := os.WriteFile(path, []byte(sheet), 0o644); err != nil {
		return "", err
	}
	return path, nil
}

// splitMelodyByBar assigns each note to the bar in which it starts.
// Notes that cross a barline stay with their starting bar.
func splitMelodyByBar(melody model.Melody, bars int) [][]model.Note {
	byBar := make([][]model.Note, bars)
	offset := 0.0
	for _, note := range melody.Notes() {
		bar := int(offset) / model.BeatsPerBar
		if bar >= bars {
			bar = bars - 1
		}
		byBar[bar] = append(byBar[bar], note)
		offset += note.Duration
	}
	return byBar
}

func formatNotes(notes []model.Note) string {
	parts := make([]string, 0, len(notes))
	for _, note := range notes {
		parts = append(parts, fmt.Sprintf("%s:%g", note.Pitch, note.Duration))
	}
	return strings.Join(parts, " ")
}

// usedChords lists the distinct chords of the sequence in first-use order.
func usedChords(chords []string) []string {
	seen := make(map[string]bool, len(chords))
	ordered := make([]string, 0, len(chords))
	for _, name := range chords {
		if seen[name] {
			continue
		}
		seen[name] = true
		ordered = append(ordered, name)
	}
	return ordered
}
