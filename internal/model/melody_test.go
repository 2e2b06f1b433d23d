package model

import "testing"

func TestNewMelodyDerivesDurationAndBars(t *testing.T) {
	melody, err := NewMelody([]Note{
		{Pitch: "C5", Duration: 1},
		{Pitch: "D5", Duration: 1},
		{Pitch: "E5", Duration: 2},
		{Pitch: "F5", Duration: 2},
		{Pitch: "G5", Duration: 2},
	})
	if err != nil {
		t.Fatalf("new melody: %v", err)
	}
	if melody.Duration() != 8 {
		t.Fatalf("expected duration 8, got %v", melody.Duration())
	}
	if melody.Bars() != 2 {
		t.Fatalf("expected 2 bars, got %d", melody.Bars())
	}
	if melody.Len() != 5 {
		t.Fatalf("expected 5 notes, got %d", melody.Len())
	}
}

func TestNewMelodyPartialBarRoundsDown(t *testing.T) {
	melody, err := NewMelody([]Note{
		{Pitch: "C5", Duration: 4},
		{Pitch: "D5", Duration: 3},
	})
	if err != nil {
		t.Fatalf("new melody: %v", err)
	}
	if melody.Bars() != 1 {
		t.Fatalf("expected 1 whole bar, got %d", melody.Bars())
	}
}

func TestNewMelodyRejectsMalformedInput(t *testing.T) {
	cases := []struct {
		name  string
		notes []Note
	}{
		{"empty", nil},
		{"zero duration", []Note{{Pitch: "C5", Duration: 0}}},
		{"negative duration", []Note{{Pitch: "C5", Duration: -1}}},
		{"empty pitch", []Note{{Pitch: "", Duration: 1}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewMelody(tc.notes); err == nil {
				t.Fatal("expected construction error")
			}
		})
	}
}

func TestMelodyNotesAreCopied(t *testing.T) {
	input := []Note{{Pitch: "C5", Duration: 4}}
	melody, err := NewMelody(input)
	if err != nil {
		t.Fatalf("new melody: %v", err)
	}

	input[0].Pitch = "X0"
	if melody.At(0).Pitch != "C5" {
		t.Fatal("melody shares storage with the input slice")
	}

	out := melody.Notes()
	out[0].Pitch = "Y0"
	if melody.At(0).Pitch != "C5" {
		t.Fatal("melody shares storage with the output slice")
	}
}
