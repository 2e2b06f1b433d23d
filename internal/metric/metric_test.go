package metric

import (
	"testing"

	"harmonia/internal/model"
)

func testBook(t *testing.T) model.ChordBook {
	t.Helper()
	book, err := model.NewChordBook(map[string][]string{
		"Cmaj7": {"C", "E", "G", "B"},
		"Dm7":   {"D", "F", "A", "C"},
		"G7":    {"G", "B", "D", "F"},
		"Am7":   {"A", "C", "E", "G"},
		"Fmaj7": {"F", "A", "C", "E"},
		"D7":    {"D", "F#", "A", "C"},
	})
	if err != nil {
		t.Fatalf("new chord book: %v", err)
	}
	return book
}

func testMelody(t *testing.T, notes ...model.Note) model.Melody {
	t.Helper()
	melody, err := model.NewMelody(notes)
	if err != nil {
		t.Fatalf("new melody: %v", err)
	}
	return melody
}

func approx(t *testing.T, got, want float64) {
	t.Helper()
	const eps = 1e-12
	if diff := got - want; diff > eps || diff < -eps {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestRegistryListsAllNineMetrics(t *testing.T) {
	names := List()
	if len(names) != 9 {
		t.Fatalf("expected 9 registered metrics, got %d: %v", len(names), names)
	}
	for _, name := range []string{
		ChordMelodyCongruenceName,
		ChordVarietyName,
		HarmonicFlowName,
		FunctionalHarmonyName,
		VoiceLeadingName,
		ChordRepetitionsName,
		FunctionalProgressionsName,
		NonDiatonicChordsName,
		ParallelFifthsName,
	} {
		if !Registered(name) {
			t.Fatalf("metric not registered: %s", name)
		}
	}
}

func TestResolveBuildsMetricWithContext(t *testing.T) {
	book := testBook(t)
	melody := testMelody(t, model.Note{Pitch: "C5", Duration: 4}, model.Note{Pitch: "G5", Duration: 4})
	ctx := Context{Melody: melody, Book: book}

	m, err := Resolve(ChordVarietyName, ctx)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if m.Name() != ChordVarietyName {
		t.Fatalf("unexpected metric name: %s", m.Name())
	}

	if _, err := Resolve("no_such_metric", ctx); err == nil {
		t.Fatal("expected error for unknown metric")
	}
}

func TestRegisterRejectsDuplicatesAndEmpty(t *testing.T) {
	if err := Register(ChordVarietyName, func(Context) Metric { return nil }); err == nil {
		t.Fatal("expected duplicate registration error")
	}
	if err := Register("", func(Context) Metric { return nil }); err == nil {
		t.Fatal("expected error for empty name")
	}
	if err := Register("nil_builder", nil); err == nil {
		t.Fatal("expected error for nil builder")
	}
}
