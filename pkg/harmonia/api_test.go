package harmonia

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newTestClient(t *testing.T) (*Client, string) {
	t.Helper()
	base := t.TempDir()
	client, err := New(Options{
		StoreKind:    "memory",
		ArtifactsDir: filepath.Join(base, "runs"),
		ExportsDir:   filepath.Join(base, "exports"),
	})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	t.Cleanup(func() {
		_ = client.Close()
	})
	return client, base
}

func smallRunRequest(runID string) RunRequest {
	return RunRequest{
		RunID:       runID,
		Population:  10,
		Generations: 3,
		Seed:        42,
		Workers:     2,
	}
}

func TestClientRunQueriesAndExport(t *testing.T) {
	client, _ := newTestClient(t)
	ctx := context.Background()

	summary, err := client.Run(ctx, smallRunRequest("run-api"))
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if summary.RunID != "run-api" {
		t.Fatalf("unexpected run id: %s", summary.RunID)
	}
	// Demo melody spans 12 bars, two chords per bar.
	if len(summary.BestChords) != 24 {
		t.Fatalf("unexpected chord count: %d", len(summary.BestChords))
	}
	if len(summary.BestByGeneration) != 3 {
		t.Fatalf("unexpected history length: %d", len(summary.BestByGeneration))
	}
	if len(summary.Breakdown) == 0 {
		t.Fatal("expected metric breakdown")
	}

	runs, err := client.Runs(ctx, RunsRequest{Limit: 5})
	if err != nil {
		t.Fatalf("runs: %v", err)
	}
	if len(runs) == 0 || runs[0].RunID != summary.RunID {
		t.Fatalf("expected run %s in runs list: %+v", summary.RunID, runs)
	}

	record, err := client.Chords(ctx, ChordsRequest{RunID: summary.RunID})
	if err != nil {
		t.Fatalf("chords: %v", err)
	}
	if record.Fitness != summary.FinalBestFitness {
		t.Fatalf("stored fitness mismatch: got=%v want=%v", record.Fitness, summary.FinalBestFitness)
	}

	history, err := client.FitnessHistory(ctx, FitnessHistoryRequest{RunID: summary.RunID, Limit: 10})
	if err != nil {
		t.Fatalf("fitness history: %v", err)
	}
	if len(history) != 3 {
		t.Fatalf("unexpected history length: %d", len(history))
	}

	diagnostics, err := client.Diagnostics(ctx, DiagnosticsRequest{RunID: summary.RunID, Limit: 10})
	if err != nil {
		t.Fatalf("diagnostics: %v", err)
	}
	if len(diagnostics) != 3 {
		t.Fatalf("unexpected diagnostics length: %d", len(diagnostics))
	}

	export, err := client.Export(ctx, ExportRequest{RunID: summary.RunID})
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if _, err := os.Stat(filepath.Join(export.Directory, "harmonization.json")); err != nil {
		t.Fatalf("exported harmonization missing: %v", err)
	}
}

func TestClientRunIsDeterministicForSeed(t *testing.T) {
	client, _ := newTestClient(t)
	ctx := context.Background()

	first, err := client.Run(ctx, smallRunRequest("run-a"))
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	second, err := client.Run(ctx, smallRunRequest("run-b"))
	if err != nil {
		t.Fatalf("second run: %v", err)
	}

	if first.FinalBestFitness != second.FinalBestFitness {
		t.Fatalf("fitness differs across seeded runs: %v vs %v", first.FinalBestFitness, second.FinalBestFitness)
	}
	for i := range first.BestChords {
		if first.BestChords[i] != second.BestChords[i] {
			t.Fatalf("chord %d differs: %s vs %s", i, first.BestChords[i], second.BestChords[i])
		}
	}
}

func TestClientRunLatestResolution(t *testing.T) {
	client, _ := newTestClient(t)
	ctx := context.Background()

	if _, err := client.Run(ctx, smallRunRequest("run-latest")); err != nil {
		t.Fatalf("run: %v", err)
	}

	record, err := client.Chords(ctx, ChordsRequest{Latest: true})
	if err != nil {
		t.Fatalf("chords latest: %v", err)
	}
	if record.RunID != "run-latest" {
		t.Fatalf("unexpected latest run: %s", record.RunID)
	}

	if _, err := client.Chords(ctx, ChordsRequest{RunID: "run-latest", Latest: true}); err == nil {
		t.Fatal("expected error for run id with latest")
	}
	if _, err := client.Chords(ctx, ChordsRequest{}); err == nil {
		t.Fatal("expected error for missing run id")
	}
}

func TestClientScoreRendersStoredRun(t *testing.T) {
	client, _ := newTestClient(t)
	ctx := context.Background()

	if _, err := client.Run(ctx, smallRunRequest("run-score")); err != nil {
		t.Fatalf("run: %v", err)
	}

	sheet, err := client.Score(ctx, ScoreRequest{RunID: "run-score"})
	if err != nil {
		t.Fatalf("score: %v", err)
	}
	if !strings.Contains(sheet, "bars: 12") {
		t.Fatalf("expected 12-bar sheet:\n%s", sheet)
	}
}

func TestClientRunWithLeadSheetArtifact(t *testing.T) {
	client, _ := newTestClient(t)
	ctx := context.Background()

	req := smallRunRequest("run-sheet")
	req.LeadSheet = true
	summary, err := client.Run(ctx, req)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if summary.LeadSheetPath == "" {
		t.Fatal("expected lead sheet path")
	}
	data, err := os.ReadFile(summary.LeadSheetPath)
	if err != nil {
		t.Fatalf("read lead sheet: %v", err)
	}
	if !strings.Contains(string(data), "bar  1") {
		t.Fatalf("lead sheet content mismatch:\n%s", data)
	}
}

func TestClientRunGeneratesRunID(t *testing.T) {
	client, _ := newTestClient(t)

	req := smallRunRequest("")
	summary, err := client.Run(context.Background(), req)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if summary.RunID == "" {
		t.Fatal("expected generated run id")
	}
}

func TestClientRunWithCustomTheoryFile(t *testing.T) {
	client, base := newTestClient(t)
	ctx := context.Background()

	theoryPath := filepath.Join(base, "theory.yaml")
	content := `
chords:
  C: [C, E, G]
  F: [F, A, C]
  G: [G, B, D]
transitions:
  C: [F, G]
  F: [C, G]
  G: [C]
parallel_fifths: []
progressions:
  - [C, F, G]
tonic_openings: [C]
final_tonic: C
subdominant: F
dominant: G
non_diatonic: []
weights:
  harmonic_flow: 0.5
  functional_harmony: 0.5
melody:
  - pitch: C4
    duration: 2
  - pitch: E4
    duration: 2
  - pitch: G4
    duration: 2
  - pitch: C5
    duration: 2
`
	if err := os.WriteFile(theoryPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write theory file: %v", err)
	}

	req := smallRunRequest("run-custom")
	req.TheoryPath = theoryPath
	summary, err := client.Run(ctx, req)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	// 8 beats of melody make 2 bars, so 4 chords.
	if len(summary.BestChords) != 4 {
		t.Fatalf("unexpected chord count: %d", len(summary.BestChords))
	}
	for _, name := range summary.BestChords {
		if name != "C" && name != "F" && name != "G" {
			t.Fatalf("chord outside custom book: %s", name)
		}
	}
}
