package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"harmonia/internal/stats"
	"harmonia/internal/storage"
	harmapi "harmonia/pkg/harmonia"
)

const (
	artifactsDir = "runs"
	exportsDir   = "exports"
)

func main() {
	if err := run(context.Background(), os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return usageError("missing command")
	}

	switch args[0] {
	case "init":
		return runInit(ctx, args[1:])
	case "run":
		return runRun(ctx, args[1:])
	case "runs":
		return runRuns(ctx, args[1:])
	case "chords":
		return runChords(ctx, args[1:])
	case "fitness":
		return runFitness(ctx, args[1:])
	case "diagnostics":
		return runDiagnostics(ctx, args[1:])
	case "score":
		return runScore(ctx, args[1:])
	case "export":
		return runExport(ctx, args[1:])
	default:
		return usageError(fmt.Sprintf("unknown command: %s", args[0]))
	}
}

func usageError(message string) error {
	return fmt.Errorf("%s\nusage: harmonizectl <init|run|runs|chords|fitness|diagnostics|score|export> [flags]", message)
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if !verbose {
		return zap.NewNop(), nil
	}
	return zap.NewDevelopment()
}

func runInit(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("init", flag.ContinueOnError)
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "harmonia.db", "sqlite database path")
	if err := fs.Parse(args); err != nil {
		return err
	}

	client, err := harmapi.New(harmapi.Options{
		StoreKind:    *storeKind,
		DBPath:       *dbPath,
		ArtifactsDir: artifactsDir,
		ExportsDir:   exportsDir,
	})
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	if err := client.Init(ctx); err != nil {
		return err
	}
	fmt.Printf("initialized store=%s\n", *storeKind)
	return nil
}

func runRun(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	configPath := fs.String("config", "", "optional run config JSON path")
	runID := fs.String("run-id", "", "explicit run id (optional)")
	theoryPath := fs.String("theory", "", "YAML theory file (empty uses the built-in book and demo melody)")
	population := fs.Int("pop", 100, "population size (must be even)")
	mutationRate := fs.Float64("mutation-rate", 0.05, "per-child mutation probability")
	generations := fs.Int("gens", 1000, "generation count")
	seed := fs.Int64("seed", 1, "rng seed")
	workers := fs.Int("workers", 4, "worker count")
	selection := fs.String("selection", "roulette", "parent selection strategy: roulette|tournament")
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "harmonia.db", "sqlite database path")
	plot := fs.Bool("plot", false, "render fitness_curve.png into the run directory")
	leadSheet := fs.Bool("lead-sheet", false, "render lead_sheet.txt into the run directory")
	verbose := fs.Bool("verbose", false, "log per-generation progress")
	if err := fs.Parse(args); err != nil {
		return err
	}
	setFlags := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) {
		setFlags[f.Name] = true
	})

	req, err := loadOrDefaultRunRequest(*configPath)
	if err != nil {
		return err
	}
	if *configPath == "" {
		req = harmapi.RunRequest{
			RunID:        *runID,
			TheoryPath:   *theoryPath,
			Population:   *population,
			MutationRate: *mutationRate,
			Generations:  *generations,
			Seed:         *seed,
			Workers:      *workers,
			Selection:    *selection,
			Plot:         *plot,
			LeadSheet:    *leadSheet,
		}
	} else {
		overrideFromFlags(&req, setFlags, map[string]any{
			"run-id":        *runID,
			"theory":        *theoryPath,
			"pop":           *population,
			"mutation-rate": *mutationRate,
			"gens":          *generations,
			"seed":          *seed,
			"workers":       *workers,
			"selection":     *selection,
			"plot":          *plot,
			"lead-sheet":    *leadSheet,
		})
	}

	logger, err := newLogger(*verbose)
	if err != nil {
		return err
	}
	defer func() {
		_ = logger.Sync()
	}()

	client, err := harmapi.New(harmapi.Options{
		StoreKind:    *storeKind,
		DBPath:       *dbPath,
		ArtifactsDir: artifactsDir,
		ExportsDir:   exportsDir,
		Logger:       logger,
	})
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	summary, err := client.Run(ctx, req)
	if err != nil {
		return err
	}

	fmt.Printf("run completed run_id=%s pop=%d gens=%d seed=%d\n", summary.RunID, req.Population, req.Generations, req.Seed)
	fmt.Printf("final_best_fitness=%.6f\n", summary.FinalBestFitness)
	fmt.Printf("chords=%v\n", summary.BestChords)
	for name, value := range summary.Breakdown {
		fmt.Printf("metric %s=%.6f\n", name, value)
	}
	if summary.PlotPath != "" {
		fmt.Printf("plot=%s\n", summary.PlotPath)
	}
	if summary.LeadSheetPath != "" {
		fmt.Printf("lead_sheet=%s\n", summary.LeadSheetPath)
	}
	fmt.Printf("artifacts_dir=%s\n", filepath.Clean(summary.ArtifactsDir))
	return nil
}

func runRuns(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("runs", flag.ContinueOnError)
	limit := fs.Int("limit", 20, "max runs to list")
	jsonOut := fs.Bool("json", false, "emit runs list as JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *limit <= 0 {
		return errors.New("limit must be > 0")
	}

	entries, err := stats.ListRunIndex(artifactsDir)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("no runs found")
		return nil
	}
	if len(entries) > *limit {
		entries = entries[:*limit]
	}

	if *jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	for _, e := range entries {
		fmt.Printf("run_id=%s created_at=%s seed=%d pop=%d gens=%d selection=%s final_best_fitness=%.6f\n",
			e.RunID,
			e.CreatedAtUTC,
			e.Seed,
			e.PopulationSize,
			e.Generations,
			e.Selection,
			e.FinalBestFitness,
		)
	}
	return nil
}

func runChords(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("chords", flag.ContinueOnError)
	runID := fs.String("run-id", "", "run id")
	latest := fs.Bool("latest", false, "show the most recent run from the run index")
	jsonOut := fs.Bool("json", false, "emit the harmonization as JSON")
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "harmonia.db", "sqlite database path")
	if err := fs.Parse(args); err != nil {
		return err
	}

	client, err := harmapi.New(harmapi.Options{
		StoreKind:    *storeKind,
		DBPath:       *dbPath,
		ArtifactsDir: artifactsDir,
		ExportsDir:   exportsDir,
	})
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	record, err := client.Chords(ctx, harmapi.ChordsRequest{RunID: *runID, Latest: *latest})
	if err != nil {
		return err
	}

	if *jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(record)
	}

	fmt.Printf("run_id=%s fitness=%.6f seed=%d pop=%d gens=%d selection=%s\n",
		record.RunID, record.Fitness, record.Seed, record.PopulationSize, record.Generations, record.Selection)
	for i, chord := range record.Chords {
		fmt.Printf("chord %02d %s\n", i+1, chord)
	}
	return nil
}

func runFitness(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("fitness", flag.ContinueOnError)
	runID := fs.String("run-id", "", "run id")
	latest := fs.Bool("latest", false, "show the most recent run from the run index")
	limit := fs.Int("limit", 0, "max generations to print (<=0 for all)")
	jsonOut := fs.Bool("json", false, "emit the history as JSON")
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "harmonia.db", "sqlite database path")
	if err := fs.Parse(args); err != nil {
		return err
	}

	client, err := harmapi.New(harmapi.Options{
		StoreKind:    *storeKind,
		DBPath:       *dbPath,
		ArtifactsDir: artifactsDir,
		ExportsDir:   exportsDir,
	})
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	history, err := client.FitnessHistory(ctx, harmapi.FitnessHistoryRequest{RunID: *runID, Latest: *latest, Limit: *limit})
	if err != nil {
		return err
	}

	if *jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(history)
	}
	for i, best := range history {
		fmt.Printf("generation=%d best_fitness=%.6f\n", i+1, best)
	}
	return nil
}

func runDiagnostics(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("diagnostics", flag.ContinueOnError)
	runID := fs.String("run-id", "", "run id")
	latest := fs.Bool("latest", false, "show the most recent run from the run index")
	limit := fs.Int("limit", 0, "max generations to print (<=0 for all)")
	jsonOut := fs.Bool("json", false, "emit diagnostics as JSON")
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "harmonia.db", "sqlite database path")
	if err := fs.Parse(args); err != nil {
		return err
	}

	client, err := harmapi.New(harmapi.Options{
		StoreKind:    *storeKind,
		DBPath:       *dbPath,
		ArtifactsDir: artifactsDir,
		ExportsDir:   exportsDir,
	})
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	diagnostics, err := client.Diagnostics(ctx, harmapi.DiagnosticsRequest{RunID: *runID, Latest: *latest, Limit: *limit})
	if err != nil {
		return err
	}

	if *jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(diagnostics)
	}
	for _, d := range diagnostics {
		fmt.Printf("generation=%d best=%.6f mean=%.6f min=%.6f stddev=%.6f unique=%d\n",
			d.Generation, d.BestFitness, d.MeanFitness, d.MinFitness, d.FitnessStdDev, d.UniqueSequences)
	}
	return nil
}

func runScore(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("score", flag.ContinueOnError)
	runID := fs.String("run-id", "", "run id")
	latest := fs.Bool("latest", false, "score the most recent run from the run index")
	theoryPath := fs.String("theory", "", "YAML theory file the run was harmonized against")
	outPath := fs.String("out", "", "write the lead sheet to a file instead of stdout")
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "harmonia.db", "sqlite database path")
	if err := fs.Parse(args); err != nil {
		return err
	}

	client, err := harmapi.New(harmapi.Options{
		StoreKind:    *storeKind,
		DBPath:       *dbPath,
		ArtifactsDir: artifactsDir,
		ExportsDir:   exportsDir,
	})
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	sheet, err := client.Score(ctx, harmapi.ScoreRequest{RunID: *runID, Latest: *latest, TheoryPath: *theoryPath})
	if err != nil {
		return err
	}

	if *outPath != "" {
		if err := os.WriteFile(*outPath, []byte(sheet), 0o644); err != nil {
			return err
		}
		fmt.Printf("lead_sheet=%s\n", *outPath)
		return nil
	}
	fmt.Print(sheet)
	return nil
}

func runExport(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	runID := fs.String("run-id", "", "run id")
	latest := fs.Bool("latest", false, "export the most recent run from the run index")
	outDir := fs.String("out", exportsDir, "export directory")
	if err := fs.Parse(args); err != nil {
		return err
	}

	client, err := harmapi.New(harmapi.Options{
		StoreKind:    "memory",
		ArtifactsDir: artifactsDir,
		ExportsDir:   exportsDir,
	})
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	summary, err := client.Export(ctx, harmapi.ExportRequest{RunID: *runID, Latest: *latest, OutDir: *outDir})
	if err != nil {
		return err
	}
	fmt.Printf("exported run_id=%s dir=%s\n", summary.RunID, summary.Directory)
	return nil
}
