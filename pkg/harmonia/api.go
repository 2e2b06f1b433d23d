// Package harmonia is the public entry point: it wires the theory
// configuration, the evolutionary engine, persistence, and run
// artifacts behind one client.
package harmonia

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"harmonia/internal/evo"
	"harmonia/internal/metric"
	"harmonia/internal/model"
	"harmonia/internal/score"
	"harmonia/internal/stats"
	"harmonia/internal/storage"
	"harmonia/internal/theory"
)

const (
	defaultArtifactsDir = "runs"
	defaultExportsDir   = "exports"
	defaultDBPath       = "harmonia.db"

	defaultPopulation   = 100
	defaultMutationRate = 0.05
	defaultGenerations  = 1000
	defaultWorkers      = 4
)

type Options struct {
	StoreKind    string
	DBPath       string
	ArtifactsDir string
	ExportsDir   string
	Logger       *zap.Logger
}

type Client struct {
	store  storage.Store
	logger *zap.Logger

	artifactsDir string
	exportsDir   string
}

type RunRequest struct {
	// TheoryPath points at a YAML theory file. Empty means the built-in
	// C-major book with the bundled demo melody.
	TheoryPath string
	RunID      string
	Population int
	// MutationRate of zero falls back to the default rate.
	MutationRate float64
	Generations  int
	Seed         int64
	Workers      int
	Selection    string
	// Plot renders fitness_curve.png into the run directory.
	Plot bool
	// LeadSheet renders lead_sheet.txt into the run directory.
	LeadSheet bool
}

type RunSummary struct {
	RunID            string
	ArtifactsDir     string
	BestChords       []string
	BestByGeneration []float64
	FinalBestFitness float64
	Breakdown        map[string]float64
	PlotPath         string
	LeadSheetPath    string
}

type RunsRequest struct {
	Limit int
}

type RunItem struct {
	RunID            string
	CreatedAtUTC     string
	Seed             int64
	Population       int
	Generations      int
	Selection        string
	FinalBestFitness float64
}

type ChordsRequest struct {
	RunID  string
	Latest bool
}

type FitnessHistoryRequest struct {
	RunID  string
	Latest bool
	Limit  int
}

type DiagnosticsRequest struct {
	RunID  string
	Latest bool
	Limit  int
}

type ExportRequest struct {
	RunID  string
	Latest bool
	OutDir string
}

type ExportSummary struct {
	RunID     string
	Directory string
}

type ScoreRequest struct {
	RunID      string
	Latest     bool
	TheoryPath string
}

func New(opts Options) (*Client, error) {
	storeKind := opts.StoreKind
	if storeKind == "" {
		storeKind = storage.DefaultStoreKind()
	}
	dbPath := opts.DBPath
	if dbPath == "" {
		dbPath = defaultDBPath
	}
	artifactsDir := opts.ArtifactsDir
	if artifactsDir == "" {
		artifactsDir = defaultArtifactsDir
	}
	exportsDir := opts.ExportsDir
	if exportsDir == "" {
		exportsDir = defaultExportsDir
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	store, err := storage.NewStore(storeKind, dbPath)
	if err != nil {
		return nil, err
	}

	return &Client{
		store:        store,
		logger:       logger,
		artifactsDir: artifactsDir,
		exportsDir:   exportsDir,
	}, nil
}

func (c *Client) Close() error {
	return storage.CloseIfSupported(c.store)
}

func (c *Client) Init(ctx context.Context) error {
	return c.store.Init(ctx)
}

func (c *Client) Run(ctx context.Context, req RunRequest) (RunSummary, error) {
	if req.Population <= 0 {
		req.Population = defaultPopulation
	}
	if req.MutationRate == 0 {
		req.MutationRate = defaultMutationRate
	}
	if req.Generations <= 0 {
		req.Generations = defaultGenerations
	}
	if req.Workers <= 0 {
		req.Workers = defaultWorkers
	}
	if req.Selection == "" {
		req.Selection = "roulette"
	}
	if req.RunID == "" {
		req.RunID = uuid.NewString()
	}

	cfg, melody, book, err := loadSetup(req.TheoryPath)
	if err != nil {
		return RunSummary{}, err
	}

	evaluator, err := evo.NewFitnessEvaluator(metric.Context{
		Melody: melody,
		Book:   book,
		Theory: cfg.Theory,
	}, cfg.Weights)
	if err != nil {
		return RunSummary{}, err
	}
	selector, err := evo.NewSelector(req.Selection)
	if err != nil {
		return RunSummary{}, err
	}

	harmonizer, err := evo.NewHarmonizer(evo.Config{
		Melody:         melody,
		Book:           book,
		Evaluator:      evaluator,
		PopulationSize: req.Population,
		MutationRate:   req.MutationRate,
		Generations:    req.Generations,
		Seed:           req.Seed,
		Workers:        req.Workers,
		Selector:       selector,
		Logger:         c.logger,
	})
	if err != nil {
		return RunSummary{}, err
	}

	if err := c.store.Init(ctx); err != nil {
		return RunSummary{}, err
	}

	result, err := harmonizer.Run(ctx)
	if err != nil {
		return RunSummary{}, err
	}
	breakdown := evaluator.Breakdown(result.Best)

	record := model.Harmonization{
		VersionedRecord: model.VersionedRecord{
			SchemaVersion: storage.CurrentSchemaVersion,
			CodecVersion:  storage.CurrentCodecVersion,
		},
		RunID:          req.RunID,
		Chords:         result.Best,
		Fitness:        result.BestFitness,
		Seed:           req.Seed,
		PopulationSize: req.Population,
		MutationRate:   req.MutationRate,
		Generations:    req.Generations,
		Selection:      selector.Name(),
	}
	if err := c.store.SaveHarmonization(ctx, record); err != nil {
		return RunSummary{}, err
	}
	if err := c.store.SaveFitnessHistory(ctx, req.RunID, result.BestByGeneration); err != nil {
		return RunSummary{}, err
	}
	if err := c.store.SaveDiagnostics(ctx, req.RunID, result.Diagnostics); err != nil {
		return RunSummary{}, err
	}

	runDir, err := stats.WriteRunArtifacts(c.artifactsDir, stats.RunArtifacts{
		Config: stats.RunConfig{
			RunID:          req.RunID,
			TheoryPath:     req.TheoryPath,
			PopulationSize: req.Population,
			MutationRate:   req.MutationRate,
			Generations:    req.Generations,
			Seed:           req.Seed,
			Workers:        req.Workers,
			Selection:      selector.Name(),
			Weights:        cfg.Weights,
		},
		BestChords:            result.Best,
		BestBreakdown:         breakdown,
		BestByGeneration:      result.BestByGeneration,
		GenerationDiagnostics: result.Diagnostics,
		FinalBestFitness:      result.BestFitness,
	})
	if err != nil {
		return RunSummary{}, err
	}
	if err := stats.AppendRunIndex(c.artifactsDir, stats.RunIndexEntry{
		RunID:            req.RunID,
		PopulationSize:   req.Population,
		Generations:      req.Generations,
		Seed:             req.Seed,
		Workers:          req.Workers,
		Selection:        selector.Name(),
		FinalBestFitness: result.BestFitness,
		CreatedAtUTC:     time.Now().UTC().Format(time.RFC3339Nano),
	}); err != nil {
		return RunSummary{}, err
	}

	summary := RunSummary{
		RunID:            req.RunID,
		ArtifactsDir:     filepath.Clean(runDir),
		BestChords:       append([]string(nil), result.Best...),
		BestByGeneration: append([]float64(nil), result.BestByGeneration...),
		FinalBestFitness: result.BestFitness,
		Breakdown:        breakdown,
	}
	if req.Plot {
		plotPath, err := stats.WriteFitnessPlot(runDir, result.BestByGeneration, result.Diagnostics)
		if err != nil {
			return RunSummary{}, err
		}
		summary.PlotPath = plotPath
	}
	if req.LeadSheet {
		sheetPath, err := score.WriteLeadSheet(runDir, melody, book, result.Best)
		if err != nil {
			return RunSummary{}, err
		}
		summary.LeadSheetPath = sheetPath
	}

	c.logger.Info("harmonization run complete",
		zap.String("run_id", req.RunID),
		zap.Float64("best_fitness", result.BestFitness),
		zap.Int("generations", req.Generations),
	)
	return summary, nil
}

func (c *Client) Runs(_ context.Context, req RunsRequest) ([]RunItem, error) {
	if req.Limit <= 0 {
		req.Limit = 20
	}

	entries, err := stats.ListRunIndex(c.artifactsDir)
	if err != nil {
		return nil, err
	}
	if len(entries) > req.Limit {
		entries = entries[:req.Limit]
	}

	out := make([]RunItem, 0, len(entries))
	for _, e := range entries {
		out = append(out, RunItem{
			RunID:            e.RunID,
			CreatedAtUTC:     e.CreatedAtUTC,
			Seed:             e.Seed,
			Population:       e.PopulationSize,
			Generations:      e.Generations,
			Selection:        e.Selection,
			FinalBestFitness: e.FinalBestFitness,
		})
	}
	return out, nil
}

func (c *Client) Chords(ctx context.Context, req ChordsRequest) (model.Harmonization, error) {
	runID, err := c.resolveRunID(req.RunID, req.Latest)
	if err != nil {
		return model.Harmonization{}, err
	}

	if err := c.store.Init(ctx); err != nil {
		return model.Harmonization{}, err
	}
	record, ok, err := c.store.GetHarmonization(ctx, runID)
	if err != nil {
		return model.Harmonization{}, err
	}
	if !ok {
		return model.Harmonization{}, fmt.Errorf("harmonization not found for run id: %s", runID)
	}
	return record, nil
}

func (c *Client) FitnessHistory(ctx context.Context, req FitnessHistoryRequest) ([]float64, error) {
	if req.Limit < 0 {
		return nil, errors.New("limit must be >= 0")
	}
	runID, err := c.resolveRunID(req.RunID, req.Latest)
	if err != nil {
		return nil, err
	}

	if err := c.store.Init(ctx); err != nil {
		return nil, err
	}
	history, ok, err := c.store.GetFitnessHistory(ctx, runID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("fitness history not found for run id: %s", runID)
	}
	if req.Limit > 0 && len(history) > req.Limit {
		history = history[:req.Limit]
	}
	return append([]float64(nil), history...), nil
}

func (c *Client) Diagnostics(ctx context.Context, req DiagnosticsRequest) ([]model.GenerationDiagnostics, error) {
	if req.Limit < 0 {
		return nil, errors.New("limit must be >= 0")
	}
	runID, err := c.resolveRunID(req.RunID, req.Latest)
	if err != nil {
		return nil, err
	}

	if err := c.store.Init(ctx); err != nil {
		return nil, err
	}
	diagnostics, ok, err := c.store.GetDiagnostics(ctx, runID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("diagnostics not found for run id: %s", runID)
	}
	if req.Limit > 0 && len(diagnostics) > req.Limit {
		diagnostics = diagnostics[:req.Limit]
	}
	out := make([]model.GenerationDiagnostics, len(diagnostics))
	copy(out, diagnostics)
	return out, nil
}

func (c *Client) Export(_ context.Context, req ExportRequest) (ExportSummary, error) {
	runID, err := c.resolveRunID(req.RunID, req.Latest)
	if err != nil {
		return ExportSummary{}, err
	}
	if req.OutDir == "" {
		req.OutDir = c.exportsDir
	}

	exportedDir, err := stats.ExportRunArtifacts(c.artifactsDir, runID, req.OutDir)
	if err != nil {
		return ExportSummary{}, err
	}
	return ExportSummary{RunID: runID, Directory: filepath.Clean(exportedDir)}, nil
}

// Score renders a stored harmonization as a lead sheet against the
// melody of the given theory file (or the bundled demo melody).
func (c *Client) Score(ctx context.Context, req ScoreRequest) (string, error) {
	record, err := c.Chords(ctx, ChordsRequest{RunID: req.RunID, Latest: req.Latest})
	if err != nil {
		return "", err
	}
	_, melody, book, err := loadSetup(req.TheoryPath)
	if err != nil {
		return "", err
	}
	return score.Render(melody, book, record.Chords)
}

func (c *Client) resolveRunID(runID string, latest bool) (string, error) {
	if runID != "" && latest {
		return "", errors.New("use either run id or latest")
	}
	if latest {
		entries, err := stats.ListRunIndex(c.artifactsDir)
		if err != nil {
			return "", err
		}
		if len(entries) == 0 {
			return "", errors.New("no runs available")
		}
		return entries[0].RunID, nil
	}
	if runID == "" {
		return "", errors.New("run id or latest is required")
	}
	return runID, nil
}

// loadSetup resolves a theory path into a validated configuration, the
// melody to harmonize, and the chord book.
func loadSetup(theoryPath string) (theory.Config, model.Melody, model.ChordBook, error) {
	cfg := theory.Default()
	notes := theory.DemoMelody()
	if theoryPath != "" {
		loaded, fileNotes, err := theory.Load(theoryPath)
		if err != nil {
			return theory.Config{}, model.Melody{}, model.ChordBook{}, err
		}
		cfg = loaded
		if fileNotes != nil {
			notes = fileNotes
		}
	}

	book, err := cfg.Validate()
	if err != nil {
		return theory.Config{}, model.Melody{}, model.ChordBook{}, err
	}
	melody, err := model.NewMelody(notes)
	if err != nil {
		return theory.Config{}, model.Melody{}, model.ChordBook{}, err
	}
	return cfg, melody, book, nil
}
