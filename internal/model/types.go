package model

// VersionedRecord captures schema and codec evolution for persistent data.
type VersionedRecord struct {
	SchemaVersion int `json:"schema_version"`
	CodecVersion  int `json:"codec_version"`
}

// Harmonization is one persisted run result: the winning chord sequence plus
// the parameters that produced it.
type Harmonization struct {
	VersionedRecord
	RunID          string   `json:"run_id"`
	Chords         []string `json:"chords"`
	Fitness        float64  `json:"fitness"`
	Seed           int64    `json:"seed"`
	PopulationSize int      `json:"population_size"`
	MutationRate   float64  `json:"mutation_rate"`
	Generations    int      `json:"generations"`
	Selection      string   `json:"selection,omitempty"`
}

type GenerationDiagnostics struct {
	Generation      int     `json:"generation"`
	BestFitness     float64 `json:"best_fitness"`
	MeanFitness     float64 `json:"mean_fitness"`
	MinFitness      float64 `json:"min_fitness"`
	FitnessStdDev   float64 `json:"fitness_std_dev"`
	UniqueSequences int     `json:"unique_sequences"`
}
