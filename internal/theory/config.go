package theory

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"harmonia/internal/metric"
	"harmonia/internal/model"
)

// File is the YAML shape of a theory configuration. Absent sections fall
// back to the built-in defaults; present sections replace them wholesale.
type File struct {
	Chords         map[string][]string `yaml:"chords"`
	Transitions    map[string][]string `yaml:"transitions"`
	ParallelFifths [][]string          `yaml:"parallel_fifths"`
	Progressions   [][]string          `yaml:"progressions"`
	TonicOpenings  []string            `yaml:"tonic_openings"`
	FinalTonic     string              `yaml:"final_tonic"`
	Subdominant    string              `yaml:"subdominant"`
	Dominant       string              `yaml:"dominant"`
	NonDiatonic    []string            `yaml:"non_diatonic"`
	Weights        map[string]float64  `yaml:"weights"`
	Melody         []model.Note        `yaml:"melody"`
}

// Load reads a YAML theory file and merges it over the defaults. The
// returned melody is nil when the file does not carry one.
func Load(path string) (Config, []model.Note, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, nil, fmt.Errorf("read theory file: %w", err)
	}
	return Parse(data)
}

// Parse merges YAML bytes over the default configuration.
func Parse(data []byte) (Config, []model.Note, error) {
	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return Config{}, nil, fmt.Errorf("parse theory file: %w", err)
	}

	cfg := Default()
	if file.Chords != nil {
		cfg.Chords = file.Chords
	}
	if file.Transitions != nil {
		cfg.Theory.Transitions = file.Transitions
	}
	if file.ParallelFifths != nil {
		pairs := make([]model.ChordPair, 0, len(file.ParallelFifths))
		for i, raw := range file.ParallelFifths {
			if len(raw) != 2 {
				return Config{}, nil, fmt.Errorf("parallel_fifths entry %d must have exactly 2 chords, got %d", i, len(raw))
			}
			pairs = append(pairs, model.ChordPair{raw[0], raw[1]})
		}
		cfg.Theory.ParallelFifths = pairs
	}
	if file.Progressions != nil {
		cfg.Theory.Progressions = file.Progressions
	}
	if file.TonicOpenings != nil {
		cfg.Theory.TonicOpenings = file.TonicOpenings
	}
	if file.FinalTonic != "" {
		cfg.Theory.FinalTonic = file.FinalTonic
	}
	if file.Subdominant != "" {
		cfg.Theory.Subdominant = file.Subdominant
	}
	if file.Dominant != "" {
		cfg.Theory.Dominant = file.Dominant
	}
	if file.NonDiatonic != nil {
		cfg.Theory.NonDiatonic = file.NonDiatonic
	}
	if file.Weights != nil {
		cfg.Weights = file.Weights
	}

	return cfg, file.Melody, nil
}

// Validate checks the configuration for internal consistency: the book
// builds, every theory reference resolves, and every weight names a
// registered metric with a non-negative value.
func (c Config) Validate() (model.ChordBook, error) {
	book, err := model.NewChordBook(c.Chords)
	if err != nil {
		return model.ChordBook{}, err
	}
	if err := c.Theory.Validate(book); err != nil {
		return model.ChordBook{}, err
	}
	for name, weight := range c.Weights {
		if !metric.Registered(name) {
			return model.ChordBook{}, fmt.Errorf("weight references unknown metric: %s", name)
		}
		if weight < 0 {
			return model.ChordBook{}, fmt.Errorf("weight for %s must be >= 0, got %v", name, weight)
		}
	}
	return book, nil
}
