package models

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Expected unit counts for the two entity types in the source document.
const (
	ExpectedLessons  = 365
	ExpectedChapters = 31
)

// QualityThresholds holds the pass/fail cut-offs for quality validation.
// The source material was tuned ad hoc; these are deliberately configuration,
// not constants baked into the engine.
type QualityThresholds struct {
	CharacterValidity     float64 `yaml:"character_validity"`
	ParagraphCompleteness float64 `yaml:"paragraph_completeness"`
	ContentContinuity     float64 `yaml:"content_continuity"`
	EncodingCorrectness   float64 `yaml:"encoding_correctness"`

	// Status cut-offs for the overall score.
	Excellent  float64 `yaml:"excellent"`
	Acceptable float64 `yaml:"acceptable"`
}

// Config holds runtime configuration for recognition and validation runs.
type Config struct {
	ExpectedMax int `yaml:"expected_max"`

	// MinConfidence is the floor below which candidates are discarded after
	// context scoring.
	MinConfidence float64 `yaml:"min_confidence"`

	// MinContentWords gates the content mapper: spans shorter than this are
	// reported as skipped instead of emitted.
	MinContentWords int `yaml:"min_content_words"`

	// TailWindow bounds the forward scan for a section-end marker after the
	// last accepted lesson, in characters.
	TailWindow int `yaml:"tail_window"`

	// BatchSize bounds regex alternation cost in the sequential strategy.
	BatchSize int `yaml:"batch_size"`

	// MinAcceptQuality is the minimum overall quality score for a targeted
	// re-extraction to be accepted.
	MinAcceptQuality float64 `yaml:"min_accept_quality"`

	Workers int `yaml:"workers"`

	Thresholds QualityThresholds `yaml:"thresholds"`
}

// DefaultConfig returns the configuration matching the source system's tuned
// values for the 365-lesson workbook.
func DefaultConfig() Config {
	return Config{
		ExpectedMax:      ExpectedLessons,
		MinConfidence:    0.5,
		MinContentWords:  10,
		TailWindow:       20000,
		BatchSize:        10,
		MinAcceptQuality: 70.0,
		Workers:          4,
		Thresholds: QualityThresholds{
			CharacterValidity:     85.0,
			ParagraphCompleteness: 75.0,
			ContentContinuity:     70.0,
			EncodingCorrectness:   80.0,
			Excellent:             90.0,
			Acceptable:            70.0,
		},
	}
}

// LoadConfig reads a YAML config file, layering it over the defaults. A
// missing path returns the defaults unchanged.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.ExpectedMax <= 0 {
		return cfg, fmt.Errorf("expected_max must be positive, got %d", cfg.ExpectedMax)
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 10
	}

	return cfg, nil
}
