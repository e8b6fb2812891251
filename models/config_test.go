package models

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.ExpectedMax != ExpectedLessons {
		t.Errorf("ExpectedMax = %d, want %d", cfg.ExpectedMax, ExpectedLessons)
	}
	if cfg.MinConfidence != 0.5 {
		t.Errorf("MinConfidence = %v, want 0.5", cfg.MinConfidence)
	}
	if cfg.Thresholds.Excellent != 90 || cfg.Thresholds.Acceptable != 70 {
		t.Errorf("status thresholds = %v/%v, want 90/70",
			cfg.Thresholds.Excellent, cfg.Thresholds.Acceptable)
	}
}

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "no-existe.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.ExpectedMax != ExpectedLessons {
		t.Errorf("ExpectedMax = %d, want defaults", cfg.ExpectedMax)
	}
}

func TestLoadConfig_EmptyPathUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Workers != 4 {
		t.Errorf("Workers = %d, want 4", cfg.Workers)
	}
}

func TestLoadConfig_Overlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := "expected_max: 31\nmin_confidence: 0.6\nthresholds:\n  excellent: 95\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.ExpectedMax != 31 {
		t.Errorf("ExpectedMax = %d, want 31", cfg.ExpectedMax)
	}
	if cfg.MinConfidence != 0.6 {
		t.Errorf("MinConfidence = %v, want 0.6", cfg.MinConfidence)
	}
	if cfg.Thresholds.Excellent != 95 {
		t.Errorf("Thresholds.Excellent = %v, want 95", cfg.Thresholds.Excellent)
	}
	// Untouched keys keep their defaults.
	if cfg.MinContentWords != 10 {
		t.Errorf("MinContentWords = %d, want 10", cfg.MinContentWords)
	}
}

func TestLoadConfig_InvalidExpectedMax(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("expected_max: -1\n"), 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	if _, err := LoadConfig(path); err == nil {
		t.Fatal("expected an error for a negative expected_max")
	}
}

func TestLoadConfig_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("expected_max: [oops\n"), 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	if _, err := LoadConfig(path); err == nil {
		t.Fatal("expected a parse error")
	}
}

func TestConfidenceBucket(t *testing.T) {
	tests := []struct {
		confidence float64
		want       string
	}{
		{0.9, "high"},
		{0.8, "high"},
		{0.7, "medium"},
		{0.6, "medium"},
		{0.5, "low"},
		{0, "low"},
	}
	for _, tt := range tests {
		if got := ConfidenceBucket(tt.confidence); got != tt.want {
			t.Errorf("ConfidenceBucket(%v) = %q, want %q", tt.confidence, got, tt.want)
		}
	}
}

func TestCharWordRatio(t *testing.T) {
	rec := LessonRecord{WordCount: 20, CharCount: 100}
	if got := rec.CharWordRatio(); got != 5 {
		t.Errorf("CharWordRatio() = %v, want 5", got)
	}

	empty := LessonRecord{}
	if got := empty.CharWordRatio(); got != 0 {
		t.Errorf("empty CharWordRatio() = %v, want 0", got)
	}
}
