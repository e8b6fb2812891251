// Package quality validates raw or mapped text independently of recognition:
// character legibility, paragraph integrity, sentence flow, abrupt cuts, and
// encoding correctness, combined into one score in [0, 100].
package quality

import (
	"fmt"
	"regexp"

	"github.com/jhondrl6/ucdm-corpus/models"
	"github.com/jhondrl6/ucdm-corpus/pkg/patterns"
)

// LanguageVerifier reports the detected language of a text unit and whether
// it matches the corpus language.
type LanguageVerifier interface {
	Verify(text string) (string, bool)
}

// Engine runs the five quality checks with configured thresholds. Safe for
// concurrent use: all methods are pure over their input.
type Engine struct {
	thresholds models.QualityThresholds
	markerRe   *regexp.Regexp
	verifier   LanguageVerifier
}

// New builds an engine. verifier may be nil, in which case language
// verification is skipped.
func New(thresholds models.QualityThresholds, verifier LanguageVerifier) *Engine {
	return &Engine{
		thresholds: thresholds,
		markerRe:   patterns.ForLessons().MarkerRe(),
		verifier:   verifier,
	}
}

// Validate runs every check over text. It never panics: malformed input
// yields zero scores and an error note instead of a crash.
func (e *Engine) Validate(text string) (metrics models.QualityMetrics) {
	defer func() {
		if r := recover(); r != nil {
			metrics = models.QualityMetrics{
				Status: models.QualityNeedsWork,
				Error:  fmt.Sprintf("validation failed: %v", r),
			}
		}
	}()

	metrics.Legibility = e.checkLegibility(text)
	metrics.Integrity = e.checkIntegrity(text)
	metrics.Flow = e.checkFlow(text)
	metrics.Cuts = e.detectCuts(text)
	metrics.Encoding = e.checkEncoding(text)

	// Equal weights across the four percentage metrics; the cut report
	// feeds severity, not the score.
	metrics.OverallScore = clampScore((metrics.Legibility.CharacterValidity +
		metrics.Integrity.ParagraphCompleteness +
		metrics.Flow.ContentContinuity +
		metrics.Encoding.EncodingCorrectness) / 4)

	switch {
	case metrics.OverallScore >= e.thresholds.Excellent:
		metrics.Status = models.QualityExcellent
	case metrics.OverallScore >= e.thresholds.Acceptable:
		metrics.Status = models.QualityAcceptable
	default:
		metrics.Status = models.QualityNeedsWork
	}

	return metrics
}

// MeetsThresholds reports which configured per-metric thresholds the metrics
// satisfy.
func (e *Engine) MeetsThresholds(m models.QualityMetrics) map[string]bool {
	return map[string]bool{
		"character_validity":     m.Legibility.CharacterValidity >= e.thresholds.CharacterValidity,
		"paragraph_completeness": m.Integrity.ParagraphCompleteness >= e.thresholds.ParagraphCompleteness,
		"content_continuity":     m.Flow.ContentContinuity >= e.thresholds.ContentContinuity,
		"encoding_correctness":   m.Encoding.EncodingCorrectness >= e.thresholds.EncodingCorrectness,
	}
}

func clampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
