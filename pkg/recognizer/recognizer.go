// Package recognizer wires the full pipeline: scope the workbook section,
// extract candidates with every strategy, resolve duplicates, validate the
// sequence, and map accepted candidates to content records.
package recognizer

import (
	"fmt"

	"github.com/jhondrl6/ucdm-corpus/models"
	"github.com/jhondrl6/ucdm-corpus/pkg/extractor"
	"github.com/jhondrl6/ucdm-corpus/pkg/mapper"
	"github.com/jhondrl6/ucdm-corpus/pkg/merge"
	"github.com/jhondrl6/ucdm-corpus/pkg/patterns"
	"github.com/jhondrl6/ucdm-corpus/pkg/sequence"
)

// minScopedCandidates is the floor under which a section-bounded pass is
// considered a mis-detection and the full text is rescanned.
const minScopedCandidates = 10

// Recognizer runs recognition passes with a fixed library and configuration.
// Safe for concurrent use: it holds no per-run state.
type Recognizer struct {
	cfg models.Config
	lib *patterns.Library
}

// New builds a lesson recognizer.
func New(cfg models.Config) *Recognizer {
	return &Recognizer{cfg: cfg, lib: patterns.ForLessons()}
}

// NewForChapters builds a chapter recognizer. ExpectedMax in cfg should be
// the chapter count, not the lesson count.
func NewForChapters(cfg models.Config) *Recognizer {
	return &Recognizer{cfg: cfg, lib: patterns.ForChapters()}
}

// Library exposes the pattern library the recognizer runs with.
func (r *Recognizer) Library() *patterns.Library { return r.lib }

// Recognize runs the full pipeline over text. It never fails outright: a
// strategy that cannot run is reported in Warnings and the rest proceed.
func (r *Recognizer) Recognize(text string) models.RecognitionResult {
	var result models.RecognitionResult
	result.Records = map[int]models.LessonRecord{}

	if text == "" {
		result.Sequence = sequence.Validate(nil, nil, r.cfg.ExpectedMax)
		return result
	}

	scope, offset := sectionScope(text)
	extracted := r.extract(scope, offset)

	// A badly scanned source can place the section heading inside running
	// text, truncating the scope. Fall back to the whole document.
	if offset > 0 && len(extracted.Candidates) < minScopedCandidates {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("section scope yielded only %d candidates, rescanning full text", len(extracted.Candidates)))
		extracted = r.extract(text, 0)
	}
	result.Warnings = append(result.Warnings, extracted.Warnings...)

	kept := extracted.Candidates[:0:0]
	for _, c := range extracted.Candidates {
		if c.Confidence >= r.cfg.MinConfidence {
			kept = append(kept, c)
		}
	}

	accepted, dupReport := merge.Resolve(kept)
	result.Duplicates = dupReport
	result.Stats = buildStats(accepted)

	records, skipped := mapper.MapContent(accepted, text, r.lib, mapper.Options{
		MinContentWords: r.cfg.MinContentWords,
		TailWindow:      r.cfg.TailWindow,
	})
	result.Records = records
	result.Skipped = skipped

	found := make([]int, 0, len(records))
	for n := range records {
		found = append(found, n)
	}
	result.Sequence = sequence.Validate(found, merge.DuplicateNumbers(dupReport), r.cfg.ExpectedMax)

	return result
}

// extract runs the candidate pass over scope and shifts positions back into
// full-document coordinates.
func (r *Recognizer) extract(scope string, offset int) extractor.Result {
	res := extractor.ExtractCandidates(scope, r.lib, extractor.Options{
		ExpectedMax: r.cfg.ExpectedMax,
		BatchSize:   r.cfg.BatchSize,
	})
	if offset > 0 {
		for i := range res.Candidates {
			res.Candidates[i].StartPos += offset
			res.Candidates[i].EndPos += offset
		}
	}
	return res
}

// sectionScope narrows text to the workbook section when its boundary
// markers are present. Returns the scoped text and the byte offset of the
// scope within the original.
func sectionScope(text string) (string, int) {
	start := patterns.SectionStartRe.FindStringIndex(text)
	if start == nil {
		return text, 0
	}

	rest := text[start[1]:]
	if end := patterns.SectionEndRe.FindStringIndex(rest); end != nil {
		return rest[:end[0]], start[1]
	}
	return rest, start[1]
}

// buildStats summarizes how the accepted set was found.
func buildStats(accepted map[int]models.Candidate) models.ExtractionStats {
	stats := models.ExtractionStats{
		MethodCounts:    map[string]int{},
		ConfidenceRange: map[string]int{},
	}
	for _, c := range accepted {
		stats.MethodCounts[string(c.Method)]++
		stats.ConfidenceRange[models.ConfidenceBucket(c.Confidence)]++
	}
	return stats
}
