package models

import "strings"

// LessonRecord is the canonical indexed unit: an accepted lesson (or chapter)
// number mapped to its content span. Number is unique within a run.
type LessonRecord struct {
	Number           int     `yaml:"number" json:"number"`
	Title            string  `yaml:"title" json:"title"`
	Content          string  `yaml:"content,omitempty" json:"content,omitempty"`
	WordCount        int     `yaml:"word_count" json:"word_count"`
	CharCount        int     `yaml:"char_count" json:"char_count"`
	Position         int     `yaml:"position" json:"position"`
	ExtractionMethod string  `yaml:"extraction_method" json:"extraction_method"`
	Confidence       float64 `yaml:"confidence" json:"confidence"`
}

// NewLessonRecord builds a record from an accepted candidate and its content
// span, filling in the derived counts.
func NewLessonRecord(c Candidate, content string) LessonRecord {
	return LessonRecord{
		Number:           c.Number,
		Title:            c.Title,
		Content:          content,
		WordCount:        len(strings.Fields(content)),
		CharCount:        len(content),
		Position:         c.StartPos,
		ExtractionMethod: string(c.Method),
		Confidence:       c.Confidence,
	}
}

// CharWordRatio returns chars per word, or 0 for empty content. Ratios
// outside [3, 10] signal corrupted or malformed extraction.
func (r LessonRecord) CharWordRatio() float64 {
	if r.WordCount == 0 {
		return 0
	}
	return float64(r.CharCount) / float64(r.WordCount)
}

// SkippedLesson records a candidate that was dropped at the mapping stage so
// the caller can see it instead of the lesson silently disappearing.
type SkippedLesson struct {
	Number int    `yaml:"number" json:"number"`
	Reason string `yaml:"reason" json:"reason"`
}
