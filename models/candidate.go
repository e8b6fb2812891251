// Package models defines the data structures shared across the recognition
// and validation pipeline.
package models

// Method identifies which pattern family produced a candidate.
type Method string

const (
	MethodPrimary    Method = "primary"
	MethodSecondary  Method = "secondary"
	MethodContextual Method = "contextual"
	MethodSequential Method = "sequential"
)

// Priority returns the tie-break rank of a method. Lower is stronger.
func (m Method) Priority() int {
	switch m {
	case MethodPrimary:
		return 0
	case MethodSecondary:
		return 1
	case MethodContextual:
		return 2
	case MethodSequential:
		return 3
	}
	return 4
}

// Candidate is an unconfirmed, scored hypothesis that a text position starts
// lesson (or chapter) Number. Candidates are ephemeral: they exist between
// extraction and merge within a single run.
type Candidate struct {
	Number     int     `yaml:"number" json:"number"`
	Title      string  `yaml:"title" json:"title"`
	StartPos   int     `yaml:"start_pos" json:"start_pos"`
	EndPos     int     `yaml:"end_pos" json:"end_pos"`
	Method     Method  `yaml:"method" json:"method"`
	Confidence float64 `yaml:"confidence" json:"confidence"`
}

// ConfidenceBucket classifies a confidence value for run statistics.
func ConfidenceBucket(c float64) string {
	switch {
	case c >= 0.8:
		return "high"
	case c >= 0.6:
		return "medium"
	default:
		return "low"
	}
}
