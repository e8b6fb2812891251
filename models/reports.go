package models

// SequenceReport is the result of checking found numbers against the dense
// expected range [1..TotalExpected]. Derived, never mutated in place.
type SequenceReport struct {
	TotalExpected int     `yaml:"total_expected" json:"total_expected"`
	TotalFound    int     `yaml:"total_found" json:"total_found"`
	Found         []int   `yaml:"found" json:"found"`
	Missing       []int   `yaml:"missing" json:"missing"`
	Duplicates    []int   `yaml:"duplicates" json:"duplicates"`
	Completeness  float64 `yaml:"completeness_pct" json:"completeness_pct"`
	IntegrityOK   bool    `yaml:"integrity_ok" json:"integrity_ok"`
}

// DuplicateReport describes numbers that attracted more than one strong
// candidate. The merge step still picks a winner; this exists for operators.
type DuplicateReport struct {
	Count       int                 `yaml:"duplicate_count" json:"duplicate_count"`
	ByNumber    map[int][]Candidate `yaml:"by_number,omitempty" json:"by_number,omitempty"`
	Severity    string              `yaml:"severity" json:"severity"` // none, low, medium, high
	Resolutions []string            `yaml:"resolutions,omitempty" json:"resolutions,omitempty"`
}

// InvalidChar locates a corrupted or out-of-range character.
type InvalidChar struct {
	Position int    `yaml:"position" json:"position"`
	Char     string `yaml:"char" json:"char"`
	Context  string `yaml:"context,omitempty" json:"context,omitempty"`
	Kind     string `yaml:"kind" json:"kind"` // encoding_corruption, invalid_non_ascii
}

// LegibilityReport scores character-level validity of a text unit.
type LegibilityReport struct {
	CharacterValidity float64       `yaml:"character_validity" json:"character_validity"`
	TotalChars        int           `yaml:"total_chars" json:"total_chars"`
	InvalidChars      []InvalidChar `yaml:"invalid_chars,omitempty" json:"invalid_chars,omitempty"`
}

// IncompleteParagraph describes a paragraph that fails an integrity check.
type IncompleteParagraph struct {
	Index     int      `yaml:"index" json:"index"`
	Issues    []string `yaml:"issues" json:"issues"`
	Preview   string   `yaml:"preview" json:"preview"`
	WordCount int      `yaml:"word_count" json:"word_count"`
}

// IntegrityReport scores paragraph completeness.
type IntegrityReport struct {
	ParagraphCompleteness float64               `yaml:"paragraph_completeness" json:"paragraph_completeness"`
	TotalParagraphs       int                   `yaml:"total_paragraphs" json:"total_paragraphs"`
	Incomplete            []IncompleteParagraph `yaml:"incomplete,omitempty" json:"incomplete,omitempty"`
}

// FlowBreak marks a non-natural transition between adjacent sentences.
type FlowBreak struct {
	Position   int    `yaml:"position" json:"position"`
	CurrentEnd string `yaml:"current_end" json:"current_end"`
	NextStart  string `yaml:"next_start" json:"next_start"`
	IssueType  string `yaml:"issue_type" json:"issue_type"` // incomplete_sentence, missing_punctuation, capitalization_error, abrupt_topic_change
}

// FlowReport scores sentence-to-sentence continuity.
type FlowReport struct {
	ContentContinuity float64     `yaml:"content_continuity" json:"content_continuity"`
	TotalTransitions  int         `yaml:"total_transitions" json:"total_transitions"`
	Breaks            []FlowBreak `yaml:"breaks,omitempty" json:"breaks,omitempty"`
}

// CutLocation marks a point where content appears truncated mid-thought.
type CutLocation struct {
	Position int    `yaml:"position" json:"position"`
	Matched  string `yaml:"matched" json:"matched"`
	Severity string `yaml:"severity" json:"severity"` // low, medium, high
}

// CutReport summarizes abrupt-cut detection.
type CutReport struct {
	Count     int           `yaml:"count" json:"count"`
	Locations []CutLocation `yaml:"locations,omitempty" json:"locations,omitempty"`
	Severity  string        `yaml:"severity" json:"severity"` // none, low, medium, high, critical
}

// CorruptionHit is a match of a known encoding-corruption signature.
type CorruptionHit struct {
	Position  int    `yaml:"position" json:"position"`
	Corrupted string `yaml:"corrupted" json:"corrupted"`
	Suggested string `yaml:"suggested,omitempty" json:"suggested,omitempty"`
}

// EncodingReport scores encoding correctness of a text unit.
type EncodingReport struct {
	EncodingCorrectness float64         `yaml:"encoding_correctness" json:"encoding_correctness"`
	CorruptionHits      []CorruptionHit `yaml:"corruption_hits,omitempty" json:"corruption_hits,omitempty"`
	SpecialCharsValid   bool            `yaml:"special_chars_valid" json:"special_chars_valid"`
	DetectedLanguage    string          `yaml:"detected_language,omitempty" json:"detected_language,omitempty"`
	LanguageMismatch    bool            `yaml:"language_mismatch,omitempty" json:"language_mismatch,omitempty"`
}

// Quality status classifications.
const (
	QualityExcellent  = "EXCELENTE"
	QualityAcceptable = "ACEPTABLE"
	QualityNeedsWork  = "REQUIERE_MEJORA"
)

// QualityMetrics combines the five independent quality sub-reports for one
// text unit into a weighted overall score in [0, 100].
type QualityMetrics struct {
	Legibility LegibilityReport `yaml:"legibility" json:"legibility"`
	Integrity  IntegrityReport  `yaml:"integrity" json:"integrity"`
	Flow       FlowReport       `yaml:"flow" json:"flow"`
	Cuts       CutReport        `yaml:"cuts" json:"cuts"`
	Encoding   EncodingReport   `yaml:"encoding" json:"encoding"`

	OverallScore float64 `yaml:"overall_quality_score" json:"overall_quality_score"`
	Status       string  `yaml:"quality_status" json:"quality_status"`
	Error        string  `yaml:"error,omitempty" json:"error,omitempty"`
}

// ProblematicLesson flags a lesson whose record fails a coverage gate.
type ProblematicLesson struct {
	Number       int      `yaml:"number" json:"number"`
	Issues       []string `yaml:"issues" json:"issues"`
	QualityScore float64  `yaml:"quality_score" json:"quality_score"`
}

// ExtractionStats summarizes how a run's lessons were found.
type ExtractionStats struct {
	MethodCounts    map[string]int `yaml:"method_counts" json:"method_counts"`
	ConfidenceRange map[string]int `yaml:"confidence_distribution" json:"confidence_distribution"`
}

// Processing status classifications, by completeness band.
const (
	StatusComplete       = "COMPLETO"
	StatusAlmostComplete = "CASI_COMPLETO"
	StatusInProgress     = "EN_PROGRESO"
	StatusPartial        = "PARCIAL"
	StatusInitial        = "INICIAL"
)

// CoverageReport aggregates sequence, mapping, and quality results into one
// operator-facing report.
type CoverageReport struct {
	CoveragePct     float64             `yaml:"coverage_pct" json:"coverage_pct"`
	Processed       int                 `yaml:"processed" json:"processed"`
	Pending         []int               `yaml:"pending,omitempty" json:"pending,omitempty"`
	Problematic     []ProblematicLesson `yaml:"problematic,omitempty" json:"problematic,omitempty"`
	Status          string              `yaml:"status" json:"status"`
	Recommendations []string            `yaml:"recommendations" json:"recommendations"`
	NextActions     []string            `yaml:"next_actions,omitempty" json:"next_actions,omitempty"`
}

// RecognitionResult is the full output of one pipeline run.
type RecognitionResult struct {
	Records    map[int]LessonRecord `yaml:"-" json:"-"`
	Sequence   SequenceReport       `yaml:"sequence" json:"sequence"`
	Duplicates DuplicateReport      `yaml:"duplicates" json:"duplicates"`
	Skipped    []SkippedLesson      `yaml:"skipped,omitempty" json:"skipped,omitempty"`
	Stats      ExtractionStats      `yaml:"stats" json:"stats"`
	Warnings   []string             `yaml:"warnings,omitempty" json:"warnings,omitempty"`
}
