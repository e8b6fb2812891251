// Package language verifies that a text unit is written in the corpus
// language. Detection runs offline via lingua's statistical models.
package language

import (
	"strings"

	"github.com/pemistahl/lingua-go"
)

// minWords is the floor under which detection is too unreliable to judge.
const minWords = 40

// sampleLen caps how much text feeds the detector per unit.
const sampleLen = 2000

// Verifier detects the language of text units and compares it against the
// expected corpus language (Spanish).
type Verifier struct {
	detector lingua.LanguageDetector
}

// NewVerifier builds a detector restricted to the languages a mis-extracted
// Spanish source could plausibly be mistaken for.
func NewVerifier() *Verifier {
	detector := lingua.NewLanguageDetectorBuilder().
		FromLanguages(
			lingua.Spanish,
			lingua.English,
			lingua.Portuguese,
			lingua.Italian,
			lingua.French,
		).
		Build()
	return &Verifier{detector: detector}
}

// Verify returns the detected language name and whether the text is
// consistent with Spanish. Texts too short to judge pass with an empty
// language name.
func (v *Verifier) Verify(text string) (string, bool) {
	if len(strings.Fields(text)) < minWords {
		return "", true
	}

	sample := text
	if len(sample) > sampleLen {
		sample = sample[:sampleLen]
	}

	lang, ok := v.detector.DetectLanguageOf(sample)
	if !ok {
		return "unknown", false
	}
	return lang.String(), lang == lingua.Spanish
}
