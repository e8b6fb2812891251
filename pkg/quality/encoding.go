package quality

import (
	"github.com/jhondrl6/ucdm-corpus/models"
	"github.com/jhondrl6/ucdm-corpus/pkg/patterns"
)

const maxReportedHits = 30

// checkEncoding scans for mojibake signatures (UTF-8 decoded as Latin-1) and
// scores encoding correctness by hit density per 100 characters.
func (e *Engine) checkEncoding(text string) models.EncodingReport {
	var report models.EncodingReport
	if text == "" {
		// nothing to vouch for, so no correctness credit
		return report
	}
	totalHits := 0

	for _, re := range patterns.CorruptionRes {
		for _, loc := range re.FindAllStringIndex(text, -1) {
			totalHits++
			if len(report.CorruptionHits) < maxReportedHits {
				corrupted := text[loc[0]:loc[1]]
				report.CorruptionHits = append(report.CorruptionHits, models.CorruptionHit{
					Position:  loc[0],
					Corrupted: corrupted,
					Suggested: patterns.SuggestEncodingFix(corrupted),
				})
			}
		}
	}

	density := float64(totalHits) / float64(max(1, len(text)/100))
	report.EncodingCorrectness = clampScore((1 - density) * 100)
	report.SpecialCharsValid = totalHits == 0 && patterns.ValidSpanishCharRe.MatchString(text)

	if e.verifier != nil {
		lang, ok := e.verifier.Verify(text)
		report.DetectedLanguage = lang
		report.LanguageMismatch = !ok
	}
	return report
}
