package quality

import (
	"regexp"
	"strings"

	"github.com/jhondrl6/ucdm-corpus/models"
)

var (
	paragraphSplitRe = regexp.MustCompile(`\n\s*\n`)
	terminalPunctRe  = regexp.MustCompile(`[.!?:]\s*$`)
	lowercaseStartRe = regexp.MustCompile(`^[a-záéíóúñ]`)
)

// checkIntegrity splits text on blank-line boundaries and flags paragraphs
// that look cut: no terminal punctuation, a lowercase start, or abnormal
// shortness. Unit-marker lines are exempt from the punctuation rule.
func (e *Engine) checkIntegrity(text string) models.IntegrityReport {
	var report models.IntegrityReport

	for i, raw := range paragraphSplitRe.Split(text, -1) {
		paragraph := strings.TrimSpace(raw)
		if paragraph == "" {
			continue
		}
		report.TotalParagraphs++

		isMarker := e.markerRe.MatchString(paragraph)
		var issues []string

		if !terminalPunctRe.MatchString(paragraph) && !isMarker {
			issues = append(issues, "no terminal punctuation")
		}
		if lowercaseStartRe.MatchString(paragraph) {
			issues = append(issues, "starts lowercase, likely mid-sentence")
		}
		words := len(strings.Fields(paragraph))
		if words < 3 && !isMarker {
			issues = append(issues, "too short to stand alone")
		}

		if len(issues) > 0 {
			report.Incomplete = append(report.Incomplete, models.IncompleteParagraph{
				Index:     i,
				Issues:    issues,
				Preview:   preview(paragraph, 100),
				WordCount: words,
			})
		}
	}

	if report.TotalParagraphs > 0 {
		complete := report.TotalParagraphs - len(report.Incomplete)
		report.ParagraphCompleteness = float64(complete) / float64(report.TotalParagraphs) * 100
	}
	return report
}

func preview(s string, n int) string {
	if len(s) <= n {
		return s
	}
	// Cut on a rune boundary.
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
