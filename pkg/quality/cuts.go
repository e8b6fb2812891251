package quality

import (
	"regexp"
	"strings"

	"github.com/jhondrl6/ucdm-corpus/models"
	"github.com/jhondrl6/ucdm-corpus/pkg/patterns"
)

const maxReportedCuts = 20

// checkCuts scans for content that trails off mid-thought. A cut right before
// a lesson marker is usually just the unit boundary, so it is downgraded.
func (e *Engine) detectCuts(text string) models.CutReport {
	var report models.CutReport
	high := 0

	for _, re := range patterns.AbruptCutRes {
		for _, loc := range re.FindAllStringIndex(text, -1) {
			matched := text[loc[0]:loc[1]]
			severity := cutSeverity(text, loc[1], matched, e.markerRe)
			if severity == "high" {
				high++
			}
			report.Count++
			if len(report.Locations) < maxReportedCuts {
				report.Locations = append(report.Locations, models.CutLocation{
					Position: loc[0],
					Matched:  strings.TrimSpace(matched),
					Severity: severity,
				})
			}
		}
	}

	report.Severity = overallCutSeverity(report.Count, high)
	return report
}

// cutSeverity grades a single cut. Cuts that sit right before the next
// lesson marker are expected; long trailing fragments are not.
func cutSeverity(text string, end int, matched string, markerRe *regexp.Regexp) string {
	after := text[end:min(end+150, len(text))]
	if markerRe != nil && markerRe.MatchString(after) {
		return "low"
	}
	if len(strings.Fields(matched)) > 5 {
		return "high"
	}
	return "medium"
}

func overallCutSeverity(count, high int) string {
	switch {
	case count == 0:
		return "none"
	case high > 3:
		return "critical"
	case high > 0:
		return "high"
	case count > 10:
		return "medium"
	default:
		return "low"
	}
}
