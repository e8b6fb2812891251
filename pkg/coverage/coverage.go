package coverage

import (
	"fmt"
	"sort"

	"github.com/jhondrl6/ucdm-corpus/models"
)

// Ratio gates for plausible Spanish prose. Outside this band the record is
// likely a page-number run or a glued block with no word separation.
const (
	minCharWordRatio = 3.0
	maxCharWordRatio = 10.0
)

// knownHardRanges are lesson ranges that the source scans consistently damage
// (end-of-book review pages, mid-book page breaks). Pending lessons in these
// ranges get targeted recommendations instead of generic ones.
var knownHardRanges = [][2]int{
	{360, 365},
	{68, 68},
	{91, 91},
	{168, 168},
}

// Analyze folds lesson records, their quality metrics and the merge pass's
// duplicate severity into an operator-facing coverage report with concrete
// recommendations.
func Analyze(records map[int]models.LessonRecord, quality map[int]models.QualityMetrics, duplicateSeverity string, cfg models.Config) models.CoverageReport {
	report := models.CoverageReport{
		Processed:       len(records),
		Recommendations: []string{},
	}
	if cfg.ExpectedMax <= 0 {
		report.Status = models.StatusInitial
		return report
	}

	report.CoveragePct = float64(len(records)) / float64(cfg.ExpectedMax) * 100
	report.Status = StatusFor(report.CoveragePct)

	for n := 1; n <= cfg.ExpectedMax; n++ {
		if _, ok := records[n]; !ok {
			report.Pending = append(report.Pending, n)
		}
	}

	report.Problematic = findProblematic(records, quality, cfg)
	report.Recommendations = recommendations(report, duplicateSeverity)
	report.NextActions = nextActions(report)
	return report
}

// StatusFor maps a coverage percentage to its processing status band.
func StatusFor(pct float64) string {
	switch {
	case pct >= 99:
		return models.StatusComplete
	case pct >= 90:
		return models.StatusAlmostComplete
	case pct >= 70:
		return models.StatusInProgress
	case pct >= 50:
		return models.StatusPartial
	default:
		return models.StatusInitial
	}
}

// findProblematic flags processed lessons whose record or quality metrics
// fail a sanity gate.
func findProblematic(records map[int]models.LessonRecord, quality map[int]models.QualityMetrics, cfg models.Config) []models.ProblematicLesson {
	var out []models.ProblematicLesson

	numbers := make([]int, 0, len(records))
	for n := range records {
		numbers = append(numbers, n)
	}
	sort.Ints(numbers)

	for _, n := range numbers {
		rec := records[n]
		var issues []string

		if rec.WordCount < cfg.MinContentWords {
			issues = append(issues, fmt.Sprintf("only %d words of content", rec.WordCount))
		}
		if ratio := rec.CharWordRatio(); rec.WordCount > 0 && (ratio < minCharWordRatio || ratio > maxCharWordRatio) {
			issues = append(issues, fmt.Sprintf("character/word ratio %.1f outside plausible prose range", ratio))
		}

		score := 0.0
		if m, ok := quality[n]; ok {
			score = m.OverallScore
			if m.Status == models.QualityNeedsWork {
				issues = append(issues, fmt.Sprintf("quality score %.1f below acceptance threshold", m.OverallScore))
			}
			if m.Encoding.LanguageMismatch {
				issues = append(issues, fmt.Sprintf("detected language %q, expected Spanish", m.Encoding.DetectedLanguage))
			}
		}

		if len(issues) > 0 {
			out = append(out, models.ProblematicLesson{
				Number:       n,
				Issues:       issues,
				QualityScore: score,
			})
		}
	}
	return out
}

func recommendations(report models.CoverageReport, duplicateSeverity string) []string {
	var recs []string

	if duplicateSeverity == "high" {
		recs = append(recs, "duplicate severity is high, resolve duplicate markers before finalizing the corpus")
	}

	switch {
	case report.CoveragePct < 50:
		recs = append(recs, "coverage is below half, re-run full recognition on a cleaner source before targeted fixes")
	case report.CoveragePct < 80:
		recs = append(recs, fmt.Sprintf("run targeted extraction for the %d pending lessons", len(report.Pending)))
	case report.CoveragePct < 95:
		recs = append(recs, "close to complete, run targeted extraction per pending lesson")
	default:
		recs = append(recs, "coverage target reached, focus on quality review of flagged lessons")
	}

	if hard := pendingInHardRanges(report.Pending); len(hard) > 0 {
		recs = append(recs, fmt.Sprintf("lessons %v fall in known-difficult ranges, extract them with relaxed patterns", hard))
	}
	if len(report.Problematic) > 0 {
		recs = append(recs, fmt.Sprintf("%d processed lessons failed sanity gates, review before publishing", len(report.Problematic)))
	}
	return recs
}

func nextActions(report models.CoverageReport) []string {
	var actions []string
	if len(report.Pending) > 0 {
		actions = append(actions, fmt.Sprintf("extract %d missing lessons", len(report.Pending)))
	}
	for _, p := range report.Problematic {
		if len(actions) >= 10 {
			break
		}
		actions = append(actions, fmt.Sprintf("review lesson %d: %s", p.Number, p.Issues[0]))
	}
	return actions
}

// pendingInHardRanges filters pending numbers down to the known-difficult
// ranges, preserving order.
func pendingInHardRanges(pending []int) []int {
	var out []int
	for _, n := range pending {
		for _, r := range knownHardRanges {
			if n >= r[0] && n <= r[1] {
				out = append(out, n)
				break
			}
		}
	}
	return out
}
