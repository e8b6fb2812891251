// Package merge reconciles the candidates produced by all extraction
// strategies into at most one winner per unit number.
package merge

import (
	"math"
	"sort"

	"github.com/jhondrl6/ucdm-corpus/models"
)

// strongConfidence is the floor above which two distinct candidates for the
// same number count as a true duplicate worth reporting.
const strongConfidence = 0.7

// Resolve groups candidates by number and keeps the best one per group.
// Tie-break order: highest confidence, then strongest pattern family, then
// title length closest to 20 characters. The returned map enforces the
// uniqueness invariant; the DuplicateReport surfaces contested numbers even
// though a winner was picked.
func Resolve(candidates []models.Candidate) (map[int]models.Candidate, models.DuplicateReport) {
	byNumber := make(map[int][]models.Candidate)
	for _, c := range candidates {
		byNumber[c.Number] = append(byNumber[c.Number], c)
	}

	accepted := make(map[int]models.Candidate, len(byNumber))
	duplicates := make(map[int][]models.Candidate)

	for num, group := range byNumber {
		sort.SliceStable(group, func(i, j int) bool {
			return better(group[i], group[j])
		})
		accepted[num] = group[0]

		if strong := distinctStrong(group); len(strong) > 1 {
			duplicates[num] = strong
		}
	}

	return accepted, buildDuplicateReport(duplicates)
}

// better reports whether a should win over b.
func better(a, b models.Candidate) bool {
	if a.Confidence != b.Confidence {
		return a.Confidence > b.Confidence
	}
	if a.Method.Priority() != b.Method.Priority() {
		return a.Method.Priority() < b.Method.Priority()
	}
	// Well-formed titles sit around 20 characters; extremes are noise.
	return titleDistance(a.Title) < titleDistance(b.Title)
}

func titleDistance(title string) float64 {
	return math.Abs(float64(len([]rune(title))) - 20)
}

// distinctStrong returns the high-confidence candidates at distinct
// positions. Two families matching the same marker are one finding, not a
// duplicate.
func distinctStrong(group []models.Candidate) []models.Candidate {
	seen := make(map[int]bool)
	var strong []models.Candidate
	for _, c := range group {
		if c.Confidence < strongConfidence || seen[c.StartPos] {
			continue
		}
		seen[c.StartPos] = true
		strong = append(strong, c)
	}
	return strong
}

func buildDuplicateReport(duplicates map[int][]models.Candidate) models.DuplicateReport {
	report := models.DuplicateReport{
		Count:    len(duplicates),
		ByNumber: duplicates,
	}

	switch {
	case report.Count == 0:
		report.Severity = "none"
	case report.Count <= 3:
		report.Severity = "low"
	case report.Count <= 10:
		report.Severity = "medium"
	default:
		report.Severity = "high"
	}

	if report.Count == 0 {
		report.Resolutions = []string{"no duplicates found"}
		return report
	}

	report.Resolutions = []string{
		"review duplicate instances manually",
		"keep the instance with the highest recognition confidence",
	}
	crowded := 0
	for _, group := range duplicates {
		if len(group) > 2 {
			crowded++
		}
	}
	if crowded > 0 {
		report.Resolutions = append(report.Resolutions, "re-extract with stricter filters")
	}
	report.Resolutions = append(report.Resolutions, "cross-validate contested numbers against content")

	return report
}

// Numbers returns the sorted accepted unit numbers.
func Numbers(accepted map[int]models.Candidate) []int {
	nums := make([]int, 0, len(accepted))
	for n := range accepted {
		nums = append(nums, n)
	}
	sort.Ints(nums)
	return nums
}

// DuplicateNumbers returns the sorted contested numbers from a report.
func DuplicateNumbers(report models.DuplicateReport) []int {
	nums := make([]int, 0, len(report.ByNumber))
	for n := range report.ByNumber {
		nums = append(nums, n)
	}
	sort.Ints(nums)
	return nums
}
