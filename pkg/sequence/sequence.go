// Package sequence checks an accepted number set against the dense expected
// range. Pure set arithmetic: total, deterministic, never fails.
package sequence

import (
	"sort"

	"github.com/jhondrl6/ucdm-corpus/models"
)

// Validate computes the SequenceReport for found numbers against
// [1..expectedMax]. Duplicates are sourced from the merge step, not
// recomputed here. Empty input yields 0% completeness, not an error.
func Validate(found []int, duplicates []int, expectedMax int) models.SequenceReport {
	if expectedMax <= 0 {
		return models.SequenceReport{Missing: []int{}, Found: []int{}, Duplicates: []int{}}
	}

	foundSet := make(map[int]bool, len(found))
	for _, n := range found {
		if n >= 1 && n <= expectedMax {
			foundSet[n] = true
		}
	}

	missing := make([]int, 0)
	for n := 1; n <= expectedMax; n++ {
		if !foundSet[n] {
			missing = append(missing, n)
		}
	}

	foundSorted := make([]int, 0, len(foundSet))
	for n := range foundSet {
		foundSorted = append(foundSorted, n)
	}
	sort.Ints(foundSorted)

	if duplicates == nil {
		duplicates = []int{}
	}

	return models.SequenceReport{
		TotalExpected: expectedMax,
		TotalFound:    len(foundSorted),
		Found:         foundSorted,
		Missing:       missing,
		Duplicates:    duplicates,
		Completeness:  float64(len(foundSorted)) / float64(expectedMax) * 100,
		IntegrityOK:   len(missing) == 0 && len(duplicates) == 0,
	}
}
