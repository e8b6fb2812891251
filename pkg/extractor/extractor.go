// Package extractor applies the pattern library across a source text and
// yields scored candidates. It is a pure function of (text, library,
// options): no state survives a call, so passes can run in parallel.
package extractor

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/jhondrl6/ucdm-corpus/models"
	"github.com/jhondrl6/ucdm-corpus/pkg/patterns"
)

// Options bound an extraction pass.
type Options struct {
	// ExpectedMax is the inclusive upper bound of valid unit numbers (365
	// for lessons, 31 for chapters). Out-of-range matches are discarded
	// before scoring.
	ExpectedMax int

	// BatchSize bounds the alternation width of the sequential strategy.
	BatchSize int
}

// Result carries the candidates of one pass plus per-family warnings for
// strategies that failed and were skipped.
type Result struct {
	Candidates []models.Candidate
	Warnings   []string
}

// ExtractCandidates runs every pattern family over text in priority order.
// Results are not deduplicated; the merge step reconciles them.
func ExtractCandidates(text string, lib *patterns.Library, opts Options) Result {
	var res Result
	if text == "" || opts.ExpectedMax <= 0 {
		return res
	}

	batch := opts.BatchSize
	if batch <= 0 {
		batch = 10
	}

	for _, fam := range lib.Families() {
		cands, err := runFamily(text, fam, opts.ExpectedMax)
		if err != nil {
			res.Warnings = append(res.Warnings, fmt.Sprintf("family %s skipped: %v", fam.Name, err))
			continue
		}
		res.Candidates = append(res.Candidates, cands...)
	}

	// Sequential strategy, batched to bound alternation cost.
	for start := 1; start <= opts.ExpectedMax; start += batch {
		end := start + batch - 1
		if end > opts.ExpectedMax {
			end = opts.ExpectedMax
		}
		fam, err := lib.SequentialFamily(start, end)
		if err != nil {
			res.Warnings = append(res.Warnings, fmt.Sprintf("sequential batch %d-%d skipped: %v", start, end, err))
			continue
		}
		cands, err := runFamily(text, fam, opts.ExpectedMax)
		if err != nil {
			res.Warnings = append(res.Warnings, fmt.Sprintf("sequential batch %d-%d skipped: %v", start, end, err))
			continue
		}
		res.Candidates = append(res.Candidates, cands...)
	}

	return res
}

// runFamily applies one family's expressions. A panic inside a single family
// (pathological input) is recovered and reported so the remaining families
// still contribute.
func runFamily(text string, fam patterns.Family, expectedMax int) (cands []models.Candidate, err error) {
	defer func() {
		if r := recover(); r != nil {
			cands = nil
			err = fmt.Errorf("pattern panic: %v", r)
		}
	}()

	method := methodFor(fam.Name)

	for i, re := range fam.Expressions {
		matches := re.FindAllStringSubmatchIndex(text, -1)
		for _, m := range matches {
			num, ok := matchNumber(text, m)
			if !ok || num < 1 || num > expectedMax {
				continue
			}

			start, end := m[0], m[1]
			title := matchTitle(text, re, m)

			if fam.ContextGated && !patterns.HasContextIndicator(contextWindow(text, start, end)) {
				continue
			}
			if needsTitleCheck(fam.Name, i) && !ValidTitle(title) {
				continue
			}

			cands = append(cands, models.Candidate{
				Number:     num,
				Title:      title,
				StartPos:   start,
				EndPos:     end,
				Method:     method,
				Confidence: Score(fam.BaseConfidence, i, start, end, text),
			})
		}
	}

	return cands, nil
}

func methodFor(name string) models.Method {
	switch name {
	case "primary":
		return models.MethodPrimary
	case "secondary":
		return models.MethodSecondary
	case "contextual":
		return models.MethodContextual
	default:
		return models.MethodSequential
	}
}

// needsTitleCheck marks the expressions whose captured title must look like a
// real unit title: the bare number-plus-text forms attract page headers and
// cross references, the explicit marker forms do not.
func needsTitleCheck(family string, exprIndex int) bool {
	if family == "sequential" {
		return true
	}
	return family == "secondary" && exprIndex == 0
}

func matchNumber(text string, m []int) (int, bool) {
	if len(m) < 4 || m[2] < 0 {
		return 0, false
	}
	n, err := strconv.Atoi(text[m[2]:m[3]])
	if err != nil {
		return 0, false
	}
	return n, true
}

func matchTitle(text string, re *regexp.Regexp, m []int) string {
	if re.NumSubexp() < 2 || len(m) < 6 || m[4] < 0 {
		return ""
	}
	return strings.TrimSpace(text[m[4]:m[5]])
}

var (
	meaningfulTextRe = regexp.MustCompile(`[a-záéíóúñ]{3,}`)
	pureNumberRe     = regexp.MustCompile(`^\d+$`)
)

// ValidTitle reports whether a captured title looks like unit prose rather
// than noise: a domain keyword, or meaningful lowercase text that is not a
// bare number.
func ValidTitle(title string) bool {
	title = strings.TrimSpace(title)
	if len(title) < 5 {
		return false
	}
	if patterns.HasDomainKeyword(title) {
		return true
	}
	return meaningfulTextRe.MatchString(strings.ToLower(title)) && !pureNumberRe.MatchString(title)
}

// contextWindow slices text around a match: 100 chars back, 200 forward,
// clamped to the document.
func contextWindow(text string, start, end int) string {
	lo := start - 100
	if lo < 0 {
		lo = 0
	}
	hi := end + 200
	if hi > len(text) {
		hi = len(text)
	}
	return text[lo:hi]
}
