// Package mapper slices the content span for each accepted candidate and
// gates the result on minimal quality before a LessonRecord is emitted.
package mapper

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jhondrl6/ucdm-corpus/models"
	"github.com/jhondrl6/ucdm-corpus/pkg/patterns"
)

// Options bound a mapping pass.
type Options struct {
	// MinContentWords is the floor under which a span is rejected.
	MinContentWords int

	// TailWindow bounds the forward scan for a section-end marker after the
	// last accepted unit, in characters.
	TailWindow int
}

// MapContent associates each accepted candidate with its content span.
// Rejected candidates are returned as skipped entries instead of silently
// disappearing.
func MapContent(accepted map[int]models.Candidate, fullText string, lib *patterns.Library, opts Options) (map[int]models.LessonRecord, []models.SkippedLesson) {
	records := make(map[int]models.LessonRecord, len(accepted))
	var skipped []models.SkippedLesson

	if len(accepted) == 0 || fullText == "" {
		return records, skipped
	}

	minWords := opts.MinContentWords
	if minWords <= 0 {
		minWords = 10
	}
	tailWindow := opts.TailWindow
	if tailWindow <= 0 {
		tailWindow = 20000
	}

	numbers := make([]int, 0, len(accepted))
	for n := range accepted {
		numbers = append(numbers, n)
	}
	sort.Ints(numbers)

	for i, n := range numbers {
		cand := accepted[n]

		start := clamp(cand.EndPos, 0, len(fullText))
		var end int
		if i+1 < len(numbers) {
			// Next accepted number, not necessarily n+1: gaps are tolerated
			// at this stage.
			end = clamp(accepted[numbers[i+1]].StartPos, start, len(fullText))
		} else {
			end = tailBound(fullText, start, tailWindow)
		}

		content := CleanContent(fullText[start:end])

		title := cand.Title
		if title == "" {
			title = extractTitle(content, lib)
		}

		if wc := len(strings.Fields(content)); wc < minWords {
			skipped = append(skipped, models.SkippedLesson{
				Number: n,
				Reason: fmt.Sprintf("content too short: %d words", wc),
			})
			continue
		}
		if len(strings.TrimSpace(title)) < 3 {
			skipped = append(skipped, models.SkippedLesson{
				Number: n,
				Reason: "title missing or near-empty",
			})
			continue
		}

		rec := models.NewLessonRecord(cand, content)
		rec.Title = title
		records[n] = rec
	}

	return records, skipped
}

// tailBound finds the end of the last unit's span: the first section-end
// marker within the window, else end of document. Never indexes past the
// text.
func tailBound(text string, start, window int) int {
	hi := start + window
	if hi > len(text) {
		hi = len(text)
	}
	if loc := patterns.SectionEndRe.FindStringIndex(text[start:hi]); loc != nil {
		return start + loc[0]
	}
	return len(text)
}

// CleanContent normalizes an extracted span: page-number lines go, blank-line
// runs collapse to one blank line, space runs collapse, control characters
// go, and text leaking in from a following section is truncated.
func CleanContent(raw string) string {
	content := patterns.ControlCharsRe.ReplaceAllString(raw, "")
	content = patterns.PageNumberLineRe.ReplaceAllString(content, "")

	if loc := patterns.SectionEndRe.FindStringIndex(content); loc != nil {
		content = content[:loc[0]]
	}

	content = patterns.BlankRunRe.ReplaceAllString(content, "\n\n")
	content = patterns.SpaceRunRe.ReplaceAllString(content, " ")

	lines := strings.Split(content, "\n")
	out := lines[:0]
	for _, line := range lines {
		out = append(out, strings.TrimRight(line, " "))
	}
	return strings.TrimSpace(strings.Join(out, "\n"))
}

// extractTitle recovers a title from the span head when the marker pattern
// captured none.
func extractTitle(content string, lib *patterns.Library) string {
	head := content
	if len(head) > 300 {
		head = head[:300]
	}
	for _, re := range lib.TitlePatterns {
		if m := re.FindStringSubmatch(head); len(m) > 1 {
			return strings.TrimSpace(m[1])
		}
	}
	// Fall back to the first non-empty line if it reads like a title.
	for _, line := range strings.Split(head, "\n") {
		line = strings.TrimSpace(line)
		if len(line) >= 5 && len(line) <= 120 {
			return line
		}
		if line != "" {
			break
		}
	}
	return ""
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
