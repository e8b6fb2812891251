package quality

import (
	"regexp"
	"strings"

	"github.com/jhondrl6/ucdm-corpus/models"
	"github.com/jhondrl6/ucdm-corpus/pkg/analytics"
	"github.com/jhondrl6/ucdm-corpus/pkg/patterns"
)

// maxReportedBreaks caps the flow-break list per text unit.
const maxReportedBreaks = 20

var (
	// sentenceRe splits text into sentences while keeping their terminal
	// punctuation attached, so transition classification can see it.
	sentenceRe       = regexp.MustCompile(`[^.!?]+[.!?]+|[^.!?]+$`)
	trailingClauseRe = regexp.MustCompile(`[,:;]\s*$`)
	sentenceEndRe    = regexp.MustCompile(`[.!?]\s*$`)
)

// checkFlow classifies every adjacent sentence transition as natural or a
// break, and labels the break type.
func (e *Engine) checkFlow(text string) models.FlowReport {
	var report models.FlowReport

	sentences := splitSentences(text)
	natural := 0

	for i := 0; i+1 < len(sentences); i++ {
		current, next := sentences[i], sentences[i+1]
		report.TotalTransitions++

		if isNaturalTransition(current, next) {
			natural++
			continue
		}

		if len(report.Breaks) < maxReportedBreaks {
			report.Breaks = append(report.Breaks, models.FlowBreak{
				Position:   i,
				CurrentEnd: tail(current, 30),
				NextStart:  head(next, 30),
				IssueType:  classifyBreak(current, next),
			})
		}
	}

	if report.TotalTransitions > 0 {
		report.ContentContinuity = float64(natural) / float64(report.TotalTransitions) * 100
	}
	return report
}

func splitSentences(text string) []string {
	var out []string
	for _, s := range sentenceRe.FindAllString(text, -1) {
		s = strings.TrimSpace(s)
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

// isNaturalTransition accepts a hand-off that matches a known transition
// shape or shares non-trivial vocabulary across the boundary.
func isNaturalTransition(current, next string) bool {
	joint := tail(current, 50) + " " + head(next, 50)
	for _, re := range patterns.NaturalTransitionRes {
		if re.MatchString(joint) {
			return true
		}
	}
	return sharedVocabulary(current, next) > 0
}

// sharedVocabulary counts meaningful words both sentences use.
func sharedVocabulary(current, next string) int {
	seen := make(map[string]bool)
	for _, w := range strings.Fields(strings.ToLower(current)) {
		w = strings.Trim(w, ".,;:!?")
		if !analytics.IsStopword(w) && len([]rune(w)) > 3 {
			seen[w] = true
		}
	}
	shared := 0
	for _, w := range strings.Fields(strings.ToLower(next)) {
		if seen[strings.Trim(w, ".,;:!?")] {
			shared++
		}
	}
	return shared
}

func classifyBreak(current, next string) string {
	switch {
	case trailingClauseRe.MatchString(current):
		return "incomplete_sentence"
	case !sentenceEndRe.MatchString(current):
		return "missing_punctuation"
	case lowercaseStartRe.MatchString(next):
		return "capitalization_error"
	default:
		return "abrupt_topic_change"
	}
}

func tail(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[len(runes)-n:])
}

func head(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
