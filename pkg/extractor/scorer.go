package extractor

import (
	"math"

	"github.com/jhondrl6/ucdm-corpus/pkg/patterns"
)

// Score computes the final confidence of one candidate. Deterministic and
// order-independent: rescoring the same match against the same text yields
// the same value.
func Score(base float64, patternIndex, start, end int, text string) float64 {
	// Earlier-listed expressions within a family are more trustworthy.
	positionFactor := math.Max(0.8, 1.0-0.1*float64(patternIndex))

	final := base * positionFactor * contextQuality(text, start, end)
	return math.Min(1.0, math.Max(0.0, final))
}

// contextQuality inspects ±100 chars around a match. Noise characters and
// page-reference shapes push the factor down; domain vocabulary pulls it up.
func contextQuality(text string, start, end int) float64 {
	lo := start - 100
	if lo < 0 {
		lo = 0
	}
	hi := end + 100
	if hi > len(text) {
		hi = len(text)
	}
	ctx := text[lo:hi]

	quality := 1.0

	if len(patterns.StrangeCharRe.FindAllString(ctx, 6)) > 5 {
		quality *= 0.8
	}

	if patterns.HasDomainKeyword(ctx) {
		quality *= 1.1
	}

	if patterns.PageRangeRe.MatchString(ctx) {
		quality *= 0.7
	}

	return math.Min(1.0, quality)
}
