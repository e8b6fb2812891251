package quality

import (
	"unicode"

	"github.com/jhondrl6/ucdm-corpus/models"
	"github.com/jhondrl6/ucdm-corpus/pkg/patterns"
)

// maxReportedInvalid caps the invalid-character list so a badly corrupted
// document does not produce a report larger than itself.
const maxReportedInvalid = 100

// checkLegibility classifies every character. A character inside a known
// corruption signature counts as invalid even when it is valid Unicode on
// its own.
func (e *Engine) checkLegibility(text string) models.LegibilityReport {
	runes := []rune(text)
	total := len(runes)
	if total == 0 {
		return models.LegibilityReport{}
	}

	report := models.LegibilityReport{TotalChars: total}

	// Mark rune positions covered by corruption signatures first, one scan
	// per signature instead of one per character.
	corrupted := corruptionMask(text, runes)

	valid := 0
	for i, r := range runes {
		if corrupted[i] {
			appendInvalid(&report, i, r, runeContext(runes, i), "encoding_corruption")
			continue
		}

		switch {
		case unicode.IsLetter(r), unicode.IsNumber(r), unicode.IsPunct(r),
			unicode.IsSymbol(r), unicode.IsSpace(r):
			if r > 127 && !unicode.IsSpace(r) && !patterns.ValidSpanishCharRe.MatchString(string(r)) {
				appendInvalid(&report, i, r, runeContext(runes, i), "invalid_non_ascii")
				continue
			}
			valid++
		case r == '\n', r == '\r', r == '\t':
			valid++
		default:
			appendInvalid(&report, i, r, runeContext(runes, i), "invalid_non_ascii")
		}
	}

	report.CharacterValidity = float64(valid) / float64(total) * 100
	return report
}

// corruptionMask marks every rune index covered by a corruption signature.
func corruptionMask(text string, runes []rune) []bool {
	mask := make([]bool, len(runes))

	// Map byte offsets to rune indices once.
	byteToRune := make(map[int]int, len(runes))
	byteIdx := 0
	for runeIdx, r := range runes {
		byteToRune[byteIdx] = runeIdx
		byteIdx += len(string(r))
	}

	for _, re := range patterns.CorruptionRes {
		for _, loc := range re.FindAllStringIndex(text, -1) {
			start, ok := byteToRune[loc[0]]
			if !ok {
				continue
			}
			for i := start; i < len(runes); i++ {
				mask[i] = true
				if loc[0]+len(string(runes[start:i+1])) >= loc[1] {
					break
				}
			}
		}
	}

	return mask
}

func appendInvalid(report *models.LegibilityReport, pos int, r rune, context, kind string) {
	if len(report.InvalidChars) < maxReportedInvalid {
		report.InvalidChars = append(report.InvalidChars, models.InvalidChar{
			Position: pos,
			Char:     string(r),
			Context:  context,
			Kind:     kind,
		})
	}
}

// runeContext returns the ±2 characters around position i.
func runeContext(runes []rune, i int) string {
	lo := i - 2
	if lo < 0 {
		lo = 0
	}
	hi := i + 3
	if hi > len(runes) {
		hi = len(runes)
	}
	return string(runes[lo:hi])
}
