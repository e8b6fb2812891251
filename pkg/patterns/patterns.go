// Package patterns holds the fixed regular-expression families used to locate
// lesson and chapter markers, plus the corruption and section signatures the
// quality engine scans for. Everything is compiled once at load time; all
// expressions are RE2, so matching is linear in the input.
package patterns

import (
	"fmt"
	"regexp"
	"strings"
)

// Family is one group of marker expressions sharing a base confidence.
type Family struct {
	Name           string
	BaseConfidence float64
	// Expressions are tried in order; later entries carry a mild confidence
	// penalty. Group 1 is the unit number, group 2 (optional) the title.
	Expressions []*regexp.Regexp
	// ContextGated families only accept matches whose surrounding text
	// contains practice/reflection vocabulary.
	ContextGated bool
}

// Library is the full pattern set for one entity type (lessons or chapters).
type Library struct {
	Primary    Family
	Secondary  Family
	Contextual Family

	// Title extraction, applied near an accepted marker when the marker
	// expression itself captured no title.
	TitlePatterns []*regexp.Regexp

	// marker word for the sequential strategy ("Lección" / "Capítulo").
	markerWord string
}

// ForLessons returns the library tuned for the 365 workbook lessons.
func ForLessons() *Library {
	return &Library{
		Primary: Family{
			Name:           "primary",
			BaseConfidence: 0.9,
			Expressions: []*regexp.Regexp{
				// case-insensitive; [oó] also tolerates a tilde lost in extraction
				regexp.MustCompile(`(?im)^[ \t]*Lecci[oó]n\s+(\d{1,3})\s*[.:]?[ \t]*([^\n]*)$`),
			},
		},
		Secondary: Family{
			Name:           "secondary",
			BaseConfidence: 0.7,
			Expressions: []*regexp.Regexp{
				regexp.MustCompile(`(?m)^[ \t]*(\d{1,3})\.[ \t]+([A-ZÁÉÍÓÚÑ][^\n]{4,100})$`),
				regexp.MustCompile(`(?i)Lecci[oó]n\s+n[uú]mero\s+(\d{1,3})`),
				regexp.MustCompile(`(?i)EJERCICIO\s+(\d{1,3})`),
				regexp.MustCompile(`(?im)^[ \t]*D[ií]a\s+(\d{1,3})\b[ \t]*([^\n]*)$`),
			},
		},
		Contextual: Family{
			Name:           "contextual",
			BaseConfidence: 0.5,
			ContextGated:   true,
			Expressions: []*regexp.Regexp{
				regexp.MustCompile(`(?m)^[ \t]*(\d{1,3})[ \t]*\n[ \t]*([A-ZÁÉÍÓÚÑ][^\n]*)`),
				regexp.MustCompile(`(?m)^[ \t]*(\d{1,3})[ \t]*\n[ \t]*["'«]`),
			},
		},
		TitlePatterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)Lección\s+\d{1,3}\s*[.:]?\s*\n\s*([^\n]+)`),
			regexp.MustCompile(`(?m)^\s*\d{1,3}\.\s+([^\n]+)$`),
		},
		markerWord: `Lecci[oó]n`,
	}
}

// ForChapters returns the library tuned for the 31 text chapters.
func ForChapters() *Library {
	return &Library{
		Primary: Family{
			Name:           "primary",
			BaseConfidence: 0.9,
			Expressions: []*regexp.Regexp{
				regexp.MustCompile(`(?im)^[ \t]*Cap[ií]tulo\s+(\d{1,2})\s*[.:]?[ \t]*([^\n]*)$`),
			},
		},
		Secondary: Family{
			Name:           "secondary",
			BaseConfidence: 0.7,
			Expressions: []*regexp.Regexp{
				regexp.MustCompile(`(?m)^[ \t]*(\d{1,2})\.[ \t]+([A-ZÁÉÍÓÚÑ][^\n]{4,100})$`),
			},
		},
		Contextual: Family{
			Name:           "contextual",
			BaseConfidence: 0.5,
			ContextGated:   true,
			Expressions: []*regexp.Regexp{
				regexp.MustCompile(`(?m)^[ \t]*(\d{1,2})[ \t]*\n[ \t]*([A-ZÁÉÍÓÚÑ][^\n]*)`),
			},
		},
		TitlePatterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)Capítulo\s+\d{1,2}\s*[.:]?\s*\n\s*([^\n]+)`),
		},
		markerWord: `Cap[ií]tulo`,
	}
}

// Families returns the static families in priority order.
func (l *Library) Families() []Family {
	return []Family{l.Primary, l.Secondary, l.Contextual}
}

// SequentialFamily builds the batched sequential family for the number range
// [start, end]. The alternation is bounded by the caller's batch size.
func (l *Library) SequentialFamily(start, end int) (Family, error) {
	if start < 1 || end < start {
		return Family{}, fmt.Errorf("invalid batch range %d-%d", start, end)
	}

	nums := make([]string, 0, end-start+1)
	for n := start; n <= end; n++ {
		nums = append(nums, fmt.Sprintf("%d", n))
	}

	expr, err := regexp.Compile(fmt.Sprintf(`(?m)^[ \t]*(%s)\s*[.:\-]?[ \t]*([^\n]{5,100})$`, strings.Join(nums, "|")))
	if err != nil {
		return Family{}, fmt.Errorf("failed to compile sequential pattern for %d-%d: %w", start, end, err)
	}

	return Family{
		Name:           "sequential",
		BaseConfidence: 0.6,
		ContextGated:   true,
		Expressions:    []*regexp.Regexp{expr},
	}, nil
}

// MarkerRe matches any unit marker for this library, used to bound content
// spans and to soften cut severity near boundaries.
func (l *Library) MarkerRe() *regexp.Regexp {
	return regexp.MustCompile(`(?i)` + l.markerWord + `\s+\d{1,3}`)
}

// SpecificStrategy is a targeted expression for one known unit number, used
// when the general pass missed it.
type SpecificStrategy struct {
	Name       string
	Confidence float64
	Expression *regexp.Regexp
}

// SpecificStrategies returns targeted expressions for unit number n, ordered
// strongest first. The bare-number form is last: it matches page numbers too,
// so its hits need the most downstream scrutiny.
func (l *Library) SpecificStrategies(n int) []SpecificStrategy {
	return []SpecificStrategy{
		{
			Name:       "marker",
			Confidence: 0.9,
			Expression: regexp.MustCompile(fmt.Sprintf(`(?im)^[ \t]*%s\s+%d\b\s*[.:]?[ \t]*([^\n]*)$`, l.markerWord, n)),
		},
		{
			Name:       "numbered_title",
			Confidence: 0.8,
			Expression: regexp.MustCompile(fmt.Sprintf(`(?m)^[ \t]*%d\.[ \t]+([A-ZÁÉÍÓÚÑ][^\n]{4,100})$`, n)),
		},
		{
			Name:       "bare_number",
			Confidence: 0.6,
			Expression: regexp.MustCompile(fmt.Sprintf(`(?m)^[ \t]*%d[ \t]*$`, n)),
		},
	}
}

// Section boundary markers of the source document. The workbook sits between
// the first start marker and the first end marker after it.
var (
	SectionStartRe = regexp.MustCompile(`(?i)LIBRO\s+DE\s+EJERCICIOS|SEGUNDA\s+PARTE`)
	SectionEndRe   = regexp.MustCompile(`(?i)MANUAL\s+PARA\s+EL\s+MAESTRO|Manual\s+del\s+Maestro|TERCERA\s+PARTE|CLARIFICACIÓN\s+DE\s+TÉRMINOS`)
)

// Content cleanup expressions.
var (
	PageNumberLineRe = regexp.MustCompile(`(?m)^\s*\d{1,4}\s*$`)
	BlankRunRe       = regexp.MustCompile(`\n\s*\n\s*\n+`)
	SpaceRunRe       = regexp.MustCompile(`[ \t]+`)
	ControlCharsRe   = regexp.MustCompile("[\x00-\x08\x0b\x0c\x0e-\x1f\x7f]")
)

// CorruptionRes are signatures of known character-encoding mangling, mostly
// UTF-8 decoded as Latin-1.
var CorruptionRes = []*regexp.Regexp{
	regexp.MustCompile(`[ÃÂ][¡-ÿ]`),
	regexp.MustCompile(`â€[™œž]`),
	regexp.MustCompile(`Ã¡|Ã©|Ã­|Ã³|Ãº|Ã±`),
	regexp.MustCompile(`[^\x00-\x7F` +
		`\x{00A1}\x{00BF}\x{00AB}\x{00BB}` + // ¡ ¿ « »
		`\x{00C0}-\x{017F}\x{2010}-\x{2027}\x{2030}-\x{205E}]`),
}

// ValidSpanishCharRe matches the accented and punctuation characters a
// legitimate Spanish text is expected to contain.
var ValidSpanishCharRe = regexp.MustCompile(`[áéíóúñüÁÉÍÓÚÑÜ¿¡«»“”‘’—–…]`)

// StrangeCharRe matches characters outside the normal prose repertoire; a
// cluster of them near a marker suggests noise rather than a real lesson.
var StrangeCharRe = regexp.MustCompile(`[^\p{L}\p{N}\s.,;:¡¿!?\-"'()«»“”‘’—–…]`)

// PageRangeRe matches numeric ranges like "12-34" that suggest a page
// reference rather than a unit marker.
var PageRangeRe = regexp.MustCompile(`\d+\s*[-.]\s*\d+`)

// Transition expressions marking a natural hand-off between sentences.
var NaturalTransitionRes = []*regexp.Regexp{
	regexp.MustCompile(`\.\s+[A-ZÁÉÍÓÚÑ]`),
	regexp.MustCompile(`:\s+[A-ZÁÉÍÓÚÑ]`),
	regexp.MustCompile(`\n\s*\n\s*[A-ZÁÉÍÓÚÑ]`),
	regexp.MustCompile(`;\s+[a-záéíóúñ]`),
}

// AbruptCutRes are signatures of truncated content.
var AbruptCutRes = []*regexp.Regexp{
	regexp.MustCompile(`(?m)\w+[ \t]*\n[ \t]*[A-Z][^.\n]`),
	regexp.MustCompile(`(?im)[,;][ \t]*\n[ \t]*Lecci[oó]n`),
	regexp.MustCompile(`(?m)\w+\s+\d+$`),
}

// DomainKeywords is the practice/reflection vocabulary of the source text.
// Presence near a numeric marker raises confidence that it is a real unit.
var DomainKeywords = []string{
	"perdón", "milagro", "espíritu", "dios", "cristo", "paz", "amor",
	"salvación", "felicidad", "expiación", "luz", "verdad", "ilusión",
	"miedo", "culpa", "santidad", "inocencia", "bendición", "gratitud",
}

// ContextIndicators mark exercise instructions around a genuine lesson
// marker (used to gate the low-confidence families).
var ContextIndicators = []string{
	"ejercicio", "práctica", "repite", "afirma", "medita", "reflexiona",
	"recuerda", "aplica", "hoy", "minuto", "idea", "pensamiento",
}

// HasDomainKeyword reports whether any domain keyword appears in s
// (case-insensitive).
func HasDomainKeyword(s string) bool {
	low := strings.ToLower(s)
	for _, kw := range DomainKeywords {
		if strings.Contains(low, kw) {
			return true
		}
	}
	return false
}

// HasContextIndicator reports whether any practice-vocabulary indicator
// appears in s (case-insensitive).
func HasContextIndicator(s string) bool {
	low := strings.ToLower(s)
	for _, ind := range ContextIndicators {
		if strings.Contains(low, ind) {
			return true
		}
	}
	return false
}

// EncodingFixes maps common mangled sequences to their likely originals.
var EncodingFixes = map[string]string{
	"Ã¡": "á", "Ã©": "é", "Ã­": "í", "Ã³": "ó", "Ãº": "ú",
	"Ã±": "ñ", "ÃÌ": "Í", "â€™": "'", "â€œ": "\"", "â€": "\"",
}

// SuggestEncodingFix returns the repaired form of a corrupted match, or an
// empty string when no known fix applies.
func SuggestEncodingFix(corrupted string) string {
	fixed := corrupted
	applied := false
	for bad, good := range EncodingFixes {
		if strings.Contains(fixed, bad) {
			fixed = strings.ReplaceAll(fixed, bad, good)
			applied = true
		}
	}
	if !applied {
		return ""
	}
	return fixed
}
