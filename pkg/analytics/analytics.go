package analytics

import (
	"sort"
	"strings"
)

type Analytics struct{}

// commonWords is a map of frequently occurring Spanish words that should be
// ignored in frequency analysis. This list can be extended as needed.
var commonWords = map[string]struct{}{
	"a": {}, "acá": {}, "ahí": {}, "al": {}, "algo": {}, "alguna": {},
	"algunas": {}, "alguno": {}, "algunos": {}, "allá": {}, "allí": {},
	"ante": {}, "antes": {}, "aquel": {}, "aquella": {}, "aquellas": {},
	"aquellos": {}, "aquí": {}, "así": {}, "aun": {}, "aún": {}, "aunque": {},

	"bajo": {}, "bien": {},

	"cada": {}, "casi": {}, "como": {}, "cómo": {}, "con": {}, "contra": {},
	"cual": {}, "cuál": {}, "cuales": {}, "cualquier": {}, "cuando": {},
	"cuándo": {}, "cuanto": {}, "cuyo": {}, "cuya": {},

	"de": {}, "del": {}, "demás": {}, "desde": {}, "donde": {}, "dónde": {},
	"dos": {}, "durante": {},

	"e": {}, "el": {}, "él": {}, "ella": {}, "ellas": {}, "ello": {},
	"ellos": {}, "en": {}, "entre": {}, "era": {}, "eran": {}, "eres": {},
	"es": {}, "esa": {}, "esas": {}, "ese": {}, "eso": {}, "esos": {},
	"esta": {}, "está": {}, "están": {}, "estas": {}, "este": {}, "esto": {},
	"estos": {}, "estoy": {},

	"fue": {}, "fueron": {},

	"ha": {}, "había": {}, "han": {}, "has": {}, "hasta": {}, "hay": {},

	"la": {}, "las": {}, "le": {}, "les": {}, "lo": {}, "los": {},

	"más": {}, "me": {}, "mi": {}, "mí": {}, "mis": {}, "mientras": {},
	"mismo": {}, "misma": {}, "mucho": {}, "muchos": {}, "muy": {},

	"nada": {}, "ni": {}, "no": {}, "nos": {}, "nosotros": {}, "nuestra": {},
	"nuestro": {}, "nunca": {},

	"o": {}, "os": {}, "otra": {}, "otras": {}, "otro": {}, "otros": {},

	"para": {}, "pero": {}, "poco": {}, "por": {}, "porque": {}, "pues": {},

	"que": {}, "qué": {}, "quien": {}, "quién": {}, "quienes": {},

	"se": {}, "sea": {}, "según": {}, "ser": {}, "si": {}, "sí": {},
	"sido": {}, "siempre": {}, "sin": {}, "sino": {}, "sobre": {},
	"solo": {}, "sólo": {}, "son": {}, "soy": {}, "su": {}, "sus": {},

	"tal": {}, "también": {}, "tan": {}, "tanto": {}, "te": {}, "ti": {},
	"tiene": {}, "tienen": {}, "toda": {}, "todas": {}, "todo": {},
	"todos": {}, "tu": {}, "tú": {}, "tus": {},

	"un": {}, "una": {}, "unas": {}, "uno": {}, "unos": {},

	"va": {}, "vez": {}, "y": {}, "ya": {}, "yo": {},
}

// IsStopword checks if a word is a common stopword that should be filtered out.
func IsStopword(word string) bool {
	_, exists := commonWords[strings.ToLower(word)]
	return exists
}

func (a *Analytics) WordFrequency(text string) map[string]int {
	words := strings.Fields(strings.ToLower(text)) // strings.Fields handles multiple spaces and newlines
	frequencies := make(map[string]int)

	for _, word := range words {
		// Remove punctuation from words, keeping accented letters
		word = strings.TrimFunc(word, func(r rune) bool {
			if 'a' <= r && r <= 'z' || '0' <= r && r <= '9' {
				return false
			}
			switch r {
			case 'á', 'é', 'í', 'ó', 'ú', 'ñ', 'ü':
				return false
			}
			return true
		})

		// Skip if it's a common word or empty after cleaning
		if _, exists := commonWords[word]; exists || word == "" {
			continue
		}

		frequencies[word]++
	}

	return frequencies
}

type wordCount struct {
	Word  string
	Count int
}

func (a *Analytics) TopNWords(text string, n int) []string {
	frequencies := a.WordFrequency(text)

	counts := make([]wordCount, 0, len(frequencies))
	for k, v := range frequencies {
		counts = append(counts, wordCount{k, v})
	}

	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].Word < counts[j].Word
	})

	limit := n
	if len(counts) < n {
		limit = len(counts)
	}

	topN := make([]string, limit)
	for i := 0; i < limit; i++ {
		topN[i] = counts[i].Word
	}

	return topN
}
