package mapreduce

import (
	"fmt"
	"sort"
	"strings"
	"unicode"
)

// isValidKeyword filters tokens that survive cleaning but are not real
// words: digit runs (page numbers), single letters, and tokens that still
// carry punctuation from a bad line break.
func isValidKeyword(word string) bool {
	if len([]rune(word)) < 2 {
		return false
	}

	hasLetter := false
	for _, r := range word {
		if unicode.IsLetter(r) {
			hasLetter = true
			continue
		}
		if unicode.IsDigit(r) || strings.ContainsRune(`"'(){}[]«»`, r) {
			return false
		}
	}
	return hasLetter
}

// TopKeywords returns the top N keywords from aggregated word counts as
// formatted strings. Each string is formatted as "word:count" (e.g.,
// "perdón:153"). Ties break alphabetically so output is stable across runs.
func TopKeywords(wordCounts map[string]int, n int) []string {
	type kv struct {
		Key   string
		Value int
	}

	var ss []kv
	for k, v := range wordCounts {
		if isValidKeyword(k) {
			ss = append(ss, kv{k, v})
		}
	}

	sort.Slice(ss, func(i, j int) bool {
		if ss[i].Value != ss[j].Value {
			return ss[i].Value > ss[j].Value
		}
		return ss[i].Key < ss[j].Key
	})

	limit := n
	if len(ss) < n {
		limit = len(ss)
	}
	if limit < 0 {
		limit = 0
	}

	keywords := make([]string, limit)
	for i := 0; i < limit; i++ {
		keywords[i] = fmt.Sprintf("%s:%d", ss[i].Key, ss[i].Value)
	}

	return keywords
}
