package nlp

import "sort"

// stopwords excluded from keyword extraction. English-only on purpose:
// resumes are ingested in English.
var stopwords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "are": {}, "as": {}, "at": {}, "be": {},
	"by": {}, "for": {}, "from": {}, "has": {}, "have": {}, "i": {}, "in": {},
	"is": {}, "it": {}, "my": {}, "of": {}, "on": {}, "or": {}, "that": {},
	"the": {}, "to": {}, "was": {}, "were": {}, "with": {}, "this": {},
	"will": {}, "their": {}, "they": {}, "we": {}, "our": {}, "your": {},
}

// TopKeywords returns the most frequent non-stopword tokens of a raw text,
// most frequent first. Ties are broken alphabetically so the result is
// stable for identical input.
func TopKeywords(raw string, limit int) []string {
	if limit <= 0 {
		return []string{}
	}
	freq := map[string]int{}
	for _, tok := range TokensList(Normalize(raw)) {
		if len(tok) < 3 {
			continue
		}
		if _, skip := stopwords[tok]; skip {
			continue
		}
		freq[tok]++
	}
	keys := make([]string, 0, len(freq))
	for k := range freq {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if freq[keys[i]] != freq[keys[j]] {
			return freq[keys[i]] > freq[keys[j]]
		}
		return keys[i] < keys[j]
	})
	if len(keys) > limit {
		keys = keys[:limit]
	}
	return keys
}
