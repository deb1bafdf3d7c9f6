package aggregator

import (
	"sort"
	"strings"

	"coupon-analytics-go/internal/types"
)

// DefaultTopWords is the size of each word-frequency table.
const DefaultTopWords = 40

// Tokenize splits text on whitespace. Case and punctuation are kept.
func Tokenize(text string) []string {
	return strings.Fields(text)
}

// TopWords joins texts with single spaces, tokenizes the result and returns
// the limit most frequent tokens. Equal counts keep first-appearance order.
// A non-positive limit keeps every token.
func TopWords(texts []string, limit int) types.WordFrequencies {
	index := make(map[string]int)
	freq := make(types.WordFrequencies, 0)
	for _, tok := range Tokenize(strings.Join(texts, " ")) {
		if i, ok := index[tok]; ok {
			freq[i].Count++
			continue
		}
		index[tok] = len(freq)
		freq = append(freq, types.WordCount{Word: tok, Count: 1})
	}
	sort.SliceStable(freq, func(i, j int) bool { return freq[i].Count > freq[j].Count })
	if limit > 0 && len(freq) > limit {
		freq = freq[:limit]
	}
	return freq
}
