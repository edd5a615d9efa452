package index

import (
	"strings"
	"unicode"
)

// Tokenize lowercases, splits on non-alphanumeric boundaries, and strips
// stop words. No stemming: the corpus vocabulary is short controlled terms
// ("glassmorphism", "fintech") where stemming would only blur matches.
func Tokenize(text string) []string {
	raw := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	if len(raw) == 0 {
		return nil
	}
	out := raw[:0]
	for _, t := range raw {
		if _, stop := stopwords[t]; stop {
			continue
		}
		out = append(out, t)
	}
	return out
}

// CountTokens returns the token count of text before stop-word removal.
// Used for brief length validation, where stop words still count as input.
func CountTokens(text string) int {
	return len(strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}))
}

var stopwords = buildStopwords()

func buildStopwords() map[string]struct{} {
	words := []string{
		"a", "an", "the", "and", "or", "but", "if", "then", "for", "to",
		"of", "in", "on", "at", "by", "with", "as", "is", "are", "was",
		"were", "be", "been", "it", "this", "that", "these", "those",
		"from", "into", "about", "over", "under", "very", "can", "will",
		"just", "should", "my", "our", "your", "their", "we", "i", "you",
	}
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}
