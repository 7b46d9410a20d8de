// ABOUTME: Tokenizer that splits transcripts into lower-cased word terms
// ABOUTME: Keeps runs of two or more word characters and drops stop words
package core

import (
	"strings"
	"unicode"
)

// minTokenRunes is the shortest token kept; single characters carry no signal
const minTokenRunes = 2

// Tokenize lower-cases text and returns its word tokens in order.
// A token is a maximal run of letters, numbers (any Unicode number category)
// or underscores at least two runes long. Combining marks end a token.
// Stop words are removed.
func Tokenize(text string) []string {
	lowered := strings.ToLower(text)
	tokens := make([]string, 0, len(lowered)/6)

	start, runes := -1, 0
	flush := func(end int) {
		if start >= 0 && runes >= minTokenRunes {
			term := lowered[start:end]
			if !IsStopWord(term) {
				tokens = append(tokens, term)
			}
		}
		start, runes = -1, 0
	}

	for i, r := range lowered {
		if isWordRune(r) {
			if start < 0 {
				start = i
			}
			runes++
			continue
		}
		flush(i)
	}
	flush(len(lowered))

	return tokens
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}
