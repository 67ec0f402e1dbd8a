// ABOUTME: Keyword extraction and query tokenization
// ABOUTME: Lowercases, splits on non-alphanumeric and camelCase boundaries, drops stop words
package capability

import (
	"sort"
	"strings"
	"unicode"
)

// stopWords are common tokens that carry no matching signal
var stopWords = map[string]bool{
	"the": true, "and": true, "for": true, "with": true, "that": true,
	"this": true, "from": true, "into": true, "your": true, "can": true,
	"use": true, "using": true, "when": true, "are": true, "you": true,
	"all": true, "any": true, "has": true, "have": true, "will": true,
	"was": true, "its": true, "also": true, "more": true, "some": true,
	"not": true, "but": true, "out": true, "via": true, "per": true,
	"get": true, "set": true, "how": true, "what": true, "which": true,
	"should": true, "would": true, "could": true, "about": true,
	"them": true, "then": true, "than": true, "there": true, "here": true,
	"please": true, "want": true, "need": true, "like": true,
}

// minTokenLen drops trivially short tokens ("a", "to", "of", "in", ...)
const minTokenLen = 3

// ExtractKeywords derives the normalized keyword set for a capability
// from its descriptive texts plus any explicitly declared keywords.
// Declared keywords are lowercased but kept even when they would fail
// the stop-word or length filters.
func ExtractKeywords(declared []string, texts ...string) []string {
	seen := make(map[string]bool)
	var keywords []string

	add := func(kw string) {
		if kw == "" || seen[kw] {
			return
		}
		seen[kw] = true
		keywords = append(keywords, kw)
	}

	for _, d := range declared {
		add(strings.ToLower(strings.TrimSpace(d)))
	}
	for _, text := range texts {
		for _, tok := range Tokenize(text) {
			add(tok)
		}
	}

	sort.Strings(keywords)
	return keywords
}

// Tokenize splits free text into normalized matchable tokens: lowercase,
// split on non-alphanumeric boundaries and camelCase transitions, stop
// words and tokens shorter than three characters removed, duplicates kept
// (callers that need a set deduplicate themselves).
func Tokenize(text string) []string {
	var tokens []string
	for _, raw := range splitWords(text) {
		tok := strings.ToLower(raw)
		if len(tok) < minTokenLen || stopWords[tok] {
			continue
		}
		tokens = append(tokens, tok)
	}
	return tokens
}

// splitWords breaks text on non-alphanumeric runes and on lower-to-upper
// camelCase transitions ("deployAWS" -> "deploy", "AWS").
func splitWords(text string) []string {
	var words []string
	var current []rune

	flush := func() {
		if len(current) > 0 {
			words = append(words, string(current))
			current = nil
		}
	}

	var prev rune
	for _, r := range text {
		switch {
		case !unicode.IsLetter(r) && !unicode.IsDigit(r):
			flush()
		case unicode.IsUpper(r) && unicode.IsLower(prev):
			flush()
			current = append(current, r)
		default:
			current = append(current, r)
		}
		prev = r
	}
	flush()
	return words
}
