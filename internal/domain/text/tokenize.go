// Package text holds the normalization shared by indexing and query expansion.
// Both sides must tokenize identically or postings never line up with queries.
package text

import (
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Tokenize lowercases s, strips punctuation, collapses whitespace and splits on
// word boundaries. Token order and duplicates are preserved.
func Tokenize(s string) []string {
	if s == "" {
		return nil
	}
	s = strings.ToLower(norm.NFKC.String(s))

	var tokens []string
	var current strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.Is(unicode.Mn, r) || unicode.Is(unicode.Mc, r) {
			current.WriteRune(r)
			continue
		}
		if current.Len() > 0 {
			tokens = append(tokens, current.String())
			current.Reset()
		}
	}
	if current.Len() > 0 {
		tokens = append(tokens, current.String())
	}
	return tokens
}

// Normalize returns the tokens of s joined by single spaces.
func Normalize(s string) string {
	return strings.Join(Tokenize(s), " ")
}

// Unique drops repeated tokens, keeping first-encounter order.
func Unique(tokens []string) []string {
	if len(tokens) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(tokens))
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

// Set returns the sorted distinct tokens.
func Set(tokens []string) []string {
	out := Unique(tokens)
	sort.Strings(out)
	return out
}

// CollapseSpace trims s and folds every whitespace run into one space.
func CollapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
