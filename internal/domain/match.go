package domain

import (
	"strings"

	"github.com/sahilm/fuzzy"
)

// Matcher decides whether a candidate label matches a filter query.
// Matchers must be total: every label is either in or out, never
// ambiguous. An empty query matches everything.
type Matcher func(query, label string) bool

// SubstringMatcher is the default: case-insensitive substring.
func SubstringMatcher(query, label string) bool {
	if query == "" {
		return true
	}
	return strings.Contains(strings.ToLower(label), strings.ToLower(query))
}

// PrefixMatcher matches labels that start with the query, case-insensitive.
func PrefixMatcher(query, label string) bool {
	if query == "" {
		return true
	}
	return strings.HasPrefix(strings.ToLower(label), strings.ToLower(query))
}

// FuzzyMatcher matches labels containing the query's characters in order.
func FuzzyMatcher(query, label string) bool {
	if query == "" {
		return true
	}
	matches := fuzzy.Find(strings.ToLower(query), []string{strings.ToLower(label)})
	return len(matches) > 0
}

// ExactFold reports a whole-label match ignoring case. Used by the
// creation policy to block creating an option that already exists.
func ExactFold(query, label string) bool {
	return strings.EqualFold(strings.TrimSpace(query), label)
}
