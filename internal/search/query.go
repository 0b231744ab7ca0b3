// Package search turns user search input into full-text query operands and SQL filter clauses.
package search

import (
	"strings"
)

// MaxQueryLength is the longest sanitized query, in characters.
const MaxQueryLength = 200

// specialChars are the tsquery operators and quoting characters removed from user input.
var specialChars = strings.NewReplacer(
	"!", "",
	"&", "",
	"|", "",
	"(", "",
	")", "",
	":", "",
	"*", "",
	"'", "",
	`"`, "",
	"<", "",
	">", "",
	`\`, "",
)

// SanitizeSearchQuery removes full-text operators from query, collapses whitespace and caps the
// result at MaxQueryLength characters.
func SanitizeSearchQuery(query string) string {
	cleaned := strings.Join(strings.Fields(specialChars.Replace(query)), " ")

	runes := []rune(cleaned)
	if len(runes) > MaxQueryLength {
		cleaned = strings.TrimSpace(string(runes[:MaxQueryLength]))
	}
	return cleaned
}

// BuildTsQueryString builds a prefix tsquery operand: every word is required and the last one
// matches as a prefix, so "chicken pas" finds "chicken pasta".
func BuildTsQueryString(query string) string {
	words := strings.Fields(SanitizeSearchQuery(query))
	if len(words) == 0 {
		return ""
	}

	last := len(words) - 1
	words[last] = words[last] + ":*"
	return strings.Join(words, " & ")
}
