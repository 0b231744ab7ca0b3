package search

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeSearchQuery(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "chicken pasta", "chicken pasta"},
		{"operators", "chicken & (pasta | rice)!", "chicken pasta rice"},
		{"quotes and prefix", `"mac" 'n' cheese:*`, "mac n cheese"},
		{"whitespace", "  spicy \t\n  tofu  ", "spicy tofu"},
		{"injection", "'; DROP TABLE Recipe; --", "; DROP TABLE Recipe; --"},
		{"only specials", "!&|():*'\"", ""},
		{"followed-by operator", "fish<chips", "fishchips"},
		{"phrase distance", "fish <-> chips", "fish - chips"},
		{"trailing backslash", `salt\`, "salt"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeSearchQuery(tt.in))
		})
	}
}

func TestSanitizeSearchQuery_Truncates(t *testing.T) {
	long := strings.Repeat("a", 150) + " " + strings.Repeat("b", 150)

	got := SanitizeSearchQuery(long)

	assert.Len(t, []rune(got), MaxQueryLength)
	assert.True(t, strings.HasPrefix(got, strings.Repeat("a", 150)+" b"))
}

func TestSanitizeSearchQuery_TruncatesAfterCleaning(t *testing.T) {
	in := strings.Repeat("*", 300) + "soup"
	assert.Equal(t, "soup", SanitizeSearchQuery(in))
}

func TestSanitizeSearchQuery_TruncatesRunes(t *testing.T) {
	got := SanitizeSearchQuery(strings.Repeat("é", 250))
	assert.Equal(t, strings.Repeat("é", MaxQueryLength), got)
}

func TestBuildTsQueryString(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"single word", "pasta", "pasta:*"},
		{"two words", "chicken pas", "chicken & pas:*"},
		{"three words", "  quick  chicken curry ", "quick & chicken & curry:*"},
		{"operators stripped", "chicken & !rice", "chicken & rice:*"},
		{"empty", "", ""},
		{"only specials", "&&&|||", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BuildTsQueryString(tt.in))
		})
	}
}

func TestBuildTsQueryString_NoUnescapedSpecials(t *testing.T) {
	inputs := []string{
		"a!b&c|d(e)f:g*h'i\"j",
		"'; DROP TABLE Recipe; --",
		"(((",
		"salt & pepper",
	}

	for _, in := range inputs {
		got := BuildTsQueryString(in)
		body := strings.ReplaceAll(strings.ReplaceAll(got, " & ", " "), ":*", "")
		assert.False(t, strings.ContainsAny(body, "!&|():*'\""), "%q -> %q", in, got)
	}
}
