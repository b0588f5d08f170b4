// Package textmatch holds the literal, offset-preserving matchers shared by
// the text analysis services. User-supplied strings are never compiled into
// patterns; every match is a rune-by-rune comparison with explicit boundary
// checks.
package textmatch

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var apostropheReplacer = strings.NewReplacer(
	"’", "'", // right single quotation mark
	"‘", "'", // left single quotation mark
	"ʼ", "'", // modifier letter apostrophe
	"′", "'", // prime
	"＇", "'", // fullwidth apostrophe
)

// NormalizeApostrophes rewrites typographic apostrophes to ASCII.
func NormalizeApostrophes(s string) string {
	return apostropheReplacer.Replace(s)
}

// Normalize applies NFC composition and apostrophe normalization.
func Normalize(s string) string {
	return NormalizeApostrophes(norm.NFC.String(s))
}

// Fold lower-cases s one rune at a time. The result has exactly one rune per
// input rune so rune offsets in the folded text address the original.
func Fold(s string) []rune {
	runes := []rune(s)
	for i, r := range runes {
		runes[i] = unicode.ToLower(r)
	}
	return runes
}

// FoldString is Fold returned as a string.
func FoldString(s string) string {
	return string(Fold(s))
}
