package dictionary

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

type casing int

const (
	caseLower casing = iota
	caseTitle
	caseUpper
	caseMixed
)

func detectCasing(word string) casing {
	upper, lower := 0, 0
	firstUpper := false
	for i, r := range word {
		switch {
		case unicode.IsUpper(r):
			upper++
			if i == 0 {
				firstUpper = true
			}
		case unicode.IsLower(r):
			lower++
		}
	}

	switch {
	case upper == 0:
		return caseLower
	case lower == 0:
		return caseUpper
	case firstUpper && upper == 1:
		return caseTitle
	default:
		return caseMixed
	}
}

// toTitle upper-cases the first rune and lower-cases the rest.
func toTitle(word string) string {
	r, size := utf8.DecodeRuneInString(word)
	if r == utf8.RuneError {
		return word
	}
	return string(unicode.ToUpper(r)) + strings.ToLower(word[size:])
}

// recase shapes a suggestion after the misspelled word's casing. Mixed-case
// and proper-noun suggestions keep their dictionary form.
func recase(suggestion string, c casing) string {
	switch c {
	case caseUpper:
		return strings.ToUpper(suggestion)
	case caseTitle:
		r, size := utf8.DecodeRuneInString(suggestion)
		if r == utf8.RuneError {
			return suggestion
		}
		return string(unicode.ToUpper(r)) + suggestion[size:]
	default:
		return suggestion
	}
}
