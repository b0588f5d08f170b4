package textmatch

import "unicode"

// BoundaryFunc decides whether a rune may sit directly next to a match.
type BoundaryFunc func(r rune) bool

// IsClausePunct matches the clause punctuation . , ! ? ; :
func IsClausePunct(r rune) bool {
	switch r {
	case '.', ',', '!', '?', ';', ':':
		return true
	}
	return false
}

// VocabularyBoundary accepts whitespace and clause punctuation.
func VocabularyBoundary(r rune) bool {
	return unicode.IsSpace(r) || IsClausePunct(r)
}

// PhraseBoundary accepts whitespace and any punctuation that cannot be part
// of a word (apostrophes and hyphens are word-internal).
func PhraseBoundary(r rune) bool {
	if r == '\'' || r == '-' {
		return false
	}
	return unicode.IsSpace(r) || unicode.IsPunct(r)
}

// isASCIIWord matches the word class used by \b: [A-Za-z0-9_].
func isASCIIWord(r rune) bool {
	return r == '_' ||
		(r >= 'a' && r <= 'z') ||
		(r >= 'A' && r <= 'Z') ||
		(r >= '0' && r <= '9')
}

func hasPrefixAt(text, needle []rune, at int) bool {
	if at < 0 || at+len(needle) > len(text) {
		return false
	}
	for j, r := range needle {
		if text[at+j] != r {
			return false
		}
	}
	return true
}

// FindWholeWord returns the non-overlapping occurrences of word in text,
// scanning left to right, where both ends of the occurrence sit on an ASCII
// word boundary. Callers fold both arguments beforehand.
func FindWholeWord(text, word []rune) []Span {
	if len(word) == 0 {
		return nil
	}

	var spans []Span
	for i := 0; i+len(word) <= len(text); {
		if !hasPrefixAt(text, word, i) || !wordBoundary(text, i) || !wordBoundary(text, i+len(word)) {
			i++
			continue
		}
		spans = append(spans, Span{Start: i, End: i + len(word)})
		i += len(word)
	}
	return spans
}

// wordBoundary reports whether position pos separates a word rune from a
// non-word rune (text edges count as non-word).
func wordBoundary(text []rune, pos int) bool {
	before := pos > 0 && isASCIIWord(text[pos-1])
	after := pos < len(text) && isASCIIWord(text[pos])
	return before != after
}

// FindDelimited returns the non-overlapping occurrences of needle in text
// that start at the beginning of text or right after a rune accepted by
// before, and end at the end of text or right before a rune accepted by
// after. The leading delimiter belongs to the match it introduces, so it
// must lie at or past the end of the previous occurrence. Returned spans
// cover the needle only.
func FindDelimited(text, needle []rune, before, after BoundaryFunc) []Span {
	return findDelimited(text, needle,
		func(pos int) bool { return before(text[pos]) },
		func(pos int) bool { return after(text[pos]) },
	)
}

// FindPhrase is FindDelimited with PhraseBoundary on both sides, except that
// an apostrophe also delimits when it is not attached to a letter on its
// far side, so quoted phrases like 'ad hoc' are found.
func FindPhrase(text, needle []rune) []Span {
	letterAt := func(pos int) bool {
		return pos >= 0 && pos < len(text) && unicode.IsLetter(text[pos])
	}
	return findDelimited(text, needle,
		func(pos int) bool {
			if text[pos] == '\'' {
				return !letterAt(pos - 1)
			}
			return PhraseBoundary(text[pos])
		},
		func(pos int) bool {
			if text[pos] == '\'' {
				return !letterAt(pos + 1)
			}
			return PhraseBoundary(text[pos])
		},
	)
}

// findDelimited checks the delimiter rune at the given position of text
// with beforeAt and afterAt.
func findDelimited(text, needle []rune, beforeAt, afterAt func(pos int) bool) []Span {
	if len(needle) == 0 {
		return nil
	}

	var spans []Span
	consumed := 0
	for i := 0; i+len(needle) <= len(text); i++ {
		switch {
		case i == 0:
		case i-1 >= consumed && beforeAt(i-1):
		default:
			continue
		}
		end := i + len(needle)
		if !hasPrefixAt(text, needle, i) {
			continue
		}
		if end < len(text) && !afterAt(end) {
			continue
		}
		spans = append(spans, Span{Start: i, End: end})
		consumed = end
		i = end - 1
	}
	return spans
}
