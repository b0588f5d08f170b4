package services

import (
	"strings"
	"unicode"

	mapset "github.com/deckarep/golang-set/v2"

	"writecoach-backend/domain/dictionary"
	"writecoach-backend/domain/textmatch"
)

// SpellChecker flags misspelled words that are not part of the user's
// vocabulary
type SpellChecker interface {
	CheckSpelling(text string, vocabulary []string) (SpellCheckResult, error)
}

// DictionarySpellChecker checks tokens against a shared lexicon. The lexicon
// is obtained from its source on every call; the source loads it once.
type DictionarySpellChecker struct {
	source         dictionary.Source
	maxSuggestions int
}

// NewSpellChecker creates a spell checker that records at most
// maxSuggestions corrections per misspelling
func NewSpellChecker(source dictionary.Source, maxSuggestions int) *DictionarySpellChecker {
	if maxSuggestions < 0 {
		maxSuggestions = 0
	}
	return &DictionarySpellChecker{
		source:         source,
		maxSuggestions: maxSuggestions,
	}
}

// CheckSpelling implements SpellChecker. The only error is an unavailable
// dictionary.
func (s *DictionarySpellChecker) CheckSpelling(text string, vocabulary []string) (SpellCheckResult, error) {
	lexicon, err := s.source.Lexicon()
	if err != nil {
		return SpellCheckResult{}, err
	}

	result := SpellCheckResult{
		Errors:          []SpellingError{},
		MisspelledWords: []string{},
	}

	known := mapset.NewThreadUnsafeSet[string]()
	var phrases [][]rune
	for _, entry := range vocabulary {
		entry = textmatch.Normalize(strings.TrimSpace(entry))
		if entry == "" {
			continue
		}
		folded := textmatch.Fold(entry)
		known.Add(string(folded))
		if needsBlanking(entry) {
			phrases = append(phrases, folded)
		}
	}

	for _, token := range tokenize(textmatch.Normalize(text), phrases) {
		if known.Contains(textmatch.FoldString(token)) || isNumeric(token) {
			continue
		}
		if lexicon.Check(token) {
			continue
		}

		suggestions := lexicon.Suggest(token, s.maxSuggestions)
		if suggestions == nil {
			suggestions = []string{}
		}
		result.Errors = append(result.Errors, SpellingError{Word: token, Suggestions: suggestions})
		result.MisspelledWords = append(result.MisspelledWords, token)
	}
	result.ErrorCount = len(result.Errors)
	return result, nil
}

// tokenize blanks out vocabulary phrases, drops everything that cannot be
// part of a word and returns the remaining single-word tokens in order.
// Hyphenated tokens are skipped.
func tokenize(text string, phrases [][]rune) []string {
	runes := []rune(text)
	folded := textmatch.Fold(text)
	for _, phrase := range phrases {
		for _, span := range textmatch.FindPhrase(folded, phrase) {
			for i := span.Start; i < span.End; i++ {
				runes[i] = ' '
				folded[i] = ' '
			}
		}
	}

	for i, r := range runes {
		if !isWordRune(r) && !unicode.IsSpace(r) {
			runes[i] = ' '
		}
	}

	var tokens []string
	for _, field := range strings.Fields(string(runes)) {
		if strings.ContainsRune(field, '-') || !strings.ContainsFunc(field, isLetter) {
			continue
		}
		tokens = append(tokens, field)
	}
	return tokens
}

// needsBlanking reports whether the tokenizer would not keep entry as one
// token: it spans several words, is hyphenated or holds digits or symbols.
func needsBlanking(entry string) bool {
	return strings.ContainsFunc(entry, func(r rune) bool {
		return r == '-' || !isWordRune(r)
	})
}

// isLetter accepts ASCII letters plus the Latin-1 Supplement and Latin
// Extended-A letters.
func isLetter(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		return true
	case r == '×' || r == '÷':
		return false
	case r >= 0x00C0 && r <= 0x00FF:
		return true
	case r >= 0x0100 && r <= 0x017F:
		return true
	}
	return false
}

func isWordRune(r rune) bool {
	return isLetter(r) || r == '\'' || r == '-'
}

func isNumeric(token string) bool {
	if token == "" {
		return false
	}
	for _, r := range token {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
