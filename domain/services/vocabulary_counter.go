package services

import (
	"strings"

	"writecoach-backend/domain/textmatch"
)

// VocabularyCounter counts how often each personal vocabulary entry is used
type VocabularyCounter interface {
	CountVocabularyUsage(text string, vocabulary []string) VocabularyUsageResult
}

// DefaultVocabularyCounter matches each entry literally, bounded by
// whitespace, clause punctuation or the ends of the text. Entries are
// counted independently; one entry containing another does not suppress it.
type DefaultVocabularyCounter struct{}

// NewVocabularyCounter creates a vocabulary counter
func NewVocabularyCounter() *DefaultVocabularyCounter {
	return &DefaultVocabularyCounter{}
}

// CountVocabularyUsage implements VocabularyCounter
func (DefaultVocabularyCounter) CountVocabularyUsage(text string, vocabulary []string) VocabularyUsageResult {
	result := VocabularyUsageResult{WordsFound: []WordUsage{}}
	if len(vocabulary) == 0 {
		return result
	}

	haystack := textmatch.Fold(textmatch.Normalize(text))
	for _, entry := range vocabulary {
		needle := textmatch.Fold(textmatch.Normalize(strings.TrimSpace(entry)))
		if len(needle) == 0 {
			continue
		}

		matches := textmatch.FindDelimited(haystack, needle, textmatch.VocabularyBoundary, textmatch.VocabularyBoundary)
		if len(matches) == 0 {
			continue
		}
		result.WordsFound = append(result.WordsFound, WordUsage{Word: entry, Count: len(matches)})
		result.VocabWordsUsed += len(matches)
	}
	return result
}
