package services

// SpellingError is one misspelled token with its ranked corrections.
type SpellingError struct {
	Word        string   `json:"word"`
	Suggestions []string `json:"suggestions"`
}

// SpellCheckResult aggregates the misspellings found in a text, in the order
// their tokens appear.
type SpellCheckResult struct {
	ErrorCount      int             `json:"errorCount"`
	Errors          []SpellingError `json:"errors"`
	MisspelledWords []string        `json:"misspelledWords"`
}

// ConnectorCountResult holds the connector totals of a text.
type ConnectorCountResult struct {
	BasicCount    int `json:"basicCount"`
	AdvancedCount int `json:"advancedCount"`
}

// Total returns basic plus advanced connectors.
func (r ConnectorCountResult) Total() int {
	return r.BasicCount + r.AdvancedCount
}

// WordUsage is the number of times one vocabulary entry was used.
type WordUsage struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// VocabularyUsageResult reports how often the user's vocabulary appears.
type VocabularyUsageResult struct {
	VocabWordsUsed int         `json:"vocabWordsUsed"`
	WordsFound     []WordUsage `json:"wordsFound"`
}

// StreakResult holds consecutive-day activity streaks.
type StreakResult struct {
	CurrentStreak int `json:"currentStreak"`
	LongestStreak int `json:"longestStreak"`
}
