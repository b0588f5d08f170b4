package queries

import pkgerrors "writecoach-backend/pkg/errors"

// ListVocabularyQuery lists a user's vocabulary with usage totals
type ListVocabularyQuery struct {
	UserID string
}

// Validate validates the ListVocabularyQuery
func (q ListVocabularyQuery) Validate() error {
	if q.UserID == "" {
		return pkgerrors.NewValidationError("user ID is required")
	}
	return nil
}

// VocabularyEntry is one word of a user's vocabulary
type VocabularyEntry struct {
	Word      string `json:"word"`
	TimesUsed int    `json:"timesUsed"`
}

// ListVocabularyResult holds entries in the order they were added
type ListVocabularyResult struct {
	UserID  string            `json:"userId"`
	Entries []VocabularyEntry `json:"entries"`
}
