package entities

import (
	"time"

	"github.com/google/uuid"

	"writecoach-backend/domain/core/valueobjects"
	"writecoach-backend/domain/services"
	pkgerrors "writecoach-backend/pkg/errors"
)

// TextAnalysis is the stored outcome of analysing one text entry
type TextAnalysis struct {
	ID         uuid.UUID                      `json:"id"`
	UserID     string                         `json:"userId"`
	TextID     string                         `json:"textId"`
	Title      string                         `json:"title"`
	WordCount  int                            `json:"wordCount"`
	Spelling   services.SpellCheckResult      `json:"spelling"`
	Connectors services.ConnectorCountResult  `json:"connectors"`
	Vocabulary services.VocabularyUsageResult `json:"vocabulary"`
	Feedback   *services.Feedback             `json:"feedback,omitempty"`
	AnalyzedAt time.Time                      `json:"analyzedAt"`
}

// Counters are the per-text totals kept alongside the text itself
type Counters struct {
	WordCount               int `json:"word_count"`
	SpellingErrors          int `json:"spelling_errors"`
	BasicConnectorsCount    int `json:"basic_connectors_count"`
	AdvancedConnectorsCount int `json:"advanced_connectors_count"`
	VocabWordsUsed          int `json:"vocab_words_used"`
}

// NewTextAnalysis assembles an analysis for a user's text
func NewTextAnalysis(
	id uuid.UUID,
	userID, textID string,
	content valueobjects.TextContent,
	spelling services.SpellCheckResult,
	connectors services.ConnectorCountResult,
	vocabulary services.VocabularyUsageResult,
	analyzedAt time.Time,
) (*TextAnalysis, error) {
	if userID == "" {
		return nil, pkgerrors.NewValidationError("userID cannot be empty")
	}
	if id == uuid.Nil {
		id = uuid.New()
	}
	if textID == "" {
		textID = id.String()
	}

	return &TextAnalysis{
		ID:         id,
		UserID:     userID,
		TextID:     textID,
		Title:      content.Title(),
		WordCount:  content.WordCount(),
		Spelling:   spelling,
		Connectors: connectors,
		Vocabulary: vocabulary,
		AnalyzedAt: analyzedAt.UTC(),
	}, nil
}

// AttachFeedback records the writing tip produced for this analysis
func (a *TextAnalysis) AttachFeedback(feedback services.Feedback) {
	a.Feedback = &feedback
}

// Counters returns the persisted totals
func (a *TextAnalysis) Counters() Counters {
	return Counters{
		WordCount:               a.WordCount,
		SpellingErrors:          a.Spelling.ErrorCount,
		BasicConnectorsCount:    a.Connectors.BasicCount,
		AdvancedConnectorsCount: a.Connectors.AdvancedCount,
		VocabWordsUsed:          a.Vocabulary.VocabWordsUsed,
	}
}
