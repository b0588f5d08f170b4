package entities

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"writecoach-backend/domain/core/valueobjects"
	"writecoach-backend/domain/services"
	pkgerrors "writecoach-backend/pkg/errors"
)

func TestNewTextAnalysis(t *testing.T) {
	content, err := valueobjects.NewTextContent("Day one", "I wrote tehse words and so on")
	require.NoError(t, err)

	at := time.Date(2026, time.May, 2, 9, 0, 0, 0, time.FixedZone("CEST", 2*60*60))
	spelling := services.SpellCheckResult{
		ErrorCount:      1,
		Errors:          []services.SpellingError{{Word: "tehse", Suggestions: []string{"these"}}},
		MisspelledWords: []string{"tehse"},
	}
	vocabulary := services.VocabularyUsageResult{
		VocabWordsUsed: 2,
		WordsFound:     []services.WordUsage{{Word: "wrote", Count: 2}},
	}

	analysis, err := NewTextAnalysis(uuid.Nil, "user-1", "", content, spelling,
		services.ConnectorCountResult{BasicCount: 2, AdvancedCount: 0}, vocabulary, at)
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, analysis.ID)
	assert.Equal(t, analysis.ID.String(), analysis.TextID)
	assert.Equal(t, "Day one", analysis.Title)
	assert.Equal(t, time.UTC, analysis.AnalyzedAt.Location())
	assert.Nil(t, analysis.Feedback)

	assert.Equal(t, Counters{
		WordCount:               7,
		SpellingErrors:          1,
		BasicConnectorsCount:    2,
		AdvancedConnectorsCount: 0,
		VocabWordsUsed:          2,
	}, analysis.Counters())

	analysis.AttachFeedback(services.Feedback{Type: services.FeedbackNone})
	require.NotNil(t, analysis.Feedback)
	assert.Equal(t, services.FeedbackNone, analysis.Feedback.Type)
}

func TestNewTextAnalysisRequiresUser(t *testing.T) {
	_, err := NewTextAnalysis(uuid.New(), "", "t1", valueobjects.TextContent{},
		services.SpellCheckResult{}, services.ConnectorCountResult{}, services.VocabularyUsageResult{}, time.Now())
	assert.True(t, pkgerrors.IsValidation(err))
}
