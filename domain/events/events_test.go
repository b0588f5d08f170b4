package events

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"writecoach-backend/domain/core/entities"
	"writecoach-backend/domain/core/valueobjects"
	"writecoach-backend/domain/services"
)

func TestNewTextAnalyzed(t *testing.T) {
	at := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	content, err := valueobjects.NewTextContent("", "as a result it was fine")
	require.NoError(t, err)

	analysis, err := entities.NewTextAnalysis(uuid.New(), "u1", "t1", content,
		services.SpellCheckResult{}, services.ConnectorCountResult{AdvancedCount: 1},
		services.VocabularyUsageResult{}, at)
	require.NoError(t, err)

	event := NewTextAnalyzed(analysis, true)

	var _ DomainEvent = event
	assert.Equal(t, analysis.ID.String(), event.GetAggregateID())
	assert.Equal(t, TypeTextAnalyzed, event.GetEventType())
	assert.Equal(t, at, event.GetTimestamp())
	assert.Equal(t, 1, event.GetVersion())
	assert.Equal(t, "u1", event.UserID)
	assert.Equal(t, "t1", event.TextID)
	assert.True(t, event.Reanalysis)
	assert.Equal(t, 1, event.Counters.AdvancedConnectorsCount)
	assert.Equal(t, 6, event.Counters.WordCount)
}
