package handlers

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"writecoach-backend/application/ports"
	"writecoach-backend/application/queries"
	"writecoach-backend/application/queries/bus"
	"writecoach-backend/domain/core/entities"
	"writecoach-backend/domain/core/valueobjects"
	"writecoach-backend/domain/services"
	"writecoach-backend/infrastructure/persistence/memory"
	pkgerrors "writecoach-backend/pkg/errors"
)

var today = time.Date(2024, 3, 10, 20, 0, 0, 0, time.UTC)

func day(offset int) time.Time {
	return today.AddDate(0, 0, offset).Add(-8 * time.Hour)
}

func TestGetStreaks(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewActivityRepository()
	for _, ts := range []time.Time{day(0), day(0).Add(time.Hour), day(-1), day(-5), day(-6), day(-7)} {
		require.NoError(t, repo.RecordActivity(ctx, "u1", ts))
	}

	h := NewGetStreaksHandler(repo, services.NewStreakCalculator(), ports.FixedClock(today), zap.NewNop())

	tests := []struct {
		name    string
		query   queries.GetStreaksQuery
		current int
		longest int
		days    int
	}{
		{"stored activity", queries.GetStreaksQuery{UserID: "u1"}, 2, 3, 5},
		{"evaluated three days later", queries.GetStreaksQuery{UserID: "u1", At: today.AddDate(0, 0, 3)}, 0, 3, 5},
		{"explicit timestamps", queries.GetStreaksQuery{Timestamps: []time.Time{day(0), day(-1), day(-2)}}, 3, 3, 3},
		{"no activity", queries.GetStreaksQuery{UserID: "nobody"}, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := h.Streaks(ctx, tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.current, result.CurrentStreak)
			assert.Equal(t, tt.longest, result.LongestStreak)
			assert.Equal(t, tt.days, result.ActiveDays)
		})
	}

	_, err := h.Streaks(ctx, queries.GetStreaksQuery{})
	assert.True(t, pkgerrors.IsValidation(err))
}

func TestGetAnalysisThroughQueryBus(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewAnalysisRepository()

	content, err := valueobjects.NewTextContent("", "as a result")
	require.NoError(t, err)

	var ids []uuid.UUID
	for i := 0; i < 3; i++ {
		a, err := entities.NewTextAnalysis(uuid.New(), "u1", "", content,
			services.SpellCheckResult{}, services.ConnectorCountResult{AdvancedCount: 1}, services.VocabularyUsageResult{},
			today.Add(time.Duration(i)*time.Minute))
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, a))
		ids = append(ids, a.ID)
	}

	h := NewGetAnalysisHandler(repo, zap.NewNop())
	b := bus.NewQueryBus(bus.LoggingMiddleware(zap.NewNop()))
	require.NoError(t, b.Register(queries.GetAnalysisQuery{}, h))
	require.NoError(t, b.Register(queries.ListAnalysesQuery{}, h))

	got, err := bus.AskAs[*entities.TextAnalysis](ctx, b, queries.GetAnalysisQuery{AnalysisID: ids[1].String()})
	require.NoError(t, err)
	assert.Equal(t, ids[1], got.ID)

	list, err := bus.AskAs[[]*entities.TextAnalysis](ctx, b, queries.ListAnalysesQuery{UserID: "u1", Limit: 2})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, ids[2], list[0].ID)
	assert.Equal(t, ids[1], list[1].ID)

	_, err = b.Ask(ctx, queries.GetAnalysisQuery{AnalysisID: uuid.NewString()})
	assert.True(t, pkgerrors.IsNotFound(err))

	_, err = b.Ask(ctx, queries.GetAnalysisQuery{AnalysisID: "nope"})
	assert.True(t, pkgerrors.IsValidation(err))
}

func TestListVocabulary(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewVocabularyRepository()
	require.NoError(t, repo.AddWords(ctx, "u1", "ubiquitous", "ad hoc"))
	require.NoError(t, repo.RecordUsage(ctx, "u1", []services.WordUsage{{Word: "ad hoc", Count: 4}}))

	h := NewListVocabularyHandler(repo, zap.NewNop())
	result, err := h.Vocabulary(ctx, queries.ListVocabularyQuery{UserID: "u1"})
	require.NoError(t, err)
	assert.Equal(t, []queries.VocabularyEntry{
		{Word: "ubiquitous", TimesUsed: 0},
		{Word: "ad hoc", TimesUsed: 4},
	}, result.Entries)
}
