package memory

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"writecoach-backend/domain/core/entities"
	"writecoach-backend/domain/core/valueobjects"
	"writecoach-backend/domain/services"
	pkgerrors "writecoach-backend/pkg/errors"
)

func TestVocabularyRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewVocabularyRepository()

	require.NoError(t, repo.AddWords(ctx, "u1", "ubiquitous", "ad hoc", "ubiquitous"))
	require.NoError(t, repo.AddWords(ctx, "u1", "serendipity"))

	words, err := repo.ListWords(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []string{"ubiquitous", "ad hoc", "serendipity"}, words)

	other, err := repo.ListWords(ctx, "u2")
	require.NoError(t, err)
	assert.Empty(t, other)

	require.NoError(t, repo.RecordUsage(ctx, "u1", []services.WordUsage{{Word: "ubiquitous", Count: 2}}))
	require.NoError(t, repo.RecordUsage(ctx, "u1", []services.WordUsage{{Word: "ubiquitous", Count: 1}, {Word: "ad hoc", Count: 1}}))

	usage, err := repo.UsageCounts(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"ubiquitous": 3, "ad hoc": 1}, usage)

	require.NoError(t, repo.RemoveWord(ctx, "u1", "ad hoc"))
	require.NoError(t, repo.RemoveWord(ctx, "u1", "missing"))

	words, err = repo.ListWords(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []string{"ubiquitous", "serendipity"}, words)

	usage, err = repo.UsageCounts(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"ubiquitous": 3}, usage)
}

func TestActivityRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewActivityRepository()

	day := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	require.NoError(t, repo.RecordActivity(ctx, "u1", day))
	require.NoError(t, repo.RecordActivity(ctx, "u1", day.Add(24*time.Hour)))

	ts, err := repo.ActivityTimestamps(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []time.Time{day, day.Add(24 * time.Hour)}, ts)

	ts, err = repo.ActivityTimestamps(ctx, "nobody")
	require.NoError(t, err)
	assert.Empty(t, ts)
}

func TestAnalysisRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewAnalysisRepository()

	content, err := valueobjects.NewTextContent("Day one", "as a result it works")
	require.NoError(t, err)

	base := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	newer, err := entities.NewTextAnalysis(uuid.New(), "u1", "", content,
		services.SpellCheckResult{}, services.ConnectorCountResult{AdvancedCount: 1}, services.VocabularyUsageResult{}, base.Add(time.Hour))
	require.NoError(t, err)
	older, err := entities.NewTextAnalysis(uuid.New(), "u1", "", content,
		services.SpellCheckResult{}, services.ConnectorCountResult{}, services.VocabularyUsageResult{}, base)
	require.NoError(t, err)

	require.NoError(t, repo.Save(ctx, newer))
	require.NoError(t, repo.Save(ctx, older))

	got, err := repo.GetByID(ctx, newer.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Connectors.AdvancedCount)

	list, err := repo.GetByUserID(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, older.ID, list[0].ID)
	assert.Equal(t, newer.ID, list[1].ID)

	_, err = repo.GetByID(ctx, uuid.New())
	assert.True(t, pkgerrors.IsNotFound(err))

	assert.True(t, pkgerrors.IsValidation(repo.Save(ctx, nil)))
}
