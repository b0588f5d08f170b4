package dynamodb

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"writecoach-backend/domain/services"
	pkgerrors "writecoach-backend/pkg/errors"
	"writecoach-backend/pkg/observability"
)

// newLocalStore creates a throwaway table on the DynamoDB at DYNAMODB_ENDPOINT
func newLocalStore(t *testing.T) *Store {
	t.Helper()

	endpoint := os.Getenv("DYNAMODB_ENDPOINT")
	if endpoint == "" {
		t.Skip("DYNAMODB_ENDPOINT not set")
	}

	ctx := context.Background()
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion("us-east-1"),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider("local", "local", "")),
	)
	require.NoError(t, err)

	client := dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
		o.BaseEndpoint = aws.String(endpoint)
	})
	table := "writecoach-test-" + uuid.NewString()
	store := NewStore(client, table, observability.NewMetrics("test"), zap.NewNop())
	require.NoError(t, store.EnsureTable(ctx))

	t.Cleanup(func() {
		_, _ = client.DeleteTable(context.Background(), &dynamodb.DeleteTableInput{TableName: aws.String(table)})
	})
	return store
}

func TestLocalVocabularyRepository(t *testing.T) {
	store := newLocalStore(t)
	ctx := context.Background()
	repo := NewVocabularyRepository(store)

	require.NoError(t, repo.AddWords(ctx, "u1", "ubiquitous", "ad hoc"))
	require.NoError(t, repo.AddWords(ctx, "u1", "serendipity", "ubiquitous"))

	words, err := repo.ListWords(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []string{"ubiquitous", "ad hoc", "serendipity"}, words)

	require.NoError(t, repo.RecordUsage(ctx, "u1", []services.WordUsage{{Word: "ubiquitous", Count: 2}}))
	require.NoError(t, repo.RecordUsage(ctx, "u1", []services.WordUsage{{Word: "ubiquitous", Count: -1}, {Word: "unknown", Count: 3}}))

	usage, err := repo.UsageCounts(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"ubiquitous": 1}, usage)

	require.NoError(t, repo.RemoveWord(ctx, "u1", "ubiquitous"))
	words, err = repo.ListWords(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []string{"ad hoc", "serendipity"}, words)
}

func TestLocalActivityAndAnalysisRepositories(t *testing.T) {
	store := newLocalStore(t)
	ctx := context.Background()

	activity := NewActivityRepository(store)
	at := time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC)
	require.NoError(t, activity.RecordActivity(ctx, "u1", at))
	require.NoError(t, activity.RecordActivity(ctx, "u1", at))
	ts, err := activity.ActivityTimestamps(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []time.Time{at, at}, ts)

	analyses := NewAnalysisRepository(store)
	a := testAnalysis(t, "u1", at)
	require.NoError(t, analyses.Save(ctx, a))
	require.NoError(t, analyses.Save(ctx, a))

	got, err := analyses.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, a.Counters(), got.Counters())

	list, err := analyses.GetByUserID(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = analyses.GetByID(ctx, uuid.New())
	assert.True(t, pkgerrors.IsNotFound(err))
}
