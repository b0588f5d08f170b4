package dynamodb

import (
	"context"
	"sort"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"

	"writecoach-backend/application/ports"
)

const activityPrefix = "ACTIVITY#"

type activityItem struct {
	PK         string `dynamodbav:"PK"`
	SK         string `dynamodbav:"SK"`
	EntityType string `dynamodbav:"EntityType"`
	At         string `dynamodbav:"At"`
}

// ActivityRepository stores one item per submission. The sort key starts
// with the fixed-width timestamp, so a query returns them oldest first.
type ActivityRepository struct {
	store *Store
}

var _ ports.ActivityRepository = (*ActivityRepository)(nil)

// NewActivityRepository creates an activity repository on store
func NewActivityRepository(store *Store) *ActivityRepository {
	return &ActivityRepository{store: store}
}

// activitySK orders by time; the random suffix keeps equal timestamps apart
func activitySK(at time.Time) string {
	return activityPrefix + formatTime(at) + "#" + uuid.NewString()
}

// RecordActivity stores one submission time
func (r *ActivityRepository) RecordActivity(ctx context.Context, userID string, at time.Time) error {
	av, err := attributevalue.MarshalMap(activityItem{
		PK:         userPK(userID),
		SK:         activitySK(at),
		EntityType: "ACTIVITY",
		At:         formatTime(at),
	})
	if err != nil {
		return err
	}

	return r.store.do(ctx, "record_activity", func(ctx context.Context) error {
		_, err := r.store.client.PutItem(ctx, &dynamodb.PutItemInput{
			TableName: aws.String(r.store.table),
			Item:      av,
		})
		return err
	})
}

// ActivityTimestamps returns the user's submission times, oldest first
func (r *ActivityRepository) ActivityTimestamps(ctx context.Context, userID string) ([]time.Time, error) {
	var timestamps []time.Time
	err := r.store.do(ctx, "activity_timestamps", func(ctx context.Context) error {
		return r.store.query(ctx, "", userItems(userID, activityPrefix), func(page []map[string]types.AttributeValue) error {
			var items []activityItem
			if err := attributevalue.UnmarshalListOfMaps(page, &items); err != nil {
				return err
			}
			for _, item := range items {
				at, err := parseTime(item.At)
				if err != nil {
					return err
				}
				timestamps = append(timestamps, at)
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(timestamps, func(i, j int) bool { return timestamps[i].Before(timestamps[j]) })
	return timestamps, nil
}
