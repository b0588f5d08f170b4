package redis

import (
	"context"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"writecoach-backend/application/ports"
)

// ActivityRepository stores submission times in a sorted set per user.
// Members are random IDs so equal timestamps do not collapse.
type ActivityRepository struct {
	store *Store
}

var _ ports.ActivityRepository = (*ActivityRepository)(nil)

// NewActivityRepository creates an activity repository on store
func NewActivityRepository(store *Store) *ActivityRepository {
	return &ActivityRepository{store: store}
}

// RecordActivity stores one submission time
func (r *ActivityRepository) RecordActivity(ctx context.Context, userID string, at time.Time) error {
	return r.store.do(ctx, "record_activity", func(ctx context.Context) error {
		return r.store.client.ZAdd(ctx, r.store.key("activity", userID), goredis.Z{
			Score:  score(at),
			Member: uuid.NewString(),
		}).Err()
	})
}

// ActivityTimestamps returns the user's submission times, oldest first
func (r *ActivityRepository) ActivityTimestamps(ctx context.Context, userID string) ([]time.Time, error) {
	var timestamps []time.Time
	err := r.store.do(ctx, "activity_timestamps", func(ctx context.Context) error {
		entries, err := r.store.client.ZRangeWithScores(ctx, r.store.key("activity", userID), 0, -1).Result()
		if err != nil {
			return err
		}
		timestamps = make([]time.Time, 0, len(entries))
		for _, e := range entries {
			timestamps = append(timestamps, fromScore(e.Score))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return timestamps, nil
}
