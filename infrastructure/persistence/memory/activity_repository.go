package memory

import (
	"context"
	"sync"
	"time"

	"writecoach-backend/application/ports"
)

// ActivityRepository keeps submission times in memory
type ActivityRepository struct {
	mu         sync.RWMutex
	timestamps map[string][]time.Time
}

var _ ports.ActivityRepository = (*ActivityRepository)(nil)

// NewActivityRepository creates an empty repository
func NewActivityRepository() *ActivityRepository {
	return &ActivityRepository{timestamps: make(map[string][]time.Time)}
}

// RecordActivity stores one submission time
func (r *ActivityRepository) RecordActivity(ctx context.Context, userID string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.timestamps[userID] = append(r.timestamps[userID], at.UTC())
	return nil
}

// ActivityTimestamps returns a copy of the user's submission times
func (r *ActivityRepository) ActivityTimestamps(ctx context.Context, userID string) ([]time.Time, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ts := r.timestamps[userID]
	out := make([]time.Time, len(ts))
	copy(out, ts)
	return out, nil
}
