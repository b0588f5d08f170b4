package handlers

import (
	"context"
	"fmt"
	"time"

	mapset "github.com/deckarep/golang-set/v2"
	"go.uber.org/zap"

	"writecoach-backend/application/ports"
	"writecoach-backend/application/queries"
	"writecoach-backend/application/queries/bus"
	"writecoach-backend/domain/services"
	pkgerrors "writecoach-backend/pkg/errors"
)

// GetStreaksHandler computes writing streaks from stored activity
type GetStreaksHandler struct {
	activityRepo ports.ActivityRepository
	calculator   services.StreakCalculator
	clock        ports.Clock
	logger       *zap.Logger
}

// NewGetStreaksHandler creates a new streaks handler
func NewGetStreaksHandler(
	activityRepo ports.ActivityRepository,
	calculator services.StreakCalculator,
	clock ports.Clock,
	logger *zap.Logger,
) *GetStreaksHandler {
	return &GetStreaksHandler{
		activityRepo: activityRepo,
		calculator:   calculator,
		clock:        clock,
		logger:       logger,
	}
}

// Streaks executes the streaks query
func (h *GetStreaksHandler) Streaks(ctx context.Context, query queries.GetStreaksQuery) (*queries.GetStreaksResult, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	timestamps := query.Timestamps
	if timestamps == nil {
		var err error
		timestamps, err = h.activityRepo.ActivityTimestamps(ctx, query.UserID)
		if err != nil {
			return nil, pkgerrors.AsDatabaseError("list activity", err)
		}
	}

	now := query.At
	if now.IsZero() {
		now = h.clock.Now()
	}

	streaks := h.calculator.CalculateStreaks(timestamps, now)

	days := mapset.NewThreadUnsafeSet[string]()
	for _, ts := range timestamps {
		days.Add(ts.UTC().Format(time.DateOnly))
	}

	h.logger.Debug("Calculated streaks",
		zap.String("userID", query.UserID),
		zap.Int("timestamps", len(timestamps)),
		zap.Int("current", streaks.CurrentStreak),
		zap.Int("longest", streaks.LongestStreak),
	)

	return &queries.GetStreaksResult{
		UserID:        query.UserID,
		CurrentStreak: streaks.CurrentStreak,
		LongestStreak: streaks.LongestStreak,
		ActiveDays:    days.Cardinality(),
		AsOf:          now.UTC(),
	}, nil
}

// Handle adapts the handler to the query bus
func (h *GetStreaksHandler) Handle(ctx context.Context, query bus.Query) (interface{}, error) {
	q, ok := query.(queries.GetStreaksQuery)
	if !ok {
		return nil, fmt.Errorf("unexpected query type %T", query)
	}
	return h.Streaks(ctx, q)
}
