package queries

import (
	"time"

	pkgerrors "writecoach-backend/pkg/errors"
)

// GetStreaksQuery asks for a user's writing streaks. When Timestamps is set
// it replaces the stored activity; a zero At means "now".
type GetStreaksQuery struct {
	UserID     string
	Timestamps []time.Time
	At         time.Time
}

// Validate validates the GetStreaksQuery
func (q GetStreaksQuery) Validate() error {
	if q.UserID == "" && q.Timestamps == nil {
		return pkgerrors.NewValidationError("user ID is required")
	}
	return nil
}

// GetStreaksResult represents a user's streaks as of a moment
type GetStreaksResult struct {
	UserID        string    `json:"userId,omitempty"`
	CurrentStreak int       `json:"currentStreak"`
	LongestStreak int       `json:"longestStreak"`
	ActiveDays    int       `json:"activeDays"`
	AsOf          time.Time `json:"asOf"`
}
