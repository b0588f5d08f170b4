package queries

import (
	"github.com/google/uuid"

	pkgerrors "writecoach-backend/pkg/errors"
)

// GetAnalysisQuery fetches one stored analysis
type GetAnalysisQuery struct {
	AnalysisID string
}

// Validate validates the GetAnalysisQuery
func (q GetAnalysisQuery) Validate() error {
	if q.AnalysisID == "" {
		return pkgerrors.NewValidationError("analysis ID is required")
	}
	if _, err := uuid.Parse(q.AnalysisID); err != nil {
		return pkgerrors.NewValidationError("analysis ID must be a UUID")
	}
	return nil
}

// ListAnalysesQuery lists a user's analyses, newest first
type ListAnalysesQuery struct {
	UserID string
	Limit  int
}

// Validate validates the ListAnalysesQuery
func (q ListAnalysesQuery) Validate() error {
	if q.UserID == "" {
		return pkgerrors.NewValidationError("user ID is required")
	}
	if q.Limit < 0 {
		return pkgerrors.NewValidationError("limit cannot be negative")
	}
	return nil
}
