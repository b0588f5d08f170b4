package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"writecoach-backend/application/ports"
	"writecoach-backend/domain/core/entities"
	pkgerrors "writecoach-backend/pkg/errors"
)

// AnalysisRepository keeps analyses in memory
type AnalysisRepository struct {
	mu       sync.RWMutex
	analyses map[uuid.UUID]entities.TextAnalysis
}

var _ ports.AnalysisRepository = (*AnalysisRepository)(nil)

// NewAnalysisRepository creates an empty repository
func NewAnalysisRepository() *AnalysisRepository {
	return &AnalysisRepository{analyses: make(map[uuid.UUID]entities.TextAnalysis)}
}

// Save stores a copy of the analysis, replacing any with the same ID
func (r *AnalysisRepository) Save(ctx context.Context, analysis *entities.TextAnalysis) error {
	if analysis == nil {
		return pkgerrors.NewValidationError("analysis cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.analyses[analysis.ID] = *analysis
	return nil
}

// GetByID retrieves an analysis by its ID
func (r *AnalysisRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.TextAnalysis, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	analysis, ok := r.analyses[id]
	if !ok {
		return nil, pkgerrors.NewNotFoundError("analysis")
	}
	return &analysis, nil
}

// GetByUserID retrieves all analyses for a user, oldest first
func (r *AnalysisRepository) GetByUserID(ctx context.Context, userID string) ([]*entities.TextAnalysis, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*entities.TextAnalysis
	for _, a := range r.analyses {
		if a.UserID == userID {
			a := a
			out = append(out, &a)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].AnalyzedAt.Equal(out[j].AnalyzedAt) {
			return out[i].ID.String() < out[j].ID.String()
		}
		return out[i].AnalyzedAt.Before(out[j].AnalyzedAt)
	})
	return out, nil
}
