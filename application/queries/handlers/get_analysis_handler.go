package handlers

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"writecoach-backend/application/ports"
	"writecoach-backend/application/queries"
	"writecoach-backend/application/queries/bus"
	"writecoach-backend/domain/core/entities"
	pkgerrors "writecoach-backend/pkg/errors"
)

// GetAnalysisHandler reads stored analyses
type GetAnalysisHandler struct {
	analysisRepo ports.AnalysisRepository
	logger       *zap.Logger
}

// NewGetAnalysisHandler creates a new analysis query handler
func NewGetAnalysisHandler(analysisRepo ports.AnalysisRepository, logger *zap.Logger) *GetAnalysisHandler {
	return &GetAnalysisHandler{
		analysisRepo: analysisRepo,
		logger:       logger,
	}
}

// Analysis returns one analysis by ID
func (h *GetAnalysisHandler) Analysis(ctx context.Context, query queries.GetAnalysisQuery) (*entities.TextAnalysis, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	analysis, err := h.analysisRepo.GetByID(ctx, uuid.MustParse(query.AnalysisID))
	if err != nil {
		return nil, pkgerrors.AsDatabaseError("get analysis", err)
	}
	return analysis, nil
}

// List returns a user's analyses, newest first
func (h *GetAnalysisHandler) List(ctx context.Context, query queries.ListAnalysesQuery) ([]*entities.TextAnalysis, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	analyses, err := h.analysisRepo.GetByUserID(ctx, query.UserID)
	if err != nil {
		return nil, pkgerrors.AsDatabaseError("list analyses", err)
	}

	sort.SliceStable(analyses, func(i, j int) bool {
		return analyses[i].AnalyzedAt.After(analyses[j].AnalyzedAt)
	})
	if query.Limit > 0 && len(analyses) > query.Limit {
		analyses = analyses[:query.Limit]
	}

	h.logger.Debug("Listed analyses",
		zap.String("userID", query.UserID),
		zap.Int("count", len(analyses)),
	)
	return analyses, nil
}

// Handle adapts the handler to the query bus; it serves both
// GetAnalysisQuery and ListAnalysesQuery.
func (h *GetAnalysisHandler) Handle(ctx context.Context, query bus.Query) (interface{}, error) {
	switch q := query.(type) {
	case queries.GetAnalysisQuery:
		return h.Analysis(ctx, q)
	case queries.ListAnalysesQuery:
		return h.List(ctx, q)
	default:
		return nil, fmt.Errorf("unexpected query type %T", query)
	}
}
