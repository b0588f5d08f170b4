package handlers

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"writecoach-backend/application/ports"
	"writecoach-backend/application/queries"
	"writecoach-backend/application/queries/bus"
	pkgerrors "writecoach-backend/pkg/errors"
)

// ListVocabularyHandler reads a user's vocabulary and usage totals
type ListVocabularyHandler struct {
	vocabRepo ports.VocabularyRepository
	logger    *zap.Logger
}

// NewListVocabularyHandler creates a new vocabulary query handler
func NewListVocabularyHandler(vocabRepo ports.VocabularyRepository, logger *zap.Logger) *ListVocabularyHandler {
	return &ListVocabularyHandler{
		vocabRepo: vocabRepo,
		logger:    logger,
	}
}

// Vocabulary executes the vocabulary query
func (h *ListVocabularyHandler) Vocabulary(ctx context.Context, query queries.ListVocabularyQuery) (*queries.ListVocabularyResult, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	words, err := h.vocabRepo.ListWords(ctx, query.UserID)
	if err != nil {
		return nil, pkgerrors.AsDatabaseError("list vocabulary", err)
	}
	usage, err := h.vocabRepo.UsageCounts(ctx, query.UserID)
	if err != nil {
		return nil, pkgerrors.AsDatabaseError("get vocabulary usage", err)
	}

	entries := make([]queries.VocabularyEntry, 0, len(words))
	for _, w := range words {
		entries = append(entries, queries.VocabularyEntry{Word: w, TimesUsed: usage[w]})
	}

	return &queries.ListVocabularyResult{
		UserID:  query.UserID,
		Entries: entries,
	}, nil
}

// Handle adapts the handler to the query bus
func (h *ListVocabularyHandler) Handle(ctx context.Context, query bus.Query) (interface{}, error) {
	q, ok := query.(queries.ListVocabularyQuery)
	if !ok {
		return nil, fmt.Errorf("unexpected query type %T", query)
	}
	return h.Vocabulary(ctx, q)
}
