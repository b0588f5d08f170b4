package handlers

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"writecoach-backend/application/commands"
	"writecoach-backend/application/commands/bus"
	"writecoach-backend/application/ports"
	"writecoach-backend/domain/config"
	pkgerrors "writecoach-backend/pkg/errors"
)

// VocabularyHandler maintains users' personal vocabularies
type VocabularyHandler struct {
	vocabRepo ports.VocabularyRepository
	config    *config.DomainConfig
	logger    *zap.Logger
}

// NewVocabularyHandler creates a new vocabulary handler
func NewVocabularyHandler(vocabRepo ports.VocabularyRepository, cfg *config.DomainConfig, logger *zap.Logger) *VocabularyHandler {
	if cfg == nil {
		cfg = config.DefaultDomainConfig()
	}
	return &VocabularyHandler{
		vocabRepo: vocabRepo,
		config:    cfg,
		logger:    logger,
	}
}

// Add executes the add vocabulary command
func (h *VocabularyHandler) Add(ctx context.Context, cmd commands.AddVocabularyCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	existing, err := h.vocabRepo.ListWords(ctx, cmd.UserID)
	if err != nil {
		return pkgerrors.AsDatabaseError("list vocabulary", err)
	}

	words := make([]string, 0, len(cmd.Words))
	for _, w := range cmd.Words {
		words = append(words, strings.TrimSpace(w))
	}
	merged := mergeVocabulary(existing, words)
	if len(merged) > h.config.MaxVocabularyEntries {
		return pkgerrors.NewValidationError(
			fmt.Sprintf("vocabulary cannot exceed %d entries", h.config.MaxVocabularyEntries))
	}

	if err := h.vocabRepo.AddWords(ctx, cmd.UserID, words...); err != nil {
		return pkgerrors.AsDatabaseError("add vocabulary", err)
	}

	h.logger.Info("Vocabulary updated",
		zap.String("userID", cmd.UserID),
		zap.Int("added", len(merged)-len(existing)),
		zap.Int("total", len(merged)),
	)
	return nil
}

// Remove executes the remove vocabulary command
func (h *VocabularyHandler) Remove(ctx context.Context, cmd commands.RemoveVocabularyCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if err := h.vocabRepo.RemoveWord(ctx, cmd.UserID, cmd.Word); err != nil {
		return pkgerrors.AsDatabaseError("remove vocabulary", err)
	}
	return nil
}

// Handle adapts the handler to the command bus
func (h *VocabularyHandler) Handle(ctx context.Context, cmd bus.Command) error {
	switch c := cmd.(type) {
	case commands.AddVocabularyCommand:
		return h.Add(ctx, c)
	case commands.RemoveVocabularyCommand:
		return h.Remove(ctx, c)
	default:
		return fmt.Errorf("unexpected command type %T", cmd)
	}
}
