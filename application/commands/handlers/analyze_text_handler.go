package handlers

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"writecoach-backend/application/commands"
	"writecoach-backend/application/commands/bus"
	"writecoach-backend/application/ports"
	"writecoach-backend/domain/config"
	"writecoach-backend/domain/core/entities"
	"writecoach-backend/domain/core/valueobjects"
	"writecoach-backend/domain/events"
	"writecoach-backend/domain/services"
	pkgerrors "writecoach-backend/pkg/errors"
	"writecoach-backend/pkg/observability"
)

// AnalyzeTextHandler runs the analysis pipeline for a submitted text:
// vocabulary usage, spelling and connectors, then feedback and persistence.
type AnalyzeTextHandler struct {
	vocabRepo    ports.VocabularyRepository
	activityRepo ports.ActivityRepository
	analysisRepo ports.AnalysisRepository
	spellChecker services.SpellChecker
	connectors   services.ConnectorCounter
	vocabulary   services.VocabularyCounter
	advisor      services.FeedbackAdvisor
	publisher    ports.EventPublisher
	clock        ports.Clock
	config       *config.DomainConfig
	tracer       *observability.Tracer
	metrics      *observability.Metrics
	logger       *zap.Logger
}

// NewAnalyzeTextHandler creates a new analyze handler
func NewAnalyzeTextHandler(
	vocabRepo ports.VocabularyRepository,
	activityRepo ports.ActivityRepository,
	analysisRepo ports.AnalysisRepository,
	spellChecker services.SpellChecker,
	connectors services.ConnectorCounter,
	vocabulary services.VocabularyCounter,
	advisor services.FeedbackAdvisor,
	publisher ports.EventPublisher,
	clock ports.Clock,
	cfg *config.DomainConfig,
	tracer *observability.Tracer,
	metrics *observability.Metrics,
	logger *zap.Logger,
) *AnalyzeTextHandler {
	if cfg == nil {
		cfg = config.DefaultDomainConfig()
	}
	return &AnalyzeTextHandler{
		vocabRepo:    vocabRepo,
		activityRepo: activityRepo,
		analysisRepo: analysisRepo,
		spellChecker: spellChecker,
		connectors:   connectors,
		vocabulary:   vocabulary,
		advisor:      advisor,
		publisher:    publisher,
		clock:        clock,
		config:       cfg,
		tracer:       tracer,
		metrics:      metrics,
		logger:       logger,
	}
}

// Analyze executes the analyze command and returns the stored analysis
func (h *AnalyzeTextHandler) Analyze(ctx context.Context, cmd commands.AnalyzeTextCommand) (*entities.TextAnalysis, error) {
	ctx, span := h.tracer.StartSpan(ctx, "AnalyzeText",
		attribute.String("user.id", cmd.UserID),
		attribute.String("analysis.id", cmd.AnalysisID),
	)
	defer span.End()

	start := time.Now()
	analysis, err := h.analyze(ctx, cmd)
	if err != nil {
		observability.RecordError(span, err)
		h.metrics.RecordAnalysisFailure()
		h.logger.Error("Text analysis failed",
			zap.String("userID", cmd.UserID),
			zap.String("analysisID", cmd.AnalysisID),
			zap.Error(err),
		)
		return nil, err
	}

	h.metrics.RecordAnalysis(
		analysis.Spelling.ErrorCount,
		analysis.Connectors.BasicCount,
		analysis.Connectors.AdvancedCount,
		analysis.Vocabulary.VocabWordsUsed,
		time.Since(start),
	)
	h.logger.Info("Text analyzed",
		zap.String("userID", analysis.UserID),
		zap.String("analysisID", analysis.ID.String()),
		zap.Int("wordCount", analysis.WordCount),
		zap.Int("spellingErrors", analysis.Spelling.ErrorCount),
		zap.Int("basicConnectors", analysis.Connectors.BasicCount),
		zap.Int("advancedConnectors", analysis.Connectors.AdvancedCount),
		zap.Int("vocabWordsUsed", analysis.Vocabulary.VocabWordsUsed),
		zap.Duration("duration", time.Since(start)),
	)
	return analysis, nil
}

func (h *AnalyzeTextHandler) analyze(ctx context.Context, cmd commands.AnalyzeTextCommand) (*entities.TextAnalysis, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	id, err := uuid.Parse(cmd.AnalysisID)
	if err != nil {
		return nil, pkgerrors.NewValidationError("analysis ID must be a UUID")
	}

	content, err := valueobjects.NewTextContentWithConfig(cmd.Title, cmd.Content, h.config)
	if err != nil {
		return nil, err
	}

	previous, err := h.analysisRepo.GetByID(ctx, id)
	switch {
	case pkgerrors.IsNotFound(err):
		previous = nil
	case err != nil:
		return nil, pkgerrors.AsDatabaseError("load analysis", err)
	case previous.UserID != cmd.UserID:
		return nil, pkgerrors.NewValidationError("analysis belongs to another user")
	}

	stored, err := h.vocabRepo.ListWords(ctx, cmd.UserID)
	if err != nil {
		return nil, pkgerrors.AsDatabaseError("list vocabulary", err)
	}
	vocab := mergeVocabulary(stored, cmd.Vocabulary)
	text := content.Body()

	var (
		spelling   services.SpellCheckResult
		connectors services.ConnectorCountResult
		usage      services.VocabularyUsageResult
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return h.tracer.TraceFunction(gctx, "CheckSpelling", func(context.Context) error {
			result, err := h.spellChecker.CheckSpelling(text, vocab)
			if err != nil {
				return pkgerrors.NewUnavailableError("dictionary", err)
			}
			spelling = result
			return nil
		})
	})
	g.Go(func() error {
		return h.tracer.TraceFunction(gctx, "CountConnectors", func(context.Context) error {
			connectors = h.connectors.CountConnectors(text)
			return nil
		})
	})
	g.Go(func() error {
		return h.tracer.TraceFunction(gctx, "CountVocabularyUsage", func(context.Context) error {
			usage = h.vocabulary.CountVocabularyUsage(text, vocab)
			return nil
		})
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	now := h.clock.Now()
	analysis, err := entities.NewTextAnalysis(id, cmd.UserID, cmd.TextID, content, spelling, connectors, usage, now)
	if err != nil {
		return nil, err
	}

	if h.config.EnableFeedback && h.advisor != nil {
		analysis.AttachFeedback(h.advisor.Advise(analysis.WordCount, connectors.BasicCount, connectors.AdvancedCount))
	}

	if err := h.analysisRepo.Save(ctx, analysis); err != nil {
		return nil, pkgerrors.AsDatabaseError("save analysis", err)
	}
	if previous == nil {
		if err := h.activityRepo.RecordActivity(ctx, cmd.UserID, now); err != nil {
			return nil, pkgerrors.AsDatabaseError("record activity", err)
		}
	}
	if delta := usageDelta(stored, previous, usage.WordsFound); len(delta) > 0 {
		if err := h.vocabRepo.RecordUsage(ctx, cmd.UserID, delta); err != nil {
			return nil, pkgerrors.AsDatabaseError("record vocabulary usage", err)
		}
	}

	h.publish(ctx, events.NewTextAnalyzed(analysis, previous != nil))
	return analysis, nil
}

// publish hands the event to the publisher. The analysis is already stored,
// so a delivery failure is logged and not returned.
func (h *AnalyzeTextHandler) publish(ctx context.Context, event events.DomainEvent) {
	if h.publisher == nil {
		return
	}
	if err := h.publisher.Publish(ctx, event); err != nil {
		h.logger.Warn("Failed to publish event",
			zap.String("eventType", event.GetEventType()),
			zap.String("aggregateID", event.GetAggregateID()),
			zap.Error(err),
		)
	}
}

// usageDelta returns the change in times_used for the stored vocabulary
// words. A re-analysis replaces the previous analysis' contribution, and
// words that are not stored (per-call extras) are never counted.
func usageDelta(stored []string, previous *entities.TextAnalysis, current []services.WordUsage) []services.WordUsage {
	keep := make(map[string]struct{}, len(stored))
	for _, w := range stored {
		keep[w] = struct{}{}
	}

	counts := make(map[string]int)
	var order []string
	add := func(word string, n int) {
		if _, ok := keep[word]; !ok {
			return
		}
		if _, seen := counts[word]; !seen {
			order = append(order, word)
		}
		counts[word] += n
	}

	for _, u := range current {
		add(u.Word, u.Count)
	}
	if previous != nil {
		for _, u := range previous.Vocabulary.WordsFound {
			add(u.Word, -u.Count)
		}
	}

	var delta []services.WordUsage
	for _, w := range order {
		if counts[w] != 0 {
			delta = append(delta, services.WordUsage{Word: w, Count: counts[w]})
		}
	}
	return delta
}

// Handle adapts the handler to the command bus
func (h *AnalyzeTextHandler) Handle(ctx context.Context, cmd bus.Command) error {
	c, ok := cmd.(commands.AnalyzeTextCommand)
	if !ok {
		return fmt.Errorf("unexpected command type %T", cmd)
	}
	_, err := h.Analyze(ctx, c)
	return err
}

// mergeVocabulary appends extra entries the stored list does not contain
func mergeVocabulary(stored, extra []string) []string {
	if len(extra) == 0 {
		return stored
	}
	seen := make(map[string]struct{}, len(stored)+len(extra))
	out := make([]string, 0, len(stored)+len(extra))
	for _, list := range [][]string{stored, extra} {
		for _, w := range list {
			if _, ok := seen[w]; ok {
				continue
			}
			seen[w] = struct{}{}
			out = append(out, w)
		}
	}
	return out
}
