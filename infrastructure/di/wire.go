//go:build wireinject
// +build wireinject

package di

import (
	"context"

	"github.com/google/wire"

	"writecoach-backend/infrastructure/config"
)

// SuperSet is the main provider set containing all providers
var SuperSet = wire.NewSet(
	ProvideLogger,
	ProvideDomainConfig,
	ProvideMetrics,
	ProvideTracer,
	ProvideTracerProvider,
	ProvideDictionary,
	ProvideAWSConfig,
	ProvideDynamoDBStore,
	ProvideRedisStore,
	ProvideEventPublisher,
	ProvideVocabularyRepository,
	ProvideActivityRepository,
	ProvideAnalysisRepository,
	ProvideClock,
	ProvideThresholdSource,
	ProvideSpellChecker,
	ProvideConnectorCounter,
	ProvideVocabularyCounter,
	ProvideStreakCalculator,
	ProvideFeedbackAdvisor,
	ProvideAnalyzeTextHandler,
	ProvideVocabularyHandler,
	ProvideCommandBus,
	ProvideQueryBus,
	wire.Struct(new(Container), "*"),
)

// InitializeContainer creates a fully wired container
func InitializeContainer(ctx context.Context, cfg *config.Config) (*Container, func(), error) {
	wire.Build(SuperSet)
	return nil, nil, nil // Wire will replace this
}
