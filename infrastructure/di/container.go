//go:build !wireinject
// +build !wireinject

package di

import (
	"context"

	"writecoach-backend/infrastructure/config"
)

// InitializeContainer creates a fully wired container. It mirrors the
// injector in wire.go; the returned cleanup releases resources in reverse
// order of creation.
func InitializeContainer(ctx context.Context, cfg *config.Config) (*Container, func(), error) {
	logger, err := ProvideLogger(cfg)
	if err != nil {
		return nil, nil, err
	}
	metrics := ProvideMetrics()
	tracer := ProvideTracer()
	tracing, tracingCleanup, err := ProvideTracerProvider(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	domainCfg := ProvideDomainConfig(cfg)
	dict := ProvideDictionary(cfg, metrics, logger)

	awsCfg, err := ProvideAWSConfig(ctx, cfg)
	if err != nil {
		tracingCleanup()
		return nil, nil, err
	}
	dynamo, err := ProvideDynamoDBStore(ctx, cfg, awsCfg, metrics, logger)
	if err != nil {
		tracingCleanup()
		return nil, nil, err
	}
	store, storeCleanup := ProvideRedisStore(cfg, metrics, logger)
	vocabRepo := ProvideVocabularyRepository(store, dynamo)
	activityRepo := ProvideActivityRepository(store, dynamo)
	analysisRepo := ProvideAnalysisRepository(store, dynamo)
	publisher := ProvideEventPublisher(cfg, awsCfg, logger)
	clock := ProvideClock()

	thresholds, thresholdsCleanup, err := ProvideThresholdSource(cfg, logger)
	if err != nil {
		storeCleanup()
		tracingCleanup()
		return nil, nil, err
	}

	spellChecker := ProvideSpellChecker(dict, domainCfg)
	connectors := ProvideConnectorCounter()
	vocabulary := ProvideVocabularyCounter()
	calculator := ProvideStreakCalculator()
	advisor := ProvideFeedbackAdvisor(thresholds)

	analyzeHandler := ProvideAnalyzeTextHandler(
		vocabRepo, activityRepo, analysisRepo,
		spellChecker, connectors, vocabulary, advisor,
		publisher, clock, domainCfg, tracer, metrics, logger,
	)
	vocabularyHandler := ProvideVocabularyHandler(vocabRepo, domainCfg, logger)

	cleanup := func() {
		thresholdsCleanup()
		storeCleanup()
		tracingCleanup()
	}

	commandBus, err := ProvideCommandBus(analyzeHandler, vocabularyHandler, logger)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	queryBus, err := ProvideQueryBus(activityRepo, analysisRepo, vocabRepo, calculator, clock, logger)
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	return &Container{
		Config:       cfg,
		Logger:       logger,
		Metrics:      metrics,
		Tracing:      tracing,
		Dictionary:   dict,
		Thresholds:   thresholds,
		VocabRepo:    vocabRepo,
		ActivityRepo: activityRepo,
		AnalysisRepo: analysisRepo,
		Events:       publisher,
		CommandBus:   commandBus,
		QueryBus:     queryBus,
	}, cleanup, nil
}
