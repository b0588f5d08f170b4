package di

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	awseventbridge "github.com/aws/aws-sdk-go-v2/service/eventbridge"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"writecoach-backend/application/commands"
	"writecoach-backend/application/commands/bus"
	commandhandlers "writecoach-backend/application/commands/handlers"
	"writecoach-backend/application/ports"
	"writecoach-backend/application/queries"
	querybus "writecoach-backend/application/queries/bus"
	queryhandlers "writecoach-backend/application/queries/handlers"
	domainconfig "writecoach-backend/domain/config"
	"writecoach-backend/domain/dictionary"
	"writecoach-backend/domain/services"
	"writecoach-backend/infrastructure/config"
	dictfiles "writecoach-backend/infrastructure/dictionary"
	"writecoach-backend/infrastructure/messaging/eventbridge"
	msgmemory "writecoach-backend/infrastructure/messaging/memory"
	dynamostore "writecoach-backend/infrastructure/persistence/dynamodb"
	"writecoach-backend/infrastructure/persistence/memory"
	redisstore "writecoach-backend/infrastructure/persistence/redis"
	"writecoach-backend/pkg/observability"
)

const serviceName = "writecoach"

// Container holds all application dependencies
type Container struct {
	Config       *config.Config
	Logger       *zap.Logger
	Metrics      *observability.Metrics
	Tracing      *observability.TracerProvider
	Dictionary   *dictionary.Provider
	Thresholds   services.ThresholdSource
	VocabRepo    ports.VocabularyRepository
	ActivityRepo ports.ActivityRepository
	AnalysisRepo ports.AnalysisRepository
	Events       ports.EventPublisher
	CommandBus   *bus.CommandBus
	QueryBus     *querybus.QueryBus
}

// ProvideLogger creates a new logger instance at the configured level
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	level, err := zap.ParseAtomicLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	var zapCfg zap.Config
	if cfg.IsProduction() {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}
	zapCfg.Level = level

	return zapCfg.Build()
}

// ProvideDomainConfig exposes the domain rules
func ProvideDomainConfig(cfg *config.Config) *domainconfig.DomainConfig {
	return cfg.Domain
}

// ProvideMetrics creates the Prometheus collectors
func ProvideMetrics() *observability.Metrics {
	return observability.NewMetrics(serviceName)
}

// ProvideTracer creates the tracer used by the handlers
func ProvideTracer() *observability.Tracer {
	return observability.NewTracer(serviceName)
}

// ProvideTracerProvider installs the OTLP exporter when tracing is enabled.
// It returns nil otherwise.
func ProvideTracerProvider(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*observability.TracerProvider, func(), error) {
	if !cfg.EnableTracing {
		return nil, func() {}, nil
	}

	tp, err := observability.InitTracing(ctx, serviceName, cfg.Environment, cfg.TracingEndpoint)
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tp.Shutdown(shutdownCtx); err != nil {
			logger.Warn("Failed to flush traces", zap.Error(err))
		}
	}
	return tp, cleanup, nil
}

// ProvideDictionary creates the lazily loaded dictionary
func ProvideDictionary(cfg *config.Config, metrics *observability.Metrics, logger *zap.Logger) *dictionary.Provider {
	return dictionary.NewProvider(dictfiles.NewLoadFunc(cfg.DictionaryDir, cfg.DictionaryLocale, metrics, logger))
}

// ProvideRedisStore connects the Redis store when REDIS_ADDR is set. It
// returns nil otherwise, which selects the in-memory repositories.
func ProvideRedisStore(cfg *config.Config, metrics *observability.Metrics, logger *zap.Logger) (*redisstore.Store, func()) {
	if !cfg.UseRedis() {
		return nil, func() {}
	}

	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	store := redisstore.NewStore(client, cfg.RedisKeyPrefix, redisstore.DefaultCircuitBreakerConfig("redis"), metrics, logger)

	cleanup := func() {
		if err := store.Close(); err != nil {
			logger.Warn("Failed to close Redis client", zap.Error(err))
		}
	}
	return store, cleanup
}

// ProvideAWSConfig loads the AWS SDK configuration when DynamoDB or
// EventBridge is configured. It returns nil otherwise.
func ProvideAWSConfig(ctx context.Context, cfg *config.Config) (*aws.Config, error) {
	if !cfg.UseDynamoDB() && !cfg.UseEventBridge() {
		return nil, nil
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWSRegion))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return &awsCfg, nil
}

// ProvideDynamoDBStore opens the DynamoDB store when DYNAMODB_TABLE is set.
// Against a local endpoint the table is created on first use.
func ProvideDynamoDBStore(
	ctx context.Context,
	cfg *config.Config,
	awsCfg *aws.Config,
	metrics *observability.Metrics,
	logger *zap.Logger,
) (*dynamostore.Store, error) {
	if !cfg.UseDynamoDB() {
		return nil, nil
	}

	client := awsdynamodb.NewFromConfig(*awsCfg, func(o *awsdynamodb.Options) {
		if cfg.DynamoDBEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.DynamoDBEndpoint)
		}
	})
	store := dynamostore.NewStore(client, cfg.DynamoDBTable, metrics, logger)

	if cfg.DynamoDBEndpoint != "" {
		if err := store.EnsureTable(ctx); err != nil {
			return nil, err
		}
	}
	return store, nil
}

// ProvideEventPublisher publishes to EventBridge when EVENT_BUS_NAME is set
// and keeps events in process otherwise
func ProvideEventPublisher(cfg *config.Config, awsCfg *aws.Config, logger *zap.Logger) ports.EventPublisher {
	if !cfg.UseEventBridge() {
		return msgmemory.NewPublisher(logger)
	}
	return eventbridge.NewPublisher(awseventbridge.NewFromConfig(*awsCfg), cfg.EventBusName, logger)
}

// ProvideVocabularyRepository creates a vocabulary repository on the
// configured store, falling back to memory
func ProvideVocabularyRepository(redis *redisstore.Store, dynamo *dynamostore.Store) ports.VocabularyRepository {
	switch {
	case redis != nil:
		return redisstore.NewVocabularyRepository(redis)
	case dynamo != nil:
		return dynamostore.NewVocabularyRepository(dynamo)
	default:
		return memory.NewVocabularyRepository()
	}
}

// ProvideActivityRepository creates an activity repository
func ProvideActivityRepository(redis *redisstore.Store, dynamo *dynamostore.Store) ports.ActivityRepository {
	switch {
	case redis != nil:
		return redisstore.NewActivityRepository(redis)
	case dynamo != nil:
		return dynamostore.NewActivityRepository(dynamo)
	default:
		return memory.NewActivityRepository()
	}
}

// ProvideAnalysisRepository creates an analysis repository
func ProvideAnalysisRepository(redis *redisstore.Store, dynamo *dynamostore.Store) ports.AnalysisRepository {
	switch {
	case redis != nil:
		return redisstore.NewAnalysisRepository(redis)
	case dynamo != nil:
		return dynamostore.NewAnalysisRepository(dynamo)
	default:
		return memory.NewAnalysisRepository()
	}
}

// ProvideClock returns the wall clock
func ProvideClock() ports.Clock {
	return ports.SystemClock{}
}

// ProvideThresholdSource watches CONFIG_FILE for feedback threshold changes
// when one is configured.
func ProvideThresholdSource(cfg *config.Config, logger *zap.Logger) (services.ThresholdSource, func(), error) {
	if cfg.ConfigFile == "" {
		return services.StaticThresholds(cfg.Domain.Feedback), func() {}, nil
	}

	watcher, err := config.NewFeedbackWatcher(cfg.ConfigFile, cfg.Domain.Feedback, logger)
	if err != nil {
		return nil, nil, err
	}
	return watcher, watcher.Stop, nil
}

// ProvideSpellChecker creates the dictionary spell checker
func ProvideSpellChecker(dict *dictionary.Provider, domainCfg *domainconfig.DomainConfig) services.SpellChecker {
	return services.NewSpellChecker(dict, domainCfg.MaxSuggestions)
}

// ProvideConnectorCounter creates the connector counter
func ProvideConnectorCounter() services.ConnectorCounter {
	return services.NewConnectorCounter(nil)
}

// ProvideVocabularyCounter creates the vocabulary counter
func ProvideVocabularyCounter() services.VocabularyCounter {
	return services.NewVocabularyCounter()
}

// ProvideStreakCalculator creates the streak calculator
func ProvideStreakCalculator() services.StreakCalculator {
	return services.NewStreakCalculator()
}

// ProvideFeedbackAdvisor creates the feedback advisor
func ProvideFeedbackAdvisor(thresholds services.ThresholdSource) services.FeedbackAdvisor {
	return services.NewFeedbackAdvisor(nil, thresholds, rand.New(rand.NewSource(time.Now().UnixNano())))
}

// ProvideAnalyzeTextHandler creates the analysis pipeline handler
func ProvideAnalyzeTextHandler(
	vocabRepo ports.VocabularyRepository,
	activityRepo ports.ActivityRepository,
	analysisRepo ports.AnalysisRepository,
	spellChecker services.SpellChecker,
	connectors services.ConnectorCounter,
	vocabulary services.VocabularyCounter,
	advisor services.FeedbackAdvisor,
	publisher ports.EventPublisher,
	clock ports.Clock,
	domainCfg *domainconfig.DomainConfig,
	tracer *observability.Tracer,
	metrics *observability.Metrics,
	logger *zap.Logger,
) *commandhandlers.AnalyzeTextHandler {
	return commandhandlers.NewAnalyzeTextHandler(
		vocabRepo, activityRepo, analysisRepo,
		spellChecker, connectors, vocabulary, advisor,
		publisher, clock, domainCfg, tracer, metrics, logger,
	)
}

// ProvideVocabularyHandler creates the vocabulary maintenance handler
func ProvideVocabularyHandler(vocabRepo ports.VocabularyRepository, domainCfg *domainconfig.DomainConfig, logger *zap.Logger) *commandhandlers.VocabularyHandler {
	return commandhandlers.NewVocabularyHandler(vocabRepo, domainCfg, logger)
}

// ProvideCommandBus creates a command bus with registered handlers
func ProvideCommandBus(
	analyze *commandhandlers.AnalyzeTextHandler,
	vocabulary *commandhandlers.VocabularyHandler,
	logger *zap.Logger,
) (*bus.CommandBus, error) {
	commandBus := bus.NewCommandBus(bus.LoggingMiddleware(logger))

	registrations := []struct {
		cmd     bus.Command
		handler bus.CommandHandler
	}{
		{commands.AnalyzeTextCommand{}, analyze},
		{commands.AddVocabularyCommand{}, vocabulary},
		{commands.RemoveVocabularyCommand{}, vocabulary},
	}
	for _, r := range registrations {
		if err := commandBus.Register(r.cmd, r.handler); err != nil {
			return nil, err
		}
	}
	return commandBus, nil
}

// ProvideQueryBus creates a query bus with registered handlers
func ProvideQueryBus(
	activityRepo ports.ActivityRepository,
	analysisRepo ports.AnalysisRepository,
	vocabRepo ports.VocabularyRepository,
	calculator services.StreakCalculator,
	clock ports.Clock,
	logger *zap.Logger,
) (*querybus.QueryBus, error) {
	queryBus := querybus.NewQueryBus(querybus.LoggingMiddleware(logger))

	streaks := queryhandlers.NewGetStreaksHandler(activityRepo, calculator, clock, logger)
	analyses := queryhandlers.NewGetAnalysisHandler(analysisRepo, logger)
	vocabulary := queryhandlers.NewListVocabularyHandler(vocabRepo, logger)

	registrations := []struct {
		query   querybus.Query
		handler querybus.QueryHandler
	}{
		{queries.GetStreaksQuery{}, streaks},
		{queries.GetAnalysisQuery{}, analyses},
		{queries.ListAnalysesQuery{}, analyses},
		{queries.ListVocabularyQuery{}, vocabulary},
	}
	for _, r := range registrations {
		if err := queryBus.Register(r.query, r.handler); err != nil {
			return nil, err
		}
	}
	return queryBus, nil
}
