// Package redis implements the repositories on Redis. Every call goes
// through a circuit breaker so an unreachable server fails fast.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	pkgerrors "writecoach-backend/pkg/errors"
	"writecoach-backend/pkg/observability"
)

// CircuitBreakerConfig holds configuration for the store's circuit breaker
type CircuitBreakerConfig struct {
	Name        string
	MaxRequests uint32
	Interval    time.Duration
	Timeout     time.Duration
	// Trip once FailureThreshold of at least MinRequests calls failed
	FailureThreshold float64
	MinRequests      uint32
}

// DefaultCircuitBreakerConfig returns the breaker settings used in production
func DefaultCircuitBreakerConfig(name string) CircuitBreakerConfig {
	return CircuitBreakerConfig{
		Name:             name,
		MaxRequests:      5,
		Interval:         30 * time.Second,
		Timeout:          60 * time.Second,
		FailureThreshold: 0.8,
		MinRequests:      5,
	}
}

// Store is the shared Redis access layer for the repositories
type Store struct {
	client  *goredis.Client
	breaker *gobreaker.CircuitBreaker
	prefix  string
	metrics *observability.Metrics
	logger  *zap.Logger
}

// NewStore wraps client with a circuit breaker. Keys are namespaced by prefix.
func NewStore(client *goredis.Client, prefix string, cfg CircuitBreakerConfig, metrics *observability.Metrics, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < cfg.MinRequests {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return failureRatio >= cfg.FailureThreshold
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Warn("Circuit breaker state changed",
				zap.String("name", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, goredis.Nil)
		},
	})

	return &Store{
		client:  client,
		breaker: breaker,
		prefix:  prefix,
		metrics: metrics,
		logger:  logger,
	}
}

// Ping checks that the server answers
func (s *Store) Ping(ctx context.Context) error {
	return s.do(ctx, "ping", func(ctx context.Context) error {
		return s.client.Ping(ctx).Err()
	})
}

// Close closes the underlying client
func (s *Store) Close() error {
	return s.client.Close()
}

func (s *Store) key(parts ...string) string {
	k := s.prefix
	for _, p := range parts {
		k += ":" + p
	}
	return k
}

// do runs fn under the circuit breaker and classifies its error
func (s *Store) do(ctx context.Context, operation string, fn func(ctx context.Context) error) error {
	_, err := s.breaker.Execute(func() (interface{}, error) {
		return nil, fn(ctx)
	})
	if s.metrics != nil {
		s.metrics.RecordStoreOperation("redis", operation, err)
	}

	switch {
	case err == nil:
		return nil
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		s.logger.Warn("Redis call rejected by circuit breaker",
			zap.String("operation", operation),
			zap.Error(err),
		)
		return pkgerrors.NewUnavailableError("redis", err)
	case errors.Is(err, goredis.Nil):
		return err
	default:
		s.logger.Error("Redis call failed",
			zap.String("operation", operation),
			zap.Error(err),
		)
		return pkgerrors.NewDatabaseError(operation, fmt.Errorf("redis: %w", err))
	}
}

// score maps a time onto a sorted-set score with microsecond precision
func score(t time.Time) float64 {
	return float64(t.UnixMicro())
}

func fromScore(s float64) time.Time {
	return time.UnixMicro(int64(s)).UTC()
}
