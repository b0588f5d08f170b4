package ports

import (
	"context"
	"time"

	"github.com/google/uuid"

	"writecoach-backend/domain/core/entities"
	"writecoach-backend/domain/events"
	"writecoach-backend/domain/services"
)

// VocabularyRepository stores each user's personal vocabulary
type VocabularyRepository interface {
	// ListWords returns the user's vocabulary in the order it was added
	ListWords(ctx context.Context, userID string) ([]string, error)

	// AddWords appends words that are not yet in the vocabulary
	AddWords(ctx context.Context, userID string, words ...string) error

	// RemoveWord deletes a word; removing an unknown word is not an error
	RemoveWord(ctx context.Context, userID, word string) error

	// RecordUsage adds the counts to each word's times_used total. Counts
	// may be negative when a re-analysis found fewer uses.
	RecordUsage(ctx context.Context, userID string, usage []services.WordUsage) error

	// UsageCounts returns times_used per word
	UsageCounts(ctx context.Context, userID string) (map[string]int, error)
}

// ActivityRepository stores when users submitted texts
type ActivityRepository interface {
	// RecordActivity stores one submission time
	RecordActivity(ctx context.Context, userID string, at time.Time) error

	// ActivityTimestamps returns every submission time for the user
	ActivityTimestamps(ctx context.Context, userID string) ([]time.Time, error)
}

// AnalysisRepository stores text analyses
type AnalysisRepository interface {
	// Save persists an analysis (create or replace)
	Save(ctx context.Context, analysis *entities.TextAnalysis) error

	// GetByID retrieves an analysis by its ID
	GetByID(ctx context.Context, id uuid.UUID) (*entities.TextAnalysis, error)

	// GetByUserID retrieves all analyses for a user, oldest first
	GetByUserID(ctx context.Context, userID string) ([]*entities.TextAnalysis, error)
}

// EventPublisher delivers domain events to subscribers outside the process
type EventPublisher interface {
	Publish(ctx context.Context, batch ...events.DomainEvent) error
}

// Clock supplies the current time
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock
type SystemClock struct{}

// Now implements Clock
func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

// FixedClock always returns the same instant
type FixedClock time.Time

// Now implements Clock
func (c FixedClock) Now() time.Time {
	return time.Time(c)
}
