// Package memory keeps published domain events in process. It is the
// publisher used when no event bus is configured, and in tests.
package memory

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"writecoach-backend/application/ports"
	"writecoach-backend/domain/events"
)

// Publisher records every event it is given
type Publisher struct {
	mu     sync.RWMutex
	events []events.DomainEvent
	logger *zap.Logger
}

var _ ports.EventPublisher = (*Publisher)(nil)

// NewPublisher creates an empty publisher
func NewPublisher(logger *zap.Logger) *Publisher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Publisher{logger: logger}
}

// Publish appends the batch to the recorded events
func (p *Publisher) Publish(ctx context.Context, batch ...events.DomainEvent) error {
	if len(batch) == 0 {
		return nil
	}

	p.mu.Lock()
	p.events = append(p.events, batch...)
	p.mu.Unlock()

	for _, event := range batch {
		p.logger.Debug("Event published",
			zap.String("eventType", event.GetEventType()),
			zap.String("aggregateID", event.GetAggregateID()),
		)
	}
	return nil
}

// Events returns a copy of the recorded events in publication order
func (p *Publisher) Events() []events.DomainEvent {
	p.mu.RLock()
	defer p.mu.RUnlock()

	out := make([]events.DomainEvent, len(p.events))
	copy(out, p.events)
	return out
}
