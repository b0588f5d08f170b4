// Package events defines the domain events raised by the analysis pipeline.
package events

import (
	"time"

	"writecoach-backend/domain/core/entities"
)

// Source identifies this service on event buses
const Source = "writecoach"

// Event types
const (
	TypeTextAnalyzed = "text.analyzed"
)

// DomainEvent is something that has happened to an aggregate
type DomainEvent interface {
	GetAggregateID() string
	GetEventType() string
	GetTimestamp() time.Time
	GetVersion() int
}

// BaseEvent provides common event fields
type BaseEvent struct {
	AggregateID string    `json:"aggregate_id"`
	EventType   string    `json:"event_type"`
	Timestamp   time.Time `json:"timestamp"`
	Version     int       `json:"version"`
}

func (e BaseEvent) GetAggregateID() string  { return e.AggregateID }
func (e BaseEvent) GetEventType() string    { return e.EventType }
func (e BaseEvent) GetTimestamp() time.Time { return e.Timestamp }
func (e BaseEvent) GetVersion() int         { return e.Version }

// TextAnalyzed is raised after an analysis has been stored
type TextAnalyzed struct {
	BaseEvent
	UserID     string            `json:"user_id"`
	TextID     string            `json:"text_id"`
	Reanalysis bool              `json:"reanalysis"`
	Counters   entities.Counters `json:"counters"`
}

// NewTextAnalyzed creates a TextAnalyzed event for a stored analysis.
// reanalysis is set when the analysis replaced an earlier one.
func NewTextAnalyzed(analysis *entities.TextAnalysis, reanalysis bool) TextAnalyzed {
	return TextAnalyzed{
		BaseEvent: BaseEvent{
			AggregateID: analysis.ID.String(),
			EventType:   TypeTextAnalyzed,
			Timestamp:   analysis.AnalyzedAt,
			Version:     1,
		},
		UserID:     analysis.UserID,
		TextID:     analysis.TextID,
		Reanalysis: reanalysis,
		Counters:   analysis.Counters(),
	}
}
