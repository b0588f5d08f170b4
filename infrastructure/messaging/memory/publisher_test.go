package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"writecoach-backend/domain/events"
)

func TestPublisherRecordsInOrder(t *testing.T) {
	p := NewPublisher(nil)
	ctx := context.Background()

	first := events.BaseEvent{AggregateID: "a1", EventType: events.TypeTextAnalyzed, Timestamp: time.Unix(0, 0), Version: 1}
	second := events.BaseEvent{AggregateID: "a2", EventType: events.TypeTextAnalyzed, Timestamp: time.Unix(1, 0), Version: 1}

	require.NoError(t, p.Publish(ctx))
	require.NoError(t, p.Publish(ctx, first))
	require.NoError(t, p.Publish(ctx, second))

	got := p.Events()
	require.Len(t, got, 2)
	assert.Equal(t, "a1", got[0].GetAggregateID())
	assert.Equal(t, "a2", got[1].GetAggregateID())

	got[0] = nil
	assert.NotNil(t, p.Events()[0], "Events returns a copy")
}
