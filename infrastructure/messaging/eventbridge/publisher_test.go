package eventbridge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"writecoach-backend/domain/events"
)

type fakeClient struct {
	calls []*eventbridge.PutEventsInput
	fail  map[int]bool
	err   error
}

func (f *fakeClient) PutEvents(ctx context.Context, params *eventbridge.PutEventsInput, optFns ...func(*eventbridge.Options)) (*eventbridge.PutEventsOutput, error) {
	f.calls = append(f.calls, params)
	if f.err != nil {
		return nil, f.err
	}
	out := &eventbridge.PutEventsOutput{}
	for i := range params.Entries {
		if f.fail[i] {
			out.FailedEntryCount++
			out.Entries = append(out.Entries, types.PutEventsResultEntry{
				ErrorCode:    aws.String("InternalFailure"),
				ErrorMessage: aws.String("try again"),
			})
			continue
		}
		out.Entries = append(out.Entries, types.PutEventsResultEntry{EventId: aws.String(fmt.Sprint(i))})
	}
	return out, nil
}

func testEvent(id string) events.DomainEvent {
	return events.TextAnalyzed{
		BaseEvent: events.BaseEvent{
			AggregateID: id,
			EventType:   events.TypeTextAnalyzed,
			Timestamp:   time.Date(2024, 3, 10, 18, 30, 0, 0, time.UTC),
			Version:     1,
		},
		UserID: "u1",
	}
}

func TestPublishBuildsEntries(t *testing.T) {
	client := &fakeClient{}
	p := NewPublisher(client, "writing", zap.NewNop())

	require.NoError(t, p.Publish(context.Background(), testEvent("a1")))
	require.Len(t, client.calls, 1)
	require.Len(t, client.calls[0].Entries, 1)

	entry := client.calls[0].Entries[0]
	assert.Equal(t, "writing", aws.ToString(entry.EventBusName))
	assert.Equal(t, events.Source, aws.ToString(entry.Source))
	assert.Equal(t, events.TypeTextAnalyzed, aws.ToString(entry.DetailType))
	assert.Equal(t, []string{"writecoach:analysis/a1"}, entry.Resources)

	var detail map[string]any
	require.NoError(t, json.Unmarshal([]byte(aws.ToString(entry.Detail)), &detail))
	assert.Equal(t, "a1", detail["aggregate_id"])
	assert.Equal(t, "u1", detail["user_id"])
}

func TestPublishSplitsIntoBatchesOfTen(t *testing.T) {
	client := &fakeClient{}
	p := NewPublisher(client, "writing", zap.NewNop())

	batch := make([]events.DomainEvent, 23)
	for i := range batch {
		batch[i] = testEvent(fmt.Sprintf("a%d", i))
	}
	require.NoError(t, p.Publish(context.Background(), batch...))

	require.Len(t, client.calls, 3)
	assert.Len(t, client.calls[0].Entries, 10)
	assert.Len(t, client.calls[1].Entries, 10)
	assert.Len(t, client.calls[2].Entries, 3)
}

func TestPublishErrors(t *testing.T) {
	t.Run("failed entries", func(t *testing.T) {
		client := &fakeClient{fail: map[int]bool{1: true}}
		p := NewPublisher(client, "writing", zap.NewNop())

		err := p.Publish(context.Background(), testEvent("a1"), testEvent("a2"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "1 of 2 events failed")
	})

	t.Run("client error", func(t *testing.T) {
		cause := errors.New("throttled")
		client := &fakeClient{err: cause}
		p := NewPublisher(client, "writing", zap.NewNop())

		err := p.Publish(context.Background(), testEvent("a1"))
		assert.ErrorIs(t, err, cause)
	})

	t.Run("nothing to send", func(t *testing.T) {
		client := &fakeClient{}
		p := NewPublisher(client, "writing", zap.NewNop())

		require.NoError(t, p.Publish(context.Background()))
		assert.Empty(t, client.calls)
	})
}
