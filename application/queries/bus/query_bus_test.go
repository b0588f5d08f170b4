package bus

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type countQuery struct {
	UserID string
}

func (q countQuery) Validate() error {
	if q.UserID == "" {
		return errors.New("user id is required")
	}
	return nil
}

type unknownQuery struct{}

func (unknownQuery) Validate() error { return nil }

func TestQueryBusAsk(t *testing.T) {
	b := NewQueryBus(LoggingMiddleware(zap.NewNop()))
	require.NoError(t, b.Register(countQuery{}, QueryHandlerFunc(func(ctx context.Context, q Query) (interface{}, error) {
		return len(q.(countQuery).UserID), nil
	})))

	n, err := AskAs[int](context.Background(), b, countQuery{UserID: "abc"})
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	_, err = AskAs[string](context.Background(), b, countQuery{UserID: "abc"})
	assert.ErrorIs(t, err, ErrUnexpectedResult)

	_, err = b.Ask(context.Background(), countQuery{})
	assert.EqualError(t, err, "user id is required")

	_, err = b.Ask(context.Background(), unknownQuery{})
	assert.ErrorIs(t, err, ErrHandlerNotFound)

	err = b.Register(countQuery{}, QueryHandlerFunc(func(ctx context.Context, q Query) (interface{}, error) { return nil, nil }))
	assert.ErrorIs(t, err, ErrHandlerAlreadyExists)
}
