package observability

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTraceFunctionPropagatesErrors(t *testing.T) {
	tracer := NewTracer("writecoach")
	boom := errors.New("boom")

	err := tracer.TraceFunction(context.Background(), "spellcheck", func(ctx context.Context) error {
		return boom
	})
	assert.ErrorIs(t, err, boom)

	called := false
	err = tracer.TraceFunction(context.Background(), "connectors", func(ctx context.Context) error {
		called = true
		return nil
	})
	assert.NoError(t, err)
	assert.True(t, called)
}

func TestNilTracerProviderShutdown(t *testing.T) {
	var tp *TracerProvider
	assert.NoError(t, tp.Shutdown(context.Background()))
}
