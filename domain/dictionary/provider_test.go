package dictionary

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProviderLoadsOnce(t *testing.T) {
	var calls atomic.Int32
	provider := NewProvider(func() (*Dictionary, error) {
		calls.Add(1)
		return Parse([]byte("SET UTF-8\n"), []byte("1\nword\n"))
	})

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			lex, err := provider.Lexicon()
			assert.NoError(t, err)
			assert.True(t, lex.Check("word"))
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
}

func TestProviderFailureIsSticky(t *testing.T) {
	cause := errors.New("en_US.aff: no such file")
	var calls int
	provider := NewProvider(func() (*Dictionary, error) {
		calls++
		return nil, cause
	})

	_, err := provider.Lexicon()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDictionaryUnavailable)
	assert.ErrorIs(t, err, cause)

	_, err = provider.Dictionary()
	assert.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestProviderWithoutLoader(t *testing.T) {
	_, err := NewProvider(nil).Lexicon()
	assert.ErrorIs(t, err, ErrDictionaryUnavailable)
}
