package dictionary

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/klauspost/compress/zstd"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"writecoach-backend/domain/dictionary"
	"writecoach-backend/pkg/observability"
)

var fixtureDir = filepath.Join("..", "..", "domain", "dictionary", "testdata")

func copyFixture(t *testing.T, dir, name string, compress bool) {
	t.Helper()

	data, err := os.ReadFile(filepath.Join(fixtureDir, name))
	require.NoError(t, err)

	target := filepath.Join(dir, "en_US"+filepath.Ext(name))
	if compress {
		encoder, err := zstd.NewWriter(nil)
		require.NoError(t, err)
		data = encoder.EncodeAll(data, nil)
		require.NoError(t, encoder.Close())
		target += ".zst"
	}
	require.NoError(t, os.WriteFile(target, data, 0o644))
}

func TestNewLoadFunc(t *testing.T) {
	tests := []struct {
		name       string
		compressed bool
	}{
		{"plain files", false},
		{"zstd files", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			copyFixture(t, dir, "en_test.aff", tt.compressed)
			copyFixture(t, dir, "en_test.dic", tt.compressed)

			metrics := observability.NewMetrics("test")
			provider := dictionary.NewProvider(NewLoadFunc(dir, "en_US", metrics, zap.NewNop()))

			dict, err := provider.Dictionary()
			require.NoError(t, err)
			assert.True(t, dict.Check("walked"))
			assert.False(t, dict.Check("wlked"))
			assert.Equal(t, 1, testutil.CollectAndCount(metrics.DictionaryLoad))
		})
	}
}

func TestResolvePrefersPlainFiles(t *testing.T) {
	dir := t.TempDir()
	copyFixture(t, dir, "en_test.aff", false)
	copyFixture(t, dir, "en_test.aff", true)
	copyFixture(t, dir, "en_test.dic", true)

	files, err := Resolve(dir, "en_US")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "en_US.aff"), files.Aff)
	assert.Equal(t, filepath.Join(dir, "en_US.dic.zst"), files.Dic)
}

func TestMissingDictionaryIsUnavailable(t *testing.T) {
	provider := dictionary.NewProvider(NewLoadFunc(t.TempDir(), "en_US", nil, zap.NewNop()))

	_, err := provider.Lexicon()
	require.Error(t, err)
	assert.True(t, errors.Is(err, dictionary.ErrDictionaryUnavailable))
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

// TestLoadSystemDictionary runs against a real Hunspell dictionary when
// DICTIONARY_DIR points at one, e.g. /usr/share/hunspell.
func TestLoadSystemDictionary(t *testing.T) {
	dir := os.Getenv("DICTIONARY_DIR")
	if dir == "" {
		t.Skip("DICTIONARY_DIR not set")
	}
	locale := os.Getenv("DICTIONARY_LOCALE")
	if locale == "" {
		locale = "en_US"
	}

	files, err := Resolve(dir, locale)
	require.NoError(t, err)
	dict, err := Load(files)
	require.NoError(t, err)

	for _, word := range []string{"hello", "houses", "walked", "Paris"} {
		assert.True(t, dict.Check(word), word)
	}
	assert.False(t, dict.Check("helo"))
	assert.Contains(t, dict.Suggest("teh", 5), "the")

	start := time.Now()
	dict.Suggest("qwzxqwzxqwzxqwzx", 3)
	assert.Less(t, time.Since(start), time.Second)
}
