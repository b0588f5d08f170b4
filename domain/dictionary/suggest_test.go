package dictionary

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuggest(t *testing.T) {
	dict := loadTestDictionary(t)

	t.Run("keyboard neighbour ranks first", func(t *testing.T) {
		got := dict.Suggest("helo", 3)
		require.NotEmpty(t, got)
		assert.Equal(t, "help", got[0])
		assert.Contains(t, got, "hello")
		assert.LessOrEqual(t, len(got), 3)
	})

	t.Run("casing restored", func(t *testing.T) {
		got := dict.Suggest("Helo", 3)
		assert.Contains(t, got, "Help")
		assert.Contains(t, got, "Hello")

		got = dict.Suggest("HELO", 3)
		assert.Contains(t, got, "HELLO")
	})

	t.Run("transposition", func(t *testing.T) {
		assert.Contains(t, dict.Suggest("wrods", 3), "words")
	})

	t.Run("replacement table", func(t *testing.T) {
		assert.Contains(t, dict.Suggest("fone", 3), "phone")
	})

	t.Run("proper noun keeps capital", func(t *testing.T) {
		assert.Contains(t, dict.Suggest("pari", 3), "Paris")
	})

	t.Run("run-together words", func(t *testing.T) {
		assert.Contains(t, dict.Suggest("dogcat", 3), "dog cat")
	})

	t.Run("nosuggest never offered", func(t *testing.T) {
		assert.NotContains(t, dict.Suggest("darm", 10), "darn")
	})

	t.Run("forbidden never offered", func(t *testing.T) {
		assert.NotContains(t, dict.Suggest("irregardles", 10), "irregardless")
	})

	t.Run("two edits away", func(t *testing.T) {
		assert.Contains(t, dict.Suggest("ubiqitos", 3), "ubiquitous")
	})

	t.Run("limit respected", func(t *testing.T) {
		assert.Len(t, dict.Suggest("cat", 1), 1)
		assert.Nil(t, dict.Suggest("cat", 0))
		assert.Nil(t, dict.Suggest("''", 3))
	})
}

func TestSuggestGarbageIsFast(t *testing.T) {
	dict := loadTestDictionary(t)

	for _, word := range []string{"qwzxqwzxqwzxqwzx", "qwzxqwzxqw", "zzzzzzzzzzzz"} {
		start := time.Now()
		got := dict.Suggest(word, 3)
		elapsed := time.Since(start)

		assert.Empty(t, got, word)
		assert.Less(t, elapsed, 250*time.Millisecond, word)
	}
}

func TestKnownEditsPrunesUnknownPrefixes(t *testing.T) {
	dict := loadTestDictionary(t)

	var got []string
	dict.knownEdits("wrods", func(candidate string) bool {
		got = append(got, candidate)
		return false
	})
	assert.Contains(t, got, "words")
	assert.Less(t, len(got), dict.edits("wrods").Cardinality())
}

func BenchmarkSuggest(b *testing.B) {
	dict := loadTestDictionary(b)

	for _, word := range []string{"helo", "ubiqitos", "qwzxqwzxqwzxqwzx"} {
		b.Run(word, func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				dict.Suggest(word, 3)
			}
		})
	}
}

func TestKeyboardPenalty(t *testing.T) {
	dict := loadTestDictionary(t)

	assert.Equal(t, 0, dict.keyboardPenalty("helo", "help"))
	assert.Equal(t, 1, dict.keyboardPenalty("helo", "hela"))
	assert.Equal(t, 1, dict.keyboardPenalty("helo", "hello"))
}

func TestDetectCasing(t *testing.T) {
	assert.Equal(t, caseLower, detectCasing("word"))
	assert.Equal(t, caseTitle, detectCasing("Word"))
	assert.Equal(t, caseUpper, detectCasing("WORD"))
	assert.Equal(t, caseMixed, detectCasing("iPod"))
	assert.Equal(t, "Word", toTitle("wORD"))
}
