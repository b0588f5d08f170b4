package services

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"writecoach-backend/domain/dictionary"
)

func testDictionarySource(t *testing.T) *dictionary.Provider {
	t.Helper()
	return dictionary.NewProvider(func() (*dictionary.Dictionary, error) {
		aff, err := os.ReadFile(filepath.Join("..", "dictionary", "testdata", "en_test.aff"))
		if err != nil {
			return nil, err
		}
		dic, err := os.ReadFile(filepath.Join("..", "dictionary", "testdata", "en_test.dic"))
		if err != nil {
			return nil, err
		}
		return dictionary.Parse(aff, dic)
	})
}

func TestCheckSpelling(t *testing.T) {
	checker := NewSpellChecker(testDictionarySource(t), 3)

	tests := []struct {
		name       string
		text       string
		vocabulary []string
		wantWords  []string
	}{
		{"numbers are never errors", "I wrote 42 words", nil, []string{}},
		{"misspellings in order", "I wrote tehse wrods", nil, []string{"tehse", "wrods"}},
		{"vocabulary word excluded", "Serendipity is ubiquitous", []string{"serendipity"}, []string{}},
		{"vocabulary match ignores case", "SERENDIPITY", []string{"Serendipity"}, []string{}},
		{"vocabulary phrase blanked", "The ad hoc problem was ubiquitous", []string{"ad hoc"}, []string{}},
		{"split phrase still checked", "The ad problem hoc", []string{"ad hoc"}, []string{"ad", "hoc"}},
		{"quoted phrase blanked", `They wrote "ad hoc" twice`, []string{"ad hoc"}, []string{"twice"}},
		{"single-quoted phrase blanked", "They wrote 'ad hoc' twice", []string{"ad hoc"}, []string{"twice"}},
		{"word-internal apostrophe does not delimit", "they wrote o'ad hoc", []string{"ad hoc"}, []string{"o'ad", "hoc"}},
		{"vocabulary entry with digits", "They wrote gr8 problems", []string{"gr8"}, []string{}},
		{"vocabulary abbreviation with dots", "e.g. the cat", []string{"e.g."}, []string{}},
		{"hyphenated vocabulary phrase", "a state-of-the-art dog", []string{"state-of-the-art"}, []string{}},
		{"hyphenated tokens skipped", "a well-mannered dog", nil, []string{}},
		{"original casing kept", "Helo there", nil, []string{"Helo", "there"}},
		{"curly apostrophe normalized", "the dog’s problem", nil, []string{}},
		{"punctuation stripped", "hello, dog! (cat)", nil, []string{}},
		{"accented letters kept", "café", nil, []string{"café"}},
		{"multiplication sign is not a letter", "5×5", nil, []string{}},
		{"empty text", "   ", nil, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := checker.CheckSpelling(tt.text, tt.vocabulary)
			require.NoError(t, err)

			assert.Equal(t, tt.wantWords, result.MisspelledWords)
			assert.Equal(t, len(tt.wantWords), result.ErrorCount)
			require.Len(t, result.Errors, result.ErrorCount)
			for i, spellingErr := range result.Errors {
				assert.Equal(t, result.MisspelledWords[i], spellingErr.Word)
				assert.NotNil(t, spellingErr.Suggestions)
				assert.LessOrEqual(t, len(spellingErr.Suggestions), 3)
			}
		})
	}
}

func TestCheckSpellingSuggestions(t *testing.T) {
	checker := NewSpellChecker(testDictionarySource(t), 3)

	result, err := checker.CheckSpelling("Helo, I wrote wrods", nil)
	require.NoError(t, err)
	require.Equal(t, 2, result.ErrorCount)

	assert.Equal(t, "Helo", result.Errors[0].Word)
	assert.Contains(t, result.Errors[0].Suggestions, "Hello")
	assert.Contains(t, result.Errors[1].Suggestions, "words")
}

func TestCheckSpellingIsIdempotent(t *testing.T) {
	checker := NewSpellChecker(testDictionarySource(t), 3)
	text := "Teh dog was hapy, becuase the cat was ubiquitous."

	first, err := checker.CheckSpelling(text, []string{"becuase"})
	require.NoError(t, err)
	second, err := checker.CheckSpelling(text, []string{"becuase"})
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, []string{"Teh", "hapy"}, first.MisspelledWords)
}

func TestCheckSpellingEveryVocabularyWordPasses(t *testing.T) {
	checker := NewSpellChecker(testDictionarySource(t), 3)

	for _, word := range []string{"zeitgeist", "Schadenfreude", "déjà", "o'clock", "xyzzy.", "gr8", "e.g.", "zyx2", "C++", "ad hoc"} {
		result, err := checker.CheckSpelling(word, []string{word})
		require.NoError(t, err)
		assert.Zero(t, result.ErrorCount, word)
	}
}

type failingSource struct{ err error }

func (f failingSource) Lexicon() (dictionary.Lexicon, error) {
	return nil, f.err
}

func TestCheckSpellingDictionaryUnavailable(t *testing.T) {
	cause := errors.New("missing en_US.dic")
	checker := NewSpellChecker(failingSource{err: cause}, 3)

	_, err := checker.CheckSpelling("anything", nil)
	assert.ErrorIs(t, err, cause)
}

type stubLexicon struct {
	known map[string]bool
}

func (s stubLexicon) Check(word string) bool { return s.known[word] }

func (s stubLexicon) Suggest(word string, limit int) []string {
	all := []string{"one", "two", "three", "four", "five"}
	if limit < len(all) {
		return all[:limit]
	}
	return all
}

type stubSource struct{ lexicon dictionary.Lexicon }

func (s stubSource) Lexicon() (dictionary.Lexicon, error) { return s.lexicon, nil }

func TestCheckSpellingCapsSuggestions(t *testing.T) {
	checker := NewSpellChecker(stubSource{lexicon: stubLexicon{}}, 3)

	result, err := checker.CheckSpelling("xyzzy", nil)
	require.NoError(t, err)
	require.Equal(t, 1, result.ErrorCount)
	assert.Equal(t, []string{"one", "two", "three"}, result.Errors[0].Suggestions)
}
