package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCountVocabularyUsage(t *testing.T) {
	counter := NewVocabularyCounter()

	tests := []struct {
		name       string
		text       string
		vocabulary []string
		wantTotal  int
		wantFound  []WordUsage
	}{
		{
			name:       "repeated word with clause punctuation",
			text:       "The problem was ubiquitous; ubiquitous everywhere.",
			vocabulary: []string{"ubiquitous"},
			wantTotal:  2,
			wantFound:  []WordUsage{{Word: "ubiquitous", Count: 2}},
		},
		{
			name:       "empty vocabulary",
			text:       "anything at all",
			vocabulary: nil,
			wantTotal:  0,
			wantFound:  []WordUsage{},
		},
		{
			name:       "original casing reported",
			text:       "UBIQUITOUS things",
			vocabulary: []string{"Ubiquitous"},
			wantTotal:  1,
			wantFound:  []WordUsage{{Word: "Ubiquitous", Count: 1}},
		},
		{
			name:       "substring does not count",
			text:       "ubiquitously",
			vocabulary: []string{"ubiquitous"},
			wantTotal:  0,
			wantFound:  []WordUsage{},
		},
		{
			name:       "entries counted independently",
			text:       "in the long run, we run",
			vocabulary: []string{"run", "long run", "absent"},
			wantTotal:  3,
			wantFound:  []WordUsage{{Word: "run", Count: 2}, {Word: "long run", Count: 1}},
		},
		{
			name:       "hyphen and apostrophe entries",
			text:       "A well-known fact: I don’t mind.",
			vocabulary: []string{"well-known", "don't"},
			wantTotal:  2,
			wantFound:  []WordUsage{{Word: "well-known", Count: 1}, {Word: "don't", Count: 1}},
		},
		{
			name:       "quotes are not boundaries",
			text:       `"ubiquitous"`,
			vocabulary: []string{"ubiquitous"},
			wantTotal:  0,
			wantFound:  []WordUsage{},
		},
		{
			name:       "blank entries ignored",
			text:       "some text",
			vocabulary: []string{"", "   "},
			wantTotal:  0,
			wantFound:  []WordUsage{},
		},
		{
			name:       "entry with regex metacharacters is literal",
			text:       "c++ (c.+) and c++!",
			vocabulary: []string{"c++", "c.+"},
			wantTotal:  2,
			wantFound:  []WordUsage{{Word: "c++", Count: 2}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := counter.CountVocabularyUsage(tt.text, tt.vocabulary)
			assert.Equal(t, tt.wantTotal, got.VocabWordsUsed)
			assert.Equal(t, tt.wantFound, got.WordsFound)

			sum := 0
			for _, usage := range got.WordsFound {
				assert.Positive(t, usage.Count)
				sum += usage.Count
			}
			assert.Equal(t, got.VocabWordsUsed, sum)
		})
	}
}
