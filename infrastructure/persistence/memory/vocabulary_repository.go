// Package memory provides in-process repositories, used by tests and by
// the CLI when no Redis address is configured.
package memory

import (
	"context"
	"sync"

	"writecoach-backend/application/ports"
	"writecoach-backend/domain/services"
)

// VocabularyRepository keeps vocabularies in memory
type VocabularyRepository struct {
	mu    sync.RWMutex
	words map[string][]string
	usage map[string]map[string]int
}

var _ ports.VocabularyRepository = (*VocabularyRepository)(nil)

// NewVocabularyRepository creates an empty repository
func NewVocabularyRepository() *VocabularyRepository {
	return &VocabularyRepository{
		words: make(map[string][]string),
		usage: make(map[string]map[string]int),
	}
}

// ListWords returns a copy of the user's words in insertion order
func (r *VocabularyRepository) ListWords(ctx context.Context, userID string) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	words := r.words[userID]
	out := make([]string, len(words))
	copy(out, words)
	return out, nil
}

// AddWords appends the words the user does not have yet
func (r *VocabularyRepository) AddWords(ctx context.Context, userID string, words ...string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing := r.words[userID]
	for _, w := range words {
		if !contains(existing, w) {
			existing = append(existing, w)
		}
	}
	r.words[userID] = existing
	return nil
}

// RemoveWord deletes a word and its usage total
func (r *VocabularyRepository) RemoveWord(ctx context.Context, userID, word string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing := r.words[userID]
	for i, w := range existing {
		if w == word {
			r.words[userID] = append(existing[:i:i], existing[i+1:]...)
			break
		}
	}
	delete(r.usage[userID], word)
	return nil
}

// RecordUsage adds to each word's times_used total
func (r *VocabularyRepository) RecordUsage(ctx context.Context, userID string, usage []services.WordUsage) error {
	if len(usage) == 0 {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	counts, ok := r.usage[userID]
	if !ok {
		counts = make(map[string]int)
		r.usage[userID] = counts
	}
	for _, u := range usage {
		counts[u.Word] += u.Count
	}
	return nil
}

// UsageCounts returns a copy of the user's usage totals
func (r *VocabularyRepository) UsageCounts(ctx context.Context, userID string) (map[string]int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]int, len(r.usage[userID]))
	for w, n := range r.usage[userID] {
		out[w] = n
	}
	return out, nil
}

func contains(words []string, word string) bool {
	for _, w := range words {
		if w == word {
			return true
		}
	}
	return false
}
