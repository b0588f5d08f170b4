package redis

import (
	"context"
	"strconv"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"writecoach-backend/application/ports"
	"writecoach-backend/domain/services"
)

// VocabularyRepository stores each vocabulary in a sorted set scored by
// insertion time, and usage totals in a hash.
type VocabularyRepository struct {
	store *Store
	now   func() time.Time
}

var _ ports.VocabularyRepository = (*VocabularyRepository)(nil)

// NewVocabularyRepository creates a vocabulary repository on store
func NewVocabularyRepository(store *Store) *VocabularyRepository {
	return &VocabularyRepository{store: store, now: time.Now}
}

// ListWords returns the user's words in insertion order
func (r *VocabularyRepository) ListWords(ctx context.Context, userID string) ([]string, error) {
	var words []string
	err := r.store.do(ctx, "list_words", func(ctx context.Context) error {
		var err error
		words, err = r.store.client.ZRange(ctx, r.store.key("vocab", userID), 0, -1).Result()
		return err
	})
	if err != nil {
		return nil, err
	}
	return words, nil
}

// AddWords appends words; ZADD NX keeps the original position of existing ones
func (r *VocabularyRepository) AddWords(ctx context.Context, userID string, words ...string) error {
	if len(words) == 0 {
		return nil
	}

	base := score(r.now())
	members := make([]goredis.Z, 0, len(words))
	for i, w := range words {
		members = append(members, goredis.Z{Score: base + float64(i), Member: w})
	}

	return r.store.do(ctx, "add_words", func(ctx context.Context) error {
		return r.store.client.ZAddNX(ctx, r.store.key("vocab", userID), members...).Err()
	})
}

// RemoveWord deletes a word and its usage total
func (r *VocabularyRepository) RemoveWord(ctx context.Context, userID, word string) error {
	return r.store.do(ctx, "remove_word", func(ctx context.Context) error {
		_, err := r.store.client.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
			pipe.ZRem(ctx, r.store.key("vocab", userID), word)
			pipe.HDel(ctx, r.store.key("usage", userID), word)
			return nil
		})
		return err
	})
}

// RecordUsage increments each word's times_used total
func (r *VocabularyRepository) RecordUsage(ctx context.Context, userID string, usage []services.WordUsage) error {
	if len(usage) == 0 {
		return nil
	}

	return r.store.do(ctx, "record_usage", func(ctx context.Context) error {
		_, err := r.store.client.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
			key := r.store.key("usage", userID)
			for _, u := range usage {
				pipe.HIncrBy(ctx, key, u.Word, int64(u.Count))
			}
			return nil
		})
		return err
	})
}

// UsageCounts returns times_used per word
func (r *VocabularyRepository) UsageCounts(ctx context.Context, userID string) (map[string]int, error) {
	counts := make(map[string]int)
	err := r.store.do(ctx, "usage_counts", func(ctx context.Context) error {
		raw, err := r.store.client.HGetAll(ctx, r.store.key("usage", userID)).Result()
		if err != nil {
			return err
		}
		for w, v := range raw {
			n, err := strconv.Atoi(v)
			if err != nil {
				return err
			}
			counts[w] = n
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return counts, nil
}
