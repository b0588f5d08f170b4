package redis

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"writecoach-backend/application/ports"
	"writecoach-backend/domain/core/entities"
	pkgerrors "writecoach-backend/pkg/errors"
)

// AnalysisRepository stores analyses as JSON documents with a per-user
// index sorted by analysis time.
type AnalysisRepository struct {
	store *Store
}

var _ ports.AnalysisRepository = (*AnalysisRepository)(nil)

// NewAnalysisRepository creates an analysis repository on store
func NewAnalysisRepository(store *Store) *AnalysisRepository {
	return &AnalysisRepository{store: store}
}

// Save writes the document and its index entry atomically
func (r *AnalysisRepository) Save(ctx context.Context, analysis *entities.TextAnalysis) error {
	if analysis == nil {
		return pkgerrors.NewValidationError("analysis cannot be nil")
	}

	data, err := json.Marshal(analysis)
	if err != nil {
		return pkgerrors.NewInternalError("failed to encode analysis").WithCause(err)
	}

	id := analysis.ID.String()
	return r.store.do(ctx, "save_analysis", func(ctx context.Context) error {
		_, err := r.store.client.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
			pipe.Set(ctx, r.store.key("analysis", id), data, 0)
			pipe.ZAdd(ctx, r.store.key("analyses", analysis.UserID), goredis.Z{
				Score:  score(analysis.AnalyzedAt),
				Member: id,
			})
			return nil
		})
		return err
	})
}

// GetByID retrieves an analysis by its ID
func (r *AnalysisRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.TextAnalysis, error) {
	var data []byte
	err := r.store.do(ctx, "get_analysis", func(ctx context.Context) error {
		var err error
		data, err = r.store.client.Get(ctx, r.store.key("analysis", id.String())).Bytes()
		return err
	})
	if errors.Is(err, goredis.Nil) {
		return nil, pkgerrors.NewNotFoundError("analysis")
	}
	if err != nil {
		return nil, err
	}
	return decodeAnalysis(data)
}

// GetByUserID retrieves all analyses for a user, oldest first. Index
// entries whose document has gone are skipped.
func (r *AnalysisRepository) GetByUserID(ctx context.Context, userID string) ([]*entities.TextAnalysis, error) {
	var docs []interface{}
	err := r.store.do(ctx, "list_analyses", func(ctx context.Context) error {
		ids, err := r.store.client.ZRange(ctx, r.store.key("analyses", userID), 0, -1).Result()
		if err != nil || len(ids) == 0 {
			return err
		}
		keys := make([]string, len(ids))
		for i, id := range ids {
			keys[i] = r.store.key("analysis", id)
		}
		docs, err = r.store.client.MGet(ctx, keys...).Result()
		return err
	})
	if err != nil {
		return nil, err
	}

	analyses := make([]*entities.TextAnalysis, 0, len(docs))
	for _, doc := range docs {
		s, ok := doc.(string)
		if !ok {
			continue
		}
		a, err := decodeAnalysis([]byte(s))
		if err != nil {
			return nil, err
		}
		analyses = append(analyses, a)
	}
	return analyses, nil
}

func decodeAnalysis(data []byte) (*entities.TextAnalysis, error) {
	var a entities.TextAnalysis
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, pkgerrors.NewInternalError("failed to decode analysis").WithCause(err)
	}
	return &a, nil
}
