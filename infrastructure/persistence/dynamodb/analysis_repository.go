package dynamodb

import (
	"context"
	"encoding/json"
	"sort"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"

	"writecoach-backend/application/ports"
	"writecoach-backend/domain/core/entities"
	pkgerrors "writecoach-backend/pkg/errors"
)

const analysisPrefix = "ANALYSIS#"

// analysisItem holds the analysis as a JSON document next to the
// attributes used for lookups
type analysisItem struct {
	PK         string `dynamodbav:"PK"`
	SK         string `dynamodbav:"SK"`
	GSI1PK     string `dynamodbav:"GSI1PK"`
	GSI1SK     string `dynamodbav:"GSI1SK"`
	EntityType string `dynamodbav:"EntityType"`
	AnalysisID string `dynamodbav:"AnalysisID"`
	UserID     string `dynamodbav:"UserID"`
	AnalyzedAt string `dynamodbav:"AnalyzedAt"`
	Data       string `dynamodbav:"Data"`
}

// AnalysisRepository stores analyses under the user's partition and
// indexes them by ID in GSI1.
type AnalysisRepository struct {
	store *Store
}

var _ ports.AnalysisRepository = (*AnalysisRepository)(nil)

// NewAnalysisRepository creates an analysis repository on store
func NewAnalysisRepository(store *Store) *AnalysisRepository {
	return &AnalysisRepository{store: store}
}

func toAnalysisItem(analysis *entities.TextAnalysis) (analysisItem, error) {
	data, err := json.Marshal(analysis)
	if err != nil {
		return analysisItem{}, pkgerrors.NewInternalError("failed to encode analysis").WithCause(err)
	}

	id := analysis.ID.String()
	return analysisItem{
		PK:         userPK(analysis.UserID),
		SK:         analysisPrefix + id,
		GSI1PK:     analysisPrefix + id,
		GSI1SK:     metadataSK,
		EntityType: "ANALYSIS",
		AnalysisID: id,
		UserID:     analysis.UserID,
		AnalyzedAt: formatTime(analysis.AnalyzedAt),
		Data:       string(data),
	}, nil
}

func (item analysisItem) analysis() (*entities.TextAnalysis, error) {
	var a entities.TextAnalysis
	if err := json.Unmarshal([]byte(item.Data), &a); err != nil {
		return nil, pkgerrors.NewInternalError("failed to decode analysis").WithCause(err)
	}
	return &a, nil
}

// Save writes the analysis, replacing any with the same ID
func (r *AnalysisRepository) Save(ctx context.Context, analysis *entities.TextAnalysis) error {
	if analysis == nil {
		return pkgerrors.NewValidationError("analysis cannot be nil")
	}

	item, err := toAnalysisItem(analysis)
	if err != nil {
		return err
	}
	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return pkgerrors.NewInternalError("failed to marshal analysis").WithCause(err)
	}

	return r.store.do(ctx, "save_analysis", func(ctx context.Context) error {
		_, err := r.store.client.PutItem(ctx, &dynamodb.PutItemInput{
			TableName: aws.String(r.store.table),
			Item:      av,
		})
		return err
	})
}

// GetByID retrieves an analysis through GSI1
func (r *AnalysisRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.TextAnalysis, error) {
	cond := expression.Key(attrGSI1PK).Equal(expression.Value(analysisPrefix + id.String())).
		And(expression.Key(attrGSI1SK).Equal(expression.Value(metadataSK)))

	var found *analysisItem
	err := r.store.do(ctx, "get_analysis", func(ctx context.Context) error {
		return r.store.query(ctx, indexGSI1, cond, func(page []map[string]types.AttributeValue) error {
			if found != nil || len(page) == 0 {
				return nil
			}
			var item analysisItem
			if err := attributevalue.UnmarshalMap(page[0], &item); err != nil {
				return err
			}
			found = &item
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	if found == nil {
		return nil, pkgerrors.NewNotFoundError("analysis")
	}
	return found.analysis()
}

// GetByUserID retrieves all analyses for a user, oldest first
func (r *AnalysisRepository) GetByUserID(ctx context.Context, userID string) ([]*entities.TextAnalysis, error) {
	var items []analysisItem
	err := r.store.do(ctx, "list_analyses", func(ctx context.Context) error {
		return r.store.query(ctx, "", userItems(userID, analysisPrefix), func(page []map[string]types.AttributeValue) error {
			var batch []analysisItem
			if err := attributevalue.UnmarshalListOfMaps(page, &batch); err != nil {
				return err
			}
			items = append(items, batch...)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].AnalyzedAt == items[j].AnalyzedAt {
			return items[i].AnalysisID < items[j].AnalysisID
		}
		return items[i].AnalyzedAt < items[j].AnalyzedAt
	})

	analyses := make([]*entities.TextAnalysis, 0, len(items))
	for _, item := range items {
		a, err := item.analysis()
		if err != nil {
			return nil, err
		}
		analyses = append(analyses, a)
	}
	return analyses, nil
}
