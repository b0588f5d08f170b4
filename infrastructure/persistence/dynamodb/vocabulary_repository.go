package dynamodb

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"writecoach-backend/application/ports"
	"writecoach-backend/domain/services"
)

const vocabPrefix = "VOCAB#"

// vocabItem is one vocabulary entry. TimesUsed is absent until the word
// has been counted.
type vocabItem struct {
	PK         string `dynamodbav:"PK"`
	SK         string `dynamodbav:"SK"`
	EntityType string `dynamodbav:"EntityType"`
	Word       string `dynamodbav:"Word"`
	Seq        int64  `dynamodbav:"Seq"`
	TimesUsed  *int   `dynamodbav:"TimesUsed,omitempty"`
}

// VocabularyRepository stores vocabulary entries as items ordered by an
// insertion sequence, with the usage total on the same item.
type VocabularyRepository struct {
	store *Store
	now   func() time.Time
}

var _ ports.VocabularyRepository = (*VocabularyRepository)(nil)

// NewVocabularyRepository creates a vocabulary repository on store
func NewVocabularyRepository(store *Store) *VocabularyRepository {
	return &VocabularyRepository{store: store, now: time.Now}
}

func vocabSK(word string) string {
	return vocabPrefix + word
}

// ListWords returns the user's words in insertion order
func (r *VocabularyRepository) ListWords(ctx context.Context, userID string) ([]string, error) {
	items, err := r.items(ctx, "list_words", userID)
	if err != nil {
		return nil, err
	}
	words := make([]string, len(items))
	for i, item := range items {
		words[i] = item.Word
	}
	return words, nil
}

// AddWords appends words; existing entries keep their position and total
func (r *VocabularyRepository) AddWords(ctx context.Context, userID string, words ...string) error {
	if len(words) == 0 {
		return nil
	}

	expr, err := expression.NewBuilder().
		WithCondition(expression.AttributeNotExists(expression.Name(attrPK))).
		Build()
	if err != nil {
		return fmt.Errorf("build condition: %w", err)
	}

	base := r.now().UnixMicro()
	return r.store.do(ctx, "add_words", func(ctx context.Context) error {
		for i, w := range words {
			av, err := attributevalue.MarshalMap(vocabItem{
				PK:         userPK(userID),
				SK:         vocabSK(w),
				EntityType: "VOCAB",
				Word:       w,
				Seq:        base + int64(i),
			})
			if err != nil {
				return err
			}

			_, err = r.store.client.PutItem(ctx, &dynamodb.PutItemInput{
				TableName:                aws.String(r.store.table),
				Item:                     av,
				ConditionExpression:      expr.Condition(),
				ExpressionAttributeNames: expr.Names(),
			})
			if err != nil && !isConditionFailed(err) {
				return err
			}
		}
		return nil
	})
}

// RemoveWord deletes a word together with its usage total
func (r *VocabularyRepository) RemoveWord(ctx context.Context, userID, word string) error {
	return r.store.do(ctx, "remove_word", func(ctx context.Context) error {
		_, err := r.store.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
			TableName: aws.String(r.store.table),
			Key:       itemKey(userPK(userID), vocabSK(word)),
		})
		return err
	})
}

// RecordUsage adds to each word's times_used total. Words no longer in the
// vocabulary are skipped.
func (r *VocabularyRepository) RecordUsage(ctx context.Context, userID string, usage []services.WordUsage) error {
	if len(usage) == 0 {
		return nil
	}

	return r.store.do(ctx, "record_usage", func(ctx context.Context) error {
		for _, u := range usage {
			expr, err := expression.NewBuilder().
				WithUpdate(expression.Add(expression.Name("TimesUsed"), expression.Value(u.Count))).
				WithCondition(expression.AttributeExists(expression.Name(attrPK))).
				Build()
			if err != nil {
				return err
			}

			_, err = r.store.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
				TableName:                 aws.String(r.store.table),
				Key:                       itemKey(userPK(userID), vocabSK(u.Word)),
				UpdateExpression:          expr.Update(),
				ConditionExpression:       expr.Condition(),
				ExpressionAttributeNames:  expr.Names(),
				ExpressionAttributeValues: expr.Values(),
			})
			if err != nil && !isConditionFailed(err) {
				return err
			}
		}
		return nil
	})
}

// UsageCounts returns times_used for every word that has been counted
func (r *VocabularyRepository) UsageCounts(ctx context.Context, userID string) (map[string]int, error) {
	items, err := r.items(ctx, "usage_counts", userID)
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int)
	for _, item := range items {
		if item.TimesUsed != nil {
			counts[item.Word] = *item.TimesUsed
		}
	}
	return counts, nil
}

// items loads the user's vocabulary items in insertion order
func (r *VocabularyRepository) items(ctx context.Context, operation, userID string) ([]vocabItem, error) {
	var items []vocabItem
	err := r.store.do(ctx, operation, func(ctx context.Context) error {
		return r.store.query(ctx, "", userItems(userID, vocabPrefix), func(page []map[string]types.AttributeValue) error {
			var batch []vocabItem
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

	sortVocabItems(items)
	return items, nil
}

func sortVocabItems(items []vocabItem) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Seq == items[j].Seq {
			return items[i].Word < items[j].Word
		}
		return items[i].Seq < items[j].Seq
	})
}
