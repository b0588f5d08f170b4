// Package dynamodb implements the repositories on a single DynamoDB table.
// Every item lives under the user's partition (PK = USER#<id>) and the sort
// key prefix tells the entity apart; analyses also carry a GSI1 entry so
// they can be fetched by ID alone.
package dynamodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"

	pkgerrors "writecoach-backend/pkg/errors"
	"writecoach-backend/pkg/observability"
)

// Key attributes and index names of the table
const (
	attrPK     = "PK"
	attrSK     = "SK"
	attrGSI1PK = "GSI1PK"
	attrGSI1SK = "GSI1SK"
	indexGSI1  = "GSI1"

	metadataSK = "METADATA"
)

// API is the part of the DynamoDB client the repositories use
type API interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	DescribeTable(ctx context.Context, params *dynamodb.DescribeTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error)
	CreateTable(ctx context.Context, params *dynamodb.CreateTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.CreateTableOutput, error)
}

// Store is the shared DynamoDB access layer for the repositories
type Store struct {
	client  API
	table   string
	metrics *observability.Metrics
	logger  *zap.Logger
}

// NewStore creates a store on the named table
func NewStore(client API, table string, metrics *observability.Metrics, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{client: client, table: table, metrics: metrics, logger: logger}
}

// Table returns the table name
func (s *Store) Table() string {
	return s.table
}

// EnsureTable creates the table with its GSI1 index when it does not exist
// and waits until it is active.
func (s *Store) EnsureTable(ctx context.Context) error {
	return s.do(ctx, "ensure_table", func(ctx context.Context) error {
		_, err := s.client.DescribeTable(ctx, &dynamodb.DescribeTableInput{TableName: aws.String(s.table)})
		if err == nil {
			return nil
		}
		var notFound *types.ResourceNotFoundException
		if !errors.As(err, &notFound) {
			return err
		}

		s.logger.Info("Creating DynamoDB table", zap.String("table", s.table))
		_, err = s.client.CreateTable(ctx, tableDefinition(s.table))
		if err != nil {
			var inUse *types.ResourceInUseException
			if !errors.As(err, &inUse) {
				return err
			}
		}

		waiter := dynamodb.NewTableExistsWaiter(s.client)
		return waiter.Wait(ctx, &dynamodb.DescribeTableInput{TableName: aws.String(s.table)}, 2*time.Minute)
	})
}

func tableDefinition(table string) *dynamodb.CreateTableInput {
	str := func(name string) types.AttributeDefinition {
		return types.AttributeDefinition{AttributeName: aws.String(name), AttributeType: types.ScalarAttributeTypeS}
	}
	key := func(hash, rng string) []types.KeySchemaElement {
		return []types.KeySchemaElement{
			{AttributeName: aws.String(hash), KeyType: types.KeyTypeHash},
			{AttributeName: aws.String(rng), KeyType: types.KeyTypeRange},
		}
	}

	return &dynamodb.CreateTableInput{
		TableName:            aws.String(table),
		BillingMode:          types.BillingModePayPerRequest,
		AttributeDefinitions: []types.AttributeDefinition{str(attrPK), str(attrSK), str(attrGSI1PK), str(attrGSI1SK)},
		KeySchema:            key(attrPK, attrSK),
		GlobalSecondaryIndexes: []types.GlobalSecondaryIndex{{
			IndexName:  aws.String(indexGSI1),
			KeySchema:  key(attrGSI1PK, attrGSI1SK),
			Projection: &types.Projection{ProjectionType: types.ProjectionTypeAll},
		}},
	}
}

// do runs fn and classifies its error
func (s *Store) do(ctx context.Context, operation string, fn func(ctx context.Context) error) error {
	err := fn(ctx)
	if s.metrics != nil {
		s.metrics.RecordStoreOperation("dynamodb", operation, err)
	}
	if err == nil {
		return nil
	}

	s.logger.Error("DynamoDB call failed",
		zap.String("operation", operation),
		zap.String("table", s.table),
		zap.Error(err),
	)

	var throttled *types.ProvisionedThroughputExceededException
	if errors.As(err, &throttled) {
		return pkgerrors.NewUnavailableError("dynamodb", err)
	}
	return pkgerrors.NewDatabaseError(operation, fmt.Errorf("dynamodb: %w", err))
}

// query runs a key-condition query through every page and hands each page's
// items to fn
func (s *Store) query(ctx context.Context, index string, cond expression.KeyConditionBuilder, fn func([]map[string]types.AttributeValue) error) error {
	expr, err := expression.NewBuilder().WithKeyCondition(cond).Build()
	if err != nil {
		return fmt.Errorf("build key condition: %w", err)
	}

	input := &dynamodb.QueryInput{
		TableName:                 aws.String(s.table),
		KeyConditionExpression:    expr.KeyCondition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	}
	if index != "" {
		input.IndexName = aws.String(index)
	}

	paginator := dynamodb.NewQueryPaginator(s.client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return err
		}
		if err := fn(page.Items); err != nil {
			return err
		}
	}
	return nil
}

// userItems builds the key condition for one entity type in a user's partition
func userItems(userID, skPrefix string) expression.KeyConditionBuilder {
	return expression.Key(attrPK).Equal(expression.Value(userPK(userID))).
		And(expression.Key(attrSK).BeginsWith(skPrefix))
}

func itemKey(pk, sk string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		attrPK: &types.AttributeValueMemberS{Value: pk},
		attrSK: &types.AttributeValueMemberS{Value: sk},
	}
}

func userPK(userID string) string {
	return "USER#" + userID
}

func isConditionFailed(err error) bool {
	var ccf *types.ConditionalCheckFailedException
	return errors.As(err, &ccf)
}

// timeLayout is fixed width so sort keys order chronologically
const timeLayout = "2006-01-02T15:04:05.000000000Z"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	return time.Parse(timeLayout, s)
}
