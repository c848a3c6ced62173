package db

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/spacesedan/castflow/internal/clients"
	"github.com/spacesedan/castflow/internal/models"
)

const (
	ITEMS_TABLE_NAME        = "CanonicalItems"
	INTERACTIONS_TABLE_NAME = "CanonicalInteractions"
	USERS_TABLE_NAME        = "CanonicalUsers"
	ITEM_LABELS_TABLE_NAME  = "CanonicalItemLabels"
)

var dbClient *dynamodb.Client

func InitDynamoDB() {
	dbClient = clients.GetDynamoDBClient()
}

// StoreItems writes a canonical item batch.
func StoreItems(ctx context.Context, items []models.Item) error {
	return storeBatch(ctx, ITEMS_TABLE_NAME, items)
}

// StoreInteractions writes a canonical edge batch.
func StoreInteractions(ctx context.Context, interactions []models.Interaction) error {
	return storeBatch(ctx, INTERACTIONS_TABLE_NAME, interactions)
}

// StoreUsers writes a canonical user batch.
func StoreUsers(ctx context.Context, users []models.User) error {
	return storeBatch(ctx, USERS_TABLE_NAME, users)
}

// StoreItemLabels writes a label batch.
func StoreItemLabels(ctx context.Context, labels []models.ItemLabels) error {
	return storeBatch(ctx, ITEM_LABELS_TABLE_NAME, labels)
}

// storeBatch marshals records with attributevalue and writes them in chunks
// of 25, the BatchWriteItem limit.
func storeBatch[T any](ctx context.Context, table string, records []T) error {
	if dbClient == nil {
		dbClient = clients.GetDynamoDBClient()
	}

	const maxBatchSize = 25
	for i := 0; i < len(records); i += maxBatchSize {
		select {
		case <-ctx.Done():
			slog.Warn("[DynamoDB] context canceled")
			return ctx.Err()
		default:
			end := i + maxBatchSize
			if end > len(records) {
				end = len(records)
			}

			writeRequests := make([]types.WriteRequest, 0, maxBatchSize)
			for _, record := range records[i:end] {
				av, err := attributevalue.MarshalMap(record)
				if err != nil {
					return fmt.Errorf("[DynamoDB] Failed to marshal record for %s: %w", table, err)
				}
				writeRequests = append(writeRequests, types.WriteRequest{
					PutRequest: &types.PutRequest{Item: av},
				})
			}

			out, err := dbClient.BatchWriteItem(ctx, &dynamodb.BatchWriteItemInput{
				RequestItems: map[string][]types.WriteRequest{
					table: writeRequests,
				},
			})
			if err != nil {
				return fmt.Errorf("[DynamoDB] Failed to batch write to %s: %w", table, err)
			}
			if len(out.UnprocessedItems) > 0 {
				return fmt.Errorf("[DynamoDB] %d unprocessed items writing to %s", len(out.UnprocessedItems[table]), table)
			}
		}
	}

	slog.Info("[DynamoDB] Stored batch",
		slog.String("table", table),
		slog.Int("records", len(records)))
	return nil
}
