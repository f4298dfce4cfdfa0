package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

func keyOf(id string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"id": &types.AttributeValueMemberS{Value: id},
	}
}

// insert writes a brand new item. The put is conditional on the key being
// free; a taken key means a generated id collided, so a fresh one is drawn.
func (s *Store) insert(ctx context.Context, table string, build func(id string) any) error {
	for i := 0; i < maxIDAttempts; i++ {
		item, err := attributevalue.MarshalMap(build(s.newID()))
		if err != nil {
			return fmt.Errorf("marshal %s item: %w", table, err)
		}

		_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
			TableName:           aws.String(table),
			Item:                item,
			ConditionExpression: aws.String("attribute_not_exists(id)"),
		})
		if err == nil {
			return nil
		}

		var conflict *types.ConditionalCheckFailedException
		if errors.As(err, &conflict) {
			continue
		}
		return fmt.Errorf("put item into %s: %w", table, err)
	}

	return ErrIDExhausted
}

func scanAll[T any](ctx context.Context, s *Store, table string) ([]T, error) {
	input := &dynamodb.ScanInput{TableName: aws.String(table)}
	if s.pageSize > 0 {
		input.Limit = aws.Int32(s.pageSize)
	}

	records := make([]T, 0)
	paginator := dynamodb.NewScanPaginator(s.client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", table, err)
		}

		var batch []T
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &batch); err != nil {
			return nil, fmt.Errorf("unmarshal %s items: %w", table, err)
		}
		records = append(records, batch...)
	}

	return records, nil
}

func getItem[T any](ctx context.Context, s *Store, table, id string) (*T, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: id is required", ErrInvalidRecord)
	}

	out, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(table),
		Key:       keyOf(id),
	})
	if err != nil {
		return nil, fmt.Errorf("get item from %s: %w", table, err)
	}
	if len(out.Item) == 0 {
		return nil, nil
	}

	var record T
	if err := attributevalue.UnmarshalMap(out.Item, &record); err != nil {
		return nil, fmt.Errorf("unmarshal %s item: %w", table, err)
	}
	return &record, nil
}

func (s *Store) deleteItem(ctx context.Context, table, id string) error {
	if id == "" {
		return fmt.Errorf("%w: id is required", ErrInvalidRecord)
	}

	_, err := s.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(table),
		Key:       keyOf(id),
	})
	if err != nil {
		return fmt.Errorf("delete item from %s: %w", table, err)
	}
	return nil
}
