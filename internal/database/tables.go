package database

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	provisionedReadCapacity  = 5
	provisionedWriteCapacity = 5
	tableActiveTimeout       = 2 * time.Minute
)

// EnsureTables creates the Users and Files tables with an "id" string hash
// key and fixed provisioned throughput. Tables that already exist are left
// untouched.
func (s *Store) EnsureTables(ctx context.Context) error {
	for _, table := range []string{s.tables.Users, s.tables.Files} {
		created, err := s.createTable(ctx, table)
		if err != nil {
			return err
		}
		if created {
			slog.InfoContext(ctx, "table created successfully", "table", table)
		} else {
			slog.InfoContext(ctx, "table already exists", "table", table)
		}
	}
	return nil
}

func (s *Store) createTable(ctx context.Context, table string) (bool, error) {
	_, err := s.client.CreateTable(ctx, &dynamodb.CreateTableInput{
		TableName: aws.String(table),
		KeySchema: []types.KeySchemaElement{
			{AttributeName: aws.String("id"), KeyType: types.KeyTypeHash},
		},
		AttributeDefinitions: []types.AttributeDefinition{
			{AttributeName: aws.String("id"), AttributeType: types.ScalarAttributeTypeS},
		},
		ProvisionedThroughput: &types.ProvisionedThroughput{
			ReadCapacityUnits:  aws.Int64(provisionedReadCapacity),
			WriteCapacityUnits: aws.Int64(provisionedWriteCapacity),
		},
	})
	if err != nil {
		var inUse *types.ResourceInUseException
		if errors.As(err, &inUse) {
			return false, nil
		}
		return false, fmt.Errorf("create table %s: %w", table, err)
	}

	waiter := dynamodb.NewTableExistsWaiter(s.client)
	if err := waiter.Wait(ctx, &dynamodb.DescribeTableInput{TableName: aws.String(table)}, tableActiveTimeout); err != nil {
		return true, fmt.Errorf("wait for table %s: %w", table, err)
	}
	return true, nil
}

// Ping checks that both tables are reachable.
func (s *Store) Ping(ctx context.Context) error {
	for _, table := range []string{s.tables.Users, s.tables.Files} {
		_, err := s.client.DescribeTable(ctx, &dynamodb.DescribeTableInput{TableName: aws.String(table)})
		if err != nil {
			return fmt.Errorf("describe table %s: %w", table, err)
		}
	}
	return nil
}
