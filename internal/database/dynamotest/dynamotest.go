// Package dynamotest provides an in-memory stand-in for the DynamoDB calls
// the record store makes. Scans are returned in key order so paging is
// deterministic.
package dynamotest

import (
	"context"
	"sort"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type item = map[string]types.AttributeValue

type Fake struct {
	mu     sync.Mutex
	tables map[string]map[string]item

	// Err, when set, is returned by every data-plane call.
	Err error

	ScanCalls int
	PutCalls  int
}

// New returns a fake with the given tables already created.
func New(tables ...string) *Fake {
	f := &Fake{tables: make(map[string]map[string]item)}
	for _, t := range tables {
		f.tables[t] = make(map[string]item)
	}
	return f
}

// Seed stores an item directly, bypassing conditions.
func (f *Fake) Seed(table string, it item) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tables[table][keyValue(it)] = it
}

func (f *Fake) Len(table string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.tables[table])
}

func keyValue(it item) string {
	if s, ok := it["id"].(*types.AttributeValueMemberS); ok {
		return s.Value
	}
	return ""
}

func (f *Fake) table(name *string) (map[string]item, error) {
	t, ok := f.tables[aws.ToString(name)]
	if !ok {
		return nil, &types.ResourceNotFoundException{Message: aws.String("Cannot do operations on a non-existent table")}
	}
	return t, nil
}

func (f *Fake) PutItem(_ context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.PutCalls++
	if f.Err != nil {
		return nil, f.Err
	}
	t, err := f.table(in.TableName)
	if err != nil {
		return nil, err
	}

	key := keyValue(in.Item)
	if _, exists := t[key]; exists && aws.ToString(in.ConditionExpression) == "attribute_not_exists(id)" {
		return nil, &types.ConditionalCheckFailedException{Message: aws.String("The conditional request failed")}
	}
	t[key] = in.Item
	return &dynamodb.PutItemOutput{}, nil
}

func (f *Fake) GetItem(_ context.Context, in *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return nil, f.Err
	}
	t, err := f.table(in.TableName)
	if err != nil {
		return nil, err
	}
	return &dynamodb.GetItemOutput{Item: t[keyValue(in.Key)]}, nil
}

func (f *Fake) DeleteItem(_ context.Context, in *dynamodb.DeleteItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return nil, f.Err
	}
	t, err := f.table(in.TableName)
	if err != nil {
		return nil, err
	}
	delete(t, keyValue(in.Key))
	return &dynamodb.DeleteItemOutput{}, nil
}

func (f *Fake) Scan(_ context.Context, in *dynamodb.ScanInput, _ ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ScanCalls++
	if f.Err != nil {
		return nil, f.Err
	}
	t, err := f.table(in.TableName)
	if err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(t))
	for k := range t {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	start := 0
	if in.ExclusiveStartKey != nil {
		after := keyValue(in.ExclusiveStartKey)
		start = sort.SearchStrings(keys, after)
		if start < len(keys) && keys[start] == after {
			start++
		}
	}

	end := len(keys)
	if in.Limit != nil && start+int(*in.Limit) < end {
		end = start + int(*in.Limit)
	}

	out := &dynamodb.ScanOutput{Items: make([]item, 0, end-start)}
	for _, k := range keys[start:end] {
		out.Items = append(out.Items, t[k])
	}
	out.Count = int32(len(out.Items))
	if end < len(keys) {
		out.LastEvaluatedKey = item{"id": &types.AttributeValueMemberS{Value: keys[end-1]}}
	}
	return out, nil
}

func (f *Fake) CreateTable(_ context.Context, in *dynamodb.CreateTableInput, _ ...func(*dynamodb.Options)) (*dynamodb.CreateTableOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	name := aws.ToString(in.TableName)
	if _, exists := f.tables[name]; exists {
		return nil, &types.ResourceInUseException{Message: aws.String("Table already exists: " + name)}
	}
	f.tables[name] = make(map[string]item)
	return &dynamodb.CreateTableOutput{
		TableDescription: &types.TableDescription{
			TableName:   in.TableName,
			TableStatus: types.TableStatusCreating,
		},
	}, nil
}

func (f *Fake) DescribeTable(_ context.Context, in *dynamodb.DescribeTableInput, _ ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, err := f.table(in.TableName)
	if err != nil {
		return nil, err
	}
	return &dynamodb.DescribeTableOutput{
		Table: &types.TableDescription{
			TableName:   in.TableName,
			TableStatus: types.TableStatusActive,
			ItemCount:   aws.Int64(int64(len(t))),
		},
	}, nil
}
