package database

import (
	"context"
	"fmt"
	"mime"
	"reflect"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/go-playground/validator/v10"
	"github.com/jaevor/go-nanoid"
)

const (
	DefaultUsersTable = "Users"
	DefaultFilesTable = "Files"

	idLength      = 21
	maxIDAttempts = 10
)

// DynamoAPI is the subset of the DynamoDB client the store talks to.
// *dynamodb.Client satisfies it.
type DynamoAPI interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
	CreateTable(ctx context.Context, params *dynamodb.CreateTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.CreateTableOutput, error)
	DescribeTable(ctx context.Context, params *dynamodb.DescribeTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error)
}

type Tables struct {
	Users string
	Files string
}

func (t Tables) withDefaults() Tables {
	if t.Users == "" {
		t.Users = DefaultUsersTable
	}
	if t.Files == "" {
		t.Files = DefaultFilesTable
	}
	return t
}

type Store struct {
	client   DynamoAPI
	tables   Tables
	newID    func() string
	now      func() time.Time
	pageSize int32
	validate *validator.Validate
}

type Option func(*Store)

func WithIDGenerator(gen func() string) Option {
	return func(s *Store) { s.newID = gen }
}

func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithScanPageSize caps the number of items per Scan request. Zero leaves
// the page size to DynamoDB.
func WithScanPageSize(n int32) Option {
	return func(s *Store) { s.pageSize = n }
}

func NewStore(client DynamoAPI, tables Tables, opts ...Option) (*Store, error) {
	s := &Store{
		client:   client,
		tables:   tables.withDefaults(),
		now:      time.Now,
		validate: newValidator(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.newID == nil {
		gen, err := nanoid.Standard(idLength)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize nanoid generator: %w", err)
		}
		s.newID = gen
	}

	return s, nil
}

func (s *Store) Tables() Tables {
	return s.tables
}

func (s *Store) timestamp() time.Time {
	return s.now()
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	v.RegisterValidation("media_type", func(fl validator.FieldLevel) bool {
		mediaType, _, err := mime.ParseMediaType(fl.Field().String())
		return err == nil && strings.Contains(mediaType, "/")
	})
	return v
}
