package storage

import (
	"context"
	"errors"
	"fmt"
	"io"

	"panel-rekordow/internal/config"
)

var ErrBlobNotFound = errors.New("blob not found")

// BlobStore keeps uploaded file content keyed by the file record id.
// Delete of a missing blob is not an error.
type BlobStore interface {
	Save(ctx context.Context, id string, data io.Reader, size int64, contentType string) error
	Get(ctx context.Context, id string) (io.ReadCloser, error)
	Delete(ctx context.Context, id string) error
}

func New(ctx context.Context, cfg config.StorageConfig) (BlobStore, error) {
	switch cfg.Driver {
	case "", config.StorageDriverLocal:
		return NewLocalStorage(cfg.Path)
	case config.StorageDriverS3:
		return NewS3Storage(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}
