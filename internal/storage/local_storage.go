package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// shardDepth is the number of single-character directory levels a blob is
// nested under.
const shardDepth = 2

var ErrSizeMismatch = errors.New("blob size does not match the declared size")

// LocalStorage keeps blobs on the local filesystem under basePath.
type LocalStorage struct {
	basePath string
}

func NewLocalStorage(basePath string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir %s: %w", basePath, err)
	}
	return &LocalStorage{basePath: basePath}, nil
}

func validBlobID(id string) error {
	if id == "" || strings.ContainsAny(id, `/\.`) {
		return fmt.Errorf("invalid blob id %q", id)
	}
	return nil
}

// blobPath maps "V1StGXR8" to <base>/V/1/V1StGXR8.
func (ls *LocalStorage) blobPath(id string) string {
	parts := make([]string, 0, shardDepth+2)
	parts = append(parts, ls.basePath)
	for i := 0; i < shardDepth && i < len(id); i++ {
		parts = append(parts, id[i:i+1])
	}
	parts = append(parts, id)
	return filepath.Join(parts...)
}

// Save writes to a temp file in the target directory and renames it into
// place, so a failed upload never leaves a truncated blob behind. A
// non-negative size is checked against the bytes actually written.
func (ls *LocalStorage) Save(_ context.Context, id string, data io.Reader, size int64, _ string) (err error) {
	if err := validBlobID(id); err != nil {
		return err
	}

	target := ls.blobPath(id)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(target), "."+id+".*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	written, err := io.Copy(tmp, data)
	if err != nil {
		return err
	}
	if size >= 0 && written != size {
		return fmt.Errorf("blob %s: wrote %d bytes, expected %d: %w", id, written, size, ErrSizeMismatch)
	}
	if err = tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), target)
}

func (ls *LocalStorage) Get(_ context.Context, id string) (io.ReadCloser, error) {
	if err := validBlobID(id); err != nil {
		return nil, err
	}

	file, err := os.Open(ls.blobPath(id))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("blob %s: %w", id, ErrBlobNotFound)
		}
		return nil, err
	}

	return file, nil
}

func (ls *LocalStorage) Delete(_ context.Context, id string) error {
	if err := validBlobID(id); err != nil {
		return err
	}

	err := os.Remove(ls.blobPath(id))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}
