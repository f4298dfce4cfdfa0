package storage

import (
	"context"
	"testing"

	"panel-rekordow/internal/config"

	"github.com/stretchr/testify/require"
)

func TestNew_SelectsDriver(t *testing.T) {
	ctx := context.Background()

	local, err := New(ctx, config.StorageConfig{Driver: config.StorageDriverLocal, Path: t.TempDir()})
	require.NoError(t, err)
	require.IsType(t, &LocalStorage{}, local)

	s3, err := New(ctx, config.StorageConfig{
		Driver:    config.StorageDriverS3,
		Bucket:    "uploads",
		Region:    "us-east-1",
		Endpoint:  "http://localhost:9000",
		AccessKey: "minio",
		SecretKey: "minio123",
	})
	require.NoError(t, err)
	require.IsType(t, &S3Storage{}, s3)

	_, err = New(ctx, config.StorageConfig{Driver: "ftp"})
	require.Error(t, err)
}
