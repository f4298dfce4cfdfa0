package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DYNAMODB_ENDPOINT", "")
	t.Setenv("SERVER_ADDR", "")

	cfg, err := load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "http://localhost:8000", cfg.DynamoDB.Endpoint)
	assert.Equal(t, "local", cfg.DynamoDB.Region)
	assert.Equal(t, "local", cfg.DynamoDB.AccessKey)
	assert.Equal(t, "local", cfg.DynamoDB.SecretKey)
	assert.Equal(t, "Users", cfg.DynamoDB.UsersTable)
	assert.Equal(t, "Files", cfg.DynamoDB.FilesTable)
	assert.Equal(t, StorageDriverLocal, cfg.Storage.Driver)
	assert.Equal(t, int64(32<<20), cfg.Upload.MaxBytes)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
	assert.False(t, cfg.Auth.Enabled)
}

func TestLoad_DynamoEndpointFromEnv(t *testing.T) {
	t.Setenv("DYNAMODB_ENDPOINT", "http://dynamodb:8000")
	t.Setenv("DYNAMODB_SCAN_PAGE_SIZE", "25")

	cfg, err := load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "http://dynamodb:8000", cfg.DynamoDB.Endpoint)
	assert.Equal(t, int32(25), cfg.DynamoDB.ScanPageSize)
}

func TestLoad_FromFile(t *testing.T) {
	dir := t.TempDir()
	settings := `
server:
  addr: ":9090"
dynamodb:
  region: eu-central-1
  users_table: AdminUsers
storage:
  driver: s3
  bucket: uploads
cors:
  allowed_origins:
    - http://localhost:3000
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "settings.yml"), []byte(settings), 0o600))

	cfg, err := load(dir)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, "eu-central-1", cfg.DynamoDB.Region)
	assert.Equal(t, "AdminUsers", cfg.DynamoDB.UsersTable)
	assert.Equal(t, "Files", cfg.DynamoDB.FilesTable)
	assert.Equal(t, StorageDriverS3, cfg.Storage.Driver)
	assert.Equal(t, "uploads", cfg.Storage.Bucket)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORS.AllowedOrigins)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "settings.yml"), []byte("server:\n  addr: \":9090\"\n"), 0o600))
	t.Setenv("SERVER_ADDR", ":7070")

	cfg, err := load(dir)
	require.NoError(t, err)
	assert.Equal(t, ":7070", cfg.Server.Addr)
}

func TestLoad_InvalidFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "settings.yml"), []byte("server: [unclosed"), 0o600))

	_, err := load(dir)
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{Storage: StorageConfig{Driver: StorageDriverLocal, Path: "./data"}}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"local defaults", func(c *Config) {}, false},
		{"local without path", func(c *Config) { c.Storage.Path = "" }, true},
		{"s3 without bucket", func(c *Config) { c.Storage.Driver = StorageDriverS3 }, true},
		{"s3 with bucket", func(c *Config) { c.Storage.Driver = StorageDriverS3; c.Storage.Bucket = "b" }, false},
		{"unknown driver", func(c *Config) { c.Storage.Driver = "ftp" }, true},
		{"negative page size", func(c *Config) { c.DynamoDB.ScanPageSize = -1 }, true},
		{"auth without secret", func(c *Config) {
			c.Auth = AuthConfig{Enabled: true, AdminUser: "admin", AdminPasswordHash: "hash"}
		}, true},
		{"auth without user", func(c *Config) {
			c.Auth = AuthConfig{Enabled: true}
			c.JWT.Secret = "s"
		}, true},
		{"auth complete", func(c *Config) {
			c.Auth = AuthConfig{Enabled: true, AdminUser: "admin", AdminPasswordHash: "hash"}
			c.JWT.Secret = "s"
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}
