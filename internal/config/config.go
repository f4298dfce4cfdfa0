package config

import (
	"errors"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	StorageDriverLocal = "local"
	StorageDriverS3    = "s3"
)

var configPaths = []string{"./configs", "/configs"}

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Log      LogConfig      `mapstructure:"log"`
	DynamoDB DynamoDBConfig `mapstructure:"dynamodb"`
	Storage  StorageConfig  `mapstructure:"storage"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Upload   UploadConfig   `mapstructure:"upload"`
	CORS     CORSConfig     `mapstructure:"cors"`
}

type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type DynamoDBConfig struct {
	Endpoint         string `mapstructure:"endpoint"`
	Region           string `mapstructure:"region"`
	AccessKey        string `mapstructure:"access_key"`
	SecretKey        string `mapstructure:"secret_key"`
	UsersTable       string `mapstructure:"users_table"`
	FilesTable       string `mapstructure:"files_table"`
	ScanPageSize     int32  `mapstructure:"scan_page_size"`
	AutoCreateTables bool   `mapstructure:"auto_create_tables"`
}

type StorageConfig struct {
	Driver    string `mapstructure:"driver"`
	Path      string `mapstructure:"path"`
	Bucket    string `mapstructure:"bucket"`
	Endpoint  string `mapstructure:"endpoint"`
	Region    string `mapstructure:"region"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
}

type JWTConfig struct {
	Secret string `mapstructure:"secret"`
}

// AuthConfig guards the API with a single administrator account. It is off
// by default, matching a local-only deployment.
type AuthConfig struct {
	Enabled           bool   `mapstructure:"enabled"`
	AdminUser         string `mapstructure:"admin_user"`
	AdminPasswordHash string `mapstructure:"admin_password_hash"`
}

type UploadConfig struct {
	MaxBytes int64 `mapstructure:"max_bytes"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("log.level", "info")

	v.SetDefault("dynamodb.endpoint", "http://localhost:8000")
	v.SetDefault("dynamodb.region", "local")
	v.SetDefault("dynamodb.access_key", "local")
	v.SetDefault("dynamodb.secret_key", "local")
	v.SetDefault("dynamodb.users_table", "Users")
	v.SetDefault("dynamodb.files_table", "Files")
	v.SetDefault("dynamodb.scan_page_size", 0)
	v.SetDefault("dynamodb.auto_create_tables", false)

	v.SetDefault("storage.driver", StorageDriverLocal)
	v.SetDefault("storage.path", "./data/files")
	v.SetDefault("storage.bucket", "")
	v.SetDefault("storage.endpoint", "")
	v.SetDefault("storage.region", "us-east-1")
	v.SetDefault("storage.access_key", "")
	v.SetDefault("storage.secret_key", "")

	v.SetDefault("jwt.secret", "")
	v.SetDefault("auth.enabled", false)
	v.SetDefault("auth.admin_user", "")
	v.SetDefault("auth.admin_password_hash", "")

	v.SetDefault("upload.max_bytes", 32<<20)
	v.SetDefault("cors.allowed_origins", []string{"*"})
}

func Load() (*Config, error) {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			return nil, err
		}
	}
	return load(configPaths...)
}

func load(paths ...string) (*Config, error) {
	v := viper.New()
	for _, p := range paths {
		v.AddConfigPath(p)
	}
	v.SetConfigName("settings")
	v.SetConfigType("yml")

	setDefaults(v)

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case StorageDriverLocal:
		if c.Storage.Path == "" {
			return errors.New("config: storage.path is required for the local driver")
		}
	case StorageDriverS3:
		if c.Storage.Bucket == "" {
			return errors.New("config: storage.bucket is required for the s3 driver")
		}
	default:
		return errors.New("config: storage.driver must be \"local\" or \"s3\"")
	}

	if c.DynamoDB.ScanPageSize < 0 {
		return errors.New("config: dynamodb.scan_page_size must not be negative")
	}

	if c.Auth.Enabled {
		if c.JWT.Secret == "" {
			return errors.New("config: jwt.secret is required when auth is enabled")
		}
		if c.Auth.AdminUser == "" || c.Auth.AdminPasswordHash == "" {
			return errors.New("config: auth.admin_user and auth.admin_password_hash are required when auth is enabled")
		}
	}

	return nil
}
