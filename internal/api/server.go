package api

import (
	"context"

	"panel-rekordow/internal/config"
	"panel-rekordow/internal/database"
	"panel-rekordow/internal/models"
	"panel-rekordow/internal/storage"
	"panel-rekordow/internal/websocket"
)

// RecordStore is the record store surface the handlers need.
// *database.Store implements it.
type RecordStore interface {
	CreateUser(ctx context.Context, params database.CreateUserParams) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	GetUser(ctx context.Context, id string) (*models.User, error)
	DeleteUser(ctx context.Context, id string) error

	CreateFile(ctx context.Context, params database.CreateFileParams) (*models.File, error)
	ListFiles(ctx context.Context) ([]models.File, error)
	GetFile(ctx context.Context, id string) (*models.File, error)
	DeleteFile(ctx context.Context, id string) error

	Ping(ctx context.Context) error
}

type Server struct {
	config  *config.Config
	store   RecordStore
	storage storage.BlobStore
	wsHub   *websocket.Hub
}

func NewServer(cfg *config.Config, store RecordStore, storage storage.BlobStore, wsHub *websocket.Hub) *Server {
	return &Server{
		config:  cfg,
		store:   store,
		storage: storage,
		wsHub:   wsHub,
	}
}
