package database

import (
	"context"
	"strings"

	"panel-rekordow/internal/models"
)

type CreateFileParams struct {
	Name string `json:"name" validate:"required,max=1024"`
	Size int64  `json:"size" validate:"gte=0"`
	Type string `json:"type" validate:"max=255,media_type"`
}

func (s *Store) CreateFile(ctx context.Context, params CreateFileParams) (file *models.File, err error) {
	defer func() { observe(s.tables.Files, "create", err) }()

	params.Name = strings.TrimSpace(params.Name)
	params.Type = strings.TrimSpace(params.Type)
	if params.Type == "" {
		params.Type = models.DefaultFileType
	}

	if err := s.validate.Struct(params); err != nil {
		return nil, invalidRecord(err)
	}

	record := models.File{
		Name:       params.Name,
		Size:       params.Size,
		Type:       params.Type,
		UploadedAt: models.FormatTimestamp(s.timestamp()),
	}

	err = s.insert(ctx, s.tables.Files, func(id string) any {
		record.ID = id
		return record
	})
	if err != nil {
		return nil, err
	}

	return &record, nil
}

func (s *Store) ListFiles(ctx context.Context) (files []models.File, err error) {
	defer func() { observe(s.tables.Files, "list", err) }()
	return scanAll[models.File](ctx, s, s.tables.Files)
}

func (s *Store) GetFile(ctx context.Context, id string) (file *models.File, err error) {
	defer func() { observe(s.tables.Files, "get", err) }()
	return getItem[models.File](ctx, s, s.tables.Files, id)
}

func (s *Store) DeleteFile(ctx context.Context, id string) (err error) {
	defer func() { observe(s.tables.Files, "delete", err) }()
	return s.deleteItem(ctx, s.tables.Files, id)
}
