package database

import (
	"context"
	"strings"

	"panel-rekordow/internal/models"
)

type CreateUserParams struct {
	Name     string `json:"name" validate:"required,min=2,max=256"`
	Email    string `json:"email" validate:"required,email"`
	ImageURL string `json:"imageUrl" validate:"omitempty,max=262144,datauri|http_url"`
}

func (s *Store) CreateUser(ctx context.Context, params CreateUserParams) (user *models.User, err error) {
	defer func() { observe(s.tables.Users, "create", err) }()

	params.Name = strings.TrimSpace(params.Name)
	params.Email = strings.TrimSpace(params.Email)
	params.ImageURL = strings.TrimSpace(params.ImageURL)

	if err := s.validate.Struct(params); err != nil {
		return nil, invalidRecord(err)
	}

	record := models.User{
		Name:      params.Name,
		Email:     params.Email,
		ImageURL:  params.ImageURL,
		CreatedAt: models.FormatTimestamp(s.timestamp()),
	}

	err = s.insert(ctx, s.tables.Users, func(id string) any {
		record.ID = id
		return record
	})
	if err != nil {
		return nil, err
	}

	return &record, nil
}

func (s *Store) ListUsers(ctx context.Context) (users []models.User, err error) {
	defer func() { observe(s.tables.Users, "list", err) }()
	return scanAll[models.User](ctx, s, s.tables.Users)
}

// GetUser returns nil without an error when no user has the given id.
func (s *Store) GetUser(ctx context.Context, id string) (user *models.User, err error) {
	defer func() { observe(s.tables.Users, "get", err) }()
	return getItem[models.User](ctx, s, s.tables.Users, id)
}

// DeleteUser succeeds whether or not the user exists.
func (s *Store) DeleteUser(ctx context.Context, id string) (err error) {
	defer func() { observe(s.tables.Users, "delete", err) }()
	return s.deleteItem(ctx, s.tables.Users, id)
}
