package database

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	// ErrInvalidRecord is returned before any write when a record fails
	// validation, and for empty ids.
	ErrInvalidRecord = errors.New("invalid record")
	ErrIDExhausted   = fmt.Errorf("failed to generate a unique ID after %d attempts", maxIDAttempts)
)

func invalidRecord(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fieldMessage(fe))
	}
	return fmt.Errorf("%w: %s", ErrInvalidRecord, strings.Join(msgs, "; "))
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	case "email":
		return fe.Field() + " must be a valid email address"
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", fe.Field(), fe.Param())
	case "datauri|http_url":
		return fe.Field() + " must be a data URL or an http(s) URL"
	case "media_type":
		return fe.Field() + " must be a valid MIME type"
	default:
		return fe.Field() + " is invalid"
	}
}
