package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

const (
	EventUserCreated = "user_created"
	EventUserDeleted = "user_deleted"
	EventFileCreated = "file_created"
	EventFileDeleted = "file_deleted"
)

type EventMessage struct {
	EventID   uuid.UUID `json:"event_id" example:"a1b2c3d4-e5f6-7890-1234-567890abcdef"`
	EventType string    `json:"event_type" example:"user_created"`
	EventTime time.Time `json:"event_time"`
	Payload   any       `json:"payload" swaggertype:"object"`
}

type deletedPayload struct {
	ID string `json:"id"`
}

// publishEvent tells connected list views that a collection changed.
func (s *Server) publishEvent(ctx context.Context, eventType string, payload any) {
	if s.wsHub == nil {
		return
	}

	eventBytes, err := json.Marshal(EventMessage{
		EventID:   uuid.New(),
		EventType: eventType,
		EventTime: time.Now().UTC(),
		Payload:   payload,
	})
	if err != nil {
		slog.WarnContext(ctx, "failed to marshal event", "event_type", eventType, "error", err)
		return
	}

	s.wsHub.PublishEvent(eventBytes)
}
