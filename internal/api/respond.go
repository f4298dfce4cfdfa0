package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"panel-rekordow/internal/database"

	"github.com/go-chi/chi/v5/middleware"
)

func requestID(r *http.Request) string {
	return middleware.GetReqID(r.Context())
}

const maxJSONBody = 1 << 20

// decodeJSON reads a JSON request body capped at maxJSONBody. On failure it
// has already written the response.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			http.Error(w, "Request body too large", http.StatusRequestEntityTooLarge)
			return false
		}
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("failed to encode response", "error", err)
	}
}

// storeError maps a record store failure onto a response. Validation
// failures carry their message; anything else gets the generic one.
func storeError(w http.ResponseWriter, r *http.Request, err error, message string) {
	if errors.Is(err, database.ErrInvalidRecord) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	attrs := []any{"error", err, "request_id", requestID(r)}
	if admin := adminFromContext(r.Context()); admin != nil {
		attrs = append(attrs, "admin", admin.Username)
	}
	slog.ErrorContext(r.Context(), message, attrs...)
	http.Error(w, message, http.StatusInternalServerError)
}
