package api

import (
	"log/slog"
	"net/http"

	"panel-rekordow/internal/auth"
	"panel-rekordow/internal/websocket"
)

// ServeWsHandler upgrades to a WebSocket that receives an EventMessage
// whenever a user or file is created or deleted. Pass ?token= when auth is
// enabled.
func (s *Server) ServeWsHandler(w http.ResponseWriter, r *http.Request) {
	if s.wsHub == nil {
		http.Error(w, "Event feed is not available", http.StatusServiceUnavailable)
		return
	}

	if s.config.Auth.Enabled {
		tokenString := r.URL.Query().Get("token")
		if tokenString == "" {
			http.Error(w, "Token required", http.StatusUnauthorized)
			return
		}
		if _, err := auth.VerifyJWT(tokenString, s.config.JWT.Secret); err != nil {
			slog.WarnContext(r.Context(), "websocket connection attempt with invalid token", "error", err)
			http.Error(w, "Invalid or expired token", http.StatusUnauthorized)
			return
		}
	}

	conn, err := websocket.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.WarnContext(r.Context(), "websocket upgrade failed", "error", err)
		return
	}

	websocket.NewClient(s.wsHub, conn).Serve()
}
