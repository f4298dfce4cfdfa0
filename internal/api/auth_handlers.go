package api

import (
	"crypto/subtle"
	"log/slog"
	"net/http"
	"time"

	"panel-rekordow/internal/auth"
)

type LoginRequest struct {
	Username string `json:"username" example:"admin"`
	Password string `json:"password" example:"password123"`
}

type TokenResponse struct {
	AccessToken string    `json:"access_token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9...."`
	ExpiresAt   time.Time `json:"expires_at"`
}

// @Summary      Log the administrator in
// @Description  Exchanges the administrator credentials for a short-lived access token. Only available when auth is enabled.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        loginRequest  body      LoginRequest  true  "Login Credentials"
// @Success      200           {object}  TokenResponse
// @Failure      400           {string}  string "Invalid request body"
// @Failure      401           {string}  string "Invalid username or password"
// @Failure      404           {string}  string "Authentication is disabled"
// @Failure      500           {string}  string "Internal Server Error"
// @Router       /auth/login [post]
func (s *Server) LoginHandler(w http.ResponseWriter, r *http.Request) {
	if !s.config.Auth.Enabled {
		http.Error(w, "Authentication is disabled", http.StatusNotFound)
		return
	}

	var req LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	userOK := subtle.ConstantTimeCompare([]byte(req.Username), []byte(s.config.Auth.AdminUser)) == 1
	passwordOK := auth.CheckPasswordHash(req.Password, s.config.Auth.AdminPasswordHash)
	if !userOK || !passwordOK {
		slog.WarnContext(r.Context(), "failed login attempt", "username", req.Username, "request_id", requestID(r))
		http.Error(w, "Invalid username or password", http.StatusUnauthorized)
		return
	}

	accessToken, expiresAt, err := auth.GenerateJWT(req.Username, s.config.JWT.Secret)
	if err != nil {
		slog.ErrorContext(r.Context(), "failed to generate access token", "error", err)
		http.Error(w, "Failed to generate access token", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, TokenResponse{
		AccessToken: accessToken,
		ExpiresAt:   expiresAt.UTC(),
	})
}
