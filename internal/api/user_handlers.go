package api

import (
	"net/http"

	"panel-rekordow/internal/database"

	"github.com/go-chi/chi/v5"
)

type CreateUserRequest struct {
	Name     string `json:"name" example:"Ada Lovelace"`
	Email    string `json:"email" example:"ada@example.com"`
	ImageURL string `json:"imageUrl" example:"data:image/png;base64,iVBORw0KGgo="`
}

// @Summary      Create a user
// @Description  Stores a new user. The id and createdAt are generated by the server.
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        user  body      CreateUserRequest  true  "User to create"
// @Success      201   {object}  models.User
// @Failure      400   {string}  string "Invalid request body or record"
// @Failure      413   {string}  string "Request body too large"
// @Failure      500   {string}  string "Internal Server Error"
// @Router       /users [post]
func (s *Server) CreateUserHandler(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := s.store.CreateUser(r.Context(), database.CreateUserParams{
		Name:     req.Name,
		Email:    req.Email,
		ImageURL: req.ImageURL,
	})
	if err != nil {
		storeError(w, r, err, "Failed to create user")
		return
	}

	s.publishEvent(r.Context(), EventUserCreated, user)
	writeJSON(w, http.StatusCreated, user)
}

// @Summary      List users
// @Description  Returns every user. Order is unspecified; filtering is left to the client.
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   models.User
// @Failure      500  {string}  string "Internal Server Error"
// @Router       /users [get]
func (s *Server) ListUsersHandler(w http.ResponseWriter, r *http.Request) {
	users, err := s.store.ListUsers(r.Context())
	if err != nil {
		storeError(w, r, err, "Failed to list users")
		return
	}

	writeJSON(w, http.StatusOK, users)
}

// @Summary      Get a user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        userId  path      string  true  "User ID"
// @Success      200     {object}  models.User
// @Failure      404     {string}  string "User not found"
// @Failure      500     {string}  string "Internal Server Error"
// @Router       /users/{userId} [get]
func (s *Server) GetUserHandler(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")

	user, err := s.store.GetUser(r.Context(), userID)
	if err != nil {
		storeError(w, r, err, "Failed to retrieve user")
		return
	}
	if user == nil {
		http.Error(w, "User not found", http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// @Summary      Delete a user
// @Description  Removes the user. Deleting an id that does not exist also succeeds and still broadcasts user_deleted.
// @Tags         users
// @Security     BearerAuth
// @Param        userId  path      string  true  "User ID"
// @Success      204     {null}    nil "No Content"
// @Failure      500     {string}  string "Internal Server Error"
// @Router       /users/{userId} [delete]
func (s *Server) DeleteUserHandler(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")
	if userID == "" {
		http.Error(w, "User ID is required", http.StatusBadRequest)
		return
	}

	if err := s.store.DeleteUser(r.Context(), userID); err != nil {
		storeError(w, r, err, "Failed to delete user")
		return
	}

	// The store cannot tell a missing id from a removed one, so the event goes
	// out either way.
	s.publishEvent(r.Context(), EventUserDeleted, deletedPayload{ID: userID})
	w.WriteHeader(http.StatusNoContent)
}
