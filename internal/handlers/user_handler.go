package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/Adilzhan2201/Friendship_Manager/internal/models"
	"github.com/Adilzhan2201/Friendship_Manager/internal/services"
	"github.com/Adilzhan2201/Friendship_Manager/pkg/logger"
	"github.com/Adilzhan2201/Friendship_Manager/pkg/middleware"
	"github.com/gorilla/mux"
)

// UserHandler exposes the user-node surface: an idempotent provisioning
// endpoint for the identity service and a profile lookup.
type UserHandler struct {
	Service *services.UserService
}

// NewUserHandler creates a new instance of UserHandler.
func NewUserHandler(service *services.UserService) *UserHandler {
	return &UserHandler{Service: service}
}

// EnsureUserHandler provisions the caller's user node.
// PUT /users/me
func (h *UserHandler) EnsureUserHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var body struct {
		Username string `json:"username"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		logger.Log.Warnf("Failed to decode ensure-user body: %v", err)
		return
	}
	defer r.Body.Close()

	user, err := h.Service.EnsureUser(r.Context(), &models.User{
		ID:       claims.UserID,
		Email:    claims.Email,
		Username: body.Username,
	})
	if err != nil {
		logger.Log.Errorf("Failed to ensure user %s: %v", claims.UserID, err)
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, user)
}

// GetUserHandler fetches a user node by id.
// GET /users/{id}
func (h *UserHandler) GetUserHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	user, err := h.Service.GetUser(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		logger.Log.Warnf("Failed to fetch user: %v", err)
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, user)
}
