package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/KingCuz/GrindLink/internal/services"
)

// UserHandler handles HTTP requests for user profile records.
type UserHandler struct {
	service services.ProfileServiceProvider
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(service services.ProfileServiceProvider) *UserHandler {
	return &UserHandler{service: service}
}

// Create handles the creation of a new user profile.
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input services.ProfileInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request body."})
		return
	}

	profile, err := h.service.CreateProfile(r.Context(), input)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "User created successfully.",
		"user":    profile,
	})
}

// List handles retrieving all user profiles, newest first.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.service.ListProfiles(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, profiles)
}
