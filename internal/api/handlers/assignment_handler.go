package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/KingCuz/GrindLink/internal/services"
)

// AssignmentHandler handles HTTP requests for assignment records.
type AssignmentHandler struct {
	service services.AssignmentServiceProvider
}

// NewAssignmentHandler creates a new AssignmentHandler.
func NewAssignmentHandler(service services.AssignmentServiceProvider) *AssignmentHandler {
	return &AssignmentHandler{service: service}
}

// Create handles the creation of a new assignment.
func (h *AssignmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input services.AssignmentInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request body."})
		return
	}

	assignment, err := h.service.CreateAssignment(r.Context(), input)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"message":    "Assignment created successfully.",
		"assignment": assignment,
	})
}

// List handles retrieving all assignments, newest first.
func (h *AssignmentHandler) List(w http.ResponseWriter, r *http.Request) {
	assignments, err := h.service.ListAssignments(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, assignments)
}
