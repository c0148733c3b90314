package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/KingCuz/GrindLink/internal/apperrors"
	"github.com/rs/zerolog/log"
)

func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("Failed to encode response")
	}
}

// respondError maps a service error to the wire: validation failures become
// 400s with their message verbatim, everything else becomes a generic 500
// with the cause kept in the logs.
func respondError(w http.ResponseWriter, err error) {
	var validationErr *apperrors.ValidationError
	if errors.As(err, &validationErr) {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": validationErr.Message})
		return
	}
	log.Error().Err(err).Msg("Request failed")
	respondJSON(w, http.StatusInternalServerError, map[string]string{"error": "Internal server error."})
}
