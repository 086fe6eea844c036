package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"troffee-admin-console/internal/domain/shared"
)

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondServiceError maps err onto a status and the operator message
func respondServiceError(w http.ResponseWriter, err error) {
	respondError(w, statusFor(err), shared.UserMessage(err))
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, shared.ErrBusy), errors.Is(err, shared.ErrSessionClosed):
		return http.StatusConflict
	case errors.Is(err, shared.ErrAuthorization):
		return http.StatusForbidden
	case errors.Is(err, shared.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, shared.ErrValidation):
		return http.StatusUnprocessableEntity
	case errors.Is(err, shared.ErrNetwork), errors.Is(err, shared.ErrBackend):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
