package rest

import (
	"encoding/json"
	"net/http"
	"strconv"

	"troffee-admin-console/internal/domain/user"

	"github.com/gorilla/mux"
)

// ListUsers returns one page of users with its stats
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	page := 1
	if raw := q.Get("page"); raw != "" {
		p, err := strconv.Atoi(raw)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid page number")
			return
		}
		page = p
	}

	view, err := h.users.List(r.Context(), user.ListQuery{Search: q.Get("search"), Page: page})
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, view)
}

// UpdateUser updates a user's profile
func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["id"]

	var update user.Update
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.users.Update(r.Context(), userID, update); err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"message": "Profile updated successfully",
	})
}

// SuspendUser suspends a user
func (h *Handler) SuspendUser(w http.ResponseWriter, r *http.Request) {
	h.setSuspended(w, r, true)
}

// UnsuspendUser lifts a suspension
func (h *Handler) UnsuspendUser(w http.ResponseWriter, r *http.Request) {
	h.setSuspended(w, r, false)
}

func (h *Handler) setSuspended(w http.ResponseWriter, r *http.Request, suspended bool) {
	userID := mux.Vars(r)["id"]

	if err := h.users.SetSuspended(r.Context(), userID, suspended); err != nil {
		respondServiceError(w, err)
		return
	}

	message := "User unsuspended"
	if suspended {
		message = "User suspended"
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message":   message,
		"suspended": suspended,
	})
}
