package rest

import (
	"net/http"
	"time"

	"troffee-admin-console/internal/ports/inbound"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
)

// Handler serves the admin REST API
type Handler struct {
	editor inbound.AuctionEditor
	users  inbound.UserService
	logger zerolog.Logger
}
type HandlerParams struct {
	Editor      inbound.AuctionEditor
	UserService inbound.UserService
	Logger      zerolog.Logger
}

// NewHandler creates a new REST handler
func NewHandler(params HandlerParams) *Handler {
	return &Handler{
		editor: params.Editor,
		users:  params.UserService,
		logger: params.Logger.With().Str("component", "rest_handler").Logger(),
	}
}

// SetupRoutes registers the API routes under /api
func (h *Handler) SetupRoutes(router *mux.Router) {
	api := router.PathPrefix("/api").Subrouter()
	api.Use(h.loggingMiddleware)

	api.HandleFunc("/auctions/{id}/edit", h.GetAuctionEdit).Methods(http.MethodGet)
	api.HandleFunc("/auctions/{id}", h.UpdateAuction).Methods(http.MethodPut)
	api.HandleFunc("/auctions/{id}/endtime", h.UpdateAuctionEndTime).Methods(http.MethodPut)
	api.HandleFunc("/auctions/{id}", h.DeleteAuction).Methods(http.MethodDelete)

	api.HandleFunc("/users", h.ListUsers).Methods(http.MethodGet)
	api.HandleFunc("/users/{id}", h.UpdateUser).Methods(http.MethodPut)
	api.HandleFunc("/users/{id}/suspend", h.SuspendUser).Methods(http.MethodPut)
	api.HandleFunc("/users/{id}/unsuspend", h.UnsuspendUser).Methods(http.MethodPut)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (h *Handler) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		event := h.logger.Info()
		if rec.status >= http.StatusInternalServerError {
			event = h.logger.Error()
		} else if rec.status >= http.StatusBadRequest {
			event = h.logger.Warn()
		}
		event.
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rec.status).
			Dur("duration", time.Since(start)).
			Msg("Request handled")
	})
}
