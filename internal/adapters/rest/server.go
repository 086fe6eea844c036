package rest

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"troffee-admin-console/internal/adapters/ws"
	"troffee-admin-console/internal/config"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

type Server struct {
	router     *mux.Router
	httpServer *http.Server
	config     *config.Config
	logger     zerolog.Logger
}

type ServerParams struct {
	Config    *config.Config
	Handler   *Handler
	WsHandler *ws.WsHandler
	Logger    zerolog.Logger
}

func NewServer(params ServerParams) *Server {
	router := mux.NewRouter()

	router.HandleFunc("/health", handleHealth).Methods(http.MethodGet)
	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	if params.WsHandler != nil {
		router.HandleFunc("/ws", params.WsHandler.HandleWebSocket)
	}
	params.Handler.SetupRoutes(router)

	httpServer := &http.Server{
		Addr:         net.JoinHostPort(params.Config.Server.Host, params.Config.Server.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Minute,
	}

	return &Server{
		router:     router,
		httpServer: httpServer,
		config:     params.Config,
		logger:     params.Logger.With().Str("component", "http_server").Logger(),
	}
}

// Router returns the configured routes
func (s *Server) Router() http.Handler {
	return s.router
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.logger.Info().Str("addr", s.httpServer.Addr).Msg("Starting admin console server")

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start admin console server: %w", err)
	}

	return nil
}

// Stop gracefully stops the HTTP server
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info().Msg("Stopping admin console server...")

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown admin console server: %w", err)
	}

	s.logger.Info().Msg("Admin console server stopped")
	return nil
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"service": "admin-console",
		"time":    time.Now().UTC().Format(time.RFC3339),
	})
}
