package ws

import (
	"context"
	"net/http"
	"sync"
	"time"

	"troffee-admin-console/internal/domain/shared"
	"troffee-admin-console/internal/metrics"
	"troffee-admin-console/internal/ports/inbound"
	"troffee-admin-console/internal/ports/outbound"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

// WsHandler manages user console connections and message routing
type WsHandler struct {
	clients     map[string]*WsClient // clientID -> Client
	clientsMu   sync.RWMutex
	upgrader    websocket.Upgrader
	userService inbound.UserService
	notifier    outbound.Notifier
	retryDelay  time.Duration
	logger      zerolog.Logger
}
type WsHandlerParams struct {
	Upgrader    websocket.Upgrader
	UserService inbound.UserService
	Notifier    outbound.Notifier
	// RetryDelay is the first wait before resubscribing to events, doubled up to maxRetryDelay
	RetryDelay time.Duration
	Logger     zerolog.Logger
}

const (
	defaultRetryDelay = time.Second
	maxRetryDelay     = 30 * time.Second
)

// NewHandler creates a new WebSocket handler
func NewHandler(params WsHandlerParams) *WsHandler {
	retryDelay := params.RetryDelay
	if retryDelay <= 0 {
		retryDelay = defaultRetryDelay
	}
	return &WsHandler{
		clients:     make(map[string]*WsClient),
		upgrader:    params.Upgrader,
		userService: params.UserService,
		notifier:    params.Notifier,
		retryDelay:  retryDelay,
		logger:      params.Logger.With().Str("component", "ws_handler").Logger(),
	}
}

// HandleWebSocket upgrades the connection and opens a user console for it
func (handler *WsHandler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := handler.upgrader.Upgrade(w, r, nil)
	if err != nil {
		handler.logger.Error().Err(err).Msg("Failed to upgrade WebSocket connection")
		return
	}

	client := NewClient(WsClientParams{
		Conn:    conn,
		Handler: handler,
		Logger:  handler.logger,
	})
	client.console = handler.userService.NewConsole(client.deliverPage)

	handler.registerClient(client)

	client.Start()

	// First page of the screen
	client.console.Refresh()

	// Wait for client to disconnect
	go func() {
		<-client.ctx.Done()
		handler.unregisterClient(client)
	}()

	handler.logger.Info().Str("client_id", client.id).Msg("WebSocket client connected")
}

func (handler *WsHandler) registerClient(client *WsClient) {
	handler.clientsMu.Lock()
	defer handler.clientsMu.Unlock()
	handler.clients[client.id] = client
	metrics.ConnectedConsoles.Inc()
	handler.logger.Debug().Str("client_id", client.id).Int("total_clients", len(handler.clients)).Msg("Client registered")
}

func (handler *WsHandler) unregisterClient(client *WsClient) {
	handler.clientsMu.Lock()
	_, exists := handler.clients[client.id]
	delete(handler.clients, client.id)
	total := len(handler.clients)
	handler.clientsMu.Unlock()

	if exists {
		metrics.ConnectedConsoles.Dec()
	}

	client.Stop()

	handler.logger.Info().Str("client_id", client.id).Int("total_clients", total).Msg("WebSocket client disconnected")
}

// ListenForEvents refreshes every open console when another screen or instance
// changes users. A failed subscription or a closed stream is retried with backoff.
// It returns when ctx is done.
func (handler *WsHandler) ListenForEvents(ctx context.Context) {
	if handler.notifier == nil {
		return
	}

	delay := handler.retryDelay
	for {
		events, err := handler.notifier.Subscribe(ctx)
		if err != nil {
			handler.logger.Error().Err(err).Dur("retry_in", delay).Msg("Failed to subscribe to events")
		} else {
			handler.logger.Info().Msg("Event listener started")
			delay = handler.retryDelay
			if !handler.consume(ctx, events) {
				return
			}
			handler.logger.Warn().Dur("retry_in", delay).Msg("Event stream closed, resubscribing")
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(delay):
		}

		delay *= 2
		if delay > maxRetryDelay {
			delay = maxRetryDelay
		}
	}
}

// consume dispatches events until the stream closes (true) or ctx is done (false)
func (handler *WsHandler) consume(ctx context.Context, events <-chan outbound.Event) bool {
	for {
		select {
		case event, ok := <-events:
			if !ok {
				return ctx.Err() == nil
			}
			handler.dispatchEvent(event)
		case <-ctx.Done():
			return false
		}
	}
}

func (handler *WsHandler) dispatchEvent(event outbound.Event) {
	if !event.Type.IsUserEvent() {
		return
	}

	handler.clientsMu.RLock()
	clients := make([]*WsClient, 0, len(handler.clients))
	for _, client := range handler.clients {
		clients = append(clients, client)
	}
	handler.clientsMu.RUnlock()

	for _, client := range clients {
		client.console.Refresh()
	}

	handler.logger.Debug().
		Str("event_type", string(event.Type)).
		Str("subject_id", event.SubjectID).
		Int("consoles", len(clients)).
		Msg("Refreshed consoles after user event")
}

func (handler *WsHandler) HandleClientMessage(client *WsClient, msg *ClientMessage) error {
	switch msg.Type {
	case MessageTypeSearch:
		client.console.SetSearch(msg.Query())
		return nil

	case MessageTypeSetPage:
		page, err := msg.Page()
		if err != nil {
			return err
		}
		client.console.SetPage(page)
		return nil

	case MessageTypeRefresh:
		client.console.Refresh()
		return nil

	case MessageTypeUpdateUser:
		return handler.handleUpdateUser(client, msg)

	case MessageTypeToggleSuspend:
		return handler.handleToggleSuspend(client, msg)

	default:
		handler.logger.Warn().Str("client_id", client.id).Str("message_type", string(msg.Type)).Msg("Unknown message type from client")
		return shared.ErrUnknownMessageType
	}
}

func (handler *WsHandler) handleUpdateUser(client *WsClient, msg *ClientMessage) error {
	update, err := msg.UserUpdate()
	if err != nil {
		return err
	}

	if err := client.console.UpdateUser(client.ctx, msg.UserID, update); err != nil {
		return err
	}

	handler.logger.Info().Str("client_id", client.id).Str("user_id", msg.UserID).Msg("User updated from console")
	return client.Send(NewUserUpdatedMessage(msg.UserID, "updated"))
}

func (handler *WsHandler) handleToggleSuspend(client *WsClient, msg *ClientMessage) error {
	if err := client.console.ToggleSuspend(client.ctx, msg.UserID); err != nil {
		return err
	}

	handler.logger.Info().Str("client_id", client.id).Str("user_id", msg.UserID).Msg("User suspension toggled from console")
	return client.Send(NewUserUpdatedMessage(msg.UserID, "suspension_toggled"))
}

// GetConnectedClients returns the number of connected clients
func (handler *WsHandler) GetConnectedClients() int {
	handler.clientsMu.RLock()
	defer handler.clientsMu.RUnlock()
	return len(handler.clients)
}
