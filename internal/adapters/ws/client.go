package ws

import (
	"context"
	"fmt"
	"sync"
	"time"

	"troffee-admin-console/internal/config"
	"troffee-admin-console/internal/domain/shared"
	"troffee-admin-console/internal/ports/inbound"

	"github.com/alitto/pond"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

const maxMessageSize = 64 << 10

type WsClient struct {
	id         string
	conn       *websocket.Conn
	sendChan   chan *ServerMessage
	ctx        context.Context
	cancel     context.CancelFunc
	handler    *WsHandler
	console    inbound.UserConsole
	workerPool *pond.WorkerPool
	stopped    bool
	mu         sync.Mutex
	logger     zerolog.Logger
}
type WsClientParams struct {
	Conn    *websocket.Conn
	Handler *WsHandler
	Logger  zerolog.Logger
}

// NewClient creates a new WebSocket client
func NewClient(params WsClientParams) *WsClient {
	ctx, cancel := context.WithCancel(context.Background())

	pool := pond.New(
		config.WSMaxWorkers,
		config.WSMaxCapacity,
		pond.Context(ctx),
		pond.Strategy(pond.Balanced()),
	)
	id := uuid.New().String()
	client := &WsClient{
		id:         id,
		conn:       params.Conn,
		sendChan:   make(chan *ServerMessage, 100), // Buffered channel to handle multiple pages
		ctx:        ctx,
		cancel:     cancel,
		handler:    params.Handler,
		workerPool: pool,
		logger:     params.Logger.With().Str("client_id", id).Logger(),
	}

	return client
}

func (client *WsClient) Start() {
	go client.messageSender()
	go client.messageReceiver()
}

func (client *WsClient) Stop() {
	client.mu.Lock()
	defer client.mu.Unlock()

	// Prevent double closing
	if client.stopped {
		return
	}
	client.stopped = true

	client.cancel()
	if client.console != nil {
		client.console.Close()
	}
	client.conn.Close()

	if client.workerPool != nil {
		client.workerPool.Stop()
	}
}

// Send queues a message for the client
func (client *WsClient) Send(msg *ServerMessage) error {
	select {
	case <-client.ctx.Done():
		return fmt.Errorf("client is stopped")
	default:
	}

	select {
	case client.sendChan <- msg:
		return nil
	case <-client.ctx.Done():
		return fmt.Errorf("client is stopped")
	case <-time.After(100 * time.Millisecond):
		return fmt.Errorf("client send channel is full")
	}
}

// deliverPage is the sink of the client's user console
func (client *WsClient) deliverPage(view inbound.PageView, err error) {
	var msg *ServerMessage
	if err != nil {
		msg = NewErrorMessage(shared.UserMessage(err), "")
	} else {
		msg = NewUsersPageMessage(view)
	}
	if sendErr := client.Send(msg); sendErr != nil {
		client.logger.Warn().Err(sendErr).Msg("Failed to queue users page")
	}
}

func (client *WsClient) messageSender() {
	for {
		select {
		case msg := <-client.sendChan:
			if err := client.sendMessage(msg); err != nil {
				client.logger.Error().Err(err).Msg("Failed to send message to client")
				client.cancel()
				return
			}
		case <-client.ctx.Done():
			return
		}
	}
}

func (client *WsClient) messageReceiver() {
	client.conn.SetReadLimit(maxMessageSize)

	for {
		_, message, err := client.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				client.logger.Error().Err(err).Msg("WebSocket read error for client")
			} else {
				client.logger.Info().Str("error", err.Error()).Msg("WebSocket connection closed for client")
			}
			// Cancel context to notify handler about disconnection
			client.cancel()
			return
		}
		client.logger.Debug().Str("message", string(message)).Msg("Message received from client")

		msg, err := client.parse(message)
		if err != nil {
			client.sendError(err, "")
			continue
		}

		// Screen state changes keep their order, mutations go to the pool
		if msg.Type != MessageTypeUpdateUser && msg.Type != MessageTypeToggleSuspend {
			if err := client.handleMessage(msg); err != nil {
				client.sendError(err, msg.UserID)
			}
			continue
		}

		if !client.submit(msg) {
			return
		}
	}
}

// submit runs a mutating command on the worker pool. It reports false once the client
// is stopped; a full queue is answered with ErrBusy.
func (client *WsClient) submit(msg *ClientMessage) bool {
	submitted := client.workerPool.TrySubmit(func() {
		if err := client.handleMessage(msg); err != nil {
			client.logger.Error().Err(err).Str("message_type", string(msg.Type)).Msg("Failed to handle message in worker pool")
			client.sendError(err, msg.UserID)
		}
	})
	if submitted {
		return true
	}

	if client.ctx.Err() != nil || client.workerPool.Stopped() {
		return false
	}
	client.sendError(shared.ErrBusy, msg.UserID)
	return true
}

func (client *WsClient) sendMessage(msg *ServerMessage) error {
	client.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
	return client.conn.WriteJSON(msg)
}

func (client *WsClient) sendError(err error, userID string) {
	if sendErr := client.Send(NewErrorMessage(shared.UserMessage(err), userID)); sendErr != nil {
		client.logger.Warn().Err(sendErr).Msg("Failed to queue error message")
	}
}

func (client *WsClient) parse(data []byte) (*ClientMessage, error) {
	msg, err := ParseClientMessage(data)
	if err != nil {
		return nil, err
	}

	if err := msg.Validate(); err != nil {
		return nil, err
	}
	return msg, nil
}

func (client *WsClient) handleMessage(msg *ClientMessage) error {
	if msg.Type == MessageTypePing {
		return client.Send(NewServerMessage(MessageTypePong))
	}

	if client.handler != nil {
		return client.handler.HandleClientMessage(client, msg)
	}
	return fmt.Errorf("handler not available")
}
