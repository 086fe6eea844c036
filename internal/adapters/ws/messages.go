package ws

import (
	"encoding/json"
	"fmt"
	"math"
	"time"

	"troffee-admin-console/internal/domain/shared"
	"troffee-admin-console/internal/domain/user"
	"troffee-admin-console/internal/ports/inbound"
)

type MessageType string

const (
	// Client to Server message types
	MessageTypeSearch        MessageType = "search"
	MessageTypeSetPage       MessageType = "set_page"
	MessageTypeRefresh       MessageType = "refresh"
	MessageTypeUpdateUser    MessageType = "update_user"
	MessageTypeToggleSuspend MessageType = "toggle_suspend"
	MessageTypePing          MessageType = "ping"

	// Server to Client message types
	MessageTypeUsersPage   MessageType = "users_page"
	MessageTypeUserUpdated MessageType = "user_updated"
	MessageTypeError       MessageType = "error"
	MessageTypePong        MessageType = "pong"
)

type ClientMessage struct {
	Type      MessageType            `json:"type"`
	UserID    string                 `json:"user_id,omitempty"`
	Data      map[string]interface{} `json:"data,omitempty"`
	Timestamp int64                  `json:"timestamp"`
}

// ServerMessage represents a message sent from server to client
type ServerMessage struct {
	Type      MessageType            `json:"type"`
	UserID    string                 `json:"user_id,omitempty"`
	Data      map[string]interface{} `json:"data,omitempty"`
	Error     *string                `json:"error,omitempty"`
	Timestamp int64                  `json:"timestamp"`
}

func NewServerMessage(msgType MessageType) *ServerMessage {
	return &ServerMessage{
		Type:      msgType,
		Data:      make(map[string]interface{}),
		Timestamp: time.Now().Unix(),
	}
}

func NewErrorMessage(err string, userID string) *ServerMessage {
	return &ServerMessage{
		Type:      MessageTypeError,
		UserID:    userID,
		Error:     &err,
		Timestamp: time.Now().Unix(),
	}
}

// NewUsersPageMessage creates a users_page message from an applied page
func NewUsersPageMessage(view inbound.PageView) *ServerMessage {
	msg := NewServerMessage(MessageTypeUsersPage)
	msg.Data["seq"] = view.Seq
	msg.Data["search"] = view.Search
	msg.Data["page"] = view.Page
	msg.Data["page_size"] = view.PageSize
	msg.Data["total_pages"] = view.TotalPages
	msg.Data["users"] = view.Users
	msg.Data["stats"] = view.Stats
	return msg
}

// NewUserUpdatedMessage confirms a user mutation
func NewUserUpdatedMessage(userID string, action string) *ServerMessage {
	msg := NewServerMessage(MessageTypeUserUpdated)
	msg.UserID = userID
	msg.Data["action"] = action
	return msg
}

// ParseClientMessage parses a JSON message from client
func ParseClientMessage(data []byte) (*ClientMessage, error) {
	var msg ClientMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrInvalidPayload, err)
	}

	if msg.Type == "" {
		return nil, shared.ErrMessageTypeRequired
	}

	return &msg, nil
}

// Validate validates a client message
func (m *ClientMessage) Validate() error {
	switch m.Type {
	case MessageTypeSearch:
		if _, ok := m.Data["query"].(string); !ok && m.Data["query"] != nil {
			return fmt.Errorf("%w: query must be a string", shared.ErrInvalidPayload)
		}
	case MessageTypeSetPage:
		if _, err := m.Page(); err != nil {
			return err
		}
	case MessageTypeUpdateUser:
		if m.UserID == "" {
			return shared.ErrUserIDRequired
		}
		if len(m.Data) == 0 {
			return fmt.Errorf("%w: user data is required", shared.ErrInvalidPayload)
		}
	case MessageTypeToggleSuspend:
		if m.UserID == "" {
			return shared.ErrUserIDRequired
		}
	case MessageTypeRefresh, MessageTypePing:

	default:
		return shared.ErrUnknownMessageType
	}

	return nil
}

// Query returns the search text of a search message
func (m *ClientMessage) Query() string {
	q, _ := m.Data["query"].(string)
	return q
}

// Page returns the requested page of a set_page message
func (m *ClientMessage) Page() (int, error) {
	p, ok := m.Data["page"].(float64)
	if !ok || p < 1 || p != math.Trunc(p) || p > math.MaxInt32 {
		return 0, shared.ErrInvalidPage
	}
	return int(p), nil
}

// UserUpdate decodes the data of an update_user message
func (m *ClientMessage) UserUpdate() (user.Update, error) {
	var update user.Update

	raw, err := json.Marshal(m.Data)
	if err != nil {
		return update, fmt.Errorf("%w: %v", shared.ErrInvalidPayload, err)
	}
	if err := json.Unmarshal(raw, &update); err != nil {
		return update, fmt.Errorf("%w: %v", shared.ErrInvalidPayload, err)
	}
	return update, nil
}
