package outbound

import (
	"context"
)

// EventType represents the type of event being broadcasted
type EventType string

const (
	EventTypeAuctionUpdated        EventType = "auction.updated"
	EventTypeAuctionEndTimeUpdated EventType = "auction.end_time_updated"
	EventTypeAuctionDeleted        EventType = "auction.deleted"
	EventTypeUserUpdated           EventType = "user.updated"
	EventTypeUserSuspended         EventType = "user.suspended"
	EventTypeUserUnsuspended       EventType = "user.unsuspended"
)

// IsUserEvent returns true for events that change the user list
func (t EventType) IsUserEvent() bool {
	switch t {
	case EventTypeUserUpdated, EventTypeUserSuspended, EventTypeUserUnsuspended:
		return true
	}
	return false
}

// IsAuctionEvent returns true for events that change auction data
func (t EventType) IsAuctionEvent() bool {
	switch t {
	case EventTypeAuctionUpdated, EventTypeAuctionEndTimeUpdated, EventTypeAuctionDeleted:
		return true
	}
	return false
}

// Event represents a broadcast event
type Event struct {
	Type      EventType              `json:"type"`
	SubjectID string                 `json:"subject_id"`
	Data      map[string]interface{} `json:"data,omitempty"`
	Timestamp int64                  `json:"timestamp"`
}

// Notifier publishes admin events so other open screens can refresh
type Notifier interface {
	// Publish publishes an event to every subscriber
	Publish(ctx context.Context, event Event) error

	// Subscribe returns a channel of events that is closed when ctx is done
	Subscribe(ctx context.Context) (<-chan Event, error)
}
