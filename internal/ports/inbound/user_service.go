package inbound

import (
	"context"

	"troffee-admin-console/internal/domain/user"
)

// UserService defines the user-management operations
type UserService interface {
	// List retrieves one page of users with its stats
	List(ctx context.Context, query user.ListQuery) (*PageView, error)

	// Update updates a user's profile
	Update(ctx context.Context, userID string, update user.Update) error

	// SetSuspended suspends or unsuspends a user
	SetSuspended(ctx context.Context, userID string, suspended bool) error

	// NewConsole opens a stateful console that pushes every applied page to sink
	NewConsole(sink PageSink) UserConsole
}

// PageSink receives every page a console applies, or the error of its latest query.
// It is called with the console locked and must not call back into the console.
type PageSink func(view PageView, err error)

// UserConsole is one open user-management screen
type UserConsole interface {
	// SetSearch changes the search text; the query is debounced
	SetSearch(search string)

	// SetPage changes the page; the query is debounced
	SetPage(page int)

	// Refresh queries immediately, dropping any pending debounced query
	Refresh()

	// UpdateUser updates a user and refreshes the page
	UpdateUser(ctx context.Context, userID string, update user.Update) error

	// ToggleSuspend flips the suspension of a user on the current page
	ToggleSuspend(ctx context.Context, userID string) error

	// Close stops the console; pending and in-flight results are dropped
	Close()
}

// PageView is one page of the user table
type PageView struct {
	Seq        uint64      `json:"seq"`
	Search     string      `json:"search"`
	Page       int         `json:"page"`
	PageSize   int         `json:"page_size"`
	TotalPages int         `json:"total_pages"`
	Users      []user.User `json:"users"`
	Stats      user.Stats  `json:"stats"`
}
