package outbound

import (
	"context"
	"time"

	"troffee-admin-console/internal/domain/auction"
	"troffee-admin-console/internal/domain/user"
)

// AuctionAPI defines the auction operations of the remote platform API
type AuctionAPI interface {
	// GetAuction retrieves an auction by ID
	GetAuction(ctx context.Context, id string) (*auction.Auction, error)

	// UpdateAuction replaces every editable field of an auction (multipart)
	UpdateAuction(ctx context.Context, id string, update auction.FullUpdate) error

	// UpdateAuctionEndTime changes only the end time of an auction
	UpdateAuctionEndTime(ctx context.Context, id string, endTime time.Time) error

	// DeleteAuction removes an auction
	DeleteAuction(ctx context.Context, id string) error
}

// UserAPI defines the user-management operations of the remote platform API
type UserAPI interface {
	// ListUsers retrieves a page of users matching the query
	ListUsers(ctx context.Context, query user.ListQuery) (*user.Page, error)

	// UpdateUser updates profile fields of a user
	UpdateUser(ctx context.Context, id string, update user.Update) error

	// SuspendUser suspends a user account
	SuspendUser(ctx context.Context, id string) error

	// UnsuspendUser lifts a suspension
	UnsuspendUser(ctx context.Context, id string) error
}
