package inbound

import (
	"context"

	"troffee-admin-console/internal/domain/auction"
)

// AuctionEditor defines the entry point of the auction edit screen
type AuctionEditor interface {
	// Open loads an auction and starts an edit session for it
	Open(ctx context.Context, auctionID string) (EditSession, error)
}

// EditSession is one auction edit form. The auction is fetched once when the session
// opens; results of calls that finish after Close are not applied.
type EditSession interface {
	// View returns what the edit form shows
	View() EditView

	// Submit applies an edit request after checking it against the lifecycle policy
	Submit(ctx context.Context, req auction.EditRequest) error

	// Delete removes the auction and closes the session
	Delete(ctx context.Context) error

	// Close dismisses the session
	Close()
}

// EditView is the auction as shown in the edit form
type EditView struct {
	Auction   auction.Auction  `json:"auction"`
	Mode      auction.EditMode `json:"mode"`
	CanDelete bool             `json:"can_delete"`
	Timezone  string           `json:"timezone"`
	Form      EditForm         `json:"form"`
}

// EditForm holds the form values, times as local wall-clock strings
type EditForm struct {
	Title         string   `json:"title"`
	Category      string   `json:"category"`
	Description   string   `json:"description"`
	StartTime     string   `json:"startTime"`
	EndTime       string   `json:"endTime"`
	StartingPrice float64  `json:"startingPrice"`
	Currency      string   `json:"currency"`
	Images        []string `json:"images"`
	Video         string   `json:"video"`
}
