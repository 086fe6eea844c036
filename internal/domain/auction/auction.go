package auction

import (
	"time"
)

// Status represents the current status of an auction
type Status string

const (
	StatusUpcoming Status = "upcoming"
	StatusActive   Status = "active"
	StatusEnded    Status = "ended"
)

// Auction is the auction record as served by the auction API
type Auction struct {
	ID            string    `json:"_id"`
	Title         string    `json:"title"`
	Category      string    `json:"category"`
	Description   string    `json:"description"`
	StartingPrice float64   `json:"startingPrice"`
	Currency      string    `json:"currency"`
	Images        []string  `json:"images"`
	Video         string    `json:"video"`
	Status        Status    `json:"status"`
	StartDate     time.Time `json:"startDate"`
	EndDate       time.Time `json:"endDate"`
}

// IsUpcoming returns true if the auction has not started yet
func (a *Auction) IsUpcoming() bool {
	return a.Status == StatusUpcoming
}

// IsActive returns true if the auction is currently running
func (a *Auction) IsActive() bool {
	return a.Status == StatusActive
}

// IsEnded returns true if the auction has ended
func (a *Auction) IsEnded() bool {
	return a.Status == StatusEnded
}

// Valid reports whether s is one of the known lifecycle statuses
func (s Status) Valid() bool {
	switch s {
	case StatusUpcoming, StatusActive, StatusEnded:
		return true
	}
	return false
}
