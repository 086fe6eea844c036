package shared

import (
	"errors"
	"fmt"
)

// Error categories. Specific errors wrap one of these so callers can branch with errors.Is.
var (
	ErrValidation    = errors.New("validation failed")
	ErrAuthorization = errors.New("not authorized")
	ErrNetwork       = errors.New("network error")
	ErrNotFound      = errors.New("not found")
	ErrBackend       = errors.New("backend error")
)

// Domain-specific errors
var (
	// Auction edit errors
	ErrFieldNotEditable  = fmt.Errorf("%w: field not editable", ErrValidation)
	ErrAuctionReadOnly   = fmt.Errorf("%w: auction has ended and cannot be edited", ErrValidation)
	ErrDeleteNotAllowed  = fmt.Errorf("%w: auction cannot be deleted in its current state", ErrValidation)
	ErrEmptyEdit         = fmt.Errorf("%w: no fields to update", ErrValidation)
	ErrInvalidDateTime   = fmt.Errorf("%w: invalid local date time, expected YYYY-MM-DDTHH:MM", ErrValidation)
	ErrInvalidEndTime    = fmt.Errorf("%w: end time must be after start time", ErrValidation)
	ErrInvalidPrice      = fmt.Errorf("%w: starting price must be greater than 0", ErrValidation)
	ErrAuctionIDRequired = fmt.Errorf("%w: auction id is required", ErrValidation)

	// User errors
	ErrUserIDRequired = fmt.Errorf("%w: user_id is required", ErrValidation)
	ErrUserNotOnPage  = fmt.Errorf("%w: user is not on the current page", ErrNotFound)

	// Session errors
	ErrBusy          = errors.New("another request is already in progress")
	ErrSessionClosed = errors.New("session is closed")

	// WebSocket message validation errors
	ErrMessageTypeRequired = fmt.Errorf("%w: message type is required", ErrValidation)
	ErrUnknownMessageType  = fmt.Errorf("%w: unknown message type", ErrValidation)
	ErrInvalidPage         = fmt.Errorf("%w: page must be a positive number", ErrValidation)
	ErrInvalidPayload      = fmt.Errorf("%w: invalid payload", ErrValidation)
)

// UserMessage converts an error into the text shown to the operator.
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNetwork):
		return "Could not reach the auction service, please try again"
	case errors.Is(err, ErrAuthorization):
		return "You are not allowed to perform this action"
	case errors.Is(err, ErrBusy):
		return "Please wait for the previous request to finish"
	default:
		return err.Error()
	}
}
