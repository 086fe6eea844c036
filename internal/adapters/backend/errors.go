package backend

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"troffee-admin-console/internal/domain/shared"
)

// APIError is a non-2xx answer from the platform API
type APIError struct {
	Operation  string
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s failed: %d %s", e.Operation, e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("%s failed: %s", e.Operation, e.Message)
}

// Unwrap maps the status code onto the error taxonomy
func (e *APIError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return shared.ErrAuthorization
	case http.StatusNotFound:
		return shared.ErrNotFound
	case http.StatusBadRequest, http.StatusConflict, http.StatusUnprocessableEntity:
		return shared.ErrValidation
	default:
		return shared.ErrBackend
	}
}

type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

func newAPIError(operation string, resp *http.Response) *APIError {
	apiErr := &APIError{Operation: operation, StatusCode: resp.StatusCode}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil || len(raw) == 0 {
		return apiErr
	}

	var body errorBody
	if err := json.Unmarshal(raw, &body); err == nil {
		apiErr.Message = body.Message
		if apiErr.Message == "" {
			apiErr.Message = body.Error
		}
		return apiErr
	}

	if strings.HasPrefix(resp.Header.Get("Content-Type"), "text/plain") {
		apiErr.Message = strings.TrimSpace(string(raw))
	}
	return apiErr
}
