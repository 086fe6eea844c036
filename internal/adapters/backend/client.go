package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"troffee-admin-console/internal/config"
	"troffee-admin-console/internal/domain/shared"
	"troffee-admin-console/internal/metrics"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const maxErrorBody = 64 << 10

// Client implements outbound.AuctionAPI and outbound.UserAPI over HTTP
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	logger     zerolog.Logger
}

type ClientParams struct {
	Config     config.BackendConfig
	HTTPClient *http.Client
	Logger     zerolog.Logger
}

// NewClient creates a new platform API client
func NewClient(params ClientParams) *Client {
	httpClient := params.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: params.Config.Timeout}
	}

	return &Client{
		baseURL:    params.Config.GetBaseURL(),
		token:      params.Config.Token,
		httpClient: httpClient,
		logger:     params.Logger.With().Str("component", "backend_client").Logger(),
	}
}

type request struct {
	operation   string
	method      string
	path        string
	body        io.Reader
	contentType string
}

// do sends req and decodes a successful JSON response into out (when not nil)
func (c *Client) do(ctx context.Context, req request, out interface{}) error {
	httpReq, err := http.NewRequestWithContext(ctx, req.method, c.baseURL+req.path, req.body)
	if err != nil {
		return fmt.Errorf("failed to build %s request: %w", req.operation, err)
	}

	requestID := uuid.New().String()
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("X-Request-ID", requestID)
	if req.contentType != "" {
		httpReq.Header.Set("Content-Type", req.contentType)
	}
	if c.token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	metrics.BackendRequestDuration.WithLabelValues(req.operation).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.BackendRequestsTotal.WithLabelValues(req.operation, "network_error").Inc()
		c.logger.Error().Err(err).
			Str("operation", req.operation).
			Str("request_id", requestID).
			Msg("Request to platform API failed")
		return fmt.Errorf("%w: %s: %w", shared.ErrNetwork, req.operation, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		metrics.BackendRequestsTotal.WithLabelValues(req.operation, outcome(resp.StatusCode)).Inc()
		apiErr := newAPIError(req.operation, resp)
		c.logger.Warn().
			Str("operation", req.operation).
			Str("request_id", requestID).
			Int("status", resp.StatusCode).
			Str("message", apiErr.Message).
			Msg("Platform API rejected request")
		return apiErr
	}

	metrics.BackendRequestsTotal.WithLabelValues(req.operation, "success").Inc()
	c.logger.Debug().
		Str("operation", req.operation).
		Str("request_id", requestID).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("Platform API request completed")

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to decode %s response: %v", shared.ErrBackend, req.operation, err)
	}

	return nil
}

func outcome(status int) string {
	if status >= http.StatusInternalServerError {
		return "http_5xx"
	}
	return "http_" + strconv.Itoa(status)
}
