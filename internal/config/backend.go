package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// BackendConfig holds the remote platform API settings
type BackendConfig struct {
	URL     string
	Token   string
	Timeout time.Duration
}

// GetBaseURL returns the API base URL without a trailing slash
func (c *BackendConfig) GetBaseURL() string {
	return strings.TrimRight(c.URL, "/")
}

// Validate validates the backend configuration
func (c *BackendConfig) Validate() error {
	if c.URL == "" {
		return fmt.Errorf("backend URL is required")
	}

	u, err := url.Parse(c.URL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("backend URL %q is not an absolute URL", c.URL)
	}

	if c.Timeout <= 0 {
		return fmt.Errorf("backend timeout must be positive")
	}

	return nil
}
