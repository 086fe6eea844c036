package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "http://localhost:5000/api", cfg.Backend.URL)
	assert.Equal(t, 10*time.Second, cfg.Backend.Timeout)
	assert.Equal(t, 400*time.Millisecond, cfg.Console.SearchDebounce)
	assert.Equal(t, 10, cfg.Console.UsersPageSize)
	assert.Equal(t, "Local", cfg.Console.DisplayTimezone)
	assert.Equal(t, "admin:events", cfg.Redis.EventsChannel)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig_EnvironmentOverrides(t *testing.T) {
	t.Setenv(BackendURL, "https://auction.example.com/api/")
	t.Setenv(SearchDebounce, "250ms")
	t.Setenv(UsersPageSize, "25")
	t.Setenv(DisplayTimezone, "Europe/Berlin")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "https://auction.example.com/api", cfg.Backend.GetBaseURL())
	assert.Equal(t, 250*time.Millisecond, cfg.Console.SearchDebounce)
	assert.Equal(t, 25, cfg.Console.UsersPageSize)
	assert.Equal(t, "Europe/Berlin", cfg.Console.DisplayTimezone)
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		cfg, err := LoadConfig()
		require.NoError(t, err)
		return cfg
	}

	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{name: "missing port", mutate: func(c *Config) { c.Server.Port = "" }},
		{name: "missing backend", mutate: func(c *Config) { c.Backend.URL = "" }},
		{name: "relative backend", mutate: func(c *Config) { c.Backend.URL = "/api" }},
		{name: "zero timeout", mutate: func(c *Config) { c.Backend.Timeout = 0 }},
		{name: "bad page size", mutate: func(c *Config) { c.Console.UsersPageSize = 0 }},
		{name: "missing redis", mutate: func(c *Config) { c.Redis.Addr = "" }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := base()
			tc.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
