package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Configuration constants
const (
	// Server Configuration
	Port = "PORT"
	Host = "HOST"

	// Backend API Configuration
	BackendURL     = "BACKEND_URL"
	BackendToken   = "BACKEND_TOKEN"
	BackendTimeout = "BACKEND_TIMEOUT"

	// Console Configuration
	DisplayTimezone = "DISPLAY_TIMEZONE"
	SearchDebounce  = "SEARCH_DEBOUNCE"
	UsersPageSize   = "USERS_PAGE_SIZE"

	// Logging Configuration
	LogLevel  = "LOG_LEVEL"
	LogFormat = "LOG_FORMAT"

	// Redis Configuration
	RedisAddr          = "REDIS_ADDR"
	RedisPassword      = "REDIS_PASSWORD"
	RedisDB            = "REDIS_DB"
	RedisEventsChannel = "REDIS_EVENTS_CHANNEL"

	// WebSocket Configuration
	WSReadBufferSize  = "WS_READ_BUFFER_SIZE"
	WSWriteBufferSize = "WS_WRITE_BUFFER_SIZE"
	WSMaxWorkers      = 4
	WSMaxCapacity     = 32
)

// Config holds all application configuration
type Config struct {
	Server    ServerConfig
	Backend   BackendConfig
	Console   ConsoleConfig
	Redis     RedisConfig
	Logging   LoggingConfig
	WebSocket WebSocketConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port string
	Host string
}

// ConsoleConfig holds settings of the admin screens
type ConsoleConfig struct {
	DisplayTimezone string
	SearchDebounce  time.Duration
	UsersPageSize   int
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string
	Format string
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Addr          string
	Password      string
	DB            int
	EventsChannel string
}

// WebSocketConfig holds WebSocket configuration
type WebSocketConfig struct {
	ReadBufferSize  int
	WriteBufferSize int
}

// LoadConfig loads configuration from environment variables and .envrc file
func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigName(".envrc")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("../config")

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	// Config file is optional, environment variables are enough
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	return fromViper(v), nil
}

func fromViper(v *viper.Viper) *Config {
	return &Config{
		Server: ServerConfig{
			Port: v.GetString(Port),
			Host: v.GetString(Host),
		},
		Backend: BackendConfig{
			URL:     v.GetString(BackendURL),
			Token:   v.GetString(BackendToken),
			Timeout: v.GetDuration(BackendTimeout),
		},
		Console: ConsoleConfig{
			DisplayTimezone: v.GetString(DisplayTimezone),
			SearchDebounce:  v.GetDuration(SearchDebounce),
			UsersPageSize:   v.GetInt(UsersPageSize),
		},
		Redis: RedisConfig{
			Addr:          v.GetString(RedisAddr),
			Password:      v.GetString(RedisPassword),
			DB:            v.GetInt(RedisDB),
			EventsChannel: v.GetString(RedisEventsChannel),
		},
		Logging: LoggingConfig{
			Level:  v.GetString(LogLevel),
			Format: v.GetString(LogFormat),
		},
		WebSocket: WebSocketConfig{
			ReadBufferSize:  v.GetInt(WSReadBufferSize),
			WriteBufferSize: v.GetInt(WSWriteBufferSize),
		},
	}
}

// setDefaults sets default values for configuration
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault(Port, "8080")
	v.SetDefault(Host, "")

	// Backend defaults
	v.SetDefault(BackendURL, "http://localhost:5000/api")
	v.SetDefault(BackendToken, "")
	v.SetDefault(BackendTimeout, "10s")

	// Console defaults
	v.SetDefault(DisplayTimezone, "Local")
	v.SetDefault(SearchDebounce, "400ms")
	v.SetDefault(UsersPageSize, 10)

	// Redis defaults
	v.SetDefault(RedisAddr, "localhost:6379")
	v.SetDefault(RedisPassword, "")
	v.SetDefault(RedisDB, 0)
	v.SetDefault(RedisEventsChannel, "admin:events")

	// Logging defaults
	v.SetDefault(LogLevel, "info")
	v.SetDefault(LogFormat, "json")

	// WebSocket defaults
	v.SetDefault(WSReadBufferSize, 1024)
	v.SetDefault(WSWriteBufferSize, 1024)
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("server port is required")
	}

	if err := c.Backend.Validate(); err != nil {
		return err
	}

	if c.Console.SearchDebounce < 0 {
		return fmt.Errorf("search debounce cannot be negative")
	}

	if c.Console.UsersPageSize <= 0 {
		return fmt.Errorf("users page size must be positive")
	}

	if c.Redis.Addr == "" {
		return fmt.Errorf("Redis address is required")
	}

	return nil
}
