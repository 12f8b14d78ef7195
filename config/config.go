// Package config provides configuration settings for the link shortener service.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// ErrMissingStoreURI is returned when no store connection string is configured.
var ErrMissingStoreURI = errors.New("MONGO_URI is not defined")

// Config holds the configuration settings for the application.
type Config struct {
	ServerPort      int
	StoreURI        string
	DatabaseName    string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
	MaxSlugAttempts int
	LogLevel        string
	GinMode         string
}

// DefaultConfig returns the default configuration settings.
// StoreURI has no default and must come from the environment.
func DefaultConfig() *Config {
	return &Config{
		ServerPort:      5000,
		DatabaseName:    "url-shortener",
		RequestTimeout:  5 * time.Second,
		ShutdownTimeout: 10 * time.Second,
		MaxSlugAttempts: 3,
		LogLevel:        "info",
		GinMode:         "release",
	}
}

// Load reads the configuration from the environment on top of DefaultConfig.
// The given env files are loaded first and must exist; with none, ./.env is
// loaded when present. Variables already set in the environment win.
func Load(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil {
		if len(envFiles) > 0 || !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("load env file: %w", err)
		}
	}

	cfg := DefaultConfig()
	cfg.StoreURI = os.Getenv("MONGO_URI")
	cfg.DatabaseName = getEnv("MONGO_DATABASE", cfg.DatabaseName)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.GinMode = getEnv("GIN_MODE", cfg.GinMode)

	var err error
	if cfg.ServerPort, err = getEnvInt("PORT", cfg.ServerPort); err != nil {
		return nil, err
	}
	if cfg.MaxSlugAttempts, err = getEnvInt("SLUG_MAX_ATTEMPTS", cfg.MaxSlugAttempts); err != nil {
		return nil, err
	}
	if cfg.RequestTimeout, err = getEnvDuration("REQUEST_TIMEOUT", cfg.RequestTimeout); err != nil {
		return nil, err
	}
	if cfg.ShutdownTimeout, err = getEnvDuration("SHUTDOWN_TIMEOUT", cfg.ShutdownTimeout); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the configuration can be used to start the service.
func (c *Config) Validate() error {
	if c.StoreURI == "" {
		return ErrMissingStoreURI
	}
	if c.ServerPort <= 0 || c.ServerPort > 65535 {
		return fmt.Errorf("invalid port %d", c.ServerPort)
	}
	if c.MaxSlugAttempts <= 0 {
		return fmt.Errorf("SLUG_MAX_ATTEMPTS must be positive, got %d", c.MaxSlugAttempts)
	}
	if c.RequestTimeout <= 0 || c.ShutdownTimeout <= 0 {
		return errors.New("timeouts must be positive")
	}
	switch c.GinMode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("invalid GIN_MODE %q", c.GinMode)
	}
	return nil
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + strconv.Itoa(c.ServerPort)
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return n, nil
}

func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return d, nil
}
