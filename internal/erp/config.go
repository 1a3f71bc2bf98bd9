package erp

import (
	"os"
	"strconv"
)

// Config holds connection settings for the ERP REST API.
type Config struct {
	BaseURL     string
	BearerToken string
	TimeoutMs   int
	LogCalls    bool
}

// DefaultConfig returns a Config with sensible defaults. The base URL has
// no usable default and must come from the environment.
func DefaultConfig() Config {
	return Config{
		TimeoutMs: 10000,
	}
}

// LoadConfig reads ERP configuration from environment variables, falling
// back to defaults for any unset values.
func LoadConfig() Config {
	cfg := DefaultConfig()

	if v := os.Getenv("LEAVEBOT_ERP_URL"); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv("LEAVEBOT_ERP_TOKEN"); v != "" {
		cfg.BearerToken = v
	}
	if v := os.Getenv("LEAVEBOT_ERP_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TimeoutMs = n
		}
	}
	if v := os.Getenv("LEAVEBOT_ERP_LOG_CALLS"); v != "" {
		cfg.LogCalls, _ = strconv.ParseBool(v)
	}

	return cfg
}
