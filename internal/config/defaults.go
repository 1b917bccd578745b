package config

import "time"

const (
	// DefaultBaseURL is the backend of a local development setup.
	DefaultBaseURL = "http://127.0.0.1:8000/api/"

	DefaultTimeout     = 15 * time.Second
	DefaultRedisAddr   = "localhost:6379"
	DefaultRedisPrefix = "emsctl:"
	DefaultRedisTTL    = 7 * 24 * time.Hour
)

// GetDefaultConfig returns the default configuration.
func GetDefaultConfig() Config {
	return Config{
		Server: ServerConfig{
			BaseURL: DefaultBaseURL,
			Timeout: DefaultTimeout,
		},
		Session: SessionConfig{
			Store: StoreFile,
			Redis: RedisConfig{
				Addr:   DefaultRedisAddr,
				Prefix: DefaultRedisPrefix,
				TTL:    DefaultRedisTTL,
			},
		},
		Refresh: RefreshConfig{
			Timeout: DefaultTimeout,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}
