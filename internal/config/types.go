package config

import "time"

// Config is the top-level configuration structure for emsctl.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Session SessionConfig `yaml:"session"`
	Refresh RefreshConfig `yaml:"refresh"`
	Logging LoggingConfig `yaml:"logging"`
}

// ServerConfig locates the EMS backend.
type ServerConfig struct {
	BaseURL string        `yaml:"baseURL"`           // Base of every API path (default: http://127.0.0.1:8000/api/)
	Timeout time.Duration `yaml:"timeout,omitempty"` // Per-request timeout (default: 15s)
}

// Session store kinds.
const (
	StoreFile  = "file"
	StoreRedis = "redis"
)

// SessionConfig selects where a remembered session is kept.
type SessionConfig struct {
	Store      string      `yaml:"store"`                // file or redis
	StorageDir string      `yaml:"storageDir,omitempty"` // Directory of the session file for the file store
	Redis      RedisConfig `yaml:"redis,omitempty"`
}

// RedisConfig configures the redis session store.
type RedisConfig struct {
	Addr     string        `yaml:"addr"`
	Password string        `yaml:"password,omitempty"`
	DB       int           `yaml:"db,omitempty"`
	Prefix   string        `yaml:"prefix,omitempty"`
	TTL      time.Duration `yaml:"ttl,omitempty"`
}

// RefreshConfig tunes the token refresh protocol.
type RefreshConfig struct {
	Timeout         time.Duration `yaml:"timeout,omitempty"`
	ProactiveMargin time.Duration `yaml:"proactiveMargin,omitempty"`
}

// LoggingConfig sets up structured logging.
type LoggingConfig struct {
	Level  string `yaml:"level,omitempty"`  // debug, info, warn or error
	Format string `yaml:"format,omitempty"` // text or json
}
