package config

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"emsctl/pkg/logging"
)

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, configFileName), []byte(content), 0600))
}

func TestLoadConfig_DefaultsWhenMissing(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, GetDefaultConfig(), cfg)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig_OverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `
server:
  baseURL: https://ems.example.com/api/
session:
  store: redis
  redis:
    addr: redis.internal:6379
    db: 2
refresh:
  proactiveMargin: 30s
logging:
  level: debug
  format: json
`)

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "https://ems.example.com/api/", cfg.Server.BaseURL)
	assert.Equal(t, DefaultTimeout, cfg.Server.Timeout, "unset fields keep their defaults")
	assert.Equal(t, StoreRedis, cfg.Session.Store)
	assert.Equal(t, "redis.internal:6379", cfg.Session.Redis.Addr)
	assert.Equal(t, 2, cfg.Session.Redis.DB)
	assert.Equal(t, DefaultRedisPrefix, cfg.Session.Redis.Prefix)
	assert.Equal(t, 30*time.Second, cfg.Refresh.ProactiveMargin)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig_Malformed(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "server: [unclosed")

	_, err := LoadConfig(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config.yaml")
}

func TestLoadConfig_WarnsOnReadableRedisPassword(t *testing.T) {
	const content = `
session:
  store: redis
  redis:
    addr: redis.internal:6379
    password: hunter2
`
	tests := []struct {
		name     string
		mode     os.FileMode
		wantWarn bool
	}{
		{"private file", 0600, false},
		{"group readable", 0640, true},
		{"world readable", 0644, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logging.Init(logging.LevelWarn, logging.FormatText, &buf)
			t.Cleanup(func() { logging.Init(logging.LevelInfo, logging.FormatText, io.Discard) })

			dir := t.TempDir()
			path := filepath.Join(dir, configFileName)
			require.NoError(t, os.WriteFile(path, []byte(content), tt.mode))
			require.NoError(t, os.Chmod(path, tt.mode))

			cfg, err := LoadConfig(dir)
			require.NoError(t, err)
			assert.Equal(t, "hunter2", cfg.Session.Redis.Password)

			if tt.wantWarn {
				assert.Contains(t, buf.String(), "readable by other users")
				assert.NotContains(t, buf.String(), "hunter2")
			} else {
				assert.Empty(t, buf.String())
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(c *Config)
		wantField string
	}{
		{"empty base URL", func(c *Config) { c.Server.BaseURL = "" }, "server.baseURL"},
		{"relative base URL", func(c *Config) { c.Server.BaseURL = "/api/" }, "server.baseURL"},
		{"unsupported scheme", func(c *Config) { c.Server.BaseURL = "ftp://host/api/" }, "server.baseURL"},
		{"negative timeout", func(c *Config) { c.Server.Timeout = -time.Second }, "server.timeout"},
		{"unknown store", func(c *Config) { c.Session.Store = "sqlite" }, "session.store"},
		{"redis without addr", func(c *Config) { c.Session.Store = StoreRedis; c.Session.Redis.Addr = "" }, "session.redis.addr"},
		{"negative redis db", func(c *Config) { c.Session.Store = StoreRedis; c.Session.Redis.DB = -1 }, "session.redis.db"},
		{"negative margin", func(c *Config) { c.Refresh.ProactiveMargin = -time.Second }, "refresh.proactiveMargin"},
		{"unknown log format", func(c *Config) { c.Logging.Format = "xml" }, "logging.format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := GetDefaultConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			var errs ValidationErrors
			require.ErrorAs(t, err, &errs)
			require.Len(t, errs, 1)
			assert.Equal(t, tt.wantField, errs[0].Field)
		})
	}
}

func TestValidationErrors_Error(t *testing.T) {
	var errs ValidationErrors
	assert.Equal(t, "no validation errors", errs.Error())

	errs.Add("server.baseURL", "is required", "")
	assert.Equal(t, "field 'server.baseURL': is required", errs.Error())

	errs.Add("session.store", "is invalid", "x")
	assert.Contains(t, errs.Error(), "validation failed:")
	assert.Contains(t, errs.Error(), "session.store")
}

func TestDefaultConfigDir(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dir, err := DefaultConfigDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(os.Getenv("HOME"), userConfigDir), dir)
}
