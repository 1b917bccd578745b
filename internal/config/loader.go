package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"emsctl/pkg/logging"
)

const (
	userConfigDir  = ".config/emsctl"
	configFileName = "config.yaml"
)

// DefaultConfigDir returns ~/.config/emsctl.
func DefaultConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine user config directory: %w", err)
	}
	return filepath.Join(homeDir, userConfigDir), nil
}

// LoadConfig loads config.yaml from configDir on top of the defaults.
func LoadConfig(configDir string) (Config, error) {
	configFilePath := filepath.Join(configDir, configFileName)
	config := GetDefaultConfig()

	data, err := os.ReadFile(configFilePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logging.Debug("ConfigLoader", "No config.yaml found at %s, using defaults", configFilePath)
			return config, nil
		}
		return Config{}, fmt.Errorf("error reading config from %s: %w", configFilePath, err)
	}

	if err := yaml.Unmarshal(data, &config); err != nil {
		return Config{}, fmt.Errorf("error loading config from %s: %w", configFilePath, err)
	}
	if config.Session.Redis.Password != "" {
		if info, err := os.Stat(configFilePath); err == nil && info.Mode().Perm()&0o077 != 0 {
			logging.Warn("ConfigLoader", "%s holds a redis password but is readable by other users (mode %s)", configFilePath, info.Mode().Perm())
		}
	}
	logging.Debug("ConfigLoader", "Loaded configuration from %s", configFilePath)
	return config, nil
}
