package cli

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"emsctl/internal/config"
	"emsctl/internal/formatting"
)

// Environment variables that supply flag defaults.
const (
	EnvEndpoint   = "EMSCTL_ENDPOINT"
	EnvConfigPath = "EMSCTL_CONFIG"
)

// CommandFlags holds the flag values shared by every emsctl command.
type CommandFlags struct {
	// OutputFormat specifies the desired output format (table, wide, json, yaml)
	OutputFormat string
	// NoHeaders suppresses the header row in table output
	NoHeaders bool
	// Quiet suppresses progress indicators and non-essential output
	Quiet bool
	// Debug enables debug logging, including every token refresh
	Debug bool
	// ConfigPath specifies the configuration directory
	ConfigPath string
	// Endpoint overrides server.baseURL from the configuration
	Endpoint string
}

// RegisterCommonFlags registers the shared flags as persistent flags of cmd.
//
// The registered flags are:
//   - --output/-o: Output format (table, wide, json, yaml), default: "table"
//   - --no-headers: Suppress header row in table output
//   - --quiet/-q: Suppress non-essential output
//   - --debug: Enable debug logging
//   - --config-path: Configuration directory (env: EMSCTL_CONFIG)
//   - --endpoint: EMS API base URL (env: EMSCTL_ENDPOINT)
func RegisterCommonFlags(cmd *cobra.Command, flags *CommandFlags) {
	cmd.PersistentFlags().StringVarP(&flags.OutputFormat, "output", "o", "table", "Output format (table, wide, json, yaml)")
	cmd.PersistentFlags().BoolVar(&flags.NoHeaders, "no-headers", false, "Suppress header row in table output")
	cmd.PersistentFlags().BoolVarP(&flags.Quiet, "quiet", "q", false, "Suppress non-essential output")
	cmd.PersistentFlags().BoolVar(&flags.Debug, "debug", false, "Enable debug logging")
	cmd.PersistentFlags().StringVar(&flags.ConfigPath, "config-path", GetDefaultConfigPath(), "Configuration directory (env: EMSCTL_CONFIG)")
	cmd.PersistentFlags().StringVar(&flags.Endpoint, "endpoint", GetDefaultEndpoint(), "EMS API base URL (env: EMSCTL_ENDPOINT)")
}

// GetDefaultEndpoint returns $EMSCTL_ENDPOINT, or "" to use the configured
// base URL.
func GetDefaultEndpoint() string {
	return strings.TrimSpace(os.Getenv(EnvEndpoint))
}

// GetDefaultConfigPath returns $EMSCTL_CONFIG, falling back to
// ~/.config/emsctl.
func GetDefaultConfigPath() string {
	if dir := strings.TrimSpace(os.Getenv(EnvConfigPath)); dir != "" {
		return dir
	}
	dir, err := config.DefaultConfigDir()
	if err != nil {
		return ""
	}
	return dir
}

// OutputOptions converts the output flags into formatting options.
func (f *CommandFlags) OutputOptions() (formatting.Options, error) {
	format, err := formatting.ParseFormat(f.OutputFormat)
	if err != nil {
		return formatting.Options{}, err
	}
	return formatting.Options{
		Format:    format,
		NoHeaders: f.NoHeaders,
	}, nil
}

// LoadConfig loads the configuration from ConfigPath and applies the flag
// overrides. The session file lives next to config.yaml unless the
// configuration names another directory.
func (f *CommandFlags) LoadConfig() (config.Config, error) {
	cfg, err := config.LoadConfig(f.ConfigPath)
	if err != nil {
		return config.Config{}, err
	}
	if f.Endpoint != "" {
		cfg.Server.BaseURL = f.Endpoint
	}
	if cfg.Session.StorageDir == "" {
		cfg.Session.StorageDir = f.ConfigPath
	}
	if f.Debug {
		cfg.Logging.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}
