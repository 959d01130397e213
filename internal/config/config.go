package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config represents the complete Portside configuration
type Config struct {
	API       APIConfig       `mapstructure:"api"`
	Processor ProcessorConfig `mapstructure:"processor"`
	Links     LinksConfig     `mapstructure:"links"`
	TUI       TUIConfig       `mapstructure:"tui"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Paths     PathsConfig     `mapstructure:"paths"`
}

// APIConfig controls how the backend REST API is reached
type APIConfig struct {
	// BaseURL is the backend base URL, e.g. "https://api.example.com".
	// All /api/... paths are resolved against it.
	BaseURL string `mapstructure:"base_url"`
}

// ProcessorConfig controls the payment processor client
type ProcessorConfig struct {
	// PublishableKey is the client-side processor key. Card confirmations
	// are authorized with this key only; the secret key never exists here.
	PublishableKey string `mapstructure:"publishable_key"`
	// APIURL is the processor API base URL. Overridable for testing.
	APIURL string `mapstructure:"api_url"`
}

// LinksConfig holds externally injected URLs surfaced in the UI
type LinksConfig struct {
	// FrontendURL is the public web dashboard, used when printing links.
	FrontendURL string `mapstructure:"frontend_url"`
	// OrderSystemURL is the external order-management system.
	OrderSystemURL string `mapstructure:"order_system_url"`
}

// TUIConfig controls the terminal UI behavior
type TUIConfig struct {
	// Theme is the color theme: "light", "dark" or "system".
	// Authenticated users have their server-side preference applied on top.
	Theme string `mapstructure:"theme"`
	// HomePanelRows limits how many rows each dashboard panel displays.
	HomePanelRows int `mapstructure:"home_panel_rows"`
}

// LoggingConfig controls debug logging behavior
type LoggingConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `mapstructure:"level"`
	// MaxSizeMB rotates the log file when it exceeds this size (0 disables).
	MaxSizeMB int `mapstructure:"max_size_mb"`
	// MaxBackups is the number of rotated log files to keep.
	MaxBackups int `mapstructure:"max_backups"`
}

// PathsConfig controls where Portside stores local state (logs only; the
// portal keeps no client-side data cache).
type PathsConfig struct {
	// StateDir defaults to ~/.local/state/portside.
	StateDir string `mapstructure:"state_dir"`
}

// ResolveStateDir returns the state directory, expanding an empty value to
// the default location.
func (p *PathsConfig) ResolveStateDir() string {
	if p.StateDir != "" {
		return p.StateDir
	}
	if xdg := os.Getenv("XDG_STATE_HOME"); xdg != "" {
		return filepath.Join(xdg, "portside")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".portside"
	}
	return filepath.Join(home, ".local", "state", "portside")
}

// Default returns a Config with sensible default values
func Default() *Config {
	return &Config{
		API: APIConfig{
			BaseURL: "http://localhost:5000",
		},
		Processor: ProcessorConfig{
			APIURL: "https://api.stripe.com",
		},
		Links: LinksConfig{
			FrontendURL: "http://localhost:3000",
		},
		TUI: TUIConfig{
			Theme:         "system",
			HomePanelRows: 5,
		},
		Logging: LoggingConfig{
			Level:      "info",
			MaxSizeMB:  5,
			MaxBackups: 2,
		},
	}
}

// SetDefaults registers default values with viper
func SetDefaults() {
	defaults := Default()

	viper.SetDefault("api.base_url", defaults.API.BaseURL)

	viper.SetDefault("processor.publishable_key", defaults.Processor.PublishableKey)
	viper.SetDefault("processor.api_url", defaults.Processor.APIURL)

	viper.SetDefault("links.frontend_url", defaults.Links.FrontendURL)
	viper.SetDefault("links.order_system_url", defaults.Links.OrderSystemURL)

	viper.SetDefault("tui.theme", defaults.TUI.Theme)
	viper.SetDefault("tui.home_panel_rows", defaults.TUI.HomePanelRows)

	viper.SetDefault("logging.level", defaults.Logging.Level)
	viper.SetDefault("logging.max_size_mb", defaults.Logging.MaxSizeMB)
	viper.SetDefault("logging.max_backups", defaults.Logging.MaxBackups)

	viper.SetDefault("paths.state_dir", defaults.Paths.StateDir)
}

// Load reads the configuration from viper into a Config struct and validates it
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}

// Get returns the current configuration (convenience function)
func Get() *Config {
	cfg, err := Load()
	if err != nil {
		// Fall back to defaults if unmarshaling fails
		return Default()
	}
	return cfg
}

// ConfigDir returns the path to the user's config directory
func ConfigDir() string {
	// Check XDG_CONFIG_HOME first
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "portside")
	}
	// Fall back to ~/.config/portside
	home, err := os.UserHomeDir()
	if err != nil {
		return ".portside"
	}
	return filepath.Join(home, ".config", "portside")
}

// ConfigFile returns the path to the config file
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}
