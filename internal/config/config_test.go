package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg == nil {
		t.Fatal("Default() returned nil")
	}

	if cfg.API.BaseURL == "" {
		t.Error("API.BaseURL should have a default")
	}
	if cfg.Processor.APIURL != "https://api.stripe.com" {
		t.Errorf("Processor.APIURL = %q, want the live processor URL", cfg.Processor.APIURL)
	}
	if cfg.TUI.Theme != "system" {
		t.Errorf("TUI.Theme = %q, want %q", cfg.TUI.Theme, "system")
	}
	if cfg.TUI.HomePanelRows != 5 {
		t.Errorf("TUI.HomePanelRows = %d, want 5", cfg.TUI.HomePanelRows)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "info")
	}

	if errs := cfg.Validate(); len(errs) != 0 {
		t.Errorf("Default() should validate cleanly, got %v", errs)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{
			name:   "bad api url",
			mutate: func(c *Config) { c.API.BaseURL = "not a url" },
			field:  "api.base_url",
		},
		{
			name:   "ftp api url",
			mutate: func(c *Config) { c.API.BaseURL = "ftp://example.com" },
			field:  "api.base_url",
		},
		{
			name:   "bad theme",
			mutate: func(c *Config) { c.TUI.Theme = "solarized" },
			field:  "tui.theme",
		},
		{
			name:   "zero panel rows",
			mutate: func(c *Config) { c.TUI.HomePanelRows = 0 },
			field:  "tui.home_panel_rows",
		},
		{
			name:   "bad log level",
			mutate: func(c *Config) { c.Logging.Level = "verbose" },
			field:  "logging.level",
		},
		{
			name:   "negative backups",
			mutate: func(c *Config) { c.Logging.MaxBackups = -1 },
			field:  "logging.max_backups",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			errs := cfg.Validate()
			if len(errs) == 0 {
				t.Fatal("expected a validation error, got none")
			}
			found := false
			for _, err := range errs {
				if err.Field == tt.field {
					found = true
				}
			}
			if !found {
				t.Errorf("no error for field %q in %v", tt.field, errs)
			}
		})
	}
}

func TestValidationErrorsMessage(t *testing.T) {
	errs := ValidationErrors{
		{Field: "api.base_url", Value: "x", Message: "must be a valid http(s) URL"},
		{Field: "tui.theme", Value: "y", Message: "must be one of: light, dark, system"},
	}
	msg := errs.Error()
	if msg == "" {
		t.Fatal("Error() should not be empty")
	}
	// Multi-error message enumerates each failure.
	if got := (ValidationErrors{errs[0]}).Error(); got != errs[0].Error() {
		t.Errorf("single error message = %q, want %q", got, errs[0].Error())
	}
}

func TestResolveStateDir(t *testing.T) {
	p := &PathsConfig{StateDir: "/tmp/custom-state"}
	if got := p.ResolveStateDir(); got != "/tmp/custom-state" {
		t.Errorf("ResolveStateDir() = %q, want explicit value", got)
	}

	t.Setenv("XDG_STATE_HOME", filepath.Join(os.TempDir(), "xdg-state"))
	p = &PathsConfig{}
	want := filepath.Join(os.TempDir(), "xdg-state", "portside")
	if got := p.ResolveStateDir(); got != want {
		t.Errorf("ResolveStateDir() = %q, want %q", got, want)
	}
}

func TestConfigDir(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg-config")
	if got := ConfigDir(); got != "/tmp/xdg-config/portside" {
		t.Errorf("ConfigDir() = %q", got)
	}
	if got := ConfigFile(); got != "/tmp/xdg-config/portside/config.yaml" {
		t.Errorf("ConfigFile() = %q", got)
	}
}
