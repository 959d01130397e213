package config

import (
	"fmt"
	"net/url"
	"slices"
	"strings"
)

// ValidationError represents a single validation failure
type ValidationError struct {
	Field   string // The config field path (e.g., "api.base_url")
	Value   any    // The invalid value
	Message string // Human-readable error description
}

// Error implements the error interface for ValidationError
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for ValidationErrors
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d validation errors:\n", len(e)))
	for i, err := range e {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// ValidLogLevels returns the list of valid log levels
func ValidLogLevels() []string {
	return []string{"debug", "info", "warn", "error"}
}

// ValidThemes returns the list of valid TUI themes
func ValidThemes() []string {
	return []string{"light", "dark", "system"}
}

// Validate checks the Config for invalid values and returns all validation errors found
func (c *Config) Validate() []ValidationError {
	var errors []ValidationError

	if err := validateURL(c.API.BaseURL); err != nil {
		errors = append(errors, ValidationError{
			Field:   "api.base_url",
			Value:   c.API.BaseURL,
			Message: "must be a valid http(s) URL",
		})
	}

	if c.Processor.APIURL != "" {
		if err := validateURL(c.Processor.APIURL); err != nil {
			errors = append(errors, ValidationError{
				Field:   "processor.api_url",
				Value:   c.Processor.APIURL,
				Message: "must be a valid http(s) URL",
			})
		}
	}

	if c.Links.OrderSystemURL != "" {
		if err := validateURL(c.Links.OrderSystemURL); err != nil {
			errors = append(errors, ValidationError{
				Field:   "links.order_system_url",
				Value:   c.Links.OrderSystemURL,
				Message: "must be a valid http(s) URL",
			})
		}
	}

	if !slices.Contains(ValidThemes(), c.TUI.Theme) {
		errors = append(errors, ValidationError{
			Field:   "tui.theme",
			Value:   c.TUI.Theme,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidThemes(), ", ")),
		})
	}

	if c.TUI.HomePanelRows < 1 || c.TUI.HomePanelRows > 20 {
		errors = append(errors, ValidationError{
			Field:   "tui.home_panel_rows",
			Value:   c.TUI.HomePanelRows,
			Message: "must be between 1 and 20",
		})
	}

	if !slices.Contains(ValidLogLevels(), strings.ToLower(c.Logging.Level)) {
		errors = append(errors, ValidationError{
			Field:   "logging.level",
			Value:   c.Logging.Level,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidLogLevels(), ", ")),
		})
	}

	if c.Logging.MaxSizeMB < 0 {
		errors = append(errors, ValidationError{
			Field:   "logging.max_size_mb",
			Value:   c.Logging.MaxSizeMB,
			Message: "must not be negative",
		})
	}

	if c.Logging.MaxBackups < 0 {
		errors = append(errors, ValidationError{
			Field:   "logging.max_backups",
			Value:   c.Logging.MaxBackups,
			Message: "must not be negative",
		})
	}

	return errors
}

func validateURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("missing host")
	}
	return nil
}
