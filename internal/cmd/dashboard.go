package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/portside-app/portside/internal/api"
	"github.com/portside-app/portside/internal/clipboard"
	"github.com/portside-app/portside/internal/config"
	"github.com/portside-app/portside/internal/logging"
	"github.com/portside-app/portside/internal/payment"
	"github.com/portside-app/portside/internal/processor"
	"github.com/portside-app/portside/internal/session"
	"github.com/portside-app/portside/internal/theme"
	"github.com/portside-app/portside/internal/tui"
)

func runDashboard(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger, err := logging.NewLoggerWithRotation(
		cfg.Paths.ResolveStateDir(),
		cfg.Logging.Level,
		logging.RotationConfig{MaxSizeMB: cfg.Logging.MaxSizeMB, MaxBackups: cfg.Logging.MaxBackups},
	)
	if err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}
	defer logger.Close()

	app := tui.NewApp(logger)

	client, err := api.New(cfg.API.BaseURL, app.Guard(), logger)
	if err != nil {
		return fmt.Errorf("failed to create API client: %w", err)
	}
	sess := session.NewManager(client, logger)

	// Checkout is only possible with a processor key configured; the rest
	// of the dashboard works without one.
	var confirmer payment.Confirmer
	if cfg.Processor.PublishableKey != "" {
		proc, err := processor.New(cfg.Processor.APIURL, cfg.Processor.PublishableKey, logger)
		if err != nil {
			return fmt.Errorf("failed to create processor client: %w", err)
		}
		confirmer = proc
	} else {
		logger.Warn("no processor publishable key configured; payments disabled")
	}

	deps := tui.Deps{
		Client:    client,
		Session:   sess,
		Theme:     theme.NewManager(client, sess, theme.Mode(cfg.TUI.Theme), logger),
		Copier:    clipboard.New(logger),
		Confirmer: confirmer,
		Logger:    logger,
		PanelRows: cfg.TUI.HomePanelRows,
		OrderURL:  cfg.Links.OrderSystemURL,
	}

	if err := app.Run(deps); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
