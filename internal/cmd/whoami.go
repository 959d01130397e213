package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/portside-app/portside/internal/errors"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the identity the backend associates with this client",
	Long: `Show the identity the backend associates with this client.

Sessions are cookie-based and per-process, so outside a running dashboard
this normally reports that you are not signed in. It is mainly a
connectivity and configuration check.`,
	RunE: runWhoami,
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}

func runWhoami(cmd *cobra.Command, args []string) error {
	client, cfg, err := newCLIClient()
	if err != nil {
		return err
	}

	user, err := client.Me(context.Background())
	if err != nil {
		if errors.IsAuthError(err) {
			fmt.Fprintln(cmd.OutOrStdout(), "Not signed in.")
			if cfg.Links.FrontendURL != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "web dashboard: %s\n", cfg.Links.FrontendURL)
			}
			return nil
		}
		return fmt.Errorf("could not reach the portal: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s <%s>\n", user.DisplayName(), user.Email)
	if user.Role != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "role: %s\n", user.Role)
	}
	if cfg.Links.FrontendURL != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "web dashboard: %s\n", cfg.Links.FrontendURL)
	}
	return nil
}
