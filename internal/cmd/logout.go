package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Ask the backend to invalidate the current session",
	RunE:  runLogout,
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}

func runLogout(cmd *cobra.Command, args []string) error {
	client, _, err := newCLIClient()
	if err != nil {
		return err
	}

	if err := client.Logout(context.Background()); err != nil {
		return fmt.Errorf("logout failed: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Signed out.")
	return nil
}
