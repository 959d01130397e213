package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/portside-app/portside/internal/api"
	"github.com/portside-app/portside/internal/config"
	"github.com/portside-app/portside/internal/logging"
)

var loginCmd = &cobra.Command{
	Use:   "login [email]",
	Short: "Verify your credentials against the portal",
	Long: `Verify your credentials against the portal backend.

Sessions are cookie-based and live only as long as a running dashboard, so
this command is a credential check: it tells you whether the backend accepts
the email and password before you open the dashboard.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLogin,
}

func init() {
	rootCmd.AddCommand(loginCmd)
}

func runLogin(cmd *cobra.Command, args []string) error {
	email := ""
	if len(args) > 0 {
		email = args[0]
	}
	if email == "" {
		fmt.Fprint(cmd.OutOrStdout(), "Email: ")
		line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		if err != nil {
			return fmt.Errorf("reading email: %w", err)
		}
		email = strings.TrimSpace(line)
	}
	if email == "" {
		return fmt.Errorf("an email address is required")
	}

	fmt.Fprint(cmd.OutOrStdout(), "Password: ")
	password, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(cmd.OutOrStdout())
	if err != nil {
		return fmt.Errorf("reading password: %w", err)
	}

	client, _, err := newCLIClient()
	if err != nil {
		return err
	}

	user, err := client.Login(context.Background(), email, string(password))
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s <%s>\n", user.DisplayName(), user.Email)
	return nil
}

// newCLIClient builds an API client for one-shot subcommands: no navigation
// guard callbacks, log level from config.
func newCLIClient() (*api.Client, *config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("invalid configuration: %w", err)
	}
	logger, err := logging.NewLogger(cfg.Paths.ResolveStateDir(), cfg.Logging.Level)
	if err != nil {
		logger = logging.NopLogger()
	}
	client, err := api.New(cfg.API.BaseURL, nil, logger)
	if err != nil {
		return nil, nil, err
	}
	return client, cfg, nil
}
