package cmd

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/portside-app/portside/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "portside",
	Short: "Terminal dashboard for the Portside client portal",
	Long: `Portside is a terminal dashboard for the client portal: support
tickets, job applications, consultations with card checkout, orders,
notifications, and profile management including two-factor authentication.

Running portside with no subcommand opens the dashboard.`,
	RunE: runDashboard,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is $HOME/.config/portside/config.yaml)")
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))

	rootCmd.PersistentFlags().String("api-url", "", "backend base URL (overrides api.base_url)")
	_ = viper.BindPFlag("api.base_url", rootCmd.PersistentFlags().Lookup("api-url"))
}

func initConfig() {
	// Set defaults first so they're available even without a config file
	config.SetDefaults()

	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(config.ConfigDir())
		viper.AddConfigPath("$HOME/.config/portside")
		viper.AddConfigPath(".")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("PORTSIDE")
	// PORTSIDE_API_BASE_URL maps to api.base_url
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file if it exists (ignore error if not found)
	_ = viper.ReadInConfig()
}
