package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	configPath string
	verbose    bool
)

// NewRootCommand creates the root command for the CLI
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "carrierplus",
		Short: "CarrierPlus CLI - operate the simulation engine",
		Long: `CarrierPlus CLI runs simulation jobs and inspects engine state. Job
commands go through the daemon's socket when it is running; everything else
works directly against the database.

Examples:
  carrierplus jobs list
  carrierplus jobs run payroll
  carrierplus db migrate
  carrierplus ledger transactions --company 3f1c...
  carrierplus production start --factory 9a2e... --recipe 51bd...`,
		SilenceUsage: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to config file (default: ./config.yaml, ./configs, /etc/carrierplus)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Log at debug level to stderr")

	rootCmd.AddCommand(NewJobsCommand())
	rootCmd.AddCommand(NewDatabaseCommand())
	rootCmd.AddCommand(NewConfigCommand())
	rootCmd.AddCommand(NewLedgerCommand())
	rootCmd.AddCommand(NewProductionCommand())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
