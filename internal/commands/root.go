package commands

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/banklytics/banklytics/internal/buildinfo"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "banklytics",
		Short:   "Personal finance tracking",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Optional .env carrying BANKLYTICS_* overrides.
			_ = godotenv.Load()
		},
	}

	rootCmd.PersistentFlags().String("config", "banklytics.yaml", "path to config file")

	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newImportCommand())
	rootCmd.AddCommand(newTxCommand())
	rootCmd.AddCommand(newBudgetCommand())
	rootCmd.AddCommand(newExportCommand())
	rootCmd.AddCommand(newReportCommand())

	return rootCmd
}
