// Package commands wires the CLI surface: every subcommand loads the
// configured store, runs one operation on the ledger, and prints a short
// human-readable result.
package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/olex-green/family-budget/internal/buildinfo"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	var configPath string

	rootCmd := &cobra.Command{
		Use:     "familybudget",
		Short:   "Personal bank-transaction ledger",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "budget.yaml", "path to the project configuration")

	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newImportCommand(&configPath))
	rootCmd.AddCommand(newSummaryCommand(&configPath))
	rootCmd.AddCommand(newTransactionsCommand(&configPath))
	rootCmd.AddCommand(newRulesCommand(&configPath))
	rootCmd.AddCommand(newClearMonthCommand(&configPath))
	rootCmd.AddCommand(newSettingsCommands(&configPath)...)

	return rootCmd
}
