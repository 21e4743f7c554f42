// Package commands implements the cheetah command line.
package commands

import (
	"os"

	"github.com/spf13/cobra"
)

// globalOptions are the persistent flags shared by every subcommand.
type globalOptions struct {
	repo string
	user string
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand(version string) *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:     "cheetah",
		Short:   "Trial balance to IFRS financial statements",
		Version: version,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.repo, "repo", ".", "project directory")
	rootCmd.PersistentFlags().StringVar(&opts.user, "user", defaultUser(), "user recorded in the audit trail")

	rootCmd.AddCommand(
		newInitCommand(opts),
		newImportCommand(opts),
		newClassifyCommand(opts),
		newMapCommand(opts),
		newAdjustCommand(opts),
		newEditCommand(opts),
		newResetCommand(opts),
		newValidateCommand(opts),
		newStatementsCommand(opts),
		newRatiosCommand(opts),
		newCashFlowCommand(opts),
		newHistoryCommand(opts),
		newRulesCommand(opts),
	)

	return rootCmd
}

func defaultUser() string {
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return "cheetah"
}
