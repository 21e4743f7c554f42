package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

// errUnbalanced is returned by validate so scripts can rely on the exit code.
var errUnbalanced = errors.New("trial balance is not balanced")

func newValidateCommand(global *globalOptions) *cobra.Command {
	var original bool

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check that the trial balance balances",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := openProject(global)
			if err != nil {
				return err
			}
			defer p.Close()

			tb, err := p.load(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			check := tb.Validate(!original)
			basis := "final"
			if original {
				basis = "original"
			}
			fmt.Fprintf(out, "Trial balance (%s, %d accounts, version %d): %s\n", basis, len(tb.Accounts), tb.Version, check)
			if unmapped := tb.Unmapped(); len(unmapped) > 0 {
				fmt.Fprintf(out, "%d accounts are unmapped:\n", len(unmapped))
				for _, a := range unmapped {
					fmt.Fprintf(out, "  %s %s\n", a.AccountID, a.AccountName)
				}
			}
			if !check.IsBalanced {
				return fmt.Errorf("%w: difference %s", errUnbalanced, check.Difference.StringFixed(2))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&original, "original", false, "check original balances instead of final")

	return cmd
}
