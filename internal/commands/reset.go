package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newResetCommand(global *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "reset <account-id>",
		Short: "Clear an account's adjustment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := openProject(global)
			if err != nil {
				return err
			}
			defer p.Close()

			ctx := cmd.Context()
			before, err := p.load(ctx)
			if err != nil {
				return err
			}
			tb, err := p.svc.ResetAdjustment(ctx, p.ledgerID(), p.user, args[0])
			if err != nil {
				return err
			}
			last, _ := tb.LastEdit()
			p.record(tb, before.Version, "reset: "+last.Description)
			fmt.Fprintf(cmd.OutOrStdout(), "%s, version %d\n", last.Description, tb.Version)
			return nil
		},
	}
}
