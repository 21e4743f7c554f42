package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kanmwangi2/Cheetah-Reporter-sub000/internal/ledger"
)

func newEditCommand(global *globalOptions) *cobra.Command {
	var name, adjDebit, adjCredit string

	cmd := &cobra.Command{
		Use:   "edit <account-id>",
		Short: "Rename an account or set its adjustment",
		Long: `Edit an account. --adjustment-debit and --adjustment-credit replace the
account's adjustment rather than adding to it.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var changes ledger.AccountChanges
			flags := cmd.Flags()
			if flags.Changed("name") {
				changes.AccountName = &name
			}
			if flags.Changed("adjustment-debit") {
				d, err := parseDecimalFlag("adjustment-debit", adjDebit)
				if err != nil {
					return err
				}
				changes.AdjustmentDebit = &d
			}
			if flags.Changed("adjustment-credit") {
				d, err := parseDecimalFlag("adjustment-credit", adjCredit)
				if err != nil {
					return err
				}
				changes.AdjustmentCredit = &d
			}
			if changes == (ledger.AccountChanges{}) {
				return fmt.Errorf("%w: nothing to edit; pass --name, --adjustment-debit or --adjustment-credit", ledger.ErrInvalidInput)
			}

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
			tb, err := p.svc.EditAccount(ctx, p.ledgerID(), p.user, args[0], changes)
			if err != nil {
				return err
			}
			last, _ := tb.LastEdit()
			p.record(tb, before.Version, "edit: "+last.Description)
			fmt.Fprintf(cmd.OutOrStdout(), "%s, version %d\n", last.Description, tb.Version)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "new account name")
	cmd.Flags().StringVar(&adjDebit, "adjustment-debit", "", "adjustment debit amount")
	cmd.Flags().StringVar(&adjCredit, "adjustment-credit", "", "adjustment credit amount")

	return cmd
}
