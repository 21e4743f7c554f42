package commands

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/kanmwangi2/Cheetah-Reporter-sub000/internal/ledger"
)

func newAdjustCommand(global *globalOptions) *cobra.Command {
	var debit, credit, description string

	cmd := &cobra.Command{
		Use:   "adjust <account-id>",
		Short: "Add an adjustment to an account",
		Long: `Add a debit and/or credit adjustment to an account. The amounts are
added to the account's existing adjustment; original balances never change.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dDebit, err := parseDecimalFlag("debit", debit)
			if err != nil {
				return err
			}
			dCredit, err := parseDecimalFlag("credit", credit)
			if err != nil {
				return err
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
			tb, err := p.svc.ApplyAdjustment(ctx, p.ledgerID(), p.user, args[0], dDebit, dCredit, description)
			if err != nil {
				return err
			}
			last, _ := tb.LastEdit()
			p.record(tb, before.Version, "adjust: "+last.Description)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s, version %d\n", last.Description, tb.Version)
			fmt.Fprintln(out, "Trial balance", tb.Validate(true))
			return nil
		},
	}

	cmd.Flags().StringVar(&debit, "debit", "", "debit adjustment amount")
	cmd.Flags().StringVar(&credit, "credit", "", "credit adjustment amount")
	cmd.Flags().StringVarP(&description, "description", "m", "", "reason for the adjustment")

	return cmd
}

// parseDecimalFlag parses an amount flag. An empty value is zero.
func parseDecimalFlag(name, value string) (decimal.Decimal, error) {
	if value == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: --%s %q is not a number", ledger.ErrInvalidInput, name, value)
	}
	return d, nil
}
