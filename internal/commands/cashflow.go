package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kanmwangi2/Cheetah-Reporter-sub000/internal/accounts"
	"github.com/kanmwangi2/Cheetah-Reporter-sub000/internal/export"
	"github.com/kanmwangi2/Cheetah-Reporter-sub000/internal/ledger"
	"github.com/kanmwangi2/Cheetah-Reporter-sub000/internal/ratios"
)

func newCashFlowCommand(global *globalOptions) *cobra.Command {
	var priorFile string
	var priorVersion int

	cmd := &cobra.Command{
		Use:   "cashflow",
		Short: "Derive a cash flow statement against a prior period",
		Long: `Derive a cash flow statement by the indirect method. The prior period is
either an accounts CSV written by cheetah (accounts/trial-balance.csv from
last year's project) or an earlier version of this ledger.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if (priorFile == "") == (priorVersion < 0) {
				return errors.New("pass exactly one of --prior or --prior-version")
			}
			p, err := openProject(global)
			if err != nil {
				return err
			}
			defer p.Close()

			tb, err := p.load(cmd.Context())
			if err != nil {
				return err
			}
			var prior *ledger.TrialBalance
			if priorFile != "" {
				prior, err = readPrior(priorFile)
			} else {
				prior, err = tb.AsOf(priorVersion)
			}
			if err != nil {
				return err
			}

			current, err := p.populate(tb, "", false)
			if err != nil {
				return err
			}
			previous, err := p.populate(prior, "", false)
			if err != nil {
				return err
			}
			cf := ratios.CashFlow(ratios.Extract(current), ratios.Extract(previous))
			return export.CashFlowText(cmd.OutOrStdout(), cf, p.cfg.Company.Currency)
		},
	}

	cmd.Flags().StringVar(&priorFile, "prior", "", "prior period accounts CSV")
	cmd.Flags().IntVar(&priorVersion, "prior-version", -1, "prior ledger version")

	return cmd
}

func readPrior(path string) (*ledger.TrialBalance, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening prior period: %w", err)
	}
	defer f.Close()
	accts, mappings, err := accounts.ReadTrialBalance(f)
	if err != nil {
		return nil, fmt.Errorf("reading prior period %s: %w", path, err)
	}
	return ledger.Restore(ledger.TrialBalance{Accounts: accts, Mappings: mappings}), nil
}
