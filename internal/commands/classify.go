package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kanmwangi2/Cheetah-Reporter-sub000/internal/classify"
	"github.com/kanmwangi2/Cheetah-Reporter-sub000/internal/ledger"
	"github.com/kanmwangi2/Cheetah-Reporter-sub000/internal/model"
)

func newClassifyCommand(global *globalOptions) *cobra.Command {
	var explain, apply, overwrite bool

	cmd := &cobra.Command{
		Use:   "classify [account-id...]",
		Short: "Suggest statement mappings for accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := openProject(global)
			if err != nil {
				return err
			}
			defer p.Close()

			ctx := cmd.Context()
			tb, err := p.load(ctx)
			if err != nil {
				return err
			}
			engine, err := p.engine()
			if err != nil {
				return err
			}

			raw, err := selectAccounts(tb, args)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			suggestions := engine.ClassifyAll(raw)
			for i, s := range suggestions {
				printSuggestion(out, raw[i], s)
				if explain {
					printCandidates(out, engine.Candidates(raw[i]))
				}
			}

			if !apply {
				return nil
			}
			opts := ledger.AutoMapOptions{MinConfidence: p.cfg.Classification.MinConfidence, Overwrite: overwrite}
			n, err := tb.MappingsToApply(suggestions, opts)
			if err != nil {
				return err
			}
			if n == 0 {
				fmt.Fprintln(out, "No mappings changed")
				return nil
			}
			next, err := p.svc.ApplyMappings(ctx, p.ledgerID(), p.user, suggestions, opts)
			if err != nil {
				return err
			}
			last, _ := next.LastEdit()
			p.record(next, tb.Version, "classify: "+last.Description)
			fmt.Fprintf(out, "Applied %d mappings, version %d\n", len(last.Changes), next.Version)
			return nil
		},
	}

	cmd.Flags().BoolVar(&explain, "explain", false, "show every scored candidate")
	cmd.Flags().BoolVar(&apply, "apply", false, "store suggestions at or above min_confidence")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "with --apply, replace existing mappings")

	return cmd
}

// selectAccounts returns the accounts named by ids, or all of them, with
// their final balances.
func selectAccounts(tb *ledger.TrialBalance, ids []string) ([]model.RawAccount, error) {
	all := tb.RawAccounts()
	if len(ids) == 0 {
		return all, nil
	}
	byID := make(map[string]model.RawAccount, len(all))
	for _, a := range all {
		byID[a.AccountID] = a
	}
	raw := make([]model.RawAccount, 0, len(ids))
	for _, accountID := range ids {
		a, ok := byID[accountID]
		if !ok {
			return nil, fmt.Errorf("%s: %w", accountID, ledger.ErrAccountNotFound)
		}
		raw = append(raw, a)
	}
	return raw, nil
}

func printSuggestion(w io.Writer, a model.RawAccount, s model.MappingSuggestion) {
	target := "unmapped"
	if s.Statement != model.Unmapped {
		target = ledger.FormatMapping(model.Mapping{Statement: s.Statement, LineItem: s.LineItem})
	}
	fmt.Fprintf(w, "%-8s %-36s %-48s %3d%%  %s\n", a.AccountID, a.AccountName, target, s.Confidence, s.Reason)
}

func printCandidates(w io.Writer, cands []classify.Candidate) {
	for _, c := range cands {
		flags := ""
		if c.Vetoed {
			flags = " vetoed"
		}
		if c.Forced {
			flags += " forced"
		}
		fmt.Fprintf(w, "         %-20s %s/%s %d%%%s\n", c.RuleID, c.Statement, c.LineItem, c.Confidence, flags)
		if len(c.Reasons) > 0 {
			fmt.Fprintf(w, "           reasons: %s\n", c.Reason())
		}
		if len(c.Overrides) > 0 {
			fmt.Fprintf(w, "           overrides: %s\n", strings.Join(c.Overrides, ", "))
		}
	}
}
