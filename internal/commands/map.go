package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kanmwangi2/Cheetah-Reporter-sub000/internal/ledger"
	"github.com/kanmwangi2/Cheetah-Reporter-sub000/internal/model"
)

func newMapCommand(global *globalOptions) *cobra.Command {
	var unlisted bool

	cmd := &cobra.Command{
		Use:   "map <account-id> <statement> [line item]",
		Short: "Map an account to a statement line item",
		Long: `Map an account to a statement line item. The statement is one of
assets, liabilities, equity, revenue, expenses or unmapped; mapping to
unmapped removes the account's mapping.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			statement, ok := model.ParseStatement(args[1])
			if !ok {
				return fmt.Errorf("%w: unknown statement %q", ledger.ErrInvalidInput, args[1])
			}
			lineItem := strings.Join(args[2:], " ")

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
			if statement != model.Unmapped && !unlisted {
				if lineItem, err = templateLineItem(p, statement, lineItem); err != nil {
					return err
				}
			}
			tb, err := p.svc.UpdateMapping(ctx, p.ledgerID(), p.user, args[0], statement, lineItem)
			if err != nil {
				return err
			}
			last, _ := tb.LastEdit()
			p.record(tb, before.Version, "map: "+last.Description)
			fmt.Fprintf(cmd.OutOrStdout(), "%s, version %d\n", last.Description, tb.Version)
			return nil
		},
	}

	cmd.Flags().BoolVar(&unlisted, "allow-unlisted", false, "accept a line item the reporting template does not list")

	return cmd
}

// templateLineItem resolves lineItem case-insensitively against the
// project's template and returns the template's spelling.
func templateLineItem(p *project, statement model.Statement, lineItem string) (string, error) {
	tmpl, err := p.template("")
	if err != nil {
		return "", err
	}
	known := tmpl.LineItems(statement)
	for _, name := range known {
		if strings.EqualFold(name, lineItem) {
			return name, nil
		}
	}
	return "", fmt.Errorf("%w: %q is not a %s line item in %s (use --allow-unlisted); known items: %s",
		ledger.ErrInvalidInput, lineItem, statement, tmpl.Standard, strings.Join(known, ", "))
}
