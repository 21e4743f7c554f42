package commands

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kanmwangi2/Cheetah-Reporter-sub000/internal/classify"
	"github.com/kanmwangi2/Cheetah-Reporter-sub000/internal/ledger"
	"github.com/kanmwangi2/Cheetah-Reporter-sub000/internal/model"
)

func newRulesCommand(global *globalOptions) *cobra.Command {
	rulesCmd := &cobra.Command{
		Use:   "rules",
		Short: "Manage classification rules",
	}
	rulesCmd.AddCommand(
		newRulesListCommand(global),
		newRulesAddCommand(global),
		newRulesRemoveCommand(global),
	)
	return rulesCmd
}

func newRulesListCommand(global *globalOptions) *cobra.Command {
	var search string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List classification rules in evaluation order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := openProject(global)
			if err != nil {
				return err
			}
			defer p.Close()

			engine, err := p.engine()
			if err != nil {
				return err
			}
			custom, err := p.customRules()
			if err != nil {
				return err
			}
			isCustom := make(map[string]bool, len(custom))
			for _, r := range custom {
				isCustom[r.ID] = true
			}

			out := cmd.OutOrStdout()
			for _, r := range engine.Rules().Search(search) {
				origin := "built-in"
				if isCustom[r.ID] {
					origin = "custom"
				}
				fmt.Fprintf(out, "%-28s %4d  %-8s %-48s %s\n",
					r.ID, r.Priority, origin, ledger.FormatMapping(model.Mapping{Statement: r.Statement, LineItem: r.LineItem}),
					strings.Join(r.Keywords, ", "))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&search, "search", "s", "", "only rules whose ID, line item, statement or keywords match")

	return cmd
}

func newRulesAddCommand(global *globalOptions) *cobra.Command {
	var rule model.ClassificationRule
	var statement string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add or replace a custom classification rule",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, ok := model.ParseStatement(statement)
			if !ok || st == model.Unmapped {
				return fmt.Errorf("%w: unknown statement %q", ledger.ErrInvalidInput, statement)
			}
			rule.Statement = st

			// Compiling the rule on its own catches bad patterns before
			// anything is written.
			if _, err := classify.NewRuleset(rule); err != nil {
				return err
			}

			p, err := openProject(global)
			if err != nil {
				return err
			}
			defer p.Close()

			custom, err := p.customRules()
			if err != nil {
				return err
			}
			replaced := false
			for i, r := range custom {
				if r.ID == rule.ID {
					custom[i], replaced = rule, true
				}
			}
			if !replaced {
				custom = append(custom, rule)
			}
			if err := p.saveCustomRules(custom); err != nil {
				return err
			}
			p.commit("rules: add " + rule.ID)

			verb := "Added"
			if replaced {
				verb = "Replaced"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s rule %s\n", verb, rule.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&rule.ID, "id", "", "rule ID (required)")
	cmd.Flags().StringVar(&statement, "statement", "", "target statement (required)")
	cmd.Flags().StringVar(&rule.LineItem, "line-item", "", "target line item (required)")
	cmd.Flags().StringSliceVar(&rule.Keywords, "keyword", nil, "keyword to match in the account name (repeatable)")
	cmd.Flags().StringSliceVar(&rule.Patterns, "pattern", nil, "regular expression to match the account name (repeatable)")
	cmd.Flags().StringSliceVar(&rule.AccountCodePrefixes, "prefix", nil, "account code prefix (repeatable)")
	cmd.Flags().IntVar(&rule.Priority, "priority", 50, "evaluation priority; higher runs first")
	_ = cmd.MarkFlagRequired("id")
	_ = cmd.MarkFlagRequired("statement")
	_ = cmd.MarkFlagRequired("line-item")

	return cmd
}

func newRulesRemoveCommand(global *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <rule-id>",
		Short: "Remove a custom classification rule",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := openProject(global)
			if err != nil {
				return err
			}
			defer p.Close()

			custom, err := p.customRules()
			if err != nil {
				return err
			}
			kept := custom[:0]
			for _, r := range custom {
				if r.ID != args[0] {
					kept = append(kept, r)
				}
			}
			if len(kept) == len(custom) {
				if _, ok := classify.DefaultRuleset().Get(args[0]); ok {
					return fmt.Errorf("%s is a built-in rule; override it with rules add --id %s", args[0], args[0])
				}
				return fmt.Errorf("no custom rule %s", args[0])
			}
			if err := p.saveCustomRules(kept); err != nil {
				return err
			}
			p.commit("rules: remove " + args[0])
			fmt.Fprintf(cmd.OutOrStdout(), "Removed rule %s\n", args[0])
			return nil
		},
	}
}

// customRules reads the project's custom rules file. A missing file holds
// no rules.
func (p *project) customRules() ([]model.ClassificationRule, error) {
	path := p.rulesPath()
	if path == "" {
		return nil, nil
	}
	rules, err := classify.LoadRules(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	return rules, err
}

func (p *project) saveCustomRules(rules []model.ClassificationRule) error {
	path := p.rulesPath()
	if path == "" {
		return fmt.Errorf("classification.rules_file is not set in cheetah.yaml")
	}
	return classify.SaveRules(path, rules)
}
