package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kanmwangi2/Cheetah-Reporter-sub000/internal/auditlog"
	"github.com/kanmwangi2/Cheetah-Reporter-sub000/internal/ledger"
	"github.com/kanmwangi2/Cheetah-Reporter-sub000/internal/model"
)

func newHistoryCommand(global *globalOptions) *cobra.Command {
	var accountID, exportPath string
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show the ledger's edit history",
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

			var entries []auditlog.Entry
			for _, e := range auditlog.FromRecords(tb.ID, 1, tb.History) {
				if accountID == "" || touches(e, accountID) {
					entries = append(entries, e)
				}
			}
			if limit > 0 && len(entries) > limit {
				entries = entries[len(entries)-limit:]
			}

			if exportPath != "" {
				return writeOutput(cmd.OutOrStdout(), exportPath, func(w io.Writer) error {
					return auditlog.Write(w, entries)
				})
			}
			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, "No edits recorded")
				return nil
			}
			for _, e := range entries {
				printEntry(out, e)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&accountID, "account", "", "only edits touching this account")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "show only the most recent entries")
	cmd.Flags().StringVar(&exportPath, "export", "", "write the entries as audit CSV to a file")

	return cmd
}

// touches reports whether e concerns accountID, including bulk auto-map
// rows that carry the account in the field name.
func touches(e auditlog.Entry, accountID string) bool {
	if e.AccountID == accountID {
		return true
	}
	return e.Action == model.ActionAutoMap && strings.TrimPrefix(e.Field, ledger.FieldMappingPrefix) == accountID
}

func printEntry(w io.Writer, e auditlog.Entry) {
	ts := e.Timestamp.UTC().Format("2006-01-02 15:04:05")
	change := ""
	if e.Field != "" {
		change = fmt.Sprintf(" %s: %q -> %q", e.Field, e.OldValue, e.NewValue)
	}
	fmt.Fprintf(w, "v%-4d %s %-10s %-16s %-8s%s\n", e.Version, ts, e.UserID, e.Action, e.AccountID, change)
}
