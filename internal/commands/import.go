package commands

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kanmwangi2/Cheetah-Reporter-sub000/internal/importer"
	"github.com/kanmwangi2/Cheetah-Reporter-sub000/internal/ledger"
)

func newImportCommand(global *globalOptions) *cobra.Command {
	var format string
	var noAutoMap bool

	cmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Import a trial balance CSV",
		Long: `Import a trial balance CSV into the ledger, replacing its accounts.
Mappings of accounts that appear again are kept. Without a file argument
the single pending CSV in import/ is imported and moved to import/processed/;
a file whose name was imported before is refused.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := openProject(global)
			if err != nil {
				return err
			}
			defer p.Close()

			path, pending := "", false
			if len(args) > 0 {
				path = args[0]
			} else {
				f, err := importer.Pending(p.root)
				if err != nil {
					return err
				}
				path, pending = f.Path, true
			}

			raw, parser, err := importer.DefaultRegistry().ParseFile(path, format)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			before, err := p.load(ctx)
			if err != nil {
				return err
			}
			// Mappings of accounts that are still present carry over; auto-map
			// only fills the gaps.
			tb, err := p.svc.Import(ctx, p.ledgerID(), p.user, raw, before.Mappings, filepath.Base(path))
			if err != nil {
				return err
			}
			kept := len(tb.Mappings)

			mapped := 0
			if p.cfg.Classification.AutoMap && !noAutoMap {
				engine, err := p.engine()
				if err != nil {
					return err
				}
				suggestions := engine.ClassifyAll(tb.RawAccounts())
				opts := ledger.AutoMapOptions{MinConfidence: p.cfg.Classification.MinConfidence}
				n, err := tb.MappingsToApply(suggestions, opts)
				if err != nil {
					return err
				}
				if n > 0 {
					if tb, err = p.svc.ApplyMappings(ctx, p.ledgerID(), p.user, suggestions, opts); err != nil {
						return err
					}
				}
				mapped = len(tb.Mappings)
			}

			if pending {
				if err := importer.MarkProcessed(p.root, filepath.Base(path)); err != nil {
					p.logger.Warn("archiving imported file", zap.Error(err))
				}
			}
			p.record(tb, before.Version, fmt.Sprintf("import: %s (%d accounts)", filepath.Base(path), len(raw)))

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Imported %d accounts from %s (%s format), version %d\n",
				len(raw), filepath.Base(path), parser.Format(), tb.Version)
			if kept > 0 {
				fmt.Fprintf(out, "Kept %d existing mappings\n", kept)
			}
			if mapped > kept {
				fmt.Fprintf(out, "Auto-mapped %d more accounts, %d of %d mapped\n", mapped-kept, mapped, len(tb.Accounts))
			}
			fmt.Fprintln(out, "Trial balance", tb.Validate(false))
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "", "CSV dialect: standard or signed (default: detect)")
	cmd.Flags().BoolVar(&noAutoMap, "no-auto-map", false, "skip automatic classification")

	return cmd
}
