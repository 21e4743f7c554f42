package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kanmwangi2/Cheetah-Reporter-sub000/internal/export"
	"github.com/kanmwangi2/Cheetah-Reporter-sub000/internal/ledger"
	"github.com/kanmwangi2/Cheetah-Reporter-sub000/internal/statement"
)

// errNotFinal is returned by --strict when validation reports errors.
var errNotFinal = errors.New("statements cannot be finalized")

type statementsOptions struct {
	format   string
	output   string
	standard string
	original bool
	strict   bool
	asOf     int
}

func newStatementsCommand(global *globalOptions) *cobra.Command {
	var opts statementsOptions

	cmd := &cobra.Command{
		Use:   "statements",
		Short: "Generate the statement of financial position and income statement",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(opts.format, "text", "csv", "json"); err != nil {
				return err
			}
			p, err := openProject(global)
			if err != nil {
				return err
			}
			defer p.Close()

			tb, err := p.loadVersion(cmd.Context(), opts.asOf)
			if err != nil {
				return err
			}
			populated, err := p.populate(tb, opts.standard, opts.original)
			if err != nil {
				return err
			}

			err = writeOutput(cmd.OutOrStdout(), opts.output, func(w io.Writer) error {
				switch opts.format {
				case "csv":
					return export.StatementsCSV(w, populated, p.cfg.Company.Currency)
				case "json":
					return export.StatementsJSON(w, populated)
				default:
					return export.StatementsText(w, populated, p.cfg.Company.Name, p.cfg.Company.Currency)
				}
			})
			if err != nil {
				return err
			}

			p.logger.Info("statements generated",
				zap.String("ledger_id", tb.ID),
				zap.Int("version", tb.Version),
				zap.Int("errors", len(populated.Errors())),
				zap.Int("warnings", len(populated.Warnings())))

			if opts.strict && !populated.CanFinalize() {
				return fmt.Errorf("%w: %s", errNotFinal, populated.Errors()[0].Message)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", "text", "output format: text, csv or json")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write to a file instead of stdout")
	cmd.Flags().StringVar(&opts.standard, "standard", "", "override the configured reporting standard")
	cmd.Flags().BoolVar(&opts.original, "original", false, "use original balances instead of final")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "fail when validation reports errors")
	cmd.Flags().IntVar(&opts.asOf, "as-of", -1, "populate from an earlier ledger version")

	return cmd
}

// populate builds the statements for tb with the project's options.
func (p *project) populate(tb *ledger.TrialBalance, standard string, original bool) (statement.PopulatedStatements, error) {
	tmpl, err := p.template(standard)
	if err != nil {
		return statement.PopulatedStatements{}, err
	}
	opts := p.cfg.StatementOptions()
	opts.UseOriginal = original
	return statement.Populate(tb.Mapped(), tmpl, opts), nil
}

// writeOutput runs render against path, or stdout when path is empty.
func writeOutput(stdout io.Writer, path string, render func(io.Writer) error) error {
	if path == "" {
		return render(stdout)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := render(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	fmt.Fprintf(stdout, "Wrote %s\n", path)
	return nil
}

// loadVersion returns the ledger as of version, or the current ledger when
// version is negative.
func (p *project) loadVersion(ctx context.Context, version int) (*ledger.TrialBalance, error) {
	tb, err := p.load(ctx)
	if err != nil || version < 0 {
		return tb, err
	}
	return tb.AsOf(version)
}

func checkFormat(format string, allowed ...string) error {
	for _, a := range allowed {
		if format == a {
			return nil
		}
	}
	return fmt.Errorf("%w: unknown format %q", ledger.ErrInvalidInput, format)
}
