package commands

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/kanmwangi2/Cheetah-Reporter-sub000/internal/export"
	"github.com/kanmwangi2/Cheetah-Reporter-sub000/internal/ratios"
)

func newRatiosCommand(global *globalOptions) *cobra.Command {
	var format, output string
	var original bool

	cmd := &cobra.Command{
		Use:   "ratios",
		Short: "Calculate financial ratios from the populated statements",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(format, "text", "csv"); err != nil {
				return err
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
			populated, err := p.populate(tb, "", original)
			if err != nil {
				return err
			}
			rs := ratios.Calculate(ratios.Extract(populated))

			return writeOutput(cmd.OutOrStdout(), output, func(w io.Writer) error {
				if format == "csv" {
					return export.RatiosCSV(w, rs)
				}
				return export.RatiosText(w, rs)
			})
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "text", "output format: text or csv")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to a file instead of stdout")
	cmd.Flags().BoolVar(&original, "original", false, "use original balances instead of final")

	return cmd
}
