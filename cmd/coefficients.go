package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/terralab/lst-cli/internal/coefficients"
	"github.com/terralab/lst-cli/internal/splitwindow"
)

var coefficientsCWV float64

var coefficientsCmd = &cobra.Command{
	Use:   "coefficients",
	Short: "List coefficient subranges or resolve one for a cwv value",
	RunE: func(cmd *cobra.Command, _ []string) error {
		tables, err := coefficients.Load()
		if err != nil {
			return eris.Wrap(err, "coefficients: load tables")
		}

		if cmd.Flags().Changed("cwv") {
			policy, err := splitwindow.ParseTiePolicy(cfg.LST.TiePolicy)
			if err != nil {
				return err
			}
			sub, err := splitwindow.ResolveSubrange(coefficientsCWV, tables.ColumnWaterVapour(), policy, nil)
			if err != nil {
				return eris.Wrap(err, "coefficients: resolve")
			}
			printSubranges(sub)
			return nil
		}

		rows := append(tables.ColumnWaterVapour(), tables.WholeRange())
		printSubranges(rows...)
		return nil
	},
}

func printSubranges(rows ...splitwindow.Subrange) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "KEY\tINTERVAL\tB0\tB1\tB2\tB3\tB4\tB5\tB6\tB7\tRMSE")
	for _, s := range rows {
		fmt.Fprintf(w, "%s\t(%g, %g)\t%g\t%g\t%g\t%g\t%g\t%g\t%g\t%g\t%g\n",
			s.Key, s.Low, s.High, s.B0, s.B1, s.B2, s.B3, s.B4, s.B5, s.B6, s.B7, s.RMSE)
	}
	w.Flush()
}

func init() {
	coefficientsCmd.Flags().Float64Var(&coefficientsCWV, "cwv", 0, "resolve the subrange for this column water vapour value")
	rootCmd.AddCommand(coefficientsCmd)
}
