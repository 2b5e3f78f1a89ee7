package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/terralab/lst-cli/internal/store"
)

var runsLimit int

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List stored LST computation runs",
	RunE: func(cmd *cobra.Command, _ []string) error {
		s, err := store.NewSQLite(cfg.Store.Path)
		if err != nil {
			return eris.Wrap(err, "runs: open store")
		}
		defer s.Close()
		if err := s.Migrate(cmd.Context()); err != nil {
			return eris.Wrap(err, "runs: migrate store")
		}

		recs, err := s.ListRuns(cmd.Context(), runsLimit)
		if err != nil {
			return eris.Wrap(err, "runs: list")
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tLABEL\tSUBRANGE\tCWV\tT10\tT11\tLST\tRMSE\tCREATED")
		for _, r := range recs {
			fmt.Fprintf(w, "%s\t%s\t%s\t%g\t%g\t%g\t%.3f\t%g\t%s\n",
				r.ID, r.Label, r.Subrange, r.CWV, r.T10, r.T11, r.LST, r.RMSE,
				r.CreatedAt.Format("2006-01-02 15:04:05"))
		}
		return w.Flush()
	},
}

func init() {
	runsCmd.Flags().IntVar(&runsLimit, "limit", 20, "max runs to list (0 = all)")
	rootCmd.AddCommand(runsCmd)
}
