package main

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/terralab/lst-cli/internal/watervapour"
)

var (
	cwvT10Window []float64
	cwvT11Window []float64
)

var cwvCmd = &cobra.Command{
	Use:   "cwv",
	Short: "Estimate column water vapour from band 10/11 windows",
	Long: `Estimates atmospheric column water vapour from paired windows of band 10
and band 11 brightness temperatures using the covariance-variance ratio
method (Ren et al. 2015):

  lst-cli cwv --t10-window 299.1,299.4,300.2,299.8 --t11-window 297.2,297.5,298.1,297.9`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ratio, err := watervapour.Ratio(cwvT10Window, cwvT11Window)
		if err != nil {
			return eris.Wrap(err, "cwv: ratio")
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			Ratio float64 `json:"transmittance_ratio"`
			CWV   float64 `json:"cwv"`
		}{
			Ratio: ratio,
			CWV:   watervapour.FromRatio(ratio),
		})
	},
}

func init() {
	cwvCmd.Flags().Float64SliceVar(&cwvT10Window, "t10-window", nil, "band 10 window samples (comma separated)")
	cwvCmd.Flags().Float64SliceVar(&cwvT11Window, "t11-window", nil, "band 11 window samples (comma separated)")
	_ = cwvCmd.MarkFlagRequired("t10-window")
	_ = cwvCmd.MarkFlagRequired("t11-window")
	rootCmd.AddCommand(cwvCmd)
}
