package main

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/terralab/lst-cli/internal/store"
)

var (
	computeScene sceneInputs
	computeT10   float64
	computeT11   float64
	computeLabel string
	computeSave  bool
)

// computeResult is the JSON shape printed by the compute command and
// returned by the serve endpoint.
type computeResult struct {
	Label    string  `json:"label,omitempty"`
	LST      float64 `json:"lst"`
	RMSE     float64 `json:"rmse"`
	Subrange string  `json:"subrange"`
	CWV      float64 `json:"cwv"`
}

var computeCmd = &cobra.Command{
	Use:   "compute",
	Short: "Compute LST for one pair of brightness temperatures",
	Long: `Computes Land Surface Temperature for a single (T10, T11) pair.

Emissivities are given either explicitly or via a land cover class from the
embedded FROM-GLC averages:

  lst-cli compute --t10 300 --t11 295 --emissivity-b10 0.97 --emissivity-b11 0.98 --cwv 1.5
  lst-cli compute --t10 300 --t11 295 --landcover Cropland --cwv 2.8 --save --label scene42`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		est, err := buildEstimator(computeScene)
		if err != nil {
			return eris.Wrap(err, "compute: build estimator")
		}

		lst, err := est.ComputeLST(computeT10, computeT11)
		if err != nil {
			return eris.Wrap(err, "compute: evaluate")
		}

		res := computeResult{
			Label:    computeLabel,
			LST:      lst,
			RMSE:     est.RMSE(),
			Subrange: est.Subrange().Key,
			CWV:      est.ColumnWaterVapour(),
		}

		if computeSave {
			s, err := store.NewSQLite(cfg.Store.Path)
			if err != nil {
				return eris.Wrap(err, "compute: open store")
			}
			defer s.Close()
			if err := s.Migrate(cmd.Context()); err != nil {
				return eris.Wrap(err, "compute: migrate store")
			}

			rec, err := s.SaveRun(cmd.Context(), store.RunRecord{
				Label:         computeLabel,
				EmissivityB10: est.EmissivityB10(),
				EmissivityB11: est.EmissivityB11(),
				CWV:           est.ColumnWaterVapour(),
				Subrange:      est.Subrange().Key,
				T10:           computeT10,
				T11:           computeT11,
				LST:           lst,
				RMSE:          est.RMSE(),
			})
			if err != nil {
				return eris.Wrap(err, "compute: save run")
			}
			zap.L().Info("compute: run saved", zap.String("id", rec.ID))
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	},
}

func init() {
	computeCmd.Flags().Float64Var(&computeT10, "t10", 0, "band 10 brightness temperature (digital number)")
	computeCmd.Flags().Float64Var(&computeT11, "t11", 0, "band 11 brightness temperature (digital number)")
	computeCmd.Flags().Float64Var(&computeScene.emissivityB10, "emissivity-b10", 0, "band 10 surface emissivity, (0, 1]")
	computeCmd.Flags().Float64Var(&computeScene.emissivityB11, "emissivity-b11", 0, "band 11 surface emissivity, (0, 1]")
	computeCmd.Flags().StringVar(&computeScene.landcover, "landcover", "", "land cover class for emissivity lookup (e.g. Cropland)")
	computeCmd.Flags().Float64Var(&computeScene.cwv, "cwv", 0, "column water vapour estimate, (0.0, 6.3]")
	computeCmd.Flags().BoolVar(&computeScene.wholeRange, "whole-range", false, "use the whole-range coefficient set instead of a cwv subrange")
	computeCmd.Flags().StringVar(&computeLabel, "label", "", "scene label for saved runs")
	computeCmd.Flags().BoolVar(&computeSave, "save", false, "persist the run to the local store")
	_ = computeCmd.MarkFlagRequired("t10")
	_ = computeCmd.MarkFlagRequired("t11")
	rootCmd.AddCommand(computeCmd)
}
