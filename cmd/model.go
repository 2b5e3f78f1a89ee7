package main

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/terralab/lst-cli/internal/splitwindow"
)

var modelScene sceneInputs

var modelCmd = &cobra.Command{
	Use:   "model",
	Short: "Print the split-window model and mapcalc expression for a scene",
	Long: `Substitutes the resolved coefficients and emissivity terms into the
split-window equation and prints the diagnostic model plus the raster
calculator expression, which keeps the Input_T10 / Input_T11 placeholders
for a downstream map algebra engine.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		est, err := buildEstimator(modelScene)
		if err != nil {
			return eris.Wrap(err, "model: build estimator")
		}

		fmt.Println("Citation:", splitwindow.Citation)
		fmt.Println()
		fmt.Println("Equation:", splitwindow.Equation())
		fmt.Println("Model:   ", est.Model())
		fmt.Println("Mapcalc: ", est.MapcalcExpression())
		fmt.Printf("Subrange: %s, associated RMSE: %g\n", est.Subrange().Key, est.RMSE())
		return nil
	},
}

func init() {
	modelCmd.Flags().Float64Var(&modelScene.emissivityB10, "emissivity-b10", 0, "band 10 surface emissivity, (0, 1]")
	modelCmd.Flags().Float64Var(&modelScene.emissivityB11, "emissivity-b11", 0, "band 11 surface emissivity, (0, 1]")
	modelCmd.Flags().StringVar(&modelScene.landcover, "landcover", "", "land cover class for emissivity lookup")
	modelCmd.Flags().Float64Var(&modelScene.cwv, "cwv", 0, "column water vapour estimate, (0.0, 6.3]")
	modelCmd.Flags().BoolVar(&modelScene.wholeRange, "whole-range", false, "use the whole-range coefficient set")
	rootCmd.AddCommand(modelCmd)
}
