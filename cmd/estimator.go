package main

import (
	"github.com/rotisserie/eris"

	"github.com/terralab/lst-cli/internal/coefficients"
	"github.com/terralab/lst-cli/internal/splitwindow"
)

// sceneInputs are the per-scene parameters shared by the compute and model
// commands. Emissivities come either from explicit flags or from a land
// cover class looked up in the embedded table.
type sceneInputs struct {
	emissivityB10 float64
	emissivityB11 float64
	landcover     string
	cwv           float64
	wholeRange    bool
}

// buildEstimator resolves emissivities and constructs the estimator using
// the configured tie policy.
func buildEstimator(in sceneInputs) (*splitwindow.Estimator, error) {
	tables, err := coefficients.Load()
	if err != nil {
		return nil, err
	}

	e10, e11 := in.emissivityB10, in.emissivityB11
	if in.landcover != "" {
		em, err := tables.LookupEmissivity(in.landcover)
		if err != nil {
			return nil, err
		}
		e10, e11 = em.B10, em.B11
	}
	if e10 == 0 || e11 == 0 {
		return nil, eris.New("either --landcover or both --emissivity-b10 and --emissivity-b11 are required")
	}

	policy, err := splitwindow.ParseTiePolicy(cfg.LST.TiePolicy)
	if err != nil {
		return nil, err
	}

	table := tables.ColumnWaterVapour()
	if in.wholeRange {
		table = []splitwindow.Subrange{tables.WholeRange()}
		// any cwv inside (0, 6.3) resolves to the single whole-range row
		if in.cwv == 0 {
			in.cwv = 3.15
		}
	}

	return splitwindow.New(e10, e11, in.cwv, table, splitwindow.WithTiePolicy(policy))
}
