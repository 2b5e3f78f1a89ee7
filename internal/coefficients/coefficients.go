// Package coefficients ships the published reference tables the split-window
// algorithm depends on: the per-subrange regression coefficients keyed by
// column water vapour (Du et al. 2015) and class-averaged land surface
// emissivities for the two TIRS bands (derived from the FROM-GLC land cover
// legend). Both tables are embedded and decoded once per Tables instance, so
// callers inject an explicit provider instead of relying on process-global
// state.
package coefficients

import (
	"bytes"
	_ "embed"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/rotisserie/eris"

	"github.com/terralab/lst-cli/internal/splitwindow"
)

//go:embed data/cwv_coefficients.csv
var cwvCSV []byte

//go:embed data/average_emissivities.csv
var emissivityCSV []byte

// wholeRangeKey marks the fallback coefficient row covering the full
// (0.0, 6.3] column water vapour domain, used when no per-scene cwv
// estimate is available. It is kept out of the regular resolution table so
// a cwv inside exactly one narrow subrange resolves deterministically.
const wholeRangeKey = "Whole_Range"

// Emissivity holds the class-averaged emissivities for bands 10 and 11.
type Emissivity struct {
	Landcover string  `csv:"landcover"`
	B10       float64 `csv:"emissivity_b10"`
	B11       float64 `csv:"emissivity_b11"`
}

// Tables is the decoded, immutable reference data. Load it once and share
// it; accessor methods return copies.
type Tables struct {
	subranges  []splitwindow.Subrange
	wholeRange splitwindow.Subrange
	emissivity []Emissivity
}

// Load decodes the embedded reference tables.
func Load() (*Tables, error) {
	var rows []splitwindow.Subrange
	if err := gocsv.Unmarshal(bytes.NewReader(cwvCSV), &rows); err != nil {
		return nil, eris.Wrap(err, "coefficients: decode cwv table")
	}
	if len(rows) == 0 {
		return nil, eris.New("coefficients: cwv table is empty")
	}

	t := &Tables{}
	for _, r := range rows {
		if r.Key == wholeRangeKey {
			t.wholeRange = r
			continue
		}
		t.subranges = append(t.subranges, r)
	}
	if t.wholeRange.Key == "" {
		return nil, eris.New("coefficients: cwv table has no whole-range row")
	}

	if err := gocsv.Unmarshal(bytes.NewReader(emissivityCSV), &t.emissivity); err != nil {
		return nil, eris.Wrap(err, "coefficients: decode emissivity table")
	}
	if len(t.emissivity) == 0 {
		return nil, eris.New("coefficients: emissivity table is empty")
	}

	return t, nil
}

// ColumnWaterVapour returns the narrow coefficient subranges used for
// resolution against a per-scene cwv estimate.
func (t *Tables) ColumnWaterVapour() []splitwindow.Subrange {
	out := make([]splitwindow.Subrange, len(t.subranges))
	copy(out, t.subranges)
	return out
}

// WholeRange returns the fallback coefficient set covering the whole
// (0.0, 6.3] domain.
func (t *Tables) WholeRange() splitwindow.Subrange {
	return t.wholeRange
}

// AverageEmissivities returns all land cover classes with their band
// emissivities.
func (t *Tables) AverageEmissivities() []Emissivity {
	out := make([]Emissivity, len(t.emissivity))
	copy(out, t.emissivity)
	return out
}

// LookupEmissivity returns the emissivity pair for a land cover class.
// Matching is case-insensitive and treats spaces and underscores alike.
func (t *Tables) LookupEmissivity(landcover string) (Emissivity, error) {
	want := normalizeClass(landcover)
	for _, e := range t.emissivity {
		if normalizeClass(e.Landcover) == want {
			return e, nil
		}
	}
	return Emissivity{}, eris.Errorf("coefficients: unknown land cover class %q", landcover)
}

func normalizeClass(s string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), " ", "_"))
}
