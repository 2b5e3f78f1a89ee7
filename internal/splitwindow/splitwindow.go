// Package splitwindow implements the Du et al. (2015) split-window algorithm
// for estimating Land Surface Temperature from the two Landsat 8 TIRS
// brightness-temperature bands. The algorithm removes the atmospheric effect
// through differential absorption in two adjacent thermal infrared channels
// centered near 11 and 12 micrometers; empirical regression coefficients are
// selected per subrange of the atmospheric column water vapour.
package splitwindow

import (
	"math/rand/v2"

	"github.com/rotisserie/eris"
)

// Citation is the reference publication for the algorithm and its
// regression coefficients.
const Citation = "Du, Chen; Ren, Huazhong; Qin, Qiming; Meng, Jinjie; Zhao, Shaohua. 2015. " +
	"\"A Practical Split-Window Algorithm for Estimating Land Surface Temperature " +
	"from Landsat 8 Data.\" Remote Sens. 7, no. 1: 647-665."

// Sentinel errors surfaced by subrange resolution and LST computation.
var (
	ErrNoMatchingSubrange = eris.New("splitwindow: no coefficient subrange matches column water vapour")
	ErrAmbiguousSubrange  = eris.New("splitwindow: column water vapour matches multiple coefficient subranges")
	ErrOutOfRangeInput    = eris.New("splitwindow: brightness temperature outside expected range [1, 65535]")
	ErrInvalidEmissivity  = eris.New("splitwindow: emissivity outside expected range (0, 1]")
)

// Subrange is one partition of the column water vapour domain together with
// its split-window regression coefficients and the associated RMSE of the
// regression fit. Instances are immutable reference data.
type Subrange struct {
	Key  string  `csv:"key"`
	Low  float64 `csv:"low"`
	High float64 `csv:"high"`
	B0   float64 `csv:"b0"`
	B1   float64 `csv:"b1"`
	B2   float64 `csv:"b2"`
	B3   float64 `csv:"b3"`
	B4   float64 `csv:"b4"`
	B5   float64 `csv:"b5"`
	B6   float64 `csv:"b6"`
	B7   float64 `csv:"b7"`
	RMSE float64 `csv:"rmse"`
}

// Contains reports whether cwv lies strictly inside the subrange's open
// interval (Low, High).
func (s Subrange) Contains(cwv float64) bool {
	return s.Low < cwv && cwv < s.High
}

// TiePolicy selects how ResolveSubrange treats a column water vapour value
// that falls inside more than one subrange. The published coefficient table
// deliberately overlaps adjacent subranges by 0.5 g/cm^2, so ties are a
// property of the data, not a malformed table.
type TiePolicy int

const (
	// TieRandom picks uniformly at random among all matching subranges.
	// This reproduces the reference implementation's behavior.
	TieRandom TiePolicy = iota
	// TieError rejects ambiguous matches with ErrAmbiguousSubrange.
	TieError
)

// ParseTiePolicy converts a config string into a TiePolicy.
func ParseTiePolicy(s string) (TiePolicy, error) {
	switch s {
	case "random", "":
		return TieRandom, nil
	case "error":
		return TieError, nil
	default:
		return TieRandom, eris.Errorf("splitwindow: unknown tie policy %q", s)
	}
}

func (p TiePolicy) String() string {
	if p == TieError {
		return "error"
	}
	return "random"
}

// ResolveSubrange selects the coefficient subrange whose open interval
// contains cwv. With multiple matches the tie policy decides; with zero
// matches it returns ErrNoMatchingSubrange. rng may be nil, in which case
// the shared PRNG is used for TieRandom draws.
func ResolveSubrange(cwv float64, table []Subrange, policy TiePolicy, rng *rand.Rand) (Subrange, error) {
	var matches []Subrange
	for _, s := range table {
		if s.Contains(cwv) {
			matches = append(matches, s)
		}
	}

	switch len(matches) {
	case 0:
		return Subrange{}, eris.Wrapf(ErrNoMatchingSubrange, "cwv %g", cwv)
	case 1:
		return matches[0], nil
	}

	if policy == TieError {
		return Subrange{}, eris.Wrapf(ErrAmbiguousSubrange, "cwv %g matches %d subranges", cwv, len(matches))
	}

	if rng != nil {
		return matches[rng.IntN(len(matches))], nil
	}
	return matches[rand.IntN(len(matches))], nil
}

// CheckBrightnessTemp validates that a brightness-temperature digital number
// lies inside [1, 65535]. The data is 16-bit packed though the actual
// quantisation is 12-bit. name identifies the operand in the error.
func CheckBrightnessTemp(name string, dn float64) error {
	if dn < 1 || dn > 65535 {
		return eris.Wrapf(ErrOutOfRangeInput, "%s = %g", name, dn)
	}
	return nil
}

func checkEmissivity(name string, e float64) error {
	if e <= 0 || e > 1 {
		return eris.Wrapf(ErrInvalidEmissivity, "%s = %g", name, e)
	}
	return nil
}
