// Package watervapour estimates atmospheric column water vapour from the two
// TIRS brightness-temperature bands using the modified split-window
// covariance-variance ratio method (Ren et al. 2015). The ratio of the band
// transmittances is approximated from the spatial variability of the two
// bands over a small window of neighboring measurements, then mapped to a
// cwv amount through a published quadratic.
package watervapour

import "github.com/rotisserie/eris"

// Quadratic coefficients relating the band transmittance ratio to column
// water vapour (g/cm^2), from Ren et al. 2015 for the TIRS bands.
const (
	c0 = 9.087
	c1 = 0.653
	c2 = -9.674
)

// ErrZeroVariance means the band 10 window is spatially uniform, so the
// transmittance ratio is undefined.
var ErrZeroVariance = eris.New("watervapour: band 10 window has zero variance")

// Ratio computes the transmittance ratio estimator:
//
//	Rji = sum((t10_k - mean(t10)) * (t11_k - mean(t11))) / sum((t10_k - mean(t10))^2)
//
// over paired windows of band 10 and band 11 brightness temperatures.
func Ratio(t10Window, t11Window []float64) (float64, error) {
	if len(t10Window) != len(t11Window) {
		return 0, eris.Errorf("watervapour: window length mismatch: %d vs %d",
			len(t10Window), len(t11Window))
	}
	if len(t10Window) < 2 {
		return 0, eris.Errorf("watervapour: need at least 2 samples, got %d", len(t10Window))
	}

	mean10 := mean(t10Window)
	mean11 := mean(t11Window)

	var num, den float64
	for k := range t10Window {
		d10 := t10Window[k] - mean10
		num += d10 * (t11Window[k] - mean11)
		den += d10 * d10
	}
	if den == 0 {
		return 0, ErrZeroVariance
	}
	return num / den, nil
}

// Retrieve estimates column water vapour (g/cm^2) from paired windows of
// band 10 and band 11 brightness temperatures.
func Retrieve(t10Window, t11Window []float64) (float64, error) {
	ratio, err := Ratio(t10Window, t11Window)
	if err != nil {
		return 0, err
	}
	return FromRatio(ratio), nil
}

// FromRatio maps a transmittance ratio to column water vapour via the
// published quadratic cwv = c2*r^2 + c1*r + c0.
func FromRatio(ratio float64) float64 {
	return c2*ratio*ratio + c1*ratio + c0
}

func mean(xs []float64) float64 {
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}
