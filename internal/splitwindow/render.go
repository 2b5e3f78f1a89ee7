package splitwindow

import "fmt"

// Placeholder tokens substituted by a downstream raster-algebra engine.
// These are stable literals: consumers replace them textually with per-pixel
// band expressions before evaluation.
const (
	PlaceholderT10 = "Input_T10"
	PlaceholderT11 = "Input_T11"
)

// Equation returns the symbolic form of the split-window equation.
func Equation() string {
	return "[b0 + " +
		"(b1 + " +
		"b2*((1-ae)/ae)) + " +
		"b3*(de/ae) * ((t10 + t11)/2) + " +
		"(b4 + " +
		"b5*((1-ae)/ae) + " +
		"b6*(de/ae^2))*((t10 - t11)/2) + " +
		"b7*(t10 - t11)^2]"
}

// Model returns the equation with the estimator's numeric coefficients,
// average and delta emissivity, and the two per-band emissivity inputs
// substituted in, for diagnostic display.
func (e *Estimator) Model() string {
	s := e.subrange
	return fmt.Sprintf("[%g + "+
		"(%g + "+
		"%g*((1-%g)/%g)) + "+
		"%g*(%g/%g) * ((%g + %g)/2) + "+
		"(%g + "+
		"%g*((1-%g)/%g) + "+
		"%g*(%g/%g^2))*((%g - %g)/2) + "+
		"%g*(%g - %g)^2]",
		s.B0,
		s.B1,
		s.B2, e.averageEmissivity, e.averageEmissivity,
		s.B3, e.deltaEmissivity, e.averageEmissivity, e.emissivityT10, e.emissivityT11,
		s.B4,
		s.B5, e.averageEmissivity, e.averageEmissivity,
		s.B6, e.deltaEmissivity, e.averageEmissivity, e.emissivityT10, e.emissivityT11,
		s.B7, e.emissivityT10, e.emissivityT11,
	)
}

// MapcalcExpression returns the equation with numeric coefficients and
// emissivity terms substituted but the brightness temperatures left as the
// PlaceholderT10 and PlaceholderT11 tokens, ready for a raster calculator.
func (e *Estimator) MapcalcExpression() string {
	s := e.subrange
	return fmt.Sprintf("%g + "+
		"(%g + "+
		"(%g)*((1-%g)/%g)) + "+
		"(%g)*(%g/%g) * ((%s + %s)/2) + "+
		"(%g + "+
		"(%g)*((1-%g)/%g) + "+
		"(%g)*(%g/%g^2))*((%s - %s)/2) + "+
		"(%g)*(%s - %s)^2",
		s.B0,
		s.B1,
		s.B2, e.averageEmissivity, e.averageEmissivity,
		s.B3, e.deltaEmissivity, e.averageEmissivity, PlaceholderT10, PlaceholderT11,
		s.B4,
		s.B5, e.averageEmissivity, e.averageEmissivity,
		s.B6, e.deltaEmissivity, e.averageEmissivity, PlaceholderT10, PlaceholderT11,
		s.B7, PlaceholderT10, PlaceholderT11,
	)
}
