package splitwindow

import (
	"math/rand/v2"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// Estimator evaluates the split-window LST equation for one scene. It is
// built from the two per-band emissivities and a column water vapour
// estimate; the coefficient subrange is resolved once at construction and
// fixed for the estimator's lifetime. ComputeLST is pure, so a single
// Estimator may be shared across goroutines.
type Estimator struct {
	emissivityT10 float64
	emissivityT11 float64

	averageEmissivity float64
	deltaEmissivity   float64

	cwv      float64
	subrange Subrange
}

// Option configures estimator construction.
type Option func(*options)

type options struct {
	policy TiePolicy
	rng    *rand.Rand
}

// WithTiePolicy overrides the default TieRandom resolution policy.
func WithTiePolicy(p TiePolicy) Option {
	return func(o *options) { o.policy = p }
}

// WithRand injects the PRNG used for TieRandom draws, for deterministic
// resolution in tests.
func WithRand(rng *rand.Rand) Option {
	return func(o *options) { o.rng = rng }
}

// New builds an Estimator for the given per-band emissivities and column
// water vapour estimate, resolving the coefficient subrange from table.
// Emissivities must lie in (0, 1]; cwv must fall inside at least one
// subrange of the table.
func New(emissivityB10, emissivityB11, cwv float64, table []Subrange, opts ...Option) (*Estimator, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	if err := checkEmissivity("emissivity_b10", emissivityB10); err != nil {
		return nil, err
	}
	if err := checkEmissivity("emissivity_b11", emissivityB11); err != nil {
		return nil, err
	}

	sub, err := ResolveSubrange(cwv, table, o.policy, o.rng)
	if err != nil {
		return nil, eris.Wrap(err, "splitwindow: resolve subrange")
	}

	e := &Estimator{
		emissivityT10:     emissivityB10,
		emissivityT11:     emissivityB11,
		averageEmissivity: 0.5 * (emissivityB10 + emissivityB11),
		deltaEmissivity:   emissivityB10 - emissivityB11,
		cwv:               cwv,
		subrange:          sub,
	}

	zap.L().Debug("splitwindow: estimator built",
		zap.Float64("emissivity_b10", emissivityB10),
		zap.Float64("emissivity_b11", emissivityB11),
		zap.Float64("cwv", cwv),
		zap.String("subrange", sub.Key),
		zap.Float64("rmse", sub.RMSE),
	)

	return e, nil
}

// ComputeLST evaluates the split-window equation for one pair of
// brightness-temperature digital numbers:
//
//	LST = b0
//	    + (b1 + b2*((1-ae)/ae))
//	    + b3*(de/ae) * ((t10 + t11)/2)
//	    + (b4 + b5*((1-ae)/ae) + b6*(de/ae^2)) * ((t10 - t11)/2)
//	    + b7*(t10 - t11)^2
//
// where ae and de are the average and delta emissivity. Both operands are
// range-checked, t10 first, before any arithmetic.
func (e *Estimator) ComputeLST(t10, t11 float64) (float64, error) {
	errT10 := CheckBrightnessTemp("t10", t10)
	errT11 := CheckBrightnessTemp("t11", t11)
	if errT10 != nil {
		return 0, errT10
	}
	if errT11 != nil {
		return 0, errT11
	}

	ae := e.averageEmissivity
	de := e.deltaEmissivity
	s := e.subrange

	a := s.B0
	b := s.B1 + s.B2*((1-ae)/ae)
	c := s.B3 * (de / ae) * ((t10 + t11) / 2)
	d := (s.B4 + s.B5*((1-ae)/ae) + s.B6*(de/(ae*ae))) * ((t10 - t11) / 2)
	f := s.B7 * (t10 - t11) * (t10 - t11)

	return a + b + c + d + f, nil
}

// Subrange returns the coefficient subrange resolved at construction.
func (e *Estimator) Subrange() Subrange {
	return e.subrange
}

// RMSE returns the root-mean-square error published for the resolved
// coefficient subrange.
func (e *Estimator) RMSE() float64 {
	return e.subrange.RMSE
}

// ColumnWaterVapour returns the cwv estimate the estimator was built with.
func (e *Estimator) ColumnWaterVapour() float64 {
	return e.cwv
}

// EmissivityB10 returns the band 10 emissivity input.
func (e *Estimator) EmissivityB10() float64 {
	return e.emissivityT10
}

// EmissivityB11 returns the band 11 emissivity input.
func (e *Estimator) EmissivityB11() float64 {
	return e.emissivityT11
}

// AverageEmissivity returns 0.5 * (e10 + e11), cached at construction.
func (e *Estimator) AverageEmissivity() float64 {
	return e.averageEmissivity
}

// DeltaEmissivity returns e10 - e11, cached at construction.
func (e *Estimator) DeltaEmissivity() float64 {
	return e.deltaEmissivity
}
