package coefficients

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terralab/lst-cli/internal/splitwindow"
)

func TestLoad(t *testing.T) {
	tables, err := Load()
	require.NoError(t, err)

	subs := tables.ColumnWaterVapour()
	require.Len(t, subs, 5)

	for _, s := range subs {
		assert.NotEmpty(t, s.Key)
		assert.Less(t, s.Low, s.High, "subrange %s", s.Key)
		assert.Positive(t, s.RMSE, "subrange %s", s.Key)
	}

	// First published subrange, spot-checked against Du et al. (2015).
	first := subs[0]
	assert.Equal(t, "Range_1", first.Key)
	assert.Equal(t, 0.0, first.Low)
	assert.Equal(t, 2.5, first.High)
	assert.InDelta(t, -2.78009, first.B0, 1e-9)
	assert.InDelta(t, 0.09152, first.B7, 1e-9)
	assert.InDelta(t, 0.34, first.RMSE, 1e-9)
}

func TestLoad_WholeRange(t *testing.T) {
	tables, err := Load()
	require.NoError(t, err)

	whole := tables.WholeRange()
	assert.Equal(t, 0.0, whole.Low)
	assert.Equal(t, 6.3, whole.High)
	assert.InDelta(t, 0.87, whole.RMSE, 1e-9)

	// The whole-range row must not leak into the resolution table,
	// otherwise no cwv value would ever match exactly one subrange.
	for _, s := range tables.ColumnWaterVapour() {
		assert.NotEqual(t, whole.Key, s.Key)
	}
}

func TestLoad_SubrangesCoverDomain(t *testing.T) {
	tables, err := Load()
	require.NoError(t, err)
	subs := tables.ColumnWaterVapour()

	// Every cwv strictly inside (0.0, 6.3) matches at least one subrange.
	for cwv := 0.05; cwv < 6.3; cwv += 0.05 {
		matched := false
		for _, s := range subs {
			if s.Contains(cwv) {
				matched = true
				break
			}
		}
		assert.True(t, matched, "cwv=%g unmatched", cwv)
	}
}

func TestColumnWaterVapour_ReturnsCopy(t *testing.T) {
	tables, err := Load()
	require.NoError(t, err)

	subs := tables.ColumnWaterVapour()
	subs[0].B0 = 999

	fresh := tables.ColumnWaterVapour()
	assert.InDelta(t, -2.78009, fresh[0].B0, 1e-9)
}

func TestLookupEmissivity(t *testing.T) {
	tables, err := Load()
	require.NoError(t, err)

	em, err := tables.LookupEmissivity("Cropland")
	require.NoError(t, err)
	assert.InDelta(t, 0.971, em.B10, 1e-9)
	assert.InDelta(t, 0.968, em.B11, 1e-9)

	// Case and separator insensitive.
	em, err = tables.LookupEmissivity("barren land")
	require.NoError(t, err)
	assert.InDelta(t, 0.969, em.B10, 1e-9)
	assert.InDelta(t, 0.978, em.B11, 1e-9)

	_, err = tables.LookupEmissivity("Lava Field")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Lava Field")
}

func TestEmissivities_ValidForEstimator(t *testing.T) {
	tables, err := Load()
	require.NoError(t, err)

	// Every tabulated class must build a working estimator.
	for _, em := range tables.AverageEmissivities() {
		_, err := splitwindow.New(em.B10, em.B11, 1.5, tables.ColumnWaterVapour())
		assert.NoError(t, err, "class %s", em.Landcover)
	}
}
