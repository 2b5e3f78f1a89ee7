package splitwindow

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testTable mirrors the shape of the published coefficient table: five
// subranges whose boundaries overlap by 0.5.
func testTable() []Subrange {
	return []Subrange{
		{Key: "Range_1", Low: 0.0, High: 2.5, B0: -2.78009, B1: 1.01408, B2: 0.15833, B3: -0.34991, B4: 4.04487, B5: 3.55414, B6: -8.88394, B7: 0.09152, RMSE: 0.34},
		{Key: "Range_2", Low: 2.0, High: 3.5, B0: 11.00824, B1: 0.95995, B2: 0.17243, B3: -0.28852, B4: 7.11492, B5: 0.42684, B6: -6.62025, B7: -0.06381, RMSE: 0.60},
		{Key: "Range_3", Low: 3.0, High: 4.5, B0: 9.62610, B1: 0.96202, B2: 0.13834, B3: -0.17262, B4: 7.87883, B5: 5.17910, B6: -13.26611, B7: -0.07603, RMSE: 0.71},
		{Key: "Range_4", Low: 4.0, High: 5.5, B0: 0.61258, B1: 0.99124, B2: 0.10051, B3: -0.09664, B4: 7.85758, B5: 6.86626, B6: -15.00742, B7: -0.01185, RMSE: 0.86},
		{Key: "Range_5", Low: 5.0, High: 6.3, B0: -0.34808, B1: 0.98123, B2: 0.05599, B3: -0.03518, B4: 11.96444, B5: 9.06710, B6: -14.74085, B7: -0.20471, RMSE: 0.93},
	}
}

func TestResolveSubrange_SingleMatch(t *testing.T) {
	tests := []struct {
		cwv  float64
		want string
	}{
		{0.5, "Range_1"},
		{1.5, "Range_1"},
		{2.75, "Range_2"},
		{3.75, "Range_3"},
		{4.75, "Range_4"},
		{5.75, "Range_5"},
		{6.2, "Range_5"},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("cwv=%g", tt.cwv), func(t *testing.T) {
			// Single-match resolution must be deterministic under
			// either tie policy.
			for _, policy := range []TiePolicy{TieRandom, TieError} {
				sub, err := ResolveSubrange(tt.cwv, testTable(), policy, nil)
				require.NoError(t, err)
				assert.Equal(t, tt.want, sub.Key)
			}
		})
	}
}

func TestResolveSubrange_NoMatch(t *testing.T) {
	for _, cwv := range []float64{0.0, -1.0, 6.3, 7.0} {
		t.Run(fmt.Sprintf("cwv=%g", cwv), func(t *testing.T) {
			_, err := ResolveSubrange(cwv, testTable(), TieRandom, nil)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrNoMatchingSubrange)
		})
	}
}

func TestResolveSubrange_BoundariesAreOpen(t *testing.T) {
	// 2.5 is the upper bound of Range_1: excluded there, inside Range_2.
	sub, err := ResolveSubrange(2.5, testTable(), TieError, nil)
	require.NoError(t, err)
	assert.Equal(t, "Range_2", sub.Key)
}

func TestResolveSubrange_OverlapTieError(t *testing.T) {
	// 2.25 sits in the 0.5-wide overlap between Range_1 and Range_2.
	_, err := ResolveSubrange(2.25, testTable(), TieError, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAmbiguousSubrange)
	assert.Contains(t, err.Error(), "2 subranges")
}

func TestResolveSubrange_OverlapTieRandom(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))

	seen := map[string]int{}
	for i := 0; i < 200; i++ {
		sub, err := ResolveSubrange(2.25, testTable(), TieRandom, rng)
		require.NoError(t, err)
		seen[sub.Key]++
	}

	// Only the two overlapping subranges may be drawn, and over 200
	// draws both should appear.
	assert.Len(t, seen, 2)
	assert.Positive(t, seen["Range_1"])
	assert.Positive(t, seen["Range_2"])
}

func TestResolveSubrange_NilRNG(t *testing.T) {
	// The shared PRNG path must still only return matching subranges.
	sub, err := ResolveSubrange(5.25, testTable(), TieRandom, nil)
	require.NoError(t, err)
	assert.Contains(t, []string{"Range_4", "Range_5"}, sub.Key)
}

func TestCheckBrightnessTemp(t *testing.T) {
	valid := []float64{1, 1.5, 300, 65535}
	for _, dn := range valid {
		assert.NoError(t, CheckBrightnessTemp("t10", dn), "dn=%g", dn)
	}

	invalid := []float64{0, 0.99, -5, 65535.01, 70000}
	for _, dn := range invalid {
		err := CheckBrightnessTemp("t11", dn)
		require.Error(t, err, "dn=%g", dn)
		assert.ErrorIs(t, err, ErrOutOfRangeInput)
		assert.Contains(t, err.Error(), "t11")
		assert.Contains(t, err.Error(), fmt.Sprintf("%g", dn))
	}
}

func TestParseTiePolicy(t *testing.T) {
	p, err := ParseTiePolicy("random")
	require.NoError(t, err)
	assert.Equal(t, TieRandom, p)

	p, err = ParseTiePolicy("")
	require.NoError(t, err)
	assert.Equal(t, TieRandom, p)

	p, err = ParseTiePolicy("error")
	require.NoError(t, err)
	assert.Equal(t, TieError, p)

	_, err = ParseTiePolicy("clamp")
	require.Error(t, err)

	assert.Equal(t, "random", TieRandom.String())
	assert.Equal(t, "error", TieError.String())
}

func TestSubrangeContains(t *testing.T) {
	s := Subrange{Low: 2.0, High: 3.5}
	assert.False(t, s.Contains(2.0))
	assert.True(t, s.Contains(2.0001))
	assert.True(t, s.Contains(3.4999))
	assert.False(t, s.Contains(3.5))
}
