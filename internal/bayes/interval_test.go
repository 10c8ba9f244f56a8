package bayes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tkoskela/floraest/internal/errors"
)

func TestHDI_SeedIdempotence(t *testing.T) {
	post := Posterior{Alpha: 50, Beta: 250}

	first, err := HDI(post, 0.95, DefaultDraws, 42)
	require.NoError(t, err)
	second, err := HDI(post, 0.95, DefaultDraws, 42)
	require.NoError(t, err)

	// Bit-identical, not merely close.
	assert.Equal(t, first, second)
}

func TestHDI_BoundsAndOrdering(t *testing.T) {
	post := Posterior{Alpha: 50, Beta: 250}

	iv, err := HDI(post, 0.95, DefaultDraws, 42)
	require.NoError(t, err)

	assert.GreaterOrEqual(t, iv.Lower, 0.0)
	assert.LessOrEqual(t, iv.Upper, 1.0)
	assert.LessOrEqual(t, iv.Lower, iv.Upper)

	// The posterior mean of Beta(50,250) lies inside any sensible 95% region.
	assert.Greater(t, post.Mean(), iv.Lower)
	assert.Less(t, post.Mean(), iv.Upper)
}

func TestHDI_CoverageConvergence(t *testing.T) {
	post := Posterior{Alpha: 50, Beta: 250}

	for _, mass := range []float64{0.5, 0.9, 0.95, 0.99} {
		iv, err := HDI(post, mass, 100000, 42)
		require.NoError(t, err)

		coverage, err := Coverage(post, iv)
		require.NoError(t, err)
		assert.InDelta(t, mass, coverage, 0.01, "mass %g", mass)
	}
}

func TestHDI_NarrowerThanEqualTail(t *testing.T) {
	// A skewed posterior separates the two interval definitions clearly.
	post := Posterior{Alpha: 2, Beta: 30}

	hdi, err := HDI(post, 0.95, 100000, 42)
	require.NoError(t, err)
	equalTail, err := EqualTail(post, 0.95)
	require.NoError(t, err)

	// Sampling noise gets a small allowance; the HDI must not be wider.
	assert.LessOrEqual(t, hdi.Width(), equalTail.Width()+1e-3)
}

func TestHDI_Rejects(t *testing.T) {
	valid := Posterior{Alpha: 50, Beta: 250}

	tests := []struct {
		name  string
		post  Posterior
		mass  float64
		draws int
	}{
		{"zero_alpha", Posterior{Alpha: 0, Beta: 250}, 0.95, 1000},
		{"negative_beta", Posterior{Alpha: 50, Beta: -1}, 0.95, 1000},
		{"mass_zero", valid, 0, 1000},
		{"mass_one", valid, 1, 1000},
		{"mass_above_one", valid, 1.5, 1000},
		{"no_draws", valid, 0.95, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := HDI(tt.post, tt.mass, tt.draws, 42)
			require.Error(t, err)
			assert.True(t, errors.IsValidation(err))
		})
	}
}

func TestEqualTail_MatchesQuantiles(t *testing.T) {
	post := Posterior{Alpha: 50, Beta: 250}

	iv, err := EqualTail(post, 0.95)
	require.NoError(t, err)

	coverage, err := Coverage(post, iv)
	require.NoError(t, err)
	assert.InDelta(t, 0.95, coverage, 1e-9)
}

func TestHDI_SingleDraw(t *testing.T) {
	iv, err := HDI(Posterior{Alpha: 50, Beta: 250}, 0.95, 1, 42)
	require.NoError(t, err)
	assert.Equal(t, iv.Lower, iv.Upper)
}
