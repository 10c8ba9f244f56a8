package bayes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tkoskela/floraest/internal/errors"
)

func TestConjugateUpdate_Exact(t *testing.T) {
	tests := []struct {
		name       string
		alphaPrior float64
		betaPrior  float64
		trials     int
		successes  int
		wantAlpha  float64
		wantBeta   float64
	}{
		{"informative_prior", 10, 90, 200, 40, 50, 250},
		{"flat_prior", 1, 1, 100, 25, 26, 76},
		{"no_data", 10, 90, 0, 0, 10, 90},
		{"fractional_prior", 0.5, 0.5, 10, 3, 3.5, 7.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			post, err := ConjugateUpdate(tt.alphaPrior, tt.betaPrior, tt.trials, tt.successes)
			require.NoError(t, err)
			assert.InDelta(t, tt.wantAlpha, post.Alpha, 0)
			assert.InDelta(t, tt.wantBeta, post.Beta, 0)
		})
	}
}

func TestConjugateUpdate_MeanScenario(t *testing.T) {
	// alpha_prior=10, beta_prior=90, 200 species of which 40 edible
	post, err := ConjugateUpdate(10, 90, 200, 40)
	require.NoError(t, err)
	assert.InDelta(t, 50.0/300.0, post.Mean(), 1e-12)
	assert.InDelta(t, 16.67, post.Mean()*100, 0.01)
}

func TestConjugateUpdate_Boundaries(t *testing.T) {
	// Zero successes and all successes must both produce valid posteriors.
	zero, err := ConjugateUpdate(10, 90, 200, 0)
	require.NoError(t, err)
	assert.Greater(t, zero.Alpha, 0.0)
	assert.Greater(t, zero.Beta, 0.0)
	assert.InDelta(t, 10.0, zero.Alpha, 0)
	assert.InDelta(t, 290.0, zero.Beta, 0)

	all, err := ConjugateUpdate(10, 90, 200, 200)
	require.NoError(t, err)
	assert.InDelta(t, 210.0, all.Alpha, 0)
	assert.InDelta(t, 90.0, all.Beta, 0)
}

func TestConjugateUpdate_Rejects(t *testing.T) {
	tests := []struct {
		name       string
		alphaPrior float64
		betaPrior  float64
		trials     int
		successes  int
	}{
		{"successes_exceed_trials", 10, 90, 10, 11},
		{"negative_trials", 10, 90, -1, 0},
		{"negative_successes", 10, 90, 10, -1},
		{"zero_alpha_prior", 0, 90, 10, 5},
		{"negative_beta_prior", 10, -90, 10, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ConjugateUpdate(tt.alphaPrior, tt.betaPrior, tt.trials, tt.successes)
			require.Error(t, err)
			assert.True(t, errors.IsValidation(err))
		})
	}
}

func TestPosterior_Validate(t *testing.T) {
	require.NoError(t, Posterior{Alpha: 50, Beta: 250}.Validate())
	require.Error(t, Posterior{Alpha: 0, Beta: 250}.Validate())
	require.Error(t, Posterior{Alpha: 50, Beta: -1}.Validate())
}
