// Package regression abstracts the posterior-producing model fit behind a
// capability interface so the estimation pipeline does not depend on any
// particular regression backend. The only backend shipped here is the
// conjugate Beta-Binomial intercept model; an MCMC-based logistic backend
// can implement the same interface.
package regression

import (
	"context"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/tkoskela/floraest/internal/flora"
)

// FormulaSpec names the outcome column and optional predictor columns of a
// model fit.
type FormulaSpec struct {
	Outcome    string
	Predictors []string
}

// Priors carries the prior specification handed to a backend. For the
// Beta-Binomial backend these are the Beta pseudo-counts.
type Priors struct {
	Alpha float64
	Beta  float64
}

// SamplerConfig configures posterior sampling.
type SamplerConfig struct {
	Draws int
	Seed  uint64
}

// PosteriorSamples holds draws from the posterior of the edible proportion.
type PosteriorSamples struct {
	Draws []float64
}

// Mean returns the sample mean of the posterior draws.
func (ps PosteriorSamples) Mean() float64 {
	return stat.Mean(ps.Draws, nil)
}

// StdDev returns the sample standard deviation of the posterior draws.
func (ps PosteriorSamples) StdDev() float64 {
	return stat.StdDev(ps.Draws, nil)
}

// Quantile returns the empirical q-quantile of the posterior draws.
func (ps PosteriorSamples) Quantile(q float64) float64 {
	sorted := make([]float64, len(ps.Draws))
	copy(sorted, ps.Draws)
	sort.Float64s(sorted)
	return stat.Quantile(q, stat.Empirical, sorted, nil)
}

// Fitter is the capability interface for posterior-producing model fits.
type Fitter interface {
	Fit(ctx context.Context, records []flora.Record, formula FormulaSpec, priors Priors, cfg SamplerConfig) (PosteriorSamples, error)
}
