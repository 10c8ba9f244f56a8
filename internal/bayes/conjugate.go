// Package bayes implements the Beta-Binomial conjugate estimator and the
// highest-density credible interval calculator.
package bayes

import (
	"github.com/tkoskela/floraest/internal/errors"
)

// Posterior holds the parameters of a Beta posterior distribution.
// Both parameters are always positive.
type Posterior struct {
	Alpha float64
	Beta  float64
}

// Mean returns the posterior mean alpha/(alpha+beta).
func (p Posterior) Mean() float64 {
	return p.Alpha / (p.Alpha + p.Beta)
}

// Validate checks the posterior parameter invariant.
func (p Posterior) Validate() error {
	if p.Alpha <= 0 || p.Beta <= 0 {
		return errors.Newf("posterior parameters must be positive, got alpha=%g beta=%g", p.Alpha, p.Beta).
			Category(errors.CategoryValidation).
			Component("bayes").
			Context("alpha", p.Alpha).
			Context("beta", p.Beta).
			Build()
	}
	return nil
}

// ConjugateUpdate computes the Beta-Binomial posterior from prior
// pseudo-counts and observed binomial counts:
//
//	alpha_post = alpha_prior + successes
//	beta_post  = beta_prior + trials - successes
//
// Inputs are validated, not clamped: non-positive priors, negative counts and
// successes exceeding trials are all rejected.
func ConjugateUpdate(alphaPrior, betaPrior float64, trials, successes int) (Posterior, error) {
	if alphaPrior <= 0 || betaPrior <= 0 {
		return Posterior{}, errors.Newf("prior pseudo-counts must be positive, got alpha=%g beta=%g", alphaPrior, betaPrior).
			Category(errors.CategoryValidation).
			Component("bayes").
			Context("alpha_prior", alphaPrior).
			Context("beta_prior", betaPrior).
			Build()
	}
	if trials < 0 || successes < 0 {
		return Posterior{}, errors.Newf("counts must not be negative, got trials=%d successes=%d", trials, successes).
			Category(errors.CategoryValidation).
			Component("bayes").
			Context("trials", trials).
			Context("successes", successes).
			Build()
	}
	if successes > trials {
		return Posterior{}, errors.Newf("successes %d exceed trials %d", successes, trials).
			Category(errors.CategoryValidation).
			Component("bayes").
			Context("trials", trials).
			Context("successes", successes).
			Build()
	}

	return Posterior{
		Alpha: alphaPrior + float64(successes),
		Beta:  betaPrior + float64(trials-successes),
	}, nil
}
