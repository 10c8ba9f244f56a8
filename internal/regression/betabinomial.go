package regression

import (
	"context"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/tkoskela/floraest/internal/bayes"
	"github.com/tkoskela/floraest/internal/errors"
	"github.com/tkoskela/floraest/internal/flora"
)

// The outcome column the Beta-Binomial backend models.
const OutcomeEdible = "edible"

// BetaBinomial is the conjugate intercept-only backend: it aggregates the
// record set into binomial counts, performs the closed-form Beta update and
// draws posterior samples from the resulting distribution.
type BetaBinomial struct{}

// NewBetaBinomial creates the conjugate backend.
func NewBetaBinomial() *BetaBinomial {
	return &BetaBinomial{}
}

// Fit implements Fitter. Predictor terms are rejected: this backend models
// the marginal proportion only.
func (bb *BetaBinomial) Fit(ctx context.Context, records []flora.Record, formula FormulaSpec, priors Priors, cfg SamplerConfig) (PosteriorSamples, error) {
	if err := ctx.Err(); err != nil {
		return PosteriorSamples{}, err
	}

	if formula.Outcome != OutcomeEdible {
		return PosteriorSamples{}, errors.Newf("beta-binomial backend models outcome %q, got %q", OutcomeEdible, formula.Outcome).
			Category(errors.CategoryValidation).
			Component("regression").
			Context("outcome", formula.Outcome).
			Build()
	}
	if len(formula.Predictors) > 0 {
		return PosteriorSamples{}, errors.Newf("beta-binomial backend is intercept-only, got %d predictors", len(formula.Predictors)).
			Category(errors.CategoryValidation).
			Component("regression").
			Context("predictors", formula.Predictors).
			Build()
	}
	if cfg.Draws < 1 {
		return PosteriorSamples{}, errors.Newf("draws must be at least 1, got %d", cfg.Draws).
			Category(errors.CategoryValidation).
			Component("regression").
			Build()
	}

	trials, successes := flora.Counts(records)
	post, err := bayes.ConjugateUpdate(priors.Alpha, priors.Beta, trials, successes)
	if err != nil {
		return PosteriorSamples{}, err
	}

	dist := distuv.Beta{Alpha: post.Alpha, Beta: post.Beta, Src: rand.NewSource(cfg.Seed)}
	draws := make([]float64, cfg.Draws)
	for i := range draws {
		draws[i] = dist.Rand()
	}

	return PosteriorSamples{Draws: draws}, nil
}
