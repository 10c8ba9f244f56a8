// Package analysis runs the estimation pipeline end to end: dataset
// acquisition, conjugate update, credible interval calculation and population
// extrapolation.
package analysis

import (
	"context"
	"time"

	"github.com/tkoskela/floraest/internal/bayes"
	"github.com/tkoskela/floraest/internal/conf"
	"github.com/tkoskela/floraest/internal/errors"
	"github.com/tkoskela/floraest/internal/export"
	"github.com/tkoskela/floraest/internal/extrapolate"
	"github.com/tkoskela/floraest/internal/flora"
	"github.com/tkoskela/floraest/internal/logging"
	"github.com/tkoskela/floraest/internal/regression"
)

// Dataset sources reported in pipeline logs.
const (
	sourceCSV       = "csv"
	sourceSimulated = "simulated"
)

// RunEstimate executes the full estimation pipeline described by the
// settings and returns the result ready for export.
func RunEstimate(ctx context.Context, settings *conf.Settings) (*export.Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start := time.Now()

	records, source, err := LoadRecords(settings)
	if err != nil {
		return nil, err
	}

	trials, successes := flora.Counts(records)
	if trials == 0 {
		return nil, errors.Newf("dataset contains no species records").
			Category(errors.CategoryValidation).
			Component("analysis").
			Context("source", source).
			Build()
	}
	logging.Info("Dataset loaded",
		"source", source,
		"species", trials,
		"edible", successes,
		"duration_ms", time.Since(start).Milliseconds())

	alphaPrior, betaPrior, err := settings.Analysis.Prior.PseudoCounts()
	if err != nil {
		return nil, err
	}

	posterior, err := bayes.ConjugateUpdate(alphaPrior, betaPrior, trials, successes)
	if err != nil {
		return nil, err
	}
	logging.Debug("Posterior updated",
		"prior_variant", settings.Analysis.Prior.Variant,
		"alpha", posterior.Alpha,
		"beta", posterior.Beta,
		"mean", posterior.Mean())

	mass := settings.Analysis.Mass
	draws := settings.Analysis.Draws
	if draws < 1 {
		draws = bayes.DefaultDraws
	}
	seed := settings.Analysis.Seed

	intervalStart := time.Now()
	hdi, err := bayes.HDI(posterior, mass, draws, seed)
	if err != nil {
		return nil, err
	}
	logging.Info("Credible interval computed",
		"mass", mass,
		"draws", draws,
		"seed", seed,
		"lower", hdi.Lower,
		"upper", hdi.Upper,
		"duration_ms", time.Since(intervalStart).Milliseconds())

	// The equal-tail interval is a deterministic reference: the HDI of a
	// unimodal posterior is never wider.
	if equalTail, etErr := bayes.EqualTail(posterior, mass); etErr == nil {
		logging.Debug("Equal-tail reference interval",
			"lower", equalTail.Lower,
			"upper", equalTail.Upper,
			"hdi_width", hdi.Width(),
			"equal_tail_width", equalTail.Width())
	}

	if settings.Debug {
		crossCheckSampler(ctx, records, alphaPrior, betaPrior, draws, seed, posterior)
	}

	bounds := settings.Analysis.Species
	estimate, err := extrapolate.New(posterior, hdi, mass, bounds.Lower, bounds.Upper)
	if err != nil {
		return nil, err
	}

	result := &export.Result{
		Node:         settings.Main.Name,
		GeneratedAt:  time.Now(),
		PriorVariant: settings.Analysis.Prior.Variant,
		AlphaPrior:   alphaPrior,
		BetaPrior:    betaPrior,
		Trials:       trials,
		Successes:    successes,
		Posterior:    posterior,
		Interval:     hdi,
		Mass:         mass,
		Draws:        draws,
		Seed:         seed,
		Estimate:     estimate,
	}

	logging.Info("Estimation pipeline finished",
		"mean_percentage", estimate.MeanPercentage,
		"lower_percentage", estimate.LowerPercentage,
		"upper_percentage", estimate.UpperPercentage,
		"duration_ms", time.Since(start).Milliseconds())

	return result, nil
}

// LoadRecords acquires the species record table: from the configured CSV file
// when a path is set, otherwise from the seeded simulator.
func LoadRecords(settings *conf.Settings) ([]flora.Record, string, error) {
	if settings.Input.Path != "" {
		records, err := flora.LoadCSV(settings.Input.Path)
		if err != nil {
			return nil, sourceCSV, err
		}
		return records, sourceCSV, nil
	}

	sim := settings.Input.Simulate
	if sim.Species < 1 {
		return nil, sourceSimulated, errors.Newf("simulated species count must be at least 1, got %d", sim.Species).
			Category(errors.CategoryValidation).
			Component("analysis").
			Build()
	}
	records := flora.NewSimulator(sim.Seed).Generate(sim.Species)
	return records, sourceSimulated, nil
}

// crossCheckSampler verifies the analytic posterior against the sampling
// backend and logs the discrepancy. Debug aid only; failures are logged, not
// propagated.
func crossCheckSampler(ctx context.Context, records []flora.Record, alphaPrior, betaPrior float64, draws int, seed uint64, posterior bayes.Posterior) {
	samples, err := regression.NewBetaBinomial().Fit(ctx, records,
		regression.FormulaSpec{Outcome: regression.OutcomeEdible},
		regression.Priors{Alpha: alphaPrior, Beta: betaPrior},
		regression.SamplerConfig{Draws: draws, Seed: seed})
	if err != nil {
		logging.Warn("Sampler cross-check failed", "error", err.Error())
		return
	}
	logging.Debug("Sampler cross-check",
		"analytic_mean", posterior.Mean(),
		"sampled_mean", samples.Mean(),
		"sampled_stddev", samples.StdDev())
}
