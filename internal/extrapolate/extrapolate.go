// Package extrapolate maps a Beta posterior and its credible interval onto
// an external range of total species counts, producing absolute estimates of
// edible species and a human-readable summary.
package extrapolate

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/tkoskela/floraest/internal/bayes"
	"github.com/tkoskela/floraest/internal/errors"
)

// BoundEstimate holds the absolute edible species counts obtained by applying
// the credible interval to one total species count bound.
type BoundEstimate struct {
	TotalSpecies float64 // the external total species count bound
	LowerCount   float64 // interval lower bound times total species
	UpperCount   float64 // interval upper bound times total species
}

// Estimate is the structured result of the extrapolation stage.
type Estimate struct {
	Mass            float64       // credibility mass of the interval
	MeanPercentage  float64       // posterior mean as a percentage
	LowerPercentage float64       // interval lower bound as a percentage
	UpperPercentage float64       // interval upper bound as a percentage
	Bounds          []BoundEstimate
}

// New computes the extrapolated estimate from the posterior, its credible
// interval and the pair of total species count bounds. Pure arithmetic; the
// only failures are invalid inputs.
func New(post bayes.Posterior, iv bayes.Interval, mass, lowerBound, upperBound float64) (Estimate, error) {
	if err := post.Validate(); err != nil {
		return Estimate{}, err
	}
	if lowerBound <= 0 || upperBound <= 0 || lowerBound > upperBound {
		return Estimate{}, errors.Newf("malformed species bounds: lower=%g upper=%g", lowerBound, upperBound).
			Category(errors.CategoryValidation).
			Component("extrapolate").
			Context("lower_bound", lowerBound).
			Context("upper_bound", upperBound).
			Build()
	}
	if iv.Lower < 0 || iv.Upper > 1 || iv.Lower > iv.Upper {
		return Estimate{}, errors.Newf("malformed credible interval: [%g, %g]", iv.Lower, iv.Upper).
			Category(errors.CategoryValidation).
			Component("extrapolate").
			Build()
	}

	estimate := Estimate{
		Mass:            mass,
		MeanPercentage:  post.Mean() * 100,
		LowerPercentage: iv.Lower * 100,
		UpperPercentage: iv.Upper * 100,
	}
	for _, total := range []float64{lowerBound, upperBound} {
		estimate.Bounds = append(estimate.Bounds, BoundEstimate{
			TotalSpecies: total,
			LowerCount:   iv.Lower * total,
			UpperCount:   iv.Upper * total,
		})
	}
	return estimate, nil
}

// Summary formats the estimate as a human-readable sentence. Percentages are
// rounded to two decimals, absolute counts to whole species with grouped
// digits.
func (e Estimate) Summary() string {
	p := message.NewPrinter(language.English)

	var b strings.Builder
	p.Fprintf(&b, "An estimated %.2f%% of vascular plant species are edible (%.0f%% HDI %.2f%%-%.2f%%).",
		e.MeanPercentage, e.Mass*100, e.LowerPercentage, e.UpperPercentage)

	for _, bound := range e.Bounds {
		p.Fprintf(&b, " Applied to %.0f described species this corresponds to %.0f-%.0f edible species.",
			bound.TotalSpecies, bound.LowerCount, bound.UpperCount)
	}

	return b.String()
}

// String implements fmt.Stringer.
func (e Estimate) String() string {
	return fmt.Sprintf("mean=%.2f%% interval=[%.2f%%, %.2f%%] bounds=%d",
		e.MeanPercentage, e.LowerPercentage, e.UpperPercentage, len(e.Bounds))
}
