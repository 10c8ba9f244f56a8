package analysis

import (
	"context"
	"fmt"
	"io"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/tkoskela/floraest/internal/conf"
	"github.com/tkoskela/floraest/internal/errors"
	"github.com/tkoskela/floraest/internal/logging"
	"github.com/tkoskela/floraest/internal/wikipedia"
)

// ClassifyReport holds the per-species verdicts and the aggregate tally of
// one classification run.
type ClassifyReport struct {
	Results map[string]wikipedia.Classification
	Tally   map[wikipedia.Classification]int
	Metrics wikipedia.Metrics
}

// RunClassify classifies the given species names against Wikipedia. With an
// empty name list the names are taken from the configured dataset.
func RunClassify(ctx context.Context, settings *conf.Settings, names []string) (*ClassifyReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if len(names) == 0 {
		records, source, err := LoadRecords(settings)
		if err != nil {
			return nil, err
		}
		names = make([]string, 0, len(records))
		for i := range records {
			names = append(names, records[i].ScientificName)
		}
		logging.Info("Classifying species from dataset",
			"source", source,
			"species", len(names))
	}
	if len(names) == 0 {
		return nil, errors.Newf("no species names to classify").
			Category(errors.CategoryValidation).
			Component("analysis").
			Build()
	}

	classifier, err := wikipedia.NewClassifier(wikipedia.ConfigFromSettings(settings))
	if err != nil {
		return nil, err
	}
	defer classifier.Close()

	start := time.Now()
	results := classifier.ClassifyAll(ctx, names)
	metrics := classifier.GetMetrics()

	logging.Info("Classification run finished",
		"species", len(results),
		"api_calls", metrics.APICalls,
		"api_errors", metrics.APIErrors,
		"cache_hits", metrics.CacheHits,
		"duration_ms", time.Since(start).Milliseconds())

	return &ClassifyReport{
		Results: results,
		Tally:   wikipedia.Tally(results),
		Metrics: metrics,
	}, nil
}

// WriteReport writes the per-species verdicts in name order followed by the
// tally.
func (r *ClassifyReport) WriteReport(w io.Writer) error {
	names := make([]string, 0, len(r.Results))
	for name := range r.Results {
		names = append(names, name)
	}
	sort.Strings(names)

	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
	for _, name := range names {
		fmt.Fprintf(tw, "%s\t%s\n", name, r.Results[name])
	}
	if err := tw.Flush(); err != nil {
		return errors.Newf("failed to write classification report: %w", err).
			Category(errors.CategoryExport).
			Component("analysis").
			Build()
	}

	fmt.Fprintf(w, "\nedible: %d, toxic: %d, unknown: %d\n",
		r.Tally[wikipedia.ClassEdible],
		r.Tally[wikipedia.ClassToxic],
		r.Tally[wikipedia.ClassUnknown])
	return nil
}
