package analysis

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tkoskela/floraest/internal/conf"
	"github.com/tkoskela/floraest/internal/flora"
)

func testSettings() *conf.Settings {
	return &conf.Settings{
		Main: conf.MainSettings{Name: "test-node"},
		Analysis: conf.AnalysisSettings{
			Prior: conf.PriorSettings{Variant: conf.PriorInformative},
			Mass:  0.95,
			Draws: 2000,
			Seed:  42,
			Species: conf.SpeciesBounds{
				Lower: 342000,
				Upper: 369000,
			},
		},
		Input: conf.InputSettings{
			Simulate: conf.SimulateSettings{Species: 200, Seed: 7},
		},
		Output: conf.OutputSettings{Format: conf.FormatTable},
	}
}

func TestRunEstimate_Simulated(t *testing.T) {
	settings := testSettings()

	result, err := RunEstimate(context.Background(), settings)
	require.NoError(t, err)

	assert.Equal(t, "test-node", result.Node)
	assert.Equal(t, conf.PriorInformative, result.PriorVariant)
	assert.Equal(t, 200, result.Trials)
	assert.Greater(t, result.Successes, 0)
	assert.Less(t, result.Successes, result.Trials)

	// Conjugate update: pseudo-counts plus observed counts.
	assert.Equal(t, conf.InformativeAlpha+float64(result.Successes), result.Posterior.Alpha)
	assert.Equal(t, conf.InformativeBeta+float64(result.Trials-result.Successes), result.Posterior.Beta)

	assert.Greater(t, result.Interval.Lower, 0.0)
	assert.Less(t, result.Interval.Upper, 1.0)
	assert.LessOrEqual(t, result.Interval.Lower, result.Interval.Upper)

	require.Len(t, result.Estimate.Bounds, 2)
	assert.Equal(t, 342000.0, result.Estimate.Bounds[0].TotalSpecies)
	assert.Equal(t, 369000.0, result.Estimate.Bounds[1].TotalSpecies)
}

func TestRunEstimate_Deterministic(t *testing.T) {
	first, err := RunEstimate(context.Background(), testSettings())
	require.NoError(t, err)
	second, err := RunEstimate(context.Background(), testSettings())
	require.NoError(t, err)

	assert.Equal(t, first.Posterior, second.Posterior)
	assert.Equal(t, first.Interval, second.Interval)
	assert.Equal(t, first.Estimate, second.Estimate)
}

func TestRunEstimate_CSVInput(t *testing.T) {
	records := flora.NewSimulator(11).Generate(150)
	path := filepath.Join(t.TempDir(), "species.csv")
	require.NoError(t, flora.SaveCSV(path, records))

	settings := testSettings()
	settings.Input.Path = path

	result, err := RunEstimate(context.Background(), settings)
	require.NoError(t, err)

	trials, successes := flora.Counts(records)
	assert.Equal(t, trials, result.Trials)
	assert.Equal(t, successes, result.Successes)
}

func TestRunEstimate_EmptyDataset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	require.NoError(t, flora.SaveCSV(path, nil))

	settings := testSettings()
	settings.Input.Path = path

	_, err := RunEstimate(context.Background(), settings)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no species records")
}

func TestRunEstimate_UnknownPrior(t *testing.T) {
	settings := testSettings()
	settings.Analysis.Prior.Variant = "bogus"

	_, err := RunEstimate(context.Background(), settings)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown prior variant")
}

func TestRunEstimate_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := RunEstimate(ctx, testSettings())
	require.ErrorIs(t, err, context.Canceled)
}

func TestLoadRecords_SimulateCountValidation(t *testing.T) {
	settings := testSettings()
	settings.Input.Simulate.Species = 0

	_, _, err := LoadRecords(settings)
	require.Error(t, err)
}
