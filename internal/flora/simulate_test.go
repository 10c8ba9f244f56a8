package flora

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimulator_Deterministic(t *testing.T) {
	first := NewSimulator(42).Generate(200)
	second := NewSimulator(42).Generate(200)
	assert.Equal(t, first, second)
}

func TestSimulator_SeedChangesOutput(t *testing.T) {
	a := NewSimulator(1).Generate(200)
	b := NewSimulator(2).Generate(200)
	assert.NotEqual(t, a, b)
}

func TestSimulator_RecordsAreValid(t *testing.T) {
	records := NewSimulator(42).Generate(500)
	require.Len(t, records, 500)

	for i := range records {
		require.NoError(t, records[i].Validate())
		assert.Equal(t, i+1, records[i].ID)
		assert.NotEmpty(t, records[i].ScientificName)
	}
}

func TestSimulator_PlausibleMarginals(t *testing.T) {
	records := NewSimulator(42).Generate(5000)

	trials, successes := Counts(records)
	require.Equal(t, 5000, trials)

	// The logistic outcome model keeps the edible fraction well inside (0,1).
	fraction := float64(successes) / float64(trials)
	assert.Greater(t, fraction, 0.02)
	assert.Less(t, fraction, 0.60)

	toxicCount := 0
	for i := range records {
		if records[i].Toxic {
			toxicCount++
		}
	}
	toxicFraction := float64(toxicCount) / float64(trials)
	assert.InDelta(t, toxicRate, toxicFraction, 0.05)
}
