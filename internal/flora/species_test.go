package flora

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tkoskela/floraest/internal/errors"
)

func TestCounts(t *testing.T) {
	records := []Record{
		{ID: 1, Edible: true},
		{ID: 2, Edible: false},
		{ID: 3, Edible: true},
		{ID: 4, Edible: true},
	}

	trials, successes := Counts(records)
	assert.Equal(t, 4, trials)
	assert.Equal(t, 3, successes)
}

func TestCounts_Empty(t *testing.T) {
	trials, successes := Counts(nil)
	assert.Zero(t, trials)
	assert.Zero(t, successes)
}

func TestParseDefinitionCategory(t *testing.T) {
	for _, valid := range []string{"Raw", "Partial", "Processed"} {
		got, err := ParseDefinitionCategory(valid)
		require.NoError(t, err)
		assert.Equal(t, DefinitionCategory(valid), got)
	}

	_, err := ParseDefinitionCategory("Cooked")
	require.Error(t, err)
	assert.True(t, errors.IsValidation(err))
}

func TestParseProcessingLevel(t *testing.T) {
	for _, valid := range []string{"None", "Cooked", "Processed"} {
		got, err := ParseProcessingLevel(valid)
		require.NoError(t, err)
		assert.Equal(t, ProcessingLevel(valid), got)
	}

	_, err := ParseProcessingLevel("Raw")
	require.Error(t, err)
	assert.True(t, errors.IsValidation(err))
}

func TestRecord_Validate(t *testing.T) {
	valid := Record{
		ID:             1,
		ScientificName: "Urtica dioica",
		Definition:     DefinitionPartial,
		ReportCount:    5,
		Processing:     ProcessingCooked,
		Edible:         true,
	}
	require.NoError(t, valid.Validate())

	negative := valid
	negative.ReportCount = -1
	err := negative.Validate()
	require.Error(t, err)
	assert.True(t, errors.IsValidation(err))
}
