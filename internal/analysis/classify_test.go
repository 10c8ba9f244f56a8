package analysis

import (
	"bytes"
	"context"
	"net/http"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tkoskela/floraest/internal/conf"
	"github.com/tkoskela/floraest/internal/wikipedia"
)

const classifyAPIURL = "https://en.wikipedia.org/w/api.php"

func classifySettings() *conf.Settings {
	settings := testSettings()
	settings.Wikipedia = conf.WikipediaSettings{
		Enabled:     true,
		BaseURL:     classifyAPIURL,
		TimeoutSec:  2,
		RateLimitMS: 1,
	}
	return settings
}

func TestRunClassify_ExplicitNames(t *testing.T) {
	httpmock.Activate()
	t.Cleanup(httpmock.DeactivateAndReset)
	httpmock.RegisterResponder(http.MethodGet, classifyAPIURL,
		httpmock.NewStringResponder(http.StatusOK,
			`{"query":{"pages":[{"pageid":1,"title":"Urtica dioica","extract":"An edible green."}]}}`))

	report, err := RunClassify(context.Background(), classifySettings(),
		[]string{"Urtica dioica"})
	require.NoError(t, err)

	assert.Equal(t, wikipedia.ClassEdible, report.Results["Urtica dioica"])
	assert.Equal(t, 1, report.Tally[wikipedia.ClassEdible])
	assert.Equal(t, int64(1), report.Metrics.APICalls)
}

func TestRunClassify_NamesFromDataset(t *testing.T) {
	httpmock.Activate()
	t.Cleanup(httpmock.DeactivateAndReset)
	httpmock.RegisterResponder(http.MethodGet, classifyAPIURL,
		httpmock.NewStringResponder(http.StatusOK,
			`{"query":{"pages":[{"pageid":1,"title":"Test","extract":"A roadside weed."}]}}`))

	settings := classifySettings()
	settings.Input.Simulate.Species = 3

	report, err := RunClassify(context.Background(), settings, nil)
	require.NoError(t, err)

	assert.NotEmpty(t, report.Results)
	assert.Equal(t, len(report.Results), report.Tally[wikipedia.ClassUnknown])
}

func TestClassifyReport_WriteReport(t *testing.T) {
	report := &ClassifyReport{
		Results: map[string]wikipedia.Classification{
			"Urtica dioica":     wikipedia.ClassEdible,
			"Atropa belladonna": wikipedia.ClassToxic,
		},
		Tally: map[wikipedia.Classification]int{
			wikipedia.ClassEdible: 1,
			wikipedia.ClassToxic:  1,
		},
	}

	var buf bytes.Buffer
	require.NoError(t, report.WriteReport(&buf))

	out := buf.String()
	assert.Contains(t, out, "Urtica dioica")
	assert.Contains(t, out, "edible: 1, toxic: 1, unknown: 0")
}
