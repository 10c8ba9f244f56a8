package wikipedia

import (
	"context"
	"strings"

	"github.com/k3a/html2text"
	"github.com/patrickmn/go-cache"
)

// Classification is the edibility verdict for one species.
type Classification string

const (
	ClassEdible  Classification = "edible"
	ClassToxic   Classification = "toxic"
	ClassUnknown Classification = "unknown"
)

// Keyword sets searched in the page intro text. Matching is case-insensitive
// over the HTML-stripped extract. A toxicity match outranks an edibility
// match: pages describing a plant as both get the conservative verdict.
var (
	edibleKeywords = []string{
		"edible",
		"culinary",
		"eaten raw",
		"eaten cooked",
		"food crop",
		"consumed as food",
		"used as a vegetable",
		"cultivated for food",
	}
	toxicKeywords = []string{
		"toxic",
		"poisonous",
		"poison",
		"inedible",
		"dangerous if ingested",
	}
)

// Classify fetches the species page and classifies its edibility. It never
// returns an error: network failures, missing pages and malformed responses
// all degrade to ClassUnknown with a logged warning.
func (c *Classifier) Classify(ctx context.Context, speciesName string) Classification {
	cacheKey := "classify:" + strings.ToLower(strings.TrimSpace(speciesName))

	if cached, found := c.cache.Get(cacheKey); found {
		if class, ok := cached.(Classification); ok {
			c.metrics.mu.Lock()
			c.metrics.cacheHits++
			c.metrics.mu.Unlock()

			logger.Debug("Classification cache hit",
				"species", speciesName,
				"classification", class)
			return class
		}
	}

	c.metrics.mu.Lock()
	c.metrics.cacheMisses++
	c.metrics.mu.Unlock()

	reqID := newRequestID()
	extract, err := c.fetchExtract(ctx, speciesName, reqID)
	if err != nil {
		// Degrade gracefully: the classifier contract has no failure mode.
		logger.Warn("Classification fetch failed, returning unknown",
			"request_id", reqID,
			"species", speciesName,
			"error", err.Error())
		return ClassUnknown
	}

	class := classifyText(extract)
	c.cache.Set(cacheKey, class, cache.DefaultExpiration)

	logger.Info("Species classified",
		"request_id", reqID,
		"species", speciesName,
		"classification", class,
		"extract_length", len(extract))

	return class
}

// ClassifyAll classifies a batch of species names, returning per-name
// verdicts in input order.
func (c *Classifier) ClassifyAll(ctx context.Context, speciesNames []string) map[string]Classification {
	results := make(map[string]Classification, len(speciesNames))
	for _, name := range speciesNames {
		results[name] = c.Classify(ctx, name)
	}
	return results
}

// Tally counts classifications per verdict.
func Tally(results map[string]Classification) map[Classification]int {
	tally := make(map[Classification]int, 3)
	for _, class := range results {
		tally[class]++
	}
	return tally
}

// classifyText applies the keyword search to the HTML extract.
func classifyText(extract string) Classification {
	text := strings.ToLower(html2text.HTML2Text(extract))

	if containsAny(text, toxicKeywords) {
		return ClassToxic
	}
	if containsAny(text, edibleKeywords) {
		return ClassEdible
	}
	return ClassUnknown
}

func containsAny(text string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(text, keyword) {
			return true
		}
	}
	return false
}
