// Package wikipedia classifies plant species as edible, toxic or unknown by
// fetching the species page from the MediaWiki API and searching its intro
// text for fixed keyword sets. Fetch and parse failures never propagate to
// the caller: the classification degrades to unknown.
package wikipedia

import (
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"net/http"
	"net/url"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"github.com/antonholmquist/jason"
	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"github.com/tkoskela/floraest/internal/conf"
	"github.com/tkoskela/floraest/internal/errors"
	"github.com/tkoskela/floraest/internal/logging"
)

// Package-level logger specific to the wikipedia service
var (
	logger          *slog.Logger
	serviceLevelVar = new(slog.LevelVar) // Dynamic level control
	closeLogger     func() error
)

func init() {
	var err error
	logFilePath := filepath.Join("logs", "wikipedia.log")
	initialLevel := slog.LevelDebug
	serviceLevelVar.Set(initialLevel)

	logger, closeLogger, err = logging.NewFileLogger(logFilePath, "wikipedia", serviceLevelVar)
	if err != nil {
		// Fallback: disable service logging rather than failing the package
		log.Printf("FATAL: Failed to initialize wikipedia file logger at %s: %v. Service logging disabled.", logFilePath, err)
		fbHandler := slog.NewJSONHandler(io.Discard, &slog.HandlerOptions{Level: serviceLevelVar})
		logger = slog.New(fbHandler).With("service", "wikipedia")
		closeLogger = func() error { return nil }
	}
}

// User-Agent constants following the Wikimedia robot policy
// https://foundation.wikimedia.org/wiki/Policy:Wikimedia_Foundation_User-Agent_Policy
const (
	userAgentName    = "FloraEst"
	userAgentLibrary = "Go-HTTP-Client"
)

// Config holds the classifier client configuration.
type Config struct {
	BaseURL   string        // MediaWiki API endpoint
	Contact   string        // contact URL or mail for the User-Agent header
	Version   string        // application version for the User-Agent header
	Timeout   time.Duration // per-request timeout
	CacheTTL  time.Duration // classification cache TTL
	RateLimit time.Duration // minimum delay between API requests
	Debug     bool          // log API request and response details
}

// DefaultConfig returns the default classifier configuration.
func DefaultConfig() Config {
	return Config{
		BaseURL:   "https://en.wikipedia.org/w/api.php",
		Contact:   "https://github.com/tkoskela/floraest",
		Timeout:   10 * time.Second,
		CacheTTL:  time.Hour,
		RateLimit: 500 * time.Millisecond,
	}
}

// ConfigFromSettings builds a classifier configuration from the application
// settings.
func ConfigFromSettings(settings *conf.Settings) Config {
	config := DefaultConfig()
	w := &settings.Wikipedia
	if w.BaseURL != "" {
		config.BaseURL = w.BaseURL
	}
	if w.Contact != "" {
		config.Contact = w.Contact
	}
	if w.TimeoutSec > 0 {
		config.Timeout = time.Duration(w.TimeoutSec) * time.Second
	}
	if w.CacheTTLMin > 0 {
		config.CacheTTL = time.Duration(w.CacheTTLMin) * time.Minute
	}
	if w.RateLimitMS > 0 {
		config.RateLimit = time.Duration(w.RateLimitMS) * time.Millisecond
	}
	config.Version = settings.Version
	config.Debug = w.Debug || settings.Debug
	return config
}

// Classifier fetches species pages and classifies their edibility.
type Classifier struct {
	config     Config
	httpClient *http.Client
	cache      *cache.Cache
	limiter    *rate.Limiter

	// Metrics
	metrics struct {
		apiCalls    int64
		cacheHits   int64
		cacheMisses int64
		apiErrors   int64
		mu          sync.RWMutex
	}
}

// NewClassifier creates a new edibility classifier.
func NewClassifier(config Config) (*Classifier, error) {
	if config.BaseURL == "" {
		return nil, errors.Newf("wikipedia API base URL is required").
			Category(errors.CategoryConfiguration).
			Component("wikipedia").
			Build()
	}
	if config.Timeout == 0 {
		config.Timeout = DefaultConfig().Timeout
	}
	if config.CacheTTL == 0 {
		config.CacheTTL = DefaultConfig().CacheTTL
	}
	if config.RateLimit == 0 {
		config.RateLimit = DefaultConfig().RateLimit
	}

	classifier := &Classifier{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		cache:   cache.New(config.CacheTTL, config.CacheTTL*2),
		limiter: rate.NewLimiter(rate.Every(config.RateLimit), 1),
	}

	logger.Info("Wikipedia classifier initialized",
		"base_url", config.BaseURL,
		"cache_ttl", config.CacheTTL,
		"rate_limit", config.RateLimit,
		"user_agent", buildUserAgent(config))

	return classifier, nil
}

// Close cleans up classifier resources.
func (c *Classifier) Close() {
	logger.Info("Closing Wikipedia classifier")
	if closeLogger != nil {
		if err := closeLogger(); err != nil {
			log.Printf("Error closing wikipedia logger: %v", err)
		}
	}
}

// buildUserAgent constructs a user-agent string that complies with the
// Wikimedia robot policy.
// Format: <client name>/<version> (<contact information>) <library/framework name>/<version>
func buildUserAgent(config Config) string {
	version := config.Version
	if version == "" {
		version = "unknown"
	}
	return fmt.Sprintf("%s/%s (%s) %s/%s",
		userAgentName, version, config.Contact, userAgentLibrary, runtime.Version())
}

// fetchExtract retrieves the plain intro extract of the named page. The
// caller handles all errors by degrading to an unknown classification.
func (c *Classifier) fetchExtract(ctx context.Context, speciesName, reqID string) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", errors.Newf("rate limiter wait interrupted: %w", err).
			Category(errors.CategoryNetwork).
			Component("wikipedia").
			Context("request_id", reqID).
			Build()
	}

	params := url.Values{}
	params.Set("action", "query")
	params.Set("prop", "extracts")
	params.Set("exintro", "1")
	params.Set("redirects", "1")
	params.Set("format", "json")
	params.Set("formatversion", "2")
	params.Set("titles", speciesName)
	fullURL := c.config.BaseURL + "?" + params.Encode()

	c.metrics.mu.Lock()
	c.metrics.apiCalls++
	c.metrics.mu.Unlock()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, http.NoBody)
	if err != nil {
		return "", errors.Newf("failed to create HTTP request: %w", err).
			Category(errors.CategoryNetwork).
			Component("wikipedia").
			Context("request_id", reqID).
			Context("url", fullURL).
			Build()
	}
	req.Header.Set("User-Agent", buildUserAgent(c.config))
	req.Header.Set("Accept", "application/json")

	if c.config.Debug {
		logger.Debug("Wikipedia API request",
			"request_id", reqID,
			"species_query", speciesName,
			"url", fullURL)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.countError()
		return "", errors.Newf("HTTP request failed: %w", err).
			Category(errors.CategoryNetwork).
			Component("wikipedia").
			Context("request_id", reqID).
			Context("url", fullURL).
			Build()
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			logger.Debug("Failed to close response body", "error", closeErr)
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.countError()
		return "", errors.Newf("failed to read response body: %w", err).
			Category(errors.CategoryNetwork).
			Component("wikipedia").
			Context("request_id", reqID).
			Context("status_code", resp.StatusCode).
			Build()
	}

	if resp.StatusCode != http.StatusOK {
		c.countError()
		return "", errors.Newf("Wikipedia API error (status %d)", resp.StatusCode).
			Category(errors.CategoryNetwork).
			Component("wikipedia").
			Context("request_id", reqID).
			Context("status_code", resp.StatusCode).
			Context("response_preview", preview(body)).
			Build()
	}

	extract, err := parseExtract(body)
	if err != nil {
		c.countError()
		return "", errors.Wrap(err).
			Component("wikipedia").
			Context("request_id", reqID).
			Context("species_query", speciesName).
			Build()
	}

	return extract, nil
}

// parseExtract pulls the page extract out of a formatversion=2 query
// response. A missing page is a not-found error.
func parseExtract(body []byte) (string, error) {
	root, err := jason.NewObjectFromBytes(body)
	if err != nil {
		return "", errors.Newf("failed to parse API response: %w", err).
			Category(errors.CategoryFileParsing).
			Build()
	}

	pages, err := root.GetObjectArray("query", "pages")
	if err != nil {
		return "", errors.Newf("malformed API response, no pages array: %w", err).
			Category(errors.CategoryFileParsing).
			Build()
	}
	if len(pages) == 0 {
		return "", errors.Newf("empty pages array in API response").
			Category(errors.CategoryNotFound).
			Build()
	}

	page := pages[0]
	if missing, err := page.GetBoolean("missing"); err == nil && missing {
		return "", errors.Newf("page not found").
			Category(errors.CategoryNotFound).
			Build()
	}

	extract, err := page.GetString("extract")
	if err != nil {
		return "", errors.Newf("page has no extract: %w", err).
			Category(errors.CategoryNotFound).
			Build()
	}
	return extract, nil
}

func (c *Classifier) countError() {
	c.metrics.mu.Lock()
	c.metrics.apiErrors++
	c.metrics.mu.Unlock()
}

func preview(body []byte) string {
	const max = 500
	if len(body) > max {
		return string(body[:max]) + "..."
	}
	return string(body)
}

// newRequestID returns a short identifier correlating log lines of one call.
func newRequestID() string {
	return uuid.New().String()[:8]
}

// Metrics represents classifier performance counters.
type Metrics struct {
	APICalls    int64 `json:"api_calls"`
	CacheHits   int64 `json:"cache_hits"`
	CacheMisses int64 `json:"cache_misses"`
	APIErrors   int64 `json:"api_errors"`
}

// GetMetrics returns current classifier metrics.
func (c *Classifier) GetMetrics() Metrics {
	c.metrics.mu.RLock()
	defer c.metrics.mu.RUnlock()
	return Metrics{
		APICalls:    c.metrics.apiCalls,
		CacheHits:   c.metrics.cacheHits,
		CacheMisses: c.metrics.cacheMisses,
		APIErrors:   c.metrics.apiErrors,
	}
}

// ClearCache clears all cached classifications.
func (c *Classifier) ClearCache() {
	c.cache.Flush()
	logger.Info("Wikipedia classification cache cleared")
}
