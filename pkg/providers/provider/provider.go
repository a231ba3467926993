package provider

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/germanamz/scorer/pkg/catalog"
	"github.com/germanamz/scorer/pkg/modeladapter/usage"
	"github.com/germanamz/scorer/pkg/scoring"
)

// Scorer is the capability every backend client implements.
//
// ListModels never fails outward: transport errors, non-success statuses and
// empty result sets are logged and answered with the provider's fallback list.
// ScoreArticle failures propagate as *scoring.Error values.
type Scorer interface {
	Kind() catalog.Provider
	ListModels(ctx context.Context, apiKey string) []catalog.ModelInfo
	ScoreArticle(ctx context.Context, apiKey, model, article string) (scoring.Result, error)
}

// UsageReporter is implemented by clients that record the tokens each
// scoring call consumed.
type UsageReporter interface {
	UsageTracker() *usage.Tracker
}

// Options holds construction settings shared by all clients.
type Options struct {
	BaseURL     string       // Overrides the backend's default base URL.
	Client      *http.Client // HTTP client; nil uses the backend default.
	Logger      *slog.Logger // Logger for degraded listings; nil uses slog.Default.
	Temperature float64      // Sampling temperature; the backend default unless WithTemperature is given.

	temperatureSet bool
}

// Option configures Options.
type Option func(*Options)

// WithBaseURL overrides the backend base URL.
func WithBaseURL(url string) Option {
	return func(o *Options) { o.BaseURL = url }
}

// WithHTTPClient sets the HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(o *Options) { o.Client = c }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) { o.Logger = l }
}

// WithTemperature sets the sampling temperature.
func WithTemperature(t float64) Option {
	return func(o *Options) {
		o.Temperature = t
		o.temperatureSet = true
	}
}

// Apply builds Options from opts, filling defaults for the given base URL and
// temperature. An explicit WithTemperature(0) is kept.
func Apply(defaultBaseURL string, defaultTemperature float64, opts ...Option) Options {
	o := Options{}
	for _, opt := range opts {
		opt(&o)
	}

	if o.BaseURL == "" {
		o.BaseURL = defaultBaseURL
	}
	if !o.temperatureSet {
		o.Temperature = defaultTemperature
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}

	return o
}
