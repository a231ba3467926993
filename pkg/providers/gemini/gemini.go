// Package gemini implements provider.Scorer for the Google Gemini API through
// the genai client library.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"slices"

	"github.com/germanamz/scorer/pkg/catalog"
	"github.com/germanamz/scorer/pkg/modeladapter/usage"
	"github.com/germanamz/scorer/pkg/providers/provider"
	"github.com/germanamz/scorer/pkg/rubric"
	"github.com/germanamz/scorer/pkg/scoring"
	"google.golang.org/genai"
)

// DefaultBaseURL is the base URL for the Gemini API.
const DefaultBaseURL = "https://generativelanguage.googleapis.com/"

const generateContent = "generateContent"

var (
	_ provider.Scorer        = (*Adapter)(nil)
	_ provider.UsageReporter = (*Adapter)(nil)
)

// Adapter talks to Gemini. A genai client is built per call from the key
// supplied by the caller.
type Adapter struct {
	baseURL     string
	httpClient  *http.Client
	temperature float64
	log         *slog.Logger

	// Usage accumulates token counts reported in usage metadata.
	Usage usage.Tracker
}

// New creates an Adapter.
func New(opts ...provider.Option) *Adapter {
	o := provider.Apply(DefaultBaseURL, rubric.DefaultTemperature, opts...)

	return &Adapter{
		baseURL:     o.BaseURL,
		httpClient:  o.Client,
		temperature: o.Temperature,
		log:         o.Logger,
	}
}

// Kind returns catalog.Gemini.
func (a *Adapter) Kind() catalog.Provider { return catalog.Gemini }

// UsageTracker returns the tracker fed by ScoreArticle.
func (a *Adapter) UsageTracker() *usage.Tracker { return &a.Usage }

func (a *Adapter) newClient(ctx context.Context, apiKey string) (*genai.Client, error) {
	return genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      apiKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPClient:  a.httpClient,
		HTTPOptions: genai.HTTPOptions{BaseURL: a.baseURL},
	})
}

// ListModels pages through the Gemini catalog, keeps models that support
// generateContent and ranks them by version series. Any failure degrades to
// the static list.
func (a *Adapter) ListModels(ctx context.Context, apiKey string) []catalog.ModelInfo {
	client, err := a.newClient(ctx, apiKey)
	if err != nil {
		return catalog.Degraded(a.log, catalog.Gemini, err.Error())
	}

	var models []catalog.ModelInfo
	for m, err := range client.Models.All(ctx) {
		if err != nil {
			return catalog.Degraded(a.log, catalog.Gemini, err.Error())
		}

		if !slices.Contains(m.SupportedActions, generateContent) {
			continue
		}

		name := m.DisplayName
		if name == "" {
			name = catalog.DisplayName(catalog.Gemini, m.Name, m.Name)
		}

		models = append(models, catalog.ModelInfo{
			ID:       m.Name,
			Name:     name,
			Provider: catalog.Gemini,
		})
	}

	if len(models) == 0 {
		return catalog.Degraded(a.log, catalog.Gemini, "no models support generateContent")
	}

	catalog.SortBySeries(models, catalog.Priority(catalog.Gemini))

	return models
}

// ScoreArticle sends the article as content with the rubric as system
// instruction.
func (a *Adapter) ScoreArticle(ctx context.Context, apiKey, model, article string) (scoring.Result, error) {
	client, err := a.newClient(ctx, apiKey)
	if err != nil {
		return scoring.Result{}, fmt.Errorf("gemini: %w", scoring.Transport(0, err))
	}

	resp, err := client.Models.GenerateContent(ctx, model, genai.Text(article), &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(rubric.SystemPrompt, genai.RoleUser),
		Temperature:       genai.Ptr(float32(a.temperature)),
	})
	if err != nil {
		return scoring.Result{}, fmt.Errorf("gemini: %w", transportError(err))
	}

	if resp.UsageMetadata != nil {
		a.Usage.Record(model, usage.TokenCount{
			InputTokens:  int(resp.UsageMetadata.PromptTokenCount),
			OutputTokens: int(resp.UsageMetadata.CandidatesTokenCount),
		})
	}

	r, err := scoring.Parse(resp.Text())
	if err != nil {
		return scoring.Result{}, fmt.Errorf("gemini: %w", err)
	}

	return r, nil
}

func transportError(err error) *scoring.Error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return scoring.Transport(apiErr.Code, err)
	}

	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) {
		return scoring.Transport(apiErrPtr.Code, err)
	}

	return scoring.Transport(0, err)
}
