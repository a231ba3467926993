// Package openrouter implements provider.Scorer for OpenRouter through the
// OpenAI-compatible client library.
package openrouter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/germanamz/scorer/pkg/catalog"
	"github.com/germanamz/scorer/pkg/modeladapter/usage"
	"github.com/germanamz/scorer/pkg/providers/provider"
	"github.com/germanamz/scorer/pkg/rubric"
	"github.com/germanamz/scorer/pkg/scoring"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared"
)

// DefaultBaseURL is the base URL for the OpenRouter API.
const DefaultBaseURL = "https://openrouter.ai/api/v1"

// appTitle is sent as X-Title so requests are attributed on the OpenRouter
// dashboard.
const appTitle = "scorer"

var (
	_ provider.Scorer        = (*Adapter)(nil)
	_ provider.UsageReporter = (*Adapter)(nil)
)

// Adapter talks to OpenRouter. The API key is supplied per call.
type Adapter struct {
	client      openai.Client
	temperature float64
	log         *slog.Logger

	// Usage accumulates token counts reported by completions.
	Usage usage.Tracker
}

// New creates an Adapter.
func New(opts ...provider.Option) *Adapter {
	o := provider.Apply(DefaultBaseURL, rubric.DefaultTemperature, opts...)

	clientOpts := []option.RequestOption{
		option.WithBaseURL(o.BaseURL),
		option.WithMaxRetries(0),
		option.WithHeader("X-Title", appTitle),
	}
	if o.Client != nil {
		clientOpts = append(clientOpts, option.WithHTTPClient(o.Client))
	}

	return &Adapter{
		client:      openai.NewClient(clientOpts...),
		temperature: o.Temperature,
		log:         o.Logger,
	}
}

// Kind returns catalog.OpenRouter.
func (a *Adapter) Kind() catalog.Provider { return catalog.OpenRouter }

// UsageTracker returns the tracker fed by ScoreArticle.
func (a *Adapter) UsageTracker() *usage.Tracker { return &a.Usage }

// ListModels fetches the OpenRouter catalog and ranks it by the OpenRouter
// priority list. Any failure degrades to the static list.
func (a *Adapter) ListModels(ctx context.Context, apiKey string) []catalog.ModelInfo {
	page, err := a.client.Models.List(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return catalog.Degraded(a.log, catalog.OpenRouter, err.Error())
	}

	if page == nil || len(page.Data) == 0 {
		return catalog.Degraded(a.log, catalog.OpenRouter, "empty model list")
	}

	models := make([]catalog.ModelInfo, 0, len(page.Data))
	for _, m := range page.Data {
		models = append(models, catalog.ModelInfo{
			ID:       m.ID,
			Name:     catalog.DisplayName(catalog.OpenRouter, m.ID, remoteName(m)),
			Provider: catalog.OpenRouter,
		})
	}

	catalog.SortByPriority(models, catalog.Priority(catalog.OpenRouter))

	return models
}

// ScoreArticle sends the rubric as instructions and the article as input,
// asking for a JSON object reply.
func (a *Adapter) ScoreArticle(ctx context.Context, apiKey, model, article string) (scoring.Result, error) {
	resp, err := a.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(model),
		Messages:    buildMessages(rubric.SystemPrompt, article),
		Temperature: openai.Float(a.temperature),
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &shared.ResponseFormatJSONObjectParam{},
		},
	}, option.WithAPIKey(apiKey))
	if err != nil {
		return scoring.Result{}, fmt.Errorf("openrouter: %w", transportError(err))
	}

	a.Usage.Record(model, usage.TokenCount{
		InputTokens:  int(resp.Usage.PromptTokens),
		OutputTokens: int(resp.Usage.CompletionTokens),
	})

	if len(resp.Choices) == 0 {
		return scoring.Result{}, fmt.Errorf("openrouter: %w", scoring.EmptyResponse())
	}

	r, err := scoring.Parse(resp.Choices[0].Message.Content)
	if err != nil {
		return scoring.Result{}, fmt.Errorf("openrouter: %w", err)
	}

	return r, nil
}

func buildMessages(system, user string) []openai.ChatCompletionMessageParamUnion {
	return []openai.ChatCompletionMessageParamUnion{
		{
			OfSystem: &openai.ChatCompletionSystemMessageParam{
				Content: openai.ChatCompletionSystemMessageParamContentUnion{
					OfString: openai.String(system),
				},
			},
		},
		{
			OfUser: &openai.ChatCompletionUserMessageParam{
				Content: openai.ChatCompletionUserMessageParamContentUnion{
					OfString: openai.String(user),
				},
			},
		},
	}
}

func transportError(err error) *scoring.Error {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		return scoring.Transport(apiErr.StatusCode, err)
	}

	return scoring.Transport(0, err)
}

// remoteName reads the OpenRouter-specific "name" field, which the OpenAI
// model type does not declare.
func remoteName(m openai.Model) string {
	var extra struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal([]byte(m.RawJSON()), &extra); err != nil || extra.Name == "" {
		return m.ID
	}

	return extra.Name
}
