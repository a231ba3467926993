// Package cerebras implements provider.Scorer for Cerebras inference using
// its OpenAI-compatible REST API.
package cerebras

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/germanamz/scorer/pkg/catalog"
	"github.com/germanamz/scorer/pkg/modeladapter"
	"github.com/germanamz/scorer/pkg/modeladapter/usage"
	"github.com/germanamz/scorer/pkg/providers/provider"
	"github.com/germanamz/scorer/pkg/rubric"
	"github.com/germanamz/scorer/pkg/scoring"
)

// DefaultBaseURL is the base URL for the Cerebras API.
const DefaultBaseURL = "https://api.cerebras.ai/v1"

var (
	_ provider.Scorer        = (*Adapter)(nil)
	_ provider.UsageReporter = (*Adapter)(nil)
)

// Adapter sends model listing and chat completion requests to Cerebras.
type Adapter struct {
	modeladapter.ModelAdapter

	temperature float64
	log         *slog.Logger
}

// New creates an Adapter. The API key is supplied per call.
func New(opts ...provider.Option) *Adapter {
	o := provider.Apply(DefaultBaseURL, rubric.DefaultTemperature, opts...)

	return &Adapter{
		ModelAdapter: modeladapter.New(o.BaseURL, modeladapter.Auth{}, o.Client),
		temperature:  o.Temperature,
		log:          o.Logger,
	}
}

// Kind returns catalog.Cerebras.
func (a *Adapter) Kind() catalog.Provider { return catalog.Cerebras }

// ListModels fetches GET /models and ranks the result by the Cerebras
// priority list. Any failure degrades to the static list.
func (a *Adapter) ListModels(ctx context.Context, apiKey string) []catalog.ModelInfo {
	var resp modelsResponse
	if err := a.GetJSON(ctx, apiKey, "/models", &resp); err != nil {
		return catalog.Degraded(a.log, catalog.Cerebras, err.Error())
	}

	if len(resp.Data) == 0 {
		return catalog.Degraded(a.log, catalog.Cerebras, "empty model list")
	}

	models := make([]catalog.ModelInfo, 0, len(resp.Data))
	for _, m := range resp.Data {
		models = append(models, catalog.ModelInfo{
			ID:       m.ID,
			Name:     displayName(m.ID, m.OwnedBy),
			Provider: catalog.Cerebras,
		})
	}

	catalog.SortByPriority(models, catalog.Priority(catalog.Cerebras))

	return models
}

// ScoreArticle sends the rubric and article to POST /chat/completions and
// parses the first choice.
func (a *Adapter) ScoreArticle(ctx context.Context, apiKey, model, article string) (scoring.Result, error) {
	req := chatRequest{
		Model: model,
		Messages: []apiMessage{
			{Role: "system", Content: rubric.SystemPrompt},
			{Role: "user", Content: article},
		},
		Temperature: a.temperature,
	}

	var resp chatResponse
	if err := a.PostJSON(ctx, apiKey, "/chat/completions", req, &resp); err != nil {
		return scoring.Result{}, fmt.Errorf("cerebras: %w", transportError(err))
	}

	a.Usage.Record(model, usage.TokenCount{
		InputTokens:  resp.Usage.PromptTokens,
		OutputTokens: resp.Usage.CompletionTokens,
	})

	if len(resp.Choices) == 0 {
		return scoring.Result{}, fmt.Errorf("cerebras: %w", scoring.EmptyResponse())
	}

	r, err := scoring.Parse(resp.Choices[0].Message.Content)
	if err != nil {
		return scoring.Result{}, fmt.Errorf("cerebras: %w", err)
	}

	return r, nil
}

func transportError(err error) *scoring.Error {
	var se *modeladapter.StatusError
	if errors.As(err, &se) {
		return scoring.Transport(se.StatusCode, err)
	}

	return scoring.Transport(0, err)
}

// displayName prefers the catalog label and otherwise shows the owner.
func displayName(id, ownedBy string) string {
	fallback := id
	if ownedBy != "" {
		fallback = fmt.Sprintf("%s (%s)", id, ownedBy)
	}

	return catalog.DisplayName(catalog.Cerebras, id, fallback)
}

// API request/response types.

type modelsResponse struct {
	Object string     `json:"object"`
	Data   []apiModel `json:"data"`
}

type apiModel struct {
	ID      string `json:"id"`
	Object  string `json:"object"`
	Created int64  `json:"created"`
	OwnedBy string `json:"owned_by"`
}

type chatRequest struct {
	Model       string       `json:"model"`
	Messages    []apiMessage `json:"messages"`
	Temperature float64      `json:"temperature"`
}

type apiMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	ID      string   `json:"id"`
	Model   string   `json:"model"`
	Choices []choice `json:"choices"`
	Usage   apiUsage `json:"usage"`
}

type choice struct {
	Index        int        `json:"index"`
	Message      apiMessage `json:"message"`
	FinishReason string     `json:"finish_reason"`
}

type apiUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}
