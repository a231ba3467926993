package openrouter_test

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/germanamz/scorer/pkg/catalog"
	"github.com/germanamz/scorer/pkg/modeladapter/usage"
	"github.com/germanamz/scorer/pkg/providers/openrouter"
	"github.com/germanamz/scorer/pkg/providers/provider"
	"github.com/germanamz/scorer/pkg/rubric"
	"github.com/germanamz/scorer/pkg/scoring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validJSON = `{"category":"おバカ系","total":55,"details":{"humor":25,"structure":10,"format":7,"language":7,"completeness":6},"reasons":{"humor":"a","structure":"b","format":"c","language":"d","completeness":"e"},"advice":"tighten the premise"}`

func newTestAdapter(t *testing.T, handler http.HandlerFunc) *openrouter.Adapter {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return openrouter.New(
		provider.WithBaseURL(srv.URL),
		provider.WithHTTPClient(srv.Client()),
		provider.WithLogger(slog.New(slog.DiscardHandler)),
	)
}

func completion(content string) map[string]any {
	return map[string]any{
		"id":      "gen-1",
		"object":  "chat.completion",
		"created": 1700000000,
		"model":   "openai/gpt-4o",
		"choices": []map[string]any{{
			"index":         0,
			"finish_reason": "stop",
			"message":       map[string]any{"role": "assistant", "content": content},
		}},
		"usage": map[string]any{"prompt_tokens": 200, "completion_tokens": 50, "total_tokens": 250},
	}
}

func TestKind(t *testing.T) {
	assert.Equal(t, catalog.OpenRouter, openrouter.New().Kind())
}

func TestListModels_Success(t *testing.T) {
	a := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/models", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"object":"list","data":[
			{"id":"mistralai/mistral-large","object":"model","name":"Mistral Large"},
			{"id":"openai/gpt-4o-mini","object":"model","name":"OpenAI: GPT-4o-mini"},
			{"id":"x-ai/grok-4","object":"model"},
			{"id":"openai/gpt-4o","object":"model","name":"OpenAI: GPT-4o"}
		]}`))
	})

	models := a.ListModels(context.Background(), "test-key")
	require.Len(t, models, 4)

	ids := make([]string, len(models))
	for i, m := range models {
		ids[i] = m.ID
		assert.Equal(t, catalog.OpenRouter, m.Provider)
	}
	assert.Equal(t, []string{"openai/gpt-4o", "openai/gpt-4o-mini", "mistralai/mistral-large", "x-ai/grok-4"}, ids)

	assert.Equal(t, "Mistral Large", models[2].Name)
	assert.Equal(t, "x-ai/grok-4", models[3].Name)
}

func TestListModels_FallbackOnErrorStatus(t *testing.T) {
	a := newTestAdapter(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"No auth credentials found","code":401}}`))
	})

	got := a.ListModels(context.Background(), "bad-key")
	assert.Equal(t, catalog.Fallback(catalog.OpenRouter), got)
	assert.Equal(t, got, a.ListModels(context.Background(), "bad-key"))
}

func TestListModels_FallbackOnEmptyList(t *testing.T) {
	a := newTestAdapter(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"object":"list","data":[]}`))
	})

	assert.Equal(t, catalog.Fallback(catalog.OpenRouter), a.ListModels(context.Background(), "test-key"))
}

func TestListModels_FallbackOnUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	a := openrouter.New(provider.WithBaseURL(url), provider.WithLogger(slog.New(slog.DiscardHandler)))

	assert.Equal(t, catalog.Fallback(catalog.OpenRouter), a.ListModels(context.Background(), "test-key"))
}

func TestScoreArticle_Success(t *testing.T) {
	a := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "scorer", r.Header.Get("X-Title"))

		var body struct {
			Model       string  `json:"model"`
			Temperature float64 `json:"temperature"`
			Messages    []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
			ResponseFormat struct {
				Type string `json:"type"`
			} `json:"response_format"`
		}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "openai/gpt-4o", body.Model)
		assert.InDelta(t, 0.3, body.Temperature, 1e-9)
		assert.Equal(t, "json_object", body.ResponseFormat.Type)
		if assert.Len(t, body.Messages, 2) {
			assert.Equal(t, "system", body.Messages[0].Role)
			assert.Equal(t, rubric.SystemPrompt, body.Messages[0].Content)
			assert.Equal(t, "user", body.Messages[1].Role)
			assert.Equal(t, "= 記事 =", body.Messages[1].Content)
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(completion("Here you go:\n```json\n" + validJSON + "\n```\nThanks!"))
	})

	r, err := a.ScoreArticle(context.Background(), "test-key", "openai/gpt-4o", "= 記事 =")
	require.NoError(t, err)

	assert.Equal(t, 55, r.Total)
	assert.Equal(t, "おバカ系", r.Category)
	assert.Equal(t, "tighten the premise", r.Advice)

	last, ok := a.UsageTracker().Last()
	require.True(t, ok)
	assert.Equal(t, "openai/gpt-4o", last.Model)
	assert.Equal(t, usage.TokenCount{InputTokens: 200, OutputTokens: 50}, last.Tokens)
}

func TestScoreArticle_ServerError(t *testing.T) {
	a := newTestAdapter(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":{"message":"upstream failed","code":500}}`))
	})

	_, err := a.ScoreArticle(context.Background(), "test-key", "openai/gpt-4o", "article")
	require.Error(t, err)

	assert.True(t, errors.Is(err, scoring.ErrTransport))
	assert.Equal(t, http.StatusInternalServerError, scoring.StatusCode(err))
}

func TestScoreArticle_EmptyContent(t *testing.T) {
	a := newTestAdapter(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(completion("   "))
	})

	_, err := a.ScoreArticle(context.Background(), "test-key", "openai/gpt-4o", "article")
	assert.True(t, errors.Is(err, scoring.ErrEmptyResponse))
}

func TestScoreArticle_MalformedJSON(t *testing.T) {
	a := newTestAdapter(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(completion(`{"category": "x", "total": `))
	})

	_, err := a.ScoreArticle(context.Background(), "test-key", "openai/gpt-4o", "article")
	assert.True(t, errors.Is(err, scoring.ErrMalformedJSON))
}
