package cerebras

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
	"github.com/germanamz/scorer/pkg/providers/provider"
	"github.com/germanamz/scorer/pkg/rubric"
	"github.com/germanamz/scorer/pkg/scoring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validJSON = `{"category":"ユーモア","total":78,"details":{"humor":40,"structure":15,"format":8,"language":8,"completeness":7},"reasons":{"humor":"a","structure":"b","format":"c","language":"d","completeness":"e"},"advice":"more jokes"}`

func newTestAdapter(t *testing.T, handler http.HandlerFunc) *Adapter {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return New(
		provider.WithBaseURL(srv.URL),
		provider.WithHTTPClient(srv.Client()),
		provider.WithLogger(slog.New(slog.DiscardHandler)),
	)
}

func TestNew_Defaults(t *testing.T) {
	a := New()

	assert.Equal(t, DefaultBaseURL, a.BaseURL)
	assert.InDelta(t, rubric.DefaultTemperature, a.temperature, 1e-9)
	assert.Equal(t, catalog.Cerebras, a.Kind())
}

func TestListModels_Success(t *testing.T) {
	a := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/models", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(modelsResponse{
			Object: "list",
			Data: []apiModel{
				{ID: "mystery-7b", OwnedBy: "acme"},
				{ID: "llama3.1-8b", OwnedBy: "Meta"},
				{ID: "bare-model"},
				{ID: "llama-3.3-70b", OwnedBy: "Meta"},
			},
		})
	})

	models := a.ListModels(context.Background(), "test-key")
	require.Len(t, models, 4)

	assert.Equal(t, "llama-3.3-70b", models[0].ID)
	assert.Equal(t, "Llama 3.3 70B (推奨)", models[0].Name)
	assert.Equal(t, "llama3.1-8b", models[1].ID)
	assert.Equal(t, "mystery-7b", models[2].ID)
	assert.Equal(t, "mystery-7b (acme)", models[2].Name)
	assert.Equal(t, "bare-model", models[3].Name)

	for _, m := range models {
		assert.Equal(t, catalog.Cerebras, m.Provider)
	}
}

func TestListModels_FallbackOnErrorStatus(t *testing.T) {
	a := newTestAdapter(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"boom"}`))
	})

	first := a.ListModels(context.Background(), "test-key")
	second := a.ListModels(context.Background(), "test-key")

	assert.Equal(t, catalog.Fallback(catalog.Cerebras), first)
	assert.Equal(t, first, second)
}

func TestListModels_FallbackOnEmptyList(t *testing.T) {
	a := newTestAdapter(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"object":"list","data":[]}`))
	})

	assert.Equal(t, catalog.Fallback(catalog.Cerebras), a.ListModels(context.Background(), "test-key"))
}

func TestListModels_FallbackOnUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	a := New(provider.WithBaseURL(url), provider.WithLogger(slog.New(slog.DiscardHandler)))

	assert.Equal(t, catalog.Fallback(catalog.Cerebras), a.ListModels(context.Background(), "test-key"))
}

func TestScoreArticle_Success(t *testing.T) {
	a := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req chatRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "llama-3.3-70b", req.Model)
		assert.InDelta(t, 0.3, req.Temperature, 1e-9)
		require.Len(t, req.Messages, 2)
		assert.Equal(t, "system", req.Messages[0].Role)
		assert.Equal(t, rubric.SystemPrompt, req.Messages[0].Content)
		assert.Equal(t, "user", req.Messages[1].Role)
		assert.Equal(t, "my article", req.Messages[1].Content)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(chatResponse{
			ID: "chatcmpl-1",
			Choices: []choice{{
				Message:      apiMessage{Role: "assistant", Content: "```json\n" + validJSON + "\n```"},
				FinishReason: "stop",
			}},
			Usage: apiUsage{PromptTokens: 120, CompletionTokens: 40},
		})
	})

	r, err := a.ScoreArticle(context.Background(), "test-key", "llama-3.3-70b", "my article")
	require.NoError(t, err)

	assert.Equal(t, 78, r.Total)
	assert.Equal(t, "ユーモア", r.Category)
	assert.Equal(t, 40, r.Details.Humor)
	assert.Equal(t, "more jokes", r.Advice)

	last, ok := a.Usage.Last()
	require.True(t, ok)
	assert.Equal(t, "llama-3.3-70b", last.Model)
	assert.Equal(t, usage.TokenCount{InputTokens: 120, OutputTokens: 40}, last.Tokens)
}

func TestScoreArticle_ErrorStatus(t *testing.T) {
	a := newTestAdapter(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"server error"}`))
	})

	_, err := a.ScoreArticle(context.Background(), "test-key", "llama-3.3-70b", "article")
	require.Error(t, err)

	assert.True(t, errors.Is(err, scoring.ErrTransport))
	assert.Equal(t, http.StatusInternalServerError, scoring.StatusCode(err))
	assert.Contains(t, err.Error(), "cerebras:")
}

func TestScoreArticle_NoChoices(t *testing.T) {
	a := newTestAdapter(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"x","choices":[]}`))
	})

	_, err := a.ScoreArticle(context.Background(), "test-key", "m", "article")

	kind, ok := scoring.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, scoring.KindEmptyResponse, kind)
}

func TestScoreArticle_MalformedContent(t *testing.T) {
	a := newTestAdapter(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(chatResponse{
			Choices: []choice{{Message: apiMessage{Role: "assistant", Content: "I cannot score this."}}},
		})
	})

	_, err := a.ScoreArticle(context.Background(), "test-key", "m", "article")
	assert.True(t, errors.Is(err, scoring.ErrMalformedJSON))

	var se *scoring.Error
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "I cannot score this.", se.Raw)
}

func TestScoreArticle_SchemaViolation(t *testing.T) {
	a := newTestAdapter(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(chatResponse{
			Choices: []choice{{Message: apiMessage{Role: "assistant", Content: `{"category":"x","total":120}`}}},
		})
	})

	_, err := a.ScoreArticle(context.Background(), "test-key", "m", "article")
	assert.True(t, errors.Is(err, scoring.ErrSchemaViolation))
}

func TestScoreArticle_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	a := New(provider.WithBaseURL(url))

	_, err := a.ScoreArticle(context.Background(), "test-key", "m", "article")
	assert.True(t, errors.Is(err, scoring.ErrTransport))
	assert.Equal(t, 0, scoring.StatusCode(err))
}
