// Package catalog holds the provider kinds, the model descriptor returned by
// listing calls, and the static per-provider fallback lists substituted when
// live model discovery fails or comes back empty.
package catalog

import (
	"fmt"
	"log/slog"
	"slices"
)

// Provider identifies one backend family.
type Provider string

const (
	OpenRouter Provider = "openrouter"
	Gemini     Provider = "gemini"
	Cerebras   Provider = "cerebras"
)

// Providers lists the supported providers in display order.
var Providers = []Provider{OpenRouter, Gemini, Cerebras}

// Valid reports whether p is a supported provider.
func (p Provider) Valid() bool {
	return slices.Contains(Providers, p)
}

// Label returns the display name of the provider.
func (p Provider) Label() string {
	switch p {
	case OpenRouter:
		return "OpenRouter"
	case Gemini:
		return "Google Gemini"
	case Cerebras:
		return "Cerebras"
	default:
		return string(p)
	}
}

// ParseProvider converts s into a Provider.
func ParseProvider(s string) (Provider, error) {
	p := Provider(s)
	if !p.Valid() {
		return "", fmt.Errorf("catalog: unknown provider %q", s)
	}

	return p, nil
}

// ModelInfo describes one selectable model.
type ModelInfo struct {
	ID       string   // Backend-specific identifier, sent as-is when scoring.
	Name     string   // Human-readable label.
	Provider Provider // Owning provider.
}

var fallbacks = map[Provider][]ModelInfo{
	OpenRouter: {
		{ID: "openai/gpt-4o", Name: "GPT-4o", Provider: OpenRouter},
		{ID: "openai/gpt-4o-mini", Name: "GPT-4o mini", Provider: OpenRouter},
		{ID: "anthropic/claude-3.5-sonnet", Name: "Claude 3.5 Sonnet", Provider: OpenRouter},
		{ID: "google/gemini-2.0-flash-001", Name: "Gemini 2.0 Flash", Provider: OpenRouter},
		{ID: "meta-llama/llama-3.3-70b-instruct", Name: "Llama 3.3 70B Instruct", Provider: OpenRouter},
	},
	Gemini: {
		{ID: "models/gemini-2.5-flash", Name: "Gemini 2.5 Flash", Provider: Gemini},
		{ID: "models/gemini-2.5-pro", Name: "Gemini 2.5 Pro", Provider: Gemini},
		{ID: "models/gemini-2.0-flash", Name: "Gemini 2.0 Flash", Provider: Gemini},
		{ID: "models/gemini-1.5-flash", Name: "Gemini 1.5 Flash", Provider: Gemini},
	},
	Cerebras: {
		{ID: "llama-3.3-70b", Name: "Llama 3.3 70B (推奨)", Provider: Cerebras},
		{ID: "qwen-3-32b", Name: "Qwen 3 32B", Provider: Cerebras},
		{ID: "llama3.1-8b", Name: "Llama 3.1 8B (高速)", Provider: Cerebras},
		{ID: "gpt-oss-120b", Name: "GPT OSS 120B", Provider: Cerebras},
		{ID: "qwen-3-235b-a22b-instruct-2507", Name: "Qwen 3 235B (Preview)", Provider: Cerebras},
		{ID: "zai-glm-4.6", Name: "Z.AI GLM 4.6 (Preview)", Provider: Cerebras},
	},
}

// Fallback returns a fresh copy of the static model list for p.
func Fallback(p Provider) []ModelInfo {
	return slices.Clone(fallbacks[p])
}

// DisplayName returns the catalog name for a known id, or fallback.
func DisplayName(p Provider, id, fallback string) string {
	for _, m := range fallbacks[p] {
		if m.ID == id {
			return m.Name
		}
	}

	return fallback
}

// Degraded logs that live discovery for p could not be used and returns the
// fallback list. It never fails.
func Degraded(log *slog.Logger, p Provider, reason string) []ModelInfo {
	if log == nil {
		log = slog.Default()
	}

	log.Warn("model listing degraded, using static list",
		"provider", string(p),
		"reason", reason,
	)

	return Fallback(p)
}
