package catalog

import (
	"slices"
	"strings"
)

var priorities = map[Provider][]string{
	OpenRouter: {"openai/gpt-4o", "openai/gpt-4o-mini", "anthropic/claude-3.5-sonnet"},
	Cerebras:   {"llama-3.3-70b", "qwen-3-32b", "llama3.1-8b"},
	Gemini:     {"gemini-2.5", "gemini-2.0", "gemini-1.5"},
}

// Priority returns the ranked preference list for p. For Gemini the entries
// are version-series substrings; for the others they are exact model ids.
func Priority(p Provider) []string {
	return slices.Clone(priorities[p])
}

// SortByPriority orders models in place by the index of their exact id in
// priority. Ids not in priority sort after all matched ids and keep their
// relative order.
func SortByPriority(models []ModelInfo, priority []string) {
	rank := func(id string) int {
		if i := slices.Index(priority, id); i >= 0 {
			return i
		}
		return len(priority)
	}

	slices.SortStableFunc(models, func(a, b ModelInfo) int {
		return rank(a.ID) - rank(b.ID)
	})
}

// SortBySeries orders models in place by the first series substring their id
// contains. Unmatched ids sort last and keep their relative order.
func SortBySeries(models []ModelInfo, series []string) {
	rank := func(id string) int {
		for i, s := range series {
			if strings.Contains(id, s) {
				return i
			}
		}
		return len(series)
	}

	slices.SortStableFunc(models, func(a, b ModelInfo) int {
		return rank(a.ID) - rank(b.ID)
	})
}

// Select returns previous when it is still offered by models, otherwise the
// first model's id, or "" when models is empty.
func Select(models []ModelInfo, previous string) string {
	if previous != "" && slices.ContainsFunc(models, func(m ModelInfo) bool { return m.ID == previous }) {
		return previous
	}

	if len(models) == 0 {
		return ""
	}

	return models[0].ID
}
