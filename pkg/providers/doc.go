// Package providers groups the backend clients that score articles.
//
// It is organized into sub-packages:
//   - [github.com/germanamz/scorer/pkg/providers/provider]: the Scorer interface and shared construction options
//   - [github.com/germanamz/scorer/pkg/providers/openrouter]: OpenRouter through the OpenAI-compatible SDK
//   - [github.com/germanamz/scorer/pkg/providers/gemini]: Google Gemini through the genai client library
//   - [github.com/germanamz/scorer/pkg/providers/cerebras]: Cerebras through the modeladapter REST base
//
// Every client feeds the text it receives into scoring.Parse, so fencing,
// JSON parsing and schema validation behave identically across backends.
package providers
