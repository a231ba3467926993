package settings

import (
	"fmt"

	"github.com/germanamz/scorer/pkg/catalog"
	"github.com/go-playground/validator/v10"
)

// Keys used in the settings file.
const (
	KeyProvider         = "provider"
	KeyOpenRouterAPIKey = "openrouterApiKey"
	KeyGeminiAPIKey     = "geminiApiKey"
	KeyCerebrasAPIKey   = "cerebrasApiKey"
	KeySelectedModel    = "selectedModel"

	// keyLegacyAPIKey held the OpenRouter key before multiple providers existed.
	keyLegacyAPIKey = "apiKey"
)

// DefaultProvider is used when nothing valid is stored.
const DefaultProvider = catalog.OpenRouter

var validate = validator.New()

// Settings is a snapshot of the user's configuration.
type Settings struct {
	Provider         catalog.Provider `json:"provider" validate:"required,oneof=openrouter gemini cerebras"`
	OpenRouterAPIKey string           `json:"openrouterApiKey,omitempty"`
	GeminiAPIKey     string           `json:"geminiApiKey,omitempty"`
	CerebrasAPIKey   string           `json:"cerebrasApiKey,omitempty"`
	SelectedModel    string           `json:"selectedModel,omitempty"`
}

// Defaults returns the settings used when the store holds nothing valid.
func Defaults() Settings {
	return Settings{Provider: DefaultProvider}
}

// APIKeyFor returns the stored key for p.
func (s Settings) APIKeyFor(p catalog.Provider) string {
	switch p {
	case catalog.Gemini:
		return s.GeminiAPIKey
	case catalog.Cerebras:
		return s.CerebrasAPIKey
	default:
		return s.OpenRouterAPIKey
	}
}

// CurrentAPIKey returns the key for the selected provider.
func (s Settings) CurrentAPIKey() string { return s.APIKeyFor(s.Provider) }

// HasAPIKey reports whether the selected provider has a key.
func (s Settings) HasAPIKey() bool { return s.CurrentAPIKey() != "" }

// Validate checks the settings against their struct tags.
func (s Settings) Validate() error {
	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("settings: %w", err)
	}

	return nil
}

// KeyFor returns the settings key that holds the API key for p.
func KeyFor(p catalog.Provider) string {
	switch p {
	case catalog.Gemini:
		return KeyGeminiAPIKey
	case catalog.Cerebras:
		return KeyCerebrasAPIKey
	default:
		return KeyOpenRouterAPIKey
	}
}

// Load reads a Settings snapshot from kv. A missing provider defaults to
// OpenRouter, and the legacy "apiKey" entry stands in for a missing
// OpenRouter key. Invalid stored data yields Defaults.
func Load(kv KV) Settings {
	get := func(key string) string {
		v, _ := kv.Get(key)
		return v
	}

	s := Settings{
		Provider:         catalog.Provider(get(KeyProvider)),
		OpenRouterAPIKey: get(KeyOpenRouterAPIKey),
		GeminiAPIKey:     get(KeyGeminiAPIKey),
		CerebrasAPIKey:   get(KeyCerebrasAPIKey),
		SelectedModel:    get(KeySelectedModel),
	}

	if s.Provider == "" {
		s.Provider = DefaultProvider
	}
	if s.OpenRouterAPIKey == "" {
		s.OpenRouterAPIKey = get(keyLegacyAPIKey)
	}

	if s.Validate() != nil {
		return Defaults()
	}

	return s
}

// Patch is a partial update. Nil fields are left untouched.
type Patch struct {
	Provider         *catalog.Provider
	OpenRouterAPIKey *string
	GeminiAPIKey     *string
	CerebrasAPIKey   *string
	SelectedModel    *string
}

// Save writes the non-nil fields of p to kv and persists it.
func Save(kv KV, p Patch) error {
	if p.Provider != nil {
		if err := validate.Var(string(*p.Provider), "oneof=openrouter gemini cerebras"); err != nil {
			return fmt.Errorf("settings: invalid provider %q: %w", *p.Provider, err)
		}
		kv.Set(KeyProvider, string(*p.Provider))
	}

	set := func(key string, v *string) {
		if v != nil {
			kv.Set(key, *v)
		}
	}
	set(KeyOpenRouterAPIKey, p.OpenRouterAPIKey)
	set(KeyGeminiAPIKey, p.GeminiAPIKey)
	set(KeyCerebrasAPIKey, p.CerebrasAPIKey)
	set(KeySelectedModel, p.SelectedModel)

	if err := kv.Save(); err != nil {
		return fmt.Errorf("settings: save: %w", err)
	}

	return nil
}
