package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/germanamz/scorer/pkg/catalog"
	"github.com/germanamz/scorer/pkg/engine"
	"github.com/germanamz/scorer/pkg/settings"
)

// providerOptions lists every provider for the select field.
func providerOptions() []huh.Option[catalog.Provider] {
	opts := make([]huh.Option[catalog.Provider], len(catalog.Providers))
	for i, p := range catalog.Providers {
		opts[i] = huh.NewOption(p.Label(), p)
	}
	return opts
}

// modelOptions lists the models for the select field, labelled "name (id)".
func modelOptions(models []catalog.ModelInfo) []huh.Option[string] {
	opts := make([]huh.Option[string], len(models))
	for i, m := range models {
		label := m.Name
		if m.Name != m.ID {
			label = fmt.Sprintf("%s (%s)", m.Name, m.ID)
		}
		opts[i] = huh.NewOption(label, m.ID)
	}
	return opts
}

// credentialsPatch stores the provider choice together with its API key.
func credentialsPatch(p catalog.Provider, key string) settings.Patch {
	patch := settings.Patch{Provider: &p}
	switch p {
	case catalog.Gemini:
		patch.GeminiAPIKey = &key
	case catalog.Cerebras:
		patch.CerebrasAPIKey = &key
	default:
		patch.OpenRouterAPIKey = &key
	}
	return patch
}

// parseProviderFlag resolves the -provider flag. Empty means "ask".
func parseProviderFlag(s string) (catalog.Provider, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return "", nil
	}
	return catalog.ParseProvider(s)
}

func validateAPIKey(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("API key is required")
	}
	return nil
}

// runSettingsForm asks for the provider and its API key, saves them, then
// lists the provider's models and saves the chosen one. A non-empty preset
// skips the provider prompt.
func runSettingsForm(ctx context.Context, eng *engine.Engine, store settings.KV, preset catalog.Provider) error {
	current := eng.Settings()

	provider := preset
	if provider == "" {
		provider = current.Provider
		if err := huh.NewForm(huh.NewGroup(
			huh.NewSelect[catalog.Provider]().
				Title("Provider").
				Options(providerOptions()...).
				Value(&provider),
		)).RunWithContext(ctx); err != nil {
			return err
		}
	}

	key := current.APIKeyFor(provider)
	if err := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title(provider.Label() + " API key").
			EchoMode(huh.EchoModePassword).
			Value(&key).
			Validate(validateAPIKey),
	)).RunWithContext(ctx); err != nil {
		return err
	}

	if err := settings.Save(store, credentialsPatch(provider, strings.TrimSpace(key))); err != nil {
		return err
	}

	list, err := eng.Models(ctx)
	if err != nil {
		return err
	}
	if len(list.Models) == 0 {
		return fmt.Errorf("no models available for %s", provider.Label())
	}

	model := list.Selected
	if err := huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title("Model").
			Options(modelOptions(list.Models)...).
			Value(&model),
	)).RunWithContext(ctx); err != nil {
		return err
	}

	return eng.SelectModel(model)
}
