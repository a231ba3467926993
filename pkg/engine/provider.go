package engine

import (
	"fmt"
	"sync"

	"github.com/germanamz/scorer/pkg/catalog"
	"github.com/germanamz/scorer/pkg/providers/cerebras"
	"github.com/germanamz/scorer/pkg/providers/gemini"
	"github.com/germanamz/scorer/pkg/providers/openrouter"
	"github.com/germanamz/scorer/pkg/providers/provider"
)

// ProviderFactory creates a Scorer from construction options.
type ProviderFactory func(opts ...provider.Option) provider.Scorer

var (
	factoryMu   sync.RWMutex
	factories   = map[catalog.Provider]ProviderFactory{}
	defaultsReg sync.Once
)

func ensureDefaults() {
	defaultsReg.Do(func() {
		factories[catalog.OpenRouter] = func(opts ...provider.Option) provider.Scorer { return openrouter.New(opts...) }
		factories[catalog.Gemini] = func(opts ...provider.Option) provider.Scorer { return gemini.New(opts...) }
		factories[catalog.Cerebras] = func(opts ...provider.Option) provider.Scorer { return cerebras.New(opts...) }
	})
}

// RegisterProvider replaces the factory for kind. It can be called before New
// to substitute a backend.
func RegisterProvider(kind catalog.Provider, factory ProviderFactory) {
	ensureDefaults()

	factoryMu.Lock()
	defer factoryMu.Unlock()

	factories[kind] = factory
}

// getFactory returns the factory for the given kind.
func getFactory(kind catalog.Provider) (ProviderFactory, bool) {
	ensureDefaults()

	factoryMu.RLock()
	defer factoryMu.RUnlock()

	f, ok := factories[kind]
	return f, ok
}

// buildScorer creates the Scorer for kind from the engine configuration.
func (e *Engine) buildScorer(kind catalog.Provider) (provider.Scorer, error) {
	factory, ok := getFactory(kind)
	if !ok {
		return nil, fmt.Errorf("engine: unknown provider kind %q", kind)
	}

	opts := []provider.Option{provider.WithLogger(e.log.With("provider", string(kind)))}
	if pc := e.cfg.Provider(kind); pc.BaseURL != "" {
		opts = append(opts, provider.WithBaseURL(pc.BaseURL))
	}
	if t, ok := e.cfg.Temperature.Get(); ok {
		opts = append(opts, provider.WithTemperature(t))
	}
	if e.httpClient != nil {
		opts = append(opts, provider.WithHTTPClient(e.httpClient))
	}

	return factory(opts...), nil
}
