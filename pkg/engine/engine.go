package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/germanamz/scorer/pkg/catalog"
	"github.com/germanamz/scorer/pkg/modeladapter/usage"
	"github.com/germanamz/scorer/pkg/providers/provider"
	"github.com/germanamz/scorer/pkg/scoring"
	"github.com/germanamz/scorer/pkg/settings"
)

var (
	// ErrBusy is returned by Score while another attempt is dispatching.
	ErrBusy = errors.New("engine: a scoring attempt is already in progress")
	// ErrEmptyArticle is returned by Score for blank input.
	ErrEmptyArticle = errors.New("engine: article is empty")
	// ErrNotConfigured is returned by Score when the API key or model is missing.
	ErrNotConfigured = errors.New("engine: API key and model must be configured")
	// ErrNoAPIKey is returned by Models when the current provider has no key.
	ErrNoAPIKey = errors.New("engine: no API key for the current provider")
)

// State is the phase of the current scoring attempt.
type State string

const (
	StateIdle        State = "idle"
	StateDispatching State = "dispatching"
	StateSucceeded   State = "succeeded"
	StateFailed      State = "failed"
)

// Outcome records how a finished scoring attempt ended.
type Outcome struct {
	State    State // StateSucceeded or StateFailed.
	Provider catalog.Provider
	Model    string
	Result   scoring.Result
	Usage    usage.TokenCount // Zero when the backend reported no usage.
	Err      error
	Finished time.Time
}

// ModelList is the result of a model listing.
type ModelList struct {
	Provider catalog.Provider
	Models   []catalog.ModelInfo
	Selected string
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger handed to the engine and every provider client.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.log = l }
}

// WithHTTPClient sets the HTTP client used by every provider client.
func WithHTTPClient(c *http.Client) Option {
	return func(e *Engine) { e.httpClient = c }
}

// WithScorer uses s for s.Kind() instead of the registered factory.
func WithScorer(s provider.Scorer) Option {
	return func(e *Engine) { e.scorers[s.Kind()] = s }
}

// Engine dispatches listing and scoring calls to the provider selected in
// the settings. Settings are read as a fresh snapshot for every operation.
type Engine struct {
	cfg        Config
	store      settings.KV
	log        *slog.Logger
	events     *EventBus
	httpClient *http.Client
	scorers    map[catalog.Provider]provider.Scorer

	mu    sync.Mutex
	state State
	last  *Outcome
}

// New creates an Engine from the given configuration and settings store.
func New(cfg Config, store settings.KV, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if store == nil {
		return nil, errors.New("engine: settings store is required")
	}

	e := &Engine{
		cfg:     cfg,
		store:   store,
		log:     slog.Default(),
		events:  NewEventBus(),
		scorers: make(map[catalog.Provider]provider.Scorer, len(catalog.Providers)),
		state:   StateIdle,
	}

	for _, opt := range opts {
		opt(e)
	}

	for _, kind := range catalog.Providers {
		if _, ok := e.scorers[kind]; ok {
			continue
		}

		s, err := e.buildScorer(kind)
		if err != nil {
			return nil, fmt.Errorf("engine: provider %q: %w", kind, err)
		}
		e.scorers[kind] = s
	}

	return e, nil
}

// Events returns the engine's event bus.
func (e *Engine) Events() *EventBus { return e.events }

// Settings returns a fresh settings snapshot.
func (e *Engine) Settings() settings.Settings { return settings.Load(e.store) }

// State returns the phase of the current scoring attempt.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.state
}

// Last returns the outcome of the most recent finished attempt.
func (e *Engine) Last() (Outcome, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.last == nil {
		return Outcome{}, false
	}

	return *e.last, true
}

// Models lists the models offered by the current provider. The stored
// selection is kept when still offered; otherwise the first model becomes the
// selection and is written back to the settings.
func (e *Engine) Models(ctx context.Context) (ModelList, error) {
	s := settings.Load(e.store)
	if !s.HasAPIKey() {
		return ModelList{Provider: s.Provider}, ErrNoAPIKey
	}

	models := e.scorers[s.Provider].ListModels(ctx, s.CurrentAPIKey())
	selected := catalog.Select(models, s.SelectedModel)

	if selected != s.SelectedModel {
		if err := settings.Save(e.store, settings.Patch{SelectedModel: &selected}); err != nil {
			e.log.Warn("could not persist model selection", "model", selected, "error", err)
		}
	}

	list := ModelList{Provider: s.Provider, Models: models, Selected: selected}

	e.events.Publish(Event{
		Kind:      EventModelsLoaded,
		Provider:  s.Provider,
		Model:     selected,
		Timestamp: time.Now(),
		Data:      list,
	})

	return list, nil
}

// SelectModel persists id as the selected model.
func (e *Engine) SelectModel(id string) error {
	if strings.TrimSpace(id) == "" {
		return errors.New("engine: model id is empty")
	}

	return settings.Save(e.store, settings.Patch{SelectedModel: &id})
}

// Score scores article with the selected provider and model. Only one call
// may be dispatching at a time; a concurrent call fails with ErrBusy.
func (e *Engine) Score(ctx context.Context, article string) (scoring.Result, error) {
	if err := e.acquire(); err != nil {
		return scoring.Result{}, err
	}

	// out stays nil on validation errors and panics, so the slot is freed
	// without recording an outcome.
	var out *Outcome
	defer func() {
		e.release(out)
		if out != nil {
			e.publishOutcome(*out)
		}
	}()

	s := settings.Load(e.store)

	if strings.TrimSpace(article) == "" {
		return scoring.Result{}, ErrEmptyArticle
	}
	if !s.HasAPIKey() || s.SelectedModel == "" {
		return scoring.Result{}, ErrNotConfigured
	}

	e.events.Publish(Event{
		Kind:      EventScoreStarted,
		Provider:  s.Provider,
		Model:     s.SelectedModel,
		Timestamp: time.Now(),
	})
	e.log.Info("scoring article", "provider", s.Provider, "model", s.SelectedModel, "chars", len([]rune(article)))

	scorer := e.scorers[s.Provider]
	tracker, recorded := usageBefore(scorer)

	start := time.Now()
	r, err := scorer.ScoreArticle(ctx, s.CurrentAPIKey(), s.SelectedModel, article)

	o := Outcome{Provider: s.Provider, Model: s.SelectedModel, Finished: time.Now()}
	if tracker != nil && tracker.Len() > recorded {
		if rec, ok := tracker.Last(); ok {
			o.Usage = rec.Tokens
		}
	}
	if err != nil {
		o.State, o.Err = StateFailed, err
		out = &o

		kind, _ := scoring.KindOf(err)
		e.log.Warn("scoring failed", "provider", s.Provider, "model", s.SelectedModel, "kind", kind, "error", err)

		return scoring.Result{}, err
	}

	o.State, o.Result = StateSucceeded, r
	out = &o

	e.log.Info("scoring succeeded", "provider", s.Provider, "model", s.SelectedModel, "total", r.Total,
		"tokens", o.Usage.Total(), "elapsed", time.Since(start))

	return r, nil
}

// usageBefore returns the usage tracker of s, if any, and how many records it
// held before the call.
func usageBefore(s provider.Scorer) (*usage.Tracker, int) {
	ur, ok := s.(provider.UsageReporter)
	if !ok {
		return nil, 0
	}

	t := ur.UsageTracker()
	return t, t.Len()
}

func (e *Engine) acquire() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state == StateDispatching {
		return ErrBusy
	}
	e.state = StateDispatching
	return nil
}

// release returns to idle, recording out when it is non-nil.
func (e *Engine) release(out *Outcome) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if out != nil {
		e.last = out
	}
	e.state = StateIdle
}

func (e *Engine) publishOutcome(out Outcome) {
	ev := Event{Kind: EventScoreSucceeded, Provider: out.Provider, Model: out.Model, Timestamp: out.Finished, Data: out.Result}
	if out.State == StateFailed {
		ev.Kind, ev.Data = EventScoreFailed, out.Err
	}
	e.events.Publish(ev)
}
