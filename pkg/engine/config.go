package engine

import (
	"fmt"
	"net/url"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/caarlos0/env/v10"
	"github.com/germanamz/scorer/pkg/catalog"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override, e.g. SCORER_LOG_LEVEL.
const EnvPrefix = "SCORER_"

// MaxTemperature is the highest sampling temperature accepted by all three
// backends.
const MaxTemperature = 2.0

// Temperature is an optional sampling temperature. The zero value is unset,
// which keeps an explicit 0 distinct from "not configured".
type Temperature struct {
	value float64
	set   bool
}

// NewTemperature returns a Temperature set to v.
func NewTemperature(v float64) Temperature { return Temperature{value: v, set: true} }

// Get returns the value and whether it was configured.
func (t Temperature) Get() (float64, bool) { return t.value, t.set }

// UnmarshalText parses the YAML scalar or environment value.
func (t *Temperature) UnmarshalText(b []byte) error {
	v, err := strconv.ParseFloat(strings.TrimSpace(string(b)), 64)
	if err != nil {
		return fmt.Errorf("temperature: %w", err)
	}

	*t = NewTemperature(v)
	return nil
}

var logLevels = []string{"debug", "info", "warn", "error"}

// Config is the top-level engine configuration.
type Config struct {
	SettingsPath string          `yaml:"settings_path" env:"SETTINGS_PATH"`
	LogLevel     string          `yaml:"log_level" env:"LOG_LEVEL"`
	Temperature  Temperature     `yaml:"temperature" env:"TEMPERATURE"` // Unset uses rubric.DefaultTemperature.
	Providers    ProvidersConfig `yaml:"providers" envPrefix:"PROVIDERS_"`
}

// ProvidersConfig holds per-backend overrides.
type ProvidersConfig struct {
	OpenRouter ProviderConfig `yaml:"openrouter" envPrefix:"OPENROUTER_"`
	Gemini     ProviderConfig `yaml:"gemini" envPrefix:"GEMINI_"`
	Cerebras   ProviderConfig `yaml:"cerebras" envPrefix:"CEREBRAS_"`
}

// ProviderConfig overrides connection details for one backend.
type ProviderConfig struct {
	BaseURL string `yaml:"base_url" env:"BASE_URL"` // Empty uses the backend default.
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	return Config{LogLevel: "info"}
}

// Provider returns the overrides for kind.
func (c Config) Provider(kind catalog.Provider) ProviderConfig {
	switch kind {
	case catalog.Gemini:
		return c.Providers.Gemini
	case catalog.Cerebras:
		return c.Providers.Cerebras
	default:
		return c.Providers.OpenRouter
	}
}

// LoadConfig reads a YAML file and applies environment overrides.
// Environment variables referenced as ${VAR} or $VAR in the YAML are expanded
// before parsing. An empty path skips the file and starts from DefaultConfig.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path) //nolint:gosec // path is caller-provided configuration, not user input
		if err != nil {
			return Config{}, fmt.Errorf("engine: load config: %w", err)
		}

		expanded := os.ExpandEnv(string(data))

		if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
			return Config{}, fmt.Errorf("engine: parse config: %w", err)
		}
	}

	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return Config{}, fmt.Errorf("engine: env overrides: %w", err)
	}

	return cfg, nil
}

// Validate checks that the configuration is internally consistent.
func (c Config) Validate() error {
	if c.LogLevel != "" && !slices.Contains(logLevels, c.LogLevel) {
		return fmt.Errorf("engine: config: unknown log_level %q", c.LogLevel)
	}

	if t, ok := c.Temperature.Get(); ok && (t < 0 || t > MaxTemperature) {
		return fmt.Errorf("engine: config: temperature %v out of range [0, %v]", t, MaxTemperature)
	}

	for _, kind := range catalog.Providers {
		raw := c.Provider(kind).BaseURL
		if raw == "" {
			continue
		}

		u, err := url.Parse(raw)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("engine: config: provider %q: invalid base_url %q", kind, raw)
		}
	}

	return nil
}
