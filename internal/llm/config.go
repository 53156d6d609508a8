package llm

import (
	"errors"
	"fmt"
	"os"
	"time"
)

// ErrMissingAPIKey means the selected provider has no credentials.
var ErrMissingAPIKey = errors.New("missing API key")

// DefaultTimeout bounds a single answer-check call.
const DefaultTimeout = 20 * time.Second

// Config selects and configures the generative text API.
type Config struct {
	// Provider is one of "gemini", "anthropic", "openai", "openrouter" or
	// "mock".
	Provider string

	Anthropic  AnthropicConfig
	OpenAI     OpenAIConfig
	Gemini     GeminiConfig
	OpenRouter OpenRouterConfig

	// Timeout bounds one request. Requests are never retried.
	Timeout time.Duration
}

type AnthropicConfig struct {
	APIKey  string
	Model   string // alias or full id, default "claude-haiku"
	BaseURL string
}

type OpenAIConfig struct {
	APIKey  string
	Model   string // alias or full id, default "gpt-4o-mini"
	BaseURL string // any OpenAI-compatible gateway
}

type GeminiConfig struct {
	APIKey  string
	Model   string // alias or full id, default "gemini-flash"
	BaseURL string
}

type OpenRouterConfig struct {
	APIKey  string
	Model   string // vendor-qualified id, default "google/gemini-2.0-flash-exp"
	BaseURL string // default "https://openrouter.ai/api/v1"
}

func DefaultConfig() Config {
	return Config{
		Provider:   "gemini",
		Anthropic:  AnthropicConfig{Model: "claude-haiku"},
		OpenAI:     OpenAIConfig{Model: "gpt-4o-mini"},
		Gemini:     GeminiConfig{Model: "gemini-flash"},
		OpenRouter: OpenRouterConfig{Model: "google/gemini-2.0-flash-exp"},
		Timeout:    DefaultTimeout,
	}
}

// providerSettings points at one provider's fields in a Config.
type providerSettings struct {
	name                string
	apiKey, model, base *string
	prefix              string   // LISTLAB_<prefix>_API_KEY and friends
	standardKeys        []string // vendor env vars, in discovery order
}

// settings lists providers in discovery order.
func (c *Config) settings() []providerSettings {
	return []providerSettings{
		{"gemini", &c.Gemini.APIKey, &c.Gemini.Model, &c.Gemini.BaseURL, "GEMINI", []string{"GEMINI_API_KEY", "GOOGLE_API_KEY"}},
		{"openai", &c.OpenAI.APIKey, &c.OpenAI.Model, &c.OpenAI.BaseURL, "OPENAI", []string{"OPENAI_API_KEY"}},
		{"anthropic", &c.Anthropic.APIKey, &c.Anthropic.Model, &c.Anthropic.BaseURL, "ANTHROPIC", []string{"ANTHROPIC_API_KEY"}},
		{"openrouter", &c.OpenRouter.APIKey, &c.OpenRouter.Model, &c.OpenRouter.BaseURL, "OPENROUTER", []string{"OPENROUTER_API_KEY"}},
	}
}

func (c *Config) lookup(provider string) (providerSettings, bool) {
	for _, p := range c.settings() {
		if p.name == provider {
			return p, true
		}
	}
	return providerSettings{}, false
}

func setFromEnv(dst *string, name string) {
	if v := os.Getenv(name); v != "" {
		*dst = v
	}
}

// ConfigFromEnv overlays LISTLAB_* environment variables on the defaults:
// LISTLAB_LLM_PROVIDER, LISTLAB_LLM_TIMEOUT and, per provider,
// LISTLAB_<PROVIDER>_API_KEY, _MODEL and _BASE_URL.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()

	setFromEnv(&cfg.Provider, "LISTLAB_LLM_PROVIDER")
	if t := os.Getenv("LISTLAB_LLM_TIMEOUT"); t != "" {
		if d, err := time.ParseDuration(t); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}

	for _, p := range cfg.settings() {
		setFromEnv(p.apiKey, "LISTLAB_"+p.prefix+"_API_KEY")
		setFromEnv(p.model, "LISTLAB_"+p.prefix+"_MODEL")
		setFromEnv(p.base, "LISTLAB_"+p.prefix+"_BASE_URL")
	}
	return cfg
}

// DiscoverConfig picks the first provider whose vendor key variable
// (GEMINI_API_KEY, OPENAI_API_KEY, ...) is set.
func DiscoverConfig() (Config, bool) {
	cfg := DefaultConfig()
	for _, p := range cfg.settings() {
		for _, name := range p.standardKeys {
			if k := os.Getenv(name); k != "" {
				cfg.Provider = p.name
				*p.apiKey = k
				return cfg, true
			}
		}
	}
	return Config{}, false
}

// ResolveConfig returns the LISTLAB_* configuration when it is usable.
// When no provider was chosen explicitly and its key is missing, vendor key
// variables are tried. The error wraps ErrMissingAPIKey when no key was
// found anywhere.
func ResolveConfig() (Config, error) {
	cfg := ConfigFromEnv()
	err := cfg.Validate()
	if !errors.Is(err, ErrMissingAPIKey) || os.Getenv("LISTLAB_LLM_PROVIDER") != "" {
		return cfg, err
	}
	if found, ok := DiscoverConfig(); ok {
		found.Timeout = cfg.Timeout
		return found, nil
	}
	return cfg, err
}

// Validate checks that the selected provider exists and has a key.
func (c Config) Validate() error {
	if c.Provider == "mock" {
		return nil
	}
	p, ok := c.lookup(c.Provider)
	if !ok {
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	if *p.apiKey == "" {
		return fmt.Errorf("%w: LISTLAB_%s_API_KEY is required for the %s provider", ErrMissingAPIKey, p.prefix, p.name)
	}
	return nil
}
