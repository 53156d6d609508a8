package llm

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/abhisek/listlab/internal/metrics"
	"github.com/abhisek/listlab/internal/store"
)

// Deps are the optional collaborators the provider decorators report to.
// Zero values are valid.
type Deps struct {
	Events  store.EventRepo
	Logger  *slog.Logger
	Metrics *metrics.Registry
}

// NewProvider creates a Provider from configuration.
// It returns the provider wrapped with timeout, metrics and logging middleware.
func NewProvider(ctx context.Context, cfg Config, deps Deps) (Provider, error) {
	var base Provider
	var err error

	switch cfg.Provider {
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "openrouter":
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case "mock":
		base = NewMockProvider()
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	// caller → timeout → metrics → logging → base
	logged := WithLogging(base, deps.Events, deps.Logger)
	counted := WithMetrics(logged, deps.Metrics)
	return WithTimeout(counted, cfg.Timeout), nil
}

// NewProviderFromEnv resolves configuration from the environment and builds
// the decorated provider. The error wraps ErrMissingAPIKey when no
// credentials are available.
func NewProviderFromEnv(ctx context.Context, deps Deps) (Provider, Config, error) {
	cfg, err := ResolveConfig()
	if err != nil {
		return nil, cfg, err
	}
	p, err := NewProvider(ctx, cfg, deps)
	if err != nil {
		return nil, cfg, err
	}
	return p, cfg, nil
}
