package cmd

import (
	"context"
	"errors"
	"log/slog"

	"github.com/abhisek/listlab/internal/evaluation"
	"github.com/abhisek/listlab/internal/llm"
	"github.com/abhisek/listlab/internal/metrics"
	"github.com/abhisek/listlab/internal/store"
)

// newEvaluator builds the answer checker. Missing credentials are not an
// error: the evaluator then answers every check with the missing
// credentials response, so the rest of the app keeps working.
func newEvaluator(ctx context.Context, events store.EventRepo, registry *metrics.Registry, logger *slog.Logger) (*evaluation.Service, error) {
	provider, cfg, err := llm.NewProviderFromEnv(ctx, llm.Deps{
		Events:  events,
		Logger:  logger,
		Metrics: registry,
	})
	switch {
	case errors.Is(err, llm.ErrMissingAPIKey):
		logger.Warn("generative text API not configured, answer checks will fail", "error", err)
		provider = nil
	case err != nil:
		return nil, err
	default:
		logger.Info("generative text API configured", "provider", cfg.Provider, "model", provider.ModelID())
	}

	return evaluation.NewService(provider, evaluation.DefaultRuleBook(),
		evaluation.WithEvents(events),
		evaluation.WithMetrics(registry),
		evaluation.WithLogger(logger),
	), nil
}
