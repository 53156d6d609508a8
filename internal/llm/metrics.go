package llm

import (
	"context"

	"github.com/abhisek/listlab/internal/metrics"
)

// MetricsProvider is a decorator that counts calls and tokens per model.
type MetricsProvider struct {
	inner    Provider
	registry *metrics.Registry
}

// WithMetrics wraps a Provider with Prometheus accounting. A nil registry
// returns p unchanged.
func WithMetrics(p Provider, registry *metrics.Registry) Provider {
	if registry == nil {
		return p
	}
	return &MetricsProvider{inner: p, registry: registry}
}

func (m *MetricsProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	resp, err := m.inner.Generate(ctx, req)

	model := m.inner.ModelID()
	var in, out int
	if resp != nil {
		in, out = resp.Usage.InputTokens, resp.Usage.OutputTokens
		if resp.Model != "" {
			model = resp.Model
		}
	}
	m.registry.RecordLLMRequest(model, err == nil, in, out)

	return resp, err
}

func (m *MetricsProvider) ModelID() string {
	return m.inner.ModelID()
}
