package facts

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/stranalyzer/internal/domain"
	"github.com/kailas-cloud/stranalyzer/internal/metrics"
)

// InstrumentedSource wraps a FactSource with metrics and logging.
type InstrumentedSource struct {
	inner  domain.FactSource
	source string
	logger *zap.Logger
}

// NewInstrumentedSource wraps a fact source with observability.
func NewInstrumentedSource(inner domain.FactSource, source string, logger *zap.Logger) *InstrumentedSource {
	return &InstrumentedSource{inner: inner, source: source, logger: logger}
}

// Fact delegates to the inner source and records the outcome.
func (p *InstrumentedSource) Fact(ctx context.Context) (string, error) {
	start := time.Now()

	fact, err := p.inner.Fact(ctx)

	duration := time.Since(start)
	metrics.FactRequestDuration.WithLabelValues(p.source).Observe(duration.Seconds())

	if err != nil {
		metrics.FactRequestsTotal.WithLabelValues(p.source, "error").Inc()
		p.logger.Error("Fact request failed",
			zap.String("source", p.source),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
		return "", fmt.Errorf("fact: %w", err)
	}

	metrics.FactRequestsTotal.WithLabelValues(p.source, "success").Inc()
	p.logger.Debug("Fact request completed",
		zap.String("source", p.source),
		zap.Duration("duration", duration),
		zap.Int("length", len(fact)),
	)
	return fact, nil
}

// HealthCheck delegates to the inner source when it supports health checks.
func (p *InstrumentedSource) HealthCheck(ctx context.Context) error {
	if hc, ok := p.inner.(domain.HealthChecker); ok {
		return hc.HealthCheck(ctx) //nolint:wrapcheck // transparent decorator
	}
	return nil
}
