package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/bibbank/mortgage-simulator/internal/domain/valueobject"
)

const meterName = "github.com/bibbank/mortgage-simulator"

// SimulationMetrics implements port.SimulationRecorder with OpenTelemetry
// instruments.
type SimulationMetrics struct {
	runs       metric.Int64Counter
	iterations metric.Int64Histogram
	unresolved metric.Int64Counter
	cacheHits  metric.Int64Counter
}

// NewSimulationMetrics registers the instruments on the given provider.
func NewSimulationMetrics(provider metric.MeterProvider) (*SimulationMetrics, error) {
	meter := provider.Meter(meterName)

	runs, err := meter.Int64Counter("simulator_runs",
		metric.WithDescription("Simulation requests by outcome."))
	if err != nil {
		return nil, fmt.Errorf("create runs counter: %w", err)
	}
	iterations, err := meter.Int64Histogram("simulator_irr_iterations",
		metric.WithDescription("Newton-Raphson iterations spent per IRR solve."),
		metric.WithExplicitBucketBoundaries(1, 2, 4, 8, 16, 32, 64, 128, 256, 512, 1000))
	if err != nil {
		return nil, fmt.Errorf("create iterations histogram: %w", err)
	}
	unresolved, err := meter.Int64Counter("simulator_irr_unresolved",
		metric.WithDescription("IRR solves that ended without converging."))
	if err != nil {
		return nil, fmt.Errorf("create unresolved counter: %w", err)
	}
	cacheHits, err := meter.Int64Counter("simulator_cache_hits",
		metric.WithDescription("Simulations served from the result cache."))
	if err != nil {
		return nil, fmt.Errorf("create cache hit counter: %w", err)
	}

	return &SimulationMetrics{
		runs:       runs,
		iterations: iterations,
		unresolved: unresolved,
		cacheHits:  cacheHits,
	}, nil
}

func (m *SimulationMetrics) RecordRun(ctx context.Context, outcome string) {
	m.runs.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
}

func (m *SimulationMetrics) RecordSolver(ctx context.Context, status valueobject.SolverStatus, iterations int) {
	attrs := metric.WithAttributes(attribute.String("status", status.String()))
	m.iterations.Record(ctx, int64(iterations), attrs)
	if !status.Converged() {
		m.unresolved.Add(ctx, 1, attrs)
	}
}

func (m *SimulationMetrics) RecordCacheHit(ctx context.Context) {
	m.cacheHits.Add(ctx, 1)
}
