package port

import (
	"context"
	"errors"
	"time"

	"github.com/bibbank/mortgage-simulator/internal/domain/event"
	"github.com/bibbank/mortgage-simulator/internal/domain/model"
)

// ErrSimulationNotFound is returned by repositories when no simulation
// matches the lookup.
var ErrSimulationNotFound = errors.New("simulation not found")

// ---------------------------------------------------------------------------
// Repository ports (driven/secondary adapters)
// ---------------------------------------------------------------------------

// SimulationRepository persists and retrieves simulation records.
type SimulationRepository interface {
	Save(ctx context.Context, sim model.Simulation) error
	FindByID(ctx context.Context, id string) (model.Simulation, error)
	FindByClientID(ctx context.Context, clientID string) ([]model.Simulation, error)
}

// ---------------------------------------------------------------------------
// Event publisher port
// ---------------------------------------------------------------------------

// EventPublisher publishes domain events to external consumers.
type EventPublisher interface {
	Publish(ctx context.Context, events ...event.DomainEvent) error
}

// ---------------------------------------------------------------------------
// Result cache port
// ---------------------------------------------------------------------------

// ResultCache memoizes engine results by input fingerprint. A miss is
// reported as (zero, false, nil).
type ResultCache interface {
	Get(ctx context.Context, key string) (model.SimulationResult, bool, error)
	Set(ctx context.Context, key string, result model.SimulationResult, ttl time.Duration) error
}
