package port

import (
	"context"

	"github.com/bibbank/mortgage-simulator/internal/domain/valueobject"
)

// Outcomes reported to a SimulationRecorder.
const (
	OutcomeSucceeded = "succeeded"
	OutcomeRejected  = "rejected"
	OutcomeFailed    = "failed"
)

// SimulationRecorder receives per-run measurements.
type SimulationRecorder interface {
	RecordRun(ctx context.Context, outcome string)
	RecordSolver(ctx context.Context, status valueobject.SolverStatus, iterations int)
	RecordCacheHit(ctx context.Context)
}
