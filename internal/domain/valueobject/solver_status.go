package valueobject

import "fmt"

// SolverStatus records how the internal rate of return search ended.
type SolverStatus struct {
	value string
}

const (
	solverStatusConverged       = "CONVERGED"
	solverStatusDerivativeStall = "DERIVATIVE_STALL"
	solverStatusIterationLimit  = "ITERATION_LIMIT"
)

var (
	SolverStatusConverged       = SolverStatus{value: solverStatusConverged}
	SolverStatusDerivativeStall = SolverStatus{value: solverStatusDerivativeStall}
	SolverStatusIterationLimit  = SolverStatus{value: solverStatusIterationLimit}
)

var validSolverStatuses = map[string]SolverStatus{
	solverStatusConverged:       SolverStatusConverged,
	solverStatusDerivativeStall: SolverStatusDerivativeStall,
	solverStatusIterationLimit:  SolverStatusIterationLimit,
}

// NewSolverStatus creates a SolverStatus from a raw string.
func NewSolverStatus(s string) (SolverStatus, error) {
	v, ok := validSolverStatuses[s]
	if !ok {
		return SolverStatus{}, fmt.Errorf("%w: solver status %q", ErrUnknownTag, s)
	}
	return v, nil
}

// String returns the string representation of the status.
func (s SolverStatus) String() string { return s.value }

// IsZero returns true if the status has not been initialised.
func (s SolverStatus) IsZero() bool { return s.value == "" }

// Equal returns true when both statuses carry the same value.
func (s SolverStatus) Equal(other SolverStatus) bool { return s.value == other.value }

// Converged reports whether the solver met its tolerance.
func (s SolverStatus) Converged() bool { return s.Equal(SolverStatusConverged) }
