package service

import (
	"errors"
	"fmt"
	"math"

	"github.com/bibbank/mortgage-simulator/internal/domain/valueobject"
)

// DefaultIRRGuess is the starting estimate of the Newton-Raphson search.
const DefaultIRRGuess = 0.10

const (
	irrMaxIterations = 1000
	irrTolerance     = 1e-6
	irrMinDerivative = 1e-10
)

// ErrNumericalStall signals that the IRR search stopped before meeting its
// tolerance. The returned rate is still the best estimate available.
var ErrNumericalStall = errors.New("internal rate of return did not converge")

// IRRResult is the outcome of SolveIRR.
type IRRResult struct {
	Status     valueobject.SolverStatus
	Rate       float64
	Iterations int
}

// Err returns nil when the search converged and a wrapped ErrNumericalStall otherwise.
func (r IRRResult) Err() error {
	if r.Status.Converged() {
		return nil
	}
	return fmt.Errorf("%w: %s after %d iterations (estimate %g)",
		ErrNumericalStall, r.Status, r.Iterations, r.Rate)
}

// SolveIRR finds the periodic rate that zeroes the NPV of the flows with
// Newton-Raphson. It never fails: when the derivative vanishes or the
// iteration budget runs out, the last estimate is returned with a
// non-converged status.
func SolveIRR(flows []float64, guess float64) IRRResult {
	x0 := guess
	for i := 0; i < irrMaxIterations; i++ {
		f, df := npvWithDerivative(x0, flows)
		if math.Abs(df) < irrMinDerivative {
			return IRRResult{Rate: x0, Iterations: i, Status: valueobject.SolverStatusDerivativeStall}
		}

		x1 := x0 - f/df
		if math.Abs(x1-x0) <= irrTolerance {
			return IRRResult{Rate: x1, Iterations: i + 1, Status: valueobject.SolverStatusConverged}
		}
		x0 = x1
	}
	return IRRResult{Rate: x0, Iterations: irrMaxIterations, Status: valueobject.SolverStatusIterationLimit}
}

// npvWithDerivative evaluates f(x) = Σ flow_t/(1+x)^t and
// f'(x) = Σ -t·flow_t/(1+x)^(t+1) in one pass.
func npvWithDerivative(x float64, flows []float64) (f, df float64) {
	for t, flow := range flows {
		f += flow / pow1p(x, t)
		df += -float64(t) * flow / pow1p(x, t+1)
	}
	return f, df
}
