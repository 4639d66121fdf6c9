package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bibbank/mortgage-simulator/internal/domain/service"
	"github.com/bibbank/mortgage-simulator/internal/domain/valueobject"
)

func TestSolveIRR(t *testing.T) {
	t.Run("single period", func(t *testing.T) {
		res := service.SolveIRR([]float64{-1000, 1050}, service.DefaultIRRGuess)

		assert.InDelta(t, 0.05, res.Rate, 1e-6)
		assert.True(t, res.Status.Converged())
		assert.Positive(t, res.Iterations)
		assert.NoError(t, res.Err())
	})

	t.Run("level annuity", func(t *testing.T) {
		flows := []float64{-1000}
		for i := 0; i < 12; i++ {
			flows = append(flows, 88.85)
		}
		res := service.SolveIRR(flows, service.DefaultIRRGuess)

		require.NoError(t, res.Err())
		assert.InDelta(t, 0.0, service.NPV(res.Rate, flows), 1e-3)
	})

	t.Run("vanishing derivative", func(t *testing.T) {
		res := service.SolveIRR([]float64{0, 0, 0}, 0.2)

		assert.Equal(t, valueobject.SolverStatusDerivativeStall, res.Status)
		assert.Equal(t, 0.2, res.Rate)
		assert.Zero(t, res.Iterations)
		assert.ErrorIs(t, res.Err(), service.ErrNumericalStall)
	})

	t.Run("iteration budget exhausted", func(t *testing.T) {
		// A guess of -1 puts a zero in every denominator and the
		// estimate never becomes a number again.
		res := service.SolveIRR([]float64{-1000, 1050}, -1)

		assert.Equal(t, valueobject.SolverStatusIterationLimit, res.Status)
		assert.Equal(t, 1000, res.Iterations)
		assert.ErrorIs(t, res.Err(), service.ErrNumericalStall)
	})
}
