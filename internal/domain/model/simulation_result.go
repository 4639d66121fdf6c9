package model

import (
	"github.com/shopspring/decimal"

	"github.com/bibbank/mortgage-simulator/internal/domain/valueobject"
)

// SimulationResult is the aggregated outcome of one engine run.
//
// TIR carries the same annualized percentage as TCEA, matching what the
// product screens have always displayed under that label. MonthlyIRR holds
// the raw periodic internal rate of return for callers that need it.
type SimulationResult struct {
	LoanAmount             decimal.Decimal
	FixedQuota             decimal.Decimal
	TCEA                   decimal.Decimal
	VAN                    decimal.Decimal
	TIR                    decimal.Decimal
	TotalInterest          decimal.Decimal
	TotalCreditCost        decimal.Decimal
	AdministrativeExpenses decimal.Decimal
	VANAtDiscountRate      decimal.NullDecimal
	SolverStatus           valueobject.SolverStatus
	Schedule               []AmortizationRow
	MonthlyIRR             float64
	PeriodicRate           float64
	SolverIterations       int
}

// Rows returns a defensive copy of the schedule.
func (r SimulationResult) Rows() []AmortizationRow {
	if r.Schedule == nil {
		return nil
	}
	out := make([]AmortizationRow, len(r.Schedule))
	copy(out, r.Schedule)
	return out
}
