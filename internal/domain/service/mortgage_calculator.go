package service

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"github.com/bibbank/mortgage-simulator/internal/domain/model"
	"github.com/bibbank/mortgage-simulator/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// MortgageCalculator – domain service that runs one full simulation
// ---------------------------------------------------------------------------

// MortgageCalculator chains the rate conversion, schedule, cash flows,
// IRR and NPV into a SimulationResult. It holds no state and is safe for
// concurrent use.
type MortgageCalculator struct{}

// NewMortgageCalculator returns a new calculator instance.
func NewMortgageCalculator() *MortgageCalculator {
	return &MortgageCalculator{}
}

// Simulate validates the configuration and computes the schedule and its
// indicators for the given property price.
//
// A non-converged IRR does not fail the call: the estimate is returned
// with the solver status set and the caller decides what to do with it.
func (c *MortgageCalculator) Simulate(
	cfg model.LoanConfiguration,
	propertyPrice decimal.Decimal,
) (model.SimulationResult, error) {
	if err := cfg.Validate(); err != nil {
		return model.SimulationResult{}, err
	}
	principal, err := cfg.Principal(propertyPrice)
	if err != nil {
		return model.SimulationResult{}, err
	}
	rate, err := PeriodicRate(cfg)
	if err != nil {
		return model.SimulationResult{}, err
	}

	principalF := principal.InexactFloat64()
	priceF := propertyPrice.InexactFloat64()
	if err := checkRepresentable(cfg, principalF, rate, priceF); err != nil {
		return model.SimulationResult{}, err
	}
	rows := GenerateSchedule(principalF, rate, cfg, priceF)
	flows := BuildCashFlows(principalF, cfg.DisbursementCommission.InexactFloat64(), rows)
	irr := SolveIRR(flows, DefaultIRRGuess)

	totalInterest := decimal.Zero
	charges := decimal.Zero
	for _, row := range rows {
		totalInterest = totalInterest.Add(row.Interest)
		charges = charges.Add(row.Charges())
	}
	adminExpenses := charges.Add(cfg.DisbursementCommission)
	tcea := percent(Annualize(irr.Rate))

	result := model.SimulationResult{
		LoanAmount:             principal,
		FixedQuota:             rows[len(rows)-1].TotalInstallment,
		TCEA:                   tcea,
		TIR:                    tcea,
		VAN:                    finite(NPV(rate, flows)).Round(2),
		TotalInterest:          totalInterest,
		AdministrativeExpenses: adminExpenses.Round(2),
		TotalCreditCost:        principal.Add(totalInterest).Add(adminExpenses).Round(2),
		SolverStatus:           irr.Status,
		SolverIterations:       irr.Iterations,
		MonthlyIRR:             irr.Rate,
		PeriodicRate:           rate,
		Schedule:               rows,
	}

	if cfg.AnnualDiscountRate.Valid {
		discount := AnnualToMonthly(cfg.AnnualDiscountRate.Decimal.InexactFloat64())
		result.VANAtDiscountRate = decimal.NewNullDecimal(finite(NPV(discount, flows)).Round(2))
	}
	return result, nil
}

// checkRepresentable rejects configurations whose schedule amounts would
// leave the float64 range. The largest balance is reached at the end of a
// TOTAL grace window, and no installment exceeds that balance plus one
// period of interest.
func checkRepresentable(cfg model.LoanConfiguration, principal, rate, propertyPrice float64) error {
	peak := principal
	if cfg.GracePolicy.Equal(valueobject.GracePeriodTotal) {
		peak *= pow1p(rate, cfg.GraceMonths)
	}
	charges := peak*cfg.LifeInsuranceRate.InexactFloat64() +
		propertyPrice*cfg.RiskInsuranceRate.InexactFloat64() +
		cfg.MonthlyMaintenance.Add(cfg.MonthlyFees).InexactFloat64()
	largest := peak*(1+rate) + charges

	if math.IsNaN(largest) || math.IsInf(largest, 0) || math.IsInf(rate, 0) {
		return fmt.Errorf("%w: rate, term and amounts overflow the schedule", model.ErrInvalidConfiguration)
	}
	return nil
}

func percent(rate float64) decimal.Decimal {
	return finite(rate * percentDivisor).Round(2)
}

// finite converts v to a decimal, mapping NaN and ±Inf (possible only when
// the IRR search diverged) to zero.
func finite(v float64) decimal.Decimal {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(v)
}
