package service

import (
	"math"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bibbank/mortgage-simulator/internal/domain/model"
	"github.com/bibbank/mortgage-simulator/internal/domain/valueobject"
)

// scheduleState is the accumulator threaded from one period to the next.
// The balance is carried at full precision; only emitted rows are rounded.
type scheduleState struct {
	dueDate time.Time
	balance float64
}

// scheduleTerms holds the per-call constants of a schedule.
type scheduleTerms struct {
	config        model.LoanConfiguration
	rate          float64
	lifeRate      float64
	riskRate      float64
	propertyPrice float64
	fixedFees     float64
}

// GenerateSchedule builds the amortization rows of the loan: grace periods
// first, then the constant-installment (French) method over the remaining
// periods. The result always has cfg.TermMonths rows.
func GenerateSchedule(
	principal float64,
	periodicRate float64,
	cfg model.LoanConfiguration,
	propertyPrice float64,
) []model.AmortizationRow {
	if cfg.TermMonths <= 0 {
		return nil
	}

	terms := scheduleTerms{
		config:        cfg,
		rate:          periodicRate,
		lifeRate:      cfg.LifeInsuranceRate.InexactFloat64(),
		riskRate:      cfg.RiskInsuranceRate.InexactFloat64(),
		propertyPrice: propertyPrice,
		fixedFees:     cfg.MonthlyMaintenance.Add(cfg.MonthlyFees).InexactFloat64(),
	}

	rows := make([]model.AmortizationRow, 0, cfg.TermMonths)
	state := scheduleState{dueDate: cfg.StartDate, balance: principal}
	for period := 1; period <= cfg.TermMonths; period++ {
		var row model.AmortizationRow
		row, state = terms.nextRow(state, period)
		rows = append(rows, row)
	}
	return rows
}

// nextRow computes one period from the previous state.
func (t scheduleTerms) nextRow(prev scheduleState, period int) (model.AmortizationRow, scheduleState) {
	dueDate := prev.dueDate.AddDate(0, 1, 0)
	opening := prev.balance

	interest := opening * t.rate
	insurance := opening*t.lifeRate + t.propertyPrice*t.riskRate

	var base, amortized, closing float64
	switch {
	case t.config.InGrace(period) && t.config.GracePolicy.Equal(valueobject.GracePeriodPartial):
		base = interest
		closing = opening
	case t.config.InGrace(period):
		closing = opening + interest
	default:
		base = frenchInstallment(opening, t.rate, t.config.TermMonths-period+1)
		amortized = base - interest
		closing = opening - amortized
	}

	// Fold rounding drift into the principal so the loan ends at exactly zero.
	if closing < 0 || (period == t.config.TermMonths && closing > 0) {
		amortized += closing
		closing = 0
	}

	row := model.AmortizationRow{
		Period:             period,
		DueDate:            dueDate,
		Interest:           round2(interest),
		BaseInstallment:    round2(base),
		PrincipalAmortized: round2(amortized),
		Insurance:          round2(insurance),
		FixedFees:          round2(t.fixedFees),
		TotalInstallment:   round2(base + insurance + t.fixedFees),
		Balance:            round2(closing),
	}
	return row, scheduleState{dueDate: dueDate, balance: closing}
}

// frenchInstallment returns the level installment that repays balance over
// the given number of periods:
//
//	payment = B * r / (1 - (1+r)^-k)
//
// For large r·k the discount factor underflows to zero and the payment
// tends to the interest-only limit B*r.
func frenchInstallment(balance, rate float64, periods int) float64 {
	if rate <= 0 {
		return balance / float64(periods)
	}
	discount := math.Pow(1+rate, -float64(periods))
	if discount >= 1 {
		// rate is below float64 resolution around 1.
		return balance / float64(periods)
	}
	return balance * rate / (1 - discount)
}

// round2 emits a row amount. Simulate rejects inputs whose amounts would
// leave the float64 range, so a non-finite value here is reported as zero.
func round2(v float64) decimal.Decimal {
	return finite(v).Round(2)
}
