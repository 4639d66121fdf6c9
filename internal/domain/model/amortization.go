package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// AmortizationRow is an immutable value object representing one period of a
// mortgage schedule. Monetary fields are already rounded to two decimals;
// consumers must not re-round or recompute them.
type AmortizationRow struct {
	DueDate            time.Time
	Interest           decimal.Decimal
	BaseInstallment    decimal.Decimal
	PrincipalAmortized decimal.Decimal
	Insurance          decimal.Decimal
	FixedFees          decimal.Decimal
	TotalInstallment   decimal.Decimal
	Balance            decimal.Decimal
	Period             int
}

// Charges returns insurance plus fixed fees for the period.
func (r AmortizationRow) Charges() decimal.Decimal {
	return r.Insurance.Add(r.FixedFees)
}
