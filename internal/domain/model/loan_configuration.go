package model

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bibbank/mortgage-simulator/internal/domain/valueobject"
	"github.com/bibbank/mortgage-simulator/pkg/money"
)

// ErrInvalidConfiguration is returned when a loan configuration or property
// price cannot produce a schedule. It is raised before any row is generated
// for any of:
//   - an unknown rate type, capitalization or grace policy tag;
//   - a non-positive rate, term or property price;
//   - a term longer than MaxTermMonths;
//   - negative grace months, amounts or insurance rates;
//   - a PARTIAL or TOTAL grace window that covers the whole term;
//   - an initial quota and housing bonus that leave nothing to finance;
//   - rates and amounts whose schedule would overflow float64.
var ErrInvalidConfiguration = errors.New("invalid loan configuration")

// MaxTermMonths is the longest accepted term: 50 years of monthly periods.
const MaxTermMonths = 600

// LoanConfiguration is an immutable value object with every caller-supplied
// parameter of a mortgage simulation.
//
// Rates follow the conventions of the product sheets:
//   - RateValue and AnnualDiscountRate are annual percentages (12.5 = 12.5%).
//   - LifeInsuranceRate and RiskInsuranceRate are per-period fractions
//     (0.0005 = 0.05% of the base each month).
type LoanConfiguration struct {
	StartDate              time.Time
	Currency               money.Currency
	RateType               valueobject.RateType
	Capitalization         valueobject.Capitalization
	GracePolicy            valueobject.GracePeriodPolicy
	RateValue              decimal.Decimal
	HousingBonus           decimal.Decimal
	InitialQuota           decimal.Decimal
	DisbursementCommission decimal.Decimal
	MonthlyMaintenance     decimal.Decimal
	MonthlyFees            decimal.Decimal
	LifeInsuranceRate      decimal.Decimal
	RiskInsuranceRate      decimal.Decimal
	AnnualDiscountRate     decimal.NullDecimal
	GraceMonths            int
	TermMonths             int
}

// Validate checks the configuration on its own, independent of the property.
func (c LoanConfiguration) Validate() error {
	switch {
	case c.RateType.IsZero():
		return invalid("rate type is required")
	case c.RateType.Equal(valueobject.RateTypeNominal) && c.Capitalization.IsZero():
		return invalid("capitalization is required for nominal rates")
	case c.GracePolicy.IsZero():
		return invalid("grace period policy is required")
	case !c.RateValue.IsPositive():
		return invalid("rate value must be positive")
	case c.TermMonths <= 0:
		return invalid("term months must be positive")
	case c.TermMonths > MaxTermMonths:
		return invalid(fmt.Sprintf("term months must not exceed %d", MaxTermMonths))
	case c.GraceMonths < 0:
		return invalid("grace months must not be negative")
	case c.GracePolicy.DefersPrincipal() && c.GraceMonths >= c.TermMonths:
		return invalid("grace months must be shorter than the term")
	case c.StartDate.IsZero():
		return invalid("start date is required")
	}

	nonNegative := []struct {
		name  string
		value decimal.Decimal
	}{
		{"housing bonus", c.HousingBonus},
		{"initial quota", c.InitialQuota},
		{"disbursement commission", c.DisbursementCommission},
		{"monthly maintenance", c.MonthlyMaintenance},
		{"monthly fees", c.MonthlyFees},
		{"life insurance rate", c.LifeInsuranceRate},
		{"risk insurance rate", c.RiskInsuranceRate},
	}
	for _, f := range nonNegative {
		if f.value.IsNegative() {
			return invalid(f.name + " must not be negative")
		}
	}
	if c.AnnualDiscountRate.Valid && c.AnnualDiscountRate.Decimal.LessThanOrEqual(decimal.NewFromInt(-100)) {
		return invalid("annual discount rate must be greater than -100%")
	}
	return nil
}

// Principal returns the financed amount for the given property price: the
// price minus the initial quota and, when positive, the housing bonus.
func (c LoanConfiguration) Principal(propertyPrice decimal.Decimal) (decimal.Decimal, error) {
	if !propertyPrice.IsPositive() {
		return decimal.Zero, invalid("property price must be positive")
	}
	principal := propertyPrice.Sub(c.InitialQuota)
	if c.HousingBonus.IsPositive() {
		principal = principal.Sub(c.HousingBonus)
	}
	if !principal.IsPositive() {
		return decimal.Zero, invalid("initial quota and housing bonus leave nothing to finance")
	}
	return principal, nil
}

// InGrace reports whether the given 1-based period falls inside the grace window.
func (c LoanConfiguration) InGrace(period int) bool {
	return c.GracePolicy.DefersPrincipal() && period <= c.GraceMonths
}

func invalid(reason string) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfiguration, reason)
}
