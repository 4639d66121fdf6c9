package model

import (
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/shopspring/decimal"
)

// Fingerprint returns a stable hash of every input that affects the engine
// output. Two calls with equal inputs produce equal results, so the
// fingerprint is usable as a cache key. Decimals are normalized first so
// that 12 and 12.00 hash the same. The start date keeps its time of day
// because every due date inherits it.
func (c LoanConfiguration) Fingerprint(propertyPrice decimal.Decimal) string {
	d := xxhash.New()
	write := func(parts ...string) {
		for _, p := range parts {
			_, _ = d.WriteString(p)
			_, _ = d.WriteString("|")
		}
	}

	discount := "-"
	if c.AnnualDiscountRate.Valid {
		discount = canonical(c.AnnualDiscountRate.Decimal)
	}

	write(
		"v2",
		c.StartDate.UTC().Format(time.RFC3339Nano),
		c.Currency.Code(),
		c.RateType.String(),
		c.Capitalization.String(),
		c.GracePolicy.String(),
		strconv.Itoa(c.GraceMonths),
		strconv.Itoa(c.TermMonths),
		canonical(c.RateValue),
		canonical(c.HousingBonus),
		canonical(c.InitialQuota),
		canonical(c.DisbursementCommission),
		canonical(c.MonthlyMaintenance),
		canonical(c.MonthlyFees),
		canonical(c.LifeInsuranceRate),
		canonical(c.RiskInsuranceRate),
		discount,
		canonical(propertyPrice),
	)
	return strconv.FormatUint(d.Sum64(), 16)
}

func canonical(d decimal.Decimal) string {
	return d.String()
}
