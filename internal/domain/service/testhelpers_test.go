package service_test

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/bibbank/mortgage-simulator/internal/domain/model"
	"github.com/bibbank/mortgage-simulator/internal/domain/valueobject"
	"github.com/bibbank/mortgage-simulator/pkg/money"
)

// effectiveConfig returns a fee-free configuration at 12% effective annual.
func effectiveConfig(termMonths int) model.LoanConfiguration {
	return model.LoanConfiguration{
		StartDate:   time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC),
		Currency:    money.PEN,
		RateType:    valueobject.RateTypeEffective,
		GracePolicy: valueobject.GracePeriodNone,
		RateValue:   decimal.NewFromInt(12),
		TermMonths:  termMonths,
	}
}

func withGrace(cfg model.LoanConfiguration, policy valueobject.GracePeriodPolicy, months int) model.LoanConfiguration {
	cfg.GracePolicy = policy
	cfg.GraceMonths = months
	return cfg
}

func sumPrincipal(rows []model.AmortizationRow) decimal.Decimal {
	total := decimal.Zero
	for _, r := range rows {
		total = total.Add(r.PrincipalAmortized)
	}
	return total
}
