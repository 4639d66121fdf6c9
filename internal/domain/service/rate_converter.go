package service

import (
	"fmt"
	"math"

	"github.com/bibbank/mortgage-simulator/internal/domain/model"
	"github.com/bibbank/mortgage-simulator/internal/domain/valueobject"
)

const (
	monthsPerYear  = 12
	daysPerYear    = 360
	daysPerMonth   = 30
	percentDivisor = 100.0
)

// PeriodicRate converts the annual rate of the configuration into the
// monthly effective rate (TEM) used for every period of the schedule.
//
//	EFFECTIVE           (1 + r)^(1/12) - 1
//	NOMINAL, MONTHLY    r / 12
//	NOMINAL, DAILY      (1 + r/360)^30 - 1
func PeriodicRate(cfg model.LoanConfiguration) (float64, error) {
	annual := cfg.RateValue.InexactFloat64() / percentDivisor

	switch {
	case cfg.RateType.Equal(valueobject.RateTypeEffective):
		return math.Pow(1+annual, 1.0/monthsPerYear) - 1, nil
	case cfg.RateType.Equal(valueobject.RateTypeNominal) && cfg.Capitalization.Equal(valueobject.CapitalizationMonthly):
		return annual / monthsPerYear, nil
	case cfg.RateType.Equal(valueobject.RateTypeNominal) && cfg.Capitalization.Equal(valueobject.CapitalizationDaily):
		return math.Pow(1+annual/daysPerYear, daysPerMonth) - 1, nil
	default:
		return 0, fmt.Errorf("%w: unsupported rate type %q with capitalization %q",
			model.ErrInvalidConfiguration, cfg.RateType, cfg.Capitalization)
	}
}

// AnnualToMonthly converts an annual effective percentage into a monthly rate.
func AnnualToMonthly(annualPercent float64) float64 {
	return math.Pow(1+annualPercent/percentDivisor, 1.0/monthsPerYear) - 1
}

// Annualize compounds a monthly rate over a year.
func Annualize(monthly float64) float64 {
	return math.Pow(1+monthly, monthsPerYear) - 1
}
