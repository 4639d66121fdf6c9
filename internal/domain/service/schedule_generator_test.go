package service_test

import (
	"math"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bibbank/mortgage-simulator/internal/domain/model"
	"github.com/bibbank/mortgage-simulator/internal/domain/service"
	"github.com/bibbank/mortgage-simulator/internal/domain/valueobject"
)

const principal = 100000.0

func schedule(t *testing.T, cfg model.LoanConfiguration, price float64) ([]model.AmortizationRow, float64) {
	t.Helper()
	rate, err := service.PeriodicRate(cfg)
	require.NoError(t, err)
	return service.GenerateSchedule(principal, rate, cfg, price), rate
}

func TestGenerateSchedule_Invariants(t *testing.T) {
	nominalDaily := effectiveConfig(36)
	nominalDaily.RateType = valueobject.RateTypeNominal
	nominalDaily.Capitalization = valueobject.CapitalizationDaily

	charged := effectiveConfig(60)
	charged.LifeInsuranceRate = decimal.RequireFromString("0.0005")
	charged.RiskInsuranceRate = decimal.RequireFromString("0.0003")
	charged.MonthlyMaintenance = decimal.NewFromInt(10)
	charged.MonthlyFees = decimal.NewFromInt(5)

	tests := []struct {
		name string
		cfg  model.LoanConfiguration
	}{
		{"single period", effectiveConfig(1)},
		{"one year", effectiveConfig(12)},
		{"twenty years", effectiveConfig(240)},
		{"nominal daily", nominalDaily},
		{"insurance and fees", charged},
		{"partial grace", withGrace(effectiveConfig(24), valueobject.GracePeriodPartial, 6)},
		{"total grace", withGrace(effectiveConfig(24), valueobject.GracePeriodTotal, 6)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, _ := schedule(t, tt.cfg, 120000)

			require.Len(t, rows, tt.cfg.TermMonths)
			for i, row := range rows {
				assert.Equal(t, i+1, row.Period)
			}
			last := rows[len(rows)-1]
			assert.True(t, last.Balance.IsZero(), "final balance %s", last.Balance)
		})
	}
}

func TestGenerateSchedule_NoGrace(t *testing.T) {
	cfg := effectiveConfig(12)
	rows, rate := schedule(t, cfg, principal)

	t.Run("balance strictly decreases", func(t *testing.T) {
		prev := decimal.NewFromFloat(principal)
		for _, row := range rows {
			assert.True(t, row.Balance.LessThan(prev), "period %d: %s >= %s", row.Period, row.Balance, prev)
			prev = row.Balance
		}
	})

	t.Run("principal adds up to the loan amount", func(t *testing.T) {
		assert.InDelta(t, principal, sumPrincipal(rows).InexactFloat64(), 0.01*float64(cfg.TermMonths))
	})

	t.Run("interest is charged on the previous balance", func(t *testing.T) {
		prev := principal
		for _, row := range rows {
			want := math.Round(prev*rate*100) / 100
			assert.InDelta(t, want, row.Interest.InexactFloat64(), 0.011, "period %d", row.Period)
			prev = row.Balance.InexactFloat64()
		}
	})

	t.Run("installment is level", func(t *testing.T) {
		first := rows[0].BaseInstallment
		for _, row := range rows {
			assert.InDelta(t, first.InexactFloat64(), row.BaseInstallment.InexactFloat64(), 0.01)
			assert.True(t, row.Interest.Add(row.PrincipalAmortized).Sub(row.BaseInstallment).Abs().LessThanOrEqual(decimal.RequireFromString("0.01")))
		}
	})

	t.Run("due dates advance one calendar month", func(t *testing.T) {
		assert.Equal(t, time.Date(2024, time.February, 15, 0, 0, 0, 0, time.UTC), rows[0].DueDate)
		assert.Equal(t, time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC), rows[11].DueDate)
	})
}

func TestGenerateSchedule_MonthEndStartDate(t *testing.T) {
	cfg := effectiveConfig(3)
	cfg.StartDate = time.Date(2024, time.January, 31, 0, 0, 0, 0, time.UTC)

	rows, _ := schedule(t, cfg, principal)

	// January 31 plus one month normalizes past the end of February.
	assert.Equal(t, time.Date(2024, time.March, 2, 0, 0, 0, 0, time.UTC), rows[0].DueDate)
	assert.Equal(t, time.Date(2024, time.April, 2, 0, 0, 0, 0, time.UTC), rows[1].DueDate)
}

func TestGenerateSchedule_PartialGrace(t *testing.T) {
	cfg := withGrace(effectiveConfig(24), valueobject.GracePeriodPartial, 3)
	rows, _ := schedule(t, cfg, principal)

	for _, row := range rows[:3] {
		assert.True(t, row.PrincipalAmortized.IsZero(), "period %d", row.Period)
		assert.True(t, row.BaseInstallment.Equal(row.Interest), "period %d", row.Period)
		assert.True(t, decimal.NewFromFloat(principal).Equal(row.Balance), "period %d", row.Period)
	}
	assert.True(t, rows[3].PrincipalAmortized.IsPositive())
	assert.InDelta(t, principal, sumPrincipal(rows).InexactFloat64(), 0.01*float64(cfg.TermMonths))
}

func TestGenerateSchedule_TotalGrace(t *testing.T) {
	const graceMonths = 4
	cfg := withGrace(effectiveConfig(24), valueobject.GracePeriodTotal, graceMonths)
	cfg.LifeInsuranceRate = decimal.RequireFromString("0.0005")

	rows, rate := schedule(t, cfg, principal)
	require.Len(t, rows, cfg.TermMonths)

	prev := decimal.NewFromFloat(principal)
	capitalized := decimal.Zero
	for _, row := range rows[:graceMonths] {
		assert.True(t, row.Balance.GreaterThan(prev), "period %d: balance should grow", row.Period)
		assert.True(t, row.BaseInstallment.IsZero())
		assert.True(t, row.PrincipalAmortized.IsZero())
		assert.True(t, row.Insurance.IsPositive(), "insurance is still charged during grace")
		capitalized = capitalized.Add(row.Interest)
		prev = row.Balance
	}

	grown := principal * math.Pow(1+rate, graceMonths)
	assert.InDelta(t, grown, rows[graceMonths-1].Balance.InexactFloat64(), 0.01)

	// Capitalized interest is repaid as principal once amortization starts.
	assert.InDelta(t,
		principal+capitalized.InexactFloat64(),
		sumPrincipal(rows).InexactFloat64(),
		0.01*float64(cfg.TermMonths))
}

func TestGenerateSchedule_Charges(t *testing.T) {
	cfg := effectiveConfig(12)
	cfg.LifeInsuranceRate = decimal.RequireFromString("0.0005")
	cfg.RiskInsuranceRate = decimal.RequireFromString("0.0003")
	cfg.MonthlyMaintenance = decimal.NewFromInt(10)
	cfg.MonthlyFees = decimal.NewFromInt(5)

	rows, _ := schedule(t, cfg, 120000)

	first := rows[0]
	assert.Equal(t, "86", first.Insurance.String())
	assert.Equal(t, "15", first.FixedFees.String())
	assert.Equal(t, "101", first.Charges().String())
	assert.InDelta(t,
		first.BaseInstallment.Add(first.Charges()).InexactFloat64(),
		first.TotalInstallment.InexactFloat64(),
		0.01)

	// Life insurance follows the declining balance; property insurance does not.
	assert.True(t, rows[11].Insurance.LessThan(first.Insurance))
	assert.True(t, rows[11].Insurance.GreaterThanOrEqual(decimal.NewFromInt(36)))
}

func TestGenerateSchedule_ZeroRate(t *testing.T) {
	cfg := effectiveConfig(12)
	rows := service.GenerateSchedule(1200, 0, cfg, 0)

	require.Len(t, rows, 12)
	for _, row := range rows {
		assert.Equal(t, "100", row.BaseInstallment.String())
		assert.True(t, row.Interest.IsZero())
	}
	assert.True(t, rows[11].Balance.IsZero())
}

func TestGenerateSchedule_ExtremeRate(t *testing.T) {
	// 1000% effective over 3600 months: (1+r)^k leaves the float64 range.
	cfg := effectiveConfig(3600)
	cfg.RateValue = decimal.NewFromInt(1000)

	var rows []model.AmortizationRow
	require.NotPanics(t, func() {
		rows, _ = schedule(t, cfg, principal)
	})

	require.Len(t, rows, 3600)
	assert.True(t, rows[0].PrincipalAmortized.IsZero())
	assert.True(t, rows[0].BaseInstallment.Equal(rows[0].Interest))
	assert.Equal(t, "100000", rows[3599].PrincipalAmortized.String())
	assert.True(t, rows[3599].Balance.IsZero())
}

func TestGenerateSchedule_EmptyTerm(t *testing.T) {
	assert.Empty(t, service.GenerateSchedule(principal, 0.01, effectiveConfig(0), principal))
}
