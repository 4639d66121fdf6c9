package model_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bibbank/mortgage-simulator/internal/domain/model"
	"github.com/bibbank/mortgage-simulator/internal/domain/valueobject"
	"github.com/bibbank/mortgage-simulator/pkg/money"
)

func validConfig() model.LoanConfiguration {
	return model.LoanConfiguration{
		StartDate:      time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC),
		Currency:       money.PEN,
		RateType:       valueobject.RateTypeNominal,
		Capitalization: valueobject.CapitalizationMonthly,
		GracePolicy:    valueobject.GracePeriodPartial,
		GraceMonths:    3,
		RateValue:      decimal.RequireFromString("9.5"),
		TermMonths:     180,
	}
}

func TestLoanConfiguration_Validate(t *testing.T) {
	require.NoError(t, validConfig().Validate())

	tests := []struct {
		name   string
		mutate func(*model.LoanConfiguration)
	}{
		{"missing rate type", func(c *model.LoanConfiguration) { c.RateType = valueobject.RateType{} }},
		{"nominal without capitalization", func(c *model.LoanConfiguration) { c.Capitalization = valueobject.Capitalization{} }},
		{"missing grace policy", func(c *model.LoanConfiguration) { c.GracePolicy = valueobject.GracePeriodPolicy{} }},
		{"negative rate", func(c *model.LoanConfiguration) { c.RateValue = decimal.NewFromInt(-1) }},
		{"zero term", func(c *model.LoanConfiguration) { c.TermMonths = 0 }},
		{"term above the maximum", func(c *model.LoanConfiguration) { c.TermMonths = model.MaxTermMonths + 1 }},
		{"huge term", func(c *model.LoanConfiguration) { c.TermMonths = 1 << 40 }},
		{"negative grace", func(c *model.LoanConfiguration) { c.GraceMonths = -1 }},
		{"grace as long as the term", func(c *model.LoanConfiguration) { c.GraceMonths = 180 }},
		{"missing start date", func(c *model.LoanConfiguration) { c.StartDate = time.Time{} }},
		{"negative bonus", func(c *model.LoanConfiguration) { c.HousingBonus = decimal.NewFromInt(-5) }},
		{"negative commission", func(c *model.LoanConfiguration) { c.DisbursementCommission = decimal.NewFromInt(-5) }},
		{"negative life insurance", func(c *model.LoanConfiguration) { c.LifeInsuranceRate = decimal.RequireFromString("-0.001") }},
		{"discount rate at -100%", func(c *model.LoanConfiguration) {
			c.AnnualDiscountRate = decimal.NewNullDecimal(decimal.NewFromInt(-100))
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), model.ErrInvalidConfiguration)
		})
	}

	t.Run("effective rate ignores capitalization", func(t *testing.T) {
		cfg := validConfig()
		cfg.RateType = valueobject.RateTypeEffective
		cfg.Capitalization = valueobject.Capitalization{}
		assert.NoError(t, cfg.Validate())
	})

	t.Run("grace months are ignored without a grace policy", func(t *testing.T) {
		cfg := validConfig()
		cfg.GracePolicy = valueobject.GracePeriodNone
		cfg.GraceMonths = 500
		assert.NoError(t, cfg.Validate())
		assert.False(t, cfg.InGrace(1))
	})
}

func TestLoanConfiguration_Principal(t *testing.T) {
	cfg := validConfig()
	cfg.InitialQuota = decimal.NewFromInt(30000)
	cfg.HousingBonus = decimal.NewFromInt(12500)

	got, err := cfg.Principal(decimal.NewFromInt(250000))
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(207500).Equal(got), "got %s", got)

	_, err = cfg.Principal(decimal.Zero)
	assert.ErrorIs(t, err, model.ErrInvalidConfiguration)

	_, err = cfg.Principal(decimal.NewFromInt(42500))
	assert.ErrorIs(t, err, model.ErrInvalidConfiguration)
}

func TestLoanConfiguration_InGrace(t *testing.T) {
	cfg := validConfig()
	assert.True(t, cfg.InGrace(1))
	assert.True(t, cfg.InGrace(3))
	assert.False(t, cfg.InGrace(4))
}

func TestLoanConfiguration_Fingerprint(t *testing.T) {
	price := decimal.NewFromInt(250000)
	base := validConfig().Fingerprint(price)

	same := validConfig()
	same.RateValue = decimal.RequireFromString("9.50")
	assert.Equal(t, base, same.Fingerprint(decimal.RequireFromString("250000.00")))

	other := validConfig()
	other.TermMonths = 240
	assert.NotEqual(t, base, other.Fingerprint(price))
	assert.NotEqual(t, base, validConfig().Fingerprint(decimal.NewFromInt(250001)))

	discounted := validConfig()
	discounted.AnnualDiscountRate = decimal.NewNullDecimal(decimal.Zero)
	assert.NotEqual(t, base, discounted.Fingerprint(price))

	morning := validConfig()
	morning.StartDate = time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC)
	evening := validConfig()
	evening.StartDate = time.Date(2024, time.March, 1, 18, 30, 0, 0, time.UTC)
	assert.NotEqual(t, morning.Fingerprint(price), evening.Fingerprint(price))

	lima := time.FixedZone("PET", -5*60*60)
	sameInstant := validConfig()
	sameInstant.StartDate = time.Date(2024, time.March, 1, 13, 30, 0, 0, lima)
	assert.Equal(t, evening.Fingerprint(price), sameInstant.Fingerprint(price))
}
