package service_test

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bibbank/mortgage-simulator/internal/domain/model"
	"github.com/bibbank/mortgage-simulator/internal/domain/service"
	"github.com/bibbank/mortgage-simulator/internal/domain/valueobject"
)

func TestPeriodicRate(t *testing.T) {
	t.Run("effective annual 12%", func(t *testing.T) {
		rate, err := service.PeriodicRate(effectiveConfig(12))
		require.NoError(t, err)
		assert.InDelta(t, 0.0094888, rate, 1e-7)
		assert.InDelta(t, math.Pow(1.12, 1.0/12)-1, rate, 1e-15)
	})

	t.Run("nominal annual 12% with monthly capitalization", func(t *testing.T) {
		cfg := effectiveConfig(12)
		cfg.RateType = valueobject.RateTypeNominal
		cfg.Capitalization = valueobject.CapitalizationMonthly

		rate, err := service.PeriodicRate(cfg)
		require.NoError(t, err)
		assert.Equal(t, 0.01, rate)
	})

	t.Run("nominal annual 12% with daily capitalization", func(t *testing.T) {
		cfg := effectiveConfig(12)
		cfg.RateType = valueobject.RateTypeNominal
		cfg.Capitalization = valueobject.CapitalizationDaily

		rate, err := service.PeriodicRate(cfg)
		require.NoError(t, err)
		assert.InDelta(t, math.Pow(1+0.12/360, 30)-1, rate, 1e-15)
		assert.Greater(t, rate, 0.01)
	})

	t.Run("nominal without capitalization", func(t *testing.T) {
		cfg := effectiveConfig(12)
		cfg.RateType = valueobject.RateTypeNominal

		_, err := service.PeriodicRate(cfg)
		assert.ErrorIs(t, err, model.ErrInvalidConfiguration)
	})

	t.Run("missing rate type", func(t *testing.T) {
		cfg := effectiveConfig(12)
		cfg.RateType = valueobject.RateType{}
		cfg.RateValue = decimal.NewFromInt(5)

		_, err := service.PeriodicRate(cfg)
		assert.ErrorIs(t, err, model.ErrInvalidConfiguration)
	})
}

func TestAnnualize(t *testing.T) {
	monthly := service.AnnualToMonthly(12)
	assert.InDelta(t, 0.12, service.Annualize(monthly), 1e-12)
}
