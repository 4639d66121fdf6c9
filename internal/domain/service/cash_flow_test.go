package service_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bibbank/mortgage-simulator/internal/domain/model"
	"github.com/bibbank/mortgage-simulator/internal/domain/service"
)

func TestBuildCashFlows(t *testing.T) {
	rows := []model.AmortizationRow{
		{Period: 1, TotalInstallment: decimal.RequireFromString("525.10")},
		{Period: 2, TotalInstallment: decimal.RequireFromString("525.12")},
	}

	flows := service.BuildCashFlows(1000, 50, rows)

	require.Len(t, flows, 3)
	assert.Equal(t, -950.0, flows[0])
	assert.Equal(t, 525.10, flows[1])
	assert.Equal(t, 525.12, flows[2])
}

func TestNPV(t *testing.T) {
	t.Run("zero rate sums the flows", func(t *testing.T) {
		assert.Equal(t, 50.0, service.NPV(0, []float64{-100, 50, 50, 50}))
	})

	t.Run("discounts each period", func(t *testing.T) {
		got := service.NPV(0.05, []float64{-1000, 1050})
		assert.InDelta(t, 0.0, got, 1e-9)
	})

	t.Run("empty flows", func(t *testing.T) {
		assert.Equal(t, 0.0, service.NPV(0.1, nil))
	})
}
