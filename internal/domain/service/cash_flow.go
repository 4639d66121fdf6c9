package service

import (
	"math"

	"github.com/bibbank/mortgage-simulator/internal/domain/model"
)

// BuildCashFlows assembles the borrower's cash-flow vector: the net amount
// disbursed at time 0 (negative) followed by every total installment.
func BuildCashFlows(principal, disbursementCommission float64, rows []model.AmortizationRow) []float64 {
	flows := make([]float64, 0, len(rows)+1)
	flows = append(flows, -(principal - disbursementCommission))
	for _, row := range rows {
		flows = append(flows, row.TotalInstallment.InexactFloat64())
	}
	return flows
}

// NPV discounts the flows at the given periodic rate:
//
//	NPV = Σ flow_t / (1+rate)^t
func NPV(rate float64, flows []float64) float64 {
	var npv float64
	for t, flow := range flows {
		npv += flow / pow1p(rate, t)
	}
	return npv
}

func pow1p(rate float64, t int) float64 {
	return math.Pow(1+rate, float64(t))
}
