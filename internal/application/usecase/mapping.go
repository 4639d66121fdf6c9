package usecase

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/bibbank/mortgage-simulator/internal/application/dto"
	"github.com/bibbank/mortgage-simulator/internal/domain/model"
	"github.com/bibbank/mortgage-simulator/internal/domain/valueobject"
	"github.com/bibbank/mortgage-simulator/pkg/money"
)

// toLoanConfiguration parses the request tags into domain values. Every
// failure wraps model.ErrInvalidConfiguration.
func toLoanConfiguration(req dto.LoanConfigurationRequest) (model.LoanConfiguration, error) {
	currency, err := money.ParseCurrency(req.Currency)
	if err != nil {
		return model.LoanConfiguration{}, fmt.Errorf("%w: %w", model.ErrInvalidConfiguration, err)
	}
	rateType, err := valueobject.NewRateType(req.RateType)
	if err != nil {
		return model.LoanConfiguration{}, fmt.Errorf("%w: %w", model.ErrInvalidConfiguration, err)
	}
	capitalization, err := valueobject.NewCapitalization(req.Capitalization)
	if err != nil {
		return model.LoanConfiguration{}, fmt.Errorf("%w: %w", model.ErrInvalidConfiguration, err)
	}
	grace, err := valueobject.NewGracePeriodPolicy(req.GracePeriodPolicy)
	if err != nil {
		return model.LoanConfiguration{}, fmt.Errorf("%w: %w", model.ErrInvalidConfiguration, err)
	}
	start, err := parseStartDate(req.StartDate)
	if err != nil {
		return model.LoanConfiguration{}, fmt.Errorf("%w: %w", model.ErrInvalidConfiguration, err)
	}

	return model.LoanConfiguration{
		StartDate:              start,
		Currency:               currency,
		RateType:               rateType,
		Capitalization:         capitalization,
		GracePolicy:            grace,
		RateValue:              req.RateValue,
		HousingBonus:           req.HousingBonus,
		InitialQuota:           req.InitialQuota,
		DisbursementCommission: req.DisbursementCommission,
		MonthlyMaintenance:     req.MonthlyMaintenance,
		MonthlyFees:            req.MonthlyFees,
		LifeInsuranceRate:      req.LifeInsuranceRate,
		RiskInsuranceRate:      req.RiskInsuranceRate,
		AnnualDiscountRate:     req.AnnualDiscountRate,
		GraceMonths:            req.GraceMonths,
		TermMonths:             req.TermMonths,
	}, nil
}

func parseStartDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, errors.New("start date is required")
	}
	if t, err := time.Parse(time.DateOnly, raw); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("start date %q is neither YYYY-MM-DD nor RFC 3339", raw)
	}
	return t.UTC(), nil
}

func toSimulationResponse(sim model.Simulation, withSchedule bool) dto.SimulationResponse {
	cfg := sim.Config()
	res := sim.Result()

	resp := dto.SimulationResponse{
		ID:                     sim.ID(),
		ClientID:               sim.ClientID(),
		HouseID:                sim.HouseID(),
		ConfigID:               sim.ConfigID(),
		Currency:               cfg.Currency.Code(),
		SolverStatus:           res.SolverStatus.String(),
		PropertyPrice:          sim.PropertyPrice(),
		InitialQuota:           cfg.InitialQuota,
		LoanAmount:             res.LoanAmount,
		FixedQuota:             res.FixedQuota,
		TCEA:                   res.TCEA,
		TIR:                    res.TIR,
		VAN:                    res.VAN,
		VANAtDiscountRate:      res.VANAtDiscountRate,
		TotalInterest:          res.TotalInterest,
		TotalCreditCost:        res.TotalCreditCost,
		AdministrativeExpenses: res.AdministrativeExpenses,
		StartDate:              cfg.StartDate,
		CreatedAt:              sim.CreatedAt(),
		MonthlyIRR:             finiteOrZero(res.MonthlyIRR),
		PeriodicRate:           res.PeriodicRate,
		SolverIterations:       res.SolverIterations,
		TermMonths:             cfg.TermMonths,
	}
	if withSchedule {
		resp.Schedule = toScheduleRows(res.Rows())
	}
	return resp
}

func toScheduleRows(rows []model.AmortizationRow) []dto.ScheduleRowResponse {
	out := make([]dto.ScheduleRowResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.ScheduleRowResponse{
			Period:             r.Period,
			PaymentDate:        r.DueDate,
			Payment:            r.TotalInstallment,
			Interest:           r.Interest,
			PrincipalAmortized: r.PrincipalAmortized,
			Balance:            r.Balance,
			InsuranceAndFees:   r.Charges(),
		})
	}
	return out
}

// finiteOrZero keeps diverged solver estimates out of JSON encoders, which
// reject NaN and infinities.
func finiteOrZero(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
