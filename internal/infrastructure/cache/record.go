package cache

import (
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"

	"github.com/bibbank/mortgage-simulator/internal/domain/model"
	"github.com/bibbank/mortgage-simulator/internal/domain/valueobject"
)

// resultRecord is the serialized form of a SimulationResult.
type resultRecord struct {
	LoanAmount             decimal.Decimal     `json:"loan_amount"`
	FixedQuota             decimal.Decimal     `json:"fixed_quota"`
	TCEA                   decimal.Decimal     `json:"tcea"`
	TIR                    decimal.Decimal     `json:"tir"`
	VAN                    decimal.Decimal     `json:"van"`
	VANAtDiscountRate      decimal.NullDecimal `json:"van_at_discount_rate"`
	TotalInterest          decimal.Decimal     `json:"total_interest"`
	TotalCreditCost        decimal.Decimal     `json:"total_credit_cost"`
	AdministrativeExpenses decimal.Decimal     `json:"administrative_expenses"`
	SolverStatus           string              `json:"solver_status"`
	Rows                   []rowRecord         `json:"rows"`
	MonthlyIRR             float64             `json:"monthly_irr"`
	PeriodicRate           float64             `json:"periodic_rate"`
	SolverIterations       int                 `json:"solver_iterations"`
}

type rowRecord struct {
	DueDate            time.Time       `json:"due_date"`
	Interest           decimal.Decimal `json:"interest"`
	BaseInstallment    decimal.Decimal `json:"base_installment"`
	PrincipalAmortized decimal.Decimal `json:"principal_amortized"`
	Insurance          decimal.Decimal `json:"insurance"`
	FixedFees          decimal.Decimal `json:"fixed_fees"`
	TotalInstallment   decimal.Decimal `json:"total_installment"`
	Balance            decimal.Decimal `json:"balance"`
	Period             int             `json:"period"`
}

func encodeResult(res model.SimulationResult) ([]byte, error) {
	rec := resultRecord{
		LoanAmount:             res.LoanAmount,
		FixedQuota:             res.FixedQuota,
		TCEA:                   res.TCEA,
		TIR:                    res.TIR,
		VAN:                    res.VAN,
		VANAtDiscountRate:      res.VANAtDiscountRate,
		TotalInterest:          res.TotalInterest,
		TotalCreditCost:        res.TotalCreditCost,
		AdministrativeExpenses: res.AdministrativeExpenses,
		SolverStatus:           res.SolverStatus.String(),
		MonthlyIRR:             res.MonthlyIRR,
		PeriodicRate:           res.PeriodicRate,
		SolverIterations:       res.SolverIterations,
		Rows:                   make([]rowRecord, 0, len(res.Schedule)),
	}
	for _, r := range res.Schedule {
		rec.Rows = append(rec.Rows, rowRecord(r))
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("encode simulation result: %w", err)
	}
	return data, nil
}

func decodeResult(data []byte) (model.SimulationResult, error) {
	var rec resultRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return model.SimulationResult{}, fmt.Errorf("decode simulation result: %w", err)
	}
	status, err := valueobject.NewSolverStatus(rec.SolverStatus)
	if err != nil {
		return model.SimulationResult{}, fmt.Errorf("decode simulation result: %w", err)
	}

	res := model.SimulationResult{
		LoanAmount:             rec.LoanAmount,
		FixedQuota:             rec.FixedQuota,
		TCEA:                   rec.TCEA,
		TIR:                    rec.TIR,
		VAN:                    rec.VAN,
		VANAtDiscountRate:      rec.VANAtDiscountRate,
		TotalInterest:          rec.TotalInterest,
		TotalCreditCost:        rec.TotalCreditCost,
		AdministrativeExpenses: rec.AdministrativeExpenses,
		SolverStatus:           status,
		MonthlyIRR:             rec.MonthlyIRR,
		PeriodicRate:           rec.PeriodicRate,
		SolverIterations:       rec.SolverIterations,
		Schedule:               make([]model.AmortizationRow, 0, len(rec.Rows)),
	}
	for _, r := range rec.Rows {
		res.Schedule = append(res.Schedule, model.AmortizationRow(r))
	}
	return res, nil
}
