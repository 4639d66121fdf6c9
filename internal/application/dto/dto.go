package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ---------------------------------------------------------------------------
// Request DTOs
// ---------------------------------------------------------------------------

// LoanConfigurationRequest carries the loan parameters chosen by the client.
// Enum fields accept the English tags and the Spanish product tags
// ("Efectiva", "Mensual", "Parcial", ...). StartDate is YYYY-MM-DD or RFC 3339.
type LoanConfigurationRequest struct {
	Currency               string              `json:"currency"`
	RateType               string              `json:"rate_type"`
	Capitalization         string              `json:"capitalization,omitempty"`
	GracePeriodPolicy      string              `json:"grace_period_policy,omitempty"`
	StartDate              string              `json:"start_date"`
	RateValue              decimal.Decimal     `json:"rate_value"`
	HousingBonus           decimal.Decimal     `json:"housing_bonus"`
	InitialQuota           decimal.Decimal     `json:"initial_quota"`
	DisbursementCommission decimal.Decimal     `json:"disbursement_commission"`
	MonthlyMaintenance     decimal.Decimal     `json:"monthly_maintenance"`
	MonthlyFees            decimal.Decimal     `json:"monthly_fees"`
	LifeInsuranceRate      decimal.Decimal     `json:"life_insurance_rate"`
	RiskInsuranceRate      decimal.Decimal     `json:"risk_insurance_rate"`
	AnnualDiscountRate     decimal.NullDecimal `json:"annual_discount_rate"`
	GraceMonths            int                 `json:"grace_months"`
	TermMonths             int                 `json:"term_months"`
}

// RunSimulationRequest asks for a new simulation of a property purchase.
type RunSimulationRequest struct {
	ClientID      string                   `json:"client_id"`
	HouseID       string                   `json:"house_id"`
	ConfigID      string                   `json:"config_id,omitempty"`
	PropertyPrice decimal.Decimal          `json:"property_price"`
	Configuration LoanConfigurationRequest `json:"configuration"`
}

// GetSimulationRequest identifies a simulation to retrieve.
type GetSimulationRequest struct {
	SimulationID string `json:"simulation_id"`
}

// ListSimulationsRequest selects the simulations of one client.
type ListSimulationsRequest struct {
	ClientID string `json:"client_id"`
}

// ---------------------------------------------------------------------------
// Response DTOs
// ---------------------------------------------------------------------------

// ScheduleRowResponse is one row of the payment schedule as shown in
// reports. Values are already rounded to two decimals.
type ScheduleRowResponse struct {
	PaymentDate        time.Time       `json:"payment_date"`
	Payment            decimal.Decimal `json:"payment"`
	Interest           decimal.Decimal `json:"interest"`
	PrincipalAmortized decimal.Decimal `json:"principal_amortized"`
	Balance            decimal.Decimal `json:"balance"`
	InsuranceAndFees   decimal.Decimal `json:"insurance_and_fees"`
	Period             int             `json:"period"`
}

// SimulationResponse is the external representation of a simulation.
type SimulationResponse struct {
	ID                     string                `json:"id"`
	ClientID               string                `json:"client_id"`
	HouseID                string                `json:"house_id"`
	ConfigID               string                `json:"config_id,omitempty"`
	Currency               string                `json:"currency"`
	SolverStatus           string                `json:"solver_status"`
	PropertyPrice          decimal.Decimal       `json:"property_price"`
	InitialQuota           decimal.Decimal       `json:"initial_quota"`
	LoanAmount             decimal.Decimal       `json:"loan_amount"`
	FixedQuota             decimal.Decimal       `json:"fixed_quota"`
	TCEA                   decimal.Decimal       `json:"tcea"`
	TIR                    decimal.Decimal       `json:"tir"`
	VAN                    decimal.Decimal       `json:"van"`
	VANAtDiscountRate      decimal.NullDecimal   `json:"van_at_discount_rate"`
	TotalInterest          decimal.Decimal       `json:"total_interest"`
	TotalCreditCost        decimal.Decimal       `json:"total_credit_cost"`
	AdministrativeExpenses decimal.Decimal       `json:"administrative_expenses"`
	StartDate              time.Time             `json:"start_date"`
	CreatedAt              time.Time             `json:"created_at"`
	Schedule               []ScheduleRowResponse `json:"schedule,omitempty"`
	MonthlyIRR             float64               `json:"monthly_irr"`
	PeriodicRate           float64               `json:"periodic_rate"`
	SolverIterations       int                   `json:"solver_iterations"`
	TermMonths             int                   `json:"term_months"`
	Cached                 bool                  `json:"cached"`
}

// ListSimulationsResponse wraps the simulations of one client, newest first.
type ListSimulationsResponse struct {
	Simulations []SimulationResponse `json:"simulations"`
}
