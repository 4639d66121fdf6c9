package grpc

// Wire messages for SimulatorService. Amounts and rates are decimal strings
// so that no precision is lost in transit.

type LoanConfigurationMsg struct {
	Currency               string `json:"currency"`
	RateType               string `json:"rate_type"`
	Capitalization         string `json:"capitalization,omitempty"`
	GracePeriodPolicy      string `json:"grace_period_policy,omitempty"`
	StartDate              string `json:"start_date"`
	RateValue              string `json:"rate_value"`
	HousingBonus           string `json:"housing_bonus,omitempty"`
	InitialQuota           string `json:"initial_quota,omitempty"`
	DisbursementCommission string `json:"disbursement_commission,omitempty"`
	MonthlyMaintenance     string `json:"monthly_maintenance,omitempty"`
	MonthlyFees            string `json:"monthly_fees,omitempty"`
	LifeInsuranceRate      string `json:"life_insurance_rate,omitempty"`
	RiskInsuranceRate      string `json:"risk_insurance_rate,omitempty"`
	AnnualDiscountRate     string `json:"annual_discount_rate,omitempty"`
	GraceMonths            int32  `json:"grace_months"`
	TermMonths             int32  `json:"term_months"`
}

type RunSimulationRequestMsg struct {
	Configuration *LoanConfigurationMsg `json:"configuration"`
	ClientID      string                `json:"client_id"`
	HouseID       string                `json:"house_id"`
	ConfigID      string                `json:"config_id,omitempty"`
	PropertyPrice string                `json:"property_price"`
}

type GetSimulationRequestMsg struct {
	SimulationID string `json:"simulation_id"`
}

type ListSimulationsRequestMsg struct {
	ClientID string `json:"client_id"`
}

type ScheduleRowMsg struct {
	PaymentDate        string `json:"payment_date"`
	Payment            string `json:"payment"`
	Interest           string `json:"interest"`
	PrincipalAmortized string `json:"principal_amortized"`
	Balance            string `json:"balance"`
	InsuranceAndFees   string `json:"insurance_and_fees"`
	Period             int32  `json:"period"`
}

type SimulationMsg struct {
	ID                     string            `json:"id"`
	ClientID               string            `json:"client_id"`
	HouseID                string            `json:"house_id"`
	ConfigID               string            `json:"config_id,omitempty"`
	Currency               string            `json:"currency"`
	SolverStatus           string            `json:"solver_status"`
	PropertyPrice          string            `json:"property_price"`
	InitialQuota           string            `json:"initial_quota"`
	LoanAmount             string            `json:"loan_amount"`
	FixedQuota             string            `json:"fixed_quota"`
	TCEA                   string            `json:"tcea"`
	TIR                    string            `json:"tir"`
	VAN                    string            `json:"van"`
	VANAtDiscountRate      string            `json:"van_at_discount_rate,omitempty"`
	TotalInterest          string            `json:"total_interest"`
	TotalCreditCost        string            `json:"total_credit_cost"`
	AdministrativeExpenses string            `json:"administrative_expenses"`
	StartDate              string            `json:"start_date"`
	CreatedAt              string            `json:"created_at"`
	Schedule               []*ScheduleRowMsg `json:"schedule,omitempty"`
	MonthlyIRR             float64           `json:"monthly_irr"`
	SolverIterations       int32             `json:"solver_iterations"`
	TermMonths             int32             `json:"term_months"`
	Cached                 bool              `json:"cached"`
}

type SimulationResponseMsg struct {
	Simulation *SimulationMsg `json:"simulation"`
}

type ListSimulationsResponseMsg struct {
	Simulations []*SimulationMsg `json:"simulations"`
}
