package event

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/bibbank/mortgage-simulator/pkg/events"
)

// DomainEvent is an alias for the shared pkg/events.DomainEvent interface.
type DomainEvent = events.DomainEvent

const aggregateSimulation = "Simulation"

// EventTypeSimulationCompleted is the event type of SimulationCompleted.
const EventTypeSimulationCompleted = "mortgage.simulation.completed"

// ---------------------------------------------------------------------------
// Simulation Events
// ---------------------------------------------------------------------------

// SimulationCompleted is raised when a mortgage simulation has been computed
// and recorded for a client and a property.
type SimulationCompleted struct {
	events.BaseEvent
	ClientID     string          `json:"client_id"`
	HouseID      string          `json:"house_id"`
	ConfigID     string          `json:"config_id,omitempty"`
	Currency     string          `json:"currency"`
	LoanAmount   decimal.Decimal `json:"loan_amount"`
	FixedQuota   decimal.Decimal `json:"fixed_quota"`
	TCEA         decimal.Decimal `json:"tcea"`
	SolverStatus string          `json:"solver_status"`
	TermMonths   int             `json:"term_months"`
}

func NewSimulationCompleted(
	simulationID, clientID, houseID, configID, currency string,
	loanAmount, fixedQuota, tcea decimal.Decimal,
	termMonths int, solverStatus string, now time.Time,
) SimulationCompleted {
	return SimulationCompleted{
		BaseEvent:    events.NewBaseEvent(EventTypeSimulationCompleted, simulationID, aggregateSimulation, now),
		ClientID:     clientID,
		HouseID:      houseID,
		ConfigID:     configID,
		Currency:     currency,
		LoanAmount:   loanAmount,
		FixedQuota:   fixedQuota,
		TCEA:         tcea,
		TermMonths:   termMonths,
		SolverStatus: solverStatus,
	}
}
