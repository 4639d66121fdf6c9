package model

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bibbank/mortgage-simulator/internal/domain/event"
)

// ErrInvalidSimulation is returned when a simulation record lacks the data
// that identifies it.
var ErrInvalidSimulation = errors.New("invalid simulation")

// ---------------------------------------------------------------------------
// Simulation aggregate root
// ---------------------------------------------------------------------------

// Simulation records one mortgage simulation run for a client and a
// property. It is immutable once created.
type Simulation struct {
	id            string
	clientID      string
	houseID       string
	configID      string
	propertyPrice decimal.Decimal
	config        LoanConfiguration
	result        SimulationResult
	version       int
	createdAt     time.Time
	domainEvents  []event.DomainEvent
}

// ---------------------------------------------------------------------------
// Constructors
// ---------------------------------------------------------------------------

// NewSimulation records a computed result and emits SimulationCompleted.
func NewSimulation(
	clientID, houseID, configID string,
	propertyPrice decimal.Decimal,
	config LoanConfiguration,
	result SimulationResult,
	now time.Time,
) (Simulation, error) {
	if clientID == "" {
		return Simulation{}, fmt.Errorf("%w: client ID is required", ErrInvalidSimulation)
	}
	if houseID == "" {
		return Simulation{}, fmt.Errorf("%w: house ID is required", ErrInvalidSimulation)
	}
	if !propertyPrice.IsPositive() {
		return Simulation{}, fmt.Errorf("%w: property price must be positive", ErrInvalidSimulation)
	}
	if len(result.Schedule) != config.TermMonths {
		return Simulation{}, fmt.Errorf("%w: schedule has %d rows for a %d month term",
			ErrInvalidSimulation, len(result.Schedule), config.TermMonths)
	}

	id := uuid.New().String()
	sim := Simulation{
		id:            id,
		clientID:      clientID,
		houseID:       houseID,
		configID:      configID,
		propertyPrice: propertyPrice,
		config:        config,
		result:        result,
		version:       1,
		createdAt:     now,
	}

	sim.domainEvents = append(sim.domainEvents, event.NewSimulationCompleted(
		id, clientID, houseID, configID, config.Currency.Code(),
		result.LoanAmount, result.FixedQuota, result.TCEA,
		config.TermMonths, result.SolverStatus.String(), now,
	))
	return sim, nil
}

// ReconstructSimulation rebuilds a Simulation aggregate from persistence.
func ReconstructSimulation(
	id, clientID, houseID, configID string,
	propertyPrice decimal.Decimal,
	config LoanConfiguration,
	result SimulationResult,
	version int,
	createdAt time.Time,
) Simulation {
	return Simulation{
		id:            id,
		clientID:      clientID,
		houseID:       houseID,
		configID:      configID,
		propertyPrice: propertyPrice,
		config:        config,
		result:        result,
		version:       version,
		createdAt:     createdAt,
	}
}

// ---------------------------------------------------------------------------
// Accessors
// ---------------------------------------------------------------------------

func (s Simulation) ID() string                        { return s.id }
func (s Simulation) ClientID() string                  { return s.clientID }
func (s Simulation) HouseID() string                   { return s.houseID }
func (s Simulation) ConfigID() string                  { return s.configID }
func (s Simulation) PropertyPrice() decimal.Decimal    { return s.propertyPrice }
func (s Simulation) Config() LoanConfiguration         { return s.config }
func (s Simulation) Result() SimulationResult          { return s.result }
func (s Simulation) Version() int                      { return s.version }
func (s Simulation) CreatedAt() time.Time              { return s.createdAt }
func (s Simulation) DomainEvents() []event.DomainEvent { return s.domainEvents }

// ClearEvents returns a copy with an empty event list.
func (s Simulation) ClearEvents() Simulation {
	next := s
	next.domainEvents = nil
	return next
}
