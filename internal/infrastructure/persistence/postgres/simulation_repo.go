package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/bibbank/mortgage-simulator/internal/domain/model"
	"github.com/bibbank/mortgage-simulator/internal/domain/port"
	"github.com/bibbank/mortgage-simulator/internal/domain/valueobject"
	"github.com/bibbank/mortgage-simulator/pkg/money"
	pkgpostgres "github.com/bibbank/mortgage-simulator/pkg/postgres"
)

// ErrSimulationExists is returned when saving a simulation ID twice.
// Simulations are immutable once recorded.
var ErrSimulationExists = errors.New("simulation already recorded")

// SimulationRepo implements port.SimulationRepository.
type SimulationRepo struct {
	pool *pgxpool.Pool
}

// NewSimulationRepo creates a new PostgreSQL-backed simulation repository.
func NewSimulationRepo(pool *pgxpool.Pool) *SimulationRepo {
	return &SimulationRepo{pool: pool}
}

const simulationColumns = `
	id, client_id, house_id, config_id, property_price,
	currency, rate_type, rate_value, capitalization, grace_policy,
	grace_months, term_months, start_date, housing_bonus, initial_quota,
	disbursement_commission, monthly_maintenance, monthly_fees,
	life_insurance_rate, risk_insurance_rate, annual_discount_rate,
	loan_amount, fixed_quota, tcea, tir, van, van_at_discount_rate,
	total_interest, total_credit_cost, administrative_expenses,
	monthly_irr, periodic_rate, solver_status, solver_iterations,
	version, created_at`

// Save persists a simulation and its schedule in one transaction.
func (r *SimulationRepo) Save(ctx context.Context, sim model.Simulation) error {
	return pkgpostgres.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		cfg := sim.Config()
		res := sim.Result()

		query := `INSERT INTO simulations (` + simulationColumns + `)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,
			        $19,$20,$21,$22,$23,$24,$25,$26,$27,$28,$29,$30,$31,$32,$33,$34,$35,$36)
			ON CONFLICT (id) DO NOTHING`
		tag, err := tx.Exec(ctx, query,
			sim.ID(), sim.ClientID(), sim.HouseID(), sim.ConfigID(), sim.PropertyPrice(),
			cfg.Currency.Code(), cfg.RateType.String(), cfg.RateValue, cfg.Capitalization.String(), cfg.GracePolicy.String(),
			cfg.GraceMonths, cfg.TermMonths, cfg.StartDate, cfg.HousingBonus, cfg.InitialQuota,
			cfg.DisbursementCommission, cfg.MonthlyMaintenance, cfg.MonthlyFees,
			cfg.LifeInsuranceRate, cfg.RiskInsuranceRate, cfg.AnnualDiscountRate,
			res.LoanAmount, res.FixedQuota, res.TCEA, res.TIR, res.VAN, res.VANAtDiscountRate,
			res.TotalInterest, res.TotalCreditCost, res.AdministrativeExpenses,
			res.MonthlyIRR, res.PeriodicRate, res.SolverStatus.String(), res.SolverIterations,
			sim.Version(), sim.CreatedAt(),
		)
		if err != nil {
			return fmt.Errorf("insert simulation: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("%w: %s", ErrSimulationExists, sim.ID())
		}

		batch := &pgx.Batch{}
		for _, row := range res.Schedule {
			batch.Queue(`
				INSERT INTO simulation_rows (
					simulation_id, period, due_date, interest, base_installment,
					principal_amortized, insurance, fixed_fees, total_installment, balance
				) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
				sim.ID(), row.Period, row.DueDate, row.Interest, row.BaseInstallment,
				row.PrincipalAmortized, row.Insurance, row.FixedFees, row.TotalInstallment, row.Balance,
			)
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("insert schedule rows: %w", err)
		}
		return nil
	})
}

// FindByID retrieves a simulation with its full schedule.
func (r *SimulationRepo) FindByID(ctx context.Context, id string) (model.Simulation, error) {
	query := `SELECT ` + simulationColumns + ` FROM simulations WHERE id = $1`

	rec, err := scanSimulation(r.pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Simulation{}, fmt.Errorf("%w: %s", port.ErrSimulationNotFound, id)
	}
	if err != nil {
		return model.Simulation{}, err
	}

	rec.schedule, err = r.loadSchedule(ctx, r.pool, id)
	if err != nil {
		return model.Simulation{}, err
	}
	return rec.toDomain()
}

// FindByClientID retrieves the simulations of a client, newest first. The
// schedules are not loaded.
func (r *SimulationRepo) FindByClientID(ctx context.Context, clientID string) ([]model.Simulation, error) {
	query := `SELECT ` + simulationColumns + `
		FROM simulations
		WHERE client_id = $1
		ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, clientID)
	if err != nil {
		return nil, fmt.Errorf("query simulations: %w", err)
	}
	defer rows.Close()

	var sims []model.Simulation
	for rows.Next() {
		rec, err := scanSimulation(rows)
		if err != nil {
			return nil, err
		}
		sim, err := rec.toDomain()
		if err != nil {
			return nil, err
		}
		sims = append(sims, sim)
	}
	return sims, rows.Err()
}

// ---------------------------------------------------------------------------
// internal helpers
// ---------------------------------------------------------------------------

// simulationRecord mirrors one row of the simulations table.
type simulationRecord struct {
	id, clientID, houseID, configID              string
	currency, rateType, capitalization, grace    string
	solverStatus                                 string
	startDate, createdAt                         time.Time
	propertyPrice, rateValue                     decimal.Decimal
	housingBonus, initialQuota, commission       decimal.Decimal
	maintenance, fees, lifeRate, riskRate        decimal.Decimal
	loanAmount, fixedQuota, tcea, tir, van       decimal.Decimal
	totalInterest, totalCost, adminExpenses      decimal.Decimal
	discountRate, vanAtDiscount                  decimal.NullDecimal
	monthlyIRR, periodicRate                     float64
	graceMonths, termMonths, iterations, version int
	schedule                                     []model.AmortizationRow
}

func scanSimulation(row pgx.Row) (simulationRecord, error) {
	var rec simulationRecord
	err := row.Scan(
		&rec.id, &rec.clientID, &rec.houseID, &rec.configID, &rec.propertyPrice,
		&rec.currency, &rec.rateType, &rec.rateValue, &rec.capitalization, &rec.grace,
		&rec.graceMonths, &rec.termMonths, &rec.startDate, &rec.housingBonus, &rec.initialQuota,
		&rec.commission, &rec.maintenance, &rec.fees,
		&rec.lifeRate, &rec.riskRate, &rec.discountRate,
		&rec.loanAmount, &rec.fixedQuota, &rec.tcea, &rec.tir, &rec.van, &rec.vanAtDiscount,
		&rec.totalInterest, &rec.totalCost, &rec.adminExpenses,
		&rec.monthlyIRR, &rec.periodicRate, &rec.solverStatus, &rec.iterations,
		&rec.version, &rec.createdAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return simulationRecord{}, err
	}
	if err != nil {
		return simulationRecord{}, fmt.Errorf("scan simulation: %w", err)
	}
	return rec, nil
}

func (rec simulationRecord) toDomain() (model.Simulation, error) {
	currency, err := money.NewCurrency(rec.currency)
	if err != nil {
		return model.Simulation{}, fmt.Errorf("parse currency: %w", err)
	}
	rateType, err := valueobject.NewRateType(rec.rateType)
	if err != nil {
		return model.Simulation{}, fmt.Errorf("parse rate type: %w", err)
	}
	capitalization, err := valueobject.NewCapitalization(rec.capitalization)
	if err != nil {
		return model.Simulation{}, fmt.Errorf("parse capitalization: %w", err)
	}
	grace, err := valueobject.NewGracePeriodPolicy(rec.grace)
	if err != nil {
		return model.Simulation{}, fmt.Errorf("parse grace policy: %w", err)
	}
	status, err := valueobject.NewSolverStatus(rec.solverStatus)
	if err != nil {
		return model.Simulation{}, fmt.Errorf("parse solver status: %w", err)
	}

	cfg := model.LoanConfiguration{
		StartDate:              rec.startDate,
		Currency:               currency,
		RateType:               rateType,
		Capitalization:         capitalization,
		GracePolicy:            grace,
		RateValue:              rec.rateValue,
		HousingBonus:           rec.housingBonus,
		InitialQuota:           rec.initialQuota,
		DisbursementCommission: rec.commission,
		MonthlyMaintenance:     rec.maintenance,
		MonthlyFees:            rec.fees,
		LifeInsuranceRate:      rec.lifeRate,
		RiskInsuranceRate:      rec.riskRate,
		AnnualDiscountRate:     rec.discountRate,
		GraceMonths:            rec.graceMonths,
		TermMonths:             rec.termMonths,
	}
	result := model.SimulationResult{
		LoanAmount:             rec.loanAmount,
		FixedQuota:             rec.fixedQuota,
		TCEA:                   rec.tcea,
		TIR:                    rec.tir,
		VAN:                    rec.van,
		VANAtDiscountRate:      rec.vanAtDiscount,
		TotalInterest:          rec.totalInterest,
		TotalCreditCost:        rec.totalCost,
		AdministrativeExpenses: rec.adminExpenses,
		SolverStatus:           status,
		SolverIterations:       rec.iterations,
		MonthlyIRR:             rec.monthlyIRR,
		PeriodicRate:           rec.periodicRate,
		Schedule:               rec.schedule,
	}

	return model.ReconstructSimulation(
		rec.id, rec.clientID, rec.houseID, rec.configID,
		rec.propertyPrice, cfg, result, rec.version, rec.createdAt,
	), nil
}

func (r *SimulationRepo) loadSchedule(ctx context.Context, q pkgpostgres.Querier, simulationID string) ([]model.AmortizationRow, error) {
	query := `
		SELECT period, due_date, interest, base_installment, principal_amortized,
		       insurance, fixed_fees, total_installment, balance
		FROM simulation_rows
		WHERE simulation_id = $1
		ORDER BY period
	`
	rows, err := q.Query(ctx, query, simulationID)
	if err != nil {
		return nil, fmt.Errorf("query schedule: %w", err)
	}
	defer rows.Close()

	var schedule []model.AmortizationRow
	for rows.Next() {
		var e model.AmortizationRow
		if err := rows.Scan(
			&e.Period, &e.DueDate, &e.Interest, &e.BaseInstallment, &e.PrincipalAmortized,
			&e.Insurance, &e.FixedFees, &e.TotalInstallment, &e.Balance,
		); err != nil {
			return nil, fmt.Errorf("scan schedule row: %w", err)
		}
		schedule = append(schedule, e)
	}
	return schedule, rows.Err()
}
