package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/bibbank/mortgage-simulator/internal/application/dto"
	"github.com/bibbank/mortgage-simulator/internal/domain/model"
	"github.com/bibbank/mortgage-simulator/internal/domain/port"
	"github.com/bibbank/mortgage-simulator/internal/domain/service"
)

var tracer = otel.Tracer("github.com/bibbank/mortgage-simulator/internal/application/usecase")

// RunSimulationUseCase runs the mortgage engine for one client request,
// records the simulation and announces it.
type RunSimulationUseCase struct {
	repo       port.SimulationRepository
	publisher  port.EventPublisher
	cache      port.ResultCache
	recorder   port.SimulationRecorder
	calculator *service.MortgageCalculator
	logger     *slog.Logger
	cacheTTL   time.Duration
}

// NewRunSimulationUseCase wires dependencies.
func NewRunSimulationUseCase(
	repo port.SimulationRepository,
	publisher port.EventPublisher,
	cache port.ResultCache,
	recorder port.SimulationRecorder,
	calculator *service.MortgageCalculator,
	logger *slog.Logger,
	cacheTTL time.Duration,
) *RunSimulationUseCase {
	return &RunSimulationUseCase{
		repo:       repo,
		publisher:  publisher,
		cache:      cache,
		recorder:   recorder,
		calculator: calculator,
		logger:     logger,
		cacheTTL:   cacheTTL,
	}
}

// Execute validates the request, computes (or reuses) the engine result,
// persists the simulation and publishes its events.
func (uc *RunSimulationUseCase) Execute(
	ctx context.Context,
	req dto.RunSimulationRequest,
) (dto.SimulationResponse, error) {
	ctx, span := tracer.Start(ctx, "RunSimulation")
	defer span.End()
	span.SetAttributes(
		attribute.String("simulation.client_id", req.ClientID),
		attribute.String("simulation.house_id", req.HouseID),
	)

	resp, err := uc.execute(ctx, req)

	outcome := port.OutcomeSucceeded
	switch {
	case err == nil:
	case errors.Is(err, model.ErrInvalidConfiguration), errors.Is(err, model.ErrInvalidSimulation):
		outcome = port.OutcomeRejected
	default:
		outcome = port.OutcomeFailed
	}
	uc.recorder.RecordRun(ctx, outcome)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, outcome)
		return dto.SimulationResponse{}, err
	}
	span.SetAttributes(attribute.String("simulation.id", resp.ID))
	return resp, nil
}

func (uc *RunSimulationUseCase) execute(
	ctx context.Context,
	req dto.RunSimulationRequest,
) (dto.SimulationResponse, error) {
	now := time.Now().UTC()

	// 1. Parse the configuration.
	cfg, err := toLoanConfiguration(req.Configuration)
	if err != nil {
		return dto.SimulationResponse{}, fmt.Errorf("parse configuration: %w", err)
	}

	// 2. Reuse a cached engine result for identical inputs, or compute it.
	key := cfg.Fingerprint(req.PropertyPrice)
	result, cached := uc.cachedResult(ctx, key)
	if !cached {
		result, err = uc.calculator.Simulate(cfg, req.PropertyPrice)
		if err != nil {
			return dto.SimulationResponse{}, fmt.Errorf("simulate: %w", err)
		}
		uc.recorder.RecordSolver(ctx, result.SolverStatus, result.SolverIterations)
	}
	if !result.SolverStatus.Converged() {
		uc.logger.WarnContext(ctx, "internal rate of return did not converge",
			"solver_status", result.SolverStatus.String(),
			"iterations", result.SolverIterations,
			"client_id", req.ClientID,
		)
	}

	// 3. Create the aggregate.
	sim, err := model.NewSimulation(
		req.ClientID, req.HouseID, req.ConfigID,
		req.PropertyPrice, cfg, result, now,
	)
	if err != nil {
		return dto.SimulationResponse{}, fmt.Errorf("create simulation: %w", err)
	}

	// 4. Persist.
	if err := uc.repo.Save(ctx, sim); err != nil {
		return dto.SimulationResponse{}, fmt.Errorf("save simulation: %w", err)
	}

	// 5. Publish domain events.
	if err := uc.publisher.Publish(ctx, sim.DomainEvents()...); err != nil {
		return dto.SimulationResponse{}, fmt.Errorf("publish events: %w", err)
	}

	// 6. Remember the result for identical requests.
	if !cached {
		if err := uc.cache.Set(ctx, key, result, uc.cacheTTL); err != nil {
			uc.logger.WarnContext(ctx, "failed to cache simulation result", "key", key, "error", err)
		}
	}

	uc.logger.InfoContext(ctx, "simulation completed",
		"simulation_id", sim.ID(),
		"client_id", sim.ClientID(),
		"cached", cached,
	)

	resp := toSimulationResponse(sim, true)
	resp.Cached = cached
	return resp, nil
}

// cachedResult looks the key up, treating cache failures as misses.
func (uc *RunSimulationUseCase) cachedResult(ctx context.Context, key string) (model.SimulationResult, bool) {
	result, ok, err := uc.cache.Get(ctx, key)
	if err != nil {
		uc.logger.WarnContext(ctx, "result cache lookup failed", "key", key, "error", err)
		return model.SimulationResult{}, false
	}
	if ok {
		uc.recorder.RecordCacheHit(ctx)
	}
	return result, ok
}
