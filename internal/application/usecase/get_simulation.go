package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/bibbank/mortgage-simulator/internal/application/dto"
	"github.com/bibbank/mortgage-simulator/internal/domain/model"
	"github.com/bibbank/mortgage-simulator/internal/domain/port"
)

// GetSimulationUseCase retrieves a simulation by ID.
type GetSimulationUseCase struct {
	repo port.SimulationRepository
}

// NewGetSimulationUseCase wires dependencies.
func NewGetSimulationUseCase(repo port.SimulationRepository) *GetSimulationUseCase {
	return &GetSimulationUseCase{repo: repo}
}

// Execute returns the simulation with its full schedule.
func (uc *GetSimulationUseCase) Execute(
	ctx context.Context,
	req dto.GetSimulationRequest,
) (dto.SimulationResponse, error) {
	if strings.TrimSpace(req.SimulationID) == "" {
		return dto.SimulationResponse{}, fmt.Errorf("%w: simulation ID is required", model.ErrInvalidSimulation)
	}
	sim, err := uc.repo.FindByID(ctx, req.SimulationID)
	if err != nil {
		return dto.SimulationResponse{}, fmt.Errorf("find simulation: %w", err)
	}
	return toSimulationResponse(sim, true), nil
}

// ListSimulationsUseCase lists the simulations of a client.
type ListSimulationsUseCase struct {
	repo port.SimulationRepository
}

// NewListSimulationsUseCase wires dependencies.
func NewListSimulationsUseCase(repo port.SimulationRepository) *ListSimulationsUseCase {
	return &ListSimulationsUseCase{repo: repo}
}

// Execute returns summaries without schedules.
func (uc *ListSimulationsUseCase) Execute(
	ctx context.Context,
	req dto.ListSimulationsRequest,
) (dto.ListSimulationsResponse, error) {
	if strings.TrimSpace(req.ClientID) == "" {
		return dto.ListSimulationsResponse{}, fmt.Errorf("%w: client ID is required", model.ErrInvalidSimulation)
	}
	sims, err := uc.repo.FindByClientID(ctx, req.ClientID)
	if err != nil {
		return dto.ListSimulationsResponse{}, fmt.Errorf("find simulations: %w", err)
	}

	out := dto.ListSimulationsResponse{Simulations: make([]dto.SimulationResponse, 0, len(sims))}
	for _, sim := range sims {
		out.Simulations = append(out.Simulations, toSimulationResponse(sim, false))
	}
	return out, nil
}
