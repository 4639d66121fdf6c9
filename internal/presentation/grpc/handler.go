package grpc

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/bibbank/mortgage-simulator/internal/application/dto"
	"github.com/bibbank/mortgage-simulator/internal/application/usecase"
	"github.com/bibbank/mortgage-simulator/internal/domain/model"
	"github.com/bibbank/mortgage-simulator/internal/domain/port"
	"github.com/bibbank/mortgage-simulator/internal/infrastructure/persistence/postgres"
	"github.com/bibbank/mortgage-simulator/pkg/auth"
)

// Compile-time assertion that SimulatorHandler implements SimulatorServiceServer.
var _ SimulatorServiceServer = (*SimulatorHandler)(nil)

// SimulatorHandler implements the gRPC SimulatorService server.
type SimulatorHandler struct {
	UnimplementedSimulatorServiceServer
	run    *usecase.RunSimulationUseCase
	get    *usecase.GetSimulationUseCase
	list   *usecase.ListSimulationsUseCase
	logger *slog.Logger
}

func NewSimulatorHandler(
	run *usecase.RunSimulationUseCase,
	get *usecase.GetSimulationUseCase,
	list *usecase.ListSimulationsUseCase,
	logger *slog.Logger,
) *SimulatorHandler {
	return &SimulatorHandler{
		run:    run,
		get:    get,
		list:   list,
		logger: logger,
	}
}

// requireClientAccess checks that the caller may act for clientID.
func requireClientAccess(ctx context.Context, clientID string) error {
	claims, ok := auth.ClaimsFromContext(ctx)
	if !ok {
		return status.Error(codes.Unauthenticated, "authentication required")
	}
	if !claims.CanAccessClient(clientID) {
		return status.Error(codes.PermissionDenied, "insufficient permissions")
	}
	return nil
}

func (h *SimulatorHandler) RunSimulation(ctx context.Context, req *RunSimulationRequestMsg) (*SimulationResponseMsg, error) {
	if req == nil || req.Configuration == nil {
		return nil, status.Error(codes.InvalidArgument, "configuration is required")
	}
	if err := requireClientAccess(ctx, req.ClientID); err != nil {
		return nil, err
	}

	in, err := toRunSimulationRequest(req)
	if err != nil {
		return nil, err
	}

	resp, err := h.run.Execute(ctx, in)
	if err != nil {
		return nil, h.toStatus(ctx, "RunSimulation", err)
	}
	return &SimulationResponseMsg{Simulation: toSimulationMsg(resp)}, nil
}

func (h *SimulatorHandler) GetSimulation(ctx context.Context, req *GetSimulationRequestMsg) (*SimulationResponseMsg, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}
	if _, ok := auth.ClaimsFromContext(ctx); !ok {
		return nil, status.Error(codes.Unauthenticated, "authentication required")
	}

	resp, err := h.get.Execute(ctx, dto.GetSimulationRequest{SimulationID: req.SimulationID})
	if err != nil {
		return nil, h.toStatus(ctx, "GetSimulation", err)
	}
	if err := requireClientAccess(ctx, resp.ClientID); err != nil {
		return nil, err
	}
	return &SimulationResponseMsg{Simulation: toSimulationMsg(resp)}, nil
}

func (h *SimulatorHandler) ListSimulations(ctx context.Context, req *ListSimulationsRequestMsg) (*ListSimulationsResponseMsg, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}
	if err := requireClientAccess(ctx, req.ClientID); err != nil {
		return nil, err
	}

	resp, err := h.list.Execute(ctx, dto.ListSimulationsRequest{ClientID: req.ClientID})
	if err != nil {
		return nil, h.toStatus(ctx, "ListSimulations", err)
	}

	out := &ListSimulationsResponseMsg{Simulations: make([]*SimulationMsg, 0, len(resp.Simulations))}
	for _, s := range resp.Simulations {
		out.Simulations = append(out.Simulations, toSimulationMsg(s))
	}
	return out, nil
}

// toStatus maps use case errors onto gRPC codes. Unexpected errors are
// logged and hidden from the caller.
func (h *SimulatorHandler) toStatus(ctx context.Context, method string, err error) error {
	switch {
	case errors.Is(err, model.ErrInvalidConfiguration), errors.Is(err, model.ErrInvalidSimulation):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, port.ErrSimulationNotFound):
		return status.Error(codes.NotFound, "simulation not found")
	case errors.Is(err, postgres.ErrSimulationExists):
		return status.Error(codes.AlreadyExists, err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, "request canceled")
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, "deadline exceeded")
	}
	h.logger.ErrorContext(ctx, "simulator request failed", "method", method, "error", err)
	return status.Error(codes.Internal, "internal error")
}

// ---------------------------------------------------------------------------
// Message conversion
// ---------------------------------------------------------------------------

func toRunSimulationRequest(req *RunSimulationRequestMsg) (dto.RunSimulationRequest, error) {
	price, err := requiredDecimal("property_price", req.PropertyPrice)
	if err != nil {
		return dto.RunSimulationRequest{}, err
	}
	cfg, err := toLoanConfigurationRequest(req.Configuration)
	if err != nil {
		return dto.RunSimulationRequest{}, err
	}
	return dto.RunSimulationRequest{
		ClientID:      req.ClientID,
		HouseID:       req.HouseID,
		ConfigID:      req.ConfigID,
		PropertyPrice: price,
		Configuration: cfg,
	}, nil
}

func toLoanConfigurationRequest(m *LoanConfigurationMsg) (dto.LoanConfigurationRequest, error) {
	out := dto.LoanConfigurationRequest{
		Currency:          m.Currency,
		RateType:          m.RateType,
		Capitalization:    m.Capitalization,
		GracePeriodPolicy: m.GracePeriodPolicy,
		StartDate:         m.StartDate,
		GraceMonths:       int(m.GraceMonths),
		TermMonths:        int(m.TermMonths),
	}

	var err error
	if out.RateValue, err = requiredDecimal("rate_value", m.RateValue); err != nil {
		return out, err
	}

	optional := []struct {
		name string
		raw  string
		dst  *decimal.Decimal
	}{
		{"housing_bonus", m.HousingBonus, &out.HousingBonus},
		{"initial_quota", m.InitialQuota, &out.InitialQuota},
		{"disbursement_commission", m.DisbursementCommission, &out.DisbursementCommission},
		{"monthly_maintenance", m.MonthlyMaintenance, &out.MonthlyMaintenance},
		{"monthly_fees", m.MonthlyFees, &out.MonthlyFees},
		{"life_insurance_rate", m.LifeInsuranceRate, &out.LifeInsuranceRate},
		{"risk_insurance_rate", m.RiskInsuranceRate, &out.RiskInsuranceRate},
	}
	for _, f := range optional {
		if strings.TrimSpace(f.raw) == "" {
			continue
		}
		if *f.dst, err = requiredDecimal(f.name, f.raw); err != nil {
			return out, err
		}
	}

	if strings.TrimSpace(m.AnnualDiscountRate) != "" {
		rate, err := requiredDecimal("annual_discount_rate", m.AnnualDiscountRate)
		if err != nil {
			return out, err
		}
		out.AnnualDiscountRate = decimal.NewNullDecimal(rate)
	}
	return out, nil
}

func requiredDecimal(field, raw string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero, status.Errorf(codes.InvalidArgument, "invalid %s: %q", field, raw)
	}
	return d, nil
}

func toSimulationMsg(s dto.SimulationResponse) *SimulationMsg {
	msg := &SimulationMsg{
		ID:                     s.ID,
		ClientID:               s.ClientID,
		HouseID:                s.HouseID,
		ConfigID:               s.ConfigID,
		Currency:               s.Currency,
		SolverStatus:           s.SolverStatus,
		PropertyPrice:          s.PropertyPrice.StringFixed(2),
		InitialQuota:           s.InitialQuota.StringFixed(2),
		LoanAmount:             s.LoanAmount.StringFixed(2),
		FixedQuota:             s.FixedQuota.StringFixed(2),
		TCEA:                   s.TCEA.StringFixed(2),
		TIR:                    s.TIR.StringFixed(2),
		VAN:                    s.VAN.StringFixed(2),
		TotalInterest:          s.TotalInterest.StringFixed(2),
		TotalCreditCost:        s.TotalCreditCost.StringFixed(2),
		AdministrativeExpenses: s.AdministrativeExpenses.StringFixed(2),
		StartDate:              s.StartDate.Format(time.DateOnly),
		CreatedAt:              s.CreatedAt.Format(time.RFC3339),
		MonthlyIRR:             s.MonthlyIRR,
		SolverIterations:       int32(s.SolverIterations), //nolint:gosec // bounded by the solver
		TermMonths:             int32(s.TermMonths),       //nolint:gosec // validated positive term
		Cached:                 s.Cached,
	}
	if s.VANAtDiscountRate.Valid {
		msg.VANAtDiscountRate = s.VANAtDiscountRate.Decimal.StringFixed(2)
	}
	for _, r := range s.Schedule {
		msg.Schedule = append(msg.Schedule, &ScheduleRowMsg{
			Period:             int32(r.Period), //nolint:gosec // bounded by the term
			PaymentDate:        r.PaymentDate.Format(time.DateOnly),
			Payment:            r.Payment.StringFixed(2),
			Interest:           r.Interest.StringFixed(2),
			PrincipalAmortized: r.PrincipalAmortized.StringFixed(2),
			Balance:            r.Balance.StringFixed(2),
			InsuranceAndFees:   r.InsuranceAndFees.StringFixed(2),
		})
	}
	return msg
}
