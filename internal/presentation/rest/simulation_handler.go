package rest

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/bibbank/mortgage-simulator/internal/application/dto"
	"github.com/bibbank/mortgage-simulator/internal/application/usecase"
	"github.com/bibbank/mortgage-simulator/internal/domain/model"
	"github.com/bibbank/mortgage-simulator/internal/domain/port"
	"github.com/bibbank/mortgage-simulator/internal/infrastructure/persistence/postgres"
	"github.com/bibbank/mortgage-simulator/pkg/auth"
)

const maxRequestBytes = 1 << 20

// SimulationHandler exposes the simulator over JSON/HTTP.
type SimulationHandler struct {
	run    *usecase.RunSimulationUseCase
	get    *usecase.GetSimulationUseCase
	list   *usecase.ListSimulationsUseCase
	logger *slog.Logger
}

func NewSimulationHandler(
	run *usecase.RunSimulationUseCase,
	get *usecase.GetSimulationUseCase,
	list *usecase.ListSimulationsUseCase,
	logger *slog.Logger,
) *SimulationHandler {
	return &SimulationHandler{run: run, get: get, list: list, logger: logger}
}

// RegisterRoutes mounts the API under /api/v1. wrap is applied to every
// route and is expected to authenticate the caller.
func (h *SimulationHandler) RegisterRoutes(mux *http.ServeMux, wrap func(http.Handler) http.Handler) {
	mux.Handle("POST /api/v1/simulations", wrap(http.HandlerFunc(h.runSimulation)))
	mux.Handle("GET /api/v1/simulations", wrap(http.HandlerFunc(h.listSimulations)))
	mux.Handle("GET /api/v1/simulations/{id}", wrap(http.HandlerFunc(h.getSimulation)))
}

func (h *SimulationHandler) runSimulation(w http.ResponseWriter, r *http.Request) {
	var req dto.RunSimulationRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}
	if !authorized(w, r.Context(), req.ClientID) {
		return
	}

	resp, err := h.run.Execute(r.Context(), req)
	if err != nil {
		h.writeUseCaseError(w, r, err)
		return
	}
	w.Header().Set("Location", "/api/v1/simulations/"+resp.ID)
	writeJSON(w, http.StatusCreated, resp)
}

func (h *SimulationHandler) getSimulation(w http.ResponseWriter, r *http.Request) {
	resp, err := h.get.Execute(r.Context(), dto.GetSimulationRequest{SimulationID: r.PathValue("id")})
	if err != nil {
		h.writeUseCaseError(w, r, err)
		return
	}
	if !authorized(w, r.Context(), resp.ClientID) {
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *SimulationHandler) listSimulations(w http.ResponseWriter, r *http.Request) {
	clientID := r.URL.Query().Get("client_id")
	if !authorized(w, r.Context(), clientID) {
		return
	}

	resp, err := h.list.Execute(r.Context(), dto.ListSimulationsRequest{ClientID: clientID})
	if err != nil {
		h.writeUseCaseError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func authorized(w http.ResponseWriter, ctx context.Context, clientID string) bool {
	claims, ok := auth.ClaimsFromContext(ctx)
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return false
	}
	if !claims.CanAccessClient(clientID) {
		writeError(w, http.StatusForbidden, "insufficient permissions")
		return false
	}
	return true
}

func (h *SimulationHandler) writeUseCaseError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, model.ErrInvalidConfiguration), errors.Is(err, model.ErrInvalidSimulation):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, port.ErrSimulationNotFound):
		writeError(w, http.StatusNotFound, "simulation not found")
	case errors.Is(err, postgres.ErrSimulationExists):
		writeError(w, http.StatusConflict, err.Error())
	default:
		h.logger.ErrorContext(r.Context(), "simulator request failed",
			"method", r.Method, "path", r.URL.Path, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
