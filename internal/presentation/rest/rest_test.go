package rest

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric/noop"

	"github.com/bibbank/mortgage-simulator/internal/application/dto"
	"github.com/bibbank/mortgage-simulator/internal/application/usecase"
	"github.com/bibbank/mortgage-simulator/internal/domain/event"
	"github.com/bibbank/mortgage-simulator/internal/domain/model"
	"github.com/bibbank/mortgage-simulator/internal/domain/port"
	"github.com/bibbank/mortgage-simulator/internal/domain/service"
	"github.com/bibbank/mortgage-simulator/internal/infrastructure/cache"
	"github.com/bibbank/mortgage-simulator/internal/infrastructure/telemetry"
	"github.com/bibbank/mortgage-simulator/pkg/auth"
)

type memoryRepo struct {
	mu   sync.Mutex
	sims map[string]model.Simulation
}

func (m *memoryRepo) Save(_ context.Context, sim model.Simulation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sims == nil {
		m.sims = make(map[string]model.Simulation)
	}
	m.sims[sim.ID()] = sim
	return nil
}

func (m *memoryRepo) FindByID(_ context.Context, id string) (model.Simulation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sim, ok := m.sims[id]
	if !ok {
		return model.Simulation{}, port.ErrSimulationNotFound
	}
	return sim, nil
}

func (m *memoryRepo) FindByClientID(_ context.Context, clientID string) ([]model.Simulation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Simulation
	for _, sim := range m.sims {
		if sim.ClientID() == clientID {
			out = append(out, sim)
		}
	}
	return out, nil
}

type nopPublisher struct{}

func (nopPublisher) Publish(context.Context, ...event.DomainEvent) error { return nil }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

const testSecret = "rest-test-secret"

func newTestServer(t *testing.T) (*httptest.Server, *auth.JWTService) {
	t.Helper()
	jwtSvc, err := auth.NewJWTService(auth.JWTConfig{Secret: testSecret, Expiration: time.Minute})
	require.NoError(t, err)
	metrics, err := telemetry.NewSimulationMetrics(noop.NewMeterProvider())
	require.NoError(t, err)

	repo := &memoryRepo{}
	run := usecase.NewRunSimulationUseCase(repo, nopPublisher{}, cache.NewMemoryResultCache(0), metrics,
		service.NewMortgageCalculator(), discardLogger(), time.Minute)

	mux := http.NewServeMux()
	NewSimulationHandler(run, usecase.NewGetSimulationUseCase(repo), usecase.NewListSimulationsUseCase(repo), discardLogger()).
		RegisterRoutes(mux, func(next http.Handler) http.Handler { return auth.HTTPMiddleware(jwtSvc, next) })

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, jwtSvc
}

func do(t *testing.T, method, url, token, body string) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

const runBody = `{
	"client_id": "client-001",
	"house_id": "house-1",
	"property_price": "150000",
	"configuration": {
		"currency": "USD",
		"rate_type": "Nominal",
		"capitalization": "Mensual",
		"grace_period_policy": "Total",
		"grace_months": 2,
		"start_date": "2024-03-31",
		"rate_value": "9.5",
		"initial_quota": 15000,
		"monthly_maintenance": "5",
		"life_insurance_rate": "0.00025",
		"risk_insurance_rate": "0.0002",
		"annual_discount_rate": null,
		"term_months": 24
	}
}`

func TestSimulationRoutes(t *testing.T) {
	srv, jwtSvc := newTestServer(t)
	owner, err := jwtSvc.GenerateToken("u-1", "client-001", []string{auth.RoleClient})
	require.NoError(t, err)
	stranger, err := jwtSvc.GenerateToken("u-2", "client-002", []string{auth.RoleClient})
	require.NoError(t, err)

	resp, _ := do(t, http.MethodPost, srv.URL+"/api/v1/simulations", "", runBody)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = do(t, http.MethodPost, srv.URL+"/api/v1/simulations", stranger, runBody)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, body := do(t, http.MethodPost, srv.URL+"/api/v1/simulations", owner, runBody)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))

	var created dto.SimulationResponse
	require.NoError(t, json.Unmarshal(body, &created))
	assert.Equal(t, "/api/v1/simulations/"+created.ID, resp.Header.Get("Location"))
	assert.Len(t, created.Schedule, 24)
	assert.True(t, created.LoanAmount.Equal(created.PropertyPrice.Sub(created.InitialQuota)))
	assert.False(t, created.VANAtDiscountRate.Valid)
	// Total grace capitalizes interest into the balance.
	assert.True(t, created.Schedule[1].Balance.GreaterThan(created.LoanAmount))
	assert.True(t, created.Schedule[23].Balance.IsZero())

	resp, body = do(t, http.MethodGet, srv.URL+"/api/v1/simulations/"+created.ID, owner, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var fetched dto.SimulationResponse
	require.NoError(t, json.Unmarshal(body, &fetched))
	assert.True(t, created.TCEA.Equal(fetched.TCEA))

	resp, _ = do(t, http.MethodGet, srv.URL+"/api/v1/simulations/"+created.ID, stranger, "")
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, _ = do(t, http.MethodGet, srv.URL+"/api/v1/simulations/nope", owner, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, body = do(t, http.MethodGet, srv.URL+"/api/v1/simulations?client_id=client-001", owner, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list dto.ListSimulationsResponse
	require.NoError(t, json.Unmarshal(body, &list))
	require.Len(t, list.Simulations, 1)
	assert.Empty(t, list.Simulations[0].Schedule)
}

func TestRunSimulationRejections(t *testing.T) {
	srv, jwtSvc := newTestServer(t)
	advisor, err := jwtSvc.GenerateToken("adv", "", []string{auth.RoleAdvisor})
	require.NoError(t, err)

	tests := []struct {
		name string
		body string
		want int
	}{
		{"malformed json", `{"client_id":`, http.StatusBadRequest},
		{"unknown field", `{"client_id":"c","surprise":1}`, http.StatusBadRequest},
		{"unknown grace policy", strings.Replace(runBody, `"Total"`, `"Sometimes"`, 1), http.StatusBadRequest},
		{"non-positive rate", strings.Replace(runBody, `"9.5"`, `"0"`, 1), http.StatusBadRequest},
		{"grace longer than term", strings.Replace(runBody, `"grace_months": 2`, `"grace_months": 24`, 1), http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := do(t, http.MethodPost, srv.URL+"/api/v1/simulations", advisor, tt.body)
			assert.Equal(t, tt.want, resp.StatusCode, string(body))
			assert.Contains(t, string(body), `"error"`)
		})
	}
}

func TestHealthRoutes(t *testing.T) {
	healthy := func(context.Context) error { return nil }
	broken := func(context.Context) error { return errors.New("dial tcp: refused") }

	tests := []struct {
		name   string
		checks map[string]ReadinessCheck
		want   int
	}{
		{"no checks", nil, http.StatusOK},
		{"all healthy", map[string]ReadinessCheck{"postgres": healthy, "redis": healthy}, http.StatusOK},
		{"one broken", map[string]ReadinessCheck{"postgres": healthy, "redis": broken}, http.StatusServiceUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mux := http.NewServeMux()
			NewHealthHandler(discardLogger(), "mortgage-simulator", tt.checks).RegisterRoutes(mux)

			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
			assert.Equal(t, tt.want, rec.Code)
			assert.NotContains(t, rec.Body.String(), "refused")

			rec = httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Contains(t, rec.Body.String(), "mortgage-simulator")
		})
	}
}
