package usecase_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/bibbank/mortgage-simulator/internal/domain/event"
	"github.com/bibbank/mortgage-simulator/internal/domain/model"
	"github.com/bibbank/mortgage-simulator/internal/domain/port"
	"github.com/bibbank/mortgage-simulator/internal/domain/valueobject"
)

// --- Mock implementations ---

type mockSimulationRepository struct {
	saveFunc           func(ctx context.Context, sim model.Simulation) error
	findByIDFunc       func(ctx context.Context, id string) (model.Simulation, error)
	findByClientIDFunc func(ctx context.Context, clientID string) ([]model.Simulation, error)
	saved              []model.Simulation
}

func (m *mockSimulationRepository) Save(ctx context.Context, sim model.Simulation) error {
	if m.saveFunc != nil {
		return m.saveFunc(ctx, sim)
	}
	m.saved = append(m.saved, sim)
	return nil
}

func (m *mockSimulationRepository) FindByID(ctx context.Context, id string) (model.Simulation, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return model.Simulation{}, port.ErrSimulationNotFound
}

func (m *mockSimulationRepository) FindByClientID(ctx context.Context, clientID string) ([]model.Simulation, error) {
	if m.findByClientIDFunc != nil {
		return m.findByClientIDFunc(ctx, clientID)
	}
	return nil, nil
}

type mockEventPublisher struct {
	publishFunc     func(ctx context.Context, events ...event.DomainEvent) error
	publishedEvents []event.DomainEvent
}

func (m *mockEventPublisher) Publish(ctx context.Context, evts ...event.DomainEvent) error {
	if m.publishFunc != nil {
		return m.publishFunc(ctx, evts...)
	}
	m.publishedEvents = append(m.publishedEvents, evts...)
	return nil
}

type mockResultCache struct {
	getFunc func(ctx context.Context, key string) (model.SimulationResult, bool, error)
	setFunc func(ctx context.Context, key string, result model.SimulationResult, ttl time.Duration) error
	entries map[string]model.SimulationResult
	ttls    []time.Duration
}

func (m *mockResultCache) Get(ctx context.Context, key string) (model.SimulationResult, bool, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, key)
	}
	res, ok := m.entries[key]
	return res, ok, nil
}

func (m *mockResultCache) Set(ctx context.Context, key string, result model.SimulationResult, ttl time.Duration) error {
	if m.setFunc != nil {
		return m.setFunc(ctx, key, result, ttl)
	}
	if m.entries == nil {
		m.entries = make(map[string]model.SimulationResult)
	}
	m.entries[key] = result
	m.ttls = append(m.ttls, ttl)
	return nil
}

type mockRecorder struct {
	mu        sync.Mutex
	outcomes  []string
	statuses  []valueobject.SolverStatus
	cacheHits int
}

func (m *mockRecorder) RecordRun(_ context.Context, outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.outcomes = append(m.outcomes, outcome)
}

func (m *mockRecorder) RecordSolver(_ context.Context, status valueobject.SolverStatus, _ int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.statuses = append(m.statuses, status)
}

func (m *mockRecorder) RecordCacheHit(_ context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cacheHits++
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
