package tui

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/seek/internal/core/domain"
	"github.com/custodia-labs/seek/internal/core/ports/driving"
)

// MockSearchService implements driving.SearchService for testing.
type MockSearchService struct {
	requests []domain.SearchRequest
	events   chan domain.Event
}

func newMockSearchService() *MockSearchService {
	return &MockSearchService{events: make(chan domain.Event, 8)}
}

func (m *MockSearchService) Search(req domain.SearchRequest) {
	m.requests = append(m.requests, req)
}

func (m *MockSearchService) Run(_ context.Context, req domain.SearchRequest) (*domain.ResultSet, error) {
	return domain.NewResultSet("run", req, nil, 0), nil
}

func (m *MockSearchService) Current() *domain.ResultSet { return nil }

func (m *MockSearchService) Events() <-chan domain.Event { return m.events }

func (m *MockSearchService) Close() { close(m.events) }

// MockHydrationService implements driving.HydrationService for testing.
type MockHydrationService struct {
	requested []string
}

func (m *MockHydrationService) RequestHydration(id string) {
	m.requested = append(m.requested, id)
}

func (m *MockHydrationService) NeedsHydration(c domain.Crate) bool { return !c.Hydrated }

func (m *MockHydrationService) Cancel() {}

func (m *MockHydrationService) Detail(_ context.Context, name string) (*domain.CrateDetail, error) {
	return &domain.CrateDetail{ID: name, Name: name}, nil
}

// MockReadmeService implements driving.ReadmeService for testing.
type MockReadmeService struct {
	text string
	err  error
}

func (m *MockReadmeService) Readme(context.Context, domain.Crate) (string, error) {
	return m.text, m.err
}

// MockEnvironmentService implements driving.EnvironmentService for testing.
type MockEnvironmentService struct {
	env *domain.Environment
}

func (m *MockEnvironmentService) Snapshot() *domain.Environment { return m.env }

func (m *MockEnvironmentService) Refresh(context.Context) (*domain.Environment, error) {
	return m.env, nil
}

var (
	_ driving.SearchService      = (*MockSearchService)(nil)
	_ driving.HydrationService   = (*MockHydrationService)(nil)
	_ driving.ReadmeService      = (*MockReadmeService)(nil)
	_ driving.EnvironmentService = (*MockEnvironmentService)(nil)
)

func TestPorts_Validate(t *testing.T) {
	tests := []struct {
		name    string
		ports   *Ports
		wantErr error
	}{
		{"nil ports", nil, ErrInvalidPorts},
		{"missing search", &Ports{Hydration: &MockHydrationService{}}, ErrMissingSearchService},
		{"missing hydration", &Ports{Search: newMockSearchService()}, ErrMissingHydrationService},
		{"required only", &Ports{Search: newMockSearchService(), Hydration: &MockHydrationService{}}, nil},
		{"all ports", &Ports{
			Search:      newMockSearchService(),
			Hydration:   &MockHydrationService{},
			Environment: &MockEnvironmentService{env: &domain.Environment{}},
			Readme:      &MockReadmeService{},
		}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.ports.Validate()
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
