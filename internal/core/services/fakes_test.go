package services

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/custodia-labs/seek/internal/core/domain"
	"github.com/custodia-labs/seek/internal/core/ports/driven"
	"github.com/custodia-labs/seek/internal/core/ports/driving"
)

const eventTimeout = 2 * time.Second

// --- Mock implementations ---

// fakeRegistry implements driven.RegistryClient for testing.
type fakeRegistry struct {
	SearchFunc   func(ctx context.Context, q driven.RegistryQuery) (*driven.RegistryPage, error)
	GetCrateFunc func(ctx context.Context, name string) (*domain.CrateDetail, error)

	mu          sync.Mutex
	searchCalls []driven.RegistryQuery
	getCalls    []string
}

func (f *fakeRegistry) Search(ctx context.Context, q driven.RegistryQuery) (*driven.RegistryPage, error) {
	f.mu.Lock()
	f.searchCalls = append(f.searchCalls, q)
	f.mu.Unlock()
	if f.SearchFunc != nil {
		return f.SearchFunc(ctx, q)
	}
	return &driven.RegistryPage{}, nil
}

func (f *fakeRegistry) GetCrate(ctx context.Context, name string) (*domain.CrateDetail, error) {
	f.mu.Lock()
	f.getCalls = append(f.getCalls, name)
	f.mu.Unlock()
	if f.GetCrateFunc != nil {
		return f.GetCrateFunc(ctx, name)
	}
	return &domain.CrateDetail{ID: name, Name: name, MaxVersion: "1.0.0"}, nil
}

func (f *fakeRegistry) SearchCalls() []driven.RegistryQuery {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]driven.RegistryQuery{}, f.searchCalls...)
}

func (f *fakeRegistry) GetCalls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string{}, f.getCalls...)
}

// fakeSource implements driven.SearchSource for testing.
type fakeSource struct {
	kind      domain.SourceKind
	FetchFunc func(ctx context.Context, q driven.SourceQuery) (driven.SourceResult, error)

	mu    sync.Mutex
	calls []driven.SourceQuery
}

func (f *fakeSource) Kind() domain.SourceKind { return f.kind }

func (f *fakeSource) Fetch(ctx context.Context, q driven.SourceQuery) (driven.SourceResult, error) {
	f.mu.Lock()
	f.calls = append(f.calls, q)
	f.mu.Unlock()
	if f.FetchFunc != nil {
		return f.FetchFunc(ctx, q)
	}
	return driven.SourceResult{}, nil
}

func (f *fakeSource) Calls() []driven.SourceQuery {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]driven.SourceQuery{}, f.calls...)
}

// staticEnvironment implements driving.EnvironmentService with a fixed snapshot.
type staticEnvironment struct {
	env *domain.Environment
}

var _ driving.EnvironmentService = (*staticEnvironment)(nil)

func (s *staticEnvironment) Snapshot() *domain.Environment { return s.env }

func (s *staticEnvironment) Refresh(context.Context) (*domain.Environment, error) {
	return s.env, nil
}

func envWith(deps []domain.Dependency, installed []domain.InstalledBinary) *staticEnvironment {
	return &staticEnvironment{env: &domain.Environment{
		Project:   &domain.Project{Packages: []domain.Package{{Name: "app", Dependencies: deps}}},
		Installed: installed,
	}}
}

func registryCrates(prefix string, n int) []domain.Crate {
	out := make([]domain.Crate, n)
	for i := range out {
		name := fmt.Sprintf("%s-%d", prefix, i)
		out[i] = domain.Crate{ID: name, Name: name, Version: "0.1.0"}
	}
	return out
}

func waitEvent(t *testing.T, events <-chan domain.Event) domain.Event {
	t.Helper()
	select {
	case e := <-events:
		return e
	case <-time.After(eventTimeout):
		t.Fatal("timed out waiting for event")
		return nil
	}
}

func expectNoEvent(t *testing.T, events <-chan domain.Event, wait time.Duration) {
	t.Helper()
	select {
	case e := <-events:
		t.Fatalf("unexpected event %T", e)
	case <-time.After(wait):
	}
}

func waitCompleted(t *testing.T, events <-chan domain.Event) *domain.ResultSet {
	t.Helper()
	e := waitEvent(t, events)
	done, ok := e.(domain.SearchCompleted)
	if !ok {
		t.Fatalf("expected SearchCompleted, got %T (%+v)", e, e)
	}
	return done.Results
}
