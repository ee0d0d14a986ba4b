package services

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/custodia-labs/seek/internal/core/domain"
	"github.com/custodia-labs/seek/internal/core/ports/driven"
	"github.com/custodia-labs/seek/internal/core/ports/driving"
	"github.com/custodia-labs/seek/internal/logger"
)

// Ensure EnvironmentService implements the interface.
var _ driving.EnvironmentService = (*EnvironmentService)(nil)

// EnvironmentService holds the current environment snapshot. Readers get an
// immutable pointer; Refresh swaps in a new snapshot atomically.
type EnvironmentService struct {
	reader   driven.EnvironmentReader
	snapshot atomic.Pointer[domain.Environment]

	mu        sync.Mutex
	listeners []func(*domain.Environment)
}

// NewEnvironmentService creates a service with an empty snapshot.
// Call Refresh to load the environment.
func NewEnvironmentService(reader driven.EnvironmentReader) *EnvironmentService {
	s := &EnvironmentService{reader: reader}
	s.snapshot.Store(&domain.Environment{})
	return s
}

// OnRefresh registers fn to be called with every new snapshot.
func (s *EnvironmentService) OnRefresh(fn func(*domain.Environment)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// Snapshot returns the current snapshot.
func (s *EnvironmentService) Snapshot() *domain.Environment {
	return s.snapshot.Load()
}

// Refresh re-reads the environment. On failure the previous snapshot is kept.
func (s *EnvironmentService) Refresh(ctx context.Context) (*domain.Environment, error) {
	env, err := s.reader.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("read environment: %w", err)
	}
	if env == nil {
		env = &domain.Environment{}
	}
	s.snapshot.Store(env)

	packages := 0
	if env.Project != nil {
		packages = len(env.Project.Packages)
	}
	logger.Debug("Environment refreshed: %d packages, %d installed", packages, len(env.Installed))

	s.mu.Lock()
	listeners := append([]func(*domain.Environment){}, s.listeners...)
	s.mu.Unlock()
	for _, fn := range listeners {
		fn(env)
	}
	return env, nil
}
