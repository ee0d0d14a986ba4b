package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/custodia-labs/seek/internal/core/domain"
	"github.com/custodia-labs/seek/internal/core/ports/driven"
	"github.com/custodia-labs/seek/internal/core/ports/driving"
	"github.com/custodia-labs/seek/internal/logger"
)

// Ensure HydrationService implements the interface.
var _ driving.HydrationService = (*HydrationService)(nil)

// HydrationService fetches extended metadata for the selected record after
// a debounce, and merges it into the orchestrator's current result set.
// At most one hydration is pending at a time.
type HydrationService struct {
	registry     driven.RegistryClient
	orchestrator *SearchOrchestrator
	delay        time.Duration

	inflight sync.WaitGroup

	mu     sync.Mutex
	handle *CancellationHandle
}

// NewHydrationService creates a hydration service and registers it with
// orchestrator so that every new search cancels pending hydration.
func NewHydrationService(
	registry driven.RegistryClient,
	orchestrator *SearchOrchestrator,
	delay time.Duration,
) *HydrationService {
	s := &HydrationService{
		registry:     registry,
		orchestrator: orchestrator,
		delay:        delay,
	}
	orchestrator.SetHydrationService(s)
	return s
}

// RequestHydration supersedes any pending hydration and schedules a fetch
// for id once the debounce delay elapses.
func (s *HydrationService) RequestHydration(id string) {
	s.mu.Lock()
	s.handle.Cancel()
	h := NewCancellationHandle(context.Background())
	s.handle = h
	s.mu.Unlock()

	s.inflight.Add(1)
	go func() {
		defer s.inflight.Done()
		s.run(h, id)
	}()
}

// NeedsHydration returns true if c has not been enriched yet.
func (s *HydrationService) NeedsHydration(c domain.Crate) bool {
	return !c.Hydrated
}

// Cancel drops any pending hydration.
func (s *HydrationService) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handle.Cancel()
	s.handle = nil
}

// Detail fetches full metadata for name without debounce or merging.
func (s *HydrationService) Detail(ctx context.Context, name string) (*domain.CrateDetail, error) {
	detail, err := s.registry.GetCrate(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("crate %s: %w", name, err)
	}
	return detail, nil
}

// Close cancels pending hydration and waits for it to exit.
func (s *HydrationService) Close() {
	s.Cancel()
	s.inflight.Wait()
}

func (s *HydrationService) run(h *CancellationHandle, id string) {
	timer := time.NewTimer(s.delay)
	defer timer.Stop()

	select {
	case <-h.Done():
		logger.Debug("Hydration of %s superseded before fetch", id)
		return
	case <-timer.C:
	}

	detail, err := s.registry.GetCrate(h.Context(), id)
	if h.Cancelled() {
		logger.Debug("Hydration of %s superseded after fetch", id)
		return
	}
	if err != nil {
		logger.Warn("%v", fmt.Errorf("%w: %s: %w", domain.ErrHydrationFailed, id, err))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.handle != h {
		return
	}
	if !s.orchestrator.applyHydration(id, detail) {
		logger.Debug("Hydration of %s dropped, record no longer current", id)
	}
	s.handle = nil
	h.Cancel()
}
