package services

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/custodia-labs/seek/internal/core/domain"
	"github.com/custodia-labs/seek/internal/core/ports/driven"
	"github.com/custodia-labs/seek/internal/core/ports/driving"
	"github.com/custodia-labs/seek/internal/logger"
)

// Ensure SearchOrchestrator implements the interface.
var _ driving.SearchService = (*SearchOrchestrator)(nil)

// SearchOrchestrator runs searches across the enabled sources, one at a time.
// Starting a search cancels the previous one; only the latest live search
// emits a result.
type SearchOrchestrator struct {
	sources  []driven.SearchSource
	env      driving.EnvironmentService
	pageSize int
	newID    func() string

	base     context.Context
	stop     context.CancelFunc
	mailbox  *mailbox
	inflight sync.WaitGroup

	// mu guards everything below. It is never held while calling a source
	// or the hydration service.
	mu        sync.Mutex
	handle    *CancellationHandle
	current   *domain.ResultSet
	hydration driving.HydrationService
}

// NewSearchOrchestrator creates an orchestrator over sources. Sources are
// consulted in domain.SourcePriority order regardless of argument order.
func NewSearchOrchestrator(env driving.EnvironmentService, sources ...driven.SearchSource) *SearchOrchestrator {
	ordered := slices.Clone(sources)
	slices.SortStableFunc(ordered, func(a, b driven.SearchSource) int {
		return priorityOf(a.Kind()) - priorityOf(b.Kind())
	})

	base, stop := context.WithCancel(context.Background())
	return &SearchOrchestrator{
		sources:  ordered,
		env:      env,
		pageSize: domain.DefaultPageSize,
		newID:    uuid.NewString,
		base:     base,
		stop:     stop,
		mailbox:  newMailbox(),
	}
}

// SetPageSize sets the page size used when a request leaves it unset.
func (o *SearchOrchestrator) SetPageSize(n int) {
	if n <= 0 {
		return
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	o.pageSize = n
}

func (o *SearchOrchestrator) normalize(req domain.SearchRequest) domain.SearchRequest {
	o.mu.Lock()
	size := o.pageSize
	o.mu.Unlock()
	return req.Normalize(size)
}

// SetHydrationService sets the hydration service cancelled by every new search.
func (o *SearchOrchestrator) SetHydrationService(h driving.HydrationService) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.hydration = h
}

// Search cancels the running search and any pending hydration, then runs
// req in the background.
func (o *SearchOrchestrator) Search(req domain.SearchRequest) {
	req = o.normalize(req)
	id := o.newID()

	o.mu.Lock()
	o.handle.Cancel()
	h := NewCancellationHandle(o.base)
	o.handle = h
	hydration := o.hydration
	o.mu.Unlock()

	if hydration != nil {
		hydration.Cancel()
	}

	logger.Debug("Search %s: term=%q scope=%s sort=%s page=%d", id, req.Term, req.Scope, req.Sort, req.Page)

	o.inflight.Add(1)
	go func() {
		defer o.inflight.Done()
		rs, err := o.execute(h.Context(), id, req)
		o.deliver(h, id, req, rs, err)
	}()
}

// Run executes req synchronously. It does not touch the current result set
// or emit events.
func (o *SearchOrchestrator) Run(ctx context.Context, req domain.SearchRequest) (*domain.ResultSet, error) {
	req = o.normalize(req)
	return o.execute(ctx, o.newID(), req)
}

// Current returns the result set of the last completed search, or nil.
func (o *SearchOrchestrator) Current() *domain.ResultSet {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.current
}

// Events returns the channel results are delivered on.
func (o *SearchOrchestrator) Events() <-chan domain.Event {
	return o.mailbox.events()
}

// ApplyEnvironment re-annotates the current result set after the project
// or installed binaries changed.
func (o *SearchOrchestrator) ApplyEnvironment(env *domain.Environment) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.current != nil {
		o.current.Annotate(env)
	}
	o.mailbox.push(domain.EnvironmentRefreshed{Environment: env})
}

// Close cancels the running search, waits for it to exit and closes the
// event channel.
func (o *SearchOrchestrator) Close() {
	o.mu.Lock()
	o.handle.Cancel()
	o.mu.Unlock()

	o.stop()
	o.inflight.Wait()
	o.mailbox.close()
}

// applyHydration merges detail into the current result set and emits
// CrateHydrated. It returns false when no current record has the id.
func (o *SearchOrchestrator) applyHydration(id string, detail *domain.CrateDetail) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	rs := o.current
	if rs == nil || !rs.Hydrate(id, detail) {
		return false
	}
	o.mailbox.push(domain.CrateHydrated{SearchID: rs.SearchID, CrateID: id, Detail: detail})
	return true
}

// execute runs the source pipeline for one request.
func (o *SearchOrchestrator) execute(ctx context.Context, id string, req domain.SearchRequest) (*domain.ResultSet, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	env := o.env.Snapshot()
	remaining := req.PageSize
	total := 0
	var records []domain.Crate

	for _, src := range o.sources {
		if !req.Scope.Includes(src.Kind()) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		res, err := src.Fetch(ctx, driven.SourceQuery{Request: req, Quota: remaining, Env: env})
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		if err != nil {
			if !errors.Is(err, domain.ErrSourceUnavailable) {
				err = fmt.Errorf("%w: %w", domain.ErrSourceUnavailable, err)
			}
			return nil, fmt.Errorf("%s source: %w", src.Kind(), err)
		}

		total += res.Total
		take := min(remaining, len(res.Records))
		records = append(records, res.Records[:take]...)
		remaining -= take

		logger.Debug("Search %s: %s matched %d, kept %d, quota left %d", id, src.Kind(), res.Total, take, remaining)
	}

	records = Deduplicate(records)
	Annotate(records, env)
	return domain.NewResultSet(id, req, records, total), nil
}

// deliver publishes the outcome of a search if it is still the live one.
// The liveness check and the publish happen under one lock so a superseded
// search can never emit after its successor started.
func (o *SearchOrchestrator) deliver(h *CancellationHandle, id string, req domain.SearchRequest, rs *domain.ResultSet, err error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.handle != h || h.Cancelled() {
		logger.Debug("Search %s superseded, discarding", id)
		return
	}

	if err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		logger.Warn("Search %s failed: %v", id, err)
		o.mailbox.push(domain.SearchFailed{SearchID: id, Request: req, Err: err})
		return
	}

	logger.Info("Search %s: %d records, %d total", id, rs.Len(), rs.TotalCount)
	o.current = rs
	o.mailbox.push(domain.SearchCompleted{Results: rs})
}

func priorityOf(kind domain.SourceKind) int {
	if i := slices.Index(domain.SourcePriority(), kind); i >= 0 {
		return i
	}
	return len(domain.SourcePriority())
}
