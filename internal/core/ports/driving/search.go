package driving

import (
	"context"

	"github.com/custodia-labs/seek/internal/core/domain"
)

// SearchService runs single-flight searches across the enabled sources.
type SearchService interface {
	// Search cancels any running search and starts req in the background.
	// The outcome arrives on Events as SearchCompleted or SearchFailed.
	Search(req domain.SearchRequest)

	// Run executes req synchronously and returns the result.
	// It does not affect the current result set or the event stream.
	Run(ctx context.Context, req domain.SearchRequest) (*domain.ResultSet, error)

	// Current returns the result set of the last completed search, or nil.
	Current() *domain.ResultSet

	// Events returns the channel results and record updates are delivered on.
	Events() <-chan domain.Event

	// Close cancels outstanding work and closes the event channel.
	Close()
}

// HydrationService fetches extended metadata for the selected record.
type HydrationService interface {
	// RequestHydration debounces and then fetches details for the crate id,
	// superseding any pending request.
	RequestHydration(id string)

	// NeedsHydration returns true if c has not been enriched yet.
	NeedsHydration(c domain.Crate) bool

	// Cancel drops any pending hydration.
	Cancel()

	// Detail fetches full metadata for name immediately.
	Detail(ctx context.Context, name string) (*domain.CrateDetail, error)
}
