package driven

import (
	"context"

	"github.com/custodia-labs/seek/internal/core/domain"
)

// RegistryClient talks to the remote package registry.
// All calls share one rate gate; waiting callers queue instead of failing.
type RegistryClient interface {
	// Search returns one server-side page of matching crates.
	Search(ctx context.Context, q RegistryQuery) (*RegistryPage, error)

	// GetCrate returns the full metadata for one crate.
	// Returns domain.ErrNotFound if the crate does not exist.
	GetCrate(ctx context.Context, name string) (*domain.CrateDetail, error)
}

// RegistryQuery is a paginated registry search.
type RegistryQuery struct {
	Term    string
	Sort    domain.Sort
	Page    int
	PerPage int
}

// RegistryPage is one page of registry results.
type RegistryPage struct {
	// Crates holds the records on this page, none of them hydrated.
	Crates []domain.Crate

	// Total is the server-reported number of matches across all pages.
	Total int
}
