package driven

import (
	"context"

	"github.com/custodia-labs/seek/internal/core/domain"
)

// SearchSource is one place crates can be found.
// Sources are consulted in domain.SourcePriority order.
type SearchSource interface {
	// Kind identifies the source.
	Kind() domain.SourceKind

	// Fetch returns at most q.Quota matching records and the total number
	// of matches the source knows about. A quota of zero still reports the total.
	Fetch(ctx context.Context, q SourceQuery) (SourceResult, error)
}

// SourceQuery is the input to SearchSource.Fetch.
type SourceQuery struct {
	// Request is the search being served.
	Request domain.SearchRequest

	// Quota is the number of records the page still has room for.
	Quota int

	// Env is the environment snapshot taken when the search started.
	Env *domain.Environment
}

// SourceResult is the output of SearchSource.Fetch.
type SourceResult struct {
	// Records holds at most Quota records.
	Records []domain.Crate

	// Total is the source's full match count, independent of Quota.
	Total int
}
