package search

import "errors"

// Error definitions for the search view.
var (
	// ErrNoSearchService indicates that no search service was provided.
	ErrNoSearchService = errors.New("search service is required")

	// ErrNoResults indicates that an action needs a selected crate.
	ErrNoResults = errors.New("no crate selected")
)
