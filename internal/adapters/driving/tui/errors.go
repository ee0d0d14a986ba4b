package tui

import "errors"

// ErrMissingSearchService is returned when the search service is not provided.
var ErrMissingSearchService = errors.New("tui: search service is required")

// ErrMissingHydrationService is returned when the hydration service is not provided.
var ErrMissingHydrationService = errors.New("tui: hydration service is required")

// ErrInvalidPorts is returned when no ports are given.
var ErrInvalidPorts = errors.New("tui: invalid ports configuration")
