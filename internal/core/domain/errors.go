package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrSourceUnavailable indicates a search source could not be queried.
	// Only the registry can produce it (network, timeout or decoding failure).
	// It aborts the whole search attempt.
	ErrSourceUnavailable = errors.New("source unavailable")

	// ErrHydrationFailed indicates extended metadata could not be fetched.
	// It is logged and never shown to the user.
	ErrHydrationFailed = errors.New("hydration failed")

	// ErrRateLimited indicates the registry rejected a request for exceeding its rate limit.
	ErrRateLimited = errors.New("rate limited")

	// ErrNoProject indicates no Cargo manifest was found at or above the project directory.
	ErrNoProject = errors.New("no cargo project found")

	// ErrReadmeUnavailable indicates the repository has no README that can be fetched.
	ErrReadmeUnavailable = errors.New("readme unavailable")
)
