package driven

import "context"

// ReadmeFetcher retrieves the README of a source repository.
type ReadmeFetcher interface {
	// Supports returns true if the repository URL is hosted where this fetcher can read it.
	Supports(repositoryURL string) bool

	// FetchReadme returns the README text.
	// Returns domain.ErrReadmeUnavailable if the repository has none.
	FetchReadme(ctx context.Context, repositoryURL string) (string, error)
}
