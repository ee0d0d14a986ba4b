package driving

import (
	"context"

	"github.com/custodia-labs/seek/internal/core/domain"
)

// ReadmeService resolves READMEs for crates.
type ReadmeService interface {
	// Readme returns the README for c's repository.
	// Returns domain.ErrReadmeUnavailable if c has no supported repository.
	Readme(ctx context.Context, c domain.Crate) (string, error)
}
