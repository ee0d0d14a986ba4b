package driving

import (
	"context"

	"github.com/custodia-labs/seek/internal/core/domain"
)

// EnvironmentService owns the current environment snapshot.
type EnvironmentService interface {
	// Snapshot returns the current snapshot. It is never nil.
	Snapshot() *domain.Environment

	// Refresh re-reads the environment and swaps the snapshot.
	Refresh(ctx context.Context) (*domain.Environment, error)
}
