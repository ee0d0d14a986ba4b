package driven

import (
	"context"

	"github.com/custodia-labs/seek/internal/core/domain"
)

// EnvironmentReader loads the local state searches are annotated against.
type EnvironmentReader interface {
	// Read returns a fresh snapshot. A missing project is not an error:
	// the snapshot's Project is nil.
	Read(ctx context.Context) (*domain.Environment, error)
}

// EnvironmentWatcher reports changes to the files an EnvironmentReader reads.
type EnvironmentWatcher interface {
	// Watch calls onChange after each change until ctx is cancelled.
	Watch(ctx context.Context, onChange func()) error
}
