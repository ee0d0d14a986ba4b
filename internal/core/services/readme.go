package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/seek/internal/core/domain"
	"github.com/custodia-labs/seek/internal/core/ports/driven"
	"github.com/custodia-labs/seek/internal/core/ports/driving"
	"github.com/custodia-labs/seek/internal/logger"
)

// Ensure ReadmeService implements the interface.
var _ driving.ReadmeService = (*ReadmeService)(nil)

// ReadmeService resolves a crate's repository and fetches its README from
// the first fetcher that supports the host.
type ReadmeService struct {
	registry driven.RegistryClient
	fetchers []driven.ReadmeFetcher
}

// NewReadmeService creates a readme service. registry is optional and is
// used to look up the repository of records that are not hydrated yet.
func NewReadmeService(registry driven.RegistryClient, fetchers ...driven.ReadmeFetcher) *ReadmeService {
	return &ReadmeService{registry: registry, fetchers: fetchers}
}

// Readme returns the README text for c.
func (s *ReadmeService) Readme(ctx context.Context, c domain.Crate) (string, error) {
	repo := c.Repository
	if repo == "" && !c.Hydrated && s.registry != nil {
		detail, err := s.registry.GetCrate(ctx, c.ID)
		if err != nil {
			return "", fmt.Errorf("lookup repository for %s: %w", c.ID, err)
		}
		repo = detail.Repository
	}
	if repo == "" {
		return "", fmt.Errorf("%w: %s has no repository", domain.ErrReadmeUnavailable, c.ID)
	}

	for _, f := range s.fetchers {
		if !f.Supports(repo) {
			continue
		}
		logger.Debug("Fetching README for %s from %s", c.ID, repo)
		text, err := f.FetchReadme(ctx, repo)
		if err != nil {
			return "", fmt.Errorf("readme for %s: %w", c.ID, err)
		}
		return text, nil
	}
	return "", fmt.Errorf("%w: unsupported repository host %s", domain.ErrReadmeUnavailable, repo)
}
