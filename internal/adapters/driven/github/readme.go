package github

import (
	"context"
	"fmt"

	"github.com/custodia-labs/seek/internal/core/ports/driven"
	"github.com/custodia-labs/seek/internal/logger"
)

// Ensure Client implements the interface.
var _ driven.ReadmeFetcher = (*Client)(nil)

// Supports returns true for GitHub repository URLs.
func (c *Client) Supports(repositoryURL string) bool {
	_, _, ok := ParseRepositoryURL(repositoryURL)
	return ok
}

// FetchReadme returns the README of the repository at repositoryURL.
func (c *Client) FetchReadme(ctx context.Context, repositoryURL string) (string, error) {
	owner, repo, ok := ParseRepositoryURL(repositoryURL)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrNotGitHub, repositoryURL)
	}

	text, err := c.GetReadme(ctx, owner, repo)
	if err != nil {
		return "", err
	}
	logger.Debug("fetched README for %s/%s (%d bytes, %d requests left)", owner, repo, len(text), c.rateLimiter.Remaining())
	return text, nil
}
