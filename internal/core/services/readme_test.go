package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/seek/internal/core/domain"
)

type fakeReadmeFetcher struct {
	host  string
	text  string
	calls []string
}

func (f *fakeReadmeFetcher) Supports(repositoryURL string) bool {
	return strings.Contains(repositoryURL, f.host)
}

func (f *fakeReadmeFetcher) FetchReadme(_ context.Context, repositoryURL string) (string, error) {
	f.calls = append(f.calls, repositoryURL)
	return f.text, nil
}

func TestReadmeService_UsesRepository(t *testing.T) {
	fetcher := &fakeReadmeFetcher{host: "github.com", text: "# serde"}
	s := NewReadmeService(nil, fetcher)

	text, err := s.Readme(context.Background(), domain.Crate{ID: "serde", Repository: "https://github.com/serde-rs/serde", Hydrated: true})

	require.NoError(t, err)
	assert.Equal(t, "# serde", text)
	assert.Equal(t, []string{"https://github.com/serde-rs/serde"}, fetcher.calls)
}

func TestReadmeService_LooksUpRepositoryForUnhydratedCrate(t *testing.T) {
	registry := &fakeRegistry{
		GetCrateFunc: func(_ context.Context, name string) (*domain.CrateDetail, error) {
			return &domain.CrateDetail{ID: name, Repository: "https://github.com/tokio-rs/tokio"}, nil
		},
	}
	fetcher := &fakeReadmeFetcher{host: "github.com", text: "tokio"}
	s := NewReadmeService(registry, fetcher)

	text, err := s.Readme(context.Background(), domain.Crate{ID: "tokio"})

	require.NoError(t, err)
	assert.Equal(t, "tokio", text)
	assert.Equal(t, []string{"tokio"}, registry.GetCalls())
}

func TestReadmeService_Unavailable(t *testing.T) {
	s := NewReadmeService(nil, &fakeReadmeFetcher{host: "github.com"})

	_, err := s.Readme(context.Background(), domain.Crate{ID: "x", Hydrated: true})
	assert.ErrorIs(t, err, domain.ErrReadmeUnavailable)

	_, err = s.Readme(context.Background(), domain.Crate{ID: "x", Repository: "https://gitlab.com/a/b"})
	assert.ErrorIs(t, err, domain.ErrReadmeUnavailable)
}
