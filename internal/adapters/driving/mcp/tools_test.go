package mcp

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/seek/internal/core/domain"
)

func TestServer_handleSearch(t *testing.T) {
	ctx := context.Background()

	t.Run("returns crates", func(t *testing.T) {
		updated := time.Date(2025, 3, 9, 20, 0, 0, 0, time.UTC)
		search := &mockSearchService{
			records: []domain.Crate{
				{ID: "serde", Name: "serde", Version: "1.0.219", Downloads: u64(500), UpdatedAt: &updated, ExactMatch: true, ProjectVersion: "1.0"},
				{ID: "serde_json", Name: "serde_json", Version: "1.0.140"},
			},
			total: 45,
		}
		server, err := NewServer(&Ports{Search: search})
		require.NoError(t, err)

		_, output, err := server.handleSearch(ctx, nil, SearchInput{Query: "serde", Scope: "all", Sort: "recent-downloads", Page: 2, PerPage: 2})

		require.NoError(t, err)
		assert.Equal(t, domain.SearchRequest{Term: "serde", Scope: domain.ScopeAll, Sort: domain.SortRecentDownloads, Page: 2, PageSize: 2}, search.lastReq)
		assert.Equal(t, 45, output.Total)
		assert.Equal(t, 2, output.Page)
		assert.Equal(t, 23, output.PageCount)
		require.Len(t, output.Crates, 2)
		assert.Equal(t, "serde", output.Crates[0].Name)
		assert.Equal(t, uint64(500), output.Crates[0].Downloads)
		assert.Equal(t, "2025-03-09T20:00:00Z", output.Crates[0].UpdatedAt)
		assert.True(t, output.Crates[0].ExactMatch)
		assert.Equal(t, "1.0", output.Crates[0].ProjectVersion)
	})

	t.Run("applies default and maximum page size", func(t *testing.T) {
		search := &mockSearchService{}
		server, err := NewServer(&Ports{Search: search})
		require.NoError(t, err)

		_, _, err = server.handleSearch(ctx, nil, SearchInput{Query: "x"})
		require.NoError(t, err)
		assert.Equal(t, defaultPerPage, search.lastReq.PageSize)

		_, _, err = server.handleSearch(ctx, nil, SearchInput{Query: "x", PerPage: 5000})
		require.NoError(t, err)
		assert.Equal(t, maxPerPage, search.lastReq.PageSize)
	})

	t.Run("rejects unknown scope", func(t *testing.T) {
		server, err := NewServer(&Ports{Search: &mockSearchService{}})
		require.NoError(t, err)

		_, _, err = server.handleSearch(ctx, nil, SearchInput{Query: "x", Scope: "mars"})

		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("returns error on search failure", func(t *testing.T) {
		server, err := NewServer(&Ports{Search: &mockSearchService{err: domain.ErrSourceUnavailable}})
		require.NoError(t, err)

		_, _, err = server.handleSearch(ctx, nil, SearchInput{Query: "x"})

		assert.ErrorIs(t, err, domain.ErrSourceUnavailable)
	})
}

func TestServer_handleCrateInfo(t *testing.T) {
	ctx := context.Background()
	detail := &domain.CrateDetail{
		ID:               "tokio",
		Name:             "tokio",
		MaxStableVersion: "1.44.0",
		Repository:       "https://github.com/tokio-rs/tokio",
		Features:         []string{"full", "rt"},
		Versions:         []string{"1.44.0", "1.43.0"},
	}
	env := &domain.Environment{Installed: []domain.InstalledBinary{{Name: "tokio", Version: "1.40.0"}}}

	t.Run("returns detail with environment and readme", func(t *testing.T) {
		readme := &mockReadmeService{text: "# tokio"}
		server, err := NewServer(&Ports{
			Search:      &mockSearchService{},
			Hydration:   &mockHydrationService{detail: detail},
			Environment: &mockEnvironmentService{env: env},
			Readme:      readme,
		})
		require.NoError(t, err)

		_, output, err := server.handleCrateInfo(ctx, nil, CrateInfoInput{Name: "tokio", Readme: true})

		require.NoError(t, err)
		assert.Equal(t, "1.44.0", output.Crate.Version)
		assert.Equal(t, "1.40.0", output.Crate.InstalledVersion)
		assert.Equal(t, []string{"full", "rt"}, output.Crate.Features)
		assert.Equal(t, []string{"1.44.0", "1.43.0"}, output.Versions)
		assert.Equal(t, "# tokio", output.Readme)
		assert.True(t, readme.got.Hydrated)
	})

	t.Run("missing readme is not an error", func(t *testing.T) {
		server, err := NewServer(&Ports{
			Search:    &mockSearchService{},
			Hydration: &mockHydrationService{detail: detail},
			Readme:    &mockReadmeService{err: domain.ErrReadmeUnavailable},
		})
		require.NoError(t, err)

		_, output, err := server.handleCrateInfo(ctx, nil, CrateInfoInput{Name: "tokio", Readme: true})

		require.NoError(t, err)
		assert.Empty(t, output.Readme)
	})

	t.Run("readme failure is returned", func(t *testing.T) {
		server, err := NewServer(&Ports{
			Search:    &mockSearchService{},
			Hydration: &mockHydrationService{detail: detail},
			Readme:    &mockReadmeService{err: errors.New("rate limited")},
		})
		require.NoError(t, err)

		_, _, err = server.handleCrateInfo(ctx, nil, CrateInfoInput{Name: "tokio", Readme: true})

		assert.Error(t, err)
	})

	t.Run("unknown crate", func(t *testing.T) {
		server, err := NewServer(&Ports{
			Search:    &mockSearchService{},
			Hydration: &mockHydrationService{err: domain.ErrNotFound},
		})
		require.NoError(t, err)

		_, _, err = server.handleCrateInfo(ctx, nil, CrateInfoInput{Name: "nope"})

		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("requires name and hydration", func(t *testing.T) {
		server, err := NewServer(&Ports{Search: &mockSearchService{}})
		require.NoError(t, err)
		_, _, err = server.handleCrateInfo(ctx, nil, CrateInfoInput{Name: "x"})
		assert.ErrorIs(t, err, ErrMissingHydrationService)

		server, err = NewServer(&Ports{Search: &mockSearchService{}, Hydration: &mockHydrationService{detail: detail}})
		require.NoError(t, err)
		_, _, err = server.handleCrateInfo(ctx, nil, CrateInfoInput{})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}
