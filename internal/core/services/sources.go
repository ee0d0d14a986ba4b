package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/seek/internal/core/domain"
	"github.com/custodia-labs/seek/internal/core/ports/driven"
	"github.com/custodia-labs/seek/internal/logger"
)

// Ensure the sources implement the interface.
var (
	_ driven.SearchSource = (*ProjectSource)(nil)
	_ driven.SearchSource = (*InstalledSource)(nil)
	_ driven.SearchSource = (*RegistrySource)(nil)
)

// ProjectSource matches the dependencies declared by the current project.
// It reads only the environment snapshot and never fails.
type ProjectSource struct{}

// NewProjectSource creates a project dependency source.
func NewProjectSource() *ProjectSource {
	return &ProjectSource{}
}

// Kind returns domain.SourceProject.
func (s *ProjectSource) Kind() domain.SourceKind {
	return domain.SourceProject
}

// Fetch returns the page of matching dependencies.
func (s *ProjectSource) Fetch(_ context.Context, q driven.SourceQuery) (driven.SourceResult, error) {
	if !q.Env.HasProject() {
		return driven.SourceResult{}, nil
	}

	term := q.Request.Term
	deps := q.Env.Project.DependencyMatches(term)
	window := pageWindow(len(deps), q.Request, q.Quota)

	records := make([]domain.Crate, 0, len(window))
	for _, i := range window {
		dep := deps[i]
		records = append(records, domain.Crate{
			ID:             dep.Name,
			Name:           dep.Name,
			Version:        dep.Req,
			ExactMatch:     domain.IsExactMatch(dep.Name, term),
			ProjectVersion: dep.Req,
		})
	}
	return driven.SourceResult{Records: records, Total: len(deps)}, nil
}

// InstalledSource matches the binaries installed with cargo install.
// It reads only the environment snapshot and never fails.
type InstalledSource struct{}

// NewInstalledSource creates an installed binary source.
func NewInstalledSource() *InstalledSource {
	return &InstalledSource{}
}

// Kind returns domain.SourceInstalled.
func (s *InstalledSource) Kind() domain.SourceKind {
	return domain.SourceInstalled
}

// Fetch returns the page of matching installed binaries.
func (s *InstalledSource) Fetch(_ context.Context, q driven.SourceQuery) (driven.SourceResult, error) {
	term := q.Request.Term
	bins := q.Env.InstalledMatches(term)
	window := pageWindow(len(bins), q.Request, q.Quota)

	records := make([]domain.Crate, 0, len(window))
	for _, i := range window {
		bin := bins[i]
		records = append(records, domain.Crate{
			ID:               bin.Name,
			Name:             bin.Name,
			Version:          bin.Version,
			ExactMatch:       domain.IsExactMatch(bin.Name, term),
			InstalledVersion: bin.Version,
		})
	}
	return driven.SourceResult{Records: records, Total: len(bins)}, nil
}

// pageWindow returns the indexes of the matches that belong on the
// requested page, capped at quota.
func pageWindow(n int, req domain.SearchRequest, quota int) []int {
	offset := (req.Page - 1) * req.PageSize
	if offset < 0 {
		offset = 0
	}
	if quota <= 0 || offset >= n {
		return nil
	}
	end := min(n, offset+quota)
	out := make([]int, 0, end-offset)
	for i := offset; i < end; i++ {
		out = append(out, i)
	}
	return out
}

// RegistrySource queries the remote registry, one server-side page per call.
type RegistrySource struct {
	client driven.RegistryClient
}

// NewRegistrySource creates a registry source backed by client.
func NewRegistrySource(client driven.RegistryClient) *RegistrySource {
	return &RegistrySource{client: client}
}

// Kind returns domain.SourceRegistry.
func (s *RegistrySource) Kind() domain.SourceKind {
	return domain.SourceRegistry
}

// Fetch requests page q.Request.Page with q.Quota records per page.
// With a quota of zero the request is still made, for its total, with the
// smallest page size the registry accepts, and no records are returned.
func (s *RegistrySource) Fetch(ctx context.Context, q driven.SourceQuery) (driven.SourceResult, error) {
	perPage := q.Quota
	if perPage <= 0 {
		perPage = 1
	}

	page, err := s.client.Search(ctx, driven.RegistryQuery{
		Term:    q.Request.Term,
		Sort:    q.Request.Sort,
		Page:    q.Request.Page,
		PerPage: perPage,
	})
	if err != nil {
		return driven.SourceResult{}, fmt.Errorf("registry search: %w", err)
	}

	limit := max(q.Quota, 0)
	records := make([]domain.Crate, 0, min(limit, len(page.Crates)))
	for _, c := range page.Crates {
		if len(records) == limit {
			break
		}
		c.ExactMatch = c.ExactMatch || domain.IsExactMatch(c.Name, q.Request.Term)
		c.Hydrated = false
		records = append(records, c)
	}

	logger.Debug("Registry page %d: %d records, total %d", q.Request.Page, len(records), page.Total)
	return driven.SourceResult{Records: records, Total: page.Total}, nil
}
