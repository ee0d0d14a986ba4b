package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/seek/internal/core/domain"
	"github.com/custodia-labs/seek/internal/core/ports/driving"
)

// mockSearchService is a mock implementation of driving.SearchService.
type mockSearchService struct {
	records []domain.Crate
	total   int
	err     error
	lastReq domain.SearchRequest
}

var _ driving.SearchService = (*mockSearchService)(nil)

func (m *mockSearchService) Search(domain.SearchRequest) {}

func (m *mockSearchService) Run(_ context.Context, req domain.SearchRequest) (*domain.ResultSet, error) {
	m.lastReq = req
	if m.err != nil {
		return nil, m.err
	}
	req = req.Normalize(domain.DefaultPageSize)
	return domain.NewResultSet("test", req, m.records, m.total), nil
}

func (m *mockSearchService) Current() *domain.ResultSet { return nil }

func (m *mockSearchService) Events() <-chan domain.Event { return nil }

func (m *mockSearchService) Close() {}

// mockHydrationService is a mock implementation of driving.HydrationService.
type mockHydrationService struct {
	detail *domain.CrateDetail
	err    error
}

var _ driving.HydrationService = (*mockHydrationService)(nil)

func (m *mockHydrationService) RequestHydration(string) {}

func (m *mockHydrationService) NeedsHydration(domain.Crate) bool { return false }

func (m *mockHydrationService) Cancel() {}

func (m *mockHydrationService) Detail(_ context.Context, _ string) (*domain.CrateDetail, error) {
	return m.detail, m.err
}

// mockEnvironmentService is a mock implementation of driving.EnvironmentService.
type mockEnvironmentService struct {
	env *domain.Environment
}

func (m *mockEnvironmentService) Snapshot() *domain.Environment { return m.env }

func (m *mockEnvironmentService) Refresh(context.Context) (*domain.Environment, error) {
	return m.env, nil
}

// mockReadmeService is a mock implementation of driving.ReadmeService.
type mockReadmeService struct {
	text string
	err  error
	got  domain.Crate
}

func (m *mockReadmeService) Readme(_ context.Context, c domain.Crate) (string, error) {
	m.got = c
	return m.text, m.err
}

func readRequest(uri string) *mcp.ReadResourceRequest {
	return &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{
			URI: uri,
		},
	}
}

func u64(v uint64) *uint64 { return &v }
