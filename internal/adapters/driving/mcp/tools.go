package mcp

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/seek/internal/core/domain"
)

// maxPerPage caps per_page so one tool call stays one registry request.
const maxPerPage = 100

// SearchInput is the input schema for the search_crates tool.
type SearchInput struct {
	Query   string `json:"query" jsonschema:"crate name or keywords to search for"`
	Scope   string `json:"scope,omitempty" jsonschema:"where to search: online (crates.io, default), project, installed or all"`
	Sort    string `json:"sort,omitempty" jsonschema:"relevance (default), name, downloads, recent_downloads, recently_updated or newly_added"`
	Page    int    `json:"page,omitempty" jsonschema:"1-based page number (default 1)"`
	PerPage int    `json:"per_page,omitempty" jsonschema:"results per page, at most 100 (default 20)"`
}

// SearchOutput is the output schema for the search_crates tool.
type SearchOutput struct {
	Crates    []CrateOutput `json:"crates"`
	Total     int           `json:"total"`
	Page      int           `json:"page"`
	PageCount int           `json:"page_count"`
}

// CrateInfoInput is the input schema for the crate_info tool.
type CrateInfoInput struct {
	Name   string `json:"name" jsonschema:"exact crate name"`
	Readme bool   `json:"readme,omitempty" jsonschema:"also fetch the README from the crate repository"`
}

// CrateInfoOutput is the output schema for the crate_info tool.
type CrateInfoOutput struct {
	Crate    CrateOutput `json:"crate"`
	Versions []string    `json:"versions,omitempty"`
	Readme   string      `json:"readme,omitempty"`
}

// CrateOutput represents a single crate.
type CrateOutput struct {
	Name             string   `json:"name"`
	Version          string   `json:"version"`
	Description      string   `json:"description,omitempty"`
	Homepage         string   `json:"homepage,omitempty"`
	Documentation    string   `json:"documentation,omitempty"`
	Repository       string   `json:"repository,omitempty"`
	Downloads        uint64   `json:"downloads,omitempty"`
	RecentDownloads  uint64   `json:"recent_downloads,omitempty"`
	UpdatedAt        string   `json:"updated_at,omitempty"`
	Features         []string `json:"features,omitempty"`
	Keywords         []string `json:"keywords,omitempty"`
	Categories       []string `json:"categories,omitempty"`
	ExactMatch       bool     `json:"exact_match,omitempty"`
	ProjectVersion   string   `json:"project_version,omitempty"`
	InstalledVersion string   `json:"installed_version,omitempty"`
}

// defaultPerPage keeps tool output small enough for an assistant context.
const defaultPerPage = 20

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name: "search_crates",
		Description: "Search Rust crates on crates.io, in the current Cargo project's dependencies " +
			"and among globally installed binaries. Results note the version the project " +
			"declares and the version installed.",
	}, s.handleSearch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "crate_info",
		Description: "Fetch full crates.io metadata for one crate, optionally with its README",
	}, s.handleCrateInfo)
}

// handleSearch handles the search_crates tool invocation.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	req := domain.SearchRequest{
		Term:     input.Query,
		Page:     input.Page,
		PageSize: input.PerPage,
	}
	if req.PageSize <= 0 {
		req.PageSize = defaultPerPage
	}
	if req.PageSize > maxPerPage {
		req.PageSize = maxPerPage
	}
	if input.Scope != "" {
		scope, err := domain.ParseScope(input.Scope)
		if err != nil {
			return nil, SearchOutput{}, err
		}
		req.Scope = scope
	}
	if input.Sort != "" {
		sort, err := domain.ParseSort(input.Sort)
		if err != nil {
			return nil, SearchOutput{}, err
		}
		req.Sort = sort
	}

	rs, err := s.ports.Search.Run(ctx, req)
	if err != nil {
		return nil, SearchOutput{}, err
	}

	records := rs.Records()
	output := SearchOutput{
		Crates:    make([]CrateOutput, len(records)),
		Total:     rs.TotalCount,
		Page:      rs.CurrentPage(),
		PageCount: rs.PageCount(),
	}
	for i := range records {
		output.Crates[i] = toCrateOutput(records[i])
	}
	return nil, output, nil
}

// handleCrateInfo handles the crate_info tool invocation.
func (s *Server) handleCrateInfo(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input CrateInfoInput,
) (*mcp.CallToolResult, CrateInfoOutput, error) {
	if s.ports.Hydration == nil {
		return nil, CrateInfoOutput{}, ErrMissingHydrationService
	}
	if input.Name == "" {
		return nil, CrateInfoOutput{}, fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}

	detail, err := s.ports.Hydration.Detail(ctx, input.Name)
	if err != nil {
		return nil, CrateInfoOutput{}, err
	}

	c := domain.Crate{ID: detail.ID, Name: detail.Name}
	c.Hydrate(detail)
	if s.ports.Environment != nil {
		s.ports.Environment.Snapshot().Annotate(&c)
	}

	output := CrateInfoOutput{
		Crate:    toCrateOutput(c),
		Versions: detail.Versions,
	}

	if input.Readme && s.ports.Readme != nil {
		text, err := s.ports.Readme.Readme(ctx, c)
		switch {
		case err == nil:
			output.Readme = text
		case errors.Is(err, domain.ErrReadmeUnavailable):
		default:
			return nil, CrateInfoOutput{}, err
		}
	}
	return nil, output, nil
}

func toCrateOutput(c domain.Crate) CrateOutput {
	out := CrateOutput{
		Name:             c.Name,
		Version:          c.Version,
		Description:      c.Description,
		Homepage:         c.Homepage,
		Documentation:    c.Documentation,
		Repository:       c.Repository,
		Features:         c.Features,
		Keywords:         c.Keywords,
		Categories:       c.Categories,
		ExactMatch:       c.ExactMatch,
		ProjectVersion:   c.ProjectVersion,
		InstalledVersion: c.InstalledVersion,
	}
	if c.Downloads != nil {
		out.Downloads = *c.Downloads
	}
	if c.RecentDownloads != nil {
		out.RecentDownloads = *c.RecentDownloads
	}
	if c.UpdatedAt != nil {
		out.UpdatedAt = c.UpdatedAt.Format(time.RFC3339)
	}
	return out
}
