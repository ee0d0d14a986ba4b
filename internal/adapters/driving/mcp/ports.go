package mcp

import (
	"github.com/custodia-labs/seek/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
type Ports struct {
	// Search runs crate searches. Required.
	Search driving.SearchService

	// Hydration fetches full crate metadata for crate_info.
	Hydration driving.HydrationService

	// Environment annotates results with project and installed versions.
	Environment driving.EnvironmentService

	// Readme fetches crate READMEs.
	Readme driving.ReadmeService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Search == nil {
		return ErrMissingSearchService
	}
	return nil
}
