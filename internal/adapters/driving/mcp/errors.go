// Package mcp provides an MCP (Model Context Protocol) server adapter for seek.
// It lets AI assistants search crates and read crate metadata with the
// project and installed versions of the machine seek runs on.
package mcp

import "errors"

var (
	// ErrMissingSearchService is returned when the search service is not provided.
	ErrMissingSearchService = errors.New("mcp: search service is required")

	// ErrMissingHydrationService is returned by crate_info when no hydration
	// service is configured.
	ErrMissingHydrationService = errors.New("mcp: crate info is not available")
)
