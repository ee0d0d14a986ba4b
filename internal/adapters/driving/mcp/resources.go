package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/seek/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for seek resources.
	uriScheme = "seek://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "environment",
		Name:        "environment",
		Description: "Dependencies of the current Cargo project and globally installed binaries",
		MIMEType:    "application/json",
	}, s.handleEnvironmentResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "crates/{name}/readme",
		Name:        "crate-readme",
		Description: "README of a crate, read from its source repository",
		MIMEType:    "text/markdown",
	}, s.handleReadmeResource)
}

type environmentView struct {
	Manifest     string           `json:"manifest,omitempty"`
	Dependencies []dependencyView `json:"dependencies"`
	Installed    []installedView  `json:"installed"`
}

type dependencyView struct {
	Package  string `json:"package"`
	Name     string `json:"name"`
	Req      string `json:"req"`
	Kind     string `json:"kind"`
	Optional bool   `json:"optional,omitempty"`
}

type installedView struct {
	Name     string   `json:"name"`
	Version  string   `json:"version"`
	Binaries []string `json:"binaries,omitempty"`
}

// handleEnvironmentResource returns the current environment snapshot.
func (s *Server) handleEnvironmentResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	view := environmentView{
		Dependencies: []dependencyView{},
		Installed:    []installedView{},
	}

	if s.ports.Environment != nil {
		env := s.ports.Environment.Snapshot()
		if env.HasProject() {
			view.Manifest = env.Project.ManifestPath
			for _, pkg := range env.Project.Packages {
				for _, dep := range pkg.Dependencies {
					view.Dependencies = append(view.Dependencies, dependencyView{
						Package:  pkg.Name,
						Name:     dep.Name,
						Req:      dep.Req,
						Kind:     string(dep.Kind),
						Optional: dep.Optional,
					})
				}
			}
		}
		for _, bin := range env.Installed {
			view.Installed = append(view.Installed, installedView{
				Name:     bin.Name,
				Version:  bin.Version,
				Binaries: bin.Binaries,
			})
		}
	}

	data, err := json.MarshalIndent(view, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling environment: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// handleReadmeResource returns the README of a crate.
func (s *Server) handleReadmeResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Readme == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	name := extractCrateName(req.Params.URI)
	if name == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	text, err := s.ports.Readme.Readme(ctx, domain.Crate{ID: name, Name: name})
	if errors.Is(err, domain.ErrReadmeUnavailable) || errors.Is(err, domain.ErrNotFound) {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	if err != nil {
		return nil, fmt.Errorf("fetching readme: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "text/markdown",
			Text:     text,
		}},
	}, nil
}

// extractCrateName extracts the crate name from seek://crates/{name}/readme.
func extractCrateName(uri string) string {
	rest, ok := strings.CutPrefix(uri, uriScheme+"crates/")
	if !ok {
		return ""
	}
	name, ok := strings.CutSuffix(rest, "/readme")
	if !ok || strings.Contains(name, "/") {
		return ""
	}
	return name
}
