// Package tui provides the interactive terminal user interface for seek.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/seek/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Search runs searches and delivers results as events.
	Search driving.SearchService

	// Hydration loads details of the selected crate.
	Hydration driving.HydrationService

	// Environment provides the project and installed binaries. Optional.
	Environment driving.EnvironmentService

	// Readme fetches READMEs of crates. Optional.
	Readme driving.ReadmeService

	// Settings provides the default scope, sort and page size. Optional.
	Settings driving.SettingsService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Search == nil {
		return ErrMissingSearchService
	}
	if p.Hydration == nil {
		return ErrMissingHydrationService
	}
	return nil
}
