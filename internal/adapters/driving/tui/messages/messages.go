// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/seek/internal/core/domain"
)

// ServiceEvent carries an event emitted by the search or hydration service.
type ServiceEvent struct {
	Event domain.Event
}

// EventsClosed is sent once the service event channel is closed.
type EventsClosed struct{}

// ReadmeRequested asks the app to show the README of a crate.
type ReadmeRequested struct {
	Crate domain.Crate
}

// ReadmeLoaded carries a fetched README back to the model.
type ReadmeLoaded struct {
	CrateID string
	Text    string
	Err     error
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewSearch is the search input, results and detail view.
	ViewSearch ViewType = iota
	// ViewReadme shows the README of the selected crate.
	ViewReadme
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewSearch:
		return "search"
	case ViewReadme:
		return "readme"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}
