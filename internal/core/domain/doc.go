// Package domain defines the core entities for seek.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Crate: A package record shown in a result list
//   - ResultSet: One page of merged records plus pagination and selection
//   - SearchRequest: Term, sort, scope and page of a search
//   - Environment: Snapshot of the current project and installed binaries
//   - Event: Messages emitted by the search and hydration services
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
