package domain

import (
	"fmt"
	"strings"
)

// Scope selects which sources a search queries.
type Scope string

// Available scopes.
const (
	// ScopeAll queries project dependencies, installed binaries and the registry.
	ScopeAll Scope = "all"

	// ScopeRegistry queries the remote registry only.
	ScopeRegistry Scope = "registry"

	// ScopeProject queries the current project's dependencies only.
	ScopeProject Scope = "project"

	// ScopeInstalled queries globally installed binaries only.
	ScopeInstalled Scope = "installed"
)

// Scopes returns all scopes in the order they are cycled through.
func Scopes() []Scope {
	return []Scope{ScopeAll, ScopeRegistry, ScopeProject, ScopeInstalled}
}

// IsValid returns true if the scope is recognised.
func (s Scope) IsValid() bool {
	switch s {
	case ScopeAll, ScopeRegistry, ScopeProject, ScopeInstalled:
		return true
	default:
		return false
	}
}

// Includes reports whether a search with this scope queries the given source.
func (s Scope) Includes(kind SourceKind) bool {
	switch s {
	case ScopeAll:
		return true
	case ScopeRegistry:
		return kind == SourceRegistry
	case ScopeProject:
		return kind == SourceProject
	case ScopeInstalled:
		return kind == SourceInstalled
	default:
		return false
	}
}

// Next returns the scope after s, wrapping around.
func (s Scope) Next() Scope {
	all := Scopes()
	for i, sc := range all {
		if sc == s {
			return all[(i+1)%len(all)]
		}
	}
	return all[0]
}

// String returns the string representation.
func (s Scope) String() string {
	return string(s)
}

// Description returns a human-readable name for the scope.
func (s Scope) Description() string {
	switch s {
	case ScopeAll:
		return "All"
	case ScopeRegistry:
		return "Online"
	case ScopeProject:
		return "Project"
	case ScopeInstalled:
		return "Installed"
	default:
		return unknownDescription
	}
}

// Sort selects the ordering the registry applies to its results.
type Sort string

// Available sort orders.
const (
	SortRelevance       Sort = "relevance"
	SortName            Sort = "name"
	SortDownloads       Sort = "downloads"
	SortRecentDownloads Sort = "recent_downloads"
	SortRecentlyUpdated Sort = "recently_updated"
	SortNewlyAdded      Sort = "newly_added"
)

// Sorts returns all sort orders in the order they are cycled through.
func Sorts() []Sort {
	return []Sort{
		SortRelevance, SortName, SortDownloads,
		SortRecentDownloads, SortRecentlyUpdated, SortNewlyAdded,
	}
}

// IsValid returns true if the sort order is recognised.
func (s Sort) IsValid() bool {
	for _, known := range Sorts() {
		if s == known {
			return true
		}
	}
	return false
}

// Next returns the sort order after s, wrapping around.
func (s Sort) Next() Sort {
	all := Sorts()
	for i, so := range all {
		if so == s {
			return all[(i+1)%len(all)]
		}
	}
	return all[0]
}

// String returns the string representation.
func (s Sort) String() string {
	return string(s)
}

// Description returns a human-readable name for the sort order.
func (s Sort) Description() string {
	switch s {
	case SortRelevance:
		return "Relevance"
	case SortName:
		return "Name"
	case SortDownloads:
		return "Downloads"
	case SortRecentDownloads:
		return "Recent Downloads"
	case SortRecentlyUpdated:
		return "Recently Updated"
	case SortNewlyAdded:
		return "Newly Added"
	default:
		return unknownDescription
	}
}

// SourceKind identifies one of the search sources.
type SourceKind string

// Source kinds in priority order.
const (
	SourceProject   SourceKind = "project"
	SourceInstalled SourceKind = "installed"
	SourceRegistry  SourceKind = "registry"
)

// SourcePriority returns the fixed order in which sources are consulted
// and in which the per-page quota is allocated.
func SourcePriority() []SourceKind {
	return []SourceKind{SourceProject, SourceInstalled, SourceRegistry}
}

// SearchRequest describes one page of a search.
type SearchRequest struct {
	// Term is the search term. Matching is case-insensitive.
	Term string

	// Sort is the registry ordering.
	Sort Sort

	// Scope selects the sources to query.
	Scope Scope

	// Page is the 1-based page number.
	Page int

	// PageSize is the number of records per page.
	PageSize int
}

// Normalize fills zero values with defaults and trims the term.
func (r SearchRequest) Normalize(defaultPageSize int) SearchRequest {
	r.Term = strings.TrimSpace(r.Term)
	if r.Page < 1 {
		r.Page = 1
	}
	if r.PageSize <= 0 {
		r.PageSize = defaultPageSize
	}
	if r.Sort == "" {
		r.Sort = SortRelevance
	}
	if r.Scope == "" {
		r.Scope = ScopeRegistry
	}
	return r
}

// Validate checks the request for invalid values.
func (r SearchRequest) Validate() error {
	if !r.Scope.IsValid() {
		return fmt.Errorf("%w: unknown scope %q", ErrInvalidInput, r.Scope)
	}
	if !r.Sort.IsValid() {
		return fmt.Errorf("%w: unknown sort %q", ErrInvalidInput, r.Sort)
	}
	if r.Page < 1 {
		return fmt.Errorf("%w: page must be >= 1, got %d", ErrInvalidInput, r.Page)
	}
	if r.PageSize <= 0 {
		return fmt.Errorf("%w: page size must be > 0, got %d", ErrInvalidInput, r.PageSize)
	}
	return nil
}

// WithPage returns a copy of the request targeting another page.
func (r SearchRequest) WithPage(page int) SearchRequest {
	r.Page = page
	return r
}

// ParseScope converts a string to a Scope.
func ParseScope(s string) (Scope, error) {
	sc := Scope(strings.ToLower(strings.TrimSpace(s)))
	if sc == "online" {
		sc = ScopeRegistry
	}
	if !sc.IsValid() {
		return "", fmt.Errorf("%w: unknown scope %q", ErrInvalidInput, s)
	}
	return sc, nil
}

// ParseSort converts a string to a Sort.
func ParseSort(s string) (Sort, error) {
	so := Sort(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_"))
	if !so.IsValid() {
		return "", fmt.Errorf("%w: unknown sort %q", ErrInvalidInput, s)
	}
	return so, nil
}
