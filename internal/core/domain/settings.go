package domain

import "time"

const unknownDescription = "Unknown"

// Default configuration values.
const (
	DefaultPageSize          = 100
	DefaultRegistryBaseURL   = "https://crates.io/api/v1/"
	DefaultUserAgent         = "seek (https://github.com/custodia-labs/seek)"
	DefaultRateLimitInterval = 1100 * time.Millisecond
	DefaultRequestTimeout    = 10 * time.Second
	DefaultCacheSize         = 256
	DefaultHydrationDelay    = 700 * time.Millisecond
)

// SearchSettings holds search behaviour configuration.
type SearchSettings struct {
	// PageSize is the number of records requested per page.
	PageSize int

	// Scope is the scope a new search starts with.
	Scope Scope

	// Sort is the registry ordering a new search starts with.
	Sort Sort
}

// RegistrySettings holds configuration for the remote package registry.
type RegistrySettings struct {
	// BaseURL is the API root, ending in a slash.
	BaseURL string

	// UserAgent is sent with every request. crates.io rejects anonymous clients.
	UserAgent string

	// RateLimitInterval is the minimum gap between two registry requests.
	RateLimitInterval time.Duration

	// Timeout bounds a single registry request.
	Timeout time.Duration

	// CacheSize is the number of crate details kept in memory.
	// Zero disables the cache.
	CacheSize int
}

// HydrationSettings holds configuration for detail fetching.
type HydrationSettings struct {
	// Delay is the debounce applied before fetching details for a selection.
	Delay time.Duration
}

// GitHubSettings holds configuration for README fetching.
type GitHubSettings struct {
	// Token is an optional personal access token raising the API rate limit.
	Token string
}

// HasToken returns true if a token is configured.
func (g GitHubSettings) HasToken() bool {
	return g.Token != ""
}

// AppSettings holds all application settings.
type AppSettings struct {
	Search    SearchSettings
	Registry  RegistrySettings
	Hydration HydrationSettings
	GitHub    GitHubSettings
}

// DefaultAppSettings returns settings with sensible defaults.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Search: SearchSettings{
			PageSize: DefaultPageSize,
			Scope:    ScopeRegistry,
			Sort:     SortRelevance,
		},
		Registry: RegistrySettings{
			BaseURL:           DefaultRegistryBaseURL,
			UserAgent:         DefaultUserAgent,
			RateLimitInterval: DefaultRateLimitInterval,
			Timeout:           DefaultRequestTimeout,
			CacheSize:         DefaultCacheSize,
		},
		Hydration: HydrationSettings{
			Delay: DefaultHydrationDelay,
		},
	}
}
