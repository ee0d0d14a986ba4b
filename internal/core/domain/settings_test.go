package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaultAppSettings(t *testing.T) {
	s := DefaultAppSettings()

	assert.Equal(t, 100, s.Search.PageSize)
	assert.Equal(t, ScopeRegistry, s.Search.Scope)
	assert.Equal(t, SortRelevance, s.Search.Sort)
	assert.Equal(t, "https://crates.io/api/v1/", s.Registry.BaseURL)
	assert.NotEmpty(t, s.Registry.UserAgent)
	assert.Equal(t, 1100*time.Millisecond, s.Registry.RateLimitInterval)
	assert.Equal(t, 10*time.Second, s.Registry.Timeout)
	assert.Equal(t, 700*time.Millisecond, s.Hydration.Delay)
	assert.False(t, s.GitHub.HasToken())
}

func TestGitHubSettings_HasToken(t *testing.T) {
	assert.True(t, GitHubSettings{Token: "ghp_x"}.HasToken())
	assert.False(t, GitHubSettings{}.HasToken())
}
