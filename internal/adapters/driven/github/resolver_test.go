package github

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRepositoryURL(t *testing.T) {
	tests := []struct {
		name      string
		url       string
		wantOwner string
		wantRepo  string
		wantOK    bool
	}{
		{"https", "https://github.com/serde-rs/serde", "serde-rs", "serde", true},
		{"trailing slash", "https://github.com/serde-rs/serde/", "serde-rs", "serde", true},
		{"git suffix", "https://github.com/rust-lang/regex.git", "rust-lang", "regex", true},
		{"subdirectory", "https://github.com/tokio-rs/tokio/tree/master/tokio-util", "tokio-rs", "tokio", true},
		{"git plus", "git+https://github.com/BurntSushi/ripgrep", "BurntSushi", "ripgrep", true},
		{"ssh", "git@github.com:clap-rs/clap.git", "clap-rs", "clap", true},
		{"no scheme", "github.com/dtolnay/anyhow", "dtolnay", "anyhow", true},
		{"www", "http://www.github.com/a/b", "a", "b", true},
		{"gitlab", "https://gitlab.com/a/b", "", "", false},
		{"owner only", "https://github.com/serde-rs", "", "", false},
		{"empty", "", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			owner, repo, ok := ParseRepositoryURL(tt.url)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantOwner, owner)
			assert.Equal(t, tt.wantRepo, repo)
		})
	}
}

func TestRepositoryWebURL(t *testing.T) {
	assert.Equal(t, "https://github.com/serde-rs/serde", RepositoryWebURL("serde-rs", "serde"))
}
