package github

import (
	"net/url"
	"strings"
)

// ParseRepositoryURL extracts owner and repository name from the forms a
// crate's repository field takes:
//
//	https://github.com/owner/repo
//	https://github.com/owner/repo.git
//	https://github.com/owner/repo/tree/main/crates/sub
//	git+https://github.com/owner/repo
//	git@github.com:owner/repo.git
//	github.com/owner/repo
func ParseRepositoryURL(raw string) (owner, repo string, ok bool) {
	s := strings.TrimSpace(raw)
	if rest, found := strings.CutPrefix(s, "git@github.com:"); found {
		s = "https://github.com/" + rest
	}
	s = strings.TrimPrefix(s, "git+")
	if !strings.Contains(s, "://") {
		s = "https://" + s
	}

	u, err := url.Parse(s)
	if err != nil {
		return "", "", false
	}
	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	if host != "github.com" {
		return "", "", false
	}

	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return "", "", false
	}
	return parts[0], strings.TrimSuffix(parts[1], ".git"), true
}

// RepositoryWebURL returns the canonical web URL for owner/repo.
func RepositoryWebURL(owner, repo string) string {
	return "https://github.com/" + owner + "/" + repo
}
