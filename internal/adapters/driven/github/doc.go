// Package github fetches crate READMEs from GitHub repositories.
//
// A crate's repository field usually points at GitHub. The fetcher turns
// that URL into an owner and repository name and asks the GitHub API for the
// repository README, decoded from its base64 content.
//
// # Authentication
//
// A token is optional. Without one the API allows 60 requests per hour per
// IP address; with a personal access token the limit is 5000. Set the token
// with `seek config set github.token <token>`.
//
// # Rate limiting
//
// Requests are throttled proactively with a token bucket, and the limit
// headers of every response are tracked. When the API reports no requests
// remaining the fetcher fails fast with a RateLimitError instead of blocking
// until the window resets.
package github
