// Package file provides the TOML configuration store kept at
// ~/.seek/config.toml.
//
// Keys are dot separated ("search.page_size") and map onto TOML tables:
//
//	[search]
//	page_size = 50
//	scope = "all"
//
//	[registry]
//	rate_limit_ms = 1100
package file
