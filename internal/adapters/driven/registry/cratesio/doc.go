// Package cratesio implements driven.RegistryClient against the crates.io
// HTTP API.
//
// Every request, search or detail, passes through one shared Gate so the
// client never issues more than one request per configured interval.
// crates.io asks for at most one request per second and rejects clients
// without a User-Agent.
//
// CachedClient wraps a client with an in-memory LRU of crate details and
// collapses concurrent lookups of the same crate into one request.
package cratesio
