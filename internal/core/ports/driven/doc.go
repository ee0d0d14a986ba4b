// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - RegistryClient: Paginated search and crate detail lookups (crates.io)
//   - EnvironmentReader: Project manifests and installed binaries (cargo)
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - ReadmeFetcher: README lookup for a crate's repository. Without it, readme display is disabled.
//
// SearchSource is implemented inside core (project, installed and registry
// sources) and declared here so the orchestrator can be driven by fakes.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
