// Package cargo reads the local Cargo environment: the project the tool
// was started in and the binaries installed with cargo install.
//
// Manifests are parsed directly with go-toml rather than by shelling out to
// cargo metadata, so reading works without a Rust toolchain and against any
// afero filesystem. Workspace members are expanded with doublestar globs.
//
// Watcher reports changes to the manifests and the install list so the
// environment snapshot can be refreshed while the tool runs.
package cargo
