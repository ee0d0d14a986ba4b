package cargo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/seek/internal/core/domain"
)

func TestParseManifest_DependencyForms(t *testing.T) {
	m, err := parseManifest([]byte(`
[package]
name = "app"
version = "0.3.1"

[dependencies]
serde = { version = "1.0", features = ["derive"] }
tokio = "1"
local = { path = "../local" }
json = { package = "serde_json", version = "1.0.140", optional = true }
gitdep = { git = "https://github.com/example/gitdep" }

[dev-dependencies]
pretty_assertions = "1.4"

[build-dependencies]
cc = "1.0"

[target.'cfg(windows)'.dependencies]
winapi = "0.3"
`))
	require.NoError(t, err)
	require.True(t, m.isPackage())

	pkg := m.toPackage("/work/app/Cargo.toml", nil)

	assert.Equal(t, "app", pkg.Name)
	assert.Equal(t, "0.3.1", pkg.Version)
	assert.Equal(t, []domain.Dependency{
		{Name: "gitdep", Req: "*", Kind: domain.DependencyNormal},
		{Name: "serde_json", Req: "1.0.140", Kind: domain.DependencyNormal, Optional: true},
		{Name: "local", Req: "*", Kind: domain.DependencyNormal},
		{Name: "serde", Req: "1.0", Kind: domain.DependencyNormal},
		{Name: "tokio", Req: "1", Kind: domain.DependencyNormal},
		{Name: "pretty_assertions", Req: "1.4", Kind: domain.DependencyDev},
		{Name: "cc", Req: "1.0", Kind: domain.DependencyBuild},
		{Name: "winapi", Req: "0.3", Kind: domain.DependencyNormal},
	}, pkg.Dependencies)
}

func TestParseManifest_WorkspaceInheritance(t *testing.T) {
	root, err := parseManifest([]byte(`
[workspace]
members = ["crates/*"]

[workspace.package]
version = "2.1.0"

[workspace.dependencies]
anyhow = "1.0.86"
json = { package = "serde_json", version = "1" }
`))
	require.NoError(t, err)
	require.NotNil(t, root.Workspace)
	assert.False(t, root.isPackage())

	member, err := parseManifest([]byte(`
[package]
name = "core"
version.workspace = true

[dependencies]
anyhow = { workspace = true }
json = { workspace = true, optional = true }
missing = { workspace = true }
`))
	require.NoError(t, err)

	pkg := member.toPackage("/work/crates/core/Cargo.toml", root.Workspace)

	assert.Equal(t, "2.1.0", pkg.Version)
	assert.Equal(t, []domain.Dependency{
		{Name: "anyhow", Req: "1.0.86", Kind: domain.DependencyNormal},
		{Name: "serde_json", Req: "1", Kind: domain.DependencyNormal, Optional: true},
		{Name: "missing", Req: "*", Kind: domain.DependencyNormal},
	}, pkg.Dependencies)
}

func TestParseManifest_Invalid(t *testing.T) {
	_, err := parseManifest([]byte("[package\nname = "))
	assert.Error(t, err)
}
