package cargo

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/seek/internal/core/domain"
)

func writeFile(t *testing.T, fs afero.Fs, path, content string) {
	t.Helper()
	require.NoError(t, fs.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, afero.WriteFile(fs, path, []byte(content), 0o644))
}

func newWorkspaceFs(t *testing.T) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "/work/Cargo.toml", `
[workspace]
members = ["crates/*", "tools/cli"]
exclude = ["crates/scratch"]

[workspace.dependencies]
serde = "1.0.200"
`)
	writeFile(t, fs, "/work/crates/core/Cargo.toml", `
[package]
name = "core"
version = "0.1.0"

[dependencies]
serde = { workspace = true }
`)
	writeFile(t, fs, "/work/crates/net/cargo.toml", `
[package]
name = "net"
version = "0.1.0"

[dependencies]
tokio = "1"
`)
	writeFile(t, fs, "/work/crates/scratch/Cargo.toml", `
[package]
name = "scratch"

[dependencies]
rand = "0.8"
`)
	writeFile(t, fs, "/work/tools/cli/Cargo.toml", `
[package]
name = "cli"

[dependencies]
clap = "4"
`)
	writeFile(t, fs, "/work/target/debug/build/Cargo.toml", `[package]
name = "generated"
`)
	return fs
}

func TestReader_ReadProject_Workspace(t *testing.T) {
	fs := newWorkspaceFs(t)
	reader := NewReader(Config{Fs: fs, ProjectDir: "/work/crates/core/src", CargoHome: "/home/.cargo"})

	project, err := reader.ReadProject(context.Background())

	require.NoError(t, err)
	require.NotNil(t, project)
	assert.Equal(t, "/work/Cargo.toml", project.ManifestPath)

	names := make([]string, 0, len(project.Packages))
	for _, pkg := range project.Packages {
		names = append(names, pkg.Name)
	}
	assert.Equal(t, []string{"core", "net", "cli"}, names)

	env := &domain.Environment{Project: project}
	assert.Equal(t, "1.0.200", env.ProjectVersion("serde"))
	assert.Equal(t, "1", env.ProjectVersion("tokio"))
	assert.Empty(t, env.ProjectVersion("rand"), "excluded member is ignored")
}

func TestReader_ReadProject_SinglePackage(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "/src/app/CARGO.TOML", `
[package]
name = "app"
version = "1.2.3"

[dependencies]
serde = "1.0"
serde_json = "1.0"
`)
	reader := NewReader(Config{Fs: fs, ProjectDir: "/src/app", CargoHome: "/home/.cargo"})

	project, err := reader.ReadProject(context.Background())

	require.NoError(t, err)
	require.NotNil(t, project)
	assert.Equal(t, "/src/app/CARGO.TOML", project.ManifestPath)
	require.Len(t, project.Packages, 1)
	assert.Equal(t, "1.2.3", project.Packages[0].Version)
	assert.Len(t, project.DependencyMatches("serde"), 2)
}

func TestReader_ReadProject_NoManifest(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/empty/dir", 0o755))
	reader := NewReader(Config{Fs: fs, ProjectDir: "/empty/dir", CargoHome: "/home/.cargo"})

	project, err := reader.ReadProject(context.Background())

	require.NoError(t, err)
	assert.Nil(t, project)
}

func TestReader_ReadProject_MalformedManifest(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "/bad/Cargo.toml", "[package\n")
	reader := NewReader(Config{Fs: fs, ProjectDir: "/bad", CargoHome: "/home/.cargo"})

	_, err := reader.ReadProject(context.Background())

	assert.Error(t, err)
}

func TestReader_FindManifest_WalksUp(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "/repo/Cargo.toml", "[package]\nname = \"repo\"\n")
	require.NoError(t, fs.MkdirAll("/repo/src/bin/deep", 0o755))
	reader := NewReader(Config{Fs: fs, ProjectDir: "/repo/src/bin/deep", CargoHome: "/home/.cargo"})

	path, err := reader.FindManifest()

	require.NoError(t, err)
	assert.Equal(t, "/repo/Cargo.toml", path)
}

func TestReader_ReadInstalled(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "/home/.cargo/.crates.toml", installListFixture)
	reader := NewReader(Config{Fs: fs, ProjectDir: "/", CargoHome: "/home/.cargo"})

	installed, err := reader.ReadInstalled(context.Background())

	require.NoError(t, err)
	assert.Len(t, installed, 3)
}

func TestReader_ReadInstalled_Missing(t *testing.T) {
	reader := NewReader(Config{Fs: afero.NewMemMapFs(), ProjectDir: "/", CargoHome: "/nowhere"})

	installed, err := reader.ReadInstalled(context.Background())

	require.NoError(t, err)
	assert.Empty(t, installed)
}

func TestReader_Read(t *testing.T) {
	fs := newWorkspaceFs(t)
	writeFile(t, fs, "/home/.cargo/.crates.toml", installListFixture)
	reader := NewReader(Config{Fs: fs, ProjectDir: "/work", CargoHome: "/home/.cargo"})

	env, err := reader.Read(context.Background())

	require.NoError(t, err)
	assert.True(t, env.HasProject())
	assert.Equal(t, "14.1.0", env.InstalledVersion("ripgrep"))

	assert.ElementsMatch(t, []string{
		"/home/.cargo/.crates.toml",
		"/work/Cargo.toml",
		"/work/crates/core/Cargo.toml",
		"/work/crates/net/cargo.toml",
		"/work/tools/cli/Cargo.toml",
	}, reader.WatchPaths())
}

func TestReader_Read_CancelledContext(t *testing.T) {
	reader := NewReader(Config{Fs: newWorkspaceFs(t), ProjectDir: "/work", CargoHome: "/home/.cargo"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := reader.Read(ctx)

	assert.ErrorIs(t, err, context.Canceled)
}

func TestIsMember(t *testing.T) {
	ws := &workspaceTable{Members: []string{"crates/*", "./tools/**"}, Exclude: []string{"crates/old"}}

	assert.True(t, isMember("/w", "/w/crates/a", ws))
	assert.True(t, isMember("/w", "/w/tools/x/y", ws))
	assert.False(t, isMember("/w", "/w/crates/old", ws))
	assert.False(t, isMember("/w", "/w/crates/a/b", ws))
	assert.False(t, isMember("/w", "/w", ws))
	assert.False(t, isMember("/w", "/other", ws))
}
