package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func sampleEnvironment() *Environment {
	return &Environment{
		Project: &Project{
			ManifestPath: "/work/Cargo.toml",
			Packages: []Package{
				{
					Name: "app",
					Dependencies: []Dependency{
						{Name: "serde", Req: "1.0", Kind: DependencyNormal},
						{Name: "serde_json", Req: "1.0", Kind: DependencyNormal},
						{Name: "tokio", Req: "1", Kind: DependencyNormal},
					},
				},
				{
					Name: "app-cli",
					Dependencies: []Dependency{
						{Name: "serde", Req: "1.0.200", Kind: DependencyDev},
					},
				},
			},
		},
		Installed: []InstalledBinary{
			{Name: "ripgrep", Version: "14.1.0", Binaries: []string{"rg"}},
			{Name: "cargo-edit", Version: "0.12.2"},
		},
	}
}

func TestProject_DependencyMatches(t *testing.T) {
	env := sampleEnvironment()

	matches := env.Project.DependencyMatches("SERDE")
	assert.Len(t, matches, 3)

	assert.Len(t, env.Project.DependencyMatches(""), 4)
	assert.Empty(t, env.Project.DependencyMatches("rand"))

	var nilProject *Project
	assert.Nil(t, nilProject.DependencyMatches("serde"))
}

func TestEnvironment_InstalledMatches(t *testing.T) {
	env := sampleEnvironment()

	matches := env.InstalledMatches("grep")
	assert.Len(t, matches, 1)
	assert.Equal(t, "ripgrep", matches[0].Name)

	var nilEnv *Environment
	assert.Nil(t, nilEnv.InstalledMatches("x"))
}

func TestEnvironment_Versions(t *testing.T) {
	env := sampleEnvironment()

	assert.Equal(t, "14.1.0", env.InstalledVersion("ripgrep"))
	assert.Empty(t, env.InstalledVersion("rg"))
	assert.Equal(t, "1.0.200", env.ProjectVersion("serde"), "last declaration wins")
	assert.Equal(t, "1", env.ProjectVersion("tokio"))
	assert.Empty(t, env.ProjectVersion("rand"))

	noProject := &Environment{}
	assert.False(t, noProject.HasProject())
	assert.Empty(t, noProject.ProjectVersion("serde"))
}

func TestEnvironment_Annotate(t *testing.T) {
	env := sampleEnvironment()
	c := Crate{ID: "tokio", ProjectVersion: "stale", InstalledVersion: "stale"}

	env.Annotate(&c)

	assert.Equal(t, "1", c.ProjectVersion)
	assert.Empty(t, c.InstalledVersion)
	assert.True(t, c.InProject())
	assert.False(t, c.Installed())
}
