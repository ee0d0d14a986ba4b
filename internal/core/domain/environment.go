package domain

// DependencyKind distinguishes the manifest table a dependency was declared in.
type DependencyKind string

// Dependency kinds.
const (
	DependencyNormal DependencyKind = "normal"
	DependencyDev    DependencyKind = "dev"
	DependencyBuild  DependencyKind = "build"
)

// Dependency is one dependency declaration in a package manifest.
type Dependency struct {
	// Name is the package name on the registry. Renamed dependencies
	// use the original package name, not the local alias.
	Name string

	// Req is the declared version requirement. Path and git
	// dependencies without a version use "*".
	Req string

	Kind     DependencyKind
	Optional bool
}

// Package is one package manifest in a project or workspace.
type Package struct {
	Name         string
	Version      string
	ManifestPath string
	Dependencies []Dependency
}

// Project is the Cargo project the tool was started in.
type Project struct {
	// ManifestPath is the path to the workspace root manifest.
	ManifestPath string

	// Packages holds one entry per member manifest.
	Packages []Package
}

// DependencyMatches returns every dependency whose name contains term,
// ignoring case. Declarations of the same package in different manifests
// are returned separately.
func (p *Project) DependencyMatches(term string) []Dependency {
	if p == nil {
		return nil
	}
	var out []Dependency
	for _, pkg := range p.Packages {
		for _, dep := range pkg.Dependencies {
			if MatchesTerm(dep.Name, term) {
				out = append(out, dep)
			}
		}
	}
	return out
}

// InstalledBinary is a package installed globally with cargo install.
type InstalledBinary struct {
	Name     string
	Version  string
	Source   string
	Binaries []string
}

// Environment is an immutable snapshot of the local state searches are
// annotated against. It is replaced wholesale on refresh, never mutated.
type Environment struct {
	Project   *Project
	Installed []InstalledBinary
}

// HasProject returns true if a project manifest was found.
func (e *Environment) HasProject() bool {
	return e != nil && e.Project != nil
}

// InstalledMatches returns every installed binary whose name contains term, ignoring case.
func (e *Environment) InstalledMatches(term string) []InstalledBinary {
	if e == nil {
		return nil
	}
	var out []InstalledBinary
	for _, b := range e.Installed {
		if MatchesTerm(b.Name, term) {
			out = append(out, b)
		}
	}
	return out
}

// InstalledVersion returns the installed version of name, or "" if it is not installed.
func (e *Environment) InstalledVersion(name string) string {
	if e == nil {
		return ""
	}
	for _, b := range e.Installed {
		if b.Name == name {
			return b.Version
		}
	}
	return ""
}

// ProjectVersion returns the version requirement the project declares for
// name, or "" if no package depends on it. When several manifests declare
// the same dependency the last declaration wins.
func (e *Environment) ProjectVersion(name string) string {
	if e == nil || e.Project == nil {
		return ""
	}
	version := ""
	for _, pkg := range e.Project.Packages {
		for _, dep := range pkg.Dependencies {
			if dep.Name == name {
				version = dep.Req
			}
		}
	}
	return version
}

// Annotate stamps a record with the project and installed versions from the snapshot.
func (e *Environment) Annotate(c *Crate) {
	c.ProjectVersion = e.ProjectVersion(c.ID)
	c.InstalledVersion = e.InstalledVersion(c.ID)
}
