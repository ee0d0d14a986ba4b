package cargo

import (
	"fmt"
	"sort"

	"github.com/pelletier/go-toml/v2"

	"github.com/custodia-labs/seek/internal/core/domain"
)

// anyVersion is the requirement recorded for path and git dependencies
// declared without a version.
const anyVersion = "*"

// manifest is the subset of Cargo.toml the reader needs.
type manifest struct {
	Package           *packageTable          `toml:"package"`
	Dependencies      map[string]any         `toml:"dependencies"`
	DevDependencies   map[string]any         `toml:"dev-dependencies"`
	BuildDependencies map[string]any         `toml:"build-dependencies"`
	Target            map[string]targetTable `toml:"target"`
	Workspace         *workspaceTable        `toml:"workspace"`
}

type packageTable struct {
	Name    string `toml:"name"`
	Version any    `toml:"version"`
}

type targetTable struct {
	Dependencies      map[string]any `toml:"dependencies"`
	DevDependencies   map[string]any `toml:"dev-dependencies"`
	BuildDependencies map[string]any `toml:"build-dependencies"`
}

type workspaceTable struct {
	Members      []string       `toml:"members"`
	Exclude      []string       `toml:"exclude"`
	Dependencies map[string]any `toml:"dependencies"`
	Package      map[string]any `toml:"package"`
}

func parseManifest(data []byte) (*manifest, error) {
	var m manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	return &m, nil
}

// isPackage reports whether the manifest declares a package, as opposed
// to a virtual workspace manifest.
func (m *manifest) isPackage() bool {
	return m.Package != nil && m.Package.Name != ""
}

// toPackage converts the manifest into a domain package. ws is the
// workspace table used to resolve inherited values; it may be nil.
func (m *manifest) toPackage(path string, ws *workspaceTable) domain.Package {
	pkg := domain.Package{ManifestPath: path}
	if m.Package != nil {
		pkg.Name = m.Package.Name
		pkg.Version = packageVersion(m.Package.Version, ws)
	}

	pkg.Dependencies = appendTable(pkg.Dependencies, m.Dependencies, domain.DependencyNormal, ws)
	pkg.Dependencies = appendTable(pkg.Dependencies, m.DevDependencies, domain.DependencyDev, ws)
	pkg.Dependencies = appendTable(pkg.Dependencies, m.BuildDependencies, domain.DependencyBuild, ws)

	targets := make([]string, 0, len(m.Target))
	for name := range m.Target {
		targets = append(targets, name)
	}
	sort.Strings(targets)
	for _, name := range targets {
		t := m.Target[name]
		pkg.Dependencies = appendTable(pkg.Dependencies, t.Dependencies, domain.DependencyNormal, ws)
		pkg.Dependencies = appendTable(pkg.Dependencies, t.DevDependencies, domain.DependencyDev, ws)
		pkg.Dependencies = appendTable(pkg.Dependencies, t.BuildDependencies, domain.DependencyBuild, ws)
	}
	return pkg
}

func packageVersion(v any, ws *workspaceTable) string {
	switch val := v.(type) {
	case string:
		return val
	case map[string]any:
		if inherits(val) && ws != nil {
			if s, ok := ws.Package["version"].(string); ok {
				return s
			}
		}
	}
	return ""
}

// appendTable appends the dependencies of one manifest table in name order.
func appendTable(out []domain.Dependency, table map[string]any, kind domain.DependencyKind, ws *workspaceTable) []domain.Dependency {
	keys := make([]string, 0, len(table))
	for k := range table {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		dep := domain.Dependency{Name: key, Kind: kind}
		switch val := table[key].(type) {
		case string:
			dep.Req = val
		case map[string]any:
			resolveTable(&dep, val, ws)
		default:
			continue
		}
		out = append(out, dep)
	}
	return out
}

// resolveTable fills dep from the table form of a dependency.
func resolveTable(dep *domain.Dependency, val map[string]any, ws *workspaceTable) {
	if pkg, ok := val["package"].(string); ok && pkg != "" {
		dep.Name = pkg
	}
	if opt, ok := val["optional"].(bool); ok {
		dep.Optional = opt
	}
	if v, ok := val["version"].(string); ok {
		dep.Req = v
		return
	}

	if inherits(val) {
		dep.Req = workspaceRequirement(dep, ws)
		return
	}
	dep.Req = anyVersion
}

// workspaceRequirement resolves a workspace = true dependency against
// [workspace.dependencies]. The inherited entry may rename the package.
func workspaceRequirement(dep *domain.Dependency, ws *workspaceTable) string {
	if ws == nil {
		return anyVersion
	}
	switch val := ws.Dependencies[dep.Name].(type) {
	case string:
		return val
	case map[string]any:
		if pkg, ok := val["package"].(string); ok && pkg != "" {
			dep.Name = pkg
		}
		if v, ok := val["version"].(string); ok {
			return v
		}
	}
	return anyVersion
}

func inherits(val map[string]any) bool {
	b, ok := val["workspace"].(bool)
	return ok && b
}
