package cargo

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/seek/internal/core/domain"
	"github.com/custodia-labs/seek/internal/core/ports/driven"
	"github.com/custodia-labs/seek/internal/logger"
)

// Ensure Reader implements the interface.
var _ driven.EnvironmentReader = (*Reader)(nil)

const (
	manifestName    = "Cargo.toml"
	installListName = ".crates.toml"
)

// Config holds configuration for the environment reader.
type Config struct {
	// Fs is the filesystem to read from (default: the OS filesystem).
	Fs afero.Fs

	// ProjectDir is where manifest discovery starts (default: the working
	// directory).
	ProjectDir string

	// CargoHome holds the install list (default: $CARGO_HOME or ~/.cargo).
	CargoHome string
}

// Reader loads the project manifest tree and the install list.
type Reader struct {
	fs        afero.Fs
	dir       string
	cargoHome string

	mu    sync.Mutex
	paths []string
}

// NewReader creates an environment reader.
func NewReader(cfg Config) *Reader {
	if cfg.Fs == nil {
		cfg.Fs = afero.NewOsFs()
	}
	if cfg.ProjectDir == "" {
		if wd, err := os.Getwd(); err == nil {
			cfg.ProjectDir = wd
		}
	}
	if cfg.CargoHome == "" {
		cfg.CargoHome = DefaultCargoHome()
	}
	return &Reader{
		fs:        cfg.Fs,
		dir:       filepath.Clean(cfg.ProjectDir),
		cargoHome: cfg.CargoHome,
	}
}

// DefaultCargoHome returns $CARGO_HOME, falling back to ~/.cargo.
func DefaultCargoHome() string {
	if home := os.Getenv("CARGO_HOME"); home != "" {
		return home
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".cargo"
	}
	return filepath.Join(home, ".cargo")
}

// Read returns a fresh environment snapshot. The project and the install
// list are read concurrently.
func (r *Reader) Read(ctx context.Context) (*domain.Environment, error) {
	var (
		project   *domain.Project
		installed []domain.InstalledBinary
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		project, err = r.ReadProject(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		installed, err = r.ReadInstalled(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	paths := []string{filepath.Join(r.cargoHome, installListName)}
	if project != nil {
		paths = append(paths, project.ManifestPath)
		for _, pkg := range project.Packages {
			if pkg.ManifestPath != project.ManifestPath {
				paths = append(paths, pkg.ManifestPath)
			}
		}
	}
	r.mu.Lock()
	r.paths = paths
	r.mu.Unlock()

	return &domain.Environment{Project: project, Installed: installed}, nil
}

// WatchPaths returns the files the last Read depended on.
func (r *Reader) WatchPaths() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string{}, r.paths...)
}

// ReadInstalled parses the install list. A missing list means nothing is
// installed.
func (r *Reader) ReadInstalled(ctx context.Context) ([]domain.InstalledBinary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := filepath.Join(r.cargoHome, installListName)
	data, err := afero.ReadFile(r.fs, path)
	if errors.Is(err, fs.ErrNotExist) {
		logger.Debug("no install list at %s", path)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read install list: %w", err)
	}

	installed, err := parseInstallList(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	logger.Debug("read %d installed packages from %s", len(installed), path)
	return installed, nil
}

// ReadProject locates and reads the project the reader was started in.
// It returns nil without error when no manifest is found.
func (r *Reader) ReadProject(ctx context.Context) (*domain.Project, error) {
	rootPath, root, err := r.findRoot()
	if err != nil {
		return nil, err
	}
	if root == nil {
		logger.Debug("no %s found above %s", manifestName, r.dir)
		return nil, nil
	}

	project := &domain.Project{ManifestPath: rootPath}
	if root.isPackage() {
		project.Packages = append(project.Packages, root.toPackage(rootPath, root.Workspace))
	}

	if root.Workspace != nil {
		members, err := r.expandMembers(ctx, filepath.Dir(rootPath), root.Workspace)
		if err != nil {
			return nil, err
		}
		for _, path := range members {
			m, err := r.loadManifest(path)
			if err != nil {
				logger.Warn("skipping workspace member %s: %v", path, err)
				continue
			}
			project.Packages = append(project.Packages, m.toPackage(path, root.Workspace))
		}
	}

	logger.Debug("read project %s with %d packages", rootPath, len(project.Packages))
	return project, nil
}

// FindManifest walks up from the project directory to the nearest
// Cargo.toml, matching the file name case-insensitively.
func (r *Reader) FindManifest() (string, error) {
	return r.findManifestFrom(r.dir)
}

func (r *Reader) findManifestFrom(dir string) (string, error) {
	for {
		path, err := r.manifestIn(dir)
		if err != nil {
			return "", err
		}
		if path != "" {
			return path, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

// findRoot returns the nearest manifest, or the workspace root above it
// when the nearest manifest is a member of that workspace.
func (r *Reader) findRoot() (string, *manifest, error) {
	nearest, err := r.FindManifest()
	if err != nil || nearest == "" {
		return "", nil, err
	}
	m, err := r.loadManifest(nearest)
	if err != nil {
		return "", nil, err
	}
	if m.Workspace != nil {
		return nearest, m, nil
	}

	memberDir := filepath.Dir(nearest)
	dir := filepath.Dir(memberDir)
	for dir != filepath.Dir(dir) {
		path, err := r.findManifestFrom(dir)
		if err != nil || path == "" {
			break
		}
		candidate, err := r.loadManifest(path)
		if err == nil && candidate.Workspace != nil && isMember(filepath.Dir(path), memberDir, candidate.Workspace) {
			return path, candidate, nil
		}
		dir = filepath.Dir(filepath.Dir(path))
	}
	return nearest, m, nil
}

// manifestIn returns the manifest file in dir, or "" if there is none.
func (r *Reader) manifestIn(dir string) (string, error) {
	entries, err := afero.ReadDir(r.fs, dir)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read dir %s: %w", dir, err)
	}
	for _, e := range entries {
		if !e.IsDir() && strings.EqualFold(e.Name(), manifestName) {
			return filepath.Join(dir, e.Name()), nil
		}
	}
	return "", nil
}

func (r *Reader) loadManifest(path string) (*manifest, error) {
	data, err := afero.ReadFile(r.fs, path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	m, err := parseManifest(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// expandMembers returns the manifest paths of every workspace member below
// root, in path order.
func (r *Reader) expandMembers(ctx context.Context, root string, ws *workspaceTable) ([]string, error) {
	if len(ws.Members) == 0 {
		return nil, nil
	}

	var members []string
	err := afero.Walk(r.fs, root, func(path string, info fs.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if !info.IsDir() || path == root {
			return nil
		}
		if name := info.Name(); name == "target" || strings.HasPrefix(name, ".") {
			return filepath.SkipDir
		}
		if !isMember(root, path, ws) {
			return nil
		}
		manifestPath, err := r.manifestIn(path)
		if err != nil {
			return err
		}
		if manifestPath != "" {
			members = append(members, manifestPath)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("expand workspace members: %w", err)
	}

	sort.Strings(members)
	return members, nil
}

// isMember reports whether dir is matched by the workspace members globs
// and not by its exclude list.
func isMember(root, dir string, ws *workspaceTable) bool {
	rel, err := filepath.Rel(root, dir)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return false
	}
	for _, pattern := range ws.Exclude {
		if matchPath(pattern, rel) {
			return false
		}
	}
	for _, pattern := range ws.Members {
		if matchPath(pattern, rel) {
			return true
		}
	}
	return false
}

func matchPath(pattern, rel string) bool {
	pattern = filepath.FromSlash(strings.TrimSuffix(strings.TrimPrefix(pattern, "./"), "/"))
	ok, err := doublestar.PathMatch(pattern, rel)
	return err == nil && ok
}
