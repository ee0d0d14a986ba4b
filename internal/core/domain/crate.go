package domain

import (
	"strings"
	"time"
)

// Crate is a single package record shown in a result list.
// ID is the package name and is unique within a ResultSet.
type Crate struct {
	ID               string
	Name             string
	Version          string
	MaxVersion       string
	MaxStableVersion string
	Description      string
	Homepage         string
	Documentation    string
	Repository       string

	Downloads       *uint64
	RecentDownloads *uint64
	CreatedAt       *time.Time
	UpdatedAt       *time.Time

	// Extended fields, only set once the record is hydrated.
	Features   []string
	Categories []string
	Keywords   []string

	// ExactMatch is true when the name equals the search term, ignoring case.
	ExactMatch bool

	// ProjectVersion is the version requirement declared by the current
	// project, empty when the project does not depend on this crate.
	ProjectVersion string

	// InstalledVersion is the globally installed version, empty when not installed.
	InstalledVersion string

	// Hydrated is true once extended metadata has been fetched from the registry.
	Hydrated bool
}

// InProject reports whether the current project depends on the crate.
func (c *Crate) InProject() bool {
	return c.ProjectVersion != ""
}

// Installed reports whether the crate is installed globally.
func (c *Crate) Installed() bool {
	return c.InstalledVersion != ""
}

// Hydrate merges extended registry metadata into the record.
func (c *Crate) Hydrate(d *CrateDetail) {
	if d == nil {
		return
	}
	c.Name = d.Name
	c.Description = d.Description
	c.Homepage = d.Homepage
	c.Documentation = d.Documentation
	c.Repository = d.Repository
	c.MaxVersion = d.MaxVersion
	c.MaxStableVersion = d.MaxStableVersion
	c.Version = d.PreferredVersion()
	c.Downloads = d.Downloads
	c.RecentDownloads = d.RecentDownloads
	c.CreatedAt = d.CreatedAt
	c.UpdatedAt = d.UpdatedAt
	c.Features = append([]string{}, d.Features...)
	c.Categories = append([]string{}, d.Categories...)
	c.Keywords = append([]string{}, d.Keywords...)
	c.Hydrated = true
}

// Clone returns a deep copy of the record.
func (c Crate) Clone() Crate {
	c.Features = cloneStrings(c.Features)
	c.Categories = cloneStrings(c.Categories)
	c.Keywords = cloneStrings(c.Keywords)
	if c.Downloads != nil {
		v := *c.Downloads
		c.Downloads = &v
	}
	if c.RecentDownloads != nil {
		v := *c.RecentDownloads
		c.RecentDownloads = &v
	}
	if c.CreatedAt != nil {
		v := *c.CreatedAt
		c.CreatedAt = &v
	}
	if c.UpdatedAt != nil {
		v := *c.UpdatedAt
		c.UpdatedAt = &v
	}
	return c
}

// CrateDetail is the full registry metadata for one crate.
type CrateDetail struct {
	ID               string
	Name             string
	Description      string
	Homepage         string
	Documentation    string
	Repository       string
	MaxVersion       string
	MaxStableVersion string
	Downloads        *uint64
	RecentDownloads  *uint64
	CreatedAt        *time.Time
	UpdatedAt        *time.Time
	Features         []string
	Categories       []string
	Keywords         []string
	Versions         []string
}

// PreferredVersion returns the newest stable version, falling back to the newest version.
func (d *CrateDetail) PreferredVersion() string {
	if d.MaxStableVersion != "" {
		return d.MaxStableVersion
	}
	return d.MaxVersion
}

// IsExactMatch compares a package name to a search term, ignoring case.
func IsExactMatch(name, term string) bool {
	return strings.EqualFold(name, strings.TrimSpace(term))
}

// MatchesTerm reports whether name contains term, ignoring case.
// An empty term matches every name.
func MatchesTerm(name, term string) bool {
	return strings.Contains(strings.ToLower(name), strings.ToLower(strings.TrimSpace(term)))
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	return append([]string{}, s...)
}
