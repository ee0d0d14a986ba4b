package cratesio

import (
	"sort"
	"time"

	"github.com/custodia-labs/seek/internal/core/domain"
)

// searchResponse is the body of GET /crates.
type searchResponse struct {
	Crates []crateJSON `json:"crates"`
	Meta   struct {
		Total int `json:"total"`
	} `json:"meta"`
}

// crateResponse is the body of GET /crates/{name}.
type crateResponse struct {
	Crate      crateJSON      `json:"crate"`
	Versions   []versionJSON  `json:"versions"`
	Keywords   []keywordJSON  `json:"keywords"`
	Categories []categoryJSON `json:"categories"`
}

type crateJSON struct {
	ID               string     `json:"id"`
	Name             string     `json:"name"`
	Description      *string    `json:"description"`
	Homepage         *string    `json:"homepage"`
	Documentation    *string    `json:"documentation"`
	Repository       *string    `json:"repository"`
	MaxVersion       string     `json:"max_version"`
	MaxStableVersion *string    `json:"max_stable_version"`
	NewestVersion    string     `json:"newest_version"`
	Downloads        *uint64    `json:"downloads"`
	RecentDownloads  *uint64    `json:"recent_downloads"`
	CreatedAt        *time.Time `json:"created_at"`
	UpdatedAt        *time.Time `json:"updated_at"`
	ExactMatch       bool       `json:"exact_match"`
}

type versionJSON struct {
	Num      string              `json:"num"`
	Yanked   bool                `json:"yanked"`
	Features map[string][]string `json:"features"`
}

type keywordJSON struct {
	ID      string `json:"id"`
	Keyword string `json:"keyword"`
}

type categoryJSON struct {
	ID       string `json:"id"`
	Category string `json:"category"`
}

// sortParam maps a domain sort to the crates.io query value.
func sortParam(s domain.Sort) string {
	switch s {
	case domain.SortName:
		return "alpha"
	case domain.SortDownloads:
		return "downloads"
	case domain.SortRecentDownloads:
		return "recent-downloads"
	case domain.SortRecentlyUpdated:
		return "recent-updates"
	case domain.SortNewlyAdded:
		return "new"
	default:
		return "relevance"
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func (c crateJSON) maxStable() string {
	return deref(c.MaxStableVersion)
}

func (c crateJSON) latest() string {
	if v := c.maxStable(); v != "" {
		return v
	}
	if c.MaxVersion != "" {
		return c.MaxVersion
	}
	return c.NewestVersion
}

func (c crateJSON) toCrate() domain.Crate {
	id := c.ID
	if id == "" {
		id = c.Name
	}
	return domain.Crate{
		ID:               id,
		Name:             c.Name,
		Version:          c.latest(),
		MaxVersion:       c.MaxVersion,
		MaxStableVersion: c.maxStable(),
		Description:      deref(c.Description),
		Homepage:         deref(c.Homepage),
		Documentation:    deref(c.Documentation),
		Repository:       deref(c.Repository),
		Downloads:        c.Downloads,
		RecentDownloads:  c.RecentDownloads,
		CreatedAt:        c.CreatedAt,
		UpdatedAt:        c.UpdatedAt,
		ExactMatch:       c.ExactMatch,
	}
}

func (r crateResponse) toDetail() *domain.CrateDetail {
	c := r.Crate
	id := c.ID
	if id == "" {
		id = c.Name
	}
	d := &domain.CrateDetail{
		ID:               id,
		Name:             c.Name,
		Description:      deref(c.Description),
		Homepage:         deref(c.Homepage),
		Documentation:    deref(c.Documentation),
		Repository:       deref(c.Repository),
		MaxVersion:       c.MaxVersion,
		MaxStableVersion: c.maxStable(),
		Downloads:        c.Downloads,
		RecentDownloads:  c.RecentDownloads,
		CreatedAt:        c.CreatedAt,
		UpdatedAt:        c.UpdatedAt,
	}

	for _, k := range r.Keywords {
		d.Keywords = append(d.Keywords, k.Keyword)
	}
	for _, cat := range r.Categories {
		d.Categories = append(d.Categories, cat.Category)
	}
	for _, v := range r.Versions {
		d.Versions = append(d.Versions, v.Num)
	}
	d.Features = r.features(d.PreferredVersion())
	return d
}

// features returns the sorted feature names of version, falling back to the
// first non-yanked version listed.
func (r crateResponse) features(version string) []string {
	var chosen *versionJSON
	for i := range r.Versions {
		v := &r.Versions[i]
		if v.Num == version {
			chosen = v
			break
		}
		if chosen == nil && !v.Yanked {
			chosen = v
		}
	}
	if chosen == nil {
		return nil
	}

	names := make([]string, 0, len(chosen.Features))
	for name := range chosen.Features {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
