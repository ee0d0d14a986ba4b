package cli

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/seek/internal/core/domain"
)

var (
	searchScope   string
	searchSort    string
	searchPage    int
	searchPerPage int
	searchJSON    bool
)

var searchCmd = &cobra.Command{
	Use:   "search [term]",
	Short: "Search crates",
	Long: `Searches crates.io, the dependencies of the current Cargo project and the
binaries installed with cargo install.

Scopes:
  online    - crates.io only (default)
  project   - dependencies declared in the Cargo project
  installed - binaries installed with cargo install
  all       - project, installed, then crates.io

Sort orders (crates.io only):
  relevance, name, downloads, recent-downloads, recently-updated, newly-added`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringVarP(&searchScope, "scope", "s", "", "where to search: online, project, installed or all")
	searchCmd.Flags().StringVar(&searchSort, "sort", "", "result order on crates.io")
	searchCmd.Flags().IntVarP(&searchPage, "page", "p", 1, "page number")
	searchCmd.Flags().IntVarP(&searchPerPage, "per-page", "n", 0, "results per page (default from config)")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	if err := requireService(searchService != nil, "search"); err != nil {
		return err
	}

	req, err := buildSearchRequest(args[0])
	if err != nil {
		return err
	}

	rs, err := searchService.Run(cmd.Context(), req)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		return outputSearchJSON(cmd, rs)
	}
	outputSearchTable(cmd, rs)
	return nil
}

// buildSearchRequest combines the flags with the configured defaults.
func buildSearchRequest(term string) (domain.SearchRequest, error) {
	req := domain.SearchRequest{
		Term:     term,
		Page:     searchPage,
		PageSize: searchPerPage,
	}

	if settingsService != nil {
		if settings, err := settingsService.Get(); err == nil {
			req.Scope = settings.Search.Scope
			req.Sort = settings.Search.Sort
			if req.PageSize <= 0 {
				req.PageSize = settings.Search.PageSize
			}
		}
	}

	if searchScope != "" {
		scope, err := domain.ParseScope(searchScope)
		if err != nil {
			return req, err
		}
		req.Scope = scope
	}
	if searchSort != "" {
		sort, err := domain.ParseSort(searchSort)
		if err != nil {
			return req, err
		}
		req.Sort = sort
	}
	return req, nil
}

type searchJSONOutput struct {
	Term      string      `json:"term"`
	Scope     string      `json:"scope"`
	Sort      string      `json:"sort"`
	Page      int         `json:"page"`
	PageCount int         `json:"page_count"`
	Total     int         `json:"total"`
	Crates    []crateJSON `json:"crates"`
}

type crateJSON struct {
	Name             string     `json:"name"`
	Version          string     `json:"version"`
	Description      string     `json:"description,omitempty"`
	Repository       string     `json:"repository,omitempty"`
	Documentation    string     `json:"documentation,omitempty"`
	Homepage         string     `json:"homepage,omitempty"`
	Downloads        *uint64    `json:"downloads,omitempty"`
	RecentDownloads  *uint64    `json:"recent_downloads,omitempty"`
	UpdatedAt        *time.Time `json:"updated_at,omitempty"`
	Features         []string   `json:"features,omitempty"`
	Keywords         []string   `json:"keywords,omitempty"`
	Categories       []string   `json:"categories,omitempty"`
	ExactMatch       bool       `json:"exact_match,omitempty"`
	ProjectVersion   string     `json:"project_version,omitempty"`
	InstalledVersion string     `json:"installed_version,omitempty"`
}

func toCrateJSON(c domain.Crate) crateJSON {
	return crateJSON{
		Name:             c.Name,
		Version:          c.Version,
		Description:      c.Description,
		Repository:       c.Repository,
		Documentation:    c.Documentation,
		Homepage:         c.Homepage,
		Downloads:        c.Downloads,
		RecentDownloads:  c.RecentDownloads,
		UpdatedAt:        c.UpdatedAt,
		Features:         c.Features,
		Keywords:         c.Keywords,
		Categories:       c.Categories,
		ExactMatch:       c.ExactMatch,
		ProjectVersion:   c.ProjectVersion,
		InstalledVersion: c.InstalledVersion,
	}
}

func outputSearchJSON(cmd *cobra.Command, rs *domain.ResultSet) error {
	records := rs.Records()
	out := searchJSONOutput{
		Term:      rs.Request.Term,
		Scope:     rs.Request.Scope.String(),
		Sort:      rs.Request.Sort.String(),
		Page:      rs.CurrentPage(),
		PageCount: rs.PageCount(),
		Total:     rs.TotalCount,
		Crates:    make([]crateJSON, len(records)),
	}
	for i := range records {
		out.Crates[i] = toCrateJSON(records[i])
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSearchTable(cmd *cobra.Command, rs *domain.ResultSet) {
	records := rs.Records()
	if len(records) == 0 {
		cmd.Println("No crates found.")
		return
	}

	nameWidth, versionWidth := len("NAME"), len("VERSION")
	for i := range records {
		n := len(records[i].Name)
		if records[i].ExactMatch {
			n++
		}
		nameWidth = max(nameWidth, n)
		versionWidth = max(versionWidth, len(records[i].Version))
	}
	const downloadsWidth, markerWidth = 13, 2
	descWidth := terminalWidth() - nameWidth - versionWidth - downloadsWidth - markerWidth - 8

	row := "%-*s  %-*s  %*s  %-*s  %s\n"
	cmd.Printf(row, nameWidth, "NAME", versionWidth, "VERSION", downloadsWidth, "DOWNLOADS", markerWidth, "", "DESCRIPTION")
	for i := range records {
		c := records[i]
		name := c.Name
		if c.ExactMatch {
			name += "*"
		}
		cmd.Printf(row,
			nameWidth, name,
			versionWidth, orDash(c.Version),
			downloadsWidth, formatCount(c.Downloads),
			markerWidth, markers(c),
			truncate(c.Description, descWidth))
	}

	cmd.Println()
	cmd.Printf("Page %d of %d (%s results, sorted by %s, scope %s)\n",
		rs.CurrentPage(), max(rs.PageCount(), 1),
		numbers.Sprintf("%d", rs.TotalCount),
		rs.Request.Sort.Description(), rs.Request.Scope.Description())
	cmd.Println("* exact match  P in project  I installed")
}
