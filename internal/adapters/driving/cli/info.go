package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/seek/internal/core/domain"
)

var (
	infoReadme bool
	infoJSON   bool
)

var infoCmd = &cobra.Command{
	Use:   "info [name]",
	Short: "Show crate details",
	Long: `Fetches the full crates.io metadata of a crate and shows it together with
the version the current project declares and the version installed.

Use --readme to also print the README from the crate's GitHub repository.`,
	Args: cobra.ExactArgs(1),
	RunE: runInfo,
}

func init() {
	infoCmd.Flags().BoolVarP(&infoReadme, "readme", "r", false, "also print the README")
	infoCmd.Flags().BoolVar(&infoJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	if err := requireService(hydrationService != nil, "crate details"); err != nil {
		return err
	}

	detail, err := hydrationService.Detail(cmd.Context(), args[0])
	if errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("crate %q not found", args[0])
	}
	if err != nil {
		return fmt.Errorf("failed to get crate: %w", err)
	}

	c := domain.Crate{ID: detail.ID, Name: detail.Name}
	c.Hydrate(detail)
	if environmentService != nil {
		environmentService.Snapshot().Annotate(&c)
	}

	var readme string
	if infoReadme {
		readme, err = fetchReadme(cmd, c)
		if err != nil {
			return err
		}
	}

	if infoJSON {
		out := struct {
			crateJSON
			Versions []string `json:"versions,omitempty"`
			Readme   string   `json:"readme,omitempty"`
		}{toCrateJSON(c), detail.Versions, readme}
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal crate: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	printCrate(cmd, c, detail)
	if readme != "" {
		cmd.Println()
		cmd.Println(readme)
	}
	return nil
}

func fetchReadme(cmd *cobra.Command, c domain.Crate) (string, error) {
	if readmeService == nil {
		return "", nil
	}
	text, err := readmeService.Readme(cmd.Context(), c)
	if errors.Is(err, domain.ErrReadmeUnavailable) {
		cmd.PrintErrf("No README available for %s\n", c.Name)
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to fetch readme: %w", err)
	}
	return text, nil
}

func printCrate(cmd *cobra.Command, c domain.Crate, d *domain.CrateDetail) {
	cmd.Printf("%s %s\n", c.Name, c.Version)
	if c.Description != "" {
		cmd.Printf("  %s\n", strings.Join(strings.Fields(c.Description), " "))
	}
	cmd.Println()

	field := func(label, value string) {
		if value != "" {
			cmd.Printf("  %-18s %s\n", label+":", value)
		}
	}
	field("Latest", d.MaxVersion)
	field("Project version", c.ProjectVersion)
	field("Installed version", c.InstalledVersion)
	field("Downloads", formatCount(c.Downloads))
	field("Recent downloads", formatCount(c.RecentDownloads))
	if c.UpdatedAt != nil {
		field("Updated", c.UpdatedAt.Format("2006-01-02"))
	}
	if c.CreatedAt != nil {
		field("Created", c.CreatedAt.Format("2006-01-02"))
	}
	field("Homepage", c.Homepage)
	field("Documentation", c.Documentation)
	field("Repository", c.Repository)
	field("Keywords", strings.Join(c.Keywords, ", "))
	field("Categories", strings.Join(c.Categories, ", "))
	field("Features", strings.Join(c.Features, ", "))
	if len(d.Versions) > 0 {
		versions := d.Versions
		more := ""
		if len(versions) > 10 {
			more = fmt.Sprintf(" (+%d more)", len(versions)-10)
			versions = versions[:10]
		}
		field("Versions", strings.Join(versions, ", ")+more)
	}
}
