package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/seek/internal/core/domain"
)

var envJSON bool

var envCmd = &cobra.Command{
	Use:   "env",
	Short: "Show the detected Cargo project and installed binaries",
	Long: `Shows what seek annotates search results with: the Cargo project found from
the project directory (walking up to the workspace root) with every declared
dependency, and the binaries installed with cargo install.`,
	Args: cobra.NoArgs,
	RunE: runEnv,
}

func init() {
	envCmd.Flags().BoolVar(&envJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(envCmd)
}

func runEnv(cmd *cobra.Command, _ []string) error {
	if err := requireService(environmentService != nil, "environment"); err != nil {
		return err
	}
	env := environmentService.Snapshot()

	if envJSON {
		data, err := json.MarshalIndent(env, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal environment: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	printProject(cmd, env)
	cmd.Println()
	printInstalled(cmd, env)
	return nil
}

func printProject(cmd *cobra.Command, env *domain.Environment) {
	if !env.HasProject() {
		cmd.Println("No Cargo project found.")
		return
	}

	cmd.Printf("Project: %s\n", env.Project.ManifestPath)
	for _, pkg := range env.Project.Packages {
		cmd.Println()
		cmd.Printf("  %s %s (%d dependencies)\n", pkg.Name, pkg.Version, len(pkg.Dependencies))
		for _, dep := range pkg.Dependencies {
			suffix := ""
			if dep.Kind != domain.DependencyNormal {
				suffix = " [" + string(dep.Kind) + "]"
			}
			if dep.Optional {
				suffix += " (optional)"
			}
			cmd.Printf("    %-30s %s%s\n", dep.Name, dep.Req, suffix)
		}
	}
}

func printInstalled(cmd *cobra.Command, env *domain.Environment) {
	if len(env.Installed) == 0 {
		cmd.Println("No installed binaries found.")
		return
	}

	cmd.Printf("Installed (%d):\n", len(env.Installed))
	for _, bin := range env.Installed {
		cmd.Printf("  %-30s %s\n", bin.Name, bin.Version)
	}
}
