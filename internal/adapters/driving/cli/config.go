package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage settings",
	Long: `View and change seek settings. Settings are stored in ~/.seek/config.toml.

Keys:
  search.page_size       results per page
  search.scope           default scope: online, project, installed or all
  search.sort            default crates.io sort order
  registry.base_url      crates.io API base URL
  registry.user_agent    User-Agent sent to crates.io
  registry.rate_limit_ms minimum interval between crates.io requests
  registry.timeout_s     crates.io request timeout
  registry.cache_size    crate details kept in memory (0 disables)
  hydration.delay_ms     selection settle time before details are fetched
  github.token           token for README requests (raises the rate limit)`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configGetCmd = &cobra.Command{
	Use:   "get [key]",
	Short: "Print one setting",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Change one setting",
	Args:  cobra.ExactArgs(2),
	RunE:  runConfigSet,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file path",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := requireService(settingsService != nil, "settings"); err != nil {
			return err
		}
		cmd.Println(settingsService.Path())
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configPathCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	if err := requireService(settingsService != nil, "settings"); err != nil {
		return err
	}

	width := 0
	keys := settingsService.Keys()
	for _, key := range keys {
		width = max(width, len(key))
	}

	cmd.Printf("# %s\n", settingsService.Path())
	for _, key := range keys {
		value, err := settingsService.Value(key)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", key, err)
		}
		cmd.Printf("%-*s = %s\n", width, key, value)
	}

	if err := settingsService.Validate(); err != nil {
		cmd.Println()
		cmd.Printf("Warning: %v\n", err)
		cmd.Println("Run 'seek config set KEY VALUE' to fix it.")
	}
	return nil
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	if err := requireService(settingsService != nil, "settings"); err != nil {
		return err
	}
	value, err := settingsService.Value(args[0])
	if err != nil {
		return err
	}
	cmd.Println(value)
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if err := requireService(settingsService != nil, "settings"); err != nil {
		return err
	}
	if err := settingsService.SetValue(args[0], args[1]); err != nil {
		return fmt.Errorf("failed to set %s: %w", args[0], err)
	}
	value, err := settingsService.Value(args[0])
	if err != nil {
		return err
	}
	cmd.Printf("%s = %s\n", args[0], value)
	return nil
}
