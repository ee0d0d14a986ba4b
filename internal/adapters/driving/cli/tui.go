package cli

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/seek/internal/adapters/driving/tui"
)

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive terminal user interface for seek.

Results are searched as you press Enter and details of the selected crate are
loaded once the selection settles.

Controls:
  Enter            - Search
  ↑/↓              - Select result
  ←/→              - Previous / next page
  Ctrl+←/Ctrl+→    - Ten pages back / forward
  Home/End         - First / last page
  Ctrl+S           - Cycle sort order
  Ctrl+A           - Cycle scope
  Ctrl+R           - Show README of the selected crate
  Tab              - Switch between input and results
  Esc              - Back / clear
  ?                - Toggle help
  Ctrl+C           - Quit`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	ports := &tui.Ports{
		Search:      searchService,
		Hydration:   hydrationService,
		Environment: environmentService,
		Readme:      readmeService,
		Settings:    settingsService,
	}

	app, err := tui.NewApp(ports)
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}
	if err := app.WithContext(cmd.Context()).Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
