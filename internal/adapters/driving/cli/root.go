// Package cli provides the cobra command tree for seek.
//
// Services are built lazily by a Bootstrap function registered by the
// composition root, after the global flags have been parsed. Tests set the
// services directly with SetServices instead.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/seek/internal/core/ports/driving"
	"github.com/custodia-labs/seek/internal/logger"
)

// version is set at build time via SetVersion.
var version = "dev"

// skipBootstrap marks commands that run without services.
const skipBootstrap = "skip-bootstrap"

// errNotConfigured is returned when a command runs before its service is set.
var errNotConfigured = errors.New("service not configured")

// Options are the global flags handed to the Bootstrap function.
type Options struct {
	// ProjectDir is the directory the Cargo project is searched from.
	ProjectDir string

	// NoConfig uses built-in defaults instead of the config file.
	NoConfig bool

	// Verbose enables debug logging.
	Verbose bool

	// Interactive is true when the command hands the terminal to the TUI.
	Interactive bool

	// Watch is true for long-running commands that should follow changes
	// to the project manifests and the install list.
	Watch bool
}

// Services holds the driving ports the commands run against.
type Services struct {
	Search      driving.SearchService
	Hydration   driving.HydrationService
	Environment driving.EnvironmentService
	Readme      driving.ReadmeService
	Settings    driving.SettingsService

	// Close releases background resources. Optional.
	Close func()
}

// Bootstrap builds the services from the global flags.
type Bootstrap func(ctx context.Context, opts Options) (*Services, error)

var (
	searchService      driving.SearchService
	hydrationService   driving.HydrationService
	environmentService driving.EnvironmentService
	readmeService      driving.ReadmeService
	settingsService    driving.SettingsService
	closeServices      func()

	bootstrap Bootstrap
	globals   Options
)

var rootCmd = &cobra.Command{
	Use:   "seek [project-dir]",
	Short: "Search Rust crates from the terminal",
	Long: `seek searches crates.io, the dependencies of the current Cargo project
and the binaries installed with cargo install, all at once.

Run without a subcommand in a terminal to open the interactive UI.`,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE:         runRoot,
}

func init() {
	rootCmd.PersistentPreRunE = setup
	rootCmd.PersistentFlags().BoolVarP(&globals.Verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVarP(&globals.ProjectDir, "project", "C", "", "directory of the Cargo project (default: current directory)")
	rootCmd.PersistentFlags().BoolVar(&globals.NoConfig, "no-config", false, "ignore the config file and use defaults")
}

// SetVersion sets the version printed by the version command.
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// SetBootstrap registers the function that builds services before a command runs.
func SetBootstrap(b Bootstrap) {
	bootstrap = b
}

// SetServices sets the services used by all commands.
func SetServices(s *Services) {
	if s == nil {
		s = &Services{}
	}
	searchService = s.Search
	hydrationService = s.Hydration
	environmentService = s.Environment
	readmeService = s.Readme
	settingsService = s.Settings
	closeServices = s.Close
}

// Execute runs the root command and releases services afterwards.
func Execute() error {
	err := rootCmd.Execute()
	if closeServices != nil {
		closeServices()
	}
	return err
}

func setup(cmd *cobra.Command, args []string) error {
	logger.SetVerbose(globals.Verbose)

	if cmd == rootCmd && len(args) == 1 && globals.ProjectDir == "" {
		globals.ProjectDir = args[0]
	}
	if bootstrap == nil || cmd.Annotations[skipBootstrap] == "true" {
		return nil
	}

	opts := globals
	opts.Interactive = cmd == tuiCmd || (cmd == rootCmd && isTerminal())
	opts.Watch = opts.Interactive || cmd == mcpServeCmd

	services, err := bootstrap(cmd.Context(), opts)
	if err != nil {
		return err
	}
	SetServices(services)
	return nil
}

func runRoot(cmd *cobra.Command, _ []string) error {
	if !isTerminal() {
		return cmd.Help()
	}
	return runTUI(cmd, nil)
}

// isTerminal reports whether stdout is attached to a terminal.
func isTerminal() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func requireService(ok bool, name string) error {
	if !ok {
		return fmt.Errorf("%s: %w", name, errNotConfigured)
	}
	return nil
}
