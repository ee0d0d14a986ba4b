package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/seek/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/seek/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/seek/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/seek/internal/adapters/driving/tui/views/readme"
	"github.com/custodia-labs/seek/internal/adapters/driving/tui/views/search"
	"github.com/custodia-labs/seek/internal/core/domain"
	"github.com/custodia-labs/seek/internal/logger"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	styles *styles.Styles
	keymap *keymap.KeyMap
	help   help.Model

	searchView *search.View
	readmeView *readme.View

	// currentView tracks which view is active.
	currentView messages.ViewType

	width  int
	height int
	ready  bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	h := help.New()
	h.ShowAll = true

	return &App{
		ports:       ports,
		ctx:         context.Background(),
		styles:      s,
		keymap:      km,
		help:        h,
		searchView:  search.NewView(s, km, ports.Search, ports.Hydration, ports.Settings),
		readmeView:  readme.NewView(s, km),
		currentView: messages.ViewSearch,
	}, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	if ctx != nil {
		a.ctx = ctx
	}
	return a
}

// Init implements tea.Model.
// It starts listening for service events.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle("seek"),
		a.listen(),
		a.searchView.Init(),
	)
}

// listen waits for the next service event. It is re-armed after every event.
func (a *App) listen() tea.Cmd {
	events := a.ports.Search.Events()
	return func() tea.Msg {
		e, ok := <-events
		if !ok {
			return messages.EventsClosed{}
		}
		return messages.ServiceEvent{Event: e}
	}
}

// Update implements tea.Model.
// It handles messages and updates the model state.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		return a, a.handleKey(msg)

	case messages.ServiceEvent:
		a.searchView, cmd = a.searchView.Update(msg)
		return a, tea.Batch(cmd, a.listen())

	case messages.EventsClosed:
		logger.Debug("Search event stream closed")
		return a, nil

	case messages.ReadmeRequested:
		return a, a.openReadme(msg.Crate)

	case messages.ReadmeLoaded:
		if msg.Err != nil {
			logger.Debug("README for %s: %v", msg.CrateID, msg.Err)
		}
		a.readmeView.SetContent(msg.CrateID, msg.Text, msg.Err)
		return a, nil

	case messages.ViewChanged:
		a.currentView = msg.View
		return a, nil

	case messages.ErrorOccurred:
		a.searchView, cmd = a.searchView.Update(msg)
		return a, cmd

	case messages.Quit:
		return a, tea.Quit
	}

	// Spinner ticks and cursor blinks belong to the search view.
	a.searchView, cmd = a.searchView.Update(msg)
	return a, cmd
}

func (a *App) handleKey(msg tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd
	switch a.currentView {
	case messages.ViewReadme:
		a.readmeView, cmd = a.readmeView.Update(msg)
	case messages.ViewHelp:
		k := msg.String()
		if keymap.Matches(k, a.keymap.Back) || keymap.Matches(k, a.keymap.Help) || k == "q" {
			a.currentView = messages.ViewSearch
		}
	case messages.ViewSearch:
		a.searchView, cmd = a.searchView.Update(msg)
	}
	return cmd
}

// openReadme switches to the README view and fetches the README in the background.
func (a *App) openReadme(c domain.Crate) tea.Cmd {
	if a.ports.Readme == nil {
		return func() tea.Msg {
			return messages.ErrorOccurred{Err: domain.ErrReadmeUnavailable}
		}
	}

	a.readmeView.Load(c)
	a.currentView = messages.ViewReadme

	ctx, svc := a.ctx, a.ports.Readme
	return func() tea.Msg {
		text, err := svc.Readme(ctx, c)
		return messages.ReadmeLoaded{CrateID: c.ID, Text: text, Err: err}
	}
}

// View implements tea.Model.
// It renders the current view as a string.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewReadme:
		return a.readmeView.View()
	case messages.ViewHelp:
		return a.viewHelp()
	default:
		return a.searchView.View()
	}
}

// viewHelp renders the key bindings and a summary of the environment.
func (a *App) viewHelp() string {
	sections := []string{
		a.styles.Title.Render("seek help"),
		"",
		a.help.FullHelpView(a.keymap.FullHelp()),
		"",
		a.environmentSummary(),
		"",
		a.styles.Help.Render("[esc] back to search"),
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (a *App) environmentSummary() string {
	if a.ports.Environment == nil {
		return ""
	}
	env := a.ports.Environment.Snapshot()

	var b strings.Builder
	if env.HasProject() {
		deps := 0
		for _, pkg := range env.Project.Packages {
			deps += len(pkg.Dependencies)
		}
		fmt.Fprintf(&b, "%s %s (%d dependencies)\n",
			a.styles.Label.Render("Project:"), env.Project.ManifestPath, deps)
	} else {
		fmt.Fprintf(&b, "%s none\n", a.styles.Label.Render("Project:"))
	}
	fmt.Fprintf(&b, "%s %d installed binaries", a.styles.Label.Render("Installed:"), len(env.Installed))
	return b.String()
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Results returns the displayed result set, or nil.
func (a *App) Results() *domain.ResultSet {
	return a.searchView.Results()
}

// Query returns the current search term.
func (a *App) Query() string {
	return a.searchView.Query()
}

// Err returns the last error shown by the search view.
func (a *App) Err() error {
	return a.searchView.Err()
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions on every view.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.searchView.SetDimensions(width, height)
	a.readmeView.SetDimensions(width, height)
}
