// Package search provides the main search view for the TUI.
package search

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/seek/internal/adapters/driving/tui/components/detail"
	"github.com/custodia-labs/seek/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/seek/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/seek/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/seek/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/seek/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/seek/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/seek/internal/core/domain"
	"github.com/custodia-labs/seek/internal/core/ports/driving"
	"github.com/custodia-labs/seek/internal/logger"
)

// chromeHeight is the number of rows taken by the header, input and status bar.
const chromeHeight = 8

// View is the search view: input, result list, detail pane and status bar.
// It issues searches through the search service and renders whatever
// result set the service delivers last.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	input     *input.SearchInput
	list      *list.CrateList
	detail    *detail.Pane
	statusbar *status.Bar

	searchService    driving.SearchService
	hydrationService driving.HydrationService

	sort  domain.Sort
	scope domain.Scope

	width      int
	height     int
	ready      bool
	err        error
	focusInput bool // true = typing a term, false = navigating results
}

// NewView creates a new search view. Sort and scope start from settings
// when a settings service is given.
func NewView(
	s *styles.Styles,
	km *keymap.KeyMap,
	searchService driving.SearchService,
	hydrationService driving.HydrationService,
	settingsService driving.SettingsService,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	defaults := domain.DefaultAppSettings().Search
	if settingsService != nil {
		if settings, err := settingsService.Get(); err == nil {
			defaults = settings.Search
		} else {
			logger.Warn("Failed to load settings, using defaults: %v", err)
		}
	}

	v := &View{
		styles:           s,
		keymap:           km,
		input:            input.NewSearchInput(s),
		list:             list.NewCrateList(s),
		detail:           detail.NewPane(s),
		statusbar:        status.NewBar(s, km),
		searchService:    searchService,
		hydrationService: hydrationService,
		sort:             defaults.Sort,
		scope:            defaults.Scope,
		width:            80,
		height:           24,
		focusInput:       true,
	}
	v.input.SetScope(v.scope)
	v.statusbar.SetQuery(v.sort, v.scope)
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return v.input.Init()
}

// Update handles messages for the search view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.ServiceEvent:
		return v, v.handleEvent(msg.Event)

	case messages.ErrorOccurred:
		v.showError(msg.Err)
		return v, nil
	}

	var cmd tea.Cmd
	v.statusbar, cmd = v.statusbar.Update(msg)
	if cmd != nil {
		return v, cmd
	}
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

// handleKeyMsg processes keyboard input.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	k := msg.String()

	switch {
	case keymap.Matches(k, v.keymap.CycleSort):
		v.sort = v.sort.Next()
		return v, v.requery("Sorting by: " + v.sort.Description())
	case keymap.Matches(k, v.keymap.CycleScope):
		v.scope = v.scope.Next()
		v.input.SetScope(v.scope)
		return v, v.requery("Scoped to: " + v.scope.Description())
	case k == "ctrl+r":
		return v, v.requestReadme()
	case keymap.Matches(k, v.keymap.Focus):
		v.toggleFocus()
		return v, nil
	}

	if v.focusInput {
		return v.handleInputKey(msg)
	}
	return v.handleResultsKey(msg)
}

func (v *View) handleInputKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	//nolint:exhaustive // handling only relevant key types
	switch msg.Type {
	case tea.KeyEnter:
		return v, v.submit()
	case tea.KeyEsc:
		if v.input.Value() != "" {
			v.input.Reset()
			return v, nil
		}
		if !v.list.IsEmpty() {
			v.focusResults()
		}
		return v, nil
	case tea.KeyUp, tea.KeyDown:
		if !v.list.IsEmpty() {
			v.focusResults()
			return v.handleResultsKey(msg)
		}
		return v, nil
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

func (v *View) handleResultsKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	k := msg.String()
	rs := v.list.Results()

	switch {
	case keymap.Matches(k, v.keymap.Quit):
		return v, tea.Quit
	case keymap.Matches(k, v.keymap.Help):
		return v, func() tea.Msg { return messages.ViewChanged{View: messages.ViewHelp} }
	case keymap.Matches(k, v.keymap.FocusInput), keymap.Matches(k, v.keymap.Back):
		v.focusSearchInput()
		return v, nil
	case keymap.Matches(k, v.keymap.Up):
		v.list.MoveUp()
		v.hydrateSelected()
		return v, nil
	case keymap.Matches(k, v.keymap.Down):
		v.list.MoveDown()
		v.hydrateSelected()
		return v, nil
	case keymap.Matches(k, v.keymap.Readme), k == "enter":
		return v, v.requestReadme()
	}

	if rs == nil {
		return v, nil
	}
	switch {
	case keymap.Matches(k, v.keymap.PrevPages):
		return v, v.goTo(rs.GoBackPages(keymap.PageJump))
	case keymap.Matches(k, v.keymap.NextPages):
		return v, v.goTo(rs.GoForwardPages(keymap.PageJump))
	case keymap.Matches(k, v.keymap.PrevPage):
		return v, v.goTo(rs.GoBackPages(1))
	case keymap.Matches(k, v.keymap.NextPage):
		return v, v.goTo(rs.GoForwardPages(1))
	case keymap.Matches(k, v.keymap.FirstPage):
		return v, v.goTo(rs.GoToFirstPage())
	case keymap.Matches(k, v.keymap.LastPage):
		return v, v.goTo(rs.GoToLastPage())
	}
	return v, nil
}

// submit searches for the typed term on page one.
func (v *View) submit() tea.Cmd {
	return v.search(domain.SearchRequest{
		Term:  v.input.Value(),
		Sort:  v.sort,
		Scope: v.scope,
		Page:  1,
	}, "Searching")
}

// requery reissues the last search on page one with the current sort and scope.
// Without results only the status line changes.
func (v *View) requery(message string) tea.Cmd {
	v.statusbar.SetQuery(v.sort, v.scope)
	rs := v.list.Results()
	if rs == nil {
		v.statusbar.SetState(status.StateReady)
		v.statusbar.SetMessage(message)
		return nil
	}
	req := rs.Request
	req.Sort = v.sort
	req.Scope = v.scope
	req.Page = 1
	return v.search(req, message)
}

// goTo requests another page of the current search.
func (v *View) goTo(req domain.SearchRequest, ok bool) tea.Cmd {
	if !ok {
		return nil
	}
	return v.search(req, fmt.Sprintf("Loading page %d", req.Page))
}

// search hands req to the search service, which replies with a ServiceEvent.
func (v *View) search(req domain.SearchRequest, message string) tea.Cmd {
	if v.searchService == nil {
		v.showError(ErrNoSearchService)
		return nil
	}
	v.err = nil
	v.statusbar.SetState(status.StateSearching)
	v.statusbar.SetMessage(message)
	v.searchService.Search(req)
	return v.statusbar.Spin()
}

// handleEvent applies a service event to the view.
func (v *View) handleEvent(e domain.Event) tea.Cmd {
	switch e := e.(type) {
	case domain.SearchCompleted:
		v.showResults(e.Results)
	case domain.SearchFailed:
		v.showError(e.Err)
	case domain.CrateHydrated, domain.EnvironmentRefreshed:
		// Records are updated in place; the next render picks them up.
	}
	return nil
}

// showResults renders a completed result set and selects the exact match,
// falling back to the first record.
func (v *View) showResults(rs *domain.ResultSet) {
	if rs == nil {
		return
	}
	v.err = nil
	v.list.SetResults(rs)
	if i, ok := rs.ExactMatchIndex(); ok {
		rs.Select(i)
	} else {
		rs.SelectFirst()
	}

	v.statusbar.SetState(status.StateResults)
	v.statusbar.SetPage(rs.CurrentPage(), max(rs.PageCount(), 1))
	if n := rs.Len(); n > 0 {
		v.statusbar.SetMessage(fmt.Sprintf("Loaded %d results", n))
		v.focusResults()
	} else {
		v.statusbar.SetMessage("No crates found")
	}
	v.hydrateSelected()
}

func (v *View) showError(err error) {
	if err == nil {
		return
	}
	v.err = err
	v.statusbar.SetState(status.StateError)
	v.statusbar.SetMessage(err.Error())
}

// hydrateSelected asks for details of the selected crate if it has none yet.
// Otherwise any pending hydration is dropped so it cannot land on a record
// the selection has left.
func (v *View) hydrateSelected() {
	if v.hydrationService == nil {
		return
	}
	c, ok := v.list.Selected()
	if !ok || !v.hydrationService.NeedsHydration(c) {
		v.hydrationService.Cancel()
		return
	}
	v.hydrationService.RequestHydration(c.ID)
}

func (v *View) requestReadme() tea.Cmd {
	c, ok := v.list.Selected()
	if !ok {
		return nil
	}
	return func() tea.Msg { return messages.ReadmeRequested{Crate: c} }
}

func (v *View) toggleFocus() {
	if v.focusInput && !v.list.IsEmpty() {
		v.focusResults()
		return
	}
	v.focusSearchInput()
}

func (v *View) focusResults() {
	v.focusInput = false
	v.input.Blur()
	v.list.Focus()
}

func (v *View) focusSearchInput() {
	v.focusInput = true
	v.input.Focus()
	v.list.Blur()
}

// View renders the search view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := make([]string, 0, 8)
	sections = append(sections, v.styles.Title.Render("seek"), v.input.View())

	if v.err != nil {
		sections = append(sections, v.styles.Error.Render("Error: "+v.err.Error()))
	}

	body := v.list.View()
	if c, ok := v.list.Selected(); ok {
		v.detail.SetCrate(&c)
		body = lipgloss.JoinHorizontal(lipgloss.Top,
			body,
			lipgloss.NewStyle().PaddingLeft(2).Render(v.detail.View()),
		)
	} else {
		v.detail.SetCrate(nil)
	}
	sections = append(sections, body, "", v.statusbar.View())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// SetDimensions splits the width between the list and the detail pane.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	bodyHeight := max(height-chromeHeight, 3)
	listWidth := width * 3 / 5
	v.input.SetWidth(width)
	v.list.SetDimensions(listWidth, bodyHeight)
	v.detail.SetDimensions(width-listWidth-2, bodyHeight)
	v.statusbar.SetWidth(width)
}

// Width returns the current width.
func (v *View) Width() int {
	return v.width
}

// Height returns the current height.
func (v *View) Height() int {
	return v.height
}

// Ready returns whether the view is ready to render.
func (v *View) Ready() bool {
	return v.ready
}

// Query returns the current search term.
func (v *View) Query() string {
	return v.input.Value()
}

// SetQuery sets the search term.
func (v *View) SetQuery(query string) {
	v.input.SetValue(query)
}

// Sort returns the sort the next search will use.
func (v *View) Sort() domain.Sort {
	return v.sort
}

// Scope returns the scope the next search will use.
func (v *View) Scope() domain.Scope {
	return v.scope
}

// Results returns the displayed result set, or nil.
func (v *View) Results() *domain.ResultSet {
	return v.list.Results()
}

// Selected returns a copy of the selected crate.
func (v *View) Selected() (domain.Crate, bool) {
	return v.list.Selected()
}

// Status returns the status bar state and message.
func (v *View) Status() (status.State, string) {
	return v.statusbar.State(), v.statusbar.Message()
}

// Err returns the current error, if any.
func (v *View) Err() error {
	return v.err
}

// ClearError clears the current error.
func (v *View) ClearError() {
	v.err = nil
	v.statusbar.SetState(status.StateReady)
	v.statusbar.SetMessage("")
}

// InputFocused returns whether the input has focus.
func (v *View) InputFocused() bool {
	return v.focusInput
}
