// Package status provides status bar components for the TUI.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/seek/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/seek/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/seek/internal/core/domain"
)

// State represents the current application state for display.
type State string

const (
	StateReady     State = "ready"
	StateSearching State = "searching"
	StateError     State = "error"
	StateHelp      State = "help"
	StateResults   State = "results"
)

// Bar displays the search status, the active sort and scope, and keybinding hints.
type Bar struct {
	styles  *styles.Styles
	keymap  *keymap.KeyMap
	spinner spinner.Model
	state   State
	message string
	sort    domain.Sort
	scope   domain.Scope
	page    int
	pages   int
	width   int
}

// NewBar creates a new status bar component.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))
	sp.Style = s.Title

	return &Bar{
		styles:  s,
		keymap:  km,
		spinner: sp,
		state:   StateReady,
		sort:    domain.SortRelevance,
		scope:   domain.ScopeRegistry,
		width:   80,
	}
}

// Init initialises the status bar.
func (s *Bar) Init() tea.Cmd {
	return nil
}

// Update advances the spinner while a search is running.
func (s *Bar) Update(msg tea.Msg) (*Bar, tea.Cmd) {
	if _, ok := msg.(spinner.TickMsg); !ok || s.state != StateSearching {
		return s, nil
	}
	var cmd tea.Cmd
	s.spinner, cmd = s.spinner.Update(msg)
	return s, cmd
}

// Spin starts the spinner animation.
func (s *Bar) Spin() tea.Cmd {
	return s.spinner.Tick
}

// View renders the status bar. Key hints are dropped when they do not fit.
func (s *Bar) View() string {
	left := s.renderLeft()
	right := s.renderRight(true)
	if lipgloss.Width(left)+lipgloss.Width(right)+3 > s.width {
		right = s.renderRight(false)
	}

	padding := s.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if padding < 1 {
		padding = 1
	}

	return s.styles.StatusBar.Render(
		left + strings.Repeat(" ", padding) + right,
	)
}

func (s *Bar) renderLeft() string {
	switch s.state {
	case StateSearching:
		msg := s.message
		if msg == "" {
			msg = "Searching"
		}
		return s.spinner.View() + " " + s.styles.Muted.Render(msg)
	case StateError:
		if s.message != "" {
			return s.styles.Error.Render(fmt.Sprintf("Error: %s", s.message))
		}
		return s.styles.Error.Render("Error")
	case StateHelp:
		return s.styles.Normal.Render("Help")
	case StateReady, StateResults:
		if s.message != "" {
			return s.styles.Normal.Render(s.message)
		}
	}
	return s.styles.Muted.Render("Ready")
}

func (s *Bar) renderRight(withHints bool) string {
	parts := make([]string, 0, 3)
	if s.pages > 0 {
		parts = append(parts, fmt.Sprintf("page %d/%d", s.page, s.pages))
	}
	parts = append(parts,
		"sort: "+s.sort.Description(),
		"scope: "+s.scope.Description(),
	)

	if !withHints {
		return s.styles.Muted.Render(strings.Join(parts, " | "))
	}

	var bindings []key.Binding
	if s.state == StateResults {
		bindings = s.keymap.ResultsHelp()
	} else {
		bindings = s.keymap.ShortHelp()
	}
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, fmt.Sprintf("%s: %s", h.Key, h.Desc))
	}
	return s.styles.Muted.Render(strings.Join(parts, " | "))
}

// SetState sets the current state.
func (s *Bar) SetState(state State) {
	s.state = state
}

// State returns the current state.
func (s *Bar) State() State {
	return s.state
}

// SetMessage sets the message shown on the left.
func (s *Bar) SetMessage(message string) {
	s.message = message
}

// Message returns the current message.
func (s *Bar) Message() string {
	return s.message
}

// SetQuery records the sort and scope that the next search will use.
func (s *Bar) SetQuery(sort domain.Sort, scope domain.Scope) {
	s.sort = sort
	s.scope = scope
}

// SetPage records the current page and page count. A zero count hides the pager.
func (s *Bar) SetPage(page, pages int) {
	s.page = page
	s.pages = pages
}

// SetWidth sets the status bar width.
func (s *Bar) SetWidth(width int) {
	s.width = width
}

// Width returns the current width.
func (s *Bar) Width() int {
	return s.width
}

// Clear resets the status bar to default state.
func (s *Bar) Clear() {
	s.state = StateReady
	s.message = ""
	s.page = 0
	s.pages = 0
}
