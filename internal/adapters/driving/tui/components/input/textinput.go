// Package input provides text input components for the TUI.
package input

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/seek/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/seek/internal/core/domain"
)

// minInputWidth is the narrowest the text field gets.
const minInputWidth = 20

// SearchInput wraps a bubbles textinput and shows the active scope in its label.
type SearchInput struct {
	textinput textinput.Model
	styles    *styles.Styles
	scope     domain.Scope
	width     int
}

// NewSearchInput creates a new search input component.
func NewSearchInput(s *styles.Styles) *SearchInput {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ti := textinput.New()
	ti.Placeholder = "Search crates..."
	ti.Prompt = ""
	ti.Focus()
	ti.CharLimit = 64
	ti.Width = 50

	return &SearchInput{
		textinput: ti,
		styles:    s,
		scope:     domain.ScopeRegistry,
		width:     50,
	}
}

// Init initialises the search input.
func (s *SearchInput) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles input messages.
func (s *SearchInput) Update(msg tea.Msg) (*SearchInput, tea.Cmd) {
	var cmd tea.Cmd
	s.textinput, cmd = s.textinput.Update(msg)
	return s, cmd
}

// View renders the search input.
func (s *SearchInput) View() string {
	label := s.styles.Title.Render(s.Label())
	field := s.styles.InputField
	if !s.textinput.Focused() {
		field = field.BorderForeground(s.styles.Theme().Muted)
	}
	//nolint:misspell // lipgloss.Center is the correct constant from the library
	return lipgloss.JoinHorizontal(lipgloss.Center, label, field.Render(s.textinput.View()))
}

// Label returns the label shown before the field.
func (s *SearchInput) Label() string {
	return "Search " + s.scope.Description() + ": "
}

// SetScope sets the scope shown in the label.
func (s *SearchInput) SetScope(scope domain.Scope) {
	s.scope = scope
}

// Value returns the current input value.
func (s *SearchInput) Value() string {
	return s.textinput.Value()
}

// SetValue sets the input value.
func (s *SearchInput) SetValue(value string) {
	s.textinput.SetValue(value)
}

// Focus sets focus on the input.
func (s *SearchInput) Focus() tea.Cmd {
	return s.textinput.Focus()
}

// Blur removes focus from the input.
func (s *SearchInput) Blur() {
	s.textinput.Blur()
}

// Focused returns whether the input is focused.
func (s *SearchInput) Focused() bool {
	return s.textinput.Focused()
}

// SetWidth sets the width of the input.
func (s *SearchInput) SetWidth(width int) {
	s.width = width
	// label plus border and padding
	s.textinput.Width = max(width-lipgloss.Width(s.Label())-6, minInputWidth)
}

// Width returns the current width.
func (s *SearchInput) Width() int {
	return s.width
}

// Reset clears the input.
func (s *SearchInput) Reset() {
	s.textinput.Reset()
}
