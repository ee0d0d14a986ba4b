// Package readme provides the README view for the TUI.
package readme

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/seek/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/seek/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/seek/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/seek/internal/core/domain"
)

// View shows the README of one crate in a scrollable viewport.
type View struct {
	styles   *styles.Styles
	keymap   *keymap.KeyMap
	viewport viewport.Model

	crateID string
	name    string
	loading bool
	err     error

	width  int
	height int
}

// NewView creates a new README view.
func NewView(s *styles.Styles, km *keymap.KeyMap) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	return &View{
		styles:   s,
		keymap:   km,
		viewport: viewport.New(80, 20),
		width:    80,
		height:   24,
	}
}

// Load resets the view for c while its README is fetched.
func (v *View) Load(c domain.Crate) {
	v.crateID = c.ID
	v.name = c.Name
	v.loading = true
	v.err = nil
	v.viewport.SetContent("")
	v.viewport.GotoTop()
}

// SetContent shows the fetched README. Results for a crate other than the
// one being loaded are ignored.
func (v *View) SetContent(crateID, text string, err error) {
	if crateID != v.crateID {
		return
	}
	v.loading = false
	v.err = err
	if err != nil {
		return
	}
	v.viewport.SetContent(lipgloss.NewStyle().Width(v.viewport.Width).Render(text))
	v.viewport.GotoTop()
}

// Update handles scrolling and leaving the view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		k := msg.String()
		if keymap.Matches(k, v.keymap.Back) || k == "q" {
			return v, func() tea.Msg { return messages.ViewChanged{View: messages.ViewSearch} }
		}
	}
	var cmd tea.Cmd
	v.viewport, cmd = v.viewport.Update(msg)
	return v, cmd
}

// View renders the README view.
func (v *View) View() string {
	title := v.styles.Title.Render("README: " + v.name)

	var body string
	switch {
	case v.loading:
		body = v.styles.Muted.Render("Loading README…")
	case errors.Is(v.err, domain.ErrReadmeUnavailable):
		body = v.styles.Muted.Render(fmt.Sprintf("No README available for %s", v.name))
	case v.err != nil:
		body = v.styles.Error.Render("Error: " + v.err.Error())
	default:
		body = v.viewport.View()
	}

	footer := v.styles.Help.Render(fmt.Sprintf("esc: back | ↑/↓: scroll | %3.f%%", v.viewport.ScrollPercent()*100))
	return lipgloss.JoinVertical(lipgloss.Left, title, "", body, "", footer)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.viewport.Width = width
	v.viewport.Height = max(height-4, 1)
}

// CrateID returns the id of the crate being shown.
func (v *View) CrateID() string {
	return v.crateID
}

// Loading returns whether the README is still being fetched.
func (v *View) Loading() bool {
	return v.loading
}

// Err returns the fetch error, if any.
func (v *View) Err() error {
	return v.err
}
