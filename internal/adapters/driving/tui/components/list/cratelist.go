// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/seek/internal/adapters/driving/tui/format"
	"github.com/custodia-labs/seek/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/seek/internal/core/domain"
)

const (
	versionWidth   = 12
	downloadsWidth = 13
	markersWidth   = 3
	minNameWidth   = 12
)

// CrateList displays one page of a result set.
// Selection lives in the result set so it survives hydration and refreshes.
type CrateList struct {
	results *domain.ResultSet
	styles  *styles.Styles
	offset  int
	focused bool
	width   int
	height  int
}

// NewCrateList creates an empty crate list.
func NewCrateList(s *styles.Styles) *CrateList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &CrateList{
		styles: s,
		width:  80,
		height: 10,
	}
}

// Init initialises the crate list.
func (l *CrateList) Init() tea.Cmd {
	return nil
}

// Update handles list navigation messages.
func (l *CrateList) Update(msg tea.Msg) (*CrateList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			l.MoveUp()
		case "down", "j":
			l.MoveDown()
		}
	}
	return l, nil
}

// View renders the visible rows.
func (l *CrateList) View() string {
	if l.IsEmpty() {
		return l.styles.Muted.Render("No results")
	}

	lines := make([]string, 0, l.height)
	lines = append(lines, l.styles.Subtitle.Render(l.header()), "")

	visible := l.visibleRows()
	l.scrollTo(visible)

	records := l.results.Records()
	selected, hasSelection := l.results.SelectedIndex()
	end := min(l.offset+visible, len(records))
	for i := l.offset; i < end; i++ {
		lines = append(lines, l.renderRow(&records[i], hasSelection && i == selected))
	}

	return strings.Join(lines, "\n")
}

func (l *CrateList) header() string {
	rs := l.results
	return fmt.Sprintf("Results (page %d of %d, %s total)",
		rs.CurrentPage(), max(rs.PageCount(), 1), format.Int(rs.TotalCount))
}

func (l *CrateList) renderRow(c *domain.Crate, selected bool) string {
	nameWidth := max(l.width-versionWidth-downloadsWidth-markersWidth-8, minNameWidth)

	indicator := "  "
	if selected {
		indicator = "> "
	}

	name := format.Pad(c.Name, nameWidth)
	version := format.Pad(c.Version, versionWidth)
	downloads := format.PadLeft(format.Count(c.Downloads), downloadsWidth)

	if selected {
		return l.styles.Selected.Render(fmt.Sprintf("%s%s %s %s %s",
			indicator, name, version, downloads, l.plainMarkers(c)))
	}

	nameStyle := l.styles.Normal
	if c.ExactMatch {
		nameStyle = nameStyle.Bold(true)
	}
	return indicator + nameStyle.Render(name) + " " +
		l.styles.Muted.Render(version) + " " +
		l.styles.Normal.Render(downloads) + " " +
		l.markers(c)
}

// markers renders the P and I badges.
func (l *CrateList) markers(c *domain.Crate) string {
	p, i := " ", " "
	if c.InProject() {
		p = l.styles.Project.Render("P")
	}
	if c.Installed() {
		i = l.styles.Installed.Render("I")
	}
	return p + " " + i
}

func (l *CrateList) plainMarkers(c *domain.Crate) string {
	p, i := " ", " "
	if c.InProject() {
		p = "P"
	}
	if c.Installed() {
		i = "I"
	}
	return p + " " + i
}

// visibleRows is the number of rows that fit below the header.
func (l *CrateList) visibleRows() int {
	return max(l.height-2, 1)
}

// scrollTo keeps the selected row within the window.
func (l *CrateList) scrollTo(visible int) {
	selected, ok := l.results.SelectedIndex()
	if !ok {
		l.offset = 0
		return
	}
	if selected < l.offset {
		l.offset = selected
	}
	if selected >= l.offset+visible {
		l.offset = selected - visible + 1
	}
	l.offset = max(min(l.offset, l.results.Len()-visible), 0)
}

// SetResults replaces the displayed result set.
func (l *CrateList) SetResults(rs *domain.ResultSet) {
	l.results = rs
	l.offset = 0
}

// Results returns the displayed result set, or nil.
func (l *CrateList) Results() *domain.ResultSet {
	return l.results
}

// Selected returns a copy of the selected crate.
func (l *CrateList) Selected() (domain.Crate, bool) {
	if l.results == nil {
		return domain.Crate{}, false
	}
	return l.results.Selected()
}

// SelectedIndex returns the selected row.
func (l *CrateList) SelectedIndex() (int, bool) {
	if l.results == nil {
		return 0, false
	}
	return l.results.SelectedIndex()
}

// MoveUp moves the selection up one row.
func (l *CrateList) MoveUp() {
	if l.results != nil {
		l.results.SelectPrevious()
	}
}

// MoveDown moves the selection down one row.
func (l *CrateList) MoveDown() {
	if l.results != nil {
		l.results.SelectNext()
	}
}

// Focus marks the list as receiving navigation keys.
func (l *CrateList) Focus() {
	l.focused = true
}

// Blur removes focus from the list.
func (l *CrateList) Blur() {
	l.focused = false
}

// Focused returns whether the list has focus.
func (l *CrateList) Focused() bool {
	return l.focused
}

// SetDimensions sets the component dimensions.
func (l *CrateList) SetDimensions(width, height int) {
	l.width = width
	l.height = height
}

// Width returns the current width.
func (l *CrateList) Width() int {
	return l.width
}

// Height returns the current height.
func (l *CrateList) Height() int {
	return l.height
}

// Count returns the number of records on the page.
func (l *CrateList) Count() int {
	if l.results == nil {
		return 0
	}
	return l.results.Len()
}

// IsEmpty returns whether the list has no records.
func (l *CrateList) IsEmpty() bool {
	return l.Count() == 0
}
