// Package detail renders the metadata pane for the selected crate.
package detail

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/seek/internal/adapters/driving/tui/format"
	"github.com/custodia-labs/seek/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/seek/internal/core/domain"
)

const labelWidth = 12

// Pane shows the fields of one crate. Extended fields appear once the
// record has been hydrated.
type Pane struct {
	styles *styles.Styles
	crate  *domain.Crate
	width  int
	height int
}

// NewPane creates an empty detail pane.
func NewPane(s *styles.Styles) *Pane {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &Pane{styles: s, width: 40, height: 10}
}

// SetCrate sets the crate to display. Nil clears the pane.
func (p *Pane) SetCrate(c *domain.Crate) {
	p.crate = c
}

// Crate returns the displayed crate, or nil.
func (p *Pane) Crate() *domain.Crate {
	return p.crate
}

// SetDimensions sets the pane dimensions.
func (p *Pane) SetDimensions(width, height int) {
	p.width = width
	p.height = height
}

// View renders the pane.
func (p *Pane) View() string {
	if p.crate == nil {
		return p.styles.Muted.Render("No crate selected")
	}
	c := p.crate
	valueWidth := max(p.width-labelWidth-2, 10)

	lines := []string{p.styles.Title.Render(format.Truncate(c.Name, p.width))}
	if c.Description != "" {
		wrapped := lipgloss.NewStyle().Width(p.width).Render(strings.TrimSpace(c.Description))
		lines = append(lines, p.styles.Normal.Render(wrapped))
	}
	lines = append(lines, "")

	field := func(label, value string) {
		if value == "" {
			return
		}
		lines = append(lines, p.styles.Label.Render(format.Pad(label, labelWidth))+" "+
			p.styles.Normal.Render(format.Truncate(value, valueWidth)))
	}

	field("Version", c.Version)
	if c.InProject() {
		lines = append(lines, p.styles.Label.Render(format.Pad("Project", labelWidth))+" "+
			p.styles.Project.Render(c.ProjectVersion))
	}
	if c.Installed() {
		lines = append(lines, p.styles.Label.Render(format.Pad("Installed", labelWidth))+" "+
			p.styles.Installed.Render(c.InstalledVersion))
	}

	if !c.Hydrated {
		lines = append(lines, "", p.styles.Muted.Render("Loading details…"))
		return p.clip(lines)
	}

	field("Downloads", format.Count(c.Downloads))
	field("Recent", format.Count(c.RecentDownloads))
	field("Updated", format.Date(c.UpdatedAt))
	field("Created", format.Date(c.CreatedAt))
	field("Homepage", c.Homepage)
	field("Docs", c.Documentation)
	field("Repository", c.Repository)
	field("Keywords", strings.Join(c.Keywords, ", "))
	field("Categories", strings.Join(c.Categories, ", "))
	if len(c.Features) > 0 {
		field("Features", fmt.Sprintf("%d: %s", len(c.Features), strings.Join(c.Features, ", ")))
	}
	if c.Repository != "" {
		lines = append(lines, "", p.styles.Help.Render("r: readme"))
	}

	return p.clip(lines)
}

func (p *Pane) clip(lines []string) string {
	out := strings.Join(lines, "\n")
	if p.height > 0 {
		if split := strings.Split(out, "\n"); len(split) > p.height {
			out = strings.Join(split[:p.height], "\n")
		}
	}
	return out
}
