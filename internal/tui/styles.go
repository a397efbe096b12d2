package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/strrl/elevate/internal/theme"
	"github.com/strrl/elevate/pkg/models"
)

// Styles are the lipgloss styles of one theme mode
type Styles struct {
	Palette theme.Palette

	Header       lipgloss.Style
	Brand        lipgloss.Style
	Footer       lipgloss.Style
	Sidebar      lipgloss.Style
	NavItem      lipgloss.Style
	NavActive    lipgloss.Style
	NavCursor    lipgloss.Style
	Title        lipgloss.Style
	Subtitle     lipgloss.Style
	Muted        lipgloss.Style
	Card         lipgloss.Style
	CardTitle    lipgloss.Style
	TabActive    lipgloss.Style
	TabInactive  lipgloss.Style
	Selected     lipgloss.Style
	UserBubble   lipgloss.Style
	AIBubble     lipgloss.Style
	Toast        lipgloss.Style
	Error        lipgloss.Style
	Success      lipgloss.Style
	InputFocused lipgloss.Style
	InputBlurred lipgloss.Style
	Dialog       lipgloss.Style
}

func newStyles(mode theme.Mode) Styles {
	p := theme.PaletteFor(mode)
	base := lipgloss.NewStyle()

	return Styles{
		Palette: p,

		Header:      base.Copy().Padding(0, 1).Foreground(p.Foreground),
		Brand:       base.Copy().Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("63")).Padding(0, 1),
		Footer:      base.Copy().Foreground(p.Muted).Padding(0, 1),
		Sidebar:     base.Copy().BorderStyle(lipgloss.NormalBorder()).BorderRight(true).BorderForeground(p.Border).Padding(0, 1),
		NavItem:     base.Copy().Foreground(p.Foreground),
		NavActive:   base.Copy().Foreground(p.Accent).Bold(true),
		NavCursor:   base.Copy().Foreground(p.Primary).Bold(true),
		Title:       base.Copy().Bold(true).Foreground(p.Foreground).MarginBottom(1),
		Subtitle:    base.Copy().Bold(true).Foreground(lipgloss.Color("229")),
		Muted:       base.Copy().Foreground(p.Muted),
		Card:        base.Copy().Border(lipgloss.RoundedBorder()).BorderForeground(p.Border).Padding(0, 1),
		CardTitle:   base.Copy().Bold(true).Foreground(p.Foreground),
		TabActive:   base.Copy().Bold(true).Foreground(p.Accent).Underline(true).Padding(0, 1),
		TabInactive: base.Copy().Foreground(p.Muted).Padding(0, 1),
		Selected:    base.Copy().Foreground(p.Accent).Bold(true),
		UserBubble: base.Copy().Border(lipgloss.RoundedBorder()).BorderForeground(p.Primary).
			Foreground(p.Foreground).Padding(0, 1),
		AIBubble: base.Copy().Border(lipgloss.RoundedBorder()).BorderForeground(p.Subtle).
			Foreground(p.Muted).Padding(0, 1),
		Toast:        base.Copy().Foreground(p.Background).Background(p.Success).Padding(0, 1),
		Error:        base.Copy().Foreground(p.Destructive).Bold(true),
		Success:      base.Copy().Foreground(p.Success),
		InputFocused: base.Copy().Border(lipgloss.NormalBorder()).BorderForeground(p.Primary).Padding(0, 1),
		InputBlurred: base.Copy().Border(lipgloss.NormalBorder()).BorderForeground(p.Subtle).Padding(0, 1),
		Dialog:       base.Copy().Border(lipgloss.DoubleBorder()).BorderForeground(p.Primary).Padding(1, 2),
	}
}

// Badge renders a project status pill
func (s Styles) Badge(status models.ProjectStatus) string {
	bg := s.Palette.Primary
	switch status {
	case models.StatusCompleted:
		bg = s.Palette.Subtle
	case models.StatusOnHold:
		bg = s.Palette.Destructive
	}
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("255")).
		Background(bg).
		Padding(0, 1).
		Render(string(status))
}

// Switch renders an on/off toggle
func (s Styles) Switch(on bool) string {
	if on {
		return s.Success.Render("[on ]")
	}
	return s.Muted.Render("[off]")
}

// Tabs renders a tab row with the active index highlighted
func (s Styles) Tabs(labels []string, active int) string {
	parts := make([]string, len(labels))
	for i, l := range labels {
		if i == active {
			parts[i] = s.TabActive.Render(l)
		} else {
			parts[i] = s.TabInactive.Render(l)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}
