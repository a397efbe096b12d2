package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
	"github.com/strrl/elevate/internal/catalog"
)

// dashboardPage is read-only: the overview cards, the activity feed and
// the insight cards come straight from the catalog
type dashboardPage struct {
	env   *Env
	data  catalog.Dashboard
	width int
}

func newDashboardPage(env *Env) *dashboardPage {
	return &dashboardPage{env: env, data: env.Catalog.Dashboard()}
}

func (p *dashboardPage) Init() tea.Cmd { return nil }

func (p *dashboardPage) Update(tea.Msg) tea.Cmd { return nil }

func (p *dashboardPage) View() string {
	styles := p.env.Styles()
	width := max(p.width, 40)

	cardWidth := max((width-2)/max(len(p.data.Metrics), 1)-2, 16)
	metrics := make([]string, 0, len(p.data.Metrics))
	for _, m := range p.data.Metrics {
		metrics = append(metrics, styles.Card.Width(cardWidth).Render(lipgloss.JoinVertical(lipgloss.Left,
			styles.CardTitle.Render(m.Title),
			lipgloss.NewStyle().Bold(true).Render(m.Value),
			styles.Muted.Render(m.Note),
			renderProgressBar(m.Progress, cardWidth-4, styles),
		)))
	}

	var activity strings.Builder
	activity.WriteString(styles.CardTitle.Render("Recent Activity") + "\n")
	for _, a := range p.data.Activity {
		mark := styles.Success.Render("✓")
		if !a.Success {
			mark = styles.Error.Render("✗")
		}
		activity.WriteString(mark + " " + a.Text + "  " + styles.Muted.Render(a.Ago) + "\n")
	}

	insightWidth := max((width-2)/max(len(p.data.Insights), 1)-2, 20)
	insights := make([]string, 0, len(p.data.Insights))
	for _, in := range p.data.Insights {
		insights = append(insights, styles.Card.Width(insightWidth).Render(lipgloss.JoinVertical(lipgloss.Left,
			styles.CardTitle.Render(in.Title),
			wordwrap.String(in.Body, insightWidth-4),
			styles.Selected.Render("→ "+in.Action),
		)))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		styles.Title.Render("Dashboard Overview"),
		lipgloss.JoinHorizontal(lipgloss.Top, metrics...),
		styles.Card.Width(width-2).Render(strings.TrimRight(activity.String(), "\n")),
		styles.Subtitle.Render("AI Insights"),
		lipgloss.JoinHorizontal(lipgloss.Top, insights...),
	)
}

func (p *dashboardPage) SetSize(width, height int) {
	p.width = width
}

func (p *dashboardPage) Modal() bool { return false }

func (p *dashboardPage) Close() {}
