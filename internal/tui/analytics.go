package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/strrl/elevate/internal/analytics"
	"go.uber.org/zap"
)

var errNoEngine = errors.New("analytics engine unavailable")

var analyticsTabs = []string{"Financial", "Customers"}

type analyticsPage struct {
	env      *Env
	instance string
	ctx      context.Context
	cancel   context.CancelFunc

	tab       int
	loading   bool
	err       error
	financial analytics.FinancialReport
	customers analytics.CustomerReport
	spinner   *Spinner

	width int
}

func newAnalyticsPage(env *Env) *analyticsPage {
	ctx, cancel := context.WithCancel(context.Background())
	return &analyticsPage{
		env:      env,
		instance: uuid.New().String(),
		ctx:      ctx,
		cancel:   cancel,
		spinner:  NewSpinner(),
	}
}

func (p *analyticsPage) Init() tea.Cmd {
	if p.env.Analytics == nil {
		p.err = errNoEngine
		return nil
	}
	p.loading = true
	return tea.Batch(
		loadAnalyticsCmd(p.ctx, p.env.Analytics, p.instance),
		spinnerTickCmd(p.instance),
	)
}

func (p *analyticsPage) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case analyticsLoadedMsg:
		if msg.Instance != p.instance {
			return nil
		}
		p.loading = false
		if msg.Error != nil {
			p.err = msg.Error
			p.env.Logger.Warn("Failed to load analytics", zap.Error(msg.Error))
			return nil
		}
		p.financial = msg.Financial
		p.customers = msg.Customers
	case spinnerTickMsg:
		if msg.Instance == p.instance && p.loading {
			p.spinner.Next()
			return spinnerTickCmd(p.instance)
		}
	case tea.KeyMsg:
		switch msg.String() {
		case "tab", "right", "l", "shift+tab", "left", "h":
			p.tab = 1 - p.tab
		}
	}
	return nil
}

func (p *analyticsPage) View() string {
	styles := p.env.Styles()
	parts := []string{
		styles.Title.Render("Analytics"),
		styles.Tabs(analyticsTabs, p.tab),
	}

	switch {
	case p.err != nil:
		parts = append(parts, styles.Error.Render(fmt.Sprintf("Analytics unavailable: %v", p.err)))
	case p.loading:
		parts = append(parts, pendingIndicator(p.spinner, styles, "Loading analytics..."))
	case p.tab == 0:
		parts = append(parts, p.financialView(styles))
	default:
		parts = append(parts, p.customersView(styles))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (p *analyticsPage) cardWidth() int {
	return max((p.width-6)/3, 18)
}

func (p *analyticsPage) financialView(styles Styles) string {
	latest := p.financial.Latest
	w := p.cardWidth()
	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		kpiCard(styles, w, "Revenue", "Total revenue this month", dollars(latest.Revenue), latest.RevenueChange),
		kpiCard(styles, w, "Expenses", "Total expenses this month", dollars(latest.Expenses), latest.ExpensesChange),
		kpiCard(styles, w, "Profit", "Net profit this month", dollars(latest.Profit), latest.ProfitChange),
	)

	var peak int64
	for _, r := range p.financial.Rows {
		peak = max(peak, abs(r.Revenue), abs(r.Expenses), abs(r.Profit))
	}
	barWidth := max(p.width-30, 10)
	chart := styles.Palette.Chart

	var b strings.Builder
	b.WriteString(styles.CardTitle.Render("Financial Overview") + "\n")
	b.WriteString(styles.Muted.Render("Revenue, Expenses, and Profit over time") + "\n")
	for _, r := range p.financial.Rows {
		b.WriteString(fmt.Sprintf("%-4s %-9s %s\n", r.Month, "revenue", renderBar(r.Revenue, peak, barWidth, chart[0])))
		b.WriteString(fmt.Sprintf("%-4s %-9s %s\n", "", "expenses", renderBar(r.Expenses, peak, barWidth, chart[1])))
		b.WriteString(fmt.Sprintf("%-4s %-9s %s %s\n", "", "profit", renderBar(r.Profit, peak, barWidth, chart[2]), styles.Muted.Render(dollars(r.Profit))))
	}
	return lipgloss.JoinVertical(lipgloss.Left, cards, styles.Card.Width(max(p.width-2, 30)).Render(b.String()))
}

func (p *analyticsPage) customersView(styles Styles) string {
	latest := p.customers.Latest
	w := p.cardWidth()
	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		kpiCard(styles, w, "Total Customers", "Active customers this month", humanize.Comma(latest.Total), p.customers.TotalChange),
		kpiCard(styles, w, "New Customers", "New sign-ups this month", humanize.Comma(latest.New), latest.NewChange),
		pointsCard(styles, w, "Churn Rate", "Customer churn this month", fmt.Sprintf("%.1f%%", latest.ChurnRate), p.customers.ChurnRateChange),
	)

	var peak int64
	for _, r := range p.customers.Rows {
		peak = max(peak, r.New, r.Churned)
	}
	barWidth := max(p.width-30, 10)
	chart := styles.Palette.Chart

	var b strings.Builder
	b.WriteString(styles.CardTitle.Render("Customer Growth") + "\n")
	b.WriteString(styles.Muted.Render("New and churned customers over time") + "\n")
	for _, r := range p.customers.Rows {
		b.WriteString(fmt.Sprintf("%-4s %-8s %s %d\n", r.Month, "new", renderBar(r.New, peak, barWidth, chart[0]), r.New))
		b.WriteString(fmt.Sprintf("%-4s %-8s %s %d\n", "", "churned", renderBar(r.Churned, peak, barWidth, chart[1]), r.Churned))
	}
	return lipgloss.JoinVertical(lipgloss.Left, cards, styles.Card.Width(max(p.width-2, 30)).Render(b.String()))
}

func kpiCard(styles Styles, width int, title, desc, value string, c analytics.Change) string {
	note := "no prior month"
	if c.Valid {
		note = fmt.Sprintf("%+.0f%% from last month", c.Percent)
	}
	return metricCard(styles, width, title, desc, value, note)
}

func pointsCard(styles Styles, width int, title, desc, value string, c analytics.Change) string {
	note := "no prior month"
	if c.Valid {
		note = fmt.Sprintf("%+.1f pts from last month", c.Percent)
	}
	return metricCard(styles, width, title, desc, value, note)
}

func metricCard(styles Styles, width int, title, desc, value, note string) string {
	return styles.Card.Width(width).Render(lipgloss.JoinVertical(lipgloss.Left,
		styles.CardTitle.Render(title),
		styles.Muted.Render(desc),
		lipgloss.NewStyle().Bold(true).Render(value),
		styles.Muted.Render(note),
	))
}

func dollars(v int64) string {
	if v < 0 {
		return "-$" + humanize.Comma(-v)
	}
	return "$" + humanize.Comma(v)
}

func abs(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}

func (p *analyticsPage) SetSize(width, height int) {
	p.width = width
}

func (p *analyticsPage) Modal() bool {
	return false
}

func (p *analyticsPage) Help() []key.Binding {
	return []key.Binding{binding([]string{"tab"}, "tab", "financial/customers")}
}

func (p *analyticsPage) Close() {
	p.cancel()
}
