package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
	"github.com/strrl/elevate/internal/projects"
	"github.com/strrl/elevate/pkg/models"
	"go.uber.org/zap"
)

const (
	fieldName = iota
	fieldDescription
	fieldDueDate
	fieldCount
)

type projectsPage struct {
	env *Env

	board    *projects.Board
	filter   int
	list     viewport.Model
	creating bool
	fields   [fieldCount]textinput.Model
	focus    int

	width  int
	height int
}

func newProjectsPage(env *Env) *projectsPage {
	p := &projectsPage{
		env:   env,
		board: projects.NewBoard(env.Catalog.Projects()),
		list:  viewport.New(60, 10),
	}

	labels := [fieldCount]string{"Project Name", "Description", "Due Date"}
	placeholders := [fieldCount]string{"Website Redesign", "What is this project about?", "YYYY-MM-DD"}
	for i := range p.fields {
		in := textinput.New()
		in.Prompt = fmt.Sprintf("%-13s ", labels[i])
		in.Placeholder = placeholders[i]
		p.fields[i] = in
	}
	p.fields[fieldDueDate].CharLimit = 10
	return p
}

func (p *projectsPage) Init() tea.Cmd {
	p.refresh()
	return nil
}

func (p *projectsPage) Update(msg tea.Msg) tea.Cmd {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		if p.creating {
			return p.updateField(msg)
		}
		var cmd tea.Cmd
		p.list, cmd = p.list.Update(msg)
		return cmd
	}

	if p.creating {
		return p.updateForm(km)
	}

	switch km.String() {
	case "tab", "right", "l":
		p.filter = (p.filter + 1) % len(projects.Filters)
		p.refresh()
	case "shift+tab", "left", "h":
		p.filter = (p.filter + len(projects.Filters) - 1) % len(projects.Filters)
		p.refresh()
	case "n":
		return p.openForm()
	default:
		var cmd tea.Cmd
		p.list, cmd = p.list.Update(km)
		return cmd
	}
	return nil
}

func (p *projectsPage) openForm() tea.Cmd {
	p.creating = true
	p.focus = fieldName
	return p.focusField()
}

func (p *projectsPage) focusField() tea.Cmd {
	var cmd tea.Cmd
	for i := range p.fields {
		if i == p.focus {
			cmd = p.fields[i].Focus()
		} else {
			p.fields[i].Blur()
		}
	}
	return cmd
}

func (p *projectsPage) updateForm(km tea.KeyMsg) tea.Cmd {
	switch km.String() {
	case "esc":
		// The draft survives closing the dialog; only a successful create clears it
		p.creating = false
		for i := range p.fields {
			p.fields[i].Blur()
		}
		return nil
	case "tab", "down":
		p.focus = (p.focus + 1) % fieldCount
		return p.focusField()
	case "shift+tab", "up":
		p.focus = (p.focus + fieldCount - 1) % fieldCount
		return p.focusField()
	case "enter":
		if p.focus < fieldDueDate {
			p.focus++
			return p.focusField()
		}
		p.submit()
		return nil
	case "ctrl+s":
		p.submit()
		return nil
	}
	return p.updateField(km)
}

func (p *projectsPage) updateField(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	p.fields[p.focus], cmd = p.fields[p.focus].Update(msg)
	return cmd
}

func (p *projectsPage) draft() projects.Draft {
	return projects.Draft{
		Name:        p.fields[fieldName].Value(),
		Description: p.fields[fieldDescription].Value(),
		DueDate:     p.fields[fieldDueDate].Value(),
	}
}

// submit creates the project. An invalid draft leaves everything as it
// was and shows nothing.
func (p *projectsPage) submit() {
	created, err := p.board.Create(p.draft())
	if err != nil {
		p.env.Logger.Debug("Project rejected", zap.Error(err))
		return
	}
	p.env.Logger.Info("Project created",
		zap.Int("id", created.ID),
		zap.String("name", created.Name))

	for i := range p.fields {
		p.fields[i].Reset()
		p.fields[i].Blur()
	}
	p.focus = fieldName
	p.creating = false
	p.refresh()
}

func (p *projectsPage) refresh() {
	p.list.SetContent(p.renderCards())
}

func (p *projectsPage) renderCards() string {
	styles := p.env.Styles()
	filter := projects.Filters[p.filter]
	items := p.board.List(filter)
	if len(items) == 0 {
		return styles.Muted.Render("No projects in this view")
	}

	width := max(p.list.Width-2, 20)
	cards := make([]string, 0, len(items))
	for _, pr := range items {
		cards = append(cards, renderProjectCard(pr, width, styles))
	}
	return strings.Join(cards, "\n")
}

func renderProjectCard(pr models.Project, width int, styles Styles) string {
	title := lipgloss.JoinHorizontal(lipgloss.Top,
		styles.CardTitle.Render(pr.Name), " ", styles.Badge(pr.Status))

	due := pr.DueDate
	if due == "" {
		due = "-"
	}
	team := strings.Join(pr.Team, ", ")
	if team == "" {
		team = "-"
	}
	meta := styles.Muted.Render(fmt.Sprintf("Due: %s   Team: %s", due, team))

	return styles.Card.Width(width).Render(lipgloss.JoinVertical(lipgloss.Left,
		title,
		wordwrap.String(pr.Description, max(width-4, 10)),
		meta,
	))
}

func (p *projectsPage) tabLabels() []string {
	counts := p.board.Counts()
	labels := make([]string, len(projects.Filters))
	for i, f := range projects.Filters {
		labels[i] = fmt.Sprintf("%s (%d)", f.Label(), counts[f])
	}
	return labels
}

func (p *projectsPage) View() string {
	styles := p.env.Styles()
	header := lipgloss.JoinHorizontal(lipgloss.Top,
		styles.Title.Render("Projects"), "  ",
		styles.Muted.Render("n: Create New Project"))

	if p.creating {
		rows := make([]string, 0, fieldCount+3)
		rows = append(rows,
			styles.CardTitle.Render("Create New Project"),
			styles.Muted.Render("Add the details of your new project here."),
			"")
		for i := range p.fields {
			rows = append(rows, p.fields[i].View())
		}
		rows = append(rows, "", styles.Muted.Render("enter: next/create • tab: field • esc: close"))
		return lipgloss.JoinVertical(lipgloss.Left,
			header,
			styles.Dialog.Render(lipgloss.JoinVertical(lipgloss.Left, rows...)),
		)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		styles.Tabs(p.tabLabels(), p.filter),
		p.list.View(),
	)
}

func (p *projectsPage) SetSize(width, height int) {
	p.width = width
	p.height = height
	p.list.Width = max(width, 20)
	p.list.Height = max(height-4, 3)
	for i := range p.fields {
		p.fields[i].Width = max(width-24, 10)
	}
	p.refresh()
}

func (p *projectsPage) Modal() bool {
	return p.creating
}

func (p *projectsPage) Help() []key.Binding {
	if p.creating {
		return []key.Binding{
			binding([]string{"tab"}, "tab", "next field"),
			binding([]string{"ctrl+s"}, "ctrl+s", "create"),
			binding([]string{"esc"}, "esc", "close"),
		}
	}
	return []key.Binding{
		binding([]string{"tab", "shift+tab"}, "tab/shift+tab", "filter"),
		binding([]string{"n"}, "n", "new project"),
		binding([]string{"up", "down"}, "↑/↓", "scroll"),
	}
}

func (p *projectsPage) Close() {}
