package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/strrl/elevate/internal/knowledge"
	"github.com/strrl/elevate/pkg/models"
	"go.uber.org/zap"
)

type knowledgePage struct {
	env *Env

	book    *knowledge.Book
	search  textinput.Model
	results []models.Article
	cursor  int
	article viewport.Model

	width  int
	height int
}

func newKnowledgePage(env *Env) *knowledgePage {
	search := textinput.New()
	search.Placeholder = "Search articles..."
	search.Prompt = "⌕ "
	search.Focus()

	book := knowledge.NewBook(env.Catalog.Articles())
	return &knowledgePage{
		env:     env,
		book:    book,
		search:  search,
		results: book.Search(""),
		article: viewport.New(40, 10),
	}
}

func (p *knowledgePage) Init() tea.Cmd {
	return textinput.Blink
}

func (p *knowledgePage) Update(msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "ctrl+p":
			if p.cursor > 0 {
				p.cursor--
			}
			return nil
		case "down", "ctrl+n":
			if p.cursor < len(p.results)-1 {
				p.cursor++
			}
			return nil
		case "enter":
			if p.cursor < len(p.results) {
				p.book.Select(p.results[p.cursor].ID)
				p.renderArticle()
			}
			return nil
		case "ctrl+y":
			if a, ok := p.book.Selected(); ok {
				p.env.copyToClipboard(a.Content)
			}
			return nil
		case "pgup", "pgdown":
			var cmd tea.Cmd
			p.article, cmd = p.article.Update(msg)
			return cmd
		}
	}

	before := p.search.Value()
	var cmd tea.Cmd
	p.search, cmd = p.search.Update(msg)
	if p.search.Value() != before {
		p.applySearch()
	}
	return cmd
}

// applySearch recomputes the result list on every keystroke
func (p *knowledgePage) applySearch() {
	p.results = p.book.Search(p.search.Value())
	if p.cursor >= len(p.results) {
		p.cursor = max(len(p.results)-1, 0)
	}
	p.env.Logger.Debug("Knowledge search",
		zap.String("term", p.search.Value()),
		zap.Int("results", len(p.results)))
}

func (p *knowledgePage) renderArticle() {
	a, ok := p.book.Selected()
	if !ok {
		return
	}
	p.article.SetContent(renderMarkdown(a.Content, p.env.Theme.Theme(), p.article.Width))
	p.article.GotoTop()
}

func (p *knowledgePage) listWidth() int {
	return max(p.width/3, 20)
}

func (p *knowledgePage) View() string {
	styles := p.env.Styles()

	var list strings.Builder
	list.WriteString(styles.InputFocused.Width(p.listWidth() - 2).Render(p.search.View()))
	list.WriteString("\n")
	if len(p.results) == 0 {
		list.WriteString(styles.Muted.Render("No articles found"))
	}
	for i, a := range p.results {
		line := "  ▤ " + a.Title
		if i == p.cursor {
			line = styles.Selected.Render("› ▤ " + a.Title)
		}
		list.WriteString(line + "\n")
	}

	var card string
	if a, ok := p.book.Selected(); ok {
		card = lipgloss.JoinVertical(lipgloss.Left,
			styles.CardTitle.Render(a.Title),
			styles.Muted.Render(a.Category),
			p.article.View(),
		)
	} else {
		card = lipgloss.JoinVertical(lipgloss.Left,
			styles.CardTitle.Render("Select an Article"),
			styles.Muted.Render("Choose an article from the list to view its content"),
			"",
			styles.Muted.Render("Select an article to view its content"),
		)
	}
	cardWidth := max(p.width-p.listWidth()-4, 20)

	return lipgloss.JoinVertical(lipgloss.Left,
		styles.Title.Render("Knowledge Base"),
		lipgloss.JoinHorizontal(lipgloss.Top,
			lipgloss.NewStyle().Width(p.listWidth()).Render(list.String()),
			styles.Card.Width(cardWidth).Render(card),
		),
	)
}

func (p *knowledgePage) SetSize(width, height int) {
	p.width = width
	p.height = height
	p.search.Width = max(p.listWidth()-8, 8)
	p.article.Width = max(width-p.listWidth()-8, 20)
	p.article.Height = max(height-8, 3)
	p.renderArticle()
}

func (p *knowledgePage) Modal() bool {
	return false
}

func (p *knowledgePage) Help() []key.Binding {
	return []key.Binding{
		binding([]string{"up", "down"}, "↑/↓", "move"),
		binding([]string{"enter"}, "enter", "read"),
		binding([]string{"pgup", "pgdown"}, "pgup/pgdn", "scroll"),
		binding([]string{"ctrl+y"}, "ctrl+y", "copy"),
	}
}

func (p *knowledgePage) Close() {}
