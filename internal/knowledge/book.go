package knowledge

import (
	"strings"

	"github.com/strrl/elevate/pkg/models"
)

// Book is the searchable article set of one knowledge base visit
type Book struct {
	articles []models.Article
	selected *models.Article
}

// NewBook wraps a static article set
func NewBook(articles []models.Article) *Book {
	return &Book{articles: append([]models.Article(nil), articles...)}
}

// Search returns articles whose title or category contains term,
// ignoring case. An empty term matches everything.
func (b *Book) Search(term string) []models.Article {
	needle := strings.ToLower(term)
	out := make([]models.Article, 0, len(b.articles))
	for _, a := range b.articles {
		if strings.Contains(strings.ToLower(a.Title), needle) ||
			strings.Contains(strings.ToLower(a.Category), needle) {
			out = append(out, a)
		}
	}
	return out
}

// Select makes the article with id the displayed one, replacing any
// earlier choice
func (b *Book) Select(id int) bool {
	for i := range b.articles {
		if b.articles[i].ID == id {
			a := b.articles[i]
			b.selected = &a
			return true
		}
	}
	return false
}

// Selected returns the displayed article
func (b *Book) Selected() (models.Article, bool) {
	if b.selected == nil {
		return models.Article{}, false
	}
	return *b.selected, true
}
