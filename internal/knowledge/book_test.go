package knowledge

import (
	"strings"
	"testing"

	"github.com/strrl/elevate/internal/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func titles(b *Book, term string) []string {
	var out []string
	for _, a := range b.Search(term) {
		out = append(out, a.Title)
	}
	return out
}

func TestSearchEmptyReturnsAll(t *testing.T) {
	b := NewBook(catalog.MustGet().Articles())
	assert.Len(t, b.Search(""), 5)
}

func TestSearchIsCaseInsensitiveOverTitleAndCategory(t *testing.T) {
	articles := catalog.MustGet().Articles()
	b := NewBook(articles)

	got := b.Search("AI")

	// Every article whose title or category contains "ai", and no others
	var want []string
	for _, a := range articles {
		if strings.Contains(strings.ToLower(a.Title), "ai") || strings.Contains(strings.ToLower(a.Category), "ai") {
			want = append(want, a.Title)
		}
	}
	assert.Equal(t, want, titles(b, "AI"))
	assert.Equal(t, titles(b, "ai"), titles(b, "Ai"))
	assert.Len(t, got, len(want))
	assert.Contains(t, titles(b, "AI"), "Financial Forecasting with AI")
	assert.NotContains(t, titles(b, "AI"), "Optimizing Your Business Processes")
}

func TestSearchMatchesCategory(t *testing.T) {
	b := NewBook(catalog.MustGet().Articles())
	assert.Equal(t, []string{"Understanding Market Trends"}, titles(b, "market analysis"))
}

func TestSearchNoMatchIsEmpty(t *testing.T) {
	b := NewBook(catalog.MustGet().Articles())
	got := b.Search("zebra")
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestSelect(t *testing.T) {
	b := NewBook(catalog.MustGet().Articles())
	_, ok := b.Selected()
	assert.False(t, ok)

	require.True(t, b.Select(3))
	a, ok := b.Selected()
	require.True(t, ok)
	assert.Equal(t, "Understanding Market Trends", a.Title)

	require.True(t, b.Select(5))
	a, _ = b.Selected()
	assert.Equal(t, 5, a.ID, "selection replaces, no history")

	assert.False(t, b.Select(99))
	a, _ = b.Selected()
	assert.Equal(t, 5, a.ID)
}
