package projects

import (
	"testing"

	"github.com/strrl/elevate/internal/catalog"
	"github.com/strrl/elevate/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ids(ps []models.Project) []int {
	out := []int{}
	for _, p := range ps {
		out = append(out, p.ID)
	}
	return out
}

func TestCreateProject(t *testing.T) {
	b := NewBoard(catalog.MustGet().Projects())
	before := b.Len()

	p, err := b.Create(Draft{Name: "Foo", Description: "Bar"})
	require.NoError(t, err)

	assert.Equal(t, before+1, b.Len())
	assert.Equal(t, 4, p.ID)
	assert.Equal(t, models.StatusActive, p.Status)
	assert.Empty(t, p.Team)
	assert.NotNil(t, p.Team)
	assert.Empty(t, p.DueDate)

	assert.Contains(t, ids(b.List(FilterActive)), 4)
	assert.NotContains(t, ids(b.List(FilterCompleted)), 4)
	assert.NotContains(t, ids(b.List(FilterOnHold)), 4)
	assert.Contains(t, ids(b.List(FilterAll)), 4)
}

func TestCreateUsesMaxIDPlusOne(t *testing.T) {
	b := NewBoard([]models.Project{
		{ID: 7, Name: "a", Status: models.StatusActive},
		{ID: 2, Name: "b", Status: models.StatusCompleted},
	})
	p, err := b.Create(Draft{Name: "c", Description: "d", DueDate: "2024-12-31"})
	require.NoError(t, err)
	assert.Equal(t, 8, p.ID)
	assert.Equal(t, "2024-12-31", p.DueDate)
}

func TestCreateRejectsIncompleteDraft(t *testing.T) {
	tests := []struct {
		name  string
		draft Draft
	}{
		{"no name", Draft{Description: "Bar"}},
		{"no description", Draft{Name: "Foo"}},
		{"blank name", Draft{Name: "   ", Description: "Bar"}},
		{"bad date", Draft{Name: "Foo", Description: "Bar", DueDate: "next week"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBoard(catalog.MustGet().Projects())
			_, err := b.Create(tt.draft)
			assert.ErrorIs(t, err, ErrInvalidDraft)
			assert.Equal(t, 3, b.Len())
		})
	}
}

func TestCreateTrimsFields(t *testing.T) {
	b := NewBoard(nil)
	p, err := b.Create(Draft{Name: "  Foo ", Description: " Bar", DueDate: " 2024-01-02 "})
	require.NoError(t, err)
	assert.Equal(t, 1, p.ID)
	assert.Equal(t, "Foo", p.Name)
	assert.Equal(t, "Bar", p.Description)
	assert.Equal(t, "2024-01-02", p.DueDate)
}

func TestFiltersAreReadOnly(t *testing.T) {
	b := NewBoard(catalog.MustGet().Projects())

	assert.Equal(t, []int{1}, ids(b.List(FilterActive)))
	assert.Equal(t, []int{3}, ids(b.List(FilterCompleted)))
	assert.Equal(t, []int{2}, ids(b.List(FilterOnHold)))
	assert.Equal(t, []int{1, 2, 3}, ids(b.List(FilterAll)))
	assert.Equal(t, 3, b.Len())

	counts := b.Counts()
	assert.Equal(t, 3, counts[FilterAll])
	assert.Equal(t, 1, counts[FilterActive])
}

func TestEarlierSnapshotsUnaffectedByCreate(t *testing.T) {
	b := NewBoard(catalog.MustGet().Projects())
	snapshot := b.List(FilterAll)

	_, err := b.Create(Draft{Name: "Foo", Description: "Bar"})
	require.NoError(t, err)
	assert.Len(t, snapshot, 3)
}

func TestFilterLabels(t *testing.T) {
	assert.Equal(t, "All Projects", FilterAll.Label())
	assert.Equal(t, "On Hold", FilterOnHold.Label())
}
