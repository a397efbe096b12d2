package projects

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/strrl/elevate/pkg/models"
)

// ErrInvalidDraft is returned when a draft misses required fields
var ErrInvalidDraft = errors.New("invalid project draft")

// Filter selects which projects a tab shows
type Filter string

const (
	FilterAll       Filter = "all"
	FilterActive    Filter = "active"
	FilterCompleted Filter = "completed"
	FilterOnHold    Filter = "on-hold"
)

// Filters lists the tabs in display order
var Filters = []Filter{FilterAll, FilterActive, FilterCompleted, FilterOnHold}

// Label is the tab caption
func (f Filter) Label() string {
	switch f {
	case FilterActive:
		return "Active"
	case FilterCompleted:
		return "Completed"
	case FilterOnHold:
		return "On Hold"
	default:
		return "All Projects"
	}
}

// Draft is the new-project form
type Draft struct {
	Name        string `validate:"required"`
	Description string `validate:"required"`
	DueDate     string `validate:"omitempty,datetime=2006-01-02"`
}

// Trimmed returns the draft with surrounding whitespace removed
func (d Draft) Trimmed() Draft {
	return Draft{
		Name:        strings.TrimSpace(d.Name),
		Description: strings.TrimSpace(d.Description),
		DueDate:     strings.TrimSpace(d.DueDate),
	}
}

var validate = validator.New()

// Board is the project collection of one projects page visit
type Board struct {
	projects []models.Project
}

// NewBoard starts from a seed collection
func NewBoard(seed []models.Project) *Board {
	return &Board{projects: append([]models.Project(nil), seed...)}
}

// Create validates d and appends a new active project with an empty team.
// The id is one more than the highest id present; that is only unique as
// long as projects are never removed.
func (b *Board) Create(d Draft) (models.Project, error) {
	d = d.Trimmed()
	if err := validate.Struct(d); err != nil {
		return models.Project{}, fmt.Errorf("%w: %v", ErrInvalidDraft, err)
	}

	p := models.Project{
		ID:          b.maxID() + 1,
		Name:        d.Name,
		Description: d.Description,
		Status:      models.StatusActive,
		DueDate:     d.DueDate,
		Team:        []string{},
	}

	// The collection is replaced, never edited in place
	next := make([]models.Project, len(b.projects), len(b.projects)+1)
	copy(next, b.projects)
	b.projects = append(next, p)
	return p, nil
}

func (b *Board) maxID() int {
	highest := 0
	for _, p := range b.projects {
		if p.ID > highest {
			highest = p.ID
		}
	}
	return highest
}

// List returns the projects matching f in insertion order
func (b *Board) List(f Filter) []models.Project {
	out := make([]models.Project, 0, len(b.projects))
	for _, p := range b.projects {
		if f == FilterAll || string(p.Status) == string(f) {
			out = append(out, p)
		}
	}
	return out
}

// Counts returns the number of projects per filter
func (b *Board) Counts() map[Filter]int {
	counts := make(map[Filter]int, len(Filters))
	for _, f := range Filters {
		counts[f] = len(b.List(f))
	}
	return counts
}

// Len is the size of the collection
func (b *Board) Len() int {
	return len(b.projects)
}
