package nav

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want Page
	}{
		{"chat", Chat},
		{"Analytics", Analytics},
		{"  dashboard ", Dashboard},
		{"projects", Projects},
		{"knowledge", Knowledge},
		{"SETTINGS", Settings},
		{"", Chat},
		{"billing", Chat},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Parse(tt.in), "Parse(%q)", tt.in)
	}
}

func TestAllIsClosedAndOrdered(t *testing.T) {
	pages := All()
	require.Len(t, pages, 6)
	assert.Equal(t, []Page{Chat, Analytics, Dashboard, Projects, Knowledge, Settings}, pages)

	// Callers cannot mutate the registry order
	pages[0] = Settings
	assert.Equal(t, Chat, All()[0])

	for i, p := range All() {
		assert.True(t, p.Valid())
		assert.Equal(t, i, p.Index())
	}
	assert.Equal(t, "Knowledge Base", Knowledge.Title())
	assert.Equal(t, -1, Page("nope").Index())
}

func TestControllerDefaults(t *testing.T) {
	c := NewController("")
	assert.Equal(t, Chat, c.Current())

	c = NewController(Projects)
	assert.Equal(t, Projects, c.Current())
	assert.Equal(t, 1, c.Visits(Projects))
}

func TestControllerSetPageAnyToAny(t *testing.T) {
	c := NewController(Chat)

	for _, from := range All() {
		for _, to := range All() {
			c.SetPage(from)
			prev := c.SetPage(to)
			assert.Equal(t, from, prev)
			assert.Equal(t, to, c.Current())
		}
	}
}

func TestControllerSetPageInvalidFallsBack(t *testing.T) {
	c := NewController(Settings)
	prev := c.SetPage("unknown")
	assert.Equal(t, Settings, prev)
	assert.Equal(t, Chat, c.Current())
}

func TestControllerCycling(t *testing.T) {
	c := NewController(Settings)
	assert.Equal(t, Chat, c.Next())
	assert.Equal(t, Settings, c.Prev())
	assert.Equal(t, Knowledge, c.Prev())
}

func TestControllerVisits(t *testing.T) {
	c := NewController(Chat)
	c.SetPage(Chat)
	assert.Equal(t, 1, c.Visits(Chat), "re-selecting the active page is not a new visit")

	c.SetPage(Projects)
	c.SetPage(Chat)
	assert.Equal(t, 2, c.Visits(Chat))
	assert.Equal(t, 1, c.Visits(Projects))
}
