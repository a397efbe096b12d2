package catalog

import (
	"testing"

	"github.com/strrl/elevate/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetParsesEmbeddedData(t *testing.T) {
	c, err := Get()
	require.NoError(t, err)

	articles := c.Articles()
	require.Len(t, articles, 5)
	assert.Equal(t, "Getting Started with AI Business Consulting", articles[0].Title)
	assert.Equal(t, "Finance", articles[4].Category)

	projects := c.Projects()
	require.Len(t, projects, 3)
	assert.Equal(t, models.StatusOnHold, projects[1].Status)
	assert.Equal(t, "2023-07-01", projects[2].DueDate)
	assert.Equal(t, []string{"John Doe", "Jane Smith"}, projects[0].Team)

	require.Len(t, c.Financial(), 7)
	assert.Equal(t, int64(-7800), c.Financial()[2].Profit)
	require.Len(t, c.Customers(), 7)
	assert.Equal(t, int64(72), c.Customers()[6].New)
	assert.Equal(t, int64(800), c.CustomerBase())

	d := c.Dashboard()
	assert.Len(t, d.Metrics, 4)
	assert.Len(t, d.Activity, 4)
	assert.Len(t, d.Insights, 3)
	assert.False(t, d.Activity[3].Success)
}

func TestAccessorsReturnCopies(t *testing.T) {
	c := MustGet()

	projects := c.Projects()
	projects[0].Name = "changed"
	projects[0].Team[0] = "someone else"

	fresh := c.Projects()
	assert.Equal(t, "Website Redesign", fresh[0].Name)
	assert.Equal(t, "John Doe", fresh[0].Team[0])

	articles := c.Articles()
	articles[0].Title = "changed"
	assert.NotEqual(t, "changed", c.Articles()[0].Title)
}
