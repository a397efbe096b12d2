// Package catalog serves the static reference data the dashboard ships with.
package catalog

import (
	"embed"
	"fmt"
	"sync"

	"github.com/strrl/elevate/pkg/models"
	"gopkg.in/yaml.v3"
)

//go:embed data/*.yaml
var files embed.FS

// Catalog is the parsed data set. Accessors hand out copies so callers
// can never mutate the shared reference data.
type Catalog struct {
	articles     []models.Article
	projects     []models.Project
	financial    []models.FinancialPoint
	customers    []models.CustomerPoint
	customerBase int64
	dashboard    Dashboard
}

// Dashboard is the content of the overview page
type Dashboard struct {
	Metrics  []models.Metric   `yaml:"metrics"`
	Activity []models.Activity `yaml:"activity"`
	Insights []models.Insight  `yaml:"insights"`
}

type analyticsFile struct {
	Financial    []models.FinancialPoint `yaml:"financial"`
	Customers    []models.CustomerPoint  `yaml:"customers"`
	CustomerBase int64                   `yaml:"customer_base"`
}

var (
	instance *Catalog
	once     sync.Once
	loadErr  error
)

// Get returns the singleton catalog, parsing the embedded files on first use
func Get() (*Catalog, error) {
	once.Do(func() {
		instance, loadErr = load()
	})
	return instance, loadErr
}

// MustGet is Get for callers that cannot proceed without the data
func MustGet() *Catalog {
	c, err := Get()
	if err != nil {
		panic(err)
	}
	return c
}

func load() (*Catalog, error) {
	c := &Catalog{}
	if err := decode("data/articles.yaml", &c.articles); err != nil {
		return nil, err
	}
	if err := decode("data/projects.yaml", &c.projects); err != nil {
		return nil, err
	}

	var a analyticsFile
	if err := decode("data/analytics.yaml", &a); err != nil {
		return nil, err
	}
	c.financial = a.Financial
	c.customers = a.Customers
	c.customerBase = a.CustomerBase

	if err := decode("data/dashboard.yaml", &c.dashboard); err != nil {
		return nil, err
	}
	return c, nil
}

func decode(name string, out interface{}) error {
	data, err := files.ReadFile(name)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", name, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse %s: %w", name, err)
	}
	return nil
}

// Articles returns the knowledge base
func (c *Catalog) Articles() []models.Article {
	out := make([]models.Article, len(c.articles))
	copy(out, c.articles)
	return out
}

// Projects returns the seed project collection
func (c *Catalog) Projects() []models.Project {
	out := make([]models.Project, len(c.projects))
	for i, p := range c.projects {
		p.Team = append([]string(nil), p.Team...)
		out[i] = p
	}
	return out
}

// Financial returns the monthly revenue/expenses/profit series
func (c *Catalog) Financial() []models.FinancialPoint {
	out := make([]models.FinancialPoint, len(c.financial))
	copy(out, c.financial)
	return out
}

// Customers returns the monthly new/churned series
func (c *Catalog) Customers() []models.CustomerPoint {
	out := make([]models.CustomerPoint, len(c.customers))
	copy(out, c.customers)
	return out
}

// CustomerBase is the customer count before the first month of the series
func (c *Catalog) CustomerBase() int64 {
	return c.customerBase
}

// Dashboard returns the overview page content
func (c *Catalog) Dashboard() Dashboard {
	return Dashboard{
		Metrics:  append([]models.Metric(nil), c.dashboard.Metrics...),
		Activity: append([]models.Activity(nil), c.dashboard.Activity...),
		Insights: append([]models.Insight(nil), c.dashboard.Insights...),
	}
}
