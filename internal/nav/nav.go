// Package nav holds the closed set of dashboard pages and the controller
// that tracks which one is on screen.
package nav

import "strings"

// Page identifies one of the top-level views
type Page string

const (
	Chat      Page = "chat"
	Analytics Page = "analytics"
	Dashboard Page = "dashboard"
	Projects  Page = "projects"
	Knowledge Page = "knowledge"
	Settings  Page = "settings"
)

// Default is the page shown at startup and for unrecognized identifiers
const Default = Chat

var order = []Page{Chat, Analytics, Dashboard, Projects, Knowledge, Settings}

var titles = map[Page]string{
	Chat:      "Chat",
	Analytics: "Analytics",
	Dashboard: "Dashboard",
	Projects:  "Projects",
	Knowledge: "Knowledge Base",
	Settings:  "Settings",
}

// All returns every page in sidebar order
func All() []Page {
	pages := make([]Page, len(order))
	copy(pages, order)
	return pages
}

// Parse maps a tag to a page, falling back to Default
func Parse(s string) Page {
	p := Page(strings.ToLower(strings.TrimSpace(s)))
	if !p.Valid() {
		return Default
	}
	return p
}

// Valid reports whether p is a member of the page set
func (p Page) Valid() bool {
	_, ok := titles[p]
	return ok
}

// Title is the sidebar label
func (p Page) Title() string {
	if t, ok := titles[p]; ok {
		return t
	}
	return titles[Default]
}

// Index is the position of p in sidebar order, or -1
func (p Page) Index() int {
	for i, candidate := range order {
		if candidate == p {
			return i
		}
	}
	return -1
}

func (p Page) String() string {
	return string(p)
}
