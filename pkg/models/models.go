package models

import "time"

// Sender identifies who authored a chat message
type Sender string

const (
	SenderUser      Sender = "user"
	SenderAssistant Sender = "assistant"
)

// Message is a single chat transcript entry. Messages are never edited once appended.
type Message struct {
	ID        int
	Content   string
	Sender    Sender
	Timestamp time.Time
}

// Article is a read-only knowledge base entry
type Article struct {
	ID       int    `yaml:"id"`
	Title    string `yaml:"title"`
	Category string `yaml:"category"`
	Content  string `yaml:"content"`
}

// ProjectStatus is the lifecycle state shown on a project card
type ProjectStatus string

const (
	StatusActive    ProjectStatus = "active"
	StatusCompleted ProjectStatus = "completed"
	StatusOnHold    ProjectStatus = "on-hold"
)

// Project represents a tracked engagement
type Project struct {
	ID          int           `yaml:"id"`
	Name        string        `yaml:"name"`
	Description string        `yaml:"description"`
	Status      ProjectStatus `yaml:"status"`
	DueDate     string        `yaml:"due_date"` // YYYY-MM-DD, may be empty
	Team        []string      `yaml:"team"`
}

// FileMeta describes a file handed over by a file picker
type FileMeta struct {
	Name string
	Path string
	Size int64
}

// FinancialPoint is one month of the financial series
type FinancialPoint struct {
	Month    string `yaml:"month"`
	Revenue  int64  `yaml:"revenue"`
	Expenses int64  `yaml:"expenses"`
	Profit   int64  `yaml:"profit"`
}

// CustomerPoint is one month of the customer series
type CustomerPoint struct {
	Month   string `yaml:"month"`
	New     int64  `yaml:"new"`
	Churned int64  `yaml:"churned"`
}

// Activity is an entry of the dashboard's recent activity feed
type Activity struct {
	Text    string `yaml:"text"`
	Ago     string `yaml:"ago"`
	Success bool   `yaml:"success"`
}

// Insight is a recommendation card on the dashboard
type Insight struct {
	Title  string `yaml:"title"`
	Body   string `yaml:"body"`
	Action string `yaml:"action"`
}

// Metric is a KPI card on the dashboard
type Metric struct {
	Title    string  `yaml:"title"`
	Value    string  `yaml:"value"`
	Note     string  `yaml:"note"`
	Progress float64 `yaml:"progress"` // 0-100
}
