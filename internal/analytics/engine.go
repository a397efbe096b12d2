// Package analytics computes the figures shown on the analytics page. The
// monthly series are loaded into an in-memory DuckDB and summarised with
// window queries.
package analytics

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"time"

	"github.com/strrl/elevate/pkg/models"
)

const queryTimeout = 5 * time.Second

// Change is a month-over-month delta in percent. Valid is false for the
// first month and when the previous value was zero.
type Change struct {
	Percent float64
	Valid   bool
}

// FinancialRow is one month of the financial report
type FinancialRow struct {
	Month    string
	Revenue  int64
	Expenses int64
	Profit   int64

	RevenueChange  Change
	ExpensesChange Change
	ProfitChange   Change
}

// CustomerRow is one month of the customer report
type CustomerRow struct {
	Month     string
	New       int64
	Churned   int64
	Total     int64   // customers at month end
	ChurnRate float64 // churned / customers at month start, percent
	NewChange Change
}

// FinancialReport holds every month plus the latest one
type FinancialReport struct {
	Rows   []FinancialRow
	Latest FinancialRow
}

// CustomerReport holds every month plus the latest one
type CustomerReport struct {
	Rows   []CustomerRow
	Latest CustomerRow
	// ChurnRateChange is the latest churn rate minus the previous one, in points
	ChurnRateChange Change
	TotalChange     Change
}

// Engine answers analytics queries
type Engine struct {
	db *sql.DB
}

// NewEngine loads the series into db, replacing any earlier load
func NewEngine(ctx context.Context, db *sql.DB, financial []models.FinancialPoint, customers []models.CustomerPoint, customerBase int64) (*Engine, error) {
	e := &Engine{db: db}
	if err := e.load(ctx, financial, customers, customerBase); err != nil {
		return nil, err
	}
	return e, nil
}

func (e *Engine) load(ctx context.Context, financial []models.FinancialPoint, customers []models.CustomerPoint, customerBase int64) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	tx, err := e.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin analytics load: %w", err)
	}
	defer tx.Rollback()

	statements := []string{
		`CREATE OR REPLACE TABLE financial (
			seq INTEGER,
			month VARCHAR,
			revenue BIGINT,
			expenses BIGINT,
			profit BIGINT
		)`,
		`CREATE OR REPLACE TABLE customers (
			seq INTEGER,
			month VARCHAR,
			new_customers BIGINT,
			churned BIGINT
		)`,
		`CREATE OR REPLACE TABLE customer_base (total BIGINT)`,
	}
	for _, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("analytics schema failed: %w", err)
		}
	}

	for i, p := range financial {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO financial VALUES (?, ?, ?, ?, ?)`,
			i, p.Month, p.Revenue, p.Expenses, p.Profit); err != nil {
			return fmt.Errorf("failed to load financial month %s: %w", p.Month, err)
		}
	}
	for i, p := range customers {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO customers VALUES (?, ?, ?, ?)`,
			i, p.Month, p.New, p.Churned); err != nil {
			return fmt.Errorf("failed to load customer month %s: %w", p.Month, err)
		}
	}
	if _, err := tx.ExecContext(ctx, `INSERT INTO customer_base VALUES (?)`, customerBase); err != nil {
		return fmt.Errorf("failed to load customer base: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit analytics load: %w", err)
	}
	return nil
}

// Financial returns the financial report
func (e *Engine) Financial(ctx context.Context) (FinancialReport, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows, err := e.db.QueryContext(ctx, `
		SELECT
			month,
			revenue,
			expenses,
			profit,
			LAG(revenue) OVER (ORDER BY seq) AS prev_revenue,
			LAG(expenses) OVER (ORDER BY seq) AS prev_expenses,
			LAG(profit) OVER (ORDER BY seq) AS prev_profit
		FROM financial
		ORDER BY seq
	`)
	if err != nil {
		return FinancialReport{}, fmt.Errorf("failed to execute financial query: %w", err)
	}
	defer rows.Close()

	var report FinancialReport
	for rows.Next() {
		var (
			row                                   FinancialRow
			prevRevenue, prevExpenses, prevProfit sql.NullInt64
		)
		if err := rows.Scan(&row.Month, &row.Revenue, &row.Expenses, &row.Profit,
			&prevRevenue, &prevExpenses, &prevProfit); err != nil {
			return FinancialReport{}, fmt.Errorf("failed to scan financial row: %w", err)
		}
		row.RevenueChange = change(row.Revenue, prevRevenue)
		row.ExpensesChange = change(row.Expenses, prevExpenses)
		row.ProfitChange = change(row.Profit, prevProfit)
		report.Rows = append(report.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return FinancialReport{}, fmt.Errorf("financial query failed: %w", err)
	}

	if n := len(report.Rows); n > 0 {
		report.Latest = report.Rows[n-1]
	}
	return report, nil
}

// Customers returns the customer report
func (e *Engine) Customers(ctx context.Context) (CustomerReport, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows, err := e.db.QueryContext(ctx, `
		SELECT
			c.month,
			c.new_customers,
			c.churned,
			CAST(b.total + SUM(c.new_customers - c.churned) OVER (
				ORDER BY c.seq ROWS BETWEEN UNBOUNDED PRECEDING AND CURRENT ROW
			) AS BIGINT) AS total,
			LAG(c.new_customers) OVER (ORDER BY c.seq) AS prev_new
		FROM customers c, customer_base b
		ORDER BY c.seq
	`)
	if err != nil {
		return CustomerReport{}, fmt.Errorf("failed to execute customers query: %w", err)
	}
	defer rows.Close()

	var report CustomerReport
	for rows.Next() {
		var (
			row     CustomerRow
			prevNew sql.NullInt64
		)
		if err := rows.Scan(&row.Month, &row.New, &row.Churned, &row.Total, &prevNew); err != nil {
			return CustomerReport{}, fmt.Errorf("failed to scan customer row: %w", err)
		}
		start := row.Total - row.New + row.Churned
		if start > 0 {
			row.ChurnRate = float64(row.Churned) / float64(start) * 100
		}
		row.NewChange = change(row.New, prevNew)
		report.Rows = append(report.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return CustomerReport{}, fmt.Errorf("customers query failed: %w", err)
	}

	if n := len(report.Rows); n > 0 {
		report.Latest = report.Rows[n-1]
		if n > 1 {
			prev := report.Rows[n-2]
			report.ChurnRateChange = Change{Percent: report.Latest.ChurnRate - prev.ChurnRate, Valid: true}
			report.TotalChange = change(report.Latest.Total, sql.NullInt64{Int64: prev.Total, Valid: true})
		}
	}
	return report, nil
}

func change(cur int64, prev sql.NullInt64) Change {
	if !prev.Valid || prev.Int64 == 0 {
		return Change{}
	}
	pct := float64(cur-prev.Int64) / math.Abs(float64(prev.Int64)) * 100
	return Change{Percent: pct, Valid: true}
}
