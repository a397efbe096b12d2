package analytics

import (
	"context"
	"database/sql"
	"testing"

	"github.com/strrl/elevate/internal/catalog"
	"github.com/strrl/elevate/internal/db"
	"github.com/strrl/elevate/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	conn, err := db.Open()
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	c := catalog.MustGet()
	e, err := NewEngine(context.Background(), conn, c.Financial(), c.Customers(), c.CustomerBase())
	require.NoError(t, err)
	return e
}

func TestFinancialReport(t *testing.T) {
	e := newTestEngine(t)

	report, err := e.Financial(context.Background())
	require.NoError(t, err)
	require.Len(t, report.Rows, 7)

	first := report.Rows[0]
	assert.Equal(t, "Jan", first.Month)
	assert.False(t, first.RevenueChange.Valid, "first month has nothing to compare with")

	assert.Equal(t, "Jul", report.Latest.Month)
	assert.Equal(t, int64(3490), report.Latest.Revenue)
	assert.Equal(t, int64(4300), report.Latest.Expenses)
	assert.Equal(t, int64(-810), report.Latest.Profit)
	require.True(t, report.Latest.RevenueChange.Valid)
	assert.InDelta(t, 46.03, report.Latest.RevenueChange.Percent, 0.01)
	assert.InDelta(t, 13.16, report.Latest.ExpensesChange.Percent, 0.01)
	// Loss shrinking from -1410 to -810 is an improvement
	assert.InDelta(t, 42.55, report.Latest.ProfitChange.Percent, 0.01)
}

func TestCustomerReport(t *testing.T) {
	e := newTestEngine(t)

	report, err := e.Customers(context.Background())
	require.NoError(t, err)
	require.Len(t, report.Rows, 7)

	assert.Equal(t, int64(825), report.Rows[0].Total)
	assert.InDelta(t, 2.5, report.Rows[0].ChurnRate, 0.001)
	assert.InDelta(t, 15.56, report.Rows[1].NewChange.Percent, 0.01)

	assert.Equal(t, "Jul", report.Latest.Month)
	assert.Equal(t, int64(1068), report.Latest.Total)
	assert.Equal(t, int64(72), report.Latest.New)
	assert.InDelta(t, 1.678, report.Latest.ChurnRate, 0.001)
	require.True(t, report.ChurnRateChange.Valid)
	assert.InDelta(t, 1.678-1.969, report.ChurnRateChange.Percent, 0.001)
	assert.InDelta(t, 5.43, report.TotalChange.Percent, 0.01)
}

func TestReloadReplacesData(t *testing.T) {
	conn, err := db.Open()
	require.NoError(t, err)
	defer conn.Close()

	ctx := context.Background()
	_, err = NewEngine(ctx, conn, catalog.MustGet().Financial(), nil, 0)
	require.NoError(t, err)

	e, err := NewEngine(ctx, conn, []models.FinancialPoint{{Month: "Aug", Revenue: 10, Expenses: 5, Profit: 5}}, nil, 0)
	require.NoError(t, err)

	report, err := e.Financial(ctx)
	require.NoError(t, err)
	require.Len(t, report.Rows, 1)
	assert.Equal(t, "Aug", report.Latest.Month)

	customers, err := e.Customers(ctx)
	require.NoError(t, err)
	assert.Empty(t, customers.Rows)
	assert.False(t, customers.ChurnRateChange.Valid)
}

func TestChangeHandlesZeroPrevious(t *testing.T) {
	assert.False(t, change(10, nullInt(0)).Valid)
	c := change(-50, nullInt(-100))
	assert.True(t, c.Valid)
	assert.InDelta(t, 50, c.Percent, 0.001)
}

func nullInt(v int64) sql.NullInt64 {
	return sql.NullInt64{Int64: v, Valid: true}
}
