package database

import (
	"context"
	"testing"
	"time"

	"github.com/Rana718/dataforge/internal/database/common"
	"github.com/Rana718/dataforge/internal/database/sqlite"
	"github.com/Rana718/dataforge/internal/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildSessions(t *testing.T, n int) *table.Table {
	t.Helper()
	schema := table.Schema{Name: "sessions", Columns: []table.Column{
		{Name: "session_id", Kind: table.Int},
		{Name: "visit_date", Kind: table.Date},
		{Name: "device", Kind: table.String},
		{Name: "value", Kind: table.Float},
	}}
	b := table.NewBuilder(schema)
	day := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 1; i <= n; i++ {
		var value any
		if i%3 != 0 {
			value = float64(i) / 4
		}
		b.Add(i, day.AddDate(0, 0, i%180), "mobile", value)
	}
	tbl, err := b.Build()
	require.NoError(t, err)
	return tbl
}

func TestLoadDomainIntoSQLite(t *testing.T) {
	ctx := context.Background()
	adapter := sqlite.New()
	require.NoError(t, adapter.Connect(ctx, ":memory:"))
	defer adapter.Close()

	sessions := buildSessions(t, 2*common.BatchSize+17)
	results, err := LoadDomain(ctx, adapter, "web", []*table.Table{sessions})
	require.NoError(t, err)
	assert.Equal(t, []LoadResult{{Table: "web_sessions", Rows: sessions.Len()}}, results)

	got, err := adapter.ReadTable(ctx, "web_sessions", sessions.Schema())
	require.NoError(t, err)
	require.Equal(t, sessions.Len(), got.Len())
	assert.Equal(t, sessions.Row(0), got.Row(0))
	assert.Equal(t, sessions.Row(2), got.Row(2))

	// loading again replaces the table instead of appending
	_, err = LoadDomain(ctx, adapter, "web", []*table.Table{sessions})
	require.NoError(t, err)
	count, err := adapter.GetTableRowCount(ctx, "web_sessions")
	require.NoError(t, err)
	assert.Equal(t, sessions.Len(), count)
}

func TestLoadRejectsInvalidIdentifiers(t *testing.T) {
	ctx := context.Background()
	adapter := sqlite.New()
	require.NoError(t, adapter.Connect(ctx, ":memory:"))
	defer adapter.Close()

	bad, err := table.NewBuilder(table.Schema{Name: "x", Columns: []table.Column{{Name: "a;drop", Kind: table.Int}}}).Build()
	require.NoError(t, err)
	_, err = LoadDomain(ctx, adapter, "web", []*table.Table{bad})
	assert.ErrorContains(t, err, "invalid column name")
}

func TestNewAdapter(t *testing.T) {
	for _, provider := range []string{"postgresql", "postgres", "mysql", "sqlite", "sqlite3"} {
		a, err := NewAdapter(provider)
		require.NoError(t, err, provider)
		assert.NotNil(t, a)
	}
	_, err := NewAdapter("oracle")
	assert.Error(t, err)
}
