package common

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/Rana718/dataforge/internal/table"
)

// BatchSize is the number of rows per multi-row INSERT. It stays well below
// every driver's bind-parameter limit for the widest generated table.
const BatchSize = 200

// validIdentifier validates SQL identifiers (table/column names) to prevent SQL injection
var validIdentifier = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

func IsValidIdentifier(name string) bool {
	return validIdentifier.MatchString(name)
}

// TableName is the name a dataset table gets when loaded into a database
// shared by every domain.
func TableName(domain, name string) string {
	return domain + "_" + name
}

// Dialect describes how one database spells types and identifiers.
type Dialect struct {
	Types map[table.Kind]string
	Quote func(string) string
	// TextDates stores dates as formatted text instead of driver times.
	TextDates bool
}

func (d Dialect) CreateTableSQL(name string, schema table.Schema) (string, error) {
	if !IsValidIdentifier(name) {
		return "", fmt.Errorf("invalid table name: %s", name)
	}
	defs := make([]string, len(schema.Columns))
	for i, col := range schema.Columns {
		if !IsValidIdentifier(col.Name) {
			return "", fmt.Errorf("invalid column name in table %s: %s", name, col.Name)
		}
		defs[i] = fmt.Sprintf("%s %s", d.Quote(col.Name), d.Types[col.Kind])
	}
	return fmt.Sprintf("CREATE TABLE %s (%s)", d.Quote(name), strings.Join(defs, ", ")), nil
}

func (d Dialect) DropTableSQL(name string) string {
	return fmt.Sprintf("DROP TABLE IF EXISTS %s", d.Quote(name))
}

func (d Dialect) Value(kind table.Kind, v any) any {
	if v == nil {
		return nil
	}
	if d.TextDates && (kind == table.Date || kind == table.DateTime) {
		return table.Format(kind, v)
	}
	return v
}

// InsertBatches builds multi-row INSERT statements for t and hands each one
// to exec.
func (d Dialect) InsertBatches(qb squirrel.StatementBuilderType, name string, t *table.Table, exec func(query string, args []any) error) error {
	schema := t.Schema()
	columns := make([]string, len(schema.Columns))
	for i, col := range schema.Columns {
		columns[i] = d.Quote(col.Name)
	}

	for lo := 0; lo < t.Len(); lo += BatchSize {
		hi := min(lo+BatchSize, t.Len())
		insert := qb.Insert(d.Quote(name)).Columns(columns...)
		for i := lo; i < hi; i++ {
			row := t.Row(i)
			values := make([]any, len(row))
			for j, col := range schema.Columns {
				values[j] = d.Value(col.Kind, row[j])
			}
			insert = insert.Values(values...)
		}

		query, args, err := insert.ToSql()
		if err != nil {
			return fmt.Errorf("failed to build insert for %s: %w", name, err)
		}
		if err := exec(query, args); err != nil {
			return fmt.Errorf("failed to insert rows %d-%d into %s: %w", lo+1, hi, name, err)
		}
	}
	return nil
}

// Scan converts a value returned by database/sql back into the table's
// value domain.
func (d Dialect) Scan(kind table.Kind, v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	if b, ok := v.([]byte); ok {
		v = string(b)
	}
	switch kind {
	case table.Int:
		if n, ok := v.(int64); ok {
			return n, nil
		}
	case table.Float:
		switch n := v.(type) {
		case float64:
			return n, nil
		case int64:
			return float64(n), nil
		}
	case table.String:
		if s, ok := v.(string); ok {
			return s, nil
		}
	case table.Date, table.DateTime:
		if ts, ok := v.(time.Time); ok {
			return ts.UTC(), nil
		}
	}
	if s, ok := v.(string); ok {
		return table.Parse(kind, s)
	}
	return nil, fmt.Errorf("cannot scan %T into %s", v, kind)
}
