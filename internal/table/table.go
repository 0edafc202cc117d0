package table

import (
	"fmt"
	"time"
)

type Kind int

const (
	Int Kind = iota
	Float
	String
	Date
	DateTime
)

func (k Kind) String() string {
	switch k {
	case Int:
		return "int"
	case Float:
		return "float"
	case String:
		return "string"
	case Date:
		return "date"
	case DateTime:
		return "datetime"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

type Column struct {
	Name string
	Kind Kind
}

// ForeignKey declares that every non-null value of Column must be a key of
// the named entity at the time the table is written.
type ForeignKey struct {
	Column string
	Entity string
}

type Schema struct {
	Name        string
	Columns     []Column
	ForeignKeys []ForeignKey
}

func (s Schema) Index(name string) int {
	for i, col := range s.Columns {
		if col.Name == name {
			return i
		}
	}
	return -1
}

func (s Schema) ColumnNames() []string {
	names := make([]string, len(s.Columns))
	for i, col := range s.Columns {
		names[i] = col.Name
	}
	return names
}

// Row holds one value per schema column. Values are int64, float64, string,
// time.Time or nil.
type Row []any

// Table is an immutable, ordered set of rows sharing one schema.
type Table struct {
	schema Schema
	rows   []Row
}

func (t *Table) Name() string   { return t.schema.Name }
func (t *Table) Schema() Schema { return t.schema }
func (t *Table) Len() int       { return len(t.rows) }
func (t *Table) Row(i int) Row  { return t.rows[i] }

// Get returns the value of the named column in row i, or nil when the column
// does not exist.
func (t *Table) Get(i int, column string) any {
	idx := t.schema.Index(column)
	if idx < 0 {
		return nil
	}
	return t.rows[i][idx]
}

// Ints returns the non-null values of an Int column in row order.
func (t *Table) Ints(column string) []int64 {
	idx := t.schema.Index(column)
	if idx < 0 {
		return nil
	}
	out := make([]int64, 0, len(t.rows))
	for _, row := range t.rows {
		if v, ok := row[idx].(int64); ok {
			out = append(out, v)
		}
	}
	return out
}

// Builder collects rows for a table. The first malformed row is remembered
// and reported by Build.
type Builder struct {
	schema Schema
	rows   []Row
	err    error
}

func NewBuilder(schema Schema) *Builder {
	return &Builder{schema: schema}
}

func (b *Builder) Add(values ...any) {
	if b.err != nil {
		return
	}
	if len(values) != len(b.schema.Columns) {
		b.err = fmt.Errorf("table %s: row %d has %d values, want %d",
			b.schema.Name, len(b.rows)+1, len(values), len(b.schema.Columns))
		return
	}
	row := make(Row, len(values))
	for i, v := range values {
		nv, err := normalize(b.schema.Columns[i].Kind, v)
		if err != nil {
			b.err = fmt.Errorf("table %s: row %d column %s: %w",
				b.schema.Name, len(b.rows)+1, b.schema.Columns[i].Name, err)
			return
		}
		row[i] = nv
	}
	b.rows = append(b.rows, row)
}

func (b *Builder) Len() int { return len(b.rows) }

func (b *Builder) Build() (*Table, error) {
	if b.err != nil {
		return nil, b.err
	}
	return &Table{schema: b.schema, rows: b.rows}, nil
}

func normalize(kind Kind, v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	switch kind {
	case Int:
		switch n := v.(type) {
		case int64:
			return n, nil
		case int:
			return int64(n), nil
		case bool:
			if n {
				return int64(1), nil
			}
			return int64(0), nil
		}
	case Float:
		switch n := v.(type) {
		case float64:
			return n, nil
		case int:
			return float64(n), nil
		case int64:
			return float64(n), nil
		}
	case String:
		if s, ok := v.(string); ok {
			return s, nil
		}
	case Date:
		if ts, ok := v.(time.Time); ok {
			y, m, d := ts.UTC().Date()
			return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
		}
	case DateTime:
		if ts, ok := v.(time.Time); ok {
			return ts.UTC(), nil
		}
	}
	return nil, fmt.Errorf("value %v (%T) does not fit %s", v, v, kind)
}
