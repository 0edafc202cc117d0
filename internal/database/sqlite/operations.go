package sqlite

import (
	"context"
	"fmt"

	"github.com/Rana718/dataforge/internal/table"
)

func (s *Adapter) DropTable(ctx context.Context, name string) error {
	_, err := s.db.ExecContext(ctx, dialect.DropTableSQL(name))
	return err
}

func (s *Adapter) CreateTable(ctx context.Context, name string, schema table.Schema) error {
	query, err := dialect.CreateTableSQL(name, schema)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, query)
	return err
}

func (s *Adapter) InsertRows(ctx context.Context, name string, t *table.Table) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	err = dialect.InsertBatches(s.qb, name, t, func(query string, args []any) error {
		_, err := tx.ExecContext(ctx, query, args...)
		return err
	})
	if err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}

func (s *Adapter) GetTableRowCount(ctx context.Context, name string) (int, error) {
	var count int
	query, args, err := s.qb.Select("COUNT(*)").From(dialect.Quote(name)).ToSql()
	if err != nil {
		return 0, err
	}
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count rows in table %s: %w", name, err)
	}
	return count, nil
}

// ReadTable reads a table back in insertion order.
func (s *Adapter) ReadTable(ctx context.Context, name string, schema table.Schema) (*table.Table, error) {
	columns := make([]string, len(schema.Columns))
	for i, col := range schema.Columns {
		columns[i] = dialect.Quote(col.Name)
	}
	query, args, err := s.qb.Select(columns...).From(dialect.Quote(name)).OrderBy("rowid").ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to read table %s: %w", name, err)
	}
	defer rows.Close()

	b := table.NewBuilder(schema)
	values := make([]any, len(columns))
	valuePtrs := make([]any, len(columns))
	for i := range values {
		valuePtrs[i] = &values[i]
	}
	row := make([]any, len(columns))

	for rows.Next() {
		if err := rows.Scan(valuePtrs...); err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", name, err)
		}
		for i, col := range schema.Columns {
			v, err := dialect.Scan(col.Kind, values[i])
			if err != nil {
				return nil, fmt.Errorf("%s.%s: %w", name, col.Name, err)
			}
			row[i] = v
		}
		b.Add(row...)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return b.Build()
}

// TableExists reports whether the database has a table with that name.
func (s *Adapter) TableExists(ctx context.Context, name string) (bool, error) {
	var count int
	query, args, err := s.qb.Select("COUNT(*)").From("sqlite_master").
		Where("type = ? AND name = ?", "table", name).ToSql()
	if err != nil {
		return false, err
	}
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}
