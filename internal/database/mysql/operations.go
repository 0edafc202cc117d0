package mysql

import (
	"context"
	"fmt"

	"github.com/Rana718/dataforge/internal/table"
)

func (m *Adapter) DropTable(ctx context.Context, name string) error {
	_, err := m.db.ExecContext(ctx, dialect.DropTableSQL(name))
	return err
}

func (m *Adapter) CreateTable(ctx context.Context, name string, schema table.Schema) error {
	query, err := dialect.CreateTableSQL(name, schema)
	if err != nil {
		return err
	}
	_, err = m.db.ExecContext(ctx, query)
	return err
}

func (m *Adapter) InsertRows(ctx context.Context, name string, t *table.Table) error {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	err = dialect.InsertBatches(m.qb, name, t, func(query string, args []any) error {
		_, err := tx.ExecContext(ctx, query, args...)
		return err
	})
	if err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}

func (m *Adapter) GetTableRowCount(ctx context.Context, name string) (int, error) {
	var count int
	query, args, err := m.qb.Select("COUNT(*)").From(dialect.Quote(name)).ToSql()
	if err != nil {
		return 0, err
	}
	if err := m.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count rows in table %s: %w", name, err)
	}
	return count, nil
}
