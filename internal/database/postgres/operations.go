package postgres

import (
	"context"
	"fmt"

	"github.com/Rana718/dataforge/internal/table"
)

func (p *Adapter) DropTable(ctx context.Context, name string) error {
	_, err := p.pool.Exec(ctx, dialect.DropTableSQL(name))
	return err
}

func (p *Adapter) CreateTable(ctx context.Context, name string, schema table.Schema) error {
	query, err := dialect.CreateTableSQL(name, schema)
	if err != nil {
		return err
	}
	_, err = p.pool.Exec(ctx, query)
	return err
}

func (p *Adapter) InsertRows(ctx context.Context, name string, t *table.Table) error {
	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	err = dialect.InsertBatches(p.qb, name, t, func(query string, args []any) error {
		_, err := tx.Exec(ctx, query, args...)
		return err
	})
	if err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (p *Adapter) GetTableRowCount(ctx context.Context, name string) (int, error) {
	var count int
	query, args, err := p.qb.Select("COUNT(*)").From(dialect.Quote(name)).ToSql()
	if err != nil {
		return 0, err
	}
	if err := p.pool.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count rows in table %s: %w", name, err)
	}
	return count, nil
}
