package database

import (
	"context"
	"fmt"

	"github.com/Rana718/dataforge/internal/database/common"
	"github.com/Rana718/dataforge/internal/table"
)

type LoadResult struct {
	Table string
	Rows  int
}

// LoadDomain replaces the database tables of one domain with the given
// tables. Each table is named <domain>_<table>.
func LoadDomain(ctx context.Context, adapter DatabaseAdapter, domain string, tables []*table.Table) ([]LoadResult, error) {
	results := make([]LoadResult, 0, len(tables))
	for _, t := range tables {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		name := common.TableName(domain, t.Name())
		if err := adapter.DropTable(ctx, name); err != nil {
			return results, fmt.Errorf("failed to drop table %s: %w", name, err)
		}
		if err := adapter.CreateTable(ctx, name, t.Schema()); err != nil {
			return results, fmt.Errorf("failed to create table %s: %w", name, err)
		}
		if err := adapter.InsertRows(ctx, name, t); err != nil {
			return results, err
		}

		count, err := adapter.GetTableRowCount(ctx, name)
		if err != nil {
			return results, err
		}
		if count != t.Len() {
			return results, fmt.Errorf("table %s has %d rows after load, want %d", name, count, t.Len())
		}
		results = append(results, LoadResult{Table: name, Rows: count})
	}
	return results, nil
}
