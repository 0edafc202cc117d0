package database

import (
	"context"

	"github.com/Rana718/dataforge/internal/table"
)

// DatabaseAdapter loads generated tables into one database engine.
type DatabaseAdapter interface {
	Connect(ctx context.Context, url string) error
	Close() error
	Ping(ctx context.Context) error

	DropTable(ctx context.Context, name string) error
	CreateTable(ctx context.Context, name string, schema table.Schema) error
	// InsertRows writes every row of t into the named table inside one
	// transaction.
	InsertRows(ctx context.Context, name string, t *table.Table) error
	GetTableRowCount(ctx context.Context, name string) (int, error)
}
