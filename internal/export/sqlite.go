package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Rana718/dataforge/internal/database/sqlite"
	"github.com/Rana718/dataforge/internal/table"
)

// sqliteCodec writes a domain as one SQLite database, <domain>.db, with one
// table per dataset table.
type sqliteCodec struct{}

// singleFile keeps the journal out of the domain directory.
const singleFile = "?_journal_mode=DELETE"

func dbPath(dir, domain string) string {
	return filepath.Join(dir, domain+".db")
}

func (sqliteCodec) write(dir, domain string, tables []*table.Table) error {
	ctx := context.Background()
	adapter := sqlite.New()
	if err := adapter.Connect(ctx, dbPath(dir, domain)+singleFile); err != nil {
		return err
	}
	defer adapter.Close()

	for _, t := range tables {
		if err := adapter.CreateTable(ctx, t.Name(), t.Schema()); err != nil {
			return fmt.Errorf("failed to create table %s: %w", t.Name(), err)
		}
		if err := adapter.InsertRows(ctx, t.Name(), t); err != nil {
			return err
		}
	}
	return adapter.Close()
}

func (sqliteCodec) read(dir, domain string, schemas []table.Schema) ([]*table.Table, error) {
	path := dbPath(dir, domain)
	if _, err := os.Stat(path); err != nil {
		return nil, missing(path, err)
	}

	ctx := context.Background()
	adapter := sqlite.New()
	if err := adapter.Connect(ctx, path+singleFile); err != nil {
		return nil, err
	}
	defer adapter.Close()

	out := make([]*table.Table, 0, len(schemas))
	for _, schema := range schemas {
		exists, err := adapter.TableExists(ctx, schema.Name)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, missing(path+"#"+schema.Name, os.ErrNotExist)
		}
		t, err := adapter.ReadTable(ctx, schema.Name, schema)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}
