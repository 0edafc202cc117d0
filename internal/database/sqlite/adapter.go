package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/Rana718/dataforge/internal/database/common"
	"github.com/Rana718/dataforge/internal/table"
	_ "github.com/mattn/go-sqlite3"
)

type Adapter struct {
	db *sql.DB
	qb squirrel.StatementBuilderType
}

var dialect = common.Dialect{
	Types: map[table.Kind]string{
		table.Int:      "INTEGER",
		table.Float:    "REAL",
		table.String:   "TEXT",
		table.Date:     "TEXT",
		table.DateTime: "TEXT",
	},
	Quote: func(name string) string {
		return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
	},
	TextDates: true,
}

func New() *Adapter {
	return &Adapter{
		qb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
	}
}

func (s *Adapter) Connect(ctx context.Context, url string) error {
	dbPath := strings.TrimPrefix(url, "sqlite://")
	if !strings.Contains(dbPath, "?") {
		dbPath += "?_journal_mode=WAL"
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return fmt.Errorf("failed to open SQLite connection: %w", err)
	}

	// a single connection keeps ":memory:" databases alive between calls
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(5 * time.Minute)

	s.db = db
	return s.Ping(ctx)
}

func (s *Adapter) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *Adapter) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}
