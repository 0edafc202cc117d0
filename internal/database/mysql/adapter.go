package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/Rana718/dataforge/internal/database/common"
	"github.com/Rana718/dataforge/internal/table"
	_ "github.com/go-sql-driver/mysql"
)

type Adapter struct {
	db *sql.DB
	qb squirrel.StatementBuilderType
}

var dialect = common.Dialect{
	Types: map[table.Kind]string{
		table.Int:      "BIGINT",
		table.Float:    "DOUBLE",
		table.String:   "TEXT",
		table.Date:     "DATE",
		table.DateTime: "DATETIME",
	},
	Quote: func(name string) string {
		return "`" + strings.ReplaceAll(name, "`", "``") + "`"
	},
}

func New() *Adapter {
	return &Adapter{
		qb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
	}
}

// DSN converts a mysql:// URL into a go-sql-driver DSN. Anything else is
// returned unchanged.
func DSN(url string) string {
	if !strings.HasPrefix(url, "mysql://") {
		return url
	}
	dsn := strings.TrimPrefix(url, "mysql://")

	atIndex := strings.LastIndex(dsn, "@")
	if atIndex <= 0 {
		return dsn
	}
	credentials := dsn[:atIndex]
	remainder := dsn[atIndex+1:]

	slashIndex := strings.Index(remainder, "/")
	if slashIndex <= 0 {
		return dsn
	}
	hostPort := remainder[:slashIndex]
	dbAndParams := remainder[slashIndex+1:]

	replacer := strings.NewReplacer(
		"ssl-mode=REQUIRED", "tls=skip-verify",
		"ssl-mode=DISABLED", "tls=false",
		"ssl-mode=VERIFY_CA", "tls=true",
		"ssl-mode=VERIFY_IDENTITY", "tls=true",
		"sslmode=require", "tls=skip-verify",
		"sslmode=disable", "tls=false",
		"sslmode=verify-ca", "tls=true",
		"sslmode=verify-full", "tls=true",
	)
	return fmt.Sprintf("%s@tcp(%s)/%s", credentials, hostPort, replacer.Replace(dbAndParams))
}

func (m *Adapter) Connect(ctx context.Context, url string) error {
	db, err := sql.Open("mysql", DSN(url))
	if err != nil {
		return fmt.Errorf("failed to open MySQL connection: %w", err)
	}
	db.SetMaxOpenConns(2)
	db.SetMaxIdleConns(0)
	db.SetConnMaxLifetime(15 * time.Minute)
	db.SetConnMaxIdleTime(3 * time.Minute)

	m.db = db
	return nil
}

func (m *Adapter) Close() error {
	if m.db != nil {
		return m.db.Close()
	}
	return nil
}

func (m *Adapter) Ping(ctx context.Context) error {
	return m.db.PingContext(ctx)
}
