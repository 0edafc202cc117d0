package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/Rana718/dataforge/internal/database/common"
	"github.com/Rana718/dataforge/internal/table"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

type Adapter struct {
	pool *pgxpool.Pool
	qb   squirrel.StatementBuilderType
}

var dialect = common.Dialect{
	Types: map[table.Kind]string{
		table.Int:      "BIGINT",
		table.Float:    "DOUBLE PRECISION",
		table.String:   "TEXT",
		table.Date:     "DATE",
		table.DateTime: "TIMESTAMP",
	},
	Quote: pq.QuoteIdentifier,
}

func New() *Adapter {
	return &Adapter{
		qb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func (p *Adapter) Connect(ctx context.Context, url string) error {
	config, err := pgxpool.ParseConfig(url)
	if err != nil {
		return fmt.Errorf("failed to parse connection URL: %w", err)
	}

	config.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeExec

	config.MaxConns = 2
	config.MinConns = 0
	config.MaxConnLifetime = 15 * time.Minute
	config.MaxConnIdleTime = 3 * time.Minute
	config.HealthCheckPeriod = 30 * time.Second

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return fmt.Errorf("failed to create connection pool: %w", err)
	}

	p.pool = pool
	return nil
}

func (p *Adapter) Close() error {
	if p.pool != nil {
		p.pool.Close()
	}
	return nil
}

func (p *Adapter) Ping(ctx context.Context) error {
	return p.pool.Ping(ctx)
}
