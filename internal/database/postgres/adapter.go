package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/Lumos-Labs-HQ/whseed/internal/database/common"
	"github.com/Lumos-Labs-HQ/whseed/internal/types"
	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

type Adapter struct {
	pool   *pgxpool.Pool
	qb     squirrel.StatementBuilderType
	tables types.Tables
}

func New(tables types.Tables) *Adapter {
	return &Adapter{
		qb:     squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
		tables: tables,
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

func (p *Adapter) Begin(ctx context.Context) (common.Tx, error) {
	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return &Tx{tx: tx, qb: p.qb, tables: p.tables}, nil
}

func (p *Adapter) CountRows(ctx context.Context, table string) (int64, error) {
	query, args, err := p.qb.Select("COUNT(*)").From(pq.QuoteIdentifier(table)).ToSql()
	if err != nil {
		return 0, err
	}
	var count int64
	if err := p.pool.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count rows in %s: %w", table, err)
	}
	return count, nil
}

func (p *Adapter) TableExists(ctx context.Context, table string) (bool, error) {
	var exists bool
	err := p.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM information_schema.tables
			WHERE table_name = $1 AND table_schema = current_schema()
		)
	`, table).Scan(&exists)
	return exists, err
}
