package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/Lumos-Labs-HQ/whseed/internal/database/common"
	"github.com/Lumos-Labs-HQ/whseed/internal/types"
	"github.com/Masterminds/squirrel"
	_ "github.com/mattn/go-sqlite3"
)

type Adapter struct {
	db     *sql.DB
	qb     squirrel.StatementBuilderType
	tables types.Tables
}

func New(tables types.Tables) *Adapter {
	return &Adapter{
		qb:     squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
		tables: tables,
	}
}

func quote(name string) string {
	return `"` + name + `"`
}

func resetSequence(table string) string {
	return fmt.Sprintf("DELETE FROM sqlite_sequence WHERE name='%s'", table)
}

// dateOf strips any time part go-sqlite3 stored alongside a time.Time value.
func dateOf(column string) string {
	return "date(" + column + ")"
}

func (s *Adapter) Connect(ctx context.Context, url string) error {
	dbPath := strings.TrimPrefix(url, "sqlite://")
	if !strings.Contains(dbPath, "?") {
		dbPath += "?_journal_mode=WAL&_foreign_keys=on"
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return fmt.Errorf("failed to open SQLite connection: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetConnMaxIdleTime(5 * time.Minute)

	s.db = db
	return nil
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

func (s *Adapter) Begin(ctx context.Context) (common.Tx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return common.NewSQLTx(tx, s.qb, s.tables, common.Dialect{
		Quote:         quote,
		ResetSequence: resetSequence,
		DateOf:        dateOf,
	}), nil
}

func (s *Adapter) CountRows(ctx context.Context, table string) (int64, error) {
	query, args, err := s.qb.Select("COUNT(*)").From(quote(table)).ToSql()
	if err != nil {
		return 0, err
	}
	var count int64
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count rows in %s: %w", table, err)
	}
	return count, nil
}

func (s *Adapter) TableExists(ctx context.Context, table string) (bool, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&count)
	return count > 0, err
}
