package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/Lumos-Labs-HQ/whseed/internal/database/common"
	"github.com/Lumos-Labs-HQ/whseed/internal/types"
	"github.com/Masterminds/squirrel"
	"github.com/go-sql-driver/mysql"
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
	return "`" + name + "`"
}

// ConvertURL turns a mysql:// URL into a go-sql-driver DSN with parseTime enabled.
func ConvertURL(url string) (string, error) {
	dsn := url
	if strings.HasPrefix(url, "mysql://") {
		dsn = strings.TrimPrefix(url, "mysql://")

		atIndex := strings.LastIndex(dsn, "@")
		if atIndex > 0 {
			credentials := dsn[:atIndex]
			remainder := dsn[atIndex+1:]

			slashIndex := strings.Index(remainder, "/")
			if slashIndex > 0 {
				hostPort := remainder[:slashIndex]
				dbAndParams := remainder[slashIndex+1:]

				dbAndParams = strings.ReplaceAll(dbAndParams, "ssl-mode=REQUIRED", "tls=skip-verify")
				dbAndParams = strings.ReplaceAll(dbAndParams, "ssl-mode=DISABLED", "tls=false")
				dbAndParams = strings.ReplaceAll(dbAndParams, "sslmode=require", "tls=skip-verify")
				dbAndParams = strings.ReplaceAll(dbAndParams, "sslmode=disable", "tls=false")

				dsn = fmt.Sprintf("%s@tcp(%s)/%s", credentials, hostPort, dbAndParams)
			}
		}
	}

	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return "", fmt.Errorf("failed to parse MySQL DSN: %w", err)
	}
	cfg.ParseTime = true
	return cfg.FormatDSN(), nil
}

func (m *Adapter) Connect(ctx context.Context, url string) error {
	dsn, err := ConvertURL(url)
	if err != nil {
		return err
	}

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return fmt.Errorf("failed to open MySQL connection: %w", err)
	}
	db.SetMaxOpenConns(2)
	db.SetMaxIdleConns(1)
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

// Begin opens the seeding transaction. Generated tables are emptied with
// DELETE because TRUNCATE would implicitly commit.
func (m *Adapter) Begin(ctx context.Context) (common.Tx, error) {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return common.NewSQLTx(tx, m.qb, m.tables, common.Dialect{Quote: quote}), nil
}

func (m *Adapter) CountRows(ctx context.Context, table string) (int64, error) {
	query, args, err := m.qb.Select("COUNT(*)").From(quote(table)).ToSql()
	if err != nil {
		return 0, err
	}
	var count int64
	if err := m.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count rows in %s: %w", table, err)
	}
	return count, nil
}

func (m *Adapter) TableExists(ctx context.Context, table string) (bool, error) {
	var count int
	err := m.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM information_schema.tables
		WHERE table_schema = DATABASE() AND table_name = ?
	`, table).Scan(&count)
	return count > 0, err
}
