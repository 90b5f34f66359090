package database

import (
	"context"

	"github.com/Lumos-Labs-HQ/whseed/internal/database/common"
)

// ErrDateNotFound is returned when a sampled order date has no row in the calendar dimension.
var ErrDateNotFound = common.ErrDateNotFound

type (
	Store = common.Store
	Tx    = common.Tx
)

type DatabaseAdapter interface {
	Connect(ctx context.Context, url string) error
	Close() error
	Ping(ctx context.Context) error

	// Begin opens the single transaction a seeding run writes through.
	Begin(ctx context.Context) (Tx, error)

	CountRows(ctx context.Context, table string) (int64, error)
	TableExists(ctx context.Context, table string) (bool, error)
}
