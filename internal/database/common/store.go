package common

import (
	"context"
	"time"

	"github.com/Lumos-Labs-HQ/whseed/internal/types"
)

// Store is the read/write surface the seeder needs from the warehouse.
type Store interface {
	InsertCustomer(ctx context.Context, c types.Customer) error
	InsertProduct(ctx context.Context, p types.Product) error
	// InsertOrder returns the generated order_id.
	InsertOrder(ctx context.Context, o types.Order) (int64, error)
	InsertOrderItem(ctx context.Context, it types.OrderItem) error
	UpdateOrderTotals(ctx context.Context, orderID int64, t types.OrderTotals) error

	CustomerIDs(ctx context.Context) ([]int64, error)
	ActiveProducts(ctx context.Context) ([]types.ProductPrice, error)
	ChannelIDs(ctx context.Context) ([]int64, error)
	CalendarDates(ctx context.Context) ([]time.Time, error)
	// DateID resolves a calendar date; missing dates yield ErrDateNotFound.
	DateID(ctx context.Context, d time.Time) (int64, error)
}

// Tx is a Store bound to the single seeding transaction.
type Tx interface {
	Store
	Truncate(ctx context.Context, table string) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}
