package seeder

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Lumos-Labs-HQ/whseed/internal/database"
	"github.com/Lumos-Labs-HQ/whseed/internal/types"
	"github.com/fatih/color"
)

// ErrMissingDimensions is returned when order generation has nothing to reference.
var ErrMissingDimensions = errors.New("need customers, products, channels and calendar dates before seeding orders")

type dimensions struct {
	customers []int64
	products  []types.ProductPrice
	channels  []int64
	dates     []time.Time
}

func loadDimensions(ctx context.Context, store database.Store) (*dimensions, error) {
	var (
		d   dimensions
		err error
	)
	if d.customers, err = store.CustomerIDs(ctx); err != nil {
		return nil, fmt.Errorf("failed to load customers: %w", err)
	}
	if d.products, err = store.ActiveProducts(ctx); err != nil {
		return nil, fmt.Errorf("failed to load active products: %w", err)
	}
	if d.channels, err = store.ChannelIDs(ctx); err != nil {
		return nil, fmt.Errorf("failed to load channels: %w", err)
	}
	if d.dates, err = store.CalendarDates(ctx); err != nil {
		return nil, fmt.Errorf("failed to load calendar dates: %w", err)
	}

	var empty []string
	if len(d.customers) == 0 {
		empty = append(empty, "customers")
	}
	if len(d.products) == 0 {
		empty = append(empty, "active products")
	}
	if len(d.channels) == 0 {
		empty = append(empty, "channels")
	}
	if len(d.dates) == 0 {
		empty = append(empty, "calendar dates")
	}
	if len(empty) > 0 {
		return nil, fmt.Errorf("%w (empty: %s)", ErrMissingDimensions, strings.Join(empty, ", "))
	}
	return &d, nil
}

// seedOrders writes n orders numbered from next, each with 1..maxItems lines.
// It returns the next free order number and the number of lines written.
func (s *Seeder) seedOrders(ctx context.Context, store database.Store, n, maxItems, next int) (int, int, error) {
	dims, err := loadDimensions(ctx, store)
	if err != nil {
		return next, 0, err
	}

	step := n / 10
	items := 0
	for i := 0; i < n; i++ {
		written, err := s.seedOrder(ctx, store, dims, maxItems, next)
		if err != nil {
			return next, items, err
		}
		items += written
		next++

		if step > 0 && (i+1)%step == 0 && i+1 < n {
			color.Cyan("     … %d/%d orders", i+1, n)
		}
	}
	return next, items, nil
}

func (s *Seeder) seedOrder(ctx context.Context, store database.Store, dims *dimensions, maxItems, seq int) (int, error) {
	g := s.generator

	customerID := dims.customers[g.rand.Intn(len(dims.customers))]
	orderDate := dims.dates[g.rand.Intn(len(dims.dates))]
	dateID, err := store.DateID(ctx, orderDate)
	if err != nil {
		return 0, fmt.Errorf("failed to resolve order date: %w", err)
	}
	channelID := dims.channels[g.rand.Intn(len(dims.channels))]

	order := types.Order{
		Number:     fmt.Sprintf("ORD-%07d", seq),
		CustomerID: customerID,
		DateID:     dateID,
		ChannelID:  channelID,
		Status:     g.OrderStatus(),
	}

	// Lines reference the order, so it is written first with zero totals
	// and patched once every line exists.
	orderID, err := store.InsertOrder(ctx, order)
	if err != nil {
		return 0, fmt.Errorf("failed to insert order %s: %w", order.Number, err)
	}

	count := g.rand.Intn(maxItems) + 1
	lines := make([]types.OrderItem, 0, count)
	for i := 0; i < count; i++ {
		product := dims.products[g.rand.Intn(len(dims.products))]
		line := g.LineItem(orderID, product)
		if err := store.InsertOrderItem(ctx, line); err != nil {
			return 0, fmt.Errorf("failed to insert line item for order %s: %w", order.Number, err)
		}
		lines = append(lines, line)
	}

	totals := ComputeTotals(lines, g.Shipping())
	if err := store.UpdateOrderTotals(ctx, orderID, totals); err != nil {
		return 0, fmt.Errorf("failed to update totals for order %s: %w", order.Number, err)
	}
	return count, nil
}
