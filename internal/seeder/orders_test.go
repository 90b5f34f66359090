package seeder

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/Lumos-Labs-HQ/whseed/internal/database"
	"github.com/Lumos-Labs-HQ/whseed/internal/database/common"
	"github.com/Lumos-Labs-HQ/whseed/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var calendarStart = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// withDimensions seeds customers and products into tx.
func withDimensions(t *testing.T, s *Seeder, tx *fakeTx) {
	t.Helper()
	ctx := context.Background()
	_, err := s.seedCustomers(ctx, tx, 20, 1)
	require.NoError(t, err)
	_, err = s.seedProducts(ctx, tx, 7, 1)
	require.NoError(t, err)
}

func TestSeedOrdersRequiresChannels(t *testing.T) {
	tx := newFakeTx(0, calendarStart, 30)
	s, _ := newTestSeeder(tx, 1)
	withDimensions(t, s, tx)

	_, _, err := s.seedOrders(context.Background(), tx, 10, 5, 1)
	require.ErrorIs(t, err, ErrMissingDimensions)
	assert.Contains(t, err.Error(), "channels")
	assert.Empty(t, tx.orders)
	assert.Empty(t, tx.items)
}

func TestSeedOrdersRequiresCustomers(t *testing.T) {
	tx := newFakeTx(3, calendarStart, 30)
	s, _ := newTestSeeder(tx, 1)

	_, _, err := s.seedOrders(context.Background(), tx, 10, 5, 1)
	require.ErrorIs(t, err, ErrMissingDimensions)
	assert.Contains(t, err.Error(), "customers")
	assert.Empty(t, tx.orders)
}

func TestSeedOrdersUnknownDate(t *testing.T) {
	tx := newFakeTx(3, calendarStart, 1)
	delete(tx.dateIDs, calendarStart.Format(common.DateLayout))
	s, _ := newTestSeeder(tx, 1)
	withDimensions(t, s, tx)

	_, _, err := s.seedOrders(context.Background(), tx, 1, 5, 1)
	require.ErrorIs(t, err, database.ErrDateNotFound)
	assert.Contains(t, err.Error(), "2024-01-01")
	assert.Empty(t, tx.orders)
}

func TestSeedOrdersTotalsMatchLines(t *testing.T) {
	const orders, maxItems = 200, 5

	tx := newFakeTx(3, calendarStart, 366)
	s, _ := newTestSeeder(tx, 5)
	withDimensions(t, s, tx)

	next, written, err := s.seedOrders(context.Background(), tx, orders, maxItems, 1)
	require.NoError(t, err)
	assert.Equal(t, orders+1, next)
	require.Len(t, tx.orders, orders)
	assert.Equal(t, len(tx.items), written)

	active := map[int64]bool{}
	products, _ := tx.ActiveProducts(context.Background())
	for _, p := range products {
		active[p.ID] = true
	}

	statuses := []string{types.StatusCompleted, types.StatusCancelled, types.StatusRefunded}
	for i, o := range tx.orders {
		id := int64(i + 1)
		assert.Equal(t, fmt.Sprintf("ORD-%07d", i+1), o.Number)
		assert.Contains(t, statuses, o.Status)
		assert.GreaterOrEqual(t, o.DateID, int64(20000))
		assert.Less(t, o.DateID, int64(20366))
		assert.Contains(t, tx.channels, o.ChannelID)

		assert.True(t, tx.insertedAs[i].Total.IsZero(), "order %d inserted with totals", id)
		assert.Equal(t, 1, tx.updates[id], "order %d totals updated more than once", id)

		lines := tx.itemsOf(id)
		require.GreaterOrEqual(t, len(lines), 1)
		require.LessOrEqual(t, len(lines), maxItems)
		for _, l := range lines {
			assert.True(t, active[l.ProductID], "line references inactive product %d", l.ProductID)
		}

		want := ComputeTotals(lines, o.Totals.Shipping)
		assert.True(t, want.Subtotal.Equal(o.Totals.Subtotal))
		assert.True(t, want.Discount.Equal(o.Totals.Discount))
		assert.True(t, want.Tax.Equal(o.Totals.Tax))
		assert.True(t, want.Total.Equal(o.Totals.Total))
	}
}

func TestSeedOrdersRollsForwardCounter(t *testing.T) {
	tx := newFakeTx(3, calendarStart, 30)
	s, _ := newTestSeeder(tx, 8)
	withDimensions(t, s, tx)

	next, _, err := s.seedOrders(context.Background(), tx, 4, 2, 41)
	require.NoError(t, err)
	assert.Equal(t, 45, next)
	assert.Equal(t, "ORD-0000041", tx.orders[0].Number)
	assert.Equal(t, "ORD-0000044", tx.orders[3].Number)
}
