package seeder

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Lumos-Labs-HQ/whseed/internal/database"
	"github.com/Lumos-Labs-HQ/whseed/internal/database/common"
	"github.com/Lumos-Labs-HQ/whseed/internal/types"
	"github.com/shopspring/decimal"
)

var errInjected = errors.New("injected failure")

// fakeTx is an in-memory warehouse. Ids are 1-based insertion positions.
type fakeTx struct {
	customers []types.Customer
	products  []types.Product
	channels  []int64
	calendar  []time.Time
	dateIDs   map[string]int64

	orders     []types.Order
	insertedAs []types.OrderTotals // totals at INSERT time
	updates    map[int64]int
	items      []types.OrderItem
	truncated  []string
	committed  bool
	rolledBack bool
	failOn     string
}

func newFakeTx(channels int, from time.Time, days int) *fakeTx {
	f := &fakeTx{dateIDs: map[string]int64{}, updates: map[int64]int{}}
	for i := 1; i <= channels; i++ {
		f.channels = append(f.channels, int64(i))
	}
	for i := 0; i < days; i++ {
		d := from.AddDate(0, 0, i)
		f.calendar = append(f.calendar, d)
		f.dateIDs[d.Format(common.DateLayout)] = int64(20000 + i)
	}
	return f
}

func (f *fakeTx) fail(op string) error {
	if f.failOn == op {
		return errInjected
	}
	return nil
}

func (f *fakeTx) InsertCustomer(ctx context.Context, c types.Customer) error {
	if err := f.fail("InsertCustomer"); err != nil {
		return err
	}
	f.customers = append(f.customers, c)
	return nil
}

func (f *fakeTx) InsertProduct(ctx context.Context, p types.Product) error {
	if err := f.fail("InsertProduct"); err != nil {
		return err
	}
	f.products = append(f.products, p)
	return nil
}

func (f *fakeTx) InsertOrder(ctx context.Context, o types.Order) (int64, error) {
	if err := f.fail("InsertOrder"); err != nil {
		return 0, err
	}
	f.orders = append(f.orders, o)
	f.insertedAs = append(f.insertedAs, o.Totals)
	return int64(len(f.orders)), nil
}

func (f *fakeTx) InsertOrderItem(ctx context.Context, it types.OrderItem) error {
	if err := f.fail("InsertOrderItem"); err != nil {
		return err
	}
	if it.OrderID < 1 || int(it.OrderID) > len(f.orders) {
		return fmt.Errorf("order %d does not exist", it.OrderID)
	}
	f.items = append(f.items, it)
	return nil
}

func (f *fakeTx) UpdateOrderTotals(ctx context.Context, orderID int64, t types.OrderTotals) error {
	if err := f.fail("UpdateOrderTotals"); err != nil {
		return err
	}
	f.orders[orderID-1].Totals = t
	f.updates[orderID]++
	return nil
}

func (f *fakeTx) CustomerIDs(ctx context.Context) ([]int64, error) {
	ids := make([]int64, len(f.customers))
	for i := range f.customers {
		ids[i] = int64(i + 1)
	}
	return ids, nil
}

func (f *fakeTx) ActiveProducts(ctx context.Context) ([]types.ProductPrice, error) {
	var out []types.ProductPrice
	for i, p := range f.products {
		if p.IsActive {
			out = append(out, types.ProductPrice{ID: int64(i + 1), ListPrice: p.ListPrice})
		}
	}
	return out, nil
}

func (f *fakeTx) ChannelIDs(ctx context.Context) ([]int64, error) {
	return f.channels, nil
}

func (f *fakeTx) CalendarDates(ctx context.Context) ([]time.Time, error) {
	return f.calendar, nil
}

func (f *fakeTx) DateID(ctx context.Context, d time.Time) (int64, error) {
	id, ok := f.dateIDs[d.Format(common.DateLayout)]
	if !ok {
		return 0, fmt.Errorf("%w: %s", database.ErrDateNotFound, d.Format(common.DateLayout))
	}
	return id, nil
}

func (f *fakeTx) Truncate(ctx context.Context, table string) error {
	f.truncated = append(f.truncated, table)
	return nil
}

func (f *fakeTx) Commit(ctx context.Context) error {
	if err := f.fail("Commit"); err != nil {
		return err
	}
	f.committed = true
	return nil
}

func (f *fakeTx) Rollback(ctx context.Context) error {
	f.rolledBack = true
	return nil
}

func (f *fakeTx) itemsOf(orderID int64) []types.OrderItem {
	var out []types.OrderItem
	for _, it := range f.items {
		if it.OrderID == orderID {
			out = append(out, it)
		}
	}
	return out
}

type fakeAdapter struct {
	tx      *fakeTx
	missing map[string]bool
	begun   bool
	closed  bool
}

func (a *fakeAdapter) Connect(ctx context.Context, url string) error { return nil }
func (a *fakeAdapter) Ping(ctx context.Context) error                { return nil }

func (a *fakeAdapter) Close() error {
	a.closed = true
	return nil
}

func (a *fakeAdapter) Begin(ctx context.Context) (database.Tx, error) {
	a.begun = true
	return a.tx, nil
}

func (a *fakeAdapter) CountRows(ctx context.Context, table string) (int64, error) {
	return 0, nil
}

func (a *fakeAdapter) TableExists(ctx context.Context, table string) (bool, error) {
	return !a.missing[table], nil
}

// scriptedSource replays fixed draws, then falls back to zero.
type scriptedSource struct {
	ints   []int
	floats []float64
}

func (s *scriptedSource) Intn(n int) int {
	if len(s.ints) == 0 {
		return 0
	}
	v := s.ints[0]
	s.ints = s.ints[1:]
	return v % n
}

func (s *scriptedSource) Float64() float64 {
	if len(s.floats) == 0 {
		return 0.5
	}
	v := s.floats[0]
	s.floats = s.floats[1:]
	return v
}

func indexOf(values []string, v string) int {
	for i, s := range values {
		if s == v {
			return i
		}
	}
	panic("value not in vocabulary: " + v)
}

func money(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
