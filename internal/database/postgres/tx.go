package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Lumos-Labs-HQ/whseed/internal/database/common"
	"github.com/Lumos-Labs-HQ/whseed/internal/types"
	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// Tx implements the warehouse store on a pgx transaction.
type Tx struct {
	tx     pgx.Tx
	qb     squirrel.StatementBuilderType
	tables types.Tables
}

// pgDate binds a calendar day as an explicit date so session time zones
// cannot shift it.
func pgDate(d time.Time) squirrel.Sqlizer {
	return squirrel.Expr("?::date", d.Format(common.DateLayout))
}

func (t *Tx) exec(ctx context.Context, b squirrel.Sqlizer) error {
	query, args, err := b.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}
	_, err = t.tx.Exec(ctx, query, args...)
	return err
}

func (t *Tx) InsertCustomer(ctx context.Context, c types.Customer) error {
	return t.exec(ctx, t.qb.Insert(pq.QuoteIdentifier(t.tables.Customer)).
		Columns("customer_key", "first_name", "last_name", "email", "phone",
			"created_date", "country", "region", "city", "postal_code", "segment").
		Values(c.Key, c.FirstName, c.LastName, c.Email, c.Phone,
			pgDate(c.CreatedDate), c.Country, c.Region, c.City, c.PostalCode, c.Segment))
}

func (t *Tx) InsertProduct(ctx context.Context, p types.Product) error {
	return t.exec(ctx, t.qb.Insert(pq.QuoteIdentifier(t.tables.Product)).
		Columns("product_sku", "product_name", "brand", "category",
			"subcategory", "list_price", "cost", "is_active").
		Values(p.SKU, p.Name, p.Brand, p.Category, p.Subcategory, p.ListPrice, p.Cost, p.IsActive))
}

func (t *Tx) InsertOrder(ctx context.Context, o types.Order) (int64, error) {
	query, args, err := t.qb.Insert(pq.QuoteIdentifier(t.tables.Order)).
		Columns("order_number", "customer_id", "order_date_id", "channel_id",
			"order_status", "order_subtotal", "order_tax", "order_shipping",
			"order_discount", "order_total").
		Values(o.Number, o.CustomerID, o.DateID, o.ChannelID, o.Status,
			o.Totals.Subtotal, o.Totals.Tax, o.Totals.Shipping, o.Totals.Discount, o.Totals.Total).
		Suffix("RETURNING order_id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build query: %w", err)
	}

	var id int64
	if err := t.tx.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func (t *Tx) InsertOrderItem(ctx context.Context, it types.OrderItem) error {
	return t.exec(ctx, t.qb.Insert(pq.QuoteIdentifier(t.tables.OrderItem)).
		Columns("order_id", "product_id", "quantity", "unit_price", "unit_discount",
			"line_subtotal", "line_discount_total", "line_total").
		Values(it.OrderID, it.ProductID, it.Quantity, it.UnitPrice, it.UnitDiscount,
			it.LineSubtotal, it.LineDiscountTotal, it.LineTotal))
}

func (t *Tx) UpdateOrderTotals(ctx context.Context, orderID int64, totals types.OrderTotals) error {
	query, args, err := t.qb.Update(pq.QuoteIdentifier(t.tables.Order)).
		Set("order_subtotal", totals.Subtotal).
		Set("order_tax", totals.Tax).
		Set("order_shipping", totals.Shipping).
		Set("order_discount", totals.Discount).
		Set("order_total", totals.Total).
		Where(squirrel.Eq{"order_id": orderID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}
	tag, err := t.tx.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("order %d not found", orderID)
	}
	return nil
}

func (t *Tx) queryIDs(ctx context.Context, b squirrel.SelectBuilder) ([]int64, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}
	rows, err := t.tx.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowTo[int64])
}

func (t *Tx) CustomerIDs(ctx context.Context) ([]int64, error) {
	return t.queryIDs(ctx, t.qb.Select("customer_id").From(pq.QuoteIdentifier(t.tables.Customer)).OrderBy("customer_id"))
}

func (t *Tx) ChannelIDs(ctx context.Context) ([]int64, error) {
	return t.queryIDs(ctx, t.qb.Select("channel_id").From(pq.QuoteIdentifier(t.tables.Channel)).OrderBy("channel_id"))
}

func (t *Tx) ActiveProducts(ctx context.Context) ([]types.ProductPrice, error) {
	query, args, err := t.qb.Select("product_id", "list_price::text").
		From(pq.QuoteIdentifier(t.tables.Product)).
		Where(squirrel.Eq{"is_active": true}).
		OrderBy("product_id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}
	rows, err := t.tx.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []types.ProductPrice
	for rows.Next() {
		var id int64
		var price string
		if err := rows.Scan(&id, &price); err != nil {
			return nil, fmt.Errorf("failed to scan product row: %w", err)
		}
		listPrice, err := decimal.NewFromString(price)
		if err != nil {
			return nil, fmt.Errorf("invalid list_price %q for product %d: %w", price, id, err)
		}
		products = append(products, types.ProductPrice{ID: id, ListPrice: listPrice})
	}
	return products, rows.Err()
}

func (t *Tx) CalendarDates(ctx context.Context) ([]time.Time, error) {
	query, args, err := t.qb.Select("date_actual").From(pq.QuoteIdentifier(t.tables.Date)).OrderBy("date_actual").ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}
	rows, err := t.tx.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowTo[time.Time])
}

func (t *Tx) DateID(ctx context.Context, d time.Time) (int64, error) {
	query, args, err := t.qb.Select("date_id").From(pq.QuoteIdentifier(t.tables.Date)).
		Where("date_actual = ?::date", d.Format(common.DateLayout)).ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build query: %w", err)
	}
	var id int64
	if err := t.tx.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, fmt.Errorf("%w: %s", common.ErrDateNotFound, d.Format(common.DateLayout))
		}
		return 0, err
	}
	return id, nil
}

func (t *Tx) Truncate(ctx context.Context, table string) error {
	_, err := t.tx.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", pq.QuoteIdentifier(table)))
	return err
}

func (t *Tx) Commit(ctx context.Context) error {
	return t.tx.Commit(ctx)
}

func (t *Tx) Rollback(ctx context.Context) error {
	return t.tx.Rollback(ctx)
}
