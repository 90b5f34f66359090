package common

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Lumos-Labs-HQ/whseed/internal/types"
	"github.com/Masterminds/squirrel"
	"github.com/shopspring/decimal"
)

// Dialect captures what differs between the database/sql backed providers.
type Dialect struct {
	Quote func(string) string

	// ResetSequence, when set, is run after a table is emptied. Failures are ignored.
	ResetSequence func(table string) string

	// DateOf, when set, normalises a DATE column before it is compared to a
	// "2006-01-02" string.
	DateOf func(column string) string
}

// SQLTx implements the warehouse store over a database/sql transaction.
type SQLTx struct {
	tx      *sql.Tx
	qb      squirrel.StatementBuilderType
	tables  types.Tables
	dialect Dialect
}

func NewSQLTx(tx *sql.Tx, qb squirrel.StatementBuilderType, tables types.Tables, dialect Dialect) *SQLTx {
	return &SQLTx{tx: tx, qb: qb, tables: tables, dialect: dialect}
}

func (s *SQLTx) t(name string) string {
	return s.dialect.Quote(name)
}

func (s *SQLTx) exec(ctx context.Context, b squirrel.Sqlizer) (sql.Result, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}
	return s.tx.ExecContext(ctx, query, args...)
}

func (s *SQLTx) InsertCustomer(ctx context.Context, c types.Customer) error {
	_, err := s.exec(ctx, s.qb.Insert(s.t(s.tables.Customer)).
		Columns("customer_key", "first_name", "last_name", "email", "phone",
			"created_date", "country", "region", "city", "postal_code", "segment").
		Values(c.Key, c.FirstName, c.LastName, c.Email, c.Phone,
			c.CreatedDate.Format(DateLayout), c.Country, c.Region, c.City, c.PostalCode, c.Segment))
	return err
}

func (s *SQLTx) InsertProduct(ctx context.Context, p types.Product) error {
	_, err := s.exec(ctx, s.qb.Insert(s.t(s.tables.Product)).
		Columns("product_sku", "product_name", "brand", "category",
			"subcategory", "list_price", "cost", "is_active").
		Values(p.SKU, p.Name, p.Brand, p.Category, p.Subcategory, p.ListPrice, p.Cost, p.IsActive))
	return err
}

func (s *SQLTx) InsertOrder(ctx context.Context, o types.Order) (int64, error) {
	res, err := s.exec(ctx, s.qb.Insert(s.t(s.tables.Order)).
		Columns("order_number", "customer_id", "order_date_id", "channel_id",
			"order_status", "order_subtotal", "order_tax", "order_shipping",
			"order_discount", "order_total").
		Values(o.Number, o.CustomerID, o.DateID, o.ChannelID, o.Status,
			o.Totals.Subtotal, o.Totals.Tax, o.Totals.Shipping, o.Totals.Discount, o.Totals.Total))
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read generated order id: %w", err)
	}
	return id, nil
}

func (s *SQLTx) InsertOrderItem(ctx context.Context, it types.OrderItem) error {
	_, err := s.exec(ctx, s.qb.Insert(s.t(s.tables.OrderItem)).
		Columns("order_id", "product_id", "quantity", "unit_price", "unit_discount",
			"line_subtotal", "line_discount_total", "line_total").
		Values(it.OrderID, it.ProductID, it.Quantity, it.UnitPrice, it.UnitDiscount,
			it.LineSubtotal, it.LineDiscountTotal, it.LineTotal))
	return err
}

func (s *SQLTx) UpdateOrderTotals(ctx context.Context, orderID int64, t types.OrderTotals) error {
	res, err := s.exec(ctx, s.qb.Update(s.t(s.tables.Order)).
		Set("order_subtotal", t.Subtotal).
		Set("order_tax", t.Tax).
		Set("order_shipping", t.Shipping).
		Set("order_discount", t.Discount).
		Set("order_total", t.Total).
		Where(squirrel.Eq{"order_id": orderID}))
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("order %d not found", orderID)
	}
	return nil
}

func (s *SQLTx) queryIDs(ctx context.Context, b squirrel.SelectBuilder) ([]int64, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}
	rows, err := s.tx.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (s *SQLTx) CustomerIDs(ctx context.Context) ([]int64, error) {
	return s.queryIDs(ctx, s.qb.Select("customer_id").From(s.t(s.tables.Customer)).OrderBy("customer_id"))
}

func (s *SQLTx) ChannelIDs(ctx context.Context) ([]int64, error) {
	return s.queryIDs(ctx, s.qb.Select("channel_id").From(s.t(s.tables.Channel)).OrderBy("channel_id"))
}

func (s *SQLTx) ActiveProducts(ctx context.Context) ([]types.ProductPrice, error) {
	query, args, err := s.qb.Select("product_id", "list_price").
		From(s.t(s.tables.Product)).
		Where(squirrel.Eq{"is_active": true}).
		OrderBy("product_id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}
	rows, err := s.tx.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []types.ProductPrice
	for rows.Next() {
		var p types.ProductPrice
		var price decimal.Decimal
		if err := rows.Scan(&p.ID, &price); err != nil {
			return nil, fmt.Errorf("failed to scan product row: %w", err)
		}
		p.ListPrice = price
		products = append(products, p)
	}
	return products, rows.Err()
}

func (s *SQLTx) CalendarDates(ctx context.Context) ([]time.Time, error) {
	query, args, err := s.qb.Select("date_actual").From(s.t(s.tables.Date)).OrderBy("date_actual").ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}
	rows, err := s.tx.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var dates []time.Time
	for rows.Next() {
		var raw interface{}
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("failed to scan calendar date: %w", err)
		}
		d, err := ParseDateValue(raw)
		if err != nil {
			return nil, err
		}
		dates = append(dates, d)
	}
	return dates, rows.Err()
}

func (s *SQLTx) DateID(ctx context.Context, d time.Time) (int64, error) {
	column := "date_actual"
	if s.dialect.DateOf != nil {
		column = s.dialect.DateOf(column)
	}
	query, args, err := s.qb.Select("date_id").From(s.t(s.tables.Date)).
		Where(column+" = ?", d.Format(DateLayout)).ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build query: %w", err)
	}
	var id int64
	if err := s.tx.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, fmt.Errorf("%w: %s", ErrDateNotFound, d.Format(DateLayout))
		}
		return 0, err
	}
	return id, nil
}

func (s *SQLTx) Truncate(ctx context.Context, table string) error {
	if _, err := s.exec(ctx, s.qb.Delete(s.t(table))); err != nil {
		return err
	}
	if s.dialect.ResetSequence != nil {
		s.tx.ExecContext(ctx, s.dialect.ResetSequence(table))
	}
	return nil
}

func (s *SQLTx) Commit(ctx context.Context) error {
	return s.tx.Commit()
}

func (s *SQLTx) Rollback(ctx context.Context) error {
	return s.tx.Rollback()
}
