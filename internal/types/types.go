package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order statuses written to fact_order.order_status.
const (
	StatusCompleted = "Completed"
	StatusCancelled = "Cancelled"
	StatusRefunded  = "Refunded"
)

// Tables holds the physical table names of the warehouse star schema.
type Tables struct {
	Customer  string `json:"customer" yaml:"customer" mapstructure:"customer"`
	Product   string `json:"product" yaml:"product" mapstructure:"product"`
	Channel   string `json:"channel" yaml:"channel" mapstructure:"channel"`
	Date      string `json:"date" yaml:"date" mapstructure:"date"`
	Order     string `json:"order" yaml:"order" mapstructure:"order"`
	OrderItem string `json:"order_item" yaml:"order_item" mapstructure:"order_item"`
}

func DefaultTables() Tables {
	return Tables{
		Customer:  "dim_customer",
		Product:   "dim_product",
		Channel:   "dim_channel",
		Date:      "dim_date",
		Order:     "fact_order",
		OrderItem: "fact_order_item",
	}
}

// All returns every configured table name, dimensions first.
func (t Tables) All() []string {
	return []string{t.Customer, t.Product, t.Channel, t.Date, t.Order, t.OrderItem}
}

type Customer struct {
	Key         string
	FirstName   string
	LastName    string
	Email       string
	Phone       string
	CreatedDate time.Time
	Country     string
	Region      string
	City        string
	PostalCode  string
	Segment     string
}

type Product struct {
	SKU         string
	Name        string
	Brand       string
	Category    string
	Subcategory string
	ListPrice   decimal.Decimal
	Cost        decimal.Decimal
	IsActive    bool
}

// ProductPrice is an active product as read back for order generation.
type ProductPrice struct {
	ID        int64
	ListPrice decimal.Decimal
}

type Order struct {
	Number     string
	CustomerID int64
	DateID     int64
	ChannelID  int64
	Status     string
	Totals     OrderTotals
}

// OrderTotals are the five monetary aggregates of an order.
type OrderTotals struct {
	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	Shipping decimal.Decimal
	Discount decimal.Decimal
	Total    decimal.Decimal
}

type OrderItem struct {
	OrderID           int64
	ProductID         int64
	Quantity          int
	UnitPrice         decimal.Decimal
	UnitDiscount      decimal.Decimal
	LineSubtotal      decimal.Decimal
	LineDiscountTotal decimal.Decimal
	LineTotal         decimal.Decimal
}
